package osu

import "testing"

func TestModsFromBits(t *testing.T) {
	t.Run("recognized bits round-trip", func(t *testing.T) {
		raw := uint32(ModNoFail | ModHidden | ModDoubleTime)
		mods, err := ModsFromBits(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mods.Bits() != raw {
			t.Errorf("Bits() = %d, want %d", mods.Bits(), raw)
		}
		if !mods.Has(ModHidden) {
			t.Error("expected Hidden to be set")
		}
		if mods.Has(ModEasy) {
			t.Error("did not expect Easy to be set")
		}
	})

	t.Run("unrecognized bit fails", func(t *testing.T) {
		if _, err := ModsFromBits(1 << 31); err == nil {
			t.Error("expected UnexpectedModsError, got nil")
		}
	})

	t.Run("key8 verbatim mask round-trips", func(t *testing.T) {
		mods, err := ModsFromBits(uint32(ModKey8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mods.Bits() != uint32(ModKey8) {
			t.Errorf("Bits() = %d, want %d", mods.Bits(), uint32(ModKey8))
		}
		if !mods.Has(ModKey8) {
			t.Error("expected Key8 to be set")
		}
	})
}

func TestButtonsFromBits(t *testing.T) {
	t.Run("recognized bits round-trip", func(t *testing.T) {
		raw := uint32(ButtonM1 | ButtonK2)
		buttons, err := ButtonsFromBits(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buttons.Bits() != raw {
			t.Errorf("Bits() = %d, want %d", buttons.Bits(), raw)
		}
	})

	t.Run("unrecognized bit fails", func(t *testing.T) {
		if _, err := ButtonsFromBits(1 << 5); err == nil {
			t.Error("expected InvalidButtonsError, got nil")
		}
	})
}

func TestModeByID(t *testing.T) {
	cases := []struct {
		raw  byte
		want Mode
	}{
		{0, ModeOsu},
		{1, ModeTaiko},
		{2, ModeCatch},
		{3, ModeMania},
	}
	for _, c := range cases {
		got, err := ModeByID(c.raw)
		if err != nil {
			t.Errorf("raw %d: unexpected error: %v", c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("raw %d: got %v, want %v", c.raw, got, c.want)
		}
	}

	if _, err := ModeByID(4); err == nil {
		t.Error("expected InvalidModeError for raw=4, got nil")
	}
}
