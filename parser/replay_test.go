package parser

import (
	"encoding/binary"
	"testing"

	"github.com/Corsace/corsace-parser/osu"
)

// replayBuilder assembles a minimal, internally-consistent replay header
// byte by byte, field by field, in the exact order parseReplay expects.
type replayBuilder struct {
	buf []byte
}

func (b *replayBuilder) u8(v uint8) *replayBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *replayBuilder) u16(v uint16) *replayBuilder {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *replayBuilder) u32(v uint32) *replayBuilder {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *replayBuilder) u64(v uint64) *replayBuilder {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
	return b
}

func (b *replayBuilder) ulebString(s string) *replayBuilder {
	if s == "" {
		return b.u8(0x00)
	}
	b.u8(0x0B)
	b.u8(uint8(len(s)))
	b.buf = append(b.buf, []byte(s)...)
	return b
}

// minimalReplay builds a replay header with all judgements zero, the
// given score/combo/perfect/mods, an empty life graph, a fixed
// timestamp, no replay data, and no score id.
func minimalReplay(score uint32, maxCombo uint16, perfect bool, mods uint32) []byte {
	b := &replayBuilder{}
	b.u8(0) // mode = Osu
	b.u32(1)
	b.ulebString("hash")
	b.ulebString("name")
	b.ulebString("rh")
	for i := 0; i < 6; i++ {
		b.u16(0)
	}
	b.u32(score)
	b.u16(maxCombo)
	if perfect {
		b.u8(1)
	} else {
		b.u8(0)
	}
	b.u32(mods)
	b.ulebString("") // life graph
	b.u64(1234567890)
	b.u32(0) // replayDataLength
	b.u64(0) // scoreId
	return b.buf
}

func TestParseReplayMinimalHeader(t *testing.T) {
	data := minimalReplay(100, 10, true, uint32(osu.ModNoFail))

	rep, err := ParseReplay(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Mode != osu.ModeOsu {
		t.Errorf("mode = %v, want Osu", rep.Mode)
	}
	if rep.Version != 1 {
		t.Errorf("version = %d, want 1", rep.Version)
	}
	if rep.BeatmapHash != "hash" {
		t.Errorf("beatmapHash = %q, want %q", rep.BeatmapHash, "hash")
	}
	if rep.Username != "name" {
		t.Errorf("username = %q, want %q", rep.Username, "name")
	}
	if rep.ReplayHash != "rh" {
		t.Errorf("replayHash = %q, want %q", rep.ReplayHash, "rh")
	}
	for name, got := range map[string]*uint16{
		"count300": rep.Judgements.Count300,
		"count100": rep.Judgements.Count100,
		"count50":  rep.Judgements.Count50,
		"countGeki": rep.Judgements.CountGeki,
		"countKatu": rep.Judgements.CountKatu,
		"miss":      rep.Judgements.Miss,
	} {
		if got == nil || *got != 0 {
			t.Errorf("%s = %v, want 0", name, got)
		}
	}
	if rep.Score != 100 {
		t.Errorf("score = %d, want 100", rep.Score)
	}
	if rep.MaxCombo != 10 {
		t.Errorf("maxCombo = %d, want 10", rep.MaxCombo)
	}
	if !rep.Perfect {
		t.Error("perfect = false, want true")
	}
	if !rep.Mods.Has(osu.ModNoFail) {
		t.Errorf("mods = %v, want NoFail set", rep.Mods)
	}
	if rep.Timestamp != "1234567890" {
		t.Errorf("timestamp = %q, want %q", rep.Timestamp, "1234567890")
	}
	if rep.ScoreID != nil {
		t.Errorf("scoreId = %v, want nil", rep.ScoreID)
	}
}

func TestParseReplayMods(t *testing.T) {
	t.Run("known mod", func(t *testing.T) {
		data := minimalReplay(0, 0, false, uint32(osu.ModDoubleTime))
		rep, err := ParseReplay(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !rep.Mods.Has(osu.ModDoubleTime) {
			t.Errorf("mods = %v, want DoubleTime set", rep.Mods)
		}
	})

	t.Run("unrecognized bit", func(t *testing.T) {
		data := minimalReplay(0, 0, false, 0x80000000)
		if _, err := ParseReplay(data); err == nil {
			t.Error("expected UnexpectedMods error, got nil")
		}
	})
}

func TestParseReplayInvalidMode(t *testing.T) {
	data := minimalReplay(0, 0, false, 0)
	data[0] = 0xFF
	if _, err := ParseReplay(data); err == nil {
		t.Error("expected InvalidMode error, got nil")
	}
}

func TestParseReplayTruncated(t *testing.T) {
	data := minimalReplay(100, 10, true, 0)
	if _, err := ParseReplay(data[:5]); err == nil {
		t.Error("expected an error on truncated input, got nil")
	}
}
