package parser

import "testing"

func TestParseFrameCSV(t *testing.T) {
	payload := "0|0|0|0,16|100.5|200.25|5,32|150|250|0,-12345|0|0|987654321"

	data, err := parseFrameCSV(payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(data.Frames))
	}

	wantTimestamps := []int32{0, 16, 48}
	for i, want := range wantTimestamps {
		if got := data.Frames[i].TimestampMs; got != want {
			t.Errorf("frame %d: timestampMs = %d, want %d", i, got, want)
		}
	}

	if data.Frames[1].Cursor.X != 100.5 || data.Frames[1].Cursor.Y != 200.25 {
		t.Errorf("frame 1 cursor = %+v, want (100.5, 200.25)", data.Frames[1].Cursor)
	}

	if data.Seed == nil {
		t.Fatal("seed = nil, want set from the sentinel frame")
	}
	if *data.Seed != 987654321 {
		t.Errorf("seed = %d, want 987654321", *data.Seed)
	}
}

func TestParseFrameCSVMalformed(t *testing.T) {
	if _, err := parseFrameCSV("0|0|0"); err == nil {
		t.Error("expected an error for a malformed frame record, got nil")
	}
}

func TestParseFrameCSVEmpty(t *testing.T) {
	data, err := parseFrameCSV("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Frames) != 0 {
		t.Errorf("got %d frames, want 0", len(data.Frames))
	}
	if data.Seed != nil {
		t.Error("seed should be nil without a sentinel frame")
	}
}
