package analytics

import (
	"testing"

	"github.com/Corsace/corsace-parser/osu"
)

func sampleBeatmap() *osu.Beatmap {
	pixelLen := 150.0
	return &osu.Beatmap{
		AR: 9, OD: 8, CS: 4, HP: 5,
		MapLength: 8000,
		HitObjects: []osu.HitObject{
			{Pos: osu.Pos2{X: 100, Y: 100}, StartTime: 1000, Kind: osu.KindCircle},
			{Pos: osu.Pos2{X: 200, Y: 200}, StartTime: 2000, Kind: osu.KindSlider, Repeats: 1, PixelLen: &pixelLen},
			{Pos: osu.Pos2{X: 300, Y: 300}, StartTime: 3000, Kind: osu.KindCircle},
		},
	}
}

func TestSynthesizeProducesStarsAndCounts(t *testing.T) {
	bm := sampleBeatmap()
	attrs := Synthesize(bm, ScoreState{}, ReferenceFactory)

	if attrs.Difficulty.Circles != 2 {
		t.Errorf("circles = %d, want 2", attrs.Difficulty.Circles)
	}
	if attrs.Difficulty.Sliders != 1 {
		t.Errorf("sliders = %d, want 1", attrs.Difficulty.Sliders)
	}
	if attrs.Difficulty.Stars <= 0 {
		t.Errorf("stars = %v, want > 0", attrs.Difficulty.Stars)
	}
	if attrs.Performance != nil {
		t.Error("expected no performance without a score state")
	}
}

func TestSynthesizeWithScoreStateProducesPerformance(t *testing.T) {
	bm := sampleBeatmap()
	combo := uint32(4)
	n300 := uint32(3)

	attrs := Synthesize(bm, ScoreState{Combo: &combo, N300: &n300}, ReferenceFactory)

	if attrs.Performance == nil {
		t.Fatal("expected performance to be computed")
	}
	if attrs.Performance.Total <= 0 {
		t.Errorf("total pp = %v, want > 0", attrs.Performance.Total)
	}
}

func TestGradualDifficultyMonotonicCounts(t *testing.T) {
	bm := sampleBeatmap()
	snapshots := GradualDifficulty(bm, ReferenceFactory)

	if len(snapshots) != len(bm.HitObjects) {
		t.Fatalf("got %d snapshots, want %d", len(snapshots), len(bm.HitObjects))
	}

	var prevObjects uint32
	for i, snap := range snapshots {
		total := snap.Circles + snap.Sliders + snap.Spinners
		if total <= prevObjects {
			t.Errorf("snapshot %d: object count %d did not increase from %d", i, total, prevObjects)
		}
		prevObjects = total
	}
}

func TestGradualPerformanceStopsAtMapLength(t *testing.T) {
	bm := sampleBeatmap()
	states := make([]ScoreState, len(bm.HitObjects)+5)

	performances := GradualPerformance(bm, states, ReferenceFactory)

	if len(performances) != len(bm.HitObjects) {
		t.Errorf("got %d performance snapshots, want %d (one per hit object, then exhausted)",
			len(performances), len(bm.HitObjects))
	}
}
