// This file contains ReferenceFactory, the in-tree default Oracle.
//
// It is a deterministic placeholder, not a faithful reimplementation of
// any real difficulty engine. Its only job is to give Synthesize/
// GradualDifficulty/GradualPerformance something real to call so the
// orchestration layer is exercised end-to-end without a bound
// third-party engine.
package analytics

import (
	"math"

	"github.com/Corsace/corsace-parser/osu"
)

// ReferenceFactory builds the package's reference Oracle for bm.
func ReferenceFactory(bm *osu.Beatmap) Oracle {
	return &referenceOracle{
		bm:       bm,
		maxCombo: referenceMaxCombo(bm),
	}
}

type referenceOracle struct {
	bm       *osu.Beatmap
	maxCombo uint32

	diffIdx int
	perfIdx int
}

func referenceMaxCombo(bm *osu.Beatmap) uint32 {
	var combo uint32
	for _, ho := range bm.HitObjects {
		switch ho.Kind {
		case osu.KindSlider:
			combo += uint32(ho.Repeats) + 1
		default:
			combo++
		}
	}
	return combo
}

func (o *referenceOracle) Calculate(state ScoreState) Attributes {
	diff := o.difficultyAt(len(o.bm.HitObjects))
	attrs := Attributes{Difficulty: diff}
	if hasScoreFields(state) {
		perf := o.performanceFor(state, diff)
		attrs.Performance = &perf
	}
	return attrs
}

func (o *referenceOracle) Next() (DifficultyAttributes, bool) {
	if o.diffIdx >= len(o.bm.HitObjects) {
		return DifficultyAttributes{}, false
	}
	o.diffIdx++
	return o.difficultyAt(o.diffIdx), true
}

func (o *referenceOracle) ProcessNext(state ScoreState) (PerformanceAttributes, bool) {
	if o.perfIdx >= len(o.bm.HitObjects) {
		return PerformanceAttributes{}, false
	}
	o.perfIdx++
	diff := o.difficultyAt(o.perfIdx)
	return o.performanceFor(state, diff), true
}

// difficultyAt computes a deterministic, monotonically-nondecreasing
// difficulty snapshot as if only the first n hit objects existed.
func (o *referenceOracle) difficultyAt(n int) DifficultyAttributes {
	if n > len(o.bm.HitObjects) {
		n = len(o.bm.HitObjects)
	}

	var circles, sliders, spinners uint32
	var comboAt uint32
	for _, ho := range o.bm.HitObjects[:n] {
		switch ho.Kind {
		case osu.KindCircle:
			circles++
			comboAt++
		case osu.KindSlider:
			sliders++
			comboAt += uint32(ho.Repeats) + 1
		case osu.KindSpinner:
			spinners++
			comboAt++
		}
	}

	bpm := 120.0
	if o.bm.BPM != nil {
		bpm = float64(*o.bm.BPM)
	}
	density := float64(n) / math.Max(1, float64(o.bm.MapLength)/1000)

	aim := math.Sqrt(float64(circles+sliders)) * (bpm / 180)
	speed := math.Sqrt(float64(circles)) * (bpm / 160)
	flashlight := aim * 0.6
	sliderFactor := 1.0
	if sliders > 0 {
		sliderFactor = 1 + float64(sliders)/float64(circles+sliders+1)*0.3
	}

	stars := (aim + speed) * 0.3 * sliderFactor

	return DifficultyAttributes{
		Aim:            aim,
		Speed:          speed,
		Flashlight:     flashlight,
		SliderFactor:   sliderFactor,
		SpeedNoteCount: density,
		AR:             float64(o.bm.AR),
		OD:             float64(o.bm.OD),
		HP:             float64(o.bm.HP),
		Circles:        circles,
		Sliders:        sliders,
		Spinners:       spinners,
		MaxCombo:       comboAt,
		Stars:          stars,
	}
}

func (o *referenceOracle) performanceFor(state ScoreState, diff DifficultyAttributes) PerformanceAttributes {
	accuracy := 1.0
	if state.Accuracy != nil {
		accuracy = *state.Accuracy
	} else if n := totalJudged(state); n > 0 {
		accuracy = weightedAccuracy(state, n)
	}

	missCount := 0.0
	if state.Miss != nil {
		missCount = float64(*state.Miss)
	}

	comboRatio := 1.0
	if diff.MaxCombo > 0 && state.Combo != nil {
		comboRatio = float64(*state.Combo) / float64(diff.MaxCombo)
	}

	penalty := math.Pow(0.97, missCount) * comboRatio

	aimPP := math.Pow(diff.Aim, 1.2) * penalty * accuracy
	speedPP := math.Pow(diff.Speed, 1.2) * penalty * accuracy
	accPP := diff.Stars * accuracy * accuracy * 2
	flashlightPP := diff.Flashlight * penalty * 0.5

	return PerformanceAttributes{
		Total:              aimPP + speedPP + accPP + flashlightPP,
		Aim:                aimPP,
		Acc:                accPP,
		Flashlight:          flashlightPP,
		Speed:              speedPP,
		EffectiveMissCount: missCount,
	}
}

func hasScoreFields(state ScoreState) bool {
	return state.Mods != nil || state.Combo != nil || state.N300 != nil ||
		state.N100 != nil || state.N50 != nil || state.Miss != nil || state.Accuracy != nil
}

func totalJudged(state ScoreState) uint32 {
	var n uint32
	if state.N300 != nil {
		n += *state.N300
	}
	if state.N100 != nil {
		n += *state.N100
	}
	if state.N50 != nil {
		n += *state.N50
	}
	if state.Miss != nil {
		n += *state.Miss
	}
	return n
}

func weightedAccuracy(state ScoreState, total uint32) float64 {
	var n300, n100, n50 uint32
	if state.N300 != nil {
		n300 = *state.N300
	}
	if state.N100 != nil {
		n100 = *state.N100
	}
	if state.N50 != nil {
		n50 = *state.N50
	}
	weighted := float64(n300)*300 + float64(n100)*100 + float64(n50)*50
	return weighted / (float64(total) * 300)
}
