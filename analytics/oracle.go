// This file declares the oracle contract: the boundary between this
// package and whatever difficulty/performance engine actually computes
// star rating and pp. No such engine ships in this module, so the
// oracle is modeled as an injectable interface rather than bound to one
// concrete implementation. Implementations may wrap a real engine (cgo
// binding, RPC client, subprocess) or be the package's own
// ReferenceFactory.
package analytics

import "github.com/Corsace/corsace-parser/osu"

// ScoreState describes the partial or full score context an oracle
// calculation runs under. Every field is optional; an absent field means
// "use the engine's default for this quantity" rather than zero.
type ScoreState struct {
	Mods     *osu.Mods
	Combo    *uint32
	N300     *uint32
	N100     *uint32
	N50      *uint32
	Miss     *uint32
	Accuracy *float64
}

// DifficultyAttributes describes a beatmap's intrinsic difficulty, either
// for the whole map or up to some object index in a gradual sequence.
type DifficultyAttributes struct {
	Aim            float64
	Speed          float64
	Flashlight     float64
	SliderFactor   float64
	SpeedNoteCount float64
	AR             float64
	OD             float64
	HP             float64
	Circles        uint32
	Sliders        uint32
	Spinners       uint32
	MaxCombo       uint32
	Stars          float64
}

// PerformanceAttributes describes the pp awarded for a score against a
// DifficultyAttributes context.
type PerformanceAttributes struct {
	Total              float64
	Aim                float64
	Acc                float64
	Flashlight         float64
	Speed              float64
	EffectiveMissCount float64
}

// Attributes bundles a single-shot calculation's difficulty output with
// its performance output, present only when a score state was supplied.
type Attributes struct {
	Difficulty  DifficultyAttributes
	Performance *PerformanceAttributes
}

// Oracle is the opaque difficulty/performance engine a beatmap is
// evaluated against. Callers construct one via a Factory, feed it score
// state, and read back structured results; they never reach into how
// stars or pp are actually computed.
type Oracle interface {
	// Calculate runs a single-shot whole-map evaluation under state.
	Calculate(state ScoreState) Attributes

	// Next advances a gradual difficulty iterator by one hit object and
	// reports its difficulty attributes up to and including that object.
	// The second return is false once the map is exhausted.
	Next() (DifficultyAttributes, bool)

	// ProcessNext advances a gradual performance iterator by one score
	// state and reports the resulting performance attributes. The second
	// return is false once the map is exhausted.
	ProcessNext(state ScoreState) (PerformanceAttributes, bool)
}

// Factory constructs an Oracle bound to a specific beatmap.
type Factory func(bm *osu.Beatmap) Oracle
