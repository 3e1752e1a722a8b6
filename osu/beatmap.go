// This file contains the Beatmap aggregate.

package osu

// Beatmap models a parsed .osu beatmap.
//
// TimingPoints, HitObjects, Breaks and ComboColors are nil when the parse
// wasn't asked for collections (see beatmap.Options.WithCollections) and
// non-nil (possibly empty) otherwise — a three-valued slot distinguishing
// "not requested" from "present but empty".
type Beatmap struct {
	// Identity
	Hash     string   `json:"hash"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	DiffName string   `json:"diffName"`
	Tags     []string `json:"tags"`

	// Counts
	Circles  uint32 `json:"circles"`
	Sliders  uint32 `json:"sliders"`
	Spinners uint32 `json:"spinners"`
	MaxCombo uint32 `json:"maxCombo"`

	// Geometry / difficulty
	AR               float32 `json:"ar"`
	OD               float32 `json:"od"`
	CS               float32 `json:"cs"`
	HP               float32 `json:"hp"`
	SliderMultiplier float64 `json:"sliderMultiplier"`
	TickRate         float64 `json:"tickRate"`

	// Temporal
	MapLength uint32   `json:"mapLength"`
	DrainTime uint32   `json:"drainTime"`
	BPM       *float32 `json:"bpm,omitempty"`

	// Optional collections
	TimingPoints []TimingPoint `json:"timingPoints,omitempty"`
	HitObjects   []HitObject   `json:"hitObjects,omitempty"`
	Breaks       []Break       `json:"breaks,omitempty"`
	ComboColors  []Color       `json:"comboColors,omitempty"`
}
