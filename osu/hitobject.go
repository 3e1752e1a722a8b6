// This file contains the HitObject and its per-kind payload.
//
// Go has no sum type, and HitObject must round-trip as a single flat
// JSON object, so the kind-dependent payload fields (slider, spinner,
// hold) live directly on HitObject guarded by the Kind tag instead of
// being split into one struct type per kind behind a common interface.

package osu

// HitObjectKind tags which payload fields on a HitObject are meaningful.
type HitObjectKind int

// Possible values of HitObjectKind.
const (
	KindCircle HitObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

func (k HitObjectKind) String() string {
	switch k {
	case KindCircle:
		return "Circle"
	case KindSlider:
		return "Slider"
	case KindSpinner:
		return "Spinner"
	case KindHold:
		return "Hold"
	default:
		return "Unknown"
	}
}

// HitObject is a single timed interactable from a beatmap's [HitObjects]
// section. StartTime is monotonically non-decreasing across the sequence
// a beatmap parse returns, matching source order.
type HitObject struct {
	Pos       Pos2          `json:"pos"`
	StartTime float64       `json:"startTime"`
	Kind      HitObjectKind `json:"kind"`

	// Slider payload (Kind == KindSlider).
	PixelLen      *float64           `json:"pixelLen,omitempty"`
	Repeats       uint               `json:"repeats,omitempty"`
	ControlPoints []PathControlPoint `json:"controlPoints,omitempty"`
	EdgeSounds    []uint8            `json:"edgeSounds,omitempty"`

	// Spinner/Hold payload (Kind == KindSpinner || Kind == KindHold).
	EndTime float64 `json:"endTime,omitempty"`
}
