// This file contains TimingPoint, Break and Color.

package osu

// TimingPoint is one entry of a beatmap's [TimingPoints] section.
// A positive BeatLength is an uninherited point defining tempo (ms per
// beat); the first timing point in a beatmap must be uninherited.
type TimingPoint struct {
	Time       float64 `json:"time"`
	BeatLength float64 `json:"beatLength"`
}

// Uninherited reports whether tp defines tempo (as opposed to being an
// inherited slider-velocity modifier, which carries a non-positive
// BeatLength).
func (tp TimingPoint) Uninherited() bool {
	return tp.BeatLength > 0
}

// Break is a non-playable interval, subtracted from drain time.
type Break struct {
	StartTime uint32 `json:"startTime"`
	EndTime   uint32 `json:"endTime"`
}

// Color is an RGB combo color.
type Color struct {
	R, G, B uint8
}
