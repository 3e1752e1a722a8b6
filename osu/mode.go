// This file contains the Mode enum.

package osu

import "fmt"

// Mode identifies the osu! game mode a replay or score was played in.
type Mode int

// Possible values of Mode.
const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeOsu:
		return "Osu"
	case ModeTaiko:
		return "Taiko"
	case ModeCatch:
		return "Catch"
	case ModeMania:
		return "Mania"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeByID maps a replay's raw mode byte to a Mode.
// InvalidModeError is returned for bytes outside 0-3.
func ModeByID(raw byte) (Mode, error) {
	switch raw {
	case 0:
		return ModeOsu, nil
	case 1:
		return ModeTaiko, nil
	case 2:
		return ModeCatch, nil
	case 3:
		return ModeMania, nil
	default:
		return 0, &InvalidModeError{Raw: raw}
	}
}
