// This file contains the closed set of structured parse errors: package-
// level sentinel errors for fields with no interesting payload, small
// exported struct types for errors that carry the offending raw value,
// and fmt.Errorf("...: %w", cause) wrapping for causes coming from the
// standard library (utf8, strconv, io).

package osu

import (
	"errors"
	"fmt"
)

// Sentinel errors with no payload.
var (
	// ErrLifeGraphMissing indicates a life-graph entry is missing its
	// time or life field.
	ErrLifeGraphMissing = errors.New("life graph entry missing field")

	// ErrHitObjectsMissing indicates analytics were requested on a
	// beatmap that has no hit objects.
	ErrHitObjectsMissing = errors.New("beatmap has no hit objects")

	// ErrLEB128Overflow indicates a ULEB128 value's 10th byte was greater
	// than 1, carrying bits past bit 63.
	ErrLEB128Overflow = errors.New("uleb128 value overflowed")

	// ErrBufferOverflow indicates the input ended mid-ULEB128 value.
	ErrBufferOverflow = errors.New("buffer overflowed reading uleb128 value")
)

// InvalidModeError indicates a replay's mode byte was outside the
// recognized 0-3 range.
type InvalidModeError struct {
	Raw byte
}

func (e *InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode: %d", e.Raw)
}

// InvalidButtonsError indicates a replay frame's buttons field contained
// an unrecognized bit.
type InvalidButtonsError struct {
	Raw uint32
}

func (e *InvalidButtonsError) Error() string {
	return fmt.Sprintf("invalid buttons: %d", e.Raw)
}

// UnexpectedModsError indicates a replay's mods field contained an
// unrecognized bit.
type UnexpectedModsError struct {
	Raw uint32
}

func (e *UnexpectedModsError) Error() string {
	return fmt.Sprintf("unexpected mods: %d", e.Raw)
}

// ULEBStringError indicates a ULEB128-string tag byte was neither 0x00
// nor 0x0B.
type ULEBStringError struct {
	Tag byte
}

func (e *ULEBStringError) Error() string {
	return fmt.Sprintf("error decoding uleb128 string, invalid tag byte 0x%02x", e.Tag)
}

// BeatmapHashMismatchError indicates ParseReplayExtra was given a beatmap
// whose content hash doesn't match the replay's recorded beatmap hash.
type BeatmapHashMismatchError struct {
	ReplayHash, BeatmapHash string
}

func (e *BeatmapHashMismatchError) Error() string {
	return fmt.Sprintf("beatmap hash mismatch: replay wants %q, beatmap is %q", e.ReplayHash, e.BeatmapHash)
}
