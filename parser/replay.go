// This file decodes a replay's binary header: fixed and variable-width
// fields read off a cursor, in file order, into an osu.Replay.

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Corsace/corsace-parser/osu"
)

// ReplayOptions controls what parseReplay populates beyond the always-
// present header fields.
type ReplayOptions struct {
	// WithExtras, when true, retains the raw compressed frame payload on
	// Replay.ReplayData and decodes it into Replay.ReplayFrameData.
	WithExtras bool
}

// parseReplay decodes a full replay record from data. Any decode panic,
// including an accidental out-of-range slice read, is recovered and
// returned as a structured error.
func parseReplay(data []byte, opts ReplayOptions) (rep *osu.Replay, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("parser: panic decoding replay: %v", p)
		}
	}()

	r := NewReader(data)
	rep = &osu.Replay{}

	modeByte, err := r.U8()
	if err != nil {
		return nil, err
	}
	mode, err := osu.ModeByID(modeByte)
	if err != nil {
		return nil, err
	}
	rep.Mode = mode

	if rep.Version, err = r.U32(); err != nil {
		return nil, err
	}
	if rep.BeatmapHash, err = r.ULEB128String(); err != nil {
		return nil, err
	}
	if rep.Username, err = r.ULEB128String(); err != nil {
		return nil, err
	}
	if rep.ReplayHash, err = r.ULEB128String(); err != nil {
		return nil, err
	}

	var count300, count100, count50, countGeki, countKatu, miss uint16
	for _, field := range []*uint16{&count300, &count100, &count50, &countGeki, &countKatu, &miss} {
		if *field, err = r.U16(); err != nil {
			return nil, err
		}
	}
	rep.Judgements = osu.Judgements{
		Count300:  &count300,
		Count100:  &count100,
		Count50:   &count50,
		CountGeki: &countGeki,
		CountKatu: &countKatu,
		Miss:      &miss,
	}

	if rep.Score, err = r.U32(); err != nil {
		return nil, err
	}
	if rep.MaxCombo, err = r.U16(); err != nil {
		return nil, err
	}
	perfectByte, err := r.U8()
	if err != nil {
		return nil, err
	}
	rep.Perfect = perfectByte == 1

	modsRaw, err := r.U32()
	if err != nil {
		return nil, err
	}
	if rep.Mods, err = osu.ModsFromBits(modsRaw); err != nil {
		return nil, err
	}

	lifeGraphRaw, err := r.ULEB128String()
	if err != nil {
		return nil, err
	}
	if rep.LifeGraph, err = parseLifeGraph(lifeGraphRaw); err != nil {
		return nil, err
	}

	timestampRaw, err := r.U64()
	if err != nil {
		return nil, err
	}
	rep.Timestamp = strconv.FormatUint(timestampRaw, 10)

	replayDataLen, err := r.U32()
	if err != nil {
		return nil, err
	}
	var replayData []byte
	if opts.WithExtras {
		if replayData, err = r.ReadExact(int(replayDataLen)); err != nil {
			return nil, err
		}
		rep.ReplayData = replayData
	} else if _, err = r.ReadExact(int(replayDataLen)); err != nil {
		return nil, err
	}

	scoreIDRaw, err := r.U64()
	if err != nil {
		return nil, err
	}
	if scoreIDRaw != 0 {
		s := strconv.FormatUint(scoreIDRaw, 10)
		rep.ScoreID = &s
	}

	if opts.WithExtras && len(replayData) > 0 {
		frameData, err := parseFrameStream(replayData)
		if err != nil {
			return nil, err
		}
		rep.ReplayFrameData = frameData
	}

	return rep, nil
}

// parseLifeGraph decodes the comma-separated, pipe-delimited life graph
// string into a sequence of timestamped life percentages.
func parseLifeGraph(raw string) ([]osu.LifeGraphPoint, error) {
	if raw == "" {
		return nil, nil
	}

	entries := strings.Split(raw, ",")
	points := make([]osu.LifeGraphPoint, 0, len(entries))
	for _, entry := range entries {
		if entry == "" {
			continue
		}
		fields := strings.SplitN(entry, "|", 2)
		if len(fields) != 2 {
			return nil, osu.ErrLifeGraphMissing
		}
		timeMs, err := strconv.ParseInt(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parser: life graph time: %w", err)
		}
		life, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("parser: life graph value: %w", err)
		}
		points = append(points, osu.LifeGraphPoint{TimeMs: int32(timeMs), Life: life})
	}
	return points, nil
}
