// This file contains the package's public entry points: a handful of
// convenience wrappers around the replay/beatmap parsing core and the
// analytics synthesizer.

package parser

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/Corsace/corsace-parser/analytics"
	"github.com/Corsace/corsace-parser/beatmap"
	"github.com/Corsace/corsace-parser/osu"
)

// ParseReplay parses a replay's header fields only. ReplayData and
// ReplayFrameData are left unset.
func ParseReplay(data []byte) (*osu.Replay, error) {
	return parseReplay(data, ReplayOptions{WithExtras: false})
}

// ParseReplayExtra parses a full replay, including the decoded frame
// stream, and verifies that beatmapBytes' content hash matches the
// replay's recorded beatmap hash. BeatmapHashMismatchError is returned on
// disagreement.
func ParseReplayExtra(replayBytes, beatmapBytes []byte) (*osu.Replay, error) {
	rep, err := parseReplay(replayBytes, ReplayOptions{WithExtras: true})
	if err != nil {
		return nil, err
	}

	sum := md5.Sum(beatmapBytes)
	beatmapHash := hex.EncodeToString(sum[:])
	if !strings.EqualFold(beatmapHash, rep.BeatmapHash) {
		return nil, &osu.BeatmapHashMismatchError{ReplayHash: rep.BeatmapHash, BeatmapHash: beatmapHash}
	}

	return rep, nil
}

// ParseBeatmap parses a full beatmap, including all optional collections.
func ParseBeatmap(data []byte) (*osu.Beatmap, error) {
	return beatmap.Parse(data, beatmap.Options{WithCollections: true, RequireHitObjects: false})
}

// ParseBeatmapAttributes parses a beatmap and synthesizes its whole-map
// difficulty/performance attributes under the optional score state,
// using the package's reference oracle.
func ParseBeatmapAttributes(data []byte, score *analytics.ScoreState) (analytics.Attributes, error) {
	bm, err := beatmap.Parse(data, beatmap.Options{WithCollections: true, RequireHitObjects: true})
	if err != nil {
		return analytics.Attributes{}, err
	}

	state := analytics.ScoreState{}
	if score != nil {
		state = *score
	}

	return analytics.Synthesize(bm, state, analytics.ReferenceFactory), nil
}

// ParseBeatmapStrains parses a beatmap and produces its gradual
// difficulty sequence, plus a gradual performance sequence when
// scoreStates is non-empty, using the package's reference oracle. mods,
// when non-nil, fills in any scoreStates entry that doesn't carry its
// own Mods.
func ParseBeatmapStrains(
	data []byte,
	scoreStates []analytics.ScoreState,
	mods *osu.Mods,
) ([]analytics.DifficultyAttributes, []analytics.PerformanceAttributes, error) {
	bm, err := beatmap.Parse(data, beatmap.Options{WithCollections: true, RequireHitObjects: true})
	if err != nil {
		return nil, nil, err
	}

	if mods != nil {
		for i := range scoreStates {
			if scoreStates[i].Mods == nil {
				m := *mods
				scoreStates[i].Mods = &m
			}
		}
	}

	difficulties := analytics.GradualDifficulty(bm, analytics.ReferenceFactory)

	var performances []analytics.PerformanceAttributes
	if len(scoreStates) > 0 {
		performances = analytics.GradualPerformance(bm, scoreStates, analytics.ReferenceFactory)
	}

	return difficulties, performances, nil
}
