// This file implements the analytics synthesizer: a small aggregate
// built after the fact from already-parsed beatmap data by delegating
// the actual difficulty/performance computation to an Oracle rather
// than inlining it here. This package orchestrates; it doesn't
// calculate.
package analytics

import "github.com/Corsace/corsace-parser/osu"

// Synthesize runs a single-shot calculation for the whole beatmap under
// state, using an Oracle built by newOracle.
func Synthesize(bm *osu.Beatmap, state ScoreState, newOracle Factory) Attributes {
	oracle := newOracle(bm)
	return oracle.Calculate(state)
}

// GradualDifficulty returns one DifficultyAttributes snapshot per hit
// object, each covering the map prefix up to and including that object.
func GradualDifficulty(bm *osu.Beatmap, newOracle Factory) []DifficultyAttributes {
	oracle := newOracle(bm)

	out := make([]DifficultyAttributes, 0, len(bm.HitObjects))
	for {
		diff, ok := oracle.Next()
		if !ok {
			break
		}
		out = append(out, diff)
	}
	return out
}

// GradualPerformance returns one PerformanceAttributes snapshot per entry
// in states, each evaluated against the map prefix ending at the
// corresponding hit object. It stops at the first state the oracle cannot
// process, so states beyond the map's hit object count yield nothing.
func GradualPerformance(bm *osu.Beatmap, states []ScoreState, newOracle Factory) []PerformanceAttributes {
	oracle := newOracle(bm)

	out := make([]PerformanceAttributes, 0, len(states))
	for _, state := range states {
		perf, ok := oracle.ProcessNext(state)
		if !ok {
			break
		}
		out = append(out, perf)
	}
	return out
}
