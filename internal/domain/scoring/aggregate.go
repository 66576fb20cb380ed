package scoring

import (
	"github.com/astorrey/TackleHogs/internal/domain/catch"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
)

// Aggregate is the participant-level rollup of a qualifying catch set.
type Aggregate struct {
	Score      float64
	CatchCount int
	BestCatch  *catch.Catch
}

// AggregateCatches rolls a participant's qualifying catches up under the
// competition metric: points sums per-catch points, catches counts them,
// weight and length take the maximum of the non-null measurements. BestCatch
// is the catch achieving the maximum (highest points for the points metric,
// earliest caught-at on ties) and stays nil for the catches metric.
// Running it twice over the same set yields identical results.
func AggregateCatches(metric competition.Metric, catches []catch.Catch) Aggregate {
	agg := Aggregate{CatchCount: len(catches)}
	if len(catches) == 0 {
		return agg
	}

	switch metric {
	case competition.MetricPoints:
		total := 0
		bestPoints := 0.0
		for i := range catches {
			total += catches[i].Points
			if displaces(catches[i], agg.BestCatch, float64(catches[i].Points), bestPoints) {
				agg.BestCatch = &catches[i]
				bestPoints = float64(catches[i].Points)
			}
		}
		agg.Score = float64(total)
	case competition.MetricCatches:
		agg.Score = float64(len(catches))
	case competition.MetricWeight:
		for i := range catches {
			if catches[i].Weight == nil {
				continue
			}
			if displaces(catches[i], agg.BestCatch, *catches[i].Weight, agg.Score) {
				agg.BestCatch = &catches[i]
				agg.Score = *catches[i].Weight
			}
		}
	case competition.MetricLength:
		for i := range catches {
			if catches[i].Length == nil {
				continue
			}
			if displaces(catches[i], agg.BestCatch, *catches[i].Length, agg.Score) {
				agg.BestCatch = &catches[i]
				agg.Score = *catches[i].Length
			}
		}
	}

	return agg
}

// displaces decides whether candidate replaces the current best catch:
// strictly higher value wins, equal value falls back to the earlier
// caught-at.
func displaces(candidate catch.Catch, best *catch.Catch, candidateValue, currentValue float64) bool {
	if best == nil {
		return true
	}
	if candidateValue != currentValue {
		return candidateValue > currentValue
	}
	return candidate.CaughtAt.Before(best.CaughtAt)
}
