package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/weather"
)

const (
	basePoints = 10

	weightBonusPerPound = 5
	lengthBonusPerInch  = 2
	maxSizeBonus        = 50

	primeTimeBonus = 5
)

// Breakdown is the result of scoring a single catch.
type Breakdown struct {
	Points  int
	Bonuses []string
}

// CalculatePoints awards points for one catch. Every catch earns the base
// value; a size bonus comes from weight when present, otherwise from length;
// catches during prime feeding hours earn a flat time bonus. The function is
// pure and must stay behaviorally identical to the client-side calculator,
// since clients display an optimistic value before the server confirms it.
//
// The time-of-day check uses the hour in caughtAt's location.
func CalculatePoints(weightLbs, lengthIn *float64, caughtAt time.Time) Breakdown {
	points := basePoints
	var bonuses []string

	switch {
	case weightLbs != nil && *weightLbs > 0:
		bonus := sizeBonus(*weightLbs, weightBonusPerPound)
		if bonus > 0 {
			points += bonus
			bonuses = append(bonuses, fmt.Sprintf("Size bonus: +%d", bonus))
		}
	case lengthIn != nil && *lengthIn > 0:
		bonus := sizeBonus(*lengthIn, lengthBonusPerInch)
		if bonus > 0 {
			points += bonus
			bonuses = append(bonuses, fmt.Sprintf("Length bonus: +%d", bonus))
		}
	}

	if isPrimeTime(caughtAt.Hour()) {
		points += primeTimeBonus
		bonuses = append(bonuses, fmt.Sprintf("Time bonus: +%d", primeTimeBonus))
	}

	return Breakdown{Points: points, Bonuses: bonuses}
}

func sizeBonus(measurement float64, perUnit int) int {
	bonus := int(math.Floor(measurement * float64(perUnit)))
	if bonus > maxSizeBonus {
		return maxSizeBonus
	}
	if bonus < 0 {
		return 0
	}
	return bonus
}

// Prime feeding windows: early morning 5-8 and evening 18-21, inclusive.
func isPrimeTime(hour int) bool {
	return (hour >= 5 && hour <= 8) || (hour >= 18 && hour <= 21)
}

// ConditionScore rates how favorable a weather snapshot is for fishing.
// Advisory only; it never contributes to catch points.
func ConditionScore(w *weather.Data) int {
	if w == nil {
		return 0
	}

	score := 0
	switch {
	case w.Temperature >= 60 && w.Temperature <= 80:
		score += 10
	case (w.Temperature >= 50 && w.Temperature < 60) || (w.Temperature > 80 && w.Temperature <= 90):
		score += 5
	}
	if w.Pressure >= 30.0 && w.Pressure <= 30.2 {
		score += 5
	}
	if w.WindSpeed < 10 {
		score += 5
	}

	return score
}
