package competition

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var AllTypes = map[Type]struct{}{
	TypeDaily:   {},
	TypeWeekly:  {},
	TypeMonthly: {},
	TypeYearly:  {},
}

var AllMetrics = map[Metric]struct{}{
	MetricPoints:  {},
	MetricCatches: {},
	MetricWeight:  {},
	MetricLength:  {},
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AllTypes[t]; !ok {
		return "", fmt.Errorf("unknown competition type: %q", raw)
	}
	return t, nil
}

func ParseMetric(raw string) (Metric, error) {
	m := Metric(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AllMetrics[m]; !ok {
		return "", fmt.Errorf("unknown competition metric: %q", raw)
	}
	return m, nil
}

// CanTransition reports whether a status change is allowed. Transitions are
// monotonic pending -> active -> completed; cancelled is reachable from
// pending or active only. Terminal statuses allow nothing.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusActive || to == StatusCancelled
	case StatusActive:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// DefaultWindow derives the [start, end) window from the competition type
// when the caller does not supply an explicit end.
func DefaultWindow(t Type, start time.Time) (time.Time, time.Time) {
	switch t {
	case TypeDaily:
		return start, start.Add(24 * time.Hour)
	case TypeWeekly:
		return start, start.AddDate(0, 0, 7)
	case TypeMonthly:
		return start, start.AddDate(0, 1, 0)
	case TypeYearly:
		return start, start.AddDate(1, 0, 0)
	default:
		return start, start.Add(24 * time.Hour)
	}
}

// MetricLabel maps a metric to its display name.
func MetricLabel(m Metric) string {
	switch m {
	case MetricPoints:
		return "Total Points"
	case MetricCatches:
		return "Most Catches"
	case MetricWeight:
		return "Biggest Fish (Weight)"
	case MetricLength:
		return "Biggest Fish (Length)"
	default:
		return string(m)
	}
}

// FormatScore renders a score with the unit belonging to the metric.
func FormatScore(m Metric, score float64) string {
	switch m {
	case MetricPoints:
		return fmt.Sprintf("%d pts", int(math.Round(score)))
	case MetricCatches:
		return fmt.Sprintf("%d catches", int(math.Round(score)))
	case MetricWeight:
		return fmt.Sprintf("%.2f lbs", score)
	case MetricLength:
		return fmt.Sprintf("%.1f in", score)
	default:
		return fmt.Sprintf("%g", score)
	}
}
