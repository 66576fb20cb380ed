package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/weather"
)

func floatPtr(v float64) *float64 { return &v }

func atHour(hour int) time.Time {
	return time.Date(2026, time.June, 14, hour, 30, 0, 0, time.UTC)
}

func TestCalculatePoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		weight     *float64
		length     *float64
		caughtAt   time.Time
		wantPoints int
		wantBonus  []string
	}{
		{
			name:       "no measurements midday",
			caughtAt:   atHour(12),
			wantPoints: 10,
		},
		{
			name:       "weight with prime morning hour",
			weight:     floatPtr(8.0),
			caughtAt:   atHour(6),
			wantPoints: 55,
			wantBonus:  []string{"Size bonus: +40", "Time bonus: +5"},
		},
		{
			name:       "length only outside prime time",
			length:     floatPtr(12.0),
			caughtAt:   atHour(14),
			wantPoints: 34,
			wantBonus:  []string{"Length bonus: +24"},
		},
		{
			name:       "weight takes precedence over length",
			weight:     floatPtr(2.0),
			length:     floatPtr(30.0),
			caughtAt:   atHour(12),
			wantPoints: 20,
			wantBonus:  []string{"Size bonus: +10"},
		},
		{
			name:       "weight bonus capped",
			weight:     floatPtr(500.0),
			caughtAt:   atHour(12),
			wantPoints: 60,
			wantBonus:  []string{"Size bonus: +50"},
		},
		{
			name:       "length bonus capped",
			length:     floatPtr(100.0),
			caughtAt:   atHour(12),
			wantPoints: 60,
			wantBonus:  []string{"Length bonus: +50"},
		},
		{
			name:       "evening prime hour boundary",
			caughtAt:   atHour(21),
			wantPoints: 15,
			wantBonus:  []string{"Time bonus: +5"},
		},
		{
			name:       "just after evening prime window",
			caughtAt:   atHour(22),
			wantPoints: 10,
		},
		{
			name:       "fractional weight floors",
			weight:     floatPtr(1.9),
			caughtAt:   atHour(12),
			wantPoints: 19,
			wantBonus:  []string{"Size bonus: +9"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := CalculatePoints(tc.weight, tc.length, tc.caughtAt)
			if got.Points != tc.wantPoints {
				t.Fatalf("points = %d, want %d", got.Points, tc.wantPoints)
			}
			if !reflect.DeepEqual(got.Bonuses, tc.wantBonus) {
				t.Fatalf("bonuses = %v, want %v", got.Bonuses, tc.wantBonus)
			}
		})
	}
}

func TestCalculatePointsDeterministic(t *testing.T) {
	t.Parallel()

	weight := floatPtr(3.3)
	at := atHour(19)
	first := CalculatePoints(weight, nil, at)
	second := CalculatePoints(weight, nil, at)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced %v and %v", first, second)
	}
}

func TestCalculatePointsBounds(t *testing.T) {
	t.Parallel()

	for w := 0.0; w < 200; w += 7.3 {
		weight := w
		got := CalculatePoints(&weight, nil, atHour(3))
		if got.Points < 10 {
			t.Fatalf("weight %g: points %d below base", w, got.Points)
		}
		if got.Points > 10+maxSizeBonus {
			t.Fatalf("weight %g: size bonus exceeded cap, points %d", w, got.Points)
		}
	}
	for l := 0.0; l < 120; l += 4.1 {
		length := l
		got := CalculatePoints(nil, &length, atHour(3))
		if got.Points < 10 || got.Points > 10+maxSizeBonus {
			t.Fatalf("length %g: points %d out of bounds", l, got.Points)
		}
	}
}

func TestConditionScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data *weather.Data
		want int
	}{
		{name: "nil snapshot", data: nil, want: 0},
		{
			name: "ideal conditions",
			data: &weather.Data{Temperature: 72, Pressure: 30.1, WindSpeed: 4},
			want: 20,
		},
		{
			name: "marginal temperature",
			data: &weather.Data{Temperature: 85, Pressure: 29.5, WindSpeed: 15},
			want: 5,
		},
		{
			name: "calm but cold",
			data: &weather.Data{Temperature: 40, Pressure: 29.8, WindSpeed: 2},
			want: 5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := ConditionScore(tc.data); got != tc.want {
				t.Fatalf("score = %d, want %d", got, tc.want)
			}
		})
	}
}
