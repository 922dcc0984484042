package novelty

import (
	"math"
	"testing"
)

func matchesWithSim(sims ...float64) []Match {
	ms := make([]Match, len(sims))
	for i, s := range sims {
		ms[i] = Match{ID: int64(i + 1), Similarity: s}
	}
	return ms
}

func TestScoreEmptyIsMaximallyNovel(t *testing.T) {
	if got := Score(nil); got != 1.0 {
		t.Errorf("Score(nil) = %v, want 1.0", got)
	}
	if got := Score([]Match{}); got != 1.0 {
		t.Errorf("Score(empty) = %v, want 1.0", got)
	}
}

func TestScoreExactDuplicate(t *testing.T) {
	got := Score(matchesWithSim(1.0))
	if got > 0.1 {
		t.Errorf("Score(exact match) = %v, want <= 0.1", got)
	}
}

func TestScoreAlwaysInUnitInterval(t *testing.T) {
	cases := [][]Match{
		matchesWithSim(1.0, 1.0, 1.0),
		matchesWithSim(0.99),
		matchesWithSim(0.95, 0.90, 0.85),
		matchesWithSim(0.70),
		matchesWithSim(0.0),
		matchesWithSim(0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71, 0.71),
	}

	for _, ms := range cases {
		got := Score(ms)
		if got < 0 || got > 1 {
			t.Errorf("Score(%v matches) = %v, out of [0,1]", len(ms), got)
		}
	}
}

func TestScoreMonotoneInSimilarity(t *testing.T) {
	prev := math.Inf(1)
	for sim := 0.0; sim <= 1.0; sim += 0.01 {
		got := Score(matchesWithSim(sim))
		if got > prev+1e-12 {
			t.Fatalf("Score not non-increasing at sim=%v: %v > %v", sim, got, prev)
		}
		prev = got
	}
}

func TestScoreSegmentBoundariesContinuous(t *testing.T) {
	const eps = 1e-6
	for _, boundary := range []float64{0.70, 0.85, 0.95} {
		below := Score(matchesWithSim(boundary - eps))
		above := Score(matchesWithSim(boundary + eps))
		if math.Abs(below-above) > 1e-3 {
			t.Errorf("discontinuity at %v: %v vs %v", boundary, below, above)
		}
	}
}

func TestScoreCountDecay(t *testing.T) {
	few := Score(matchesWithSim(0.72))
	many := Score(matchesWithSim(0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72, 0.72))
	if many >= few {
		t.Errorf("more matches should lower novelty: few=%v many=%v", few, many)
	}
}

func TestScoreWeightsFavorTopMatch(t *testing.T) {
	// A highly similar top match should dominate low-ranked ones.
	dominated := Score(matchesWithSim(0.99, 0.70, 0.70))
	balanced := Score(matchesWithSim(0.80, 0.80, 0.80))
	if dominated >= balanced {
		t.Errorf("top-weighted average not dominant: %v >= %v", dominated, balanced)
	}
}
