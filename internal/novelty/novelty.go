// Package novelty converts similarity search results into a 0-1
// novelty score.
package novelty

// Match is one nearest-neighbor hit, ordered by descending similarity.
type Match struct {
	ID           int64   `json:"id"`
	Similarity   float64 `json:"similarity"`
	NoveltyScore float64 `json:"novelty_score"`
}

// Score maps a ranked similarity list to [0,1]; 1 means unprecedented.
//
// The top ten matches are averaged with 1/(i+1) weights, the weighted
// average goes through a piecewise linear mapping (near-duplicates are
// pushed toward 0, below-threshold prompts toward 0.8-1.0), and a count
// decay penalizes prompts with many near-threshold precedents.
func Score(matches []Match) float64 {
	if len(matches) == 0 {
		return 1.0
	}

	top := matches
	if len(top) > 10 {
		top = top[:10]
	}

	var weightedSim, totalWeight float64
	for i, m := range top {
		weight := 1.0 / float64(i+1)
		weightedSim += m.Similarity * weight
		totalWeight += weight
	}

	avgSim := 0.0
	if totalWeight > 0 {
		avgSim = weightedSim / totalWeight
	}

	var score float64
	switch {
	case avgSim >= 0.95:
		score = 0.1 * (1 - avgSim) / 0.05
	case avgSim >= 0.85:
		score = 0.1 + 0.4*(0.95-avgSim)/0.10
	case avgSim >= 0.70:
		score = 0.5 + 0.3*(0.85-avgSim)/0.15
	default:
		score = 0.8 + 0.2*(0.70-avgSim)/0.70
	}

	countFactor := 1.0 / (1.0 + float64(len(matches))*0.05)
	score *= 0.7 + 0.3*countFactor

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
