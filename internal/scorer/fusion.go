package scorer

// Fusion weights over the five criteria; they sum to 1.0.
const (
	weightClarity     = 0.25
	weightSpecificity = 0.25
	weightContext     = 0.20
	weightCreativity  = 0.15
	weightNovelty     = 0.15

	eloBase  = 1200
	eloRange = 1200
	eloMax   = 2400
)

// DefaultNovelty substitutes for the community signal when the remote
// service is unreachable; the rating is always produced.
const DefaultNovelty = 0.5

// Scores are the five fused criteria, each in [0,1].
type Scores struct {
	HeuristicScores
	Novelty float64 `json:"novelty"`
}

func (s Scores) min() float64 {
	min := s.Clarity
	for _, v := range []float64{s.Specificity, s.Context, s.Creativity, s.Novelty} {
		if v < min {
			min = v
		}
	}
	return min
}

// Elo maps the weighted criteria onto the 0-2400 rating scale.
// Well-rounded prompts earn synergy bonuses: +100 when every criterion
// clears 0.7, and a further +100 above 0.8.
func Elo(s Scores) int {
	weighted := s.Clarity*weightClarity +
		s.Specificity*weightSpecificity +
		s.Context*weightContext +
		s.Creativity*weightCreativity +
		s.Novelty*weightNovelty

	elo := float64(eloBase) + (weighted-0.5)*float64(eloRange)

	if min := s.min(); min > 0.7 {
		elo += 100
		if min > 0.8 {
			elo += 100
		}
	}

	if elo < 0 {
		elo = 0
	}
	if elo > eloMax {
		elo = eloMax
	}
	return int(elo)
}

// Tier is the label and symbol attached to a rating.
type Tier struct {
	Name   string
	Symbol string
}

var tiers = []struct {
	min  int
	tier Tier
}{
	{2200, Tier{"LEGENDARY", "🏆"}},
	{2000, Tier{"MASTER", "⭐"}},
	{1800, Tier{"EXPERT", "🌟"}},
	{1500, Tier{"SKILLED", "✨"}},
	{1200, Tier{"RISING", "📈"}},
}

// EloTier returns the tier for a rating; below 1200 is NOVICE.
func EloTier(elo int) Tier {
	for _, t := range tiers {
		if elo >= t.min {
			return t.tier
		}
	}
	return Tier{"NOVICE", "📋"}
}

// NoveltyLabel classifies a population percentile.
func NoveltyLabel(percentile float64) Tier {
	switch {
	case percentile >= 95:
		return Tier{"LEGENDARY", "💎"}
	case percentile >= 85:
		return Tier{"RARE", "🌟"}
	case percentile >= 70:
		return Tier{"UNCOMMON", "✨"}
	case percentile >= 30:
		return Tier{"COMMON", "📊"}
	default:
		return Tier{"FREQUENT", "📈"}
	}
}
