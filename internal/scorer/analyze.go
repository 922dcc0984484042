package scorer

import (
	"fmt"
	"strings"
)

// NoveltyProvider is the community server seen from the local scorer.
type NoveltyProvider interface {
	ScoreNovelty(prompt string) (noveltyScore, percentile float64, err error)
}

// Result is the full scoring breakdown for one prompt.
type Result struct {
	Scores            Scores   `json:"scores"`
	Elo               int      `json:"elo"`
	Tier              Tier     `json:"-"`
	Badge             string   `json:"badge"`
	NoveltyPercentile *float64 `json:"novelty_percentile,omitempty"`
	APIAvailable      bool     `json:"api_available"`
}

// Analyze scores a prompt locally and, when the provider answers,
// folds in the community novelty signal. Any remote failure degrades
// to DefaultNovelty; the caller always gets a rating.
func Analyze(prompt string, provider NoveltyProvider) Result {
	scores := Scores{
		HeuristicScores: ScoreHeuristics(prompt),
		Novelty:         DefaultNovelty,
	}

	var percentile *float64
	available := false

	if provider != nil {
		if noveltyScore, p, err := provider.ScoreNovelty(prompt); err == nil {
			scores.Novelty = noveltyScore
			percentile = &p
			available = true
		}
	}

	elo := Elo(scores)

	return Result{
		Scores:            scores,
		Elo:               elo,
		Tier:              EloTier(elo),
		Badge:             FormatBadge(elo, percentile),
		NoveltyPercentile: percentile,
		APIAvailable:      available,
	}
}

// FormatBadge renders the slot-machine badge shown after each prompt.
func FormatBadge(elo int, noveltyPercentile *float64) string {
	tier := EloTier(elo)

	var lines []string
	lines = append(lines, "🎰 ━━━━━━━━━━━━━━━━━━━━ 🎰")
	lines = append(lines, fmt.Sprintf("   %s %d • %s %s", tier.Symbol, elo, tier.Name, tier.Symbol))

	if noveltyPercentile != nil {
		p := *noveltyPercentile
		label := NoveltyLabel(p)
		if p >= 85 {
			lines = append(lines, fmt.Sprintf("   %s TOP %d%% • %s %s", label.Symbol, 100-int(p), label.Name, label.Symbol))
		} else {
			lines = append(lines, fmt.Sprintf("   %s Novelty: %s", label.Symbol, label.Name))
		}
	}

	lines = append(lines, "━━━━━━━━━━━━━━━━━━━━━━━━━")

	return strings.Join(lines, "\n")
}
