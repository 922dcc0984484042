// Package report renders a prompt analysis as a standalone HTML page.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/promptelo/promptelo/internal/scorer"
)

// scoreClass buckets a [0,1] criterion score into a CSS class.
func scoreClass(score float64) string {
	switch {
	case score >= 0.8:
		return "excellent"
	case score >= 0.6:
		return "good"
	case score >= 0.4:
		return "average"
	default:
		return "poor"
	}
}

// tierName is the long-form tier label used on the report page. The
// console badge uses the short all-caps ladder instead.
func tierName(elo int) string {
	switch {
	case elo >= 2200:
		return "Grandmaster"
	case elo >= 2000:
		return "Master"
	case elo >= 1800:
		return "Expert"
	case elo >= 1500:
		return "Advanced"
	case elo >= 1200:
		return "Intermediate"
	default:
		return "Beginner"
	}
}

// Suggestion is an improvement hint tied to one criterion.
type Suggestion struct {
	Icon  string
	Title string
	Text  string
}

var suggestionCatalog = map[string]Suggestion{
	"clarity": {
		Icon:  "💡",
		Title: "Improve Clarity",
		Text:  "Use specific action verbs (create, implement, fix) and avoid vague language like 'something' or 'stuff'. Structure your request in clear sentences.",
	},
	"specificity": {
		Icon:  "🎯",
		Title: "Add More Details",
		Text:  "Include file names, function names, or code snippets. Mention specific technologies, versions, or constraints that are relevant.",
	},
	"context": {
		Icon:  "📝",
		Title: "Provide More Context",
		Text:  "Explain your current situation, what you've tried, and any constraints. Include error messages or relevant background information.",
	},
	"creativity": {
		Icon:  "✨",
		Title: "Explore Different Approaches",
		Text:  "Consider asking about alternative solutions, best practices, or trade-offs. Frame problems in interesting or novel ways.",
	},
	"novelty": {
		Icon:  "🌟",
		Title: "Try Unique Requests",
		Text:  "Your prompt is similar to many others. Consider combining concepts in new ways or exploring less common use cases.",
	},
}

var congratsSuggestion = Suggestion{
	Icon:  "🎉",
	Title: "Excellent Prompt!",
	Text:  "Your prompt scores well across all criteria. Keep up the great work!",
}

// suggestions picks hints for the lowest-scoring criteria, at most
// three, and only below 0.7. A strong prompt gets a single congrats
// entry instead.
func suggestions(s scorer.Scores) []Suggestion {
	type entry struct {
		name  string
		score float64
	}
	entries := []entry{
		{"clarity", s.Clarity},
		{"specificity", s.Specificity},
		{"context", s.Context},
		{"creativity", s.Creativity},
		{"novelty", s.Novelty},
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].score < entries[j].score
	})

	var out []Suggestion
	for _, e := range entries[:3] {
		if e.score < 0.7 {
			out = append(out, suggestionCatalog[e.name])
		}
	}
	if len(out) == 0 {
		out = []Suggestion{congratsSuggestion}
	}
	return out
}

type criterion struct {
	Name    string
	Score   float64
	Percent int
	Class   string
}

type reportData struct {
	Elo         int
	TierEmoji   string
	TierName    string
	Criteria    []criterion
	Suggestions []Suggestion
	GlobalRank  string
	Prompt      string
	Timestamp   string
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>PromptElo Report</title>
<style>
body { font-family: sans-serif; padding: 20px; background: #1e293b; color: #f8fafc; max-width: 720px; margin: 0 auto; }
h1 { font-size: 1.5rem; }
.elo { font-size: 2.5rem; font-weight: bold; }
.tier { color: #94a3b8; }
.bar { background: #334155; border-radius: 4px; height: 12px; margin: 4px 0 12px; }
.fill { height: 100%; border-radius: 4px; }
.excellent { background: #22c55e; }
.good { background: #84cc16; }
.average { background: #eab308; }
.poor { background: #ef4444; }
.suggestion-item { display: flex; gap: 12px; background: #334155; border-radius: 8px; padding: 12px; margin: 8px 0; }
.suggestion-icon { font-size: 1.5rem; }
.suggestion-text h3 { margin: 0 0 4px; font-size: 1rem; }
.suggestion-text p { margin: 0; color: #cbd5e1; font-size: 0.9rem; }
pre { background: #0f172a; padding: 12px; border-radius: 8px; white-space: pre-wrap; }
footer { color: #64748b; font-size: 0.8rem; margin-top: 24px; }
</style>
</head>
<body>
<h1>PromptElo Analysis</h1>
<div class="elo">{{.Elo}} {{.TierEmoji}}</div>
<div class="tier">{{.TierName}} · {{.GlobalRank}}</div>
<h2>Criteria</h2>
{{range .Criteria}}<div>{{.Name}}: {{printf "%.2f" .Score}}</div>
<div class="bar"><div class="fill {{.Class}}" style="width: {{.Percent}}%"></div></div>
{{end}}
<h2>Suggestions</h2>
{{range .Suggestions}}<div class="suggestion-item">
<span class="suggestion-icon">{{.Icon}}</span>
<div class="suggestion-text"><h3>{{.Title}}</h3><p>{{.Text}}</p></div>
</div>
{{end}}
<h2>Prompt</h2>
<pre>{{.Prompt}}</pre>
<footer>Generated {{.Timestamp}}</footer>
</body>
</html>
`))

// Generate analyzes the prompt and writes the report to a temp file,
// returning its path.
func Generate(prompt string, provider scorer.NoveltyProvider) (string, error) {
	result := scorer.Analyze(prompt, provider)

	rank := "N/A"
	if result.NoveltyPercentile != nil {
		rank = fmt.Sprintf("Top %d%%", 100-int(*result.NoveltyPercentile))
	}

	data := reportData{
		Elo:       result.Elo,
		TierEmoji: result.Tier.Symbol,
		TierName:  tierName(result.Elo),
		Criteria: []criterion{
			{"Clarity", result.Scores.Clarity, int(result.Scores.Clarity * 100), scoreClass(result.Scores.Clarity)},
			{"Specificity", result.Scores.Specificity, int(result.Scores.Specificity * 100), scoreClass(result.Scores.Specificity)},
			{"Context", result.Scores.Context, int(result.Scores.Context * 100), scoreClass(result.Scores.Context)},
			{"Creativity", result.Scores.Creativity, int(result.Scores.Creativity * 100), scoreClass(result.Scores.Creativity)},
			{"Novelty", result.Scores.Novelty, int(result.Scores.Novelty * 100), scoreClass(result.Scores.Novelty)},
		},
		Suggestions: suggestions(result.Scores),
		GlobalRank:  rank,
		Prompt:      prompt,
		Timestamp:   time.Now().Format("2006-01-02 15:04:05"),
	}

	path := filepath.Join(os.TempDir(), "promptelo_report.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	return path, nil
}
