package report

import (
	"os"
	"strings"
	"testing"

	"github.com/promptelo/promptelo/internal/scorer"
)

func TestScoreClass(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.95, "excellent"},
		{0.8, "excellent"},
		{0.6, "good"},
		{0.4, "average"},
		{0.1, "poor"},
	}
	for _, tt := range tests {
		if got := scoreClass(tt.score); got != tt.want {
			t.Errorf("scoreClass(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestTierName(t *testing.T) {
	tests := []struct {
		elo  int
		want string
	}{
		{2300, "Grandmaster"},
		{2000, "Master"},
		{1800, "Expert"},
		{1500, "Advanced"},
		{1200, "Intermediate"},
		{800, "Beginner"},
	}
	for _, tt := range tests {
		if got := tierName(tt.elo); got != tt.want {
			t.Errorf("tierName(%d) = %q, want %q", tt.elo, got, tt.want)
		}
	}
}

func TestSuggestionsLowScores(t *testing.T) {
	s := scorer.Scores{
		HeuristicScores: scorer.HeuristicScores{
			Clarity:     0.9,
			Specificity: 0.2,
			Context:     0.3,
			Creativity:  0.9,
		},
		Novelty: 0.9,
	}

	got := suggestions(s)
	if len(got) != 2 {
		t.Fatalf("len(suggestions) = %d, want 2", len(got))
	}
	if got[0].Title != "Add More Details" {
		t.Errorf("first suggestion = %q, want specificity hint", got[0].Title)
	}
	if got[1].Title != "Provide More Context" {
		t.Errorf("second suggestion = %q, want context hint", got[1].Title)
	}
}

func TestSuggestionsAllStrong(t *testing.T) {
	s := scorer.Scores{
		HeuristicScores: scorer.HeuristicScores{
			Clarity:     0.9,
			Specificity: 0.8,
			Context:     0.85,
			Creativity:  0.9,
		},
		Novelty: 0.95,
	}

	got := suggestions(s)
	if len(got) != 1 || got[0].Title != "Excellent Prompt!" {
		t.Errorf("suggestions = %+v, want single congrats entry", got)
	}
}

func TestGenerate(t *testing.T) {
	path, err := Generate("Implement a parser for RFC 3339 timestamps in internal/clock.go", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	for _, want := range []string{"<!DOCTYPE html>", "PromptElo Analysis", "Clarity", "RFC 3339"} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if !strings.Contains(html, "N/A") {
		t.Errorf("offline report should show N/A rank")
	}
}

func TestGenerateEscapesPrompt(t *testing.T) {
	path, err := Generate("what does <script>alert(1)</script> do", nil)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "<script>alert(1)</script>") {
		t.Error("prompt was not HTML-escaped")
	}
}
