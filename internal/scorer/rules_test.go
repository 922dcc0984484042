package scorer

import "testing"

func TestScoreHeuristicsRange(t *testing.T) {
	prompts := []string{
		"",
		"fix",
		"help me with stuff and things, maybe somehow",
		"Implement a parseConfig function in internal/config/config.go that validates the DATABASE_URL. It must support 3 fallback values because our codebase currently uses env vars. Add unit tests with mocks.",
	}

	for _, prompt := range prompts {
		scores := ScoreHeuristics(prompt)
		for name, v := range map[string]float64{
			"clarity":     scores.Clarity,
			"specificity": scores.Specificity,
			"context":     scores.Context,
			"creativity":  scores.Creativity,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s(%q) = %v, out of [0,1]", name, prompt, v)
			}
		}
	}
}

func TestScoreHeuristicsDeterministic(t *testing.T) {
	prompt := "Refactor the auth middleware to support JWT and sessions together"
	first := ScoreHeuristics(prompt)
	for i := 0; i < 5; i++ {
		if got := ScoreHeuristics(prompt); got != first {
			t.Fatalf("non-deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestClarityRules(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		higher bool // relative to the bare base prompt
	}{
		{"action verb raises", "implement the thing", true},
		{"vague language lowers", "do stuff somehow", false},
		{"formatting raises", "run `go vet` please", true},
	}

	base := ScoreHeuristics("zzz qqq").Clarity
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreHeuristics(tt.prompt).Clarity
			if tt.higher && got <= base {
				t.Errorf("clarity(%q) = %v, want > %v", tt.prompt, got, base)
			}
			if !tt.higher && got >= base {
				t.Errorf("clarity(%q) = %v, want < %v", tt.prompt, got, base)
			}
		})
	}
}

func TestSpecificityRewardsDetail(t *testing.T) {
	vague := ScoreHeuristics("make it better").Specificity
	detailed := ScoreHeuristics("Update src/main.go: the parseArgs function returns nil on 3 of the flags. Add a unit test covering the error path.").Specificity
	if detailed <= vague {
		t.Errorf("specificity detailed=%v <= vague=%v", detailed, vague)
	}
}

func TestContextRewardsBackground(t *testing.T) {
	bare := ScoreHeuristics("add a button").Context
	rich := ScoreHeuristics("I'm working on a React app and currently the build fails with error: module not found. I need to avoid upgrading node because of CI constraints.").Context
	if rich <= bare {
		t.Errorf("context rich=%v <= bare=%v", rich, bare)
	}
}

func TestCreativityPenalizesBoilerplate(t *testing.T) {
	boilerplate := ScoreHeuristics("fix my todo app").Creativity
	exploratory := ScoreHeuristics("What if we explore an alternative design pattern to combine caching with streaming?").Creativity
	if exploratory <= boilerplate {
		t.Errorf("creativity exploratory=%v <= boilerplate=%v", exploratory, boilerplate)
	}
}

func TestShortVaguePromptScoresLow(t *testing.T) {
	scores := ScoreHeuristics("fix")
	if scores.Specificity > 0.35 {
		t.Errorf("specificity(fix) = %v, want low", scores.Specificity)
	}
	if scores.Context > 0.35 {
		t.Errorf("context(fix) = %v, want low", scores.Context)
	}
}

func TestDanglingPronoun(t *testing.T) {
	if !danglingPronoun("please fix it") {
		t.Error("trailing bare pronoun not detected")
	}
	if danglingPronoun("this function is broken") {
		t.Error("referenced pronoun flagged")
	}
}
