// Package scorer rates prompts locally on four heuristic criteria and
// fuses them with the community novelty signal into an Elo rating.
package scorer

import (
	"regexp"
	"strings"
)

// Rule is one independent presence test with a fixed delta. Rules
// never exclude each other, so criterion scores are order-independent.
type Rule struct {
	Name  string
	Match func(prompt string) bool
	Delta float64
}

func regexRule(name string, pattern string, delta float64) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name:  name,
		Match: re.MatchString,
		Delta: delta,
	}
}

var danglingPronounRe = regexp.MustCompile(`(?i)\b(it|this|that)\b(\s+\w+)?`)

// danglingPronoun reports a bare "it"/"this"/"that" with no referent
// following it.
func danglingPronoun(prompt string) bool {
	for _, m := range danglingPronounRe.FindAllStringSubmatch(prompt, -1) {
		if m[2] == "" {
			return true
		}
	}
	return false
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

func multipleSentences(prompt string) bool {
	count := 0
	for _, s := range sentenceSplitRe.Split(prompt, -1) {
		if strings.TrimSpace(s) != "" {
			count++
		}
	}
	return count >= 2
}

func wordCountBetween(min, max int) func(string) bool {
	return func(prompt string) bool {
		n := len(strings.Fields(prompt))
		return n > min && (max <= 0 || n <= max)
	}
}

var clarityRules = []Rule{
	regexRule("action verbs", `(?i)\b(create|build|write|implement|add|remove|fix|update|refactor|test|debug|explain|analyze|compare|list|show|find|search|generate|convert|parse|validate|check)\b`, 0.1),
	regexRule("question words", `(?i)\b(how|what|why|where|when|which|can you|could you|please)\b`, 0.1),
	regexRule("vague language", `(?i)\b(something|somehow|maybe|probably|sort of|kind of|stuff|things)\b`, -0.1),
	{Name: "dangling pronoun", Match: danglingPronoun, Delta: -0.1},
	{Name: "multiple sentences", Match: multipleSentences, Delta: 0.1},
	regexRule("formatting", "```|`[^`]+`|\n[-*]\\s|\n\\d+\\.", 0.1),
}

var specificityRules = []Rule{
	regexRule("file paths", `[\w/]+\.\w{1,5}\b|[\w/]+/[\w/]+`, 0.15),
	regexRule("identifiers", `\b[a-z]+[A-Z]\w*|[A-Z][a-z]+[A-Z]\w*|\b\w+_\w+\b`, 0.1),
	regexRule("code snippets", "```|`[^`]+`", 0.15),
	regexRule("technical terms", `(?i)\b(function|class|method|variable|parameter|argument|return|type|interface|module|package|import|export|async|await|promise|callback|API|endpoint|database|query|schema|migration)\b`, 0.05),
	regexRule("error vocabulary", `(?i)\b(error|exception|bug|issue|crash|undefined|null|NaN|stack trace)\b`, 0.05),
	regexRule("testing vocabulary", `(?i)\b(test|unit test|integration|mock|stub|fixture|assertion)\b`, 0.05),
	regexRule("numeric literals", `\b\d+\b`, 0.1),
	{Name: "long prompt", Match: wordCountBetween(50, 0), Delta: 0.1},
	{Name: "medium prompt", Match: wordCountBetween(20, 50), Delta: 0.05},
}

var contextRules = []Rule{
	regexRule("current state", `(?i)\b(currently|right now|at the moment|existing|current)\b`, 0.1),
	regexRule("ownership", `(?i)\b(I have|I'm using|I'm working on|my project|our codebase)\b`, 0.1),
	regexRule("causality", `(?i)\b(because|since|as|due to|the reason)\b`, 0.1),
	regexRule("intent", `(?i)\b(want to|need to|trying to|goal is|objective is)\b`, 0.1),
	regexRule("requirements", `(?i)\b(must|should|cannot|shouldn't|don't want|avoid|without|only|prefer)\b`, 0.1),
	regexRule("compatibility", `(?i)\b(compatible|support|work with|integrate)\b`, 0.1),
	regexRule("quality attributes", `(?i)\b(performance|security|scalability|maintainability)\b`, 0.1),
	regexRule("environment", `(?i)\b(version|v\d|node|python|npm|pip|docker|OS|linux|mac|windows)\b`, 0.1),
	regexRule("error output", `(?i)error:|exception|traceback|at line \d+`, 0.15),
}

var creativityRules = []Rule{
	regexRule("exploratory", `(?i)\b(explore|experiment|try|investigate|consider|alternative|different approach|other ways)\b`, 0.1),
	regexRule("open questions", `(?i)\b(what if|could we|is there a way|would it be possible)\b`, 0.1),
	regexRule("improvement", `(?i)\b(optimize|improve|enhance|better|best practice|elegant|clean)\b`, 0.1),
	regexRule("combination", `(?i)\b(combine|merge|integrate|connect|bridge|link)\b`, 0.1),
	regexRule("conjunction pairs", `(?i)\b(and|with|plus|alongside|together)\b.*\b(and|with|plus)\b`, 0.1),
	regexRule("creative vocabulary", `(?i)\b(creative|novel|unique|innovative|unconventional|clever)\b`, 0.1),
	regexRule("design vocabulary", `(?i)\b(design|architect|pattern|strategy|approach)\b`, 0.1),
	regexRule("boilerplate opener", `(?i)^(fix|help|how do I|what is)\s`, -0.05),
	regexRule("boilerplate request", `(?i)\b(hello world|todo app|CRUD|basic|simple example)\b`, -0.05),
}

func applyRules(prompt string, base float64, rules []Rule) float64 {
	score := base
	for _, rule := range rules {
		if rule.Match(prompt) {
			score += rule.Delta
		}
	}
	return clamp01(score)
}

// HeuristicScores holds the four local criteria, each in [0,1].
type HeuristicScores struct {
	Clarity     float64 `json:"clarity"`
	Specificity float64 `json:"specificity"`
	Context     float64 `json:"context"`
	Creativity  float64 `json:"creativity"`
}

// ScoreHeuristics rates a prompt on all local criteria. Pure and
// deterministic; never fails.
func ScoreHeuristics(prompt string) HeuristicScores {
	return HeuristicScores{
		Clarity:     applyRules(prompt, 0.5, clarityRules),
		Specificity: applyRules(prompt, 0.3, specificityRules),
		Context:     applyRules(prompt, 0.3, contextRules),
		Creativity:  applyRules(prompt, 0.4, creativityRules),
	}
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
