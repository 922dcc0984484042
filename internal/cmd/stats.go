package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/promptelo/promptelo/internal/client"
	"github.com/promptelo/promptelo/internal/config"
)

// RunStats prints the community corpus snapshot.
func RunStats() {
	cfg := config.LoadClient()
	c := client.New(cfg.ServerURL, cfg.UserID, cfg.RequestTimeout())

	stats, err := c.Stats(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptelo: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("PromptElo Community Stats")
	fmt.Printf("  Total prompts:  %d\n", stats.TotalPrompts)
	fmt.Printf("  Unique users:   %d\n", stats.UniqueUsers)
	fmt.Printf("  Avg novelty:    %.2f\n", stats.AvgNoveltyScore)

	if len(stats.PercentileThresholds) > 0 {
		fmt.Println("  Novelty percentiles:")
		keys := make([]string, 0, len(stats.PercentileThresholds))
		for k := range stats.PercentileThresholds {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s: %.2f\n", k, stats.PercentileThresholds[k])
		}
	}

	if len(stats.TopNoveltyScores) > 0 {
		fmt.Print("  Top novelty scores:")
		for _, s := range stats.TopNoveltyScores {
			fmt.Printf(" %.2f", s)
		}
		fmt.Println()
	}
}
