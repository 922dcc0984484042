package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/promptelo/promptelo/internal/client"
	"github.com/promptelo/promptelo/internal/config"
	"github.com/promptelo/promptelo/internal/report"
)

// RunReport renders the HTML analysis for the prompt given as args
// and prints the output path.
func RunReport(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: promptelo report <prompt>")
		os.Exit(1)
	}
	prompt := strings.Join(args, " ")

	cfg := config.LoadClient()
	provider := client.New(cfg.ServerURL, cfg.UserID, cfg.RequestTimeout())

	path, err := report.Generate(prompt, provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptelo: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(path)
}
