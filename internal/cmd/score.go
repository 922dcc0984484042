package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/promptelo/promptelo/internal/client"
	"github.com/promptelo/promptelo/internal/config"
	"github.com/promptelo/promptelo/internal/scorer"
)

// hookInput is the JSON shape delivered on stdin by the editor hook.
type hookInput struct {
	Prompt string `json:"prompt"`
}

type hookOutput struct {
	SystemMessage string `json:"systemMessage"`
}

// RunScore reads a prompt from stdin and prints the Elo badge. The
// hook contract is to stay silent on bad input rather than fail the
// caller.
func RunScore() {
	data, err := io.ReadAll(os.Stdin)
	if err != nil || len(data) == 0 {
		return
	}

	var input hookInput
	if err := json.Unmarshal(data, &input); err != nil || input.Prompt == "" {
		return
	}

	cfg := config.LoadClient()
	provider := client.New(cfg.ServerURL, cfg.UserID, cfg.RequestTimeout())

	result := scorer.Analyze(input.Prompt, provider)

	out, err := json.Marshal(hookOutput{SystemMessage: result.Badge})
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptelo error: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
