package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/promptelo/promptelo/internal/config"
)

const welcomeMessage = `Welcome to PromptElo! Your prompts are now scored with Elo ratings.

Defaults:
  - Server: Global rankings (promptelo-api.onrender.com)
  - Identity: Anonymous (auto-generated ID)

To customize: edit ~/.promptelo/config.json
To view detailed stats: run promptelo stats`

// anonUserID derives a short anonymous identity.
func anonUserID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "anon-" + hex[:12]
}

// RunSetup performs first-run initialization. Subsequent runs exit
// silently so the command is safe to hook on session start.
func RunSetup() {
	cfg := config.LoadClient()
	if cfg.SetupComplete {
		return
	}

	out, _ := json.Marshal(hookOutput{SystemMessage: welcomeMessage})
	fmt.Println(string(out))

	if cfg.UserID == "" {
		cfg.UserID = anonUserID()
	}
	cfg.SetupComplete = true

	if err := config.SaveClient(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "promptelo: failed to save config: %v\n", err)
	}
}
