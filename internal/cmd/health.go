package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/promptelo/promptelo/internal/client"
	"github.com/promptelo/promptelo/internal/config"
)

// RunHealth probes the configured server and reports its state.
func RunHealth() {
	cfg := config.LoadClient()
	c := client.New(cfg.ServerURL, cfg.UserID, cfg.RequestTimeout())

	health, err := c.Health(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "promptelo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Server:     %s\n", cfg.ServerURL)
	fmt.Printf("Status:     %s\n", health.Status)
	fmt.Printf("Version:    %s\n", health.Version)
	fmt.Printf("Database:   %v\n", health.DatabaseConnected)
	fmt.Printf("Embeddings: %v\n", health.EmbeddingService)

	if health.Status != "healthy" {
		os.Exit(1)
	}
}
