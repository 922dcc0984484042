package main

import (
	"fmt"
	"os"

	"github.com/promptelo/promptelo/internal/cmd"
)

func main() {
	if len(os.Args) < 2 {
		cmd.RunServer()
		return
	}

	switch os.Args[1] {
	case "server":
		cmd.RunServer()
	case "score":
		cmd.RunScore()
	case "stats":
		cmd.RunStats()
	case "health":
		cmd.RunHealth()
	case "setup":
		cmd.RunSetup()
	case "report":
		cmd.RunReport(os.Args[2:])
	case "help":
		showHelp()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		showHelp()
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("PromptElo - Single Binary Console")
	fmt.Println("Usage: ./promptelo [command] [args]")
	fmt.Println("\nAvailable commands:")
	fmt.Println("  server   Start the scoring API server (default)")
	fmt.Println("  score    Read a hook payload from stdin and print the Elo badge")
	fmt.Println("  stats    Show community corpus statistics")
	fmt.Println("  health   Check the configured server")
	fmt.Println("  setup    First-run setup (anonymous identity, defaults)")
	fmt.Println("  report   Generate an HTML analysis report (args: <prompt>)")
	fmt.Println("  help     Show this help message")
}
