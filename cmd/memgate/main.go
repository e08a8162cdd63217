// memgate: Project Memory MCP Server
//
// A universal MCP server that integrates with any AI coding tool
// (Claude Code, OpenCode, Gemini CLI, Codex, Cursor, VS Code Copilot)
// to track project knowledge — requirements, features, bugs, changes,
// tests, documents — and derive impact analyses from it.
//
// Usage:
//
//	memgate serve              # Start MCP server (stdio transport)
//	memgate serve -config f    # Start with an explicit config file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/minhngv/memgate/internal/config"
	"github.com/minhngv/memgate/internal/logging"
	memserver "github.com/minhngv/memgate/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("memgate v%s\n", memserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config file (default $MEMGATE_CONFIG)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel)

	s, cleanup, err := memserver.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	_ = ctx // stdio server manages its own lifecycle

	log.Info("starting memgate on stdio")
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `memgate v%s — Project Memory MCP Server

Usage:
  memgate serve [-config file]   Start the MCP server (stdio transport)
  memgate version                Print the version

Environment:
  MEMGATE_CONFIG        Config file path
  MEMGATE_LOG_LEVEL     Log level (debug, info, warn, error)
  MEMGATE_DB            SQLite database path (default: in-memory)
  MEMGATE_LLM_PROVIDER  LLM provider: gemini or stub
  GEMINI_API_KEY        Gemini API key (enables the gemini provider)
  GEMINI_MODEL          Gemini model override

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "memgate": {
        "command": "memgate",
        "args": ["serve"]
      }
    }
  }
`, memserver.Version)
}
