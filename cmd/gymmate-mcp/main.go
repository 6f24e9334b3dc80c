package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/gymmate/internal/mcp"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "GymMate server URL (e.g. https://gymmate.tail1234.ts.net); empty runs an in-process store")
	apiKey := flag.String("api-key", os.Getenv("GYMMATE_AUTH_API_KEY"), "API key for mutating calls in remote mode")
	noSeed := flag.Bool("no-seed", false, "start the in-process store empty")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymmate-mcp", Version)
		return
	}

	// stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds mcp.DataSource
	if *serverURL != "" {
		ds = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("MCP remote mode", "server", *serverURL)
	} else {
		reg := registry.NewSeeded()
		if *noSeed {
			reg, _ = registry.New(nil)
		}
		ds = mcp.Local{Registry: reg, Profile: profile.New()}
		log.Info("MCP local mode", "programs", reg.Len())
	}

	if err := mcpserver.ServeStdio(mcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
