package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/claude/gymmate/internal/config"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/claude/gymmate/internal/tui"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "optional path to config file")
	logPath := flag.String("log", "", "write logs to this file (default: discard)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("gymmate-tui", Version)
		return
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	log := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("GymMate TUI starting", "version", Version)

	reg := registry.NewSeeded()
	if !cfg.Seed.Defaults {
		reg, _ = registry.New(nil)
	}
	prof := profile.New()

	p := tea.NewProgram(tui.New(reg, prof, log), tea.WithAltScreen())
	stop := tui.Forward(p, reg, prof)
	defer stop()

	if _, err := p.Run(); err != nil {
		log.Error("tui exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
