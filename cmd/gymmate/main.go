package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/gymmate/internal/config"
	"github.com/claude/gymmate/internal/mcp"
	"github.com/claude/gymmate/internal/metrics"
	"github.com/claude/gymmate/internal/profile"
	"github.com/claude/gymmate/internal/registry"
	"github.com/claude/gymmate/internal/server"
	"github.com/claude/gymmate/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	log.Info("GymMate starting", "version", Version)

	// Stores
	reg := registry.NewSeeded()
	if !cfg.Seed.Defaults {
		reg, _ = registry.New(nil)
	}
	prof := profile.New()
	log.Info("program registry ready", "programs", reg.Len(), "seeded", cfg.Seed.Defaults)

	// Session journal
	ctx := context.Background()
	db, err := storage.Open(ctx)
	if err != nil {
		log.Error("failed to open session database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	stopJournal := db.Journal(reg, prof, log)
	defer stopJournal()

	// Metrics
	promReg := metrics.SetupPrometheus()
	m := metrics.NewManager("gymmate", "api", promReg)
	stopMetrics := m.Observe(reg, prof)
	defer stopMetrics()

	// Create server
	srv := server.New(reg, prof, db, m, server.Options{
		APIKey:      cfg.Auth.APIKey,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, log)
	srv.MountMetrics(metrics.Handler(promReg))
	if cfg.MCP.Enabled {
		mcpSrv := mcp.New(mcp.Local{Registry: reg, Profile: prof}, Version, log)
		srv.MountMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))
		log.Info("MCP endpoint enabled", "path", "/mcp")
	}
	if cfg.Auth.APIKey == "" {
		log.Warn("no auth.api_key configured, mutating routes are open")
	}

	// Listener: tsnet or plain TCP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	// Request contexts are cancelled on shutdown so open event streams end.
	baseCtx, cancelBase := context.WithCancel(ctx)
	httpSrv := &http.Server{
		Handler:     srv,
		BaseContext: func(net.Listener) context.Context { return baseCtx },
	}
	httpSrv.RegisterOnShutdown(cancelBase)

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
