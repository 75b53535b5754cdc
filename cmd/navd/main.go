package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mchmarny/navd/pkg/config"
	"github.com/mchmarny/navd/pkg/logger"
	"github.com/mchmarny/navd/pkg/server"
)

var (
	version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"   // Set at build time via -ldflags "-X main.commit=commit"
)

func main() {
	if err := run(); err != nil {
		slog.Error("navd failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	// Flags override the environment.
	port := flag.Int("port", settings.Port, "Port to run the server on")
	menuFile := flag.String("menu", settings.MenuFile, "Path to the menu YAML file, embedded default when empty")
	unmatched := flag.String("unmatched", settings.Unmatched, "Active index for unmatched paths: first or none")
	flag.Parse()

	log := logger.SetDefault("navd", version, settings.LogLevel)
	log.Info("starting navd", "commit", commit)

	policy, err := config.ParseUnmatched(*unmatched)
	if err != nil {
		return err
	}

	m, err := config.LoadMenu(*menuFile)
	if err != nil {
		return err
	}
	log.Info("menu loaded",
		"title", m.Title,
		"entries", len(m.Entries()),
		"aliases", len(m.Aliases),
		"unmatched", policy.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return m.Run(ctx, policy,
		server.WithPort(*port),
		server.WithErrorLog(logger.ErrorLog(log)),
	)
}
