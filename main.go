package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"wortmonitor/internal/auth"
	"wortmonitor/internal/config"
	"wortmonitor/internal/credstore"
	"wortmonitor/internal/feed"
	"wortmonitor/internal/pipeline"
	"wortmonitor/internal/prefs"
	"wortmonitor/internal/ui"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Handle interrupt signals for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "wortmonitor: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file in the data dir.
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "wortmonitor.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))

	// Open the remember-me credential store
	store, err := credstore.Open(filepath.Join(cfg.DataDir, "credstore"))
	if err != nil {
		return err
	}
	defer store.Close()

	// Wire the pipeline: exchanger -> resolver -> fetcher -> parser
	authClient := auth.NewClient(cfg.FirebaseAPIKey, cfg.IdentityBaseURL)
	feedClient := feed.NewClient()
	orch := pipeline.New(authClient, feedClient, cfg.DatabaseBaseURL)

	// Auto sign-in when remember-me was set on a previous run
	var autoSignIn *credstore.Credentials
	if creds, ok, err := credstore.Load(store); err != nil {
		slog.Warn("loading remembered credentials failed", "error", err)
	} else if ok {
		autoSignIn = &creds
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Orchestrator: orch,
		Store:        store,
		PrefsPath:    prefs.Path(cfg.DataDir),
		AutoSignIn:   autoSignIn,
	})
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
