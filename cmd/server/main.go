package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vamostennis/newsletter/internal/auth"
	"github.com/vamostennis/newsletter/internal/commands"
	"github.com/vamostennis/newsletter/internal/config"
	"github.com/vamostennis/newsletter/internal/core"
	"github.com/vamostennis/newsletter/internal/enrich"
	"github.com/vamostennis/newsletter/internal/logging"
	"github.com/vamostennis/newsletter/internal/session"
	"github.com/vamostennis/newsletter/internal/web"
)

func main() {
	// Subcommands run instead of the server
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		commands.HashPassword(os.Args[2:])
		return
	}

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"session_ttl", cfg.Session.TTL,
		"enrichment_enabled", cfg.Enrich.GeminiAPIKey != "",
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Load operator credentials if a file is present
	creds, err := auth.Load(cfg.Auth.CredentialsFile)
	if err != nil {
		slog.Error("failed to load credentials file", "file", cfg.Auth.CredentialsFile, "error", err)
		os.Exit(1)
	}
	if creds == nil {
		slog.Warn("no credentials file found, API is unauthenticated",
			"file", cfg.Auth.CredentialsFile,
			"hint", "run the hash-password subcommand to create one",
		)
	} else {
		slog.Info("credentials loaded", "user", creds.Username)
	}

	// Connect the text enrichment client when an API key is configured.
	// Without one every generated text uses its static fallback.
	var port core.TextPort
	if cfg.Enrich.GeminiAPIKey != "" {
		gemini, err := enrich.NewGemini(context.Background(), cfg.Enrich.GeminiAPIKey, cfg.Enrich.Model, slog.Default())
		if err != nil {
			slog.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		port = gemini
		slog.Info("text enrichment enabled", "model", cfg.Enrich.Model)
	} else {
		slog.Info("text enrichment disabled, using static fallbacks")
	}

	// Build the composer, applying booking link overrides from config
	composer := core.NewComposer(port)
	if cfg.Booking.AdultURL != "" {
		composer.AdultBookingURL = cfg.Booking.AdultURL
	}
	if cfg.Booking.JuniorURL != "" {
		composer.JuniorBookingURL = cfg.Booking.JuniorURL
	}

	sessions := session.NewManager(composer, port, cfg.Session.TTL, slog.Default())

	server := web.NewServer(cfg, sessions, creds)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(cfg.Server.Addr()); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
