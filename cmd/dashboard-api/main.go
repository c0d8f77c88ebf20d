package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsodoma4050/business-intelligence/internal/audit"
	"github.com/jsodoma4050/business-intelligence/internal/config"
	"github.com/jsodoma4050/business-intelligence/internal/metrics"
	"github.com/jsodoma4050/business-intelligence/internal/platform/sqlite"
	auditrepo "github.com/jsodoma4050/business-intelligence/internal/repository/audit"
	"github.com/jsodoma4050/business-intelligence/internal/server"
	"github.com/jsodoma4050/business-intelligence/internal/stock"
	"github.com/jsodoma4050/business-intelligence/internal/transcript"
	"github.com/jsodoma4050/business-intelligence/internal/upstream"
)

func main() {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := config.Load()
	setupLogger(cfg)

	if config.EnvAPIKey() == "" {
		slog.Warn("API_KEY is not set; upstream-backed endpoints will answer 500 until it is")
	}

	// Root context: cancelled on SIGINT/SIGTERM so in-flight upstream calls
	// stop promptly during graceful shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	observer := upstream.Observer(metrics.ObserveUpstream)
	var auditSvc *audit.Service
	recorderDone := make(chan struct{})

	if cfg.AuditDBPath != "" {
		db, err := sqlite.Open(cfg.AuditDBPath)
		if err != nil {
			slog.Error("failed to open audit database", "error", err)
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()

		repo := auditrepo.NewRepository(db.DB)
		recorder := audit.NewRecorder(repo, cfg.AuditWorkers, cfg.AuditBuffer)
		observer = upstream.Observers(metrics.ObserveUpstream, recorder.Observe)
		auditSvc = audit.NewService(repo)

		go func() {
			recorder.Run(rootCtx)
			close(recorderDone)
		}()
		slog.Info("fetch audit log enabled", "path", cfg.AuditDBPath)
	} else {
		close(recorderDone)
	}

	client := upstream.New(
		upstream.WithBaseURL(cfg.UpstreamBaseURL),
		upstream.WithObserver(observer),
	)

	srv := server.New(rootCtx, cfg.Port, server.Deps{
		Stocks:             stock.NewService(client, stock.DefaultCompanies()),
		Transcripts:        transcript.NewService(client),
		Audit:              auditSvc,
		APIKey:             config.EnvAPIKey,
		ExposeErrorDetails: cfg.ExposeErrorDetails(),
	})

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("server started", "port", cfg.Port, "upstream", cfg.UpstreamBaseURL)
	<-done

	// Drain connections with a deadline, then cancel the root context so the
	// audit recorder flushes what the last requests queued.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	rootCancel()
	<-recorderDone
	slog.Info("server stopped")
}

func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
