// Copyright 2026 The Pipeboard Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pipeboard/pipeboard/internal/admin"
	"github.com/pipeboard/pipeboard/internal/audit"
	"github.com/pipeboard/pipeboard/internal/client"
	"github.com/pipeboard/pipeboard/internal/config"
	"github.com/pipeboard/pipeboard/internal/observability/logger"
	"github.com/pipeboard/pipeboard/internal/observability/metrics"
	"github.com/pipeboard/pipeboard/internal/observability/tracing"
	"github.com/pipeboard/pipeboard/internal/session"
	"github.com/pipeboard/pipeboard/internal/store/memory"
	"github.com/pipeboard/pipeboard/internal/store/postgres"
	transportHTTP "github.com/pipeboard/pipeboard/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.InitLogger(logger.Config{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: cfg.Observability.ServiceName,
	})
	slog.Info("starting pipeboard sales dashboard")

	// Phase: CLI Commands
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := runMigrate(cfg); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx := context.Background()

	// Initialize tracer
	tracer, err := tracing.New(ctx, tracing.Config{
		Enabled:        cfg.Observability.OTELEnabled,
		ServiceName:    cfg.Observability.ServiceName,
		ServiceVersion: cfg.Observability.ServiceVersion,
		SamplingRate:   1.0,
	})
	if err != nil {
		slog.Error("failed to initialize tracer", logger.Error(err))
	}
	defer tracer.Shutdown(ctx)

	// Initialize meter and domain counters
	meter, err := metrics.New(ctx, metrics.Config{
		Enabled: cfg.Observability.OTELEnabled,
	}, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize meter", logger.Error(err))
		os.Exit(1)
	}
	instruments, err := metrics.NewInstruments(meter)
	if err != nil {
		slog.Error("failed to create instruments", logger.Error(err))
		os.Exit(1)
	}

	// Initialize the record store
	var store client.Store
	var refresher *client.Refresher
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := postgres.New(ctx, postgres.Config{
			URL:          cfg.Database.URL,
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			Database:     cfg.Database.Database,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", logger.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("connected to database")

		store = postgres.NewClientRepository(db)
		refresher = client.NewRefresher(store, cfg.Store.RefreshInterval)
	default:
		slog.Info("using in-memory record store")
		store = memory.NewStore()
	}

	// Initialize services
	auditLogger := audit.NewSlogLogger()
	clientService := client.NewService(store, auditLogger)
	sessionService := session.NewService(cfg.Session.Lifetime, cfg.Session.IdleTimeout)

	// Admin gate credential verifier
	hasher := admin.NewPasswordHasher(
		cfg.Admin.Argon2Memory,
		cfg.Admin.Argon2Iterations,
		cfg.Admin.Argon2Parallelism,
		cfg.Admin.Argon2SaltLength,
		cfg.Admin.Argon2KeyLength,
	)
	verifier, err := admin.NewStaticVerifier(cfg.Admin.Username, cfg.Admin.Password, hasher)
	if err != nil {
		slog.Error("failed to initialize admin verifier", logger.Error(err))
		os.Exit(1)
	}

	// Rate Limiter
	rateLimiter := transportHTTP.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize HTTP handler
	opts := []transportHTTP.Option{transportHTTP.WithInstruments(instruments)}
	if refresher != nil {
		opts = append(opts, transportHTTP.WithRefresher(refresher))
	}
	handler := transportHTTP.NewHandler(
		clientService,
		sessionService,
		verifier,
		auditLogger,
		transportHTTP.SessionConfig{
			CookieName:     cfg.Session.CookieName,
			CookiePath:     cfg.Session.CookiePath,
			CookieSecure:   cfg.Session.CookieSecure,
			CookieHTTPOnly: cfg.Session.CookieHTTPOnly,
			Lifetime:       cfg.Session.Lifetime,
		},
		cfg.Report.WindowDays,
		opts...,
	)

	// Create router
	router := transportHTTP.NewRouter(handler, rateLimiter)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Periodic full re-read of a database-backed store
	if refresher != nil {
		go refresher.Run(runCtx)
	}

	// Stale limiter-entry sweep
	go rateLimiter.Run(runCtx)

	// Session cleanup goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if err := sessionService.CleanupExpired(runCtx); err != nil {
					slog.ErrorContext(runCtx, "failed to cleanup expired sessions", logger.Error(err))
				}
			}
		}
	}()

	// Start server
	go func() {
		slog.Info("starting http server", logger.Component("server"), logger.Operation("listen"))
		slog.Info(fmt.Sprintf("listening on %s", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", logger.Error(err))
	}

	slog.Info("server stopped")
}

func runMigrate(cfg *config.Config) error {
	ctx := context.Background()
	db, err := postgres.New(ctx, postgres.Config{
		URL:          cfg.Database.URL,
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Println("Applying initial schema...")
	if err := db.Migrate(ctx, postgres.InitialSchema); err != nil {
		return err
	}
	fmt.Println("Migration successful.")
	return nil
}
