// Package main is the entrypoint for the MailTriage API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/triagehq/mailtriage/internal/ai"
	"github.com/triagehq/mailtriage/internal/api"
	"github.com/triagehq/mailtriage/internal/api/handler"
	mw "github.com/triagehq/mailtriage/internal/api/middleware"
	"github.com/triagehq/mailtriage/internal/api/response"
	"github.com/triagehq/mailtriage/internal/cache"
	"github.com/triagehq/mailtriage/internal/classifier"
	"github.com/triagehq/mailtriage/internal/config"
	"github.com/triagehq/mailtriage/internal/escalation"
	"github.com/triagehq/mailtriage/internal/publish"
	"github.com/triagehq/mailtriage/internal/reply"
	"github.com/triagehq/mailtriage/internal/triage"
	"github.com/triagehq/mailtriage/pkg/models"
)

const shutdownTimeout = 30 * time.Second

func main() {
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "ai_provider", cfg.AI.Provider, "env", cfg.Server.Env)

	policy, err := config.LoadPolicy(cfg.Triage.PolicyFile)
	if err != nil {
		return fmt.Errorf("load triage policy: %w", err)
	}
	if cfg.Triage.PolicyFile != "" {
		slog.Info("triage policy loaded", "file", cfg.Triage.PolicyFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect Redis when configured
	var redisCache cache.Cache
	if cfg.Redis.URL != "" {
		rc, err := cache.NewRedisCache(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("create redis cache: %w", err)
		}
		defer rc.Close()
		if err := rc.Ping(ctx); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		redisCache = rc
		slog.Info("redis connected")
	}

	// 3. Create the chat provider
	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		return fmt.Errorf("create AI provider: %w", err)
	}
	slog.Info("AI provider initialized", "provider", provider.Name())

	// 4. Create the outcome publisher
	var publisher publish.Publisher = publish.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp := publish.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kp.Close()
		publisher = kp
		slog.Info("kafka publisher initialized", "topic", cfg.Kafka.Topic)
	}

	// 5. Assemble the pipeline
	classifierOpts := []classifier.Option{classifier.WithTimeout(cfg.AI.InferenceTimeout)}
	if redisCache != nil {
		classifierOpts = append(classifierOpts, classifier.WithCache(redisCache))
	}
	emailClassifier := classifier.New(provider, policy, classifierOpts...)
	replyGenerator := reply.New(provider, policy, reply.WithTimeout(cfg.AI.InferenceTimeout))

	pipeline := triage.New(emailClassifier, replyGenerator, escalation.Config{
		LegalKeywords:          policy.LegalKeywords,
		RefundKeywords:         policy.RefundKeywords,
		ConfidenceThreshold:    policy.ConfidenceThreshold,
		RepeatContactThreshold: policy.RepeatContactThreshold,
	},
		triage.WithPublisher(publisher),
		triage.WithWorkers(cfg.Triage.BatchWorkers),
	)

	// 6. Build router with dependencies
	deps := api.Dependencies{
		RateLimit: mw.NewRateLimit(redisCache, cfg.Triage.RequestsPerMin),

		HealthHandler:        healthHandler(provider, redisCache),
		ClassifyHandler:      handler.NewClassifyHandler(emailClassifier),
		ProcessTicketHandler: handler.NewProcessTicketHandler(pipeline),
		BatchProcessHandler:  handler.NewBatchProcessHandler(pipeline),
		CategoriesHandler:    handler.NewCategoriesHandler(policy),
		MetricsHandler:       promhttp.Handler(),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler reports provider wiring and cache connectivity.
func healthHandler(provider models.ChatProvider, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"provider": provider.Name(),
			"cache":    "disabled",
		}

		degraded := false
		if c != nil {
			checks["cache"] = "ok"
			if err := c.Ping(r.Context()); err != nil {
				checks["cache"] = "degraded"
				degraded = true
			}
		}

		if degraded {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
