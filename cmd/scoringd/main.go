// Copyright (C) 2026 TalentForge (eng@talentforge.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// scoringd is the scoring-integrity service: it exposes consistency
// evaluation and gaming detection over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/talentforge/TalentForge/pkg/logging"
	"github.com/talentforge/TalentForge/services/llm"
	"github.com/talentforge/TalentForge/services/scoring/api"
	"github.com/talentforge/TalentForge/services/scoring/catalog"
	"github.com/talentforge/TalentForge/services/scoring/config"
	"github.com/talentforge/TalentForge/services/scoring/consistency"
	"github.com/talentforge/TalentForge/services/scoring/gaming"
	"github.com/talentforge/TalentForge/services/scoring/history"
	"github.com/talentforge/TalentForge/services/scoring/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to scoring.yaml (optional).")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Default().Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}

	logger, err := logging.New(logging.Config{
		Level:   logging.ParseLevel(cfg.Logging.Level),
		LogDir:  cfg.Logging.LogDir,
		Service: cfg.Service.Name,
		JSON:    cfg.Logging.JSON,
	})
	if err != nil {
		logging.Default().Error("failed to initialize logging", "error", err.Error())
		os.Exit(1)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scoringd exited with error", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("scoringd stopped")
}

func run(ctx context.Context, cfg config.ServiceConfig, logger *logging.Logger) error {
	telemetryShutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: api.ServiceVersion,
		Environment:    cfg.Service.Environment,
		MetricExporter: "prometheus",
	})
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetryShutdown(shutdownCtx)
	}()

	metrics, err := telemetry.NewMetrics(telemetry.Meter())
	if err != nil {
		return err
	}

	// Model registry: OpenAI primary, local Ollama secondary. A missing
	// secondary degrades cross-validation instead of blocking startup.
	registry := llm.NewRegistry()
	if os.Getenv("OPENAI_MODEL") == "" && cfg.Models.Primary != "" {
		os.Setenv("OPENAI_MODEL", cfg.Models.Primary)
	}
	primary, err := llm.NewOpenAIClient()
	if err != nil {
		return err
	}
	registry.Register(cfg.Consistency.PrimaryModel, primary)

	secondary, err := llm.NewOllamaClient(cfg.Models.SecondaryHost, cfg.Models.SecondaryModel)
	if err != nil {
		logger.Warn("secondary model unavailable, cross-validation will degrade",
			"host", cfg.Models.SecondaryHost, "error", err.Error())
	} else {
		registry.Register(cfg.Consistency.CrossValidation.SecondaryModel, secondary)
	}

	templateStore, err := catalog.New(catalog.Config{
		DataDir:     cfg.Storage.CatalogDir,
		BusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return err
	}
	defer templateStore.Close()

	tracker, err := history.Open(history.Config{
		Path:       cfg.Storage.HistoryDir,
		SyncWrites: true,
		Retention:  24 * time.Hour,
		Logger:     logger.Slog(),
	})
	if err != nil {
		return err
	}
	defer tracker.Close()

	var watcher *config.KeywordWatcher
	if cfg.KeywordsFile != "" {
		watcher, err = config.NewKeywordWatcher(cfg.KeywordsFile, logger)
		if err != nil {
			return err
		}
		if phrases := watcher.AIPhrases(); phrases != nil {
			cfg.Gaming.AIDetector.Phrases = phrases
		}
	}

	evaluator := consistency.NewEvaluator(registry, cfg.Consistency, logger, metrics)
	scanner := gaming.NewScanner(cfg.Gaming, catalog.NewTemplateSource(templateStore), logger, metrics)

	handlers := api.NewHandlers(evaluator, scanner, logger).WithVelocity(tracker)

	group, ctx := errgroup.WithContext(ctx)

	if watcher != nil {
		handlers.WithKeywords(watcher)
		group.Go(func() error {
			err := watcher.Watch(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	router := api.NewRouter(handlers, cfg.Service.Name)
	server := &http.Server{
		Addr:              cfg.Service.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group.Go(func() error {
		logger.Info("scoringd listening", "addr", cfg.Service.ListenAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
