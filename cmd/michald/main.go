// Command michald runs the personal orchestrator HTTP service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/michal-ai/orchestrator-go/pkg/assistant"
	"github.com/michal-ai/orchestrator-go/pkg/core"
	"github.com/michal-ai/orchestrator-go/pkg/llm"
	"github.com/michal-ai/orchestrator-go/pkg/llm/openai"
	"github.com/michal-ai/orchestrator-go/pkg/server"
	"github.com/michal-ai/orchestrator-go/pkg/storage"
	"github.com/michal-ai/orchestrator-go/pkg/storage/fixture"
	"github.com/michal-ai/orchestrator-go/pkg/storage/mysql"
	"github.com/michal-ai/orchestrator-go/pkg/storage/postgres"
	"github.com/michal-ai/orchestrator-go/pkg/storage/sqlite"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("service failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	config, err := core.LoadConfigFromEnv()
	if err != nil {
		return err
	}

	store, err := openStore(config.Storage)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("storage ready", zap.String("provider", config.Storage.Provider))

	var provider llm.Provider
	if config.LLM.APIKey != "" {
		client, err := openai.NewClient(&openai.Config{
			APIKey:  config.LLM.APIKey,
			Model:   config.LLM.Model,
			BaseURL: config.LLM.BaseURL,
		})
		if err != nil {
			// The assistant degrades to canned answers without a provider.
			logger.Warn("llm unavailable, falling back to canned responses", zap.Error(err))
		} else {
			provider = client
			defer provider.Close()
			logger.Info("llm ready", zap.String("model", config.LLM.Model))
		}
	} else {
		logger.Info("no llm api key configured, assistant runs on fallbacks")
	}

	agent, err := core.NewClient(store, core.WithMemoryPath(config.Memory.Path))
	if err != nil {
		return err
	}
	if err := agent.EnsureIngested(context.Background()); err != nil {
		return err
	}
	logger.Info("agent ingested initial snapshot")

	asst := assistant.New(provider, store)
	srv := server.New(config.Server.Addr, agent, asst, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := agent.PersistMemory(); err != nil {
		logger.Warn("memory persist failed", zap.Error(err))
	}
	return nil
}

func openStore(cfg core.StorageConfig) (storage.Store, error) {
	switch cfg.Provider {
	case "sqlite":
		return sqlite.NewClient(&sqlite.Config{DBPath: cfg.SQLitePath})
	case "postgres":
		return postgres.NewClient(&postgres.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
			SSLMode:  cfg.SSLMode,
		})
	case "mysql":
		return mysql.NewClient(&mysql.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
		})
	default:
		return fixture.NewStore(), nil
	}
}
