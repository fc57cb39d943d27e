package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"

	"github.com/hartlaw-ai/lexrag/internal/config"
	"github.com/hartlaw-ai/lexrag/internal/database"
	"github.com/hartlaw-ai/lexrag/internal/embedding"
	"github.com/hartlaw-ai/lexrag/internal/ingest"
	"github.com/hartlaw-ai/lexrag/internal/queue"
	"github.com/hartlaw-ai/lexrag/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	embedSvc := embedding.NewService(cfg.Embedding)
	index := vectorstore.NewPgIndex(db)
	store := vectorstore.NewStore(index, embedSvc, cfg.Ingest.Collection)
	ingestSvc := ingest.NewService(store, cfg.Ingest)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := queue.NewIngestWorker(ingestSvc)

	slog.Info("starting ingest worker", "concurrency", 10)
	if err := srv.Run(worker.Mux()); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
