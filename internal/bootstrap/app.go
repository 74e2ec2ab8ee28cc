package bootstrap

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docqa/internal/ai"
	"docqa/internal/config"
	"docqa/internal/model"
	redisClient "docqa/internal/platform/redis"
	sqliteClient "docqa/internal/platform/sqlite"
)

type App struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redisv9.Client // nil when the history cache is disabled
	AI     *ai.OpenAICompatibleClient

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := sqliteClient.New(cfg.Index.StorePath)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.EmbeddingRecord{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	var redisCli *redisv9.Client
	if cfg.HistoryCacheEnabled() {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
	}

	aiClient := ai.NewOpenAICompatibleClient(ai.Options{
		BaseURL:        cfg.LLM.BaseURL,
		APIKey:         cfg.LLM.APIKey,
		Model:          cfg.LLM.Model,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
	})

	return &App{
		Config:    cfg,
		DB:        db,
		Redis:     redisCli,
		AI:        aiClient,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
