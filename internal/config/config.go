package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	LLM      LLMConfig      `toml:"llm"`
	Index    IndexConfig    `toml:"index"`
	Chunking ChunkingConfig `toml:"chunking"`
	Redis    RedisConfig    `toml:"redis"`
	Eval     EvalConfig     `toml:"eval"`
	CORS     CORSConfig     `toml:"cors"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type LLMConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
}

type IndexConfig struct {
	StorePath string  `toml:"store_path"`
	TopK      int     `toml:"top_k"`
	Diversity float64 `toml:"diversity"`
}

type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

type RedisConfig struct {
	Addr              string `toml:"addr"` // empty disables the history cache
	Password          string `toml:"password"`
	DB                int    `toml:"db"`
	HistoryTTLSeconds int    `toml:"history_ttl_seconds"`
}

type EvalConfig struct {
	DatasetPath           string  `toml:"dataset_path"`
	FaithfulnessThreshold float64 `toml:"faithfulness_threshold"`
}

type CORSConfig struct {
	AllowOrigins []string `toml:"allow_origins"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// HistoryCacheEnabled reports whether a Redis-backed session history
// cache should be wired up.
func (c *Config) HistoryCacheEnabled() bool {
	return c.Redis.Addr != ""
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "docqa",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		LLM: LLMConfig{
			BaseURL:        "https://api.openai.com/v1",
			APIKey:         "",
			Model:          "gpt-3.5-turbo",
			EmbeddingModel: "text-embedding-3-small",
		},
		Index: IndexConfig{
			StorePath: "data/index.db",
			TopK:      3,
			Diversity: 0.5,
		},
		Chunking: ChunkingConfig{
			Size:    400,
			Overlap: 150,
		},
		Redis: RedisConfig{
			Addr:              "",
			Password:          "",
			DB:                0,
			HistoryTTLSeconds: 1800,
		},
		Eval: EvalConfig{
			DatasetPath:           "evaluation/ground_truth.json",
			FaithfulnessThreshold: 0.6,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.EmbeddingModel = getEnv("LLM_EMBEDDING_MODEL", cfg.LLM.EmbeddingModel)

	cfg.Index.StorePath = getEnv("INDEX_STORE_PATH", cfg.Index.StorePath)
	cfg.Index.TopK = getEnvAsInt("INDEX_TOP_K", cfg.Index.TopK)
	cfg.Index.Diversity = getEnvAsFloat("INDEX_DIVERSITY", cfg.Index.Diversity)

	cfg.Chunking.Size = getEnvAsInt("CHUNK_SIZE", cfg.Chunking.Size)
	cfg.Chunking.Overlap = getEnvAsInt("CHUNK_OVERLAP", cfg.Chunking.Overlap)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.HistoryTTLSeconds = getEnvAsInt("REDIS_HISTORY_TTL_SECONDS", cfg.Redis.HistoryTTLSeconds)

	cfg.Eval.DatasetPath = getEnv("EVAL_DATASET_PATH", cfg.Eval.DatasetPath)
	cfg.Eval.FaithfulnessThreshold = getEnvAsFloat("EVAL_FAITHFULNESS_THRESHOLD", cfg.Eval.FaithfulnessThreshold)

	if origins := getEnv("CORS_ALLOW_ORIGINS", ""); origins != "" {
		var list []string
		for _, p := range strings.Split(origins, ",") {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		cfg.CORS.AllowOrigins = list
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
