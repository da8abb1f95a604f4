package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-companion/internal/domain/advisor"
	"github.com/yanqian/weather-companion/internal/domain/chat"
	"github.com/yanqian/weather-companion/internal/infra/chathistory"
	"github.com/yanqian/weather-companion/internal/infra/config"
	"github.com/yanqian/weather-companion/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-companion/internal/infra/profilerepo"
	"github.com/yanqian/weather-companion/internal/infra/weather/openweather"
)

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
}

func provideWeatherClient(cfg *config.Config) (*openweather.Client, error) {
	return openweather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey)
}

func provideChatConfig(cfg *config.Config) chat.Config {
	return chat.Config{
		Model:            cfg.LLM.Model,
		Temperature:      cfg.LLM.Temperature,
		Prompt:           cfg.Chat.Prompt,
		MaxHistoryTurns:  cfg.Chat.MaxHistoryTurns,
		MaxHistoryTokens: cfg.Chat.MaxHistoryTokens,
		MaxToolRounds:    cfg.Chat.MaxToolRounds,
	}
}

func provideProfileRepository(cfg *config.Config, logger *slog.Logger) advisor.ProfileRepository {
	fallback := profilerepo.NewMemoryRepository()
	dsn := strings.TrimSpace(cfg.Profiles.Postgres.DSN)
	if dsn == "" {
		logger.Info("profiles postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.Profiles.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Profiles.Postgres.MaxConns
	}
	if cfg.Profiles.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Profiles.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("profiles postgres repository enabled")
	return profilerepo.NewPostgresRepository(pool)
}

func provideChatStore(cfg *config.Config, logger *slog.Logger) chat.Store {
	if cfg.Chat.Redis.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return chathistory.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return chathistory.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("chat valkey history store enabled", "addr", cfg.Chat.Redis.Addr)
			return chathistory.NewValkeyStore(client, "chat", cfg.Chat.HistoryTTL)
		}
	}
	return chathistory.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Chat.Redis.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Chat.Redis.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Chat.Redis.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
