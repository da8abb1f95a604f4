//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weather-companion/internal/bootstrap"
	"github.com/yanqian/weather-companion/internal/domain/advisor"
	"github.com/yanqian/weather-companion/internal/domain/chat"
	"github.com/yanqian/weather-companion/internal/infra/config"
	"github.com/yanqian/weather-companion/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-companion/internal/infra/weather/openweather"
	httpiface "github.com/yanqian/weather-companion/internal/interface/http"
	"github.com/yanqian/weather-companion/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideChatGPTClient,
		provideWeatherClient,
		provideChatConfig,
		provideProfileRepository,
		provideChatStore,
		advisor.NewService,
		chat.NewService,
		wire.Bind(new(advisor.WeatherClient), new(*openweather.Client)),
		wire.Bind(new(chat.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(chat.AdviceProvider), new(advisor.Service)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
