package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"travelbot/internal/adapter/api"
	"travelbot/internal/adapter/client"
	"travelbot/internal/adapter/store"
	"travelbot/internal/config"
	"travelbot/internal/domain/repository"
	"travelbot/internal/tripcontext"
	"travelbot/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
	settings := config.FromEnv()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Pipeline construction and the bounded LRU that memoizes it
	factory := client.NewFactory(
		settings.OpenAIAPIKey,
		settings.GeminiAPIKey,
		settings.RequestTimeout,
		settings.MaxRetries,
		logger,
	)
	chains := usecase.NewChainCache(factory, usecase.DefaultChainCapacity, logger)

	contexts := tripcontext.NewLoader(settings.TripContextPath, logger)
	responder := usecase.NewResponder(chains, contexts, usecase.Options{
		Model:        settings.DefaultModel,
		Temperature:  settings.DefaultTemperature,
		SystemPrompt: usecase.DefaultSystemPrompt,
	}, logger)
	extractor := usecase.NewFlightExtractor(chains, settings.DefaultModel, logger)

	// Redis-backed per-sender limiter, active only when configured
	var limiter repository.MessageLimiter
	if settings.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		limiter = store.NewRedisLimiter(rdb, settings.DailyMessageLimit)
		logger.Info("rate limiting enabled", "addr", settings.RedisAddr, "daily_limit", settings.DailyMessageLimit)
	}

	app := fiber.New(fiber.Config{
		AppName: "TravelBot",
	})

	handler := api.NewChatHandler(responder, extractor, limiter, logger)
	api.SetupRouter(app, handler, logger)

	logger.Info("travelbot listening", "port", settings.Port)
	log.Fatal(app.Listen(":" + settings.Port))
}
