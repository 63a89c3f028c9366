package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fadilmartias/cv-matcher/internal/config"
	"github.com/fadilmartias/cv-matcher/internal/domain/fiber/handler"
	"github.com/fadilmartias/cv-matcher/internal/middleware"
	"github.com/fadilmartias/cv-matcher/internal/service"
	"github.com/fadilmartias/cv-matcher/internal/usecase"
	"github.com/fadilmartias/cv-matcher/internal/util"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig, err := config.LoadAppConfig()
	if err != nil {
		log.Fatal(err)
	}
	logger := util.NewLogger(appConfig.LogLevel, appConfig.IsProduction())
	slog.SetDefault(logger)

	aiConfig := mustLoad(config.LoadAIConfig)
	geminiConfig := mustLoad(config.LoadGeminiConfig)
	openRouterConfig := mustLoad(config.LoadOpenRouterConfig)
	uploadConfig := mustLoad(config.LoadUploadConfig)
	extractorConfig := mustLoad(config.LoadExtractorConfig)
	if err := aiConfig.ValidateProvider(geminiConfig, openRouterConfig); err != nil {
		log.Fatalf("invalid ai configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompts, err := service.DefaultPromptTemplates()
	if err != nil {
		log.Fatal(err)
	}
	extractor, err := service.NewPDFExtractor(extractorConfig)
	if err != nil {
		log.Fatal(err)
	}
	ai, err := service.NewAIClient(ctx, aiConfig, geminiConfig, openRouterConfig)
	if err != nil {
		log.Fatal(err)
	}
	uc := usecase.NewEvaluationUsecase(extractor, ai, prompts)
	evaluateHandler := handler.NewEvaluateHandler(uc, uploadConfig)

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    uploadConfig.BodyLimit(),
		ReadTimeout:  time.Minute,
		WriteTimeout: aiConfig.Timeout + 30*time.Second,
		ErrorHandler: handler.ErrorHandler,
	})
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: appConfig.CORSAllowOrigins,
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Use(middleware.RateLimiter(appConfig.RateLimitPerMin, 1*time.Minute))

	evaluateHandler.RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logger.Debug("runtime stats", slog.Int("goroutines", runtime.NumGoroutine()))
			}
		}
	}()

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(aiConfig.Timeout + 5*time.Second); err != nil {
			logger.Error("shutdown", slog.Any("error", err))
		}
	}()

	logger.Info("server running",
		slog.String("addr", appConfig.ListenAddr()),
		slog.String("provider", ai.Name()),
		slog.String("extractor", extractorConfig.Kind),
		slog.String("base_url", appConfig.BaseURL),
	)
	if err := app.Listen(appConfig.ListenAddr()); err != nil {
		log.Fatal(err)
	}
}

func mustLoad[T any](load func() (*T, error)) *T {
	cfg, err := load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
