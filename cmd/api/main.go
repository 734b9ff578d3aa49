// @title Quiz Spark API
// @version 1.0
// @description Turns documents and pasted text into multiple-choice quizzes.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer SESSION_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "quiz-spark/cmd/api/docs"
	"quiz-spark/internal/adapter"
	"quiz-spark/internal/adapter/extractor"
	"quiz-spark/internal/adapter/gcs"
	"quiz-spark/internal/adapter/llm"
	"quiz-spark/internal/adapter/quizgen"
	"quiz-spark/internal/cache"
	"quiz-spark/internal/config"
	"quiz-spark/internal/database"
	"quiz-spark/internal/domain"
	"quiz-spark/internal/handler"
	"quiz-spark/internal/logger"
	"quiz-spark/internal/metrics"
	"quiz-spark/internal/middleware"
	"quiz-spark/internal/repository"
	"quiz-spark/internal/service"
	"quiz-spark/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}
	if cfg.Storage.Bucket == "" {
		appLogger.Warn("GCS_BUCKET_NAME is not set; upload URL requests will fail")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Redis holds sessions and cached extractions
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Language models
	textModel, err := llm.NewModel(ctx, cfg.LLM, cfg.LLM.Model)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	visionModel := textModel
	if cfg.LLM.VisionModel != cfg.LLM.Model {
		visionModel, err = llm.NewModel(ctx, cfg.LLM, cfg.LLM.VisionModel)
		if err != nil {
			appLogger.Fatal("Failed to create document model client", zap.Error(err))
		}
	}
	appLogger.Info("LLM clients initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.String("vision_model", cfg.LLM.VisionModel))

	generator, err := quizgen.NewLLMQuizGenerator(textModel, cfg.LLM.Temperature, cfg.LLM.Timeout, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	textExtractor, err := extractor.NewLLMTextExtractor(visionModel, cfg.LLM.Timeout, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create text extractor", zap.Error(err))
	}

	signer := gcs.NewGCSURLSigner(cfg.Storage.CredentialsFile, appLogger)
	defer signer.Close()

	// The attempt archive is optional
	var attemptRepo domain.AttemptRepository
	var dbPing handler.Pinger
	if cfg.DatabaseEnabled() {
		db, err := database.NewSQLXOracleDB(cfg.GetDSN())
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		attemptRepo = repository.NewSQLXAttemptRepository(db)
		dbPing = handler.PingFunc(db.PingContext)
		go database.ReportPoolStats(ctx, db, appMetrics, 30*time.Second)
		appLogger.Info("Attempt archive enabled")
	} else {
		appLogger.Info("No database configured; attempt archive disabled")
	}

	validator := validation.NewValidator()

	extractionService := service.NewExtractionService(textExtractor, extractor.NewMimetypeDetector(), service.ExtractionOptions{
		Cache:    cacheAdapter,
		CacheTTL: cfg.Extraction.CacheTTL,
		MaxBytes: int64(cfg.Extraction.MaxBytes),
		Metrics:  appMetrics,
	})
	quizService := service.NewQuizGenerationService(generator, validator, appMetrics)
	uploadService := service.NewUploadService(signer, cfg.Storage.Bucket, cfg.Storage.UploadURLExpiry, validator, appMetrics)
	attemptService := service.NewAttemptService(attemptRepo)
	sessionService, err := service.NewSessionService(cacheAdapter, extractionService, quizService, attemptRepo, cfg.Session.JWTSecret, cfg.Session.TTL)
	if err != nil {
		appLogger.Fatal("Failed to create SessionService", zap.Error(err))
	}

	handlers := handler.Handlers{
		Upload:     handler.NewUploadHandler(uploadService),
		Extraction: handler.NewExtractionHandler(extractionService),
		Quiz:       handler.NewQuizHandler(quizService),
		Session:    handler.NewSessionHandler(sessionService, validator),
		Attempt:    handler.NewAttemptHandler(attemptService),
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"redis": handler.PingFunc(cacheAdapter.Ping),
			"db":    dbPing,
		}),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(requestLogger())
	app.Use(middleware.Metrics(appMetrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handler.RegisterRoutes(app, handlers, sessionService, middleware.NewValidationMiddleware(validator))

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
