package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intervai/internal/behavioral"
	"intervai/internal/call"
	"intervai/internal/config"
	"intervai/internal/events"
	"intervai/internal/feedback"
	"intervai/internal/generation"
	"intervai/internal/handlers"
	"intervai/internal/jobs"
	"intervai/internal/llm"
	_ "intervai/internal/llm/gemini"
	"intervai/internal/metrics"
	"intervai/internal/prompts"
	"intervai/internal/routers"
	"intervai/internal/store"
	"intervai/internal/store/mongostore"
	"intervai/internal/store/sqlstore"
	"intervai/internal/utils"
	"intervai/internal/voice"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newRouter(cfg *config.Config) *chi.Mux {
	router := chi.NewRouter()

	// cors middleware
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware("intervai"))
	return router
}

func registerRoutes(router *chi.Mux, cfg *config.Config, healthHandler *handlers.HealthHandler, questionHandler *handlers.QuestionHandler, api routers.APIHandlers) {
	routers.HealthRoutes(router, healthHandler)
	routers.QuestionRoutes(router, questionHandler)
	routers.APIRoutes(router, cfg.JWTSecret, api)
}

// openStore connects the persistence gateway selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongostore.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		s, err := mongostore.NewStore(ctx, client, cfg.MongoDB)
		if err != nil {
			client.Disconnect(ctx)
			return nil, err
		}
		return s, nil
	case config.StorePostgres:
		s, err := sqlstore.OpenPostgres(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.StoreSQLite:
		s, err := sqlstore.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

func main() {
	logger, err := utils.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("store", cfg.StoreDriver),
		zap.Bool("events", cfg.RedisAddr != ""),
		zap.Bool("voice_gateway", cfg.Voice.GatewayURL != ""))

	// prompt manager
	promptManager, err := prompts.NewPromptManager()
	if err != nil {
		logger.Fatal("Failed to initialize prompt manager", zap.Error(err))
	}

	// AI provider based on configuration
	aiProvider, err := llm.NewProvider(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize AI provider", zap.Error(err))
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}

	// events stay disabled without redis; the notifiers must stay untyped nil then
	var (
		interviewNotifier handlers.Notifier
		feedbackNotifier  feedback.Notifier
		rdb               *redis.Client
	)
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err), zap.String("addr", cfg.RedisAddr))
		}
		publisher := events.NewPublisher(rdb)
		interviewNotifier = publisher
		feedbackNotifier = publisher

		subscriber := events.NewSubscriber(rdb, db, logger)
		go func() {
			if err := subscriber.Run(ctx, nil); err != nil {
				logger.Error("user_deleted subscriber stopped", zap.Error(err))
			}
		}()
	}

	var dialer voice.Dialer = voice.WebhookDialer{}
	if cfg.Voice.GatewayURL != "" {
		dialer = voice.NewGatewayDialer(cfg.Voice.GatewayURL, logger)
	}

	selector := behavioral.NewSelector(nil)
	pipeline := feedback.NewPipeline(aiProvider, promptManager, db, feedbackNotifier, logger)
	registry := call.NewRegistry(cfg.SessionTTL)

	sessionDeps := call.Deps{
		Voice:      dialer,
		Credential: cfg.Voice,
		Interviews: db,
		Extractor:  generation.NewDetailsExtractor(aiProvider, promptManager, logger),
		Feedback:   pipeline,
		Prompts:    promptManager,
		Selector:   selector,
		Notifier:   interviewNotifier,
		Logger:     logger,
	}

	healthHandler := handlers.NewHealthHandler(aiProvider, promptManager, db, cfg)
	questionHandler := handlers.NewQuestionHandler(generation.NewQuestionGenerator(aiProvider, promptManager, logger), db, interviewNotifier, logger)
	api := routers.APIHandlers{
		Interviews: handlers.NewInterviewHandler(db, interviewNotifier, logger),
		Feedback:   handlers.NewFeedbackHandler(db, db, pipeline, logger),
		Sessions:   handlers.NewSessionHandler(registry, db, sessionDeps, logger),
		Catalog:    handlers.NewCatalogHandler(db, selector, logger),
	}

	sweeper := jobs.NewDraftSweeperJob(db, &jobs.SweeperConfig{
		Schedule: cfg.DraftSweepSchedule,
		MaxAge:   cfg.DraftMaxAge,
		Enabled:  true,
	}, logger)
	if err := sweeper.Start(); err != nil {
		logger.Error("Failed to start draft sweeper", zap.Error(err))
	}

	router := newRouter(cfg)
	registerRoutes(router, cfg, healthHandler, questionHandler, api)

	serverAddr := ":" + cfg.Port

	// http server with timeouts
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// starting server in a goroutine
	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// wait for interrupt signal to gracefully shutdown the server
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	sweeper.Stop()
	registry.Close()
	stop()

	// graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if rdb != nil {
		rdb.Close()
	}
	if err := db.Close(shutdownCtx); err != nil {
		logger.Warn("Failed to close store", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
