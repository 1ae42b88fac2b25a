package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movesmart/internal/api"
	"movesmart/internal/config"
	"movesmart/internal/database"
	"movesmart/internal/events"
	"movesmart/internal/google"
	"movesmart/internal/logging"
	"movesmart/internal/metrics"
	"movesmart/internal/models"
	"movesmart/internal/notify"
	"movesmart/internal/repository"
	"movesmart/internal/service"
	"movesmart/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := initDatabase(cfg, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sheetsService := initGoogleSheets(ctx, cfg, &logger)

	// Воркер синхронизации диспетчерской таблицы
	var sheetsWorker *worker.SheetsWorker
	if sheetsService != nil {
		retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
		sheetsWorker = worker.NewSheetsWorker(db, sheetsService, redisClient, retryPolicy, &logger)
		go sheetsWorker.Start(ctx)
	}

	eventBus := events.NewEventBus()
	initDispatcher(cfg, eventBus, logger)

	catalogCache := initCatalogCache(redisClient, &logger)

	// Инициализация бизнес-сервисов
	bookingService := newBookingService(db, eventBus, sheetsWorker, &logger)
	contactService := service.NewContactService(db, eventBus, &logger)
	catalogService := service.NewCatalogService(db, catalogCache, &logger)

	httpServer := api.NewHTTPServer(cfg.HTTP, cfg.RateLimit, db, bookingService, contactService, catalogService, logger)

	startMetrics(ctx, cfg, &logger)

	return startServer(ctx, httpServer, &logger)
}

func newBookingService(db *database.DB, eventBus *events.EventBus, sheetsWorker *worker.SheetsWorker, logger *zerolog.Logger) *service.BookingService {
	// A nil *SheetsWorker must not reach the interface field.
	if sheetsWorker == nil {
		return service.NewBookingService(db, eventBus, nil, logger)
	}
	return service.NewBookingService(db, eventBus, sheetsWorker, logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := logging.Component(baseLogger, "api-main")

	return cfg, logger, closer, nil
}

func initDatabase(cfg *config.Config, logger *zerolog.Logger) (*database.DB, error) {
	db, err := database.NewDB(cfg.Database.Path, logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}

	seedsPath := cfg.Seeds.Path
	if seedsPath == "" {
		seedsPath = "configs/seeds.yaml"
	}
	seeds, err := config.LoadSeeds(seedsPath)
	if err != nil {
		logger.Warn().Err(err).Str("seeds_path", seedsPath).Msg("seed data unavailable, skipping")
		return db, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SeedCatalog(ctx, seeds.ServiceModels(), seeds.TestimonialModels()); err != nil {
		logger.Error().Err(err).Msg("seed catalog")
		return nil, err
	}

	return db, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

func initCatalogCache(redisClient *redis.Client, logger *zerolog.Logger) *repository.FailoverCatalogCache {
	ttl := time.Duration(models.DefaultCacheTTL) * time.Second
	fallback := repository.NewMemoryCatalogCache(ttl)
	primary := repository.NewRedisCatalogCache(redisClient, ttl)
	return repository.NewFailoverCatalogCache(primary, fallback, logger)
}

func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if !cfg.Sheets.Enabled {
		return nil
	}

	sheetsService, err := google.NewSheetsService(ctx, cfg.Sheets)
	if err != nil {
		logger.Warn().Err(err).Msg("google sheets init failed, continuing without sheets")
		return nil
	}

	if err := sheetsService.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("google sheets connection test failed, continuing without sheets")
		return nil
	}

	logger.Info().Msg("google sheets connected")
	return sheetsService
}

func initDispatcher(cfg *config.Config, eventBus *events.EventBus, logger zerolog.Logger) {
	smtpClient := notify.NewSMTPClient(cfg.SMTP, logger)
	twilioClient := notify.NewTwilioClient(cfg.SMS, logger)
	sender := notify.NewProviderSender(smtpClient, twilioClient)

	telegram, err := notify.NewTelegramAlerter(cfg.Telegram, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("telegram alerter init failed, continuing without telegram")
	}

	dispatcher := notify.NewDispatcher(sender, notify.NewVariations(nil), cfg.Company, notify.DispatcherOptions{
		AdminEmail: cfg.SMTP.AdminEmail,
		AdminPhone: cfg.SMS.AdminPhone,
		SMSEnabled: sender.SMSAvailable(),
		Telegram:   telegram,
	}, logger)
	dispatcher.Register(eventBus)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}

	logger.Info().Msg("server stopped")
	return nil
}
