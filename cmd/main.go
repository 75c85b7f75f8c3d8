package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videobrowse-service/config"
	"videobrowse-service/errs"
	"videobrowse-service/events"
	"videobrowse-service/handler"
	"videobrowse-service/logger"
	"videobrowse-service/metrics"
	"videobrowse-service/model"
	"videobrowse-service/router"
	"videobrowse-service/storage"
	"videobrowse-service/theme"
	"videobrowse-service/youtube"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serviceName = "videobrowse-service"

var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)
	appLog := logger.For(log, logger.ComponentApp)

	metrics.Init(serviceName, version, cfg.Environment)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openStorage(ctx, cfg, logger.For(log, logger.ComponentStorage))
	if err != nil {
		appLog.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open storage")
	}
	defer closeStore()

	var pub events.Publisher = events.Nop{}
	if cfg.NATSUrl != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATSUrl, logger.For(log, logger.ComponentEvents))
		if err != nil {
			// Events are best-effort; the views work without them.
			appLog.Warn().Err(err).Msg("NATS unavailable, activity events disabled")
		} else {
			defer natsPub.Close()
			pub = natsPub
		}
	}

	initialTheme, err := model.ParseTheme(cfg.DefaultTheme)
	if err != nil {
		appLog.Warn().Err(err).Msg("unknown DEFAULT_THEME, using dark")
		initialTheme = model.ThemeDark
	}
	themeCtx := theme.NewContext(initialTheme)
	themeCtx.Subscribe(func(t model.Theme) {
		appLog.Info().Str("theme", string(t)).Msg("theme changed")
	})

	api := youtube.New(youtube.Config{
		APIKey:    cfg.YouTubeAPIKey,
		BaseURL:   cfg.YouTubeAPIBase,
		RateLimit: cfg.YouTubeRateLimit,
		Logger:    logger.For(log, logger.ComponentYouTube),
	})

	h := handler.New(api, store, themeCtx, pub, logger.For(log, logger.ComponentHTTP))
	r := router.Setup(h, cfg.CORSOrigins)

	// Setup HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in background
	go func() {
		appLog.Info().Str("port", cfg.Port).Str("storage", cfg.StorageBackend).Msg("video browse service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info().Msg("shutting down video browse service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error().Err(err).Msg("server forced to shutdown")
	}

	appLog.Info().Msg("video browse service stopped")
}

// openStorage connects the configured history backend. The returned func
// releases it.
func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storage.Storage, func(), error) {
	switch cfg.StorageBackend {
	case "sqlite":
		s, err := storage.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
		return s, func() { _ = s.Close() }, nil

	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, fmt.Errorf("ping mongo: %w: %w", errs.ErrStorageUnavailable, err)
		}
		log.Info().Str("db", cfg.MongoDB).Msg("using mongo storage")
		return storage.NewMongo(client.Database(cfg.MongoDB)), func() { _ = client.Disconnect(context.Background()) }, nil

	case "redis":
		s, err := storage.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("using redis storage")
		return s, func() { _ = s.Close() }, nil

	case "postgres":
		s, err := storage.OpenPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Msg("using postgres storage")
		return s, s.Close, nil

	default:
		log.Info().Msg("using in-memory storage")
		return storage.NewMemory(), func() {}, nil
	}
}
