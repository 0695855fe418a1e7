package main

// @title           Sensu Relay API
// @version         1.0
// @description     Relays monitoring events into chat rooms and runs chat commands against the monitoring API.
// @host      localhost:8090
// @BasePath  /
// @securityDefinitions.basic  BasicAuth

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"

	_ "github.com/Alwanly/sensu-relay/docs/relay"
	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/internal/server/relay/handler"
	authentication "github.com/Alwanly/sensu-relay/pkg/auth"
	"github.com/Alwanly/sensu-relay/pkg/database"
	"github.com/Alwanly/sensu-relay/pkg/deps"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/middleware"
	"github.com/Alwanly/sensu-relay/pkg/pubsub"
)

func main() {
	log, err := logger.NewLoggerFromEnv("relay")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("starting relay service")

	cfg, err := config.LoadRelayConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	log.Info("configuration loaded",
		logger.String("server_addr", cfg.ServerAddr),
		logger.String("monitoring_endpoint", cfg.Monitoring.Endpoint),
		logger.Strings("broadcast_rooms", cfg.Broadcast.Rooms),
		logger.String("broadcast_policy", cfg.Broadcast.Policy),
		logger.String("message_style", cfg.Message.Style),
		logger.String("chat_backend", cfg.Chat.Backend),
	)

	mid := middleware.NewAuthMiddleware(
		middleware.SetOperatorAuth(&authentication.BasicAuthTConfig{
			Username: cfg.Operator.Username,
			Password: cfg.Operator.Password,
		}),
		middleware.SetWebhookAuth(&authentication.BasicAuthTConfig{
			Username: cfg.Webhook.Username,
			Password: cfg.Webhook.Password,
		}),
	)
	if !cfg.Operator.Enabled() {
		log.Warn("no operator credentials configured; command and journal endpoints will reject every request")
	}
	log.Info("authentication initialized", logger.Bool("webhook_auth", cfg.Webhook.Enabled()))

	app := fiber.New(fiber.Config{
		AppName:               "Sensu Relay",
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string {
			return uuid.Must(uuid.NewV7()).String()
		},
	}))
	app.Use(middleware.CanonicalLoggerMiddleware(log))

	deps := deps.App{
		Config:     cfg,
		Fiber:      app,
		Logger:     log,
		Middleware: mid,
	}

	if cfg.DatabasePath != "" {
		db, err := database.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			log.WithError(err).Fatal("failed to initialize database")
		}
		if err := database.RunMigrations(db); err != nil {
			log.WithError(err).Fatal("failed to migrate database")
		}
		log.Info("delivery journal enabled", logger.String("path", cfg.DatabasePath))
		deps.Database = db
	} else {
		log.Info("no database path configured; delivery journal disabled")
	}

	if cfg.Redis != nil {
		redisCfg := pubsub.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		redisPub, err := pubsub.NewRedisPublisher(redisCfg, log.Component("redis"))
		if err != nil {
			if cfg.Chat.Backend == config.ChatBackendRedis {
				log.WithError(err).Fatal("failed to initialize redis chat backend")
			}
			log.WithError(err).Error("failed to initialize redis, continuing without it")
		} else {
			deps.Pub = redisPub
			defer redisPub.Close()
		}
	}

	if _, err := handler.NewHandler(deps); err != nil {
		log.WithError(err).Fatal("failed to initialize relay handler")
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	ctx, cancel := context.WithCancel(context.Background())
	gErr, gCtx := errgroup.WithContext(ctx)

	gErr.Go(func() error {
		log.Info("relay service is running", logger.String("address", cfg.ServerAddr))
		if err := app.Listen(cfg.ServerAddr); err != nil {
			cancel()
			return err
		}
		return nil
	})

	gErr.Go(func() error {
		<-gCtx.Done()

		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("failed to shutdown fiber app")
			return err
		}

		if deps.Database == nil {
			return nil
		}
		conn, err := deps.Database.DB()
		if err != nil {
			log.WithError(err).Error("failed to get database connection")
			return err
		}
		if err := conn.Close(); err != nil {
			log.WithError(err).Error("failed to close database")
			return err
		}

		return nil
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		log.Info("listening for shutdown signals")
		<-sigChan
		log.Info("shutdown signal received")
		cancel()
	}()

	if err := gErr.Wait(); err != nil {
		log.WithError(err).Fatal("relay service encountered an error")
	}

	log.Info("relay service stopped gracefully")
}
