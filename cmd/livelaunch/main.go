package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"livelaunch/internal/config"
	"livelaunch/internal/discord"
	"livelaunch/internal/metrics"
	"livelaunch/internal/publisher"
	"livelaunch/internal/scheduler"
	"livelaunch/internal/service"
	"livelaunch/internal/source/ll2"
	"livelaunch/internal/source/snapi"
	"livelaunch/internal/source/youtube"
	"livelaunch/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := metrics.Init(ctx, metrics.Config{
		Enabled: cfg.Metrics.Enabled,
		Addr:    cfg.Metrics.Addr,
		Path:    cfg.Metrics.Path,
	}, logger); err != nil {
		logger.Error("failed to start metrics", "error", err)
		os.Exit(1)
	}

	discordClient, err := discord.New(discord.Config{
		Token:   cfg.Discord.Token,
		Timeout: cfg.Discord.APITimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to create discord client", "error", err)
		os.Exit(1)
	}

	var deliverer service.Deliverer = discordClient
	if cfg.Delivery.Mode == config.DeliveryRabbitMQ {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		deliverer = rabbitMQ
	}

	// Initialize stores
	guildStore := postgres.NewGuildStore(db)
	itemStore := postgres.NewItemStore(db)
	sentStore := postgres.NewSentStore(db)
	linkStore := postgres.NewEventLinkStore(db)
	pollStateStore := postgres.NewPollStateStore(db)
	txManager := postgres.NewTransactionManager(db)

	// Initialize feed sources
	ll2Source := ll2.New(ll2.Config{
		BaseURL:        cfg.LL2.BaseURL,
		Token:          cfg.LL2.Token,
		PageSize:       cfg.LL2.PageSize,
		MaxPages:       cfg.LL2.MaxPages,
		LookaheadDays:  cfg.LL2.LookaheadDays,
		Timeout:        cfg.LL2.Timeout,
		MaxAttempts:    cfg.LL2.Retry.MaxAttempts,
		InitialBackoff: cfg.LL2.Retry.InitialBackoff,
		MaxBackoff:     cfg.LL2.Retry.MaxBackoff,
	}, logger)

	newsSource := snapi.New(snapi.Config{
		URL:        cfg.SNAPI.URL,
		MaxAgeDays: cfg.SNAPI.MaxAgeDays,
		Timeout:    cfg.SNAPI.Timeout,
	}, logger)

	presence := youtube.NewPresence(youtube.Config{
		BaseURL: cfg.YouTube.BaseURL,
		Timeout: cfg.YouTube.Timeout,
	}, logger)

	notifier := service.NewNotifier(deliverer, sentStore, guildStore, logger)
	events := service.NewEventSynchronizer(discordClient, linkStore, guildStore, notifier, logger)

	pipeline := service.NewPipeline(
		ll2Source,
		newsSource,
		presence,
		cfg.YouTube.Channels,
		guildStore,
		itemStore,
		pollStateStore,
		txManager,
		notifier,
		events,
		logger,
		cfg.Poll,
	)

	sched := scheduler.NewScheduler(pipeline, cfg.Poll.Interval, cfg.Poll.Deadline, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting livelaunch",
		"source", ll2Source.Name(),
		"delivery", cfg.Delivery.Mode,
		"interval", cfg.Poll.Interval,
		"deadline", cfg.Poll.Deadline,
		"max_items", cfg.Poll.MaxItems,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
