package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/pharmacare-storefront/internal/config"
	"github.com/example/pharmacare-storefront/internal/email"
	"github.com/example/pharmacare-storefront/internal/infrastructure/dataservice"
	"github.com/example/pharmacare-storefront/internal/infrastructure/kafka"
	"github.com/example/pharmacare-storefront/internal/logger"
	"github.com/example/pharmacare-storefront/internal/notification"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.NewLoader(os.Getenv("CONFIG_FILE")).Load()
	if err != nil {
		bootLog := logger.New(logger.Options{Service: "order-notifier"})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(logger.Options{
		Service: "order-notifier",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
	})

	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		log.Fatal().Msg("KAFKA_BROKERS is required for the notifier")
	}

	log.Info().
		Strs("kafka", brokers).
		Str("topic", cfg.KafkaTopic).
		Str("group", cfg.KafkaGroup).
		Str("smtp", cfg.SMTPHost+":"+cfg.SMTPPort).
		Str("from", cfg.SMTPFrom).
		Msg("starting order notifier")

	// Unauthenticated client, only used to look up a missing email address
	users := dataservice.NewClient(cfg.DataServiceURL, cfg.RequestTimeout, nil, logger.Component(log, "dataservice"))
	defer users.Close()

	mailer := email.NewService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	handler := notification.NewHandler(mailer, users, logger.Component(log, "notification"))

	consumer := kafka.NewConsumer(brokers, cfg.KafkaTopic, cfg.KafkaGroup, logger.Component(log, "consumer"))
	defer consumer.Close()

	go func() {
		if err := consumer.Consume(ctx, handler.HandleEvent); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("consumer stopped")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	cancel()
}
