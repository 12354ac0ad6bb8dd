package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/gigstage/gigstage/internal/adapter/notifier"
	"github.com/gigstage/gigstage/internal/config"
	"github.com/gigstage/gigstage/internal/platform/mq"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "notify").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	consumer, err := mq.NewConsumer(cfg.AMQPURL, cfg.MQExchange, cfg.NotifyQueue, []string{
		"booking.*",
		"message.*",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect rabbitmq")
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deliveries, err := consumer.Deliveries(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("start consuming")
	}

	n := notifier.New(log)
	log.Info().Str("queue", cfg.NotifyQueue).Msg("notify worker started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
			return
		case d, ok := <-deliveries:
			if !ok {
				log.Warn().Msg("delivery channel closed")
				return
			}
			if err := n.Handle(d.RoutingKey, d.Body); err != nil {
				log.Error().Err(err).Str("routing_key", d.RoutingKey).Msg("handle event")
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}
