package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/connectfour-backend/internal/config"
	"github.com/rocketscienceinc/connectfour-backend/internal/event"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/rest"
	"github.com/rocketscienceinc/connectfour-backend/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	publisher, err := newPublisher(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = publisher.Close(); err != nil {
			log.Error("could not close event publishers", "error", err)
		}
	}()

	gameManager, err := usecase.NewGameManager(logger, conf.BoardSize, publisher)
	if err != nil {
		return fmt.Errorf("could not create game manager: %w", err)
	}

	e := rest.NewEcho()
	rest.New(logger, gameManager).Register(e)
	websocket.New(logger, gameManager).Register(e)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "board_size", conf.BoardSize)
	if err = rest.Start(ctx, logger, e, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newPublisher connects the configured brokers. With none enabled events are dropped.
func newPublisher(ctx context.Context, conf *config.Config) (event.Multi, error) {
	var publishers event.Multi

	if conf.Redis.Enabled {
		redisPublisher, err := event.NewRedisPublisher(ctx, conf.Redis.GetRedisAddr(), conf.Redis.Channel)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		publishers = append(publishers, redisPublisher)
	}

	if conf.Kafka.Enabled {
		kafkaProducer, err := event.NewKafkaProducer(conf.Kafka.Brokers, conf.Kafka.Topic)
		if err != nil {
			_ = publishers.Close()
			return nil, fmt.Errorf("could not connect to kafka: %w", err)
		}
		publishers = append(publishers, kafkaProducer)
	}

	return publishers, nil
}
