package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/train-seat-booking/internal/config"
	"github.com/iliyamo/train-seat-booking/internal/logger"
	"github.com/iliyamo/train-seat-booking/internal/queue"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadDefaults()
	logger.Setup(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("queue", cfg.Rabbit.Queue).Str("dir", cfg.LogDir).Msg("booking consumer starting")
	err := queue.StartBookingConsumer(ctx, cfg.Rabbit.URL, cfg.Rabbit.Queue, cfg.LogDir)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("booking consumer stopped")
	}
	log.Info().Msg("booking consumer stopped")
}
