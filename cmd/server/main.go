package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/train-seat-booking/internal/booking"
	"github.com/iliyamo/train-seat-booking/internal/config"
	"github.com/iliyamo/train-seat-booking/internal/database"
	"github.com/iliyamo/train-seat-booking/internal/handler"
	"github.com/iliyamo/train-seat-booking/internal/layout"
	"github.com/iliyamo/train-seat-booking/internal/logger"
	"github.com/iliyamo/train-seat-booking/internal/repository"
	"github.com/iliyamo/train-seat-booking/internal/router"
	"github.com/iliyamo/train-seat-booking/internal/service"
	"github.com/iliyamo/train-seat-booking/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()
	logger.Setup(cfg.Env)

	caps, err := layout.ParseCapacities(cfg.SeatLayout)
	must(err, "parse SEAT_LAYOUT")
	l, err := layout.New(caps)
	must(err, "build seat layout")
	engine := booking.New(l)
	log.Info().Ints("capacities", l.Capacities()).Int("seats", l.TotalSeats()).Msg("seat inventory ready")

	db, err := database.Open(cfg.DB)
	must(err, "open booking journal")
	defer db.Close()
	journal := repository.NewBookingRepo(db)
	must(journal.EnsureSchema(context.Background()), "create journal schema")

	var publisher service.EventPublisher
	if cfg.Rabbit.Enabled {
		publisher = service.NewAMQPPublisher(cfg.Rabbit.URL, cfg.Rabbit.Queue)
		log.Info().Str("queue", cfg.Rabbit.Queue).Msg("booking events enabled")
	}

	accounts, err := config.ParseAccounts(cfg.AuthUsers)
	must(err, "parse AUTH_USERS")
	if len(accounts) == 0 {
		log.Warn().Msg("AUTH_USERS is empty, nobody can log in")
	}
	for _, a := range accounts {
		if err := utils.CheckAccountHash(a.PasswordHash, cfg.BcryptCost); err != nil {
			log.Warn().Err(err).Str("user", a.Username).Msg("weak or malformed password hash")
		}
	}

	rdb := config.NewRedisClient()
	if rdb != nil {
		defer rdb.Close()
	}

	svc := service.NewBookingService(engine, journal, publisher)
	e := router.New(router.Deps{
		Seats:     handler.NewSeatHandler(engine, l),
		Bookings:  handler.NewBookingHandler(svc),
		Auth:      handler.NewAuthHandler(accounts, cfg.JWTSecret, cfg.AccessTTLMin),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Warn().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

func must(err error, what string) {
	if err != nil {
		log.Fatal().Err(err).Msg(what)
	}
}
