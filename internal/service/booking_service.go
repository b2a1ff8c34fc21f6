// Package service wires the booking engine to the journal and the event
// publisher on behalf of authenticated callers.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/train-seat-booking/internal/booking"
	"github.com/iliyamo/train-seat-booking/internal/model"
	q "github.com/iliyamo/train-seat-booking/internal/queue"
)

// ErrJournalDisabled is returned by journal queries when the service runs
// without a journal.
var ErrJournalDisabled = errors.New("booking journal disabled")

// Journal records successful bookings. repository.BookingRepo implements
// it.
type Journal interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]model.Booking, error)
}

// BookingService books seats for a user. The engine decides the seats;
// the journal and the publisher are informed afterwards and their failures
// never undo an allocation. Journal and Publisher may be nil.
type BookingService struct {
	Engine    *booking.Engine
	Journal   Journal
	Publisher EventPublisher

	now   func() time.Time
	newID func() string
}

// NewBookingService constructs a BookingService. engine must be non-nil.
func NewBookingService(engine *booking.Engine, journal Journal, publisher EventPublisher) *BookingService {
	if engine == nil {
		panic("nil engine passed to NewBookingService")
	}
	return &BookingService{
		Engine:    engine,
		Journal:   journal,
		Publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

// Book allocates count seats for userID. On success it returns the
// recorded booking together with the engine result. On failure the
// booking is nil and err is booking.ErrInvalidRequest or
// booking.ErrInsufficientSeats.
func (s *BookingService) Book(ctx context.Context, userID string, count int) (*model.Booking, model.BookingResult, error) {
	res, err := s.Engine.Book(count)
	if err != nil {
		log.Info().Str("user_id", userID).Int("count", count).Str("kind", string(res.ErrorKind)).Msg("booking rejected")
		return nil, res, err
	}

	b := &model.Booking{
		ID:       s.newID(),
		UserID:   userID,
		Seats:    res.AssignedSeats,
		BookedAt: s.now(),
	}
	log.Info().Str("booking_id", b.ID).Str("user_id", userID).Ints("seats", b.Seats).Msg("seats booked")

	if s.Journal != nil {
		if err := s.Journal.Create(ctx, b); err != nil {
			log.Error().Err(err).Str("booking_id", b.ID).Msg("journal write failed")
		}
	}
	if s.Publisher != nil {
		ev := q.NewSeatsBookedEvent(b.ID, b.UserID, b.Seats, b.BookedAt)
		if err := s.Publisher.PublishSeatsBooked(ctx, ev); err != nil {
			log.Warn().Err(err).Str("booking_id", b.ID).Msg("booking event not published")
		}
	}
	return b, res, nil
}

// Get returns one recorded booking.
func (s *BookingService) Get(ctx context.Context, id string) (*model.Booking, error) {
	if s.Journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.Journal.GetByID(ctx, id)
}

// ListByUser returns the recorded bookings of userID, newest first.
func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	if s.Journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.Journal.ListByUser(ctx, userID)
}

// ListRecent returns at most limit recorded bookings, newest first.
func (s *BookingService) ListRecent(ctx context.Context, limit int) ([]model.Booking, error) {
	if s.Journal == nil {
		return nil, ErrJournalDisabled
	}
	return s.Journal.ListRecent(ctx, limit)
}
