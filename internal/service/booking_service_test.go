package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-booking/internal/booking"
	"github.com/iliyamo/train-seat-booking/internal/layout"
	"github.com/iliyamo/train-seat-booking/internal/model"
	q "github.com/iliyamo/train-seat-booking/internal/queue"
	"github.com/iliyamo/train-seat-booking/internal/repository"
)

type memJournal struct {
	mu      sync.Mutex
	items   []model.Booking
	failErr error
}

func (j *memJournal) Create(_ context.Context, b *model.Booking) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.failErr != nil {
		return j.failErr
	}
	j.items = append(j.items, *b)
	return nil
}

func (j *memJournal) GetByID(_ context.Context, id string) (*model.Booking, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, b := range j.items {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (j *memJournal) ListByUser(_ context.Context, userID string) ([]model.Booking, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := []model.Booking{}
	for _, b := range j.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (j *memJournal) ListRecent(_ context.Context, limit int) ([]model.Booking, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if limit > len(j.items) {
		limit = len(j.items)
	}
	return append([]model.Booking(nil), j.items[:limit]...), nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []q.SeatsBookedEvent
	err    error
}

func (p *fakePublisher) PublishSeatsBooked(_ context.Context, ev q.SeatsBookedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func newService(j Journal, p EventPublisher) *BookingService {
	s := NewBookingService(booking.New(layout.Default()), j, p)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	s.newID = func() string { return "fixed-id" }
	return s
}

func TestBookingService_BookRecordsAndPublishes(t *testing.T) {
	j := &memJournal{}
	p := &fakePublisher{}
	s := newService(j, p)

	b, res, err := s.Book(context.Background(), "alice", 3)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, &model.Booking{
		ID:       "fixed-id",
		UserID:   "alice",
		Seats:    []int{1, 2, 3},
		BookedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}, b)

	require.Len(t, j.items, 1)
	assert.Equal(t, *b, j.items[0])
	require.Len(t, p.events, 1)
	assert.Equal(t, q.SeatsBookedEvent{
		BookingID: "fixed-id",
		UserID:    "alice",
		Seats:     []int{1, 2, 3},
		SeatCount: 3,
		BookedAt:  "2026-01-02T03:04:05Z",
	}, p.events[0])
}

func TestBookingService_FailureSkipsSideEffects(t *testing.T) {
	j := &memJournal{}
	p := &fakePublisher{}
	s := newService(j, p)

	b, res, err := s.Book(context.Background(), "alice", 0)
	assert.Nil(t, b)
	assert.ErrorIs(t, err, booking.ErrInvalidRequest)
	assert.Equal(t, model.ErrorKindInvalidRequest, res.ErrorKind)
	assert.Empty(t, j.items)
	assert.Empty(t, p.events)
}

func TestBookingService_InfraFailuresDoNotUndoBooking(t *testing.T) {
	j := &memJournal{failErr: errors.New("disk full")}
	p := &fakePublisher{err: errors.New("broker down")}
	s := newService(j, p)

	b, _, err := s.Book(context.Background(), "alice", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, b.Seats)
	assert.Equal(t, 2, s.Engine.Stats().Booked)
}

func TestBookingService_NilDependencies(t *testing.T) {
	s := newService(nil, nil)
	_, _, err := s.Book(context.Background(), "alice", 1)
	require.NoError(t, err)

	_, err = s.ListByUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = s.ListRecent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrJournalDisabled)
	_, err = s.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrJournalDisabled)
}

func TestBookingService_Queries(t *testing.T) {
	j := &memJournal{}
	s := NewBookingService(booking.New(layout.Default()), j, nil)
	ctx := context.Background()

	first, _, err := s.Book(ctx, "alice", 1)
	require.NoError(t, err)
	_, _, err = s.Book(ctx, "bob", 1)
	require.NoError(t, err)
	assert.NotEqual(t, "", first.ID)

	mine, err := s.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, got.Seats)

	recent, err := s.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestNewAMQPPublisher_DefaultQueue(t *testing.T) {
	p := NewAMQPPublisher("amqp://localhost", "")
	assert.Equal(t, q.DefaultBookingQueue, p.Queue)
}
