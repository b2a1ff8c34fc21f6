// Package booking holds the seat inventory of a coach and allocates seats
// to booking requests. A request for N seats is served from a single row
// when any row still has N free seats; otherwise the lowest numbered free
// seats anywhere in the coach are used.
package booking

import (
	"sync"

	"github.com/iliyamo/train-seat-booking/internal/layout"
	"github.com/iliyamo/train-seat-booking/internal/model"
)

// Bounds on the number of seats a single booking may request. They are a
// booking policy and do not depend on row capacity.
const (
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 7
)

// Stats summarises the inventory at one point in time.
type Stats struct {
	Total     int `json:"total"`
	Booked    int `json:"booked"`
	Available int `json:"available"`
}

// rowSpan locates a row inside the seat slice. Seats of a row are
// contiguous because Build emits them row by row.
type rowSpan struct {
	number     int
	start, end int // seats[start:end]
}

// Engine owns the seat inventory. Book is the only operation that changes
// it; queries return copies.
type Engine struct {
	mu     sync.RWMutex
	seats  []model.Seat
	rows   []rowSpan
	booked int
}

// New builds the inventory for l with every seat unbooked.
func New(l *layout.Layout) *Engine {
	seats := l.Build()
	e := &Engine{seats: seats}
	for i, s := range seats {
		if n := len(e.rows); n == 0 || e.rows[n-1].number != s.RowNumber {
			e.rows = append(e.rows, rowSpan{number: s.RowNumber, start: i})
		}
		e.rows[len(e.rows)-1].end = i + 1
	}
	return e
}

// NewFromCapacities validates capacities and builds an engine for them.
// It fails with layout.ErrInvalidLayout on a non-positive capacity.
func NewFromCapacities(capacities []int) (*Engine, error) {
	l, err := layout.New(capacities)
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// Book allocates count seats. The search, the fallback and the commit run
// under one lock, so concurrent calls never hand out the same seat. On
// failure nothing is booked and the returned error is ErrInvalidRequest or
// ErrInsufficientSeats; the result carries the matching ErrorKind.
func (e *Engine) Book(count int) (model.BookingResult, error) {
	if count < MinSeatsPerBooking || count > MaxSeatsPerBooking {
		return failure(ErrInvalidRequest), ErrInvalidRequest
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	picked := e.pickFromOneRow(count)
	if len(picked) == 0 {
		// Full rescan of the coach, including rows already found too small.
		picked = e.pickFirstFree(count)
	}
	if len(picked) != count {
		return failure(ErrInsufficientSeats), ErrInsufficientSeats
	}

	assigned := make([]int, 0, count)
	for _, i := range picked {
		e.seats[i].IsBooked = true
		assigned = append(assigned, e.seats[i].SeatNumber)
	}
	e.booked += count
	return model.BookingResult{Success: true, AssignedSeats: assigned}, nil
}

// pickFromOneRow returns the indexes of the first count free seats of the
// lowest numbered row that has at least count free seats, or nil.
func (e *Engine) pickFromOneRow(count int) []int {
	for _, r := range e.rows {
		free := make([]int, 0, r.end-r.start)
		for i := r.start; i < r.end; i++ {
			if !e.seats[i].IsBooked {
				free = append(free, i)
			}
		}
		if len(free) >= count {
			return free[:count]
		}
	}
	return nil
}

// pickFirstFree returns the indexes of up to count free seats in seat
// number order, ignoring row boundaries.
func (e *Engine) pickFirstFree(count int) []int {
	picked := make([]int, 0, count)
	for i := range e.seats {
		if len(picked) == count {
			break
		}
		if !e.seats[i].IsBooked {
			picked = append(picked, i)
		}
	}
	return picked
}

func failure(err error) model.BookingResult {
	return model.BookingResult{AssignedSeats: []int{}, ErrorKind: KindOf(err)}
}

// ListRows returns the distinct row numbers in ascending order.
func (e *Engine) ListRows() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]int, 0, len(e.rows))
	for _, r := range e.rows {
		out = append(out, r.number)
	}
	return out
}

// SeatsInRow returns the seats of row in seat number order with their
// current booked flags. An unknown row yields an empty slice.
func (e *Engine) SeatsInRow(row int) []model.Seat {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, r := range e.rows {
		if r.number == row {
			out := make([]model.Seat, r.end-r.start)
			copy(out, e.seats[r.start:r.end])
			return out
		}
	}
	return []model.Seat{}
}

// SeatMap returns every row with its seats, taken under a single read lock
// so the map reflects one consistent state.
func (e *Engine) SeatMap() []model.Row {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Row, 0, len(e.rows))
	for _, r := range e.rows {
		seats := make([]model.Seat, r.end-r.start)
		copy(seats, e.seats[r.start:r.end])
		out = append(out, model.Row{RowNumber: r.number, Seats: seats})
	}
	return out
}

// Seats returns a snapshot of the whole inventory in seat number order.
func (e *Engine) Seats() []model.Seat {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]model.Seat, len(e.seats))
	copy(out, e.seats)
	return out
}

// Stats returns seat counts.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{Total: len(e.seats), Booked: e.booked, Available: len(e.seats) - e.booked}
}
