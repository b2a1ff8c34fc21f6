// Package layout builds the fixed seating chart of a coach. A layout is a
// list of row capacities; building it numbers every seat sequentially, row
// by row, starting at 1.
package layout

import (
	"errors"
	"fmt"

	"github.com/iliyamo/train-seat-booking/internal/model"
)

// ErrInvalidLayout is returned when a capacity list contains a row with
// zero or negative seats.
var ErrInvalidLayout = errors.New("invalid layout")

// Layout is the immutable shape of the seating chart.
type Layout struct {
	capacities []int
	total      int
}

// New validates capacities and returns a Layout. The slice is copied so
// later changes by the caller do not affect the layout. An empty list is
// accepted and describes a coach without seats.
func New(capacities []int) (*Layout, error) {
	caps := make([]int, len(capacities))
	total := 0
	for i, c := range capacities {
		if c <= 0 {
			return nil, fmt.Errorf("%w: row %d has capacity %d", ErrInvalidLayout, i+1, c)
		}
		caps[i] = c
		total += c
	}
	return &Layout{capacities: caps, total: total}, nil
}

// Default returns the standard coach: eleven rows of seven seats and a
// last row of three, 80 seats in total.
func Default() *Layout {
	l, _ := New(DefaultCapacities())
	return l
}

// DefaultCapacities returns the row capacities of the standard coach.
func DefaultCapacities() []int {
	caps := make([]int, 0, 12)
	for i := 0; i < 11; i++ {
		caps = append(caps, 7)
	}
	return append(caps, 3)
}

// Build produces the full seat sequence. Seat numbers are contiguous from
// 1 to TotalSeats and every seat starts unbooked.
func (l *Layout) Build() []model.Seat {
	seats := make([]model.Seat, 0, l.total)
	next := 1
	for i, c := range l.capacities {
		for s := 0; s < c; s++ {
			seats = append(seats, model.Seat{SeatNumber: next, RowNumber: i + 1})
			next++
		}
	}
	return seats
}

// Capacities returns a copy of the row capacities in row order.
func (l *Layout) Capacities() []int {
	out := make([]int, len(l.capacities))
	copy(out, l.capacities)
	return out
}

// Rows returns the number of rows.
func (l *Layout) Rows() int { return len(l.capacities) }

// TotalSeats returns the sum of all row capacities.
func (l *Layout) TotalSeats() int { return l.total }
