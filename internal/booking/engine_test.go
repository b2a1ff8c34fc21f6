package booking

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/train-seat-booking/internal/layout"
	"github.com/iliyamo/train-seat-booking/internal/model"
)

func newDefault(t *testing.T) *Engine {
	t.Helper()
	return New(layout.Default())
}

func bookedCount(e *Engine) int {
	n := 0
	for _, s := range e.Seats() {
		if s.IsBooked {
			n++
		}
	}
	return n
}

func TestBook_Scenario(t *testing.T) {
	e := newDefault(t)

	res, err := e.Book(5)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.AssignedSeats)

	// Row 1 has two seats left, row 2 is empty, so the row search picks row 2.
	res, err = e.Book(3)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 9, 10}, res.AssignedSeats)

	res, err = e.Book(8)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrorKindInvalidRequest, res.ErrorKind)
	assert.Empty(t, res.AssignedSeats)
	assert.Equal(t, 8, bookedCount(e))

	// Row 1 still has 6 and 7 free; a request for 2 fits there.
	res, err = e.Book(2)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7}, res.AssignedSeats)
}

func TestBook_BoundaryRejection(t *testing.T) {
	e := newDefault(t)
	before := e.Seats()
	for _, n := range []int{0, 8, -1, 100} {
		res, err := e.Book(n)
		assert.True(t, errors.Is(err, ErrInvalidRequest), "n=%d", n)
		assert.False(t, res.Success)
		assert.Equal(t, model.ErrorKindInvalidRequest, res.ErrorKind)
	}
	assert.Equal(t, before, e.Seats())
}

func TestBook_CapAppliesToWideRows(t *testing.T) {
	e, err := NewFromCapacities([]int{10})
	require.NoError(t, err)
	_, err = e.Book(8)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	res, err := e.Book(7)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, res.AssignedSeats)
}

func TestBook_ContiguityPreference(t *testing.T) {
	e, err := NewFromCapacities([]int{3, 3, 5})
	require.NoError(t, err)

	// Rows 1 and 2 are too small for 4, row 3 fits.
	res, err := e.Book(4)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8, 9, 10}, res.AssignedSeats)

	// Lowest row that fits wins.
	res, err = e.Book(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.AssignedSeats)
}

func TestBook_ScatteredFallback(t *testing.T) {
	e, err := NewFromCapacities([]int{3, 3, 3})
	require.NoError(t, err)

	_, err = e.Book(2) // 1,2
	require.NoError(t, err)
	_, err = e.Book(2) // 4,5 (row 1 has only one left)
	require.NoError(t, err)

	// Free seats: 3, 6, 7, 8, 9. No row has 4 free seats.
	res, err := e.Book(4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 7, 8}, res.AssignedSeats)

	seats := e.Seats()
	for _, n := range []int{3, 6, 7, 8} {
		assert.True(t, seats[n-1].IsBooked, "seat %d", n)
	}
	assert.False(t, seats[8].IsBooked)
}

func TestBook_InsufficientSeatsHasNoSideEffects(t *testing.T) {
	e, err := NewFromCapacities([]int{2, 2})
	require.NoError(t, err)
	_, err = e.Book(2)
	require.NoError(t, err)

	before := e.Seats()
	res, err := e.Book(3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.False(t, res.Success)
	assert.Equal(t, model.ErrorKindInsufficientSeats, res.ErrorKind)
	assert.Equal(t, before, e.Seats())
	assert.Equal(t, 2, e.Stats().Booked)
}

func TestBook_Exhaustion(t *testing.T) {
	e := newDefault(t)
	total := 0
	for total < 80 {
		n := MaxSeatsPerBooking
		if rest := 80 - total; rest < n {
			n = rest
		}
		res, err := e.Book(n)
		require.NoError(t, err)
		total += len(res.AssignedSeats)
	}
	assert.Equal(t, Stats{Total: 80, Booked: 80, Available: 0}, e.Stats())

	_, err := e.Book(1)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}

func TestBook_SeatsBookedOnce(t *testing.T) {
	e := newDefault(t)
	seen := map[int]bool{}
	for {
		res, err := e.Book(3)
		if err != nil {
			break
		}
		for _, n := range res.AssignedSeats {
			assert.False(t, seen[n], "seat %d assigned twice", n)
			seen[n] = true
		}
		assert.True(t, sort.IntsAreSorted(res.AssignedSeats))
	}
	// 26 bookings of 3 leave 2 seats, which cannot satisfy a third.
	assert.Len(t, seen, 78)
}

func TestBook_Concurrent(t *testing.T) {
	e := newDefault(t)
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		owner = map[int]int{}
	)
	for g := 0; g < 40; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			res, err := e.Book(id%MaxSeatsPerBooking + 1)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, n := range res.AssignedSeats {
				if prev, dup := owner[n]; dup {
					t.Errorf("seat %d given to %d and %d", n, prev, id)
				}
				owner[n] = id
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, len(owner), bookedCount(e))
	assert.Equal(t, len(owner), e.Stats().Booked)
}

func TestListRows(t *testing.T) {
	e := newDefault(t)
	rows := e.ListRows()
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, rows)
	assert.Equal(t, rows, e.ListRows())
}

func TestSeatsInRow(t *testing.T) {
	e := newDefault(t)
	_, err := e.Book(2)
	require.NoError(t, err)

	row1 := e.SeatsInRow(1)
	require.Len(t, row1, 7)
	assert.True(t, row1[0].IsBooked)
	assert.True(t, row1[1].IsBooked)
	assert.False(t, row1[2].IsBooked)
	assert.Equal(t, row1, e.SeatsInRow(1))

	last := e.SeatsInRow(12)
	require.Len(t, last, 3)
	assert.Equal(t, []int{78, 79, 80}, []int{last[0].SeatNumber, last[1].SeatNumber, last[2].SeatNumber})

	unknown := e.SeatsInRow(13)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
	assert.Empty(t, e.SeatsInRow(0))
}

func TestQueriesReturnCopies(t *testing.T) {
	e := newDefault(t)
	row := e.SeatsInRow(1)
	row[0].IsBooked = true
	all := e.Seats()
	all[1].IsBooked = true
	m := e.SeatMap()
	m[0].Seats[2].IsBooked = true

	assert.Equal(t, 0, bookedCount(e))
	res, err := e.Book(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, res.AssignedSeats)
}

func TestSeatMap(t *testing.T) {
	e := newDefault(t)
	m := e.SeatMap()
	require.Len(t, m, 12)
	assert.Equal(t, 1, m[0].RowNumber)
	assert.Len(t, m[0].Seats, 7)
	assert.Len(t, m[11].Seats, 3)
}

func TestNewFromCapacities_InvalidLayout(t *testing.T) {
	e, err := NewFromCapacities([]int{7, 0})
	assert.Nil(t, e)
	assert.ErrorIs(t, err, layout.ErrInvalidLayout)
	assert.Equal(t, model.ErrorKindInvalidLayout, KindOf(err))
}

func TestEmptyLayout(t *testing.T) {
	e, err := NewFromCapacities(nil)
	require.NoError(t, err)
	assert.Empty(t, e.ListRows())
	_, err = e.Book(1)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
}
