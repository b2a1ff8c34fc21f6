// Package handler exposes the HTTP handlers of the booking API. This file
// holds the unauthenticated seat map endpoints; they only read the
// inventory.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-booking/internal/booking"
	"github.com/iliyamo/train-seat-booking/internal/layout"
)

// SeatHandler serves the layout and the live seat map.
type SeatHandler struct {
	Engine *booking.Engine
	Layout *layout.Layout
}

// NewSeatHandler constructs a SeatHandler. Both dependencies must be
// non-nil.
func NewSeatHandler(engine *booking.Engine, l *layout.Layout) *SeatHandler {
	if engine == nil || l == nil {
		panic("nil dependency passed to NewSeatHandler")
	}
	return &SeatHandler{Engine: engine, Layout: l}
}

// LayoutResponse describes the fixed shape of the coach.
type LayoutResponse struct {
	Rows               int   `json:"rows"`
	Capacities         []int `json:"capacities"`
	TotalSeats         int   `json:"total_seats"`
	MinSeatsPerBooking int   `json:"min_seats_per_booking"`
	MaxSeatsPerBooking int   `json:"max_seats_per_booking"`
}

// GetLayout handles GET /v1/layout. The response never changes while the
// process runs, which is why it is the one route behind the Redis cache.
func (h *SeatHandler) GetLayout(c echo.Context) error {
	return c.JSON(http.StatusOK, LayoutResponse{
		Rows:               h.Layout.Rows(),
		Capacities:         h.Layout.Capacities(),
		TotalSeats:         h.Layout.TotalSeats(),
		MinSeatsPerBooking: booking.MinSeatsPerBooking,
		MaxSeatsPerBooking: booking.MaxSeatsPerBooking,
	})
}

// ListRows handles GET /v1/rows.
func (h *SeatHandler) ListRows(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Engine.ListRows()})
}

// GetRowSeats handles GET /v1/rows/:row/seats. Unknown rows return an
// empty list, not 404.
func (h *SeatHandler) GetRowSeats(c echo.Context) error {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"row_number": row,
		"items":      h.Engine.SeatsInRow(row),
	})
}

// GetSeatMap handles GET /v1/seats: every row with its seats.
func (h *SeatHandler) GetSeatMap(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Engine.SeatMap()})
}

// GetStats handles GET /v1/stats.
func (h *SeatHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Engine.Stats())
}
