package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-booking/internal/booking"
	"github.com/iliyamo/train-seat-booking/internal/middleware"
	"github.com/iliyamo/train-seat-booking/internal/repository"
	"github.com/iliyamo/train-seat-booking/internal/service"
)

// User facing messages for booking outcomes.
const (
	msgInvalidCount      = "Please enter a number between 1 and 7."
	msgInsufficientSeats = "Not enough seats available."
	msgBookedPrefix      = "Successfully booked seats: "
)

// Limits of GET /v1/bookings.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// BookingHandler handles seat bookings and journal queries. All routes
// are behind JWTAuth.
type BookingHandler struct {
	Service *service.BookingService
}

// NewBookingHandler constructs a BookingHandler. svc must be non-nil.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	if svc == nil {
		panic("nil service passed to NewBookingHandler")
	}
	return &BookingHandler{Service: svc}
}

type bookRequest struct {
	Count json.Number `json:"count"`
}

// Book handles POST /v1/bookings with body {"count": N}. It returns 201
// with the booking id and seats, 400 when N is not an integer in [1, 7]
// and 409 when not enough seats are left.
func (h *BookingHandler) Book(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body bookRequest
	if err := c.Bind(&body); err != nil {
		return invalidCount(c)
	}
	n, err := body.Count.Int64()
	if err != nil || n < booking.MinSeatsPerBooking || n > booking.MaxSeatsPerBooking {
		return invalidCount(c)
	}

	b, res, err := h.Service.Book(c.Request().Context(), userID, int(n))
	switch {
	case errors.Is(err, booking.ErrInvalidRequest):
		return invalidCount(c)
	case errors.Is(err, booking.ErrInsufficientSeats):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   string(res.ErrorKind),
			"message": msgInsufficientSeats,
		})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id":     b.ID,
		"success":        res.Success,
		"assigned_seats": res.AssignedSeats,
		"booked_at":      b.BookedAt,
		"message":        bookedMessage(res.AssignedSeats),
	})
}

func invalidCount(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":   "invalid_request",
		"message": msgInvalidCount,
	})
}

func bookedMessage(seats []int) string {
	parts := make([]string, len(seats))
	for i, n := range seats {
		parts[i] = strconv.Itoa(n)
	}
	return msgBookedPrefix + strings.Join(parts, ", ")
}

// MyBookings handles GET /v1/my-bookings.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Service.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return journalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListBookings handles GET /v1/bookings?limit=N for operators.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	limit := defaultListLimit
	if s := c.QueryParam("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = min(n, maxListLimit)
	}
	items, err := h.Service.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return journalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetBooking handles GET /v1/bookings/:id for operators.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	item, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return journalError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": item})
}

func journalError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, service.ErrJournalDisabled):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking journal disabled"})
	}
	c.Logger().Error(fmt.Errorf("journal query: %w", err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
