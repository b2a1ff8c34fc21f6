package booking

import (
	"errors"

	"github.com/iliyamo/train-seat-booking/internal/layout"
	"github.com/iliyamo/train-seat-booking/internal/model"
)

// ErrInvalidRequest is returned when the requested seat count is outside
// [MinSeatsPerBooking, MaxSeatsPerBooking].
var ErrInvalidRequest = errors.New("invalid request")

// ErrInsufficientSeats is returned when fewer unbooked seats remain than
// were requested.
var ErrInsufficientSeats = errors.New("insufficient seats")

// KindOf maps an error returned by this package or the layout package to
// its ErrorKind. Unknown errors map to ErrorKindNone.
func KindOf(err error) model.ErrorKind {
	switch {
	case err == nil:
		return model.ErrorKindNone
	case errors.Is(err, ErrInvalidRequest):
		return model.ErrorKindInvalidRequest
	case errors.Is(err, ErrInsufficientSeats):
		return model.ErrorKindInsufficientSeats
	case errors.Is(err, layout.ErrInvalidLayout):
		return model.ErrorKindInvalidLayout
	}
	return model.ErrorKindNone
}
