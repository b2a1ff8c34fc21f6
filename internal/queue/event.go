// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// DefaultBookingQueue is the durable queue booking events are sent to.
const DefaultBookingQueue = "seats.booked"

// SeatsBookedEvent is published after seats have been allocated. It
// carries enough information for downstream consumers to log or notify
// without calling back into the service.
type SeatsBookedEvent struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Seats     []int  `json:"seats"`
	SeatCount int    `json:"seat_count"`
	BookedAt  string `json:"booked_at"` // RFC3339, UTC
}

// NewSeatsBookedEvent builds the event for a booking.
func NewSeatsBookedEvent(id, userID string, seats []int, at time.Time) SeatsBookedEvent {
	return SeatsBookedEvent{
		BookingID: id,
		UserID:    userID,
		Seats:     seats,
		SeatCount: len(seats),
		BookedAt:  at.UTC().Format(time.RFC3339),
	}
}
