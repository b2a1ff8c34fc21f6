package model

import "time"

// ErrorKind classifies a failed booking attempt so callers can decide how
// to present it without inspecting error strings.
type ErrorKind string

const (
	ErrorKindNone              ErrorKind = ""
	ErrorKindInvalidLayout     ErrorKind = "invalid_layout"
	ErrorKindInvalidRequest    ErrorKind = "invalid_request"
	ErrorKindInsufficientSeats ErrorKind = "insufficient_seats"
)

// BookingResult is the outcome of a single allocation attempt. On success
// AssignedSeats lists the seat numbers in ascending order and ErrorKind is
// empty. On failure AssignedSeats is empty and ErrorKind says why.
type BookingResult struct {
	Success       bool      `json:"success"`
	AssignedSeats []int     `json:"assigned_seats"`
	ErrorKind     ErrorKind `json:"error_kind,omitempty"`
}

// Booking records a successful allocation made on behalf of a user. It is
// what the journal stores and what the queue publishes.
//
// Fields:
//  ID       – UUID assigned when the allocation succeeded.
//  UserID   – subject of the token that requested it.
//  Seats    – assigned seat numbers, ascending.
//  BookedAt – UTC time of the allocation.
type Booking struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	Seats    []int     `json:"seats"`
	BookedAt time.Time `json:"booked_at"`
}
