// Package repository provides SQL access to the booking journal. The
// journal is a record of allocations; the seat inventory itself lives only
// in memory and is never rebuilt from it.
package repository

import "errors"

// ErrBookingNotFound is returned when a booking lookup yields no rows.
// Handlers translate it into an HTTP 404 response.
var ErrBookingNotFound = errors.New("booking not found")
