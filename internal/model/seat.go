package model

// Seat describes a single seat of the coach. Seats are numbered
// sequentially across the whole layout starting at 1, row by row, so the
// seat number alone identifies a seat.
//
// Fields:
//  SeatNumber – globally unique, 1-based position in the layout.
//  RowNumber  – 1-based row the seat belongs to.
//  IsBooked   – whether the seat has been assigned to a booking. Once
//               true it never goes back to false.
type Seat struct {
	SeatNumber int  `json:"seat_number"` // stable for the lifetime of the layout
	RowNumber  int  `json:"row_number"`  // row grouping
	IsBooked   bool `json:"is_booked"`   // false until a booking selects it
}

// Row groups the seats sharing a row number. It is never stored; the
// engine derives it on demand for seat map responses.
type Row struct {
	RowNumber int    `json:"row_number"`
	Seats     []Seat `json:"seats"`
}
