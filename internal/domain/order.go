package domain

import "time"

// Order is an atomic purchase unit owned by one user. Its tickets are
// created in the same transaction and the whole set commits or none of it.
type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID       int64
	Row      int
	Seat     int
	FlightID int64
	OrderID  int64

	// Flight carries the summary used by order listings. Populated on
	// reads, nil on write paths.
	Flight *Flight
}

// ValidateSeat checks a seat coordinate against an airplane's geometry.
// Bounds are inclusive on both ends; the seat dimension is checked first.
func ValidateSeat(seat, seatsInRow, row, rows int) error {
	if seat < 1 || seat > seatsInRow {
		return &SeatError{Field: "seat", Value: seat, Max: seatsInRow}
	}
	if row < 1 || row > rows {
		return &SeatError{Field: "row", Value: row, Max: rows}
	}
	return nil
}
