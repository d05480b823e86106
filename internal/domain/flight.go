package domain

import "time"

type Flight struct {
	ID            int64
	Route         Route
	Airplane      Airplane
	DepartureTime time.Time
	ArrivalTime   time.Time
	Crew          []Crew

	// TicketsAvailable is capacity minus sold tickets, computed by the
	// read query at request time. It is never persisted or cached.
	TicketsAvailable int
}
