package api

import (
	"time"

	"github.com/avshorin/airport-api/internal/domain"
)

// List and detail views shape related records differently: lists flatten
// relations to names, details nest the full records.

type airportResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ClosestBigCity string `json:"closest_big_city"`
}

func newAirportResponse(a domain.Airport) airportResponse {
	return airportResponse{ID: a.ID, Name: a.Name, ClosestBigCity: a.ClosestBigCity}
}

type airplaneTypeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type crewResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type routeListResponse struct {
	ID          int64  `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

func newRouteListResponse(r domain.Route) routeListResponse {
	return routeListResponse{ID: r.ID, Source: r.Source.Name, Destination: r.Destination.Name, Distance: r.Distance}
}

type routeDetailResponse struct {
	ID          int64           `json:"id"`
	Source      airportResponse `json:"source"`
	Destination airportResponse `json:"destination"`
	Distance    int             `json:"distance"`
}

func newRouteDetailResponse(r domain.Route) routeDetailResponse {
	return routeDetailResponse{
		ID:          r.ID,
		Source:      newAirportResponse(r.Source),
		Destination: newAirportResponse(r.Destination),
		Distance:    r.Distance,
	}
}

type airplaneListResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Rows         int    `json:"rows"`
	SeatsInRow   int    `json:"seats_in_row"`
	AirplaneType string `json:"airplane_type"`
	Capacity     int    `json:"capacity"`
	ImagePath    string `json:"image_path,omitempty"`
}

func newAirplaneListResponse(a domain.Airplane) airplaneListResponse {
	return airplaneListResponse{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		AirplaneType: a.Type.Name,
		Capacity:     a.Capacity(),
		ImagePath:    a.ImagePath,
	}
}

type airplaneDetailResponse struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Rows         int                  `json:"rows"`
	SeatsInRow   int                  `json:"seats_in_row"`
	AirplaneType airplaneTypeResponse `json:"airplane_type"`
	Capacity     int                  `json:"capacity"`
	ImagePath    string               `json:"image_path,omitempty"`
}

func newAirplaneDetailResponse(a domain.Airplane) airplaneDetailResponse {
	return airplaneDetailResponse{
		ID:           a.ID,
		Name:         a.Name,
		Rows:         a.Rows,
		SeatsInRow:   a.SeatsInRow,
		AirplaneType: airplaneTypeResponse{ID: a.Type.ID, Name: a.Type.Name},
		Capacity:     a.Capacity(),
		ImagePath:    a.ImagePath,
	}
}

type flightListResponse struct {
	ID               int64     `json:"id"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	AirplaneName     string    `json:"airplane_name"`
	AirplaneCapacity int       `json:"airplane_capacity"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	Crew             []string  `json:"crew"`
	TicketsAvailable int       `json:"tickets_available"`
}

func newFlightListResponse(f domain.Flight) flightListResponse {
	crew := make([]string, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, c.FullName())
	}
	return flightListResponse{
		ID:               f.ID,
		RouteSource:      f.Route.Source.Name,
		RouteDestination: f.Route.Destination.Name,
		AirplaneName:     f.Airplane.Name,
		AirplaneCapacity: f.Airplane.Capacity(),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: f.TicketsAvailable,
	}
}

type flightDetailResponse struct {
	ID               int64                  `json:"id"`
	Route            routeDetailResponse    `json:"route"`
	Airplane         airplaneDetailResponse `json:"airplane"`
	DepartureTime    time.Time              `json:"departure_time"`
	ArrivalTime      time.Time              `json:"arrival_time"`
	Crew             []crewResponse         `json:"crew"`
	TicketsAvailable int                    `json:"tickets_available"`
}

func newFlightDetailResponse(f domain.Flight) flightDetailResponse {
	crew := make([]crewResponse, 0, len(f.Crew))
	for _, c := range f.Crew {
		crew = append(crew, crewResponse{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName})
	}
	return flightDetailResponse{
		ID:               f.ID,
		Route:            newRouteDetailResponse(f.Route),
		Airplane:         newAirplaneDetailResponse(f.Airplane),
		DepartureTime:    f.DepartureTime,
		ArrivalTime:      f.ArrivalTime,
		Crew:             crew,
		TicketsAvailable: f.TicketsAvailable,
	}
}

type ticketFlightResponse struct {
	ID               int64     `json:"id"`
	RouteSource      string    `json:"route_source"`
	RouteDestination string    `json:"route_destination"`
	AirplaneName     string    `json:"airplane_name"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

type ticketResponse struct {
	ID     int64                 `json:"id"`
	Row    int                   `json:"row"`
	Seat   int                   `json:"seat"`
	Flight *ticketFlightResponse `json:"flight,omitempty"`
}

type orderResponse struct {
	ID        int64            `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Tickets   []ticketResponse `json:"tickets"`
}

func newOrderResponse(o domain.Order) orderResponse {
	tickets := make([]ticketResponse, 0, len(o.Tickets))
	for _, t := range o.Tickets {
		tr := ticketResponse{ID: t.ID, Row: t.Row, Seat: t.Seat}
		if t.Flight != nil {
			tr.Flight = &ticketFlightResponse{
				ID:               t.Flight.ID,
				RouteSource:      t.Flight.Route.Source.Name,
				RouteDestination: t.Flight.Route.Destination.Name,
				AirplaneName:     t.Flight.Airplane.Name,
				DepartureTime:    t.Flight.DepartureTime,
				ArrivalTime:      t.Flight.ArrivalTime,
			}
		}
		tickets = append(tickets, tr)
	}
	return orderResponse{ID: o.ID, CreatedAt: o.CreatedAt, Tickets: tickets}
}

type pageResponse struct {
	Count    int             `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Results  []orderResponse `json:"results"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}
