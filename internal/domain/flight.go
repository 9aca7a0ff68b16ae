package domain

import "time"

type Flight struct {
	ID             string    `json:"flight_id"`
	FromCity       string    `json:"from_city"`
	ToCity         string    `json:"to_city"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	SeatsTotal     int       `json:"seats_total"`
	SeatsAvailable int       `json:"seats_available"`
	IsDeleted      bool      `json:"-"`
}

// FlightFilter narrows a flight listing. Zero values mean "no filter";
// Date matches the calendar date of the departure time, whatever the
// time of day.
type FlightFilter struct {
	FromCity string
	ToCity   string
	Date     string // YYYY-MM-DD
}
