package domain

import "time"

type Ticket struct {
	ID               string    `json:"ticket_id"`
	PassengerName    string    `json:"passenger_name"`
	PassengerSurname string    `json:"passenger_surname"`
	PassengerEmail   string    `json:"passenger_email"`
	FlightID         string    `json:"flight_id"`
	SeatNumber       string    `json:"seat_number,omitempty"`
	BookedAt         time.Time `json:"booked_at"`
	IsDeleted        bool      `json:"-"`
}
