package service

import (
	"context"
	"time"
)

// FlightFare is one priced flight option.
type FlightFare struct {
	Price         float64 `json:"price"`
	Currency      string  `json:"currency"`
	Airline       string  `json:"airline"`
	AirlineCode   string  `json:"airline_code,omitempty"`
	FlightNumber  string  `json:"flight_number,omitempty"`
	DepartureTime string  `json:"departure_time"`
	ArrivalTime   string  `json:"arrival_time"`
	Duration      string  `json:"duration"`
	Stops         int     `json:"stops"`
	OfferID       string  `json:"offer_id,omitempty"`
}

// HotelRate is one priced hotel option.
type HotelRate struct {
	Name          string  `json:"name"`
	HotelID       string  `json:"hotel_id,omitempty"`
	NightlyPrice  float64 `json:"nightly_price"`
	Currency      string  `json:"currency"`
	Rating        float64 `json:"rating"`
	Location      string  `json:"location"`
}

// FlightQuery describes a flight fare search.
type FlightQuery struct {
	Origin        string    // IATA code
	Destination   string    // IATA code
	DepartureDate time.Time
	ReturnDate    time.Time // zero for one-way
	Adults        int
}

// HotelQuery describes a hotel rate search.
type HotelQuery struct {
	CityCode string // IATA city code
	CheckIn  time.Time
	CheckOut time.Time
	Adults   int
}

// FareProvider prices flights and hotels against a live inventory source.
// Implementations return an error when the source is unreachable or not
// configured; callers decide whether to fall back to estimated fares.
type FareProvider interface {
	SearchFlights(ctx context.Context, q FlightQuery) ([]FlightFare, error)
	SearchHotels(ctx context.Context, q HotelQuery) ([]HotelRate, error)
}
