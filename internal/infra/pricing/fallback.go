package pricing

import (
	"context"
	"fmt"
	"time"

	"yatra/internal/domain/service"
)

// fallbackProvider generates plausible estimated fares when the live source
// is unavailable. Deterministic for a given query so quotes are repeatable.
type fallbackProvider struct{}

// NewFallbackProvider creates the estimated-fare provider. It never fails.
func NewFallbackProvider() service.FareProvider {
	return &fallbackProvider{}
}

type routeInfo struct {
	basePrice float64 // INR
	duration  int     // minutes
}

var fallbackRoutes = map[string]routeInfo{
	"DEL-BOM": {5200, 130}, "BOM-DEL": {5200, 130},
	"DEL-BLR": {5800, 165}, "BLR-DEL": {5800, 165},
	"DEL-MAA": {6100, 170}, "MAA-DEL": {6100, 170},
	"DEL-CCU": {5400, 125}, "CCU-DEL": {5400, 125},
	"DEL-GOI": {6500, 150}, "GOI-DEL": {6500, 150},
	"BOM-BLR": {4200, 95}, "BLR-BOM": {4200, 95},
	"BOM-GOI": {3500, 75}, "GOI-BOM": {3500, 75},
	"DEL-JAI": {3200, 60}, "JAI-DEL": {3200, 60},
	"DEL-VNS": {4100, 85}, "VNS-DEL": {4100, 85},
	"DEL-DXB": {14500, 225}, "DXB-DEL": {14500, 225},
	"DEL-SIN": {18900, 330}, "SIN-DEL": {18900, 330},
	"DEL-LHR": {42000, 560}, "LHR-DEL": {42000, 560},
}

type airlineOption struct {
	name     string
	code     string
	priceMod float64
	stops    int
}

var fallbackAirlines = []airlineOption{
	{"IndiGo", "6E", 0.85, 0},
	{"Air India", "AI", 1.00, 0},
	{"Vistara", "UK", 1.15, 0},
	{"SpiceJet", "SG", 0.75, 1},
	{"Akasa Air", "QP", 0.80, 0},
}

// SearchFlights generates estimated flight fares for the route.
func (p *fallbackProvider) SearchFlights(_ context.Context, q service.FlightQuery) ([]service.FlightFare, error) {
	info, ok := fallbackRoutes[q.Origin+"-"+q.Destination]
	if !ok {
		info = routeInfo{7500, 180}
	}

	fares := make([]service.FlightFare, 0, len(fallbackAirlines))
	for i, opt := range fallbackAirlines {
		price := info.basePrice * opt.priceMod
		// Round to a plausible fare grid.
		price = float64(int(price/50) * 50)

		duration := info.duration
		if opt.stops > 0 {
			duration += 90
		}

		depHour := 6 + i*3
		depTime := time.Date(q.DepartureDate.Year(), q.DepartureDate.Month(), q.DepartureDate.Day(), depHour, 0, 0, 0, time.UTC)
		arrTime := depTime.Add(time.Duration(duration) * time.Minute)

		fares = append(fares, service.FlightFare{
			Price:         price,
			Currency:      fareCurrency,
			Airline:       opt.name,
			AirlineCode:   opt.code,
			FlightNumber:  fmt.Sprintf("%s%d", opt.code, 200+i*37),
			DepartureTime: depTime.Format(time.RFC3339),
			ArrivalTime:   arrTime.Format(time.RFC3339),
			Duration:      fmt.Sprintf("%dh %dm", duration/60, duration%60),
			Stops:         opt.stops,
		})
	}

	return fares, nil
}

var fallbackHotels = map[string][]service.HotelRate{
	"DEL": {
		{Name: "The Imperial", NightlyPrice: 18500, Currency: fareCurrency, Rating: 4.7, Location: "Janpath, New Delhi"},
		{Name: "Taj Palace", NightlyPrice: 15200, Currency: fareCurrency, Rating: 4.6, Location: "Diplomatic Enclave, New Delhi"},
		{Name: "Bloomrooms @ New Delhi", NightlyPrice: 3800, Currency: fareCurrency, Rating: 4.2, Location: "Connaught Place, New Delhi"},
		{Name: "Hotel City Star", NightlyPrice: 2400, Currency: fareCurrency, Rating: 3.9, Location: "Paharganj, New Delhi"},
	},
	"BOM": {
		{Name: "The Taj Mahal Palace", NightlyPrice: 24500, Currency: fareCurrency, Rating: 4.8, Location: "Colaba, Mumbai"},
		{Name: "Trident Nariman Point", NightlyPrice: 13800, Currency: fareCurrency, Rating: 4.5, Location: "Nariman Point, Mumbai"},
		{Name: "Residency Hotel Fort", NightlyPrice: 5200, Currency: fareCurrency, Rating: 4.1, Location: "Fort, Mumbai"},
	},
	"JAI": {
		{Name: "Rambagh Palace", NightlyPrice: 32000, Currency: fareCurrency, Rating: 4.9, Location: "Bhawani Singh Road, Jaipur"},
		{Name: "Jaipur Marriott", NightlyPrice: 9800, Currency: fareCurrency, Rating: 4.5, Location: "Tonk Road, Jaipur"},
		{Name: "Zostel Jaipur", NightlyPrice: 1400, Currency: fareCurrency, Rating: 4.0, Location: "Pink City, Jaipur"},
	},
	"AGR": {
		{Name: "The Oberoi Amarvilas", NightlyPrice: 38000, Currency: fareCurrency, Rating: 4.9, Location: "Taj East Gate, Agra"},
		{Name: "Crystal Sarovar Premiere", NightlyPrice: 6500, Currency: fareCurrency, Rating: 4.3, Location: "Fatehabad Road, Agra"},
	},
	"VNS": {
		{Name: "BrijRama Palace", NightlyPrice: 14500, Currency: fareCurrency, Rating: 4.7, Location: "Darbhanga Ghat, Varanasi"},
		{Name: "Hotel Alka", NightlyPrice: 2800, Currency: fareCurrency, Rating: 4.0, Location: "Meer Ghat, Varanasi"},
	},
}

// SearchHotels generates estimated hotel rates for the city.
func (p *fallbackProvider) SearchHotels(_ context.Context, q service.HotelQuery) ([]service.HotelRate, error) {
	if rates, ok := fallbackHotels[q.CityCode]; ok {
		out := make([]service.HotelRate, len(rates))
		copy(out, rates)
		return out, nil
	}

	return []service.HotelRate{
		{Name: "Grand City Hotel", NightlyPrice: 8500, Currency: fareCurrency, Rating: 4.4, Location: "City Centre, " + q.CityCode},
		{Name: "Business Inn", NightlyPrice: 4500, Currency: fareCurrency, Rating: 4.1, Location: "Business District, " + q.CityCode},
		{Name: "Budget Residency", NightlyPrice: 2200, Currency: fareCurrency, Rating: 3.8, Location: "Near Station, " + q.CityCode},
	}, nil
}
