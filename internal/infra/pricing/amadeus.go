// Package pricing implements fare search against the Amadeus self-service
// APIs, with a deterministic estimated-fare fallback for when the live
// source is unreachable.
package pricing

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"yatra/config"
	"yatra/internal/domain/service"
	"yatra/internal/errors"
)

const (
	amadeusTestHost       = "https://test.api.amadeus.com"
	amadeusProductionHost = "https://api.amadeus.com"

	fareCurrency = "INR"

	// maxHotelIDsPerRequest bounds the second hotel-search call to stay
	// under Amadeus rate limits.
	maxHotelIDsPerRequest = 20
)

type amadeusProvider struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewAmadeusProvider creates a fare provider over the Amadeus APIs. With
// empty credentials every search returns an error, pushing callers to the
// fallback provider.
func NewAmadeusProvider(cfg *config.AmadeusConfig) service.FareProvider {
	baseURL := amadeusTestHost
	if cfg != nil && cfg.Environment == "production" {
		baseURL = amadeusProductionHost
	}

	provider := &amadeusProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if cfg != nil {
		provider.clientID = cfg.ClientID
		provider.clientSecret = cfg.ClientSecret
	}

	return provider
}

// SearchFlights queries the Flight Offers Search API.
func (p *amadeusProvider) SearchFlights(ctx context.Context, q service.FlightQuery) ([]service.FlightFare, error) {
	if p.clientID == "" {
		return nil, errors.New("amadeus is not configured")
	}

	query := url.Values{}
	query.Set("originLocationCode", q.Origin)
	query.Set("destinationLocationCode", q.Destination)
	query.Set("departureDate", q.DepartureDate.Format("2006-01-02"))
	if !q.ReturnDate.IsZero() {
		query.Set("returnDate", q.ReturnDate.Format("2006-01-02"))
	}
	query.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	query.Set("currencyCode", fareCurrency)
	query.Set("max", "6")

	body, err := p.doRequest(ctx, "/v2/shopping/flight-offers?"+query.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "flight search failed")
	}

	return parseFlightOffers(body)
}

// SearchHotels queries the Hotel List and Hotel Offers APIs.
func (p *amadeusProvider) SearchHotels(ctx context.Context, q service.HotelQuery) ([]service.HotelRate, error) {
	if p.clientID == "" {
		return nil, errors.New("amadeus is not configured")
	}

	hotelIDs, err := p.hotelIDsByCity(ctx, q.CityCode)
	if err != nil {
		return nil, errors.Wrap(err, "hotel list failed")
	}
	if len(hotelIDs) == 0 {
		return nil, errors.Errorf("no hotels found for city %s", q.CityCode)
	}
	if len(hotelIDs) > maxHotelIDsPerRequest {
		hotelIDs = hotelIDs[:maxHotelIDsPerRequest]
	}

	query := url.Values{}
	query.Set("hotelIds", strings.Join(hotelIDs, ","))
	query.Set("checkInDate", q.CheckIn.Format("2006-01-02"))
	query.Set("checkOutDate", q.CheckOut.Format("2006-01-02"))
	query.Set("adults", strconv.Itoa(max(q.Adults, 1)))
	query.Set("roomQuantity", "1")
	query.Set("currency", fareCurrency)
	query.Set("bestRateOnly", "true")

	body, err := p.doRequest(ctx, "/v3/shopping/hotel-offers?"+query.Encode())
	if err != nil {
		return nil, errors.Wrap(err, "hotel offers failed")
	}

	return parseHotelOffers(body)
}

func (p *amadeusProvider) hotelIDsByCity(ctx context.Context, cityCode string) ([]string, error) {
	query := url.Values{}
	query.Set("cityCode", cityCode)
	query.Set("radius", "5")
	query.Set("radiusUnit", "KM")
	query.Set("hotelSource", "ALL")

	body, err := p.doRequest(ctx, "/v1/reference-data/locations/hotels/by-city?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []struct {
			HotelID string `json:"hotelId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse hotel list")
	}

	ids := make([]string, 0, len(resp.Data))
	for _, h := range resp.Data {
		ids = append(ids, h.HotelID)
	}

	return ids, nil
}

// token returns a valid OAuth2 access token, refreshing when expired.
func (p *amadeusProvider) token(ctx context.Context) (string, error) {
	p.mu.Lock()
	token := p.accessToken
	expired := time.Now().After(p.tokenExpiry)
	p.mu.Unlock()

	if token != "" && !expired {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/security/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "token request failed")
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("token request failed (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", errors.Wrap(err, "failed to parse token response")
	}

	p.mu.Lock()
	p.accessToken = result.AccessToken
	// Refresh slightly early so in-flight requests never carry a token
	// that expires mid-request.
	p.tokenExpiry = time.Now().Add(time.Duration(result.ExpiresIn-30) * time.Second)
	p.mu.Unlock()

	return result.AccessToken, nil
}

func (p *amadeusProvider) doRequest(ctx context.Context, path string) ([]byte, error) {
	token, err := p.token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "auth failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("amadeus error (%d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// --- Response parsing ---

type flightOffersResponse struct {
	Data []struct {
		ID    string `json:"id"`
		Price struct {
			GrandTotal string `json:"grandTotal"`
			Currency   string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IataCode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
		ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	} `json:"data"`
}

func parseFlightOffers(data []byte) ([]service.FlightFare, error) {
	var resp flightOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse flight offers")
	}

	fares := make([]service.FlightFare, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 {
			continue
		}

		price, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
		if err != nil || price <= 0 {
			continue
		}

		outbound := offer.Itineraries[0]
		airlineCode := ""
		if len(outbound.Segments) > 0 {
			airlineCode = outbound.Segments[0].CarrierCode
		} else if len(offer.ValidatingAirlineCodes) > 0 {
			airlineCode = offer.ValidatingAirlineCodes[0]
		}

		fare := service.FlightFare{
			Price:       price,
			Currency:    offer.Price.Currency,
			Airline:     airlineName(airlineCode),
			AirlineCode: airlineCode,
			Duration:    humanDuration(outbound.Duration),
			Stops:       max(0, len(outbound.Segments)-1),
			OfferID:     offer.ID,
		}
		if len(outbound.Segments) > 0 {
			fare.DepartureTime = outbound.Segments[0].Departure.At
			fare.ArrivalTime = outbound.Segments[len(outbound.Segments)-1].Arrival.At
			fare.FlightNumber = airlineCode + outbound.Segments[0].Number
		}

		fares = append(fares, fare)
	}

	return fares, nil
}

type hotelOffersResponse struct {
	Data []struct {
		Hotel struct {
			HotelID  string `json:"hotelId"`
			Name     string `json:"name"`
			CityCode string `json:"cityCode"`
			Address  struct {
				CityName string `json:"cityName"`
			} `json:"address"`
			Rating string `json:"rating"`
		} `json:"hotel"`
		Available bool `json:"available"`
		Offers    []struct {
			Price struct {
				Total    string `json:"total"`
				Currency string `json:"currency"`
			} `json:"price"`
		} `json:"offers"`
	} `json:"data"`
}

func parseHotelOffers(data []byte) ([]service.HotelRate, error) {
	var resp hotelOffersResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to parse hotel offers")
	}

	rates := make([]service.HotelRate, 0, len(resp.Data))
	for _, item := range resp.Data {
		if !item.Available || len(item.Offers) == 0 {
			continue
		}

		price, err := strconv.ParseFloat(item.Offers[0].Price.Total, 64)
		if err != nil || price <= 0 {
			continue
		}

		location := item.Hotel.Address.CityName
		if location == "" {
			location = item.Hotel.CityCode
		}

		rates = append(rates, service.HotelRate{
			Name:         item.Hotel.Name,
			HotelID:      item.Hotel.HotelID,
			NightlyPrice: price,
			Currency:     item.Offers[0].Price.Currency,
			Rating:       parseRating(item.Hotel.Rating),
			Location:     location,
		})
	}

	return rates, nil
}

// humanDuration converts an ISO 8601 duration (PT5H30M) to "5h 30m".
func humanDuration(iso string) string {
	trimmed := strings.TrimPrefix(iso, "PT")
	if trimmed == "" {
		return ""
	}

	var parts []string
	if idx := strings.Index(trimmed, "H"); idx >= 0 {
		parts = append(parts, trimmed[:idx]+"h")
		trimmed = trimmed[idx+1:]
	}
	if idx := strings.Index(trimmed, "M"); idx >= 0 {
		parts = append(parts, trimmed[:idx]+"m")
	}

	return strings.Join(parts, " ")
}

func parseRating(s string) float64 {
	r, err := strconv.ParseFloat(s, 64)
	if err != nil || r <= 0 {
		return 4.0
	}
	if r > 5 {
		return 5
	}

	return r
}

func airlineName(code string) string {
	names := map[string]string{
		"AI": "Air India",
		"6E": "IndiGo",
		"UK": "Vistara",
		"SG": "SpiceJet",
		"QP": "Akasa Air",
		"EK": "Emirates",
		"QR": "Qatar Airways",
		"SQ": "Singapore Airlines",
		"BA": "British Airways",
		"LH": "Lufthansa",
		"TK": "Turkish Airlines",
	}
	if name, ok := names[code]; ok {
		return name
	}
	if code != "" {
		return code + " Airlines"
	}

	return "Unknown Airline"
}
