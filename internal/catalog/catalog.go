// Package catalog holds the built-in destination dataset. It backs the
// proximity engine and serves as the search fallback when Elasticsearch
// is unavailable.
package catalog

import (
	"strings"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/service"
)

// places is ordered by ID; All relies on this for deterministic output.
var places = []entity.Place{
	{
		ID:   "agra-taj-mahal",
		Name: "Taj Mahal",
		Coordinate: entity.Coordinate{
			Latitude:  27.1751,
			Longitude: 78.0421,
		},
		Description: "Ivory-white marble mausoleum on the south bank of the Yamuna river",
		City:        "Agra",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "agra-fort",
		Name: "Agra Fort",
		Coordinate: entity.Coordinate{
			Latitude:  27.1795,
			Longitude: 78.0211,
		},
		Description: "16th-century Mughal fortress of red sandstone",
		City:        "Agra",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "agra-oberoi-amarvilas",
		Name: "The Oberoi Amarvilas",
		Coordinate: entity.Coordinate{
			Latitude:  27.1715,
			Longitude: 78.0500,
		},
		Description: "Luxury hotel with uninterrupted views of the Taj Mahal",
		City:        "Agra",
		Category:    entity.CategoryHotel,
	},
	{
		ID:   "agra-pinch-of-spice",
		Name: "Pinch of Spice",
		Coordinate: entity.Coordinate{
			Latitude:  27.1607,
			Longitude: 78.0437,
		},
		Description: "Popular North Indian restaurant near the Taj East Gate",
		City:        "Agra",
		Category:    entity.CategoryRestaurant,
	},
	{
		ID:   "delhi-india-gate",
		Name: "India Gate",
		Coordinate: entity.Coordinate{
			Latitude:  28.6129,
			Longitude: 77.2295,
		},
		Description: "War memorial arch at the centre of New Delhi",
		City:        "New Delhi",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "delhi-red-fort",
		Name: "Red Fort",
		Coordinate: entity.Coordinate{
			Latitude:  28.6562,
			Longitude: 77.2410,
		},
		Description: "Historic Mughal fort of red sandstone in Old Delhi",
		City:        "New Delhi",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "delhi-qutub-minar",
		Name: "Qutub Minar",
		Coordinate: entity.Coordinate{
			Latitude:  28.5245,
			Longitude: 77.1855,
		},
		Description: "73-metre victory tower and UNESCO World Heritage Site",
		City:        "New Delhi",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "delhi-humayuns-tomb",
		Name: "Humayun's Tomb",
		Coordinate: entity.Coordinate{
			Latitude:  28.5933,
			Longitude: 77.2507,
		},
		Description: "Garden-tomb of the Mughal emperor Humayun",
		City:        "New Delhi",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "delhi-imperial-hotel",
		Name: "The Imperial",
		Coordinate: entity.Coordinate{
			Latitude:  28.6254,
			Longitude: 77.2180,
		},
		Description: "Colonial-era luxury hotel on Janpath",
		City:        "New Delhi",
		Category:    entity.CategoryHotel,
	},
	{
		ID:   "delhi-taj-palace",
		Name: "Taj Palace",
		Coordinate: entity.Coordinate{
			Latitude:  28.6013,
			Longitude: 77.1801,
		},
		Description: "Five-star hotel in the Diplomatic Enclave",
		City:        "New Delhi",
		Category:    entity.CategoryHotel,
	},
	{
		ID:   "delhi-karims",
		Name: "Karim's",
		Coordinate: entity.Coordinate{
			Latitude:  28.6494,
			Longitude: 77.2336,
		},
		Description: "Legendary Mughlai restaurant near Jama Masjid, serving since 1913",
		City:        "New Delhi",
		Category:    entity.CategoryRestaurant,
	},
	{
		ID:   "delhi-bukhara",
		Name: "Bukhara",
		Coordinate: entity.Coordinate{
			Latitude:  28.5973,
			Longitude: 77.1737,
		},
		Description: "Award-winning North-West Frontier cuisine at ITC Maurya",
		City:        "New Delhi",
		Category:    entity.CategoryRestaurant,
	},
	{
		ID:   "jaipur-amber-fort",
		Name: "Amber Fort",
		Coordinate: entity.Coordinate{
			Latitude:  26.9855,
			Longitude: 75.8513,
		},
		Description: "Hilltop fort of pale yellow and pink sandstone overlooking Maota Lake",
		City:        "Jaipur",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "jaipur-hawa-mahal",
		Name: "Hawa Mahal",
		Coordinate: entity.Coordinate{
			Latitude:  26.9239,
			Longitude: 75.8267,
		},
		Description: "Palace of Winds with its honeycomb facade of 953 windows",
		City:        "Jaipur",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "jaipur-city-palace",
		Name: "City Palace",
		Coordinate: entity.Coordinate{
			Latitude:  26.9258,
			Longitude: 75.8237,
		},
		Description: "Royal residence blending Rajput and Mughal architecture",
		City:        "Jaipur",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "jaipur-rambagh-palace",
		Name: "Rambagh Palace",
		Coordinate: entity.Coordinate{
			Latitude:  26.8989,
			Longitude: 75.8087,
		},
		Description: "Former royal residence turned heritage luxury hotel",
		City:        "Jaipur",
		Category:    entity.CategoryHotel,
	},
	{
		ID:   "jaipur-suvarna-mahal",
		Name: "Suvarna Mahal",
		Coordinate: entity.Coordinate{
			Latitude:  26.8991,
			Longitude: 75.8090,
		},
		Description: "Royal Indian fine dining in the Rambagh Palace ballroom",
		City:        "Jaipur",
		Category:    entity.CategoryRestaurant,
	},
	{
		ID:   "mumbai-gateway-of-india",
		Name: "Gateway of India",
		Coordinate: entity.Coordinate{
			Latitude:  18.9220,
			Longitude: 72.8347,
		},
		Description: "Basalt arch monument on the Apollo Bunder waterfront",
		City:        "Mumbai",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "mumbai-marine-drive",
		Name: "Marine Drive",
		Coordinate: entity.Coordinate{
			Latitude:  18.9438,
			Longitude: 72.8231,
		},
		Description: "Crescent seaside promenade known as the Queen's Necklace",
		City:        "Mumbai",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "mumbai-taj-mahal-palace",
		Name: "The Taj Mahal Palace",
		Coordinate: entity.Coordinate{
			Latitude:  18.9217,
			Longitude: 72.8332,
		},
		Description: "Iconic harbourfront hotel opposite the Gateway of India",
		City:        "Mumbai",
		Category:    entity.CategoryHotel,
	},
	{
		ID:   "mumbai-trishna",
		Name: "Trishna",
		Coordinate: entity.Coordinate{
			Latitude:  18.9285,
			Longitude: 72.8326,
		},
		Description: "Seafood institution in Fort famous for butter garlic crab",
		City:        "Mumbai",
		Category:    entity.CategoryRestaurant,
	},
	{
		ID:   "varanasi-dashashwamedh-ghat",
		Name: "Dashashwamedh Ghat",
		Coordinate: entity.Coordinate{
			Latitude:  25.3060,
			Longitude: 83.0104,
		},
		Description: "Main ghat on the Ganges, home of the evening Ganga Aarti",
		City:        "Varanasi",
		Category:    entity.CategoryAttraction,
	},
	{
		ID:   "varanasi-brijrama-palace",
		Name: "BrijRama Palace",
		Coordinate: entity.Coordinate{
			Latitude:  25.3034,
			Longitude: 83.0117,
		},
		Description: "18th-century riverside palace hotel on Darbhanga Ghat",
		City:        "Varanasi",
		Category:    entity.CategoryHotel,
	},
}

// All returns every catalogued place in stable ID order. The returned slice
// is a copy; callers may reorder it freely.
func All() []entity.Place {
	out := make([]entity.Place, len(places))
	copy(out, places)
	return out
}

// ByID returns the place with the given ID, or false when unknown.
func ByID(id string) (entity.Place, bool) {
	for _, p := range places {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Place{}, false
}

// ByCity returns all places in the given city, matched case-insensitively.
func ByCity(city string) []entity.Place {
	var out []entity.Place
	for _, p := range places {
		if strings.EqualFold(p.City, city) {
			out = append(out, p)
		}
	}
	return out
}

// Search performs a naive substring match over name, city and description.
func Search(query service.PlaceQuery) []entity.Place {
	text := strings.ToLower(strings.TrimSpace(query.Text))

	var out []entity.Place
	for _, p := range places {
		if query.Category != "" && p.Category != query.Category {
			continue
		}
		if query.City != "" && !strings.EqualFold(p.City, query.City) {
			continue
		}
		if text != "" && !matchesText(p, text) {
			continue
		}
		out = append(out, p)
		if query.Limit > 0 && len(out) >= query.Limit {
			break
		}
	}
	return out
}

func matchesText(p entity.Place, text string) bool {
	return strings.Contains(strings.ToLower(p.Name), text) ||
		strings.Contains(strings.ToLower(p.City), text) ||
		strings.Contains(strings.ToLower(p.Description), text)
}
