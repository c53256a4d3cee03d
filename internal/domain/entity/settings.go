package entity

// NotificationSettings is the per-user configuration of the proximity
// notification engine. Persisted as a single JSON document and mutated only
// through the engine's setters.
type NotificationSettings struct {
	Enabled           bool    `json:"enabled"`
	RadiusKm          float64 `json:"radius_km"`
	NotifyAttractions bool    `json:"notify_attractions"`
	NotifyRestaurants bool    `json:"notify_restaurants"`
	NotifyHotels      bool    `json:"notify_hotels"`
}

// DefaultNotificationSettings returns the documented first-use defaults.
func DefaultNotificationSettings(radiusKm float64) NotificationSettings {
	return NotificationSettings{
		Enabled:           true,
		RadiusKm:          radiusKm,
		NotifyAttractions: true,
		NotifyRestaurants: true,
		NotifyHotels:      true,
	}
}

// CategoryEnabled reports whether alerts for the given category are on.
func (s NotificationSettings) CategoryEnabled(category PlaceCategory) bool {
	switch category {
	case CategoryAttraction:
		return s.NotifyAttractions
	case CategoryRestaurant:
		return s.NotifyRestaurants
	case CategoryHotel:
		return s.NotifyHotels
	}

	return false
}

// NotificationSettingsPatch carries partial updates proposed by the UI.
// Nil fields leave the current value untouched.
type NotificationSettingsPatch struct {
	Enabled           *bool    `json:"enabled,omitempty"`
	RadiusKm          *float64 `json:"radius_km,omitempty"`
	NotifyAttractions *bool    `json:"notify_attractions,omitempty"`
	NotifyRestaurants *bool    `json:"notify_restaurants,omitempty"`
	NotifyHotels      *bool    `json:"notify_hotels,omitempty"`
}
