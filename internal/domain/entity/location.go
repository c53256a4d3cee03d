package entity

import "time"

// LocationSample is a single positioning fix reported by a device.
// Only the latest sample per user is retained; each new sample supersedes
// the previous one.
type LocationSample struct {
	Coordinate     Coordinate `json:"coordinate"`
	AccuracyMeters float64    `json:"accuracy_meters"`
	CapturedAt     time.Time  `json:"captured_at"`
}

// Age returns how old the sample is relative to now.
func (s LocationSample) Age(now time.Time) time.Duration {
	return now.Sub(s.CapturedAt)
}
