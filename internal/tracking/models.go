package tracking

import "time"

// Ping is one recorded GPS reading for a vehicle.
type Ping struct {
	ID         int64     `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	UserID     string    `json:"user_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	SpeedKmh   float64   `json:"speed_kmh"`
	RecordedAt time.Time `json:"recorded_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// HistoryQuery bounds a ping range lookup. Zero From means unbounded start,
// zero To means "up to now".
type HistoryQuery struct {
	From  time.Time
	To    time.Time
	Limit int
}
