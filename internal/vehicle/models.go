package vehicle

import "time"

type Vehicle struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Plate         string    `json:"plate"`
	Model         string    `json:"model,omitempty"`
	SpeedLimitKmh float64   `json:"speed_limit_kmh,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UpdateRequest patches a vehicle. Zero fields are left unchanged; the speed
// limit is a pointer so it can be cleared back to zero ("no limit").
type UpdateRequest struct {
	Name          string   `json:"name"`
	Plate         string   `json:"plate"`
	Model         string   `json:"model"`
	SpeedLimitKmh *float64 `json:"speed_limit_kmh"`
}
