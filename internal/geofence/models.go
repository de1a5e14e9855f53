package geofence

import (
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/shared/geo"
)

// Geofence is a circular zone owned by a user.
type Geofence struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	RadiusM   float64   `json:"radius_m"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRequest patches a geofence. Zero fields are left unchanged; Active
// is a pointer so omitting it does not deactivate the fence.
type UpdateRequest struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM float64 `json:"radius_m"`
	Active  *bool   `json:"active"`
}

// Contains reports whether the point falls inside the fence.
func (g Geofence) Contains(lat, lng float64) bool {
	return geo.WithinRadiusM(g.Lat, g.Lng, lat, lng, g.RadiusM)
}
