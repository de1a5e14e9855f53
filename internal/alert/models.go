package alert

import "time"

type Kind string

const (
	KindGeofenceEntry Kind = "geofence_entry"
	KindGeofenceExit  Kind = "geofence_exit"
	KindSpeedLimit    Kind = "speed_limit"
)

type Alert struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	VehicleID    string    `json:"vehicle_id"`
	GeofenceID   string    `json:"geofence_id,omitempty"`
	Kind         Kind      `json:"kind"`
	Message      string    `json:"message"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}
