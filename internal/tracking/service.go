package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/alert"
	"github.com/gassdlindo/rastreioveicular/internal/analytics"
	"github.com/gassdlindo/rastreioveicular/internal/db"
	"github.com/gassdlindo/rastreioveicular/internal/geofence"
	"github.com/gassdlindo/rastreioveicular/internal/stream"

	"go.uber.org/zap"
)

const maxHistoryLimit = 1000

var ErrVehicleNotFound = errors.New("vehicle not found")

type Service struct {
	db     db.Querier
	hub    *stream.Hub
	fences *geofence.Service
	alerts *alert.Service
	logger *zap.Logger
}

func NewService(db db.Querier, hub *stream.Hub, fences *geofence.Service, alerts *alert.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, hub: hub, fences: fences, alerts: alerts, logger: logger}
}

// RecordPing persists one reading for an owned vehicle, broadcasts it to live
// subscribers, and raises speed-limit and geofence transition alerts.
func (s *Service) RecordPing(ctx context.Context, vehicleID, userID string, input Ping) (Ping, error) {
	var speedLimit float64
	if err := s.db.QueryRow(ctx, `
		SELECT COALESCE(speed_limit_kmh,0)
		FROM vehicles WHERE id=$1 AND user_id=$2
	`, vehicleID, userID).Scan(&speedLimit); err != nil {
		return Ping{}, ErrVehicleNotFound
	}

	if input.RecordedAt.IsZero() {
		input.RecordedAt = time.Now().UTC()
	}

	var prevLat, prevLng float64
	hasPrev := true
	if err := s.db.QueryRow(ctx, `
		SELECT lat, lng
		FROM pings
		WHERE vehicle_id=$1
		ORDER BY recorded_at DESC
		LIMIT 1
	`, vehicleID).Scan(&prevLat, &prevLng); err != nil {
		hasPrev = false
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO pings (vehicle_id, user_id, lat, lng, speed_kmh, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at
	`, vehicleID, userID, input.Lat, input.Lng, input.SpeedKmh, input.RecordedAt)
	if err := row.Scan(&input.ID, &input.CreatedAt); err != nil {
		return Ping{}, err
	}
	input.VehicleID = vehicleID
	input.UserID = userID

	if s.hub != nil {
		payload, _ := json.Marshal(input)
		s.hub.Broadcast(vehicleID, payload)
	}

	if speedLimit > 0 && input.SpeedKmh > speedLimit {
		s.raiseAlert(ctx, alert.Alert{
			UserID:    userID,
			VehicleID: vehicleID,
			Kind:      alert.KindSpeedLimit,
			Message:   fmt.Sprintf("speed %.1f km/h over limit %.1f km/h", input.SpeedKmh, speedLimit),
			Lat:       input.Lat,
			Lng:       input.Lng,
		})
	}

	s.evaluateGeofences(ctx, input, prevLat, prevLng, hasPrev)

	return input, nil
}

func (s *Service) evaluateGeofences(ctx context.Context, ping Ping, prevLat, prevLng float64, hasPrev bool) {
	if s.fences == nil {
		return
	}
	fences, err := s.fences.ListActive(ctx, ping.UserID)
	if err != nil {
		s.logger.Error("geofence lookup failed", zap.String("vehicle_id", ping.VehicleID), zap.Error(err))
		return
	}

	for _, fence := range fences {
		isIn := fence.Contains(ping.Lat, ping.Lng)
		wasIn := hasPrev && fence.Contains(prevLat, prevLng)
		if isIn == wasIn {
			continue
		}

		kind := alert.KindGeofenceEntry
		verb := "entered"
		if !isIn {
			kind = alert.KindGeofenceExit
			verb = "left"
		}
		s.raiseAlert(ctx, alert.Alert{
			UserID:     ping.UserID,
			VehicleID:  ping.VehicleID,
			GeofenceID: fence.ID,
			Kind:       kind,
			Message:    fmt.Sprintf("vehicle %s %s", verb, fence.Name),
			Lat:        ping.Lat,
			Lng:        ping.Lng,
		})
	}
}

func (s *Service) raiseAlert(ctx context.Context, a alert.Alert) {
	if s.alerts == nil {
		return
	}
	if _, err := s.alerts.Create(ctx, a); err != nil {
		s.logger.Error("alert create failed", zap.String("vehicle_id", a.VehicleID), zap.String("kind", string(a.Kind)), zap.Error(err))
	}
}

// History returns pings newest-first within the query bounds.
func (s *Service) History(ctx context.Context, vehicleID, userID string, q HistoryQuery) ([]Ping, error) {
	if q.From.IsZero() {
		q.From = time.Unix(0, 0)
	}
	if q.To.IsZero() {
		q.To = time.Now().UTC()
	}
	if q.Limit <= 0 || q.Limit > maxHistoryLimit {
		q.Limit = maxHistoryLimit
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, vehicle_id, user_id, lat, lng, speed_kmh, recorded_at, created_at
		FROM pings
		WHERE vehicle_id=$1 AND user_id=$2 AND recorded_at BETWEEN $3 AND $4
		ORDER BY recorded_at DESC
		LIMIT $5
	`, vehicleID, userID, q.From, q.To, q.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pings []Ping
	for rows.Next() {
		var p Ping
		if err := rows.Scan(&p.ID, &p.VehicleID, &p.UserID, &p.Lat, &p.Lng, &p.SpeedKmh, &p.RecordedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		pings = append(pings, p)
	}
	return pings, nil
}

// Statistics fetches the ping range and reduces it to trip statistics.
func (s *Service) Statistics(ctx context.Context, vehicleID, userID string, q HistoryQuery) (analytics.TripStatistics, error) {
	pings, err := s.History(ctx, vehicleID, userID, q)
	if err != nil {
		return analytics.TripStatistics{}, err
	}

	samples := make([]analytics.Sample, len(pings))
	for i, p := range pings {
		samples[i] = analytics.Sample{
			Lat:        p.Lat,
			Lng:        p.Lng,
			SpeedKmh:   p.SpeedKmh,
			RecordedAt: p.RecordedAt,
		}
	}
	return analytics.ComputeStatistics(samples), nil
}

// Latest returns the most recent ping for the vehicle.
func (s *Service) Latest(ctx context.Context, vehicleID, userID string) (Ping, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, vehicle_id, user_id, lat, lng, speed_kmh, recorded_at, created_at
		FROM pings
		WHERE vehicle_id=$1 AND user_id=$2
		ORDER BY recorded_at DESC
		LIMIT 1
	`, vehicleID, userID)
	var p Ping
	if err := row.Scan(&p.ID, &p.VehicleID, &p.UserID, &p.Lat, &p.Lng, &p.SpeedKmh, &p.RecordedAt, &p.CreatedAt); err != nil {
		return Ping{}, err
	}
	return p, nil
}

// PruneOlderThan drops pings past the retention window; run periodically.
func (s *Service) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM pings WHERE recorded_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
