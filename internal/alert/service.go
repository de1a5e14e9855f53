package alert

import (
	"context"

	"github.com/gassdlindo/rastreioveicular/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Alert) (Alert, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO alerts (id, user_id, vehicle_id, geofence_id, kind, message, lat, lng)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,$6,$7,$8)
		RETURNING created_at
	`, input.ID, input.UserID, input.VehicleID, input.GeofenceID, string(input.Kind), input.Message, input.Lat, input.Lng)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Alert{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context, userID string, unacknowledgedOnly bool) ([]Alert, error) {
	sql := `
		SELECT id, user_id, vehicle_id, COALESCE(geofence_id,''), kind, message, lat, lng, acknowledged, created_at
		FROM alerts WHERE user_id=$1
		ORDER BY created_at DESC
	`
	if unacknowledgedOnly {
		sql = `
		SELECT id, user_id, vehicle_id, COALESCE(geofence_id,''), kind, message, lat, lng, acknowledged, created_at
		FROM alerts WHERE user_id=$1 AND NOT acknowledged
		ORDER BY created_at DESC
	`
	}

	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		var kind string
		if err := rows.Scan(&a.ID, &a.UserID, &a.VehicleID, &a.GeofenceID, &kind, &a.Message, &a.Lat, &a.Lng, &a.Acknowledged, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Kind = Kind(kind)
		alerts = append(alerts, a)
	}
	return alerts, nil
}

func (s *Service) Acknowledge(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE alerts SET acknowledged=TRUE
		WHERE id=$1 AND user_id=$2
	`, id, userID)
	return err
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM alerts WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}
