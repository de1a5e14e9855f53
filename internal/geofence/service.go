package geofence

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

func (s *Service) Create(ctx context.Context, input Geofence) (Geofence, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO geofences (id, user_id, name, lat, lng, radius_m, active)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at
	`, input.ID, input.UserID, input.Name, input.Lat, input.Lng, input.RadiusM, input.Active)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Geofence{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (Geofence, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, lat, lng, radius_m, active, created_at
		FROM geofences WHERE id=$1 AND user_id=$2
	`, id, userID)
	var g Geofence
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Lat, &g.Lng, &g.RadiusM, &g.Active, &g.CreatedAt); err != nil {
		return Geofence{}, err
	}
	return g, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Geofence, error) {
	return s.list(ctx, `
		SELECT id, user_id, name, lat, lng, radius_m, active, created_at
		FROM geofences WHERE user_id=$1
		ORDER BY created_at
	`, userID)
}

// ListActive returns the fences evaluated on every ping.
func (s *Service) ListActive(ctx context.Context, userID string) ([]Geofence, error) {
	return s.list(ctx, `
		SELECT id, user_id, name, lat, lng, radius_m, active, created_at
		FROM geofences WHERE user_id=$1 AND active
		ORDER BY created_at
	`, userID)
}

func (s *Service) list(ctx context.Context, sql, userID string) ([]Geofence, error) {
	rows, err := s.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fences []Geofence
	for rows.Next() {
		var g Geofence
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Lat, &g.Lng, &g.RadiusM, &g.Active, &g.CreatedAt); err != nil {
			return nil, err
		}
		fences = append(fences, g)
	}
	return fences, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, patch UpdateRequest) (Geofence, error) {
	g, err := s.Get(ctx, id, userID)
	if err != nil {
		return Geofence{}, err
	}
	if patch.Name != "" {
		g.Name = patch.Name
	}
	if patch.Lat != 0 {
		g.Lat = patch.Lat
	}
	if patch.Lng != 0 {
		g.Lng = patch.Lng
	}
	if patch.RadiusM != 0 {
		g.RadiusM = patch.RadiusM
	}
	if patch.Active != nil {
		g.Active = *patch.Active
	}

	_, err = s.db.Exec(ctx, `
		UPDATE geofences
		SET name=$3, lat=$4, lng=$5, radius_m=$6, active=$7
		WHERE id=$1 AND user_id=$2
	`, g.ID, userID, g.Name, g.Lat, g.Lng, g.RadiusM, g.Active)
	if err != nil {
		return Geofence{}, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM geofences WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}
