package vehicle

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

func (s *Service) Create(ctx context.Context, input Vehicle) (Vehicle, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO vehicles (id, user_id, name, plate, model, speed_limit_kmh)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at
	`, input.ID, input.UserID, input.Name, input.Plate, input.Model, input.SpeedLimitKmh)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Vehicle{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id, userID string) (Vehicle, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, user_id, name, plate, model, COALESCE(speed_limit_kmh,0), created_at, updated_at
		FROM vehicles WHERE id=$1 AND user_id=$2
	`, id, userID)
	var v Vehicle
	if err := row.Scan(&v.ID, &v.UserID, &v.Name, &v.Plate, &v.Model, &v.SpeedLimitKmh, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Vehicle, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, name, plate, model, COALESCE(speed_limit_kmh,0), created_at, updated_at
		FROM vehicles WHERE user_id=$1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.UserID, &v.Name, &v.Plate, &v.Model, &v.SpeedLimitKmh, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, nil
}

func (s *Service) Update(ctx context.Context, id, userID string, patch UpdateRequest) (Vehicle, error) {
	v, err := s.Get(ctx, id, userID)
	if err != nil {
		return Vehicle{}, err
	}
	if patch.Name != "" {
		v.Name = patch.Name
	}
	if patch.Plate != "" {
		v.Plate = patch.Plate
	}
	if patch.Model != "" {
		v.Model = patch.Model
	}
	if patch.SpeedLimitKmh != nil {
		v.SpeedLimitKmh = *patch.SpeedLimitKmh
	}

	_, err = s.db.Exec(ctx, `
		UPDATE vehicles
		SET name=$3, plate=$4, model=$5, speed_limit_kmh=$6, updated_at=NOW()
		WHERE id=$1 AND user_id=$2
	`, v.ID, userID, v.Name, v.Plate, v.Model, v.SpeedLimitKmh)
	if err != nil {
		return Vehicle{}, err
	}
	return v, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM vehicles WHERE id=$1 AND user_id=$2`, id, userID)
	return err
}
