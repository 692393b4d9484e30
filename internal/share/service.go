package share

import (
	"context"
	"encoding/json"
	"fmt"

	"backend-routenav/internal/db"
	"backend-routenav/internal/route"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input SavedRoute) (SavedRoute, error) {
	if len(input.StationIDs) == 0 {
		return SavedRoute{}, fmt.Errorf("%w: no station ids", route.ErrInvalidInput)
	}
	if input.Name == "" {
		input.Name = "Saved route"
	}
	input.ID = uuid.NewString()

	optionsJSON, err := json.Marshal(input.Options)
	if err != nil {
		return SavedRoute{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO saved_routes (id, name, station_ids, options, created_by)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at
	`, input.ID, input.Name, input.StationIDs, optionsJSON, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return SavedRoute{}, err
	}
	return input, nil
}

func (s *Service) Get(ctx context.Context, id string) (SavedRoute, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, station_ids, options, created_by, created_at
		FROM saved_routes WHERE id=$1
	`, id)

	var saved SavedRoute
	var optionsJSON []byte
	if err := row.Scan(&saved.ID, &saved.Name, &saved.StationIDs, &optionsJSON, &saved.CreatedBy, &saved.CreatedAt); err != nil {
		return SavedRoute{}, err
	}
	if err := json.Unmarshal(optionsJSON, &saved.Options); err != nil {
		return SavedRoute{}, err
	}
	return saved, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]SavedRoute, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, station_ids, options, created_by, created_at
		FROM saved_routes WHERE created_by=$1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []SavedRoute
	for rows.Next() {
		var saved SavedRoute
		var optionsJSON []byte
		if err := rows.Scan(&saved.ID, &saved.Name, &saved.StationIDs, &optionsJSON, &saved.CreatedBy, &saved.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(optionsJSON, &saved.Options); err != nil {
			return nil, err
		}
		routes = append(routes, saved)
	}
	return routes, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM saved_routes WHERE id=$1`, id)
	return err
}
