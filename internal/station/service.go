package station

import (
	"context"
	"fmt"

	"backend-routenav/internal/db"
	"backend-routenav/internal/route"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Get(ctx context.Context, id string) (Station, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(address,''), ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(stay_duration_minutes,0), created_at
		FROM stations WHERE id=$1
	`, id)
	var st Station
	if err := row.Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lng, &st.StayDurationMinutes, &st.CreatedAt); err != nil {
		return Station{}, err
	}
	return st, nil
}

// ByIDs loads the given stations, preserving the request order. A missing id
// fails the whole lookup so a route is never silently planned short.
func (s *Service) ByIDs(ctx context.Context, ids []string) ([]Station, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no station ids", route.ErrInvalidInput)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(address,''), ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(stay_duration_minutes,0), created_at
		FROM stations WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]Station, len(ids))
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lng, &st.StayDurationMinutes, &st.CreatedAt); err != nil {
			return nil, err
		}
		byID[st.ID] = st
	}

	stations := make([]Station, 0, len(ids))
	for _, id := range ids {
		st, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown station %s", route.ErrInvalidInput, id)
		}
		stations = append(stations, st)
	}
	return stations, nil
}

func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKm float64) ([]Station, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(address,''), ST_Y(location::geometry), ST_X(location::geometry),
		       COALESCE(stay_duration_minutes,0), created_at
		FROM stations
		WHERE ST_DWithin(location, ST_SetSRID(ST_MakePoint($1,$2), 4326)::geography, $3)
		ORDER BY created_at DESC
	`, lng, lat, radiusKm*1000)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []Station
	for rows.Next() {
		var st Station
		if err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lng, &st.StayDurationMinutes, &st.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, st)
	}
	return results, nil
}

// Waypoints is the station-directory boundary used by route planning.
func (s *Service) Waypoints(ctx context.Context, ids []string) ([]route.Waypoint, error) {
	stations, err := s.ByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	wps := make([]route.Waypoint, len(stations))
	for i, st := range stations {
		wps[i] = st.Waypoint()
	}
	return wps, nil
}
