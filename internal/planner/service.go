package planner

import (
	"context"

	"backend-routenav/internal/route"
)

// Directory is the station-directory boundary: it resolves station ids to
// waypoints and is never written to. *station.Service satisfies it.
type Directory interface {
	Waypoints(ctx context.Context, ids []string) ([]route.Waypoint, error)
}

type Service struct {
	directory          Directory
	builder            *route.Builder
	defaultStayMinutes int
}

// NewService wires the planner. defaultStayMinutes is applied when a request
// leaves the per-stop stay duration unset; zero falls back to the built-in
// default.
func NewService(directory Directory, builder *route.Builder, defaultStayMinutes int) *Service {
	return &Service{directory: directory, builder: builder, defaultStayMinutes: defaultStayMinutes}
}

type PlanRequest struct {
	Origin     route.Point   `json:"origin"`
	StationIDs []string      `json:"station_ids"`
	Options    route.Options `json:"options"`
}

// Plan resolves the stations and builds the timed itinerary.
func (s *Service) Plan(ctx context.Context, req PlanRequest) (route.Itinerary, error) {
	waypoints, err := s.directory.Waypoints(ctx, req.StationIDs)
	if err != nil {
		return route.Itinerary{}, err
	}
	if req.Options.DefaultStayDurationMinutes <= 0 && s.defaultStayMinutes > 0 {
		req.Options.DefaultStayDurationMinutes = s.defaultStayMinutes
	}
	return s.builder.CalculateOptimizedRoute(ctx, req.Origin, waypoints, req.Options)
}
