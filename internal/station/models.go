package station

import (
	"time"

	"backend-routenav/internal/route"
)

// Station is one polling station from the directory. The directory is
// read-only from this service's point of view; station administration lives
// elsewhere.
type Station struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Address             string    `json:"address,omitempty"`
	Lat                 float64   `json:"lat"`
	Lng                 float64   `json:"lng"`
	StayDurationMinutes int       `json:"stay_duration_minutes"`
	CreatedAt           time.Time `json:"created_at"`
}

func (s Station) Waypoint() route.Waypoint {
	return route.Waypoint{
		ID:                  s.ID,
		Lat:                 s.Lat,
		Lng:                 s.Lng,
		Name:                s.Name,
		Address:             s.Address,
		StayDurationMinutes: s.StayDurationMinutes,
	}
}
