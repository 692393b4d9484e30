package route

import (
	"context"
	"time"
)

// Waypoint ids reserved for the origin entries of an itinerary.
const (
	StartPointID = "start"
	EndPointID   = "end"
)

type TransportMode string

const (
	ModeCar             TransportMode = "car"
	ModePedestrian      TransportMode = "pedestrian"
	ModeBicycle         TransportMode = "bicycle"
	ModePublicTransport TransportMode = "publicTransport"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Waypoint struct {
	ID                  string  `json:"id"`
	Lat                 float64 `json:"lat"`
	Lng                 float64 `json:"lng"`
	Name                string  `json:"name"`
	Address             string  `json:"address,omitempty"`
	StayDurationMinutes int     `json:"stay_duration_minutes"`
}

func (w Waypoint) Point() Point {
	return Point{Lat: w.Lat, Lng: w.Lng}
}

// Options holds the recognized route configuration. Zero values are filled
// in by Normalize, so a caller can set only what it cares about.
type Options struct {
	TransportMode              TransportMode `json:"transport_mode"`
	OptimizeRoute              bool          `json:"optimize_route"`
	IncludeReturn              bool          `json:"include_return"`
	AvoidHighways              bool          `json:"avoid_highways"`
	AvoidTolls                 bool          `json:"avoid_tolls"`
	AvoidFerries               bool          `json:"avoid_ferries"`
	ConsiderTraffic            bool          `json:"consider_traffic"`
	DepartureTime              time.Time     `json:"departure_time"`
	DefaultStayDurationMinutes int           `json:"default_stay_duration_minutes"`
	ProximityThresholdMeters   float64       `json:"proximity_threshold_meters"`
}

const (
	DefaultStayMinutes     = 30
	DefaultProximityMeters = 50.0
)

func (o Options) Normalize() Options {
	if o.TransportMode == "" {
		o.TransportMode = ModeCar
	}
	if o.DefaultStayDurationMinutes <= 0 {
		o.DefaultStayDurationMinutes = DefaultStayMinutes
	}
	if o.ProximityThresholdMeters <= 0 {
		o.ProximityThresholdMeters = DefaultProximityMeters
	}
	if o.DepartureTime.IsZero() {
		o.DepartureTime = time.Now()
	}
	return o
}

func (o Options) LegOptions() LegOptions {
	return LegOptions{
		TransportMode:   o.TransportMode,
		AvoidHighways:   o.AvoidHighways,
		AvoidTolls:      o.AvoidTolls,
		AvoidFerries:    o.AvoidFerries,
		ConsiderTraffic: o.ConsiderTraffic,
	}
}

// LegOptions is the subset of Options forwarded to the directions provider.
type LegOptions struct {
	TransportMode   TransportMode
	AvoidHighways   bool
	AvoidTolls      bool
	AvoidFerries    bool
	ConsiderTraffic bool
}

type Leg struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
	Polyline        string  `json:"polyline,omitempty"`
}

// Provider supplies per-leg travel estimates. Implementations live in
// internal/directions; tests use a deterministic estimator.
type Provider interface {
	GetLeg(ctx context.Context, from, to Point, opts LegOptions) (Leg, error)
}

type ItineraryPoint struct {
	VisitOrder          int       `json:"visit_order"`
	WaypointID          string    `json:"waypoint_id"`
	Lat                 float64   `json:"lat"`
	Lng                 float64   `json:"lng"`
	Name                string    `json:"name"`
	Address             string    `json:"address,omitempty"`
	EstimatedArrival    time.Time `json:"estimated_arrival"`
	EstimatedDeparture  time.Time `json:"estimated_departure"`
	StayDurationMinutes int       `json:"stay_duration_minutes"`
}

func (p ItineraryPoint) Point() Point {
	return Point{Lat: p.Lat, Lng: p.Lng}
}

type Segment struct {
	FromIndex       int     `json:"from_index"`
	ToIndex         int     `json:"to_index"`
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
	Polyline        string  `json:"polyline,omitempty"`
}

type Summary struct {
	TotalDistanceMeters  float64 `json:"total_distance_meters"`
	TotalDurationSeconds int     `json:"total_duration_seconds"`
	WaypointCount        int     `json:"waypoint_count"`
}

type Itinerary struct {
	Points        []ItineraryPoint `json:"points"`
	Segments      []Segment        `json:"segments"`
	Summary       Summary          `json:"summary"`
	DepartureTime time.Time        `json:"departure_time"`
	ReturnTime    time.Time        `json:"return_time,omitempty"`
}
