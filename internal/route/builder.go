package route

import (
	"context"
	"fmt"
	"time"
)

// Builder turns an origin plus a waypoint set into a fully timed itinerary,
// asking the directions provider for each leg.
type Builder struct {
	provider Provider
}

func NewBuilder(provider Provider) *Builder {
	return &Builder{provider: provider}
}

// CalculateOptimizedRoute builds the itinerary atomically: any provider
// failure or context cancellation returns no result. Given the same inputs
// and provider responses the output is reproducible.
func (b *Builder) CalculateOptimizedRoute(ctx context.Context, origin Point, waypoints []Waypoint, opts Options) (Itinerary, error) {
	opts = opts.Normalize()

	ordered, err := OptimizeVisitOrder(origin, waypoints, opts)
	if err != nil {
		return Itinerary{}, err
	}

	points := make([]ItineraryPoint, 0, len(ordered)+2)
	points = append(points, ItineraryPoint{
		VisitOrder: 1,
		WaypointID: StartPointID,
		Lat:        origin.Lat,
		Lng:        origin.Lng,
		Name:       "Start",
	})
	for _, wp := range ordered {
		stay := wp.StayDurationMinutes
		if stay <= 0 {
			stay = opts.DefaultStayDurationMinutes
		}
		points = append(points, ItineraryPoint{
			VisitOrder:          len(points) + 1,
			WaypointID:          wp.ID,
			Lat:                 wp.Lat,
			Lng:                 wp.Lng,
			Name:                wp.Name,
			Address:             wp.Address,
			StayDurationMinutes: stay,
		})
	}
	if opts.IncludeReturn {
		points = append(points, ItineraryPoint{
			VisitOrder: len(points) + 1,
			WaypointID: EndPointID,
			Lat:        origin.Lat,
			Lng:        origin.Lng,
			Name:       "Return",
		})
	}

	legOpts := opts.LegOptions()
	segments := make([]Segment, 0, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		if err := ctx.Err(); err != nil {
			return Itinerary{}, err
		}
		leg, err := b.provider.GetLeg(ctx, points[i].Point(), points[i+1].Point(), legOpts)
		if err != nil {
			if ctx.Err() != nil {
				return Itinerary{}, ctx.Err()
			}
			return Itinerary{}, fmt.Errorf("%w: leg %d-%d: %v", ErrRouteCalculation, i, i+1, err)
		}
		segments = append(segments, Segment{
			FromIndex:       i,
			ToIndex:         i + 1,
			DistanceMeters:  leg.DistanceMeters,
			DurationSeconds: leg.DurationSeconds,
			Polyline:        leg.Polyline,
		})
	}

	points[0].EstimatedArrival = opts.DepartureTime
	points[0].EstimatedDeparture = opts.DepartureTime
	for i := 1; i < len(points); i++ {
		travel := time.Duration(segments[i-1].DurationSeconds) * time.Second
		points[i].EstimatedArrival = points[i-1].EstimatedDeparture.Add(travel)
		stay := time.Duration(points[i].StayDurationMinutes) * time.Minute
		points[i].EstimatedDeparture = points[i].EstimatedArrival.Add(stay)
	}

	summary := Summary{WaypointCount: len(ordered)}
	for _, seg := range segments {
		summary.TotalDistanceMeters += seg.DistanceMeters
		summary.TotalDurationSeconds += seg.DurationSeconds
	}

	it := Itinerary{
		Points:        points,
		Segments:      segments,
		Summary:       summary,
		DepartureTime: opts.DepartureTime,
	}
	if opts.IncludeReturn {
		it.ReturnTime = points[len(points)-1].EstimatedDeparture
	}
	return it, nil
}
