package route

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"backend-routenav/internal/geo"
)

// stubProvider returns haversine-based legs at a fixed speed, or a canned
// error after failAfter calls.
type stubProvider struct {
	calls     int
	failAfter int
	err       error
}

func (p *stubProvider) GetLeg(_ context.Context, from, to Point, _ LegOptions) (Leg, error) {
	p.calls++
	if p.err != nil && p.calls > p.failAfter {
		return Leg{}, p.err
	}
	d, err := geo.Haversine(from.Lat, from.Lng, to.Lat, to.Lng)
	if err != nil {
		return Leg{}, err
	}
	return Leg{DistanceMeters: d, DurationSeconds: int(d / 10)}, nil
}

func testWaypoints() []Waypoint {
	return []Waypoint{
		{ID: "st-1", Lat: 18.01, Lng: -76.8, Name: "Station 1", StayDurationMinutes: 15},
		{ID: "st-2", Lat: 18.02, Lng: -76.8, Name: "Station 2"},
		{ID: "st-3", Lat: 18.03, Lng: -76.8, Name: "Station 3"},
	}
}

func TestCalculateOptimizedRouteInvariants(t *testing.T) {
	b := NewBuilder(&stubProvider{})
	departure := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	it, err := b.CalculateOptimizedRoute(context.Background(), Point{Lat: 18, Lng: -76.8}, testWaypoints(), Options{
		OptimizeRoute: true,
		DepartureTime: departure,
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if len(it.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(it.Points))
	}
	if len(it.Segments) != len(it.Points)-1 {
		t.Fatalf("expected %d segments, got %d", len(it.Points)-1, len(it.Segments))
	}
	if it.Points[0].WaypointID != StartPointID {
		t.Fatalf("expected origin first")
	}

	sum := 0.0
	for _, seg := range it.Segments {
		sum += seg.DistanceMeters
	}
	if math.Abs(sum-it.Summary.TotalDistanceMeters) > 1e-9 {
		t.Fatalf("summary distance %v != segment sum %v", it.Summary.TotalDistanceMeters, sum)
	}
	if it.Summary.WaypointCount != 3 {
		t.Fatalf("expected 3 counted waypoints, got %d", it.Summary.WaypointCount)
	}

	for i := range it.Points {
		p := it.Points[i]
		if p.VisitOrder != i+1 {
			t.Fatalf("expected contiguous visit order, got %d at %d", p.VisitOrder, i)
		}
		if p.EstimatedDeparture.Before(p.EstimatedArrival) {
			t.Fatalf("departure before arrival at %d", i)
		}
		if i > 0 && p.EstimatedArrival.Before(it.Points[i-1].EstimatedDeparture) {
			t.Fatalf("timestamps not monotone at %d", i)
		}
	}

	// Explicit stay duration kept, default applied to the others.
	if it.Points[1].StayDurationMinutes != 15 {
		t.Fatalf("expected explicit stay to survive, got %d", it.Points[1].StayDurationMinutes)
	}
	if it.Points[2].StayDurationMinutes != DefaultStayMinutes {
		t.Fatalf("expected default stay, got %d", it.Points[2].StayDurationMinutes)
	}

	if !it.DepartureTime.Equal(departure) || !it.Points[0].EstimatedArrival.Equal(departure) {
		t.Fatalf("expected departure anchor to hold")
	}
	if !it.ReturnTime.IsZero() {
		t.Fatalf("expected no return time without includeReturn")
	}
}

func TestCalculateOptimizedRouteIncludeReturn(t *testing.T) {
	b := NewBuilder(&stubProvider{})

	it, err := b.CalculateOptimizedRoute(context.Background(), Point{Lat: 18, Lng: -76.8}, testWaypoints(), Options{
		OptimizeRoute: true,
		IncludeReturn: true,
		DepartureTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if len(it.Points) != 5 {
		t.Fatalf("expected origin + 3 stops + return, got %d points", len(it.Points))
	}
	last := it.Points[len(it.Points)-1]
	if last.WaypointID != EndPointID || last.Lat != 18 || last.Lng != -76.8 {
		t.Fatalf("expected final point to be the origin again")
	}
	if it.Summary.WaypointCount != 3 {
		t.Fatalf("return stop must not count as a waypoint, got %d", it.Summary.WaypointCount)
	}
	if it.ReturnTime.IsZero() || !it.ReturnTime.Equal(last.EstimatedDeparture) {
		t.Fatalf("expected return time set to final departure")
	}
}

func TestCalculateOptimizedRouteDeterministic(t *testing.T) {
	opts := Options{
		OptimizeRoute: true,
		IncludeReturn: true,
		DepartureTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	}
	origin := Point{Lat: 18, Lng: -76.8}

	a, err := NewBuilder(&stubProvider{}).CalculateOptimizedRoute(context.Background(), origin, testWaypoints(), opts)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}
	b, err := NewBuilder(&stubProvider{}).CalculateOptimizedRoute(context.Background(), origin, testWaypoints(), opts)
	if err != nil {
		t.Fatalf("calculate: %v", err)
	}

	if len(a.Points) != len(b.Points) || a.Summary != b.Summary {
		t.Fatalf("expected identical results")
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs", i)
		}
	}
}

func TestCalculateOptimizedRouteAtomicOnProviderFailure(t *testing.T) {
	provider := &stubProvider{failAfter: 1, err: errors.New("upstream down")}
	b := NewBuilder(provider)

	it, err := b.CalculateOptimizedRoute(context.Background(), Point{Lat: 18, Lng: -76.8}, testWaypoints(), Options{
		OptimizeRoute: true,
		DepartureTime: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrRouteCalculation) {
		t.Fatalf("expected ErrRouteCalculation, got %v", err)
	}
	if len(it.Points) != 0 || len(it.Segments) != 0 {
		t.Fatalf("expected no partial itinerary")
	}
}

func TestCalculateOptimizedRouteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(&stubProvider{})
	it, err := b.CalculateOptimizedRoute(ctx, Point{Lat: 18, Lng: -76.8}, testWaypoints(), Options{OptimizeRoute: true})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(it.Points) != 0 {
		t.Fatalf("expected no result after cancel")
	}
}
