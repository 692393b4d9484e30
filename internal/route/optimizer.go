package route

import (
	"fmt"

	"backend-routenav/internal/geo"
)

// Above this many waypoints the local-improvement pass is skipped and the
// nearest-neighbor order is returned as-is. Tunable, not load-bearing.
const twoOptMaxWaypoints = 12

// OptimizeVisitOrder returns the order in which to visit waypoints starting
// from origin. With OptimizeRoute unset the input order is preserved.
func OptimizeVisitOrder(origin Point, waypoints []Waypoint, opts Options) ([]Waypoint, error) {
	if len(waypoints) == 0 {
		return nil, fmt.Errorf("%w: no waypoints", ErrInvalidInput)
	}
	if err := geo.Validate(origin.Lat, origin.Lng); err != nil {
		return nil, err
	}
	for _, wp := range waypoints {
		if err := geo.Validate(wp.Lat, wp.Lng); err != nil {
			return nil, fmt.Errorf("waypoint %s: %w", wp.ID, err)
		}
	}

	ordered := make([]Waypoint, len(waypoints))
	copy(ordered, waypoints)
	if !opts.OptimizeRoute || len(waypoints) == 1 {
		return ordered, nil
	}

	ordered = nearestNeighbor(origin, ordered)
	if len(ordered) <= twoOptMaxWaypoints {
		ordered = improveAdjacent(origin, ordered)
	}
	return ordered, nil
}

// nearestNeighbor repeatedly picks the closest unvisited waypoint to the
// current position. Ties go to the lowest input index so the result is
// deterministic.
func nearestNeighbor(origin Point, wps []Waypoint) []Waypoint {
	ordered := make([]Waypoint, 0, len(wps))
	visited := make([]bool, len(wps))
	current := origin

	for len(ordered) < len(wps) {
		best := -1
		bestDist := 0.0
		for i, wp := range wps {
			if visited[i] {
				continue
			}
			d := distance(current, wp.Point())
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}
		visited[best] = true
		ordered = append(ordered, wps[best])
		current = wps[best].Point()
	}
	return ordered
}

// improveAdjacent is a bounded 2-opt pass over adjacent pairs: swap two
// neighboring stops whenever that shortens the open path. At most one full
// sweep per waypoint keeps the worst case quadratic.
func improveAdjacent(origin Point, wps []Waypoint) []Waypoint {
	improved := true
	for pass := 0; improved && pass < len(wps); pass++ {
		improved = false
		for i := 0; i+1 < len(wps); i++ {
			prev := origin
			if i > 0 {
				prev = wps[i-1].Point()
			}
			a, b := wps[i].Point(), wps[i+1].Point()

			var tailKeep, tailSwap float64
			if i+2 < len(wps) {
				next := wps[i+2].Point()
				tailKeep = distance(b, next)
				tailSwap = distance(a, next)
			}

			keep := distance(prev, a) + distance(a, b) + tailKeep
			swap := distance(prev, b) + distance(b, a) + tailSwap
			if swap+1e-9 < keep {
				wps[i], wps[i+1] = wps[i+1], wps[i]
				improved = true
			}
		}
	}
	return wps
}

// distance assumes both points were validated by the caller.
func distance(a, b Point) float64 {
	d, _ := geo.Haversine(a.Lat, a.Lng, b.Lat, b.Lng)
	return d
}
