package navigation

import (
	"fmt"
	"sort"
	"time"

	"backend-routenav/internal/directions"
	"backend-routenav/internal/geo"
	"backend-routenav/internal/route"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateActive     State = "active"
	StatePaused     State = "paused"
	StateCompleted  State = "completed"
)

// Position is one device location fix.
type Position struct {
	Lat            float64   `json:"lat"`
	Lng            float64   `json:"lng"`
	AccuracyMeters float64   `json:"accuracy_meters,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session tracks one observer against one itinerary. It is not safe for
// concurrent use; the Manager serializes all calls on a live session.
type Session struct {
	itinerary route.Itinerary

	state        State
	currentIndex int
	visited      map[int]struct{}

	lastPosition   Position
	hasPosition    bool
	distanceToNext float64
	etaToNext      int
	bearingToNext  float64

	proximityMeters float64
	speedMps        float64
}

func NewSession(it route.Itinerary, opts route.Options) *Session {
	opts = opts.Normalize()
	return &Session{
		itinerary:       it,
		state:           StateNotStarted,
		visited:         map[int]struct{}{},
		proximityMeters: opts.ProximityThresholdMeters,
		speedMps:        directions.SpeedMps(opts.TransportMode),
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) CurrentIndex() int {
	return s.currentIndex
}

func (s *Session) Itinerary() route.Itinerary {
	return s.itinerary
}

// Start activates the session. The first target is the first point the
// observer navigates toward, so the origin point itself is skipped.
func (s *Session) Start() error {
	if s.state != StateNotStarted {
		return fmt.Errorf("%w: session already started", route.ErrInvalidInput)
	}
	if len(s.itinerary.Points) == 0 {
		return fmt.Errorf("%w: empty itinerary", route.ErrInvalidInput)
	}
	s.currentIndex = 0
	if s.itinerary.Points[0].WaypointID == route.StartPointID && len(s.itinerary.Points) > 1 {
		s.currentIndex = 1
	}
	s.visited = map[int]struct{}{}
	s.state = StateActive
	return nil
}

// UpdatePosition processes one location fix. Outside the active state, or on
// an invalid coordinate, it is a deliberate no-op: guidance stays at its last
// known values rather than failing. It reports whether guidance changed.
func (s *Session) UpdatePosition(pos Position) bool {
	if s.state != StateActive {
		return false
	}
	if geo.Validate(pos.Lat, pos.Lng) != nil {
		return false
	}

	s.lastPosition = pos
	s.hasPosition = true

	target := s.itinerary.Points[s.currentIndex]
	d, _ := geo.Haversine(pos.Lat, pos.Lng, target.Lat, target.Lng)
	s.distanceToNext = d
	s.etaToNext = int(d / s.speedMps)
	if b, err := geo.Bearing(pos.Lat, pos.Lng, target.Lat, target.Lng); err == nil {
		s.bearingToNext = b
	}

	if d < s.proximityMeters {
		if _, ok := s.visited[s.currentIndex]; !ok {
			_ = s.MarkVisited(s.currentIndex)
		}
	}
	return true
}

// MarkVisited is idempotent. Marking the current target advances to the next
// point, or completes the session when it was the last one.
func (s *Session) MarkVisited(index int) error {
	if index < 0 || index >= len(s.itinerary.Points) {
		return fmt.Errorf("%w: index %d out of range", route.ErrInvalidInput, index)
	}
	if _, ok := s.visited[index]; ok {
		return nil
	}
	s.visited[index] = struct{}{}

	if index != s.currentIndex {
		return nil
	}
	if s.currentIndex+1 < len(s.itinerary.Points) {
		s.currentIndex++
		return nil
	}
	s.state = StateCompleted
	return nil
}

// UnmarkVisited removes a visit mark without moving the current target.
func (s *Session) UnmarkVisited(index int) error {
	if index < 0 || index >= len(s.itinerary.Points) {
		return fmt.Errorf("%w: index %d out of range", route.ErrInvalidInput, index)
	}
	delete(s.visited, index)
	return nil
}

// SetCurrentIndex skips ahead or back. The visited set is untouched.
func (s *Session) SetCurrentIndex(index int) error {
	if index < 0 || index >= len(s.itinerary.Points) {
		return fmt.Errorf("%w: index %d out of range", route.ErrInvalidInput, index)
	}
	s.currentIndex = index
	return nil
}

func (s *Session) Pause() error {
	if s.state != StateActive {
		return fmt.Errorf("%w: cannot pause in state %s", route.ErrInvalidInput, s.state)
	}
	s.state = StatePaused
	return nil
}

func (s *Session) Resume() error {
	if s.state != StatePaused {
		return fmt.Errorf("%w: cannot resume in state %s", route.ErrInvalidInput, s.state)
	}
	s.state = StateActive
	return nil
}

func (s *Session) Reset() {
	s.visited = map[int]struct{}{}
	s.currentIndex = 0
	s.state = StateNotStarted
	s.hasPosition = false
	s.distanceToNext = 0
	s.etaToNext = 0
	s.bearingToNext = 0
}

// Guidance is the live view toward the current target.
type Guidance struct {
	DistanceToNextMeters float64 `json:"distance_to_next_meters"`
	EtaToNextSeconds     int     `json:"eta_to_next_seconds"`
	BearingDegrees       float64 `json:"bearing_degrees"`
}

// CurrentGuidance fails with ErrLocationUnavailable until a position fix has
// been processed.
func (s *Session) CurrentGuidance() (Guidance, error) {
	if !s.hasPosition {
		return Guidance{}, route.ErrLocationUnavailable
	}
	return Guidance{
		DistanceToNextMeters: s.distanceToNext,
		EtaToNextSeconds:     s.etaToNext,
		BearingDegrees:       s.bearingToNext,
	}, nil
}

// Snapshot is the serializable progress view of a session.
type Snapshot struct {
	State                State                 `json:"state"`
	CurrentIndex         int                   `json:"current_index"`
	CurrentPoint         *route.ItineraryPoint `json:"current_point,omitempty"`
	DistanceToNextMeters float64               `json:"distance_to_next_meters"`
	EtaToNextSeconds     int                   `json:"eta_to_next_seconds"`
	BearingDegrees       float64               `json:"bearing_degrees"`
	HasPosition          bool                  `json:"has_position"`
	LastKnownPosition    Position              `json:"last_known_position,omitempty"`
	VisitedIndices       []int                 `json:"visited_indices"`
	PendingCount         int                   `json:"pending_count"`
}

func (s *Session) Snapshot() Snapshot {
	visited := make([]int, 0, len(s.visited))
	for i := range s.visited {
		visited = append(visited, i)
	}
	sort.Ints(visited)

	snap := Snapshot{
		State:                s.state,
		CurrentIndex:         s.currentIndex,
		DistanceToNextMeters: s.distanceToNext,
		EtaToNextSeconds:     s.etaToNext,
		BearingDegrees:       s.bearingToNext,
		HasPosition:          s.hasPosition,
		LastKnownPosition:    s.lastPosition,
		VisitedIndices:       visited,
		PendingCount:         len(s.itinerary.Points) - len(visited),
	}
	if s.currentIndex < len(s.itinerary.Points) {
		p := s.itinerary.Points[s.currentIndex]
		snap.CurrentPoint = &p
	}
	return snap
}
