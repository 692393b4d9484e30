package navigation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"backend-routenav/internal/route"

	"github.com/google/uuid"
)

// ErrSessionNotFound reports an id with no live session behind it.
var ErrSessionNotFound = errors.New("session not found")

// Broadcaster fans a guidance payload out to everyone watching a session.
// *stream.Hub satisfies it.
type Broadcaster interface {
	Broadcast(sessionID string, payload []byte)
}

// Command actions accepted by Apply.
const (
	ActionStart           = "start"
	ActionPause           = "pause"
	ActionResume          = "resume"
	ActionReset           = "reset"
	ActionMarkVisited     = "markVisited"
	ActionUnmarkVisited   = "unmarkVisited"
	ActionSetCurrentIndex = "setCurrentIndex"
)

type liveSession struct {
	id      string
	session *Session
	updates chan Position
	cancel  context.CancelFunc

	// Serializes runner updates against commands and snapshots. The session
	// itself never sees concurrent calls.
	mu sync.Mutex
}

// Manager owns all live navigation sessions, one runner goroutine per
// session draining its position channel in arrival order.
type Manager struct {
	broadcaster Broadcaster

	rootCtx    context.Context
	rootCancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*liveSession
	wg       sync.WaitGroup
}

func NewManager(b Broadcaster) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		broadcaster: b,
		rootCtx:     ctx,
		rootCancel:  cancel,
		sessions:    map[string]*liveSession{},
	}
}

// Create registers a new session for an itinerary and starts its runner.
// The session stays in the not-started state until a start command arrives.
func (m *Manager) Create(it route.Itinerary, opts route.Options) (string, error) {
	if len(it.Points) == 0 {
		return "", fmt.Errorf("%w: empty itinerary", route.ErrInvalidInput)
	}

	ls := &liveSession{
		id:      uuid.NewString(),
		session: NewSession(it, opts),
		updates: make(chan Position, 64),
	}

	runCtx, cancel := context.WithCancel(m.rootCtx)
	ls.cancel = cancel

	m.mu.Lock()
	m.sessions[ls.id] = ls
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.run(runCtx, ls)
	}()

	return ls.id, nil
}

func (m *Manager) run(ctx context.Context, ls *liveSession) {
	for {
		select {
		case <-ctx.Done():
			return
		case pos := <-ls.updates:
			ls.mu.Lock()
			changed := ls.session.UpdatePosition(pos)
			var snap Snapshot
			if changed {
				snap = ls.session.Snapshot()
			}
			ls.mu.Unlock()
			if changed {
				m.publish(ls.id, snap)
			}
		}
	}
}

func (m *Manager) publish(id string, snap Snapshot) {
	if m.broadcaster == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		log.Printf("session %s: marshal snapshot: %v", id, err)
		return
	}
	m.broadcaster.Broadcast(id, payload)
}

func (m *Manager) get(id string) (*liveSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ls, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return ls, nil
}

// Submit queues one position fix. The queue is bounded; when the runner is
// that far behind the stalest queued fix is discarded so guidance converges
// on the freshest position.
func (m *Manager) Submit(id string, pos Position) error {
	ls, err := m.get(id)
	if err != nil {
		return err
	}
	select {
	case ls.updates <- pos:
		return nil
	default:
	}
	select {
	case <-ls.updates:
	default:
	}
	select {
	case ls.updates <- pos:
	default:
	}
	return nil
}

// Apply executes a manual session action. Index is only meaningful for the
// mark/unmark/setCurrentIndex actions.
func (m *Manager) Apply(id, action string, index int) (Snapshot, error) {
	ls, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	switch action {
	case ActionStart:
		err = ls.session.Start()
	case ActionPause:
		err = ls.session.Pause()
	case ActionResume:
		err = ls.session.Resume()
	case ActionReset:
		ls.session.Reset()
	case ActionMarkVisited:
		err = ls.session.MarkVisited(index)
	case ActionUnmarkVisited:
		err = ls.session.UnmarkVisited(index)
	case ActionSetCurrentIndex:
		err = ls.session.SetCurrentIndex(index)
	default:
		err = fmt.Errorf("%w: unknown action %q", route.ErrInvalidInput, action)
	}
	if err != nil {
		return Snapshot{}, err
	}

	snap := ls.session.Snapshot()
	m.publish(ls.id, snap)
	return snap, nil
}

func (m *Manager) Snapshot(id string) (Snapshot, error) {
	ls, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Snapshot(), nil
}

func (m *Manager) Itinerary(id string) (route.Itinerary, error) {
	ls, err := m.get(id)
	if err != nil {
		return route.Itinerary{}, err
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.session.Itinerary(), nil
}

// Close discards one session and stops its runner.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	ls, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	ls.cancel()
	return nil
}

// Shutdown stops every runner and waits for them to exit.
func (m *Manager) Shutdown() {
	m.rootCancel()
	m.mu.Lock()
	for id := range m.sessions {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	m.wg.Wait()
}
