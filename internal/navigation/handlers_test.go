package navigation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-routenav/internal/directions"
	"backend-routenav/internal/planner"
	"backend-routenav/internal/route"

	"github.com/gofiber/fiber/v2"
)

type stubDirectory struct {
	waypoints map[string]route.Waypoint
}

func (d *stubDirectory) Waypoints(_ context.Context, ids []string) ([]route.Waypoint, error) {
	wps := make([]route.Waypoint, 0, len(ids))
	for _, id := range ids {
		wp, ok := d.waypoints[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown station %s", route.ErrInvalidInput, id)
		}
		wps = append(wps, wp)
	}
	return wps, nil
}

func testApp(t *testing.T) (*fiber.App, *Manager) {
	t.Helper()
	directory := &stubDirectory{waypoints: map[string]route.Waypoint{
		"st-1": {ID: "st-1", Lat: 18.01, Lng: -76.8, Name: "Station 1"},
		"st-2": {ID: "st-2", Lat: 18.02, Lng: -76.8, Name: "Station 2"},
	}}
	plan := planner.NewService(directory, route.NewBuilder(directions.NewEstimator()), 0)
	mgr := NewManager(nil)
	t.Cleanup(mgr.Shutdown)

	app := fiber.New()
	RegisterRoutes(app.Group("/navigation"), plan, mgr)
	return app, mgr
}

func createSession(t *testing.T, app *fiber.App) createSessionResponse {
	t.Helper()
	body, _ := json.Marshal(planner.PlanRequest{
		Origin:     route.Point{Lat: 18.0, Lng: -76.8},
		StationIDs: []string{"st-1", "st-2"},
		Options:    route.Options{OptimizeRoute: true},
	})
	req := httptest.NewRequest(http.MethodPost, "/navigation/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return created
}

func TestSessionHandlersCreateAndSnapshot(t *testing.T) {
	app, _ := testApp(t)
	created := createSession(t, app)

	if created.SessionID == "" {
		t.Fatalf("expected session id")
	}
	if len(created.Itinerary.Points) != 3 {
		t.Fatalf("expected 3 itinerary points, got %d", len(created.Itinerary.Points))
	}
	if created.Snapshot.State != StateNotStarted {
		t.Fatalf("expected new session not started")
	}

	req := httptest.NewRequest(http.MethodGet, "/navigation/sessions/"+created.SessionID, nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot status: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/navigation/sessions/"+created.SessionID+"/itinerary", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("itinerary status: %v %d", err, resp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodGet, "/navigation/sessions/unknown", nil)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", resp.StatusCode)
	}
}

func TestSessionHandlersUnknownStation(t *testing.T) {
	app, _ := testApp(t)

	body, _ := json.Marshal(planner.PlanRequest{
		Origin:     route.Point{Lat: 18.0, Lng: -76.8},
		StationIDs: []string{"nope"},
	})
	req := httptest.NewRequest(http.MethodPost, "/navigation/sessions", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestSessionHandlersUnknownSessionCommand(t *testing.T) {
	app, _ := testApp(t)

	body, _ := json.Marshal(commandRequest{Action: ActionStart})
	req := httptest.NewRequest(http.MethodPost, "/navigation/sessions/unknown/commands", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	// Same status as GET on an unknown session.
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", resp.StatusCode)
	}
}

func TestSessionHandlersCommandsAndPosition(t *testing.T) {
	app, _ := testApp(t)
	created := createSession(t, app)
	base := "/navigation/sessions/" + created.SessionID

	command := func(action string, index int) (*http.Response, Snapshot) {
		body, _ := json.Marshal(commandRequest{Action: action, Index: index})
		req := httptest.NewRequest(http.MethodPost, base+"/commands", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("command %s: %v", action, err)
		}
		var snap Snapshot
		if resp.StatusCode == http.StatusOK {
			_ = json.NewDecoder(resp.Body).Decode(&snap)
		}
		return resp, snap
	}

	resp, snap := command(ActionStart, 0)
	if resp.StatusCode != http.StatusOK || snap.State != StateActive {
		t.Fatalf("start failed: %d %+v", resp.StatusCode, snap)
	}

	resp, _ = command(ActionSetCurrentIndex, 999)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad index, got %d", resp.StatusCode)
	}

	body, _ := json.Marshal(fix(18.0, -76.8))
	req := httptest.NewRequest(http.MethodPost, base+"/position", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	posResp, err := app.Test(req)
	if err != nil || posResp.StatusCode != http.StatusAccepted {
		t.Fatalf("position status: %v %d", err, posResp.StatusCode)
	}

	req = httptest.NewRequest(http.MethodDelete, base, nil)
	delResp, err := app.Test(req)
	if err != nil || delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v %d", err, delResp.StatusCode)
	}
}
