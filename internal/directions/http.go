package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"backend-routenav/internal/route"
)

// HTTPProvider queries an external directions service for leg estimates.
// The request carries both endpoints, the transport mode and the avoidance
// flags; the response is `{distance_meters, duration_seconds, polyline?}`.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type legResponse struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds int     `json:"duration_seconds"`
	Polyline        string  `json:"polyline"`
}

func (p *HTTPProvider) GetLeg(ctx context.Context, from, to route.Point, opts route.LegOptions) (route.Leg, error) {
	q := url.Values{}
	q.Set("from_lat", strconv.FormatFloat(from.Lat, 'f', -1, 64))
	q.Set("from_lng", strconv.FormatFloat(from.Lng, 'f', -1, 64))
	q.Set("to_lat", strconv.FormatFloat(to.Lat, 'f', -1, 64))
	q.Set("to_lng", strconv.FormatFloat(to.Lng, 'f', -1, 64))
	q.Set("mode", string(opts.TransportMode))
	if opts.AvoidHighways {
		q.Set("avoid_highways", "true")
	}
	if opts.AvoidTolls {
		q.Set("avoid_tolls", "true")
	}
	if opts.AvoidFerries {
		q.Set("avoid_ferries", "true")
	}
	if opts.ConsiderTraffic {
		q.Set("traffic", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/leg?"+q.Encode(), nil)
	if err != nil {
		return route.Leg{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return route.Leg{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return route.Leg{}, fmt.Errorf("directions service status %d", resp.StatusCode)
	}

	var body legResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return route.Leg{}, err
	}
	if body.DistanceMeters < 0 || body.DurationSeconds < 0 {
		return route.Leg{}, fmt.Errorf("directions service returned negative leg")
	}

	return route.Leg{
		DistanceMeters:  body.DistanceMeters,
		DurationSeconds: body.DurationSeconds,
		Polyline:        body.Polyline,
	}, nil
}
