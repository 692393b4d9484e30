package share

import (
	"fmt"
	"time"

	"backend-routenav/internal/route"
)

// EnvelopeVersion is the current share-payload schema version.
const EnvelopeVersion = 1

// Envelope is the stable serialized form of a shareable route: which
// stations to visit and how. It is what goes into share tokens, share codes
// and saved-route rows.
type Envelope struct {
	Version    int           `json:"v"`
	StationIDs []string      `json:"stationIds"`
	Options    route.Options `json:"options"`
}

func (e Envelope) Validate() error {
	if e.Version != EnvelopeVersion {
		return fmt.Errorf("%w: unsupported share version %d", route.ErrInvalidInput, e.Version)
	}
	if len(e.StationIDs) == 0 {
		return fmt.Errorf("%w: no station ids", route.ErrInvalidInput)
	}
	return nil
}

type SavedRoute struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	StationIDs []string      `json:"station_ids"`
	Options    route.Options `json:"options"`
	CreatedBy  string        `json:"created_by"`
	CreatedAt  time.Time     `json:"created_at"`
}

func (r SavedRoute) Envelope() Envelope {
	return Envelope{
		Version:    EnvelopeVersion,
		StationIDs: r.StationIDs,
		Options:    r.Options,
	}
}
