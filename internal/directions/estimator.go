package directions

import (
	"context"
	"math"

	"backend-routenav/internal/geo"
	"backend-routenav/internal/route"
)

// Cruising speeds in m/s per transport mode.
const (
	carSpeedMps        = 13.9
	pedestrianSpeedMps = 1.4
	bicycleSpeedMps    = 4.2
	transitSpeedMps    = 8.3
)

// roadFactor inflates great-circle distance to approximate road distance.
const roadFactor = 1.3

// SpeedMps returns the cruising speed for a transport mode. Used both by the
// estimator and as the navigation ETA fallback model.
func SpeedMps(mode route.TransportMode) float64 {
	switch mode {
	case route.ModePedestrian:
		return pedestrianSpeedMps
	case route.ModeBicycle:
		return bicycleSpeedMps
	case route.ModePublicTransport:
		return transitSpeedMps
	default:
		return carSpeedMps
	}
}

// Estimator is a deterministic haversine-based directions provider. It serves
// as the offline fallback and as the provider stub in tests.
type Estimator struct{}

func NewEstimator() Estimator {
	return Estimator{}
}

func (Estimator) GetLeg(_ context.Context, from, to route.Point, opts route.LegOptions) (route.Leg, error) {
	d, err := geo.Haversine(from.Lat, from.Lng, to.Lat, to.Lng)
	if err != nil {
		return route.Leg{}, err
	}

	roadDist := d * roadFactor
	speed := SpeedMps(opts.TransportMode)
	if opts.AvoidHighways && opts.TransportMode == route.ModeCar {
		speed *= 0.8
	}

	duration := roadDist / speed
	if opts.ConsiderTraffic && (opts.TransportMode == route.ModeCar || opts.TransportMode == route.ModePublicTransport) {
		duration *= 1.25
	}

	return route.Leg{
		DistanceMeters:  roadDist,
		DurationSeconds: int(math.Round(duration)),
	}, nil
}
