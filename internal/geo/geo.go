package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusM is the mean Earth radius in meters.
const EarthRadiusM = 6371000.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Validate checks that lat is within [-90,90] and lng within [-180,180].
func Validate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return ErrInvalidCoordinate
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := Validate(lat1, lng1); err != nil {
		return 0, err
	}
	if err := Validate(lat2, lng2); err != nil {
		return 0, err
	}
	p1 := s2.LatLngFromDegrees(lat1, lng1)
	p2 := s2.LatLngFromDegrees(lat2, lng2)
	return p1.Distance(p2).Radians() * EarthRadiusM, nil
}

// Bearing returns the initial bearing (forward azimuth) from point 1 to
// point 2 in degrees, normalized to [0,360).
func Bearing(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := Validate(lat1, lng1); err != nil {
		return 0, err
	}
	if err := Validate(lat2, lng2); err != nil {
		return 0, err
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lngDiff := (lng2 - lng1) * math.Pi / 180

	y := math.Sin(lngDiff) * math.Cos(lat2Rad)
	x := math.Cos(lat1Rad)*math.Sin(lat2Rad) - math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(lngDiff)
	bearing := math.Atan2(y, x) * 180 / math.Pi

	return math.Mod(bearing+360, 360), nil
}
