package route

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrRouteCalculation    = errors.New("route calculation failed")
	ErrLocationUnavailable = errors.New("location unavailable")
)
