// Package format holds presentation helpers for distance, duration and time
// values. Callers are free to ignore them; nothing in the planning or
// navigation pipeline depends on these.
package format

import (
	"fmt"
	"math"
	"time"
)

func Distance(meters float64) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	minutes := (seconds + 30) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d h %d min", minutes/60, minutes%60)
}

func Time(t time.Time) string {
	return t.Format("15:04")
}
