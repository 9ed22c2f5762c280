// Package util contains small shared helpers.
package util

import (
	"fmt"
	"math"
)

// placeholder shown when a trip summary value is absent.
const absentValue = "--"

// FormatTripDuration renders a trip duration for display, e.g. "10 min",
// "1 hr", "1 hr 30 min". Durations under half a minute still render as
// "1 min" so a computed route never shows a zero duration.
func FormatTripDuration(seconds *float64) string {
	if seconds == nil {
		return absentValue
	}

	minutes := int(math.Round(*seconds / 60))
	if minutes < 1 {
		minutes = 1
	}

	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}

	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%d hr", h)
	}

	return fmt.Sprintf("%d hr %d min", h, m)
}

// FormatTripDistance renders a trip distance in kilometers with exactly one
// decimal digit, rounding half away from zero (12345 m -> "12.3").
func FormatTripDistance(meters *float64) string {
	if meters == nil {
		return absentValue
	}

	km := *meters / 1000
	rounded := math.Round(km*10) / 10

	return fmt.Sprintf("%.1f", rounded)
}
