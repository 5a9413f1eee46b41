package app

import (
	"math"
	"strconv"
)

// roundHalfUp rounds toward positive infinity on .5, matching the rendering
// of prices and totals in responses.
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// formatRating renders a rating rounded to the nearest tenth with exactly
// one decimal digit, e.g. 5.0, 4.7.
func formatRating(r float64) string {
	tenths := roundHalfUp(r * 10.0)
	frac := tenths % 10
	if frac < 0 {
		frac = -frac
	}
	return strconv.FormatInt(tenths/10, 10) + "." + strconv.FormatInt(frac, 10)
}

// formatPrice renders a price rounded to the nearest whole unit.
func formatPrice(p float64) string {
	return strconv.FormatInt(roundHalfUp(p), 10)
}
