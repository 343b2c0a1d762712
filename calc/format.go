package calc

import (
	"errors"
	"math"
	"strconv"
)

// ErrorMarker is the display text shown when M+ cannot read the display
const ErrorMarker = "Error"

// FormatNumber renders v the way the display shows numbers: shortest
// round-trip digits, fixed notation for magnitudes in [1e-6, 1e21) and
// exponent notation outside it. Integral values carry no fraction.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}

	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseNumber reads display text as a float. Digit strings too large for
// float64 yield the infinity they overflow to.
func ParseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err == nil {
		return v, true
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		return v, true
	}
	return 0, false
}

// parseOrZero is the silent-default parse shared by every operation except M+
func parseOrZero(s string) float64 {
	v, ok := ParseNumber(s)
	if !ok {
		return 0
	}
	return v
}
