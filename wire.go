package hlsign

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// floatToWire converts a float64 to the canonical wire string the exchange
// hashes and parses: at most 8 decimal places, no trailing zeros, no
// exponent notation, -0 normalized to 0. The exact string becomes part of
// the signed bytes, so any drift here invalidates the signature.
func floatToWire(x float64) (string, error) {
	rounded := fmt.Sprintf("%.8f", x)

	parsed, err := cast.ToFloat64E(rounded)
	if err != nil {
		return "", err
	}

	// The 1e-12 tolerance is part of the protocol; the verifier is
	// calibrated against it.
	if math.Abs(parsed-x) >= 1e-12 {
		return "", fmt.Errorf("%w: %v", ErrPrecisionLoss, x)
	}

	if rounded == "-0.00000000" {
		rounded = "0.00000000"
	}

	result := strings.TrimRight(rounded, "0")
	result = strings.TrimRight(result, ".")

	return result, nil
}

// floatToInt scales x by 10^power and rounds to the nearest integer,
// rejecting inputs that round by 1e-3 or more.
func floatToInt(x float64, power int) (int64, error) {
	withDecimals := x * math.Pow(10, float64(power))

	// NaN slips past the tolerance check (every comparison is false) and
	// anything outside the int64 range would clamp in the conversion, so
	// both must fail loudly here.
	if math.IsNaN(withDecimals) || withDecimals >= math.MaxInt64 || withDecimals < math.MinInt64 {
		return 0, fmt.Errorf("%w: %v", ErrPrecisionLoss, x)
	}

	rounded := math.Round(withDecimals)

	if math.Abs(rounded-withDecimals) >= 1e-3 {
		return 0, fmt.Errorf("%w: %v", ErrPrecisionLoss, x)
	}

	return int64(rounded), nil
}

// FloatToIntForHashing converts a float to the 8-decimal scaled integer
// form used inside hashed action payloads.
func FloatToIntForHashing(x float64) (int64, error) {
	return floatToInt(x, 8)
}

// FloatToUsdInt converts a USD amount to its 6-decimal scaled integer form.
func FloatToUsdInt(x float64) (int64, error) {
	return floatToInt(x, 6)
}
