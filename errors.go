package hlsign

import (
	"errors"
	"fmt"
)

// Every failure below signals malformed input or a caller bug, never a
// transient condition, so none of them is retried internally. Callers match
// with errors.Is.
var (
	// ErrPrecisionLoss means a magnitude cannot be rendered at the wire's
	// fixed precision without changing its value beyond tolerance.
	ErrPrecisionLoss = errors.New("hlsign: value not representable at wire precision")

	// ErrInvalidOrderType means an order carried neither a limit nor a
	// trigger variant.
	ErrInvalidOrderType = errors.New("hlsign: order type must be limit or trigger")

	// ErrMalformedAddress means a routing (vault) address is not 20 bytes
	// of hex.
	ErrMalformedAddress = errors.New("hlsign: malformed address")

	// ErrInvalidCloid means a client order id is not 0x followed by 32 hex
	// characters.
	ErrInvalidCloid = errors.New("hlsign: malformed cloid")

	// ErrInvalidSignature means the signing backend returned a signature of
	// the wrong length or with an unrecognized recovery id.
	ErrInvalidSignature = errors.New("hlsign: invalid signature")
)

// APIError is an error payload returned by the exchange on a non-2xx
// response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
}
