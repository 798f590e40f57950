package analysis

import "errors"

var (
	// ErrInvalidInput is returned for empty or too-short text. No scoring is
	// performed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSentimentUnavailable is returned when the polarity call fails or
	// times out.
	ErrSentimentUnavailable = errors.New("sentiment service unavailable")

	// ErrClassifierUnavailable never leaves this package; the emotion adapter
	// recovers from it with the neutral profile.
	ErrClassifierUnavailable = errors.New("emotion classifier unavailable")
)

// PublicMessage is the error text safe to hand back to a caller. Only input
// validation errors carry their detail; everything else is generic.
func PublicMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return err.Error()
	case errors.Is(err, ErrSentimentUnavailable):
		return "analysis is temporarily unavailable, please try again later"
	default:
		return "internal error"
	}
}
