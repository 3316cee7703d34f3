package rose

import (
	"fmt"

	"github.com/turtacn/GeoRose/pkg/errors"
)

// Validate checks sample counts and returns every problem found, in a fixed
// order.  The minimum-count rule for a sequence is only reported when that
// sequence is non-empty, and the length mismatch is always checked.
func Validate(strikes, dips []float64) []string {
	msgs := ValidateSeries("strike", strikes)
	msgs = append(msgs, ValidateSeries("dip", dips)...)

	if len(strikes) != len(dips) {
		msgs = append(msgs, fmt.Sprintf("strike count (%d) and dip count (%d) must match", len(strikes), len(dips)))
	}
	return msgs
}

// ValidateSeries applies the emptiness and minimum-count rules to one
// sequence.  name is "strike" or "dip".
func ValidateSeries(name string, values []float64) []string {
	switch {
	case len(values) == 0:
		return []string{name + " data must not be empty"}
	case len(values) < MinSamples:
		return []string{fmt.Sprintf("%s data requires at least %d values, got %d", name, MinSamples, len(values))}
	}
	return nil
}

// ValidateRequest runs Validate on r and wraps any messages in a single
// validation error.
func ValidateRequest(r *Request) error {
	if msgs := Validate(r.Strikes, r.Dips); len(msgs) > 0 {
		return errors.NewValidationError(msgs)
	}
	return nil
}

//Personal.AI order the ending
