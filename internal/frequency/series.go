// Package frequency defines the validated frequency series that every
// synthesis job is built from, and computes descriptive statistics over it.
package frequency

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyInput is returned when a submission contains no values at all.
var ErrEmptyInput = errors.New("frequency: no values supplied")

// InvalidReason classifies why a single entry was rejected.
type InvalidReason string

const (
	ReasonNotFinite   InvalidReason = "not_finite"
	ReasonNotPositive InvalidReason = "not_positive"
)

// InvalidEntry identifies one rejected value and its position in the input.
type InvalidEntry struct {
	Position int           `json:"position"`
	Value    float64       `json:"value"`
	Reason   InvalidReason `json:"reason"`
}

// ValidationError reports every invalid entry in a submission.
type ValidationError struct {
	Entries []InvalidEntry
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "frequency: %d invalid value(s):", len(e.Entries))
	for i, entry := range e.Entries {
		if i == 3 {
			fmt.Fprintf(&sb, " and %d more", len(e.Entries)-i)
			break
		}
		fmt.Fprintf(&sb, " [%d]=%v (%s)", entry.Position, entry.Value, entry.Reason)
	}
	return sb.String()
}

// Series is a validated, non-empty sequence of positive finite frequencies.
// The zero value is not valid; construct with NewSeries.
type Series struct {
	values []float64
}

// NewSeries validates raw values and returns a Series. Empty input fails with
// ErrEmptyInput; any non-finite or non-positive entry fails with a
// *ValidationError listing every offending position. The input slice is
// copied so later mutation by the caller cannot reach the series.
func NewSeries(values []float64) (Series, error) {
	if len(values) == 0 {
		return Series{}, ErrEmptyInput
	}

	var invalid []InvalidEntry
	for i, v := range values {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			invalid = append(invalid, InvalidEntry{Position: i, Value: v, Reason: ReasonNotFinite})
		case v <= 0:
			invalid = append(invalid, InvalidEntry{Position: i, Value: v, Reason: ReasonNotPositive})
		}
	}
	if len(invalid) > 0 {
		return Series{}, &ValidationError{Entries: invalid}
	}

	copied := make([]float64, len(values))
	copy(copied, values)
	return Series{values: copied}, nil
}

// Values returns the underlying values. Callers must treat the slice as
// read-only; it is shared across the synthesizer and statistics engine.
func (s Series) Values() []float64 {
	return s.values
}

// Len returns the number of frequencies in the series.
func (s Series) Len() int {
	return len(s.values)
}
