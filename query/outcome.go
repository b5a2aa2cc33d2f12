package query

import (
	"errors"

	"worldclock/clock"
	"worldclock/place"
	"worldclock/zones"
)

const (
	OutcomeOk          = "ok"
	OutcomeValidation  = "validation"
	OutcomeNotFound    = "not_found"
	OutcomeUnknownZone = "unknown_zone"
	OutcomeSuperseded  = "superseded"
	OutcomeError       = "error"
)

// Classify maps an error from ResolveAndFormat or ResolveInSlot onto the
// caller-facing failure taxonomy.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOk
	case errors.Is(err, ErrSuperseded):
		return OutcomeSuperseded
	case errors.Is(err, place.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, place.ErrNotFound), errors.Is(err, zones.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, clock.ErrUnknownZone):
		return OutcomeUnknownZone
	default:
		return OutcomeError
	}
}
