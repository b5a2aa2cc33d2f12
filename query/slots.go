package query

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

var ErrSuperseded = errors.New("query superseded by a newer one")

type slotQuery struct {
	cancel context.CancelCauseFunc
}

// ResolveInSlot is ResolveAndFormat with last-query-wins semantics: a new
// query in the same slot cancels the one still in flight, which then
// returns ErrSuperseded. An empty slot disables this.
func (o *Orchestrator) ResolveInSlot(ctx context.Context, slot string, source Source) (ResolvedTime, error) {
	if slot == "" {
		return o.ResolveAndFormat(ctx, source)
	}

	ctx, cancel := context.WithCancelCause(ctx)
	current := &slotQuery{cancel: cancel}
	if previous, loaded := o.slots.LoadAndStore(slot, current); loaded {
		log.Debugf("Query: slot '%s' superseded", slot)
		previous.cancel(ErrSuperseded)
	}
	defer func() {
		o.slots.Compute(slot, func(stored *slotQuery, loaded bool) (*slotQuery, bool) {
			// only remove the slot if nothing newer took it
			return stored, !loaded || stored == current
		})
		cancel(nil)
	}()

	result, err := o.resolveAndFormat(ctx, source)
	if errors.Is(context.Cause(ctx), ErrSuperseded) {
		result, err = ResolvedTime{}, ErrSuperseded
	}
	o.stats.IncQueries(source.String(), Classify(err))
	return result, err
}

// InFlight returns the number of slots with a query running.
func (o *Orchestrator) InFlight() int {
	return o.slots.Size()
}
