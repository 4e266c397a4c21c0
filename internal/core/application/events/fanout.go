// Package events combines domain event publishers.
package events

import (
	"context"
	"errors"

	"fueldelivery/internal/core/domain/model/kernel"
	"fueldelivery/internal/core/ports"
)

// FanOut hands every batch to all publishers in order. A failing publisher
// does not stop the ones after it; their errors are joined.
type FanOut struct {
	publishers []ports.DomainEventPublisher
}

var _ ports.DomainEventPublisher = (*FanOut)(nil)

// NewFanOut skips nil publishers so optional sinks can be passed unconditionally.
func NewFanOut(publishers ...ports.DomainEventPublisher) *FanOut {
	f := &FanOut{}
	for _, p := range publishers {
		if p != nil {
			f.publishers = append(f.publishers, p)
		}
	}
	return f
}

func (f *FanOut) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	var errList []error
	for _, p := range f.publishers {
		if err := p.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
