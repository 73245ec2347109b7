// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// EventConfig carries the creation parameters of an event flag group.
type EventConfig struct {
	// Order selects how blocked threads are woken.
	Order kernel.WakeOrder
}

// Event is a managed event flag group. Send/receive semantics belong to
// the kernel; use Handle() with kernel-level operations.
type Event struct {
	object
	k kernel.EventOps
	b *kernel.EventBlock
}

// NewEvent creates or initializes an event flag group.
//	name - name recorded in the kernel object registry.
//	cfg - wake order.
//	p - Dynamic{} or StaticEvent{...}.
func (f *Factory) NewEvent(name string, cfg EventConfig, p EventPlacement) (*Event, error) {
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "event", name, func() *kernel.EventBlock {
			return f.k.CreateEvent(name, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Event{object: object{kind: "event", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticEvent:
		err := initialize(f.log, "event", name, func() kernel.Status {
			return f.k.InitEvent(p.Block, name, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Event{object: object{kind: "event", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("event %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (e *Event) Handle() *kernel.EventBlock { return e.b }

// Release tears the event group down with the entry point matching its
// placement: delete for dynamic, detach for static.
func (e *Event) Release() error {
	return e.release(
		func() kernel.Status { return e.k.DeleteEvent(e.b) },
		func() kernel.Status { return e.k.DetachEvent(e.b) },
	)
}
