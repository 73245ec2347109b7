// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// MutexConfig carries the creation parameters of a mutex.
type MutexConfig struct {
	// Order selects how blocked threads are woken.
	Order kernel.WakeOrder
}

// Mutex is a managed mutex. Lock/unlock semantics, including priority
// inheritance, belong to the kernel; use Handle() with kernel-level
// operations.
type Mutex struct {
	object
	k kernel.MutexOps
	b *kernel.MutexBlock
}

// NewMutex creates or initializes a mutex.
//	name - name recorded in the kernel object registry.
//	cfg - wake order.
//	p - Dynamic{} or StaticMutex{...}.
func (f *Factory) NewMutex(name string, cfg MutexConfig, p MutexPlacement) (*Mutex, error) {
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "mutex", name, func() *kernel.MutexBlock {
			return f.k.CreateMutex(name, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Mutex{object: object{kind: "mutex", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticMutex:
		err := initialize(f.log, "mutex", name, func() kernel.Status {
			return f.k.InitMutex(p.Block, name, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Mutex{object: object{kind: "mutex", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("mutex %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (m *Mutex) Handle() *kernel.MutexBlock { return m.b }

// Release tears the mutex down with the entry point matching its
// placement: delete for dynamic, detach for static.
func (m *Mutex) Release() error {
	return m.release(
		func() kernel.Status { return m.k.DeleteMutex(m.b) },
		func() kernel.Status { return m.k.DetachMutex(m.b) },
	)
}
