// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// SemaphoreConfig carries the creation parameters of a counting
// semaphore.
type SemaphoreConfig struct {
	// Initial is the starting resource count.
	Initial uint32
	// Order selects how blocked threads are woken.
	Order kernel.WakeOrder
}

// Semaphore is a managed counting semaphore. Wait/post semantics belong
// to the kernel; use Handle() with kernel-level operations.
type Semaphore struct {
	object
	k kernel.SemaphoreOps
	b *kernel.SemaphoreBlock
}

// NewSemaphore creates or initializes a counting semaphore.
//	name - name recorded in the kernel object registry.
//	cfg - initial count and wake order.
//	p - Dynamic{} or StaticSemaphore{...}.
// With Dynamic placement the kernel allocates the control block and
// ErrOutOfMemory is returned if its heap is exhausted. With static
// placement the supplied block is initialized in place and a kernel
// rejection is returned verbatim as *StatusError.
func (f *Factory) NewSemaphore(name string, cfg SemaphoreConfig, p SemaphorePlacement) (*Semaphore, error) {
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "semaphore", name, func() *kernel.SemaphoreBlock {
			return f.k.CreateSemaphore(name, cfg.Initial, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Semaphore{object: object{kind: "semaphore", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticSemaphore:
		err := initialize(f.log, "semaphore", name, func() kernel.Status {
			return f.k.InitSemaphore(p.Block, name, cfg.Initial, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Semaphore{object: object{kind: "semaphore", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("semaphore %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (s *Semaphore) Handle() *kernel.SemaphoreBlock { return s.b }

// Release tears the semaphore down with the entry point matching its
// placement: delete for dynamic, detach for static.
func (s *Semaphore) Release() error {
	return s.release(
		func() kernel.Status { return s.k.DeleteSemaphore(s.b) },
		func() kernel.Status { return s.k.DetachSemaphore(s.b) },
	)
}
