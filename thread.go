// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// ThreadConfig carries the creation parameters of a thread.
type ThreadConfig struct {
	// Entry is the function the thread executes once scheduled.
	Entry kernel.ThreadEntry
	// Arg is passed to Entry.
	Arg any
	// StackSize is the stack size in bytes. With static placement the
	// supplied stack slice sets the size and this field is ignored.
	StackSize uint32
	// Priority of the thread; lower values run first.
	Priority uint8
	// Tick is the round-robin time slice in kernel ticks.
	Tick uint32
}

// Thread is a managed thread. Starting it and everything after is
// kernel scheduling business; use Handle() with kernel-level
// operations.
type Thread struct {
	object
	k kernel.ThreadOps
	b *kernel.ThreadBlock
}

// NewThread creates or initializes a thread.
//	name - name recorded in the kernel object registry.
//	cfg - entry function, stack sizing, priority, time slice.
//	p - Dynamic{} or StaticThread{...}.
// With Dynamic placement the kernel allocates the control block and a
// stack of cfg.StackSize bytes; ErrOutOfMemory is returned if its heap
// is exhausted. With static placement the supplied block and stack are
// used in place and a kernel rejection is returned verbatim as
// *StatusError. The entry function must be non-nil.
func (f *Factory) NewThread(name string, cfg ThreadConfig, p ThreadPlacement) (*Thread, error) {
	if cfg.Entry == nil {
		return nil, errors.Errorf("thread %q: nil entry function", name)
	}
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "thread", name, func() *kernel.ThreadBlock {
			return f.k.CreateThread(name, cfg.Entry, cfg.Arg, cfg.StackSize, cfg.Priority, cfg.Tick)
		})
		if err != nil {
			return nil, err
		}
		return &Thread{object: object{kind: "thread", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticThread:
		err := initialize(f.log, "thread", name, func() kernel.Status {
			return f.k.InitThread(p.Block, name, cfg.Entry, cfg.Arg, p.Stack, cfg.Priority, cfg.Tick)
		})
		if err != nil {
			return nil, err
		}
		return &Thread{object: object{kind: "thread", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("thread %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (t *Thread) Handle() *kernel.ThreadBlock { return t.b }

// Release tears the thread down with the entry point matching its
// placement: delete for dynamic, detach for static. A statically
// placed thread that has run to completion is unlinked by the kernel
// on exit and does not need a Release; calling Release is only
// required to tear one down early.
func (t *Thread) Release() error {
	return t.release(
		func() kernel.Status { return t.k.DeleteThread(t.b) },
		func() kernel.Status { return t.k.DetachThread(t.b) },
	)
}
