// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// QueueConfig carries the creation parameters of a message queue.
type QueueConfig struct {
	// MsgSize is the maximum size of one message in bytes.
	MsgSize uint32
	// PoolSize is the total message pool size in bytes. With static
	// placement len(Pool) sets the size and this field is ignored.
	PoolSize uint32
	// Order selects how blocked threads are woken.
	Order kernel.WakeOrder
}

// Queue is a managed message queue. Send/receive semantics belong to
// the kernel; use Handle() with kernel-level operations.
type Queue struct {
	object
	k kernel.QueueOps
	b *kernel.QueueBlock
}

// NewQueue creates or initializes a message queue.
//	name - name recorded in the kernel object registry.
//	cfg - message size, pool size, wake order.
//	p - Dynamic{} or StaticQueue{...}.
// With static placement the supplied message pool is referenced, never
// copied, and must outlive the queue.
func (f *Factory) NewQueue(name string, cfg QueueConfig, p QueuePlacement) (*Queue, error) {
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "queue", name, func() *kernel.QueueBlock {
			return f.k.CreateQueue(name, cfg.MsgSize, cfg.PoolSize, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Queue{object: object{kind: "queue", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticQueue:
		err := initialize(f.log, "queue", name, func() kernel.Status {
			return f.k.InitQueue(p.Block, name, p.Pool, cfg.MsgSize, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Queue{object: object{kind: "queue", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("queue %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (q *Queue) Handle() *kernel.QueueBlock { return q.b }

// Release tears the queue down with the entry point matching its
// placement: delete for dynamic, detach for static.
func (q *Queue) Release() error {
	return q.release(
		func() kernel.Status { return q.k.DeleteQueue(q.b) },
		func() kernel.Status { return q.k.DetachQueue(q.b) },
	)
}
