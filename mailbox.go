// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// MailboxConfig carries the creation parameters of a mailbox.
type MailboxConfig struct {
	// Slots is the mailbox capacity in messages, one machine word each.
	Slots uint32
	// Order selects how blocked threads are woken.
	Order kernel.WakeOrder
}

// Mailbox is a managed mailbox. Send/receive semantics belong to the
// kernel; use Handle() with kernel-level operations.
type Mailbox struct {
	object
	k kernel.MailboxOps
	b *kernel.MailboxBlock
}

// NewMailbox creates or initializes a mailbox.
//	name - name recorded in the kernel object registry.
//	cfg - slot count and wake order.
//	p - Dynamic{} or StaticMailbox{...}.
// With static placement the supplied message pool is referenced, never
// copied, and must outlive the mailbox.
func (f *Factory) NewMailbox(name string, cfg MailboxConfig, p MailboxPlacement) (*Mailbox, error) {
	switch p := p.(type) {
	case Dynamic:
		b, err := create(f.log, "mailbox", name, func() *kernel.MailboxBlock {
			return f.k.CreateMailbox(name, cfg.Slots, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Mailbox{object: object{kind: "mailbox", name: name, mode: ModeDynamic}, k: f.k, b: b}, nil
	case StaticMailbox:
		err := initialize(f.log, "mailbox", name, func() kernel.Status {
			return f.k.InitMailbox(p.Block, name, p.Pool, cfg.Slots, cfg.Order)
		})
		if err != nil {
			return nil, err
		}
		return &Mailbox{object: object{kind: "mailbox", name: name, mode: ModeStatic}, k: f.k, b: p.Block}, nil
	default:
		return nil, errors.Errorf("mailbox %q: nil placement", name)
	}
}

// Handle returns the live kernel control block.
func (m *Mailbox) Handle() *kernel.MailboxBlock { return m.b }

// Release tears the mailbox down with the entry point matching its
// placement: delete for dynamic, detach for static.
func (m *Mailbox) Release() error {
	return m.release(
		func() kernel.Status { return m.k.DeleteMailbox(m.b) },
		func() kernel.Status { return m.k.DetachMailbox(m.b) },
	)
}
