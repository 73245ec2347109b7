// Copyright 2024 odddouglas. All rights reserved.

// Package manifest builds a declared set of kernel primitives in one
// step. A YAML document lists dynamically allocated primitives; a
// Builder materializes them through a factory and hands back a Set
// whose Release undoes the whole bring-up in reverse order.
//
// Static placement is out of manifest scope: it needs caller-owned
// control blocks and backing storage, which a document cannot declare.
// Statically placed primitives are created directly through the
// factory.
package manifest

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/odddouglas/rtrepack/kernel"
)

// Kind names accepted in a manifest.
const (
	KindSemaphore = "semaphore"
	KindThread    = "thread"
	KindMutex     = "mutex"
	KindEvent     = "event"
	KindMailbox   = "mailbox"
	KindQueue     = "queue"
)

// Manifest declares a set of dynamically allocated kernel primitives.
type Manifest struct {
	Primitives []Primitive `yaml:"primitives"`
}

// Primitive declares one primitive. Only the fields of its kind are
// consulted; Parse rejects declarations missing required ones.
type Primitive struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`

	// Order is "fifo" (default) or "prio".
	Order string `yaml:"order,omitempty"`

	// Semaphore.
	Initial uint32 `yaml:"initial,omitempty"`

	// Mailbox.
	Slots uint32 `yaml:"slots,omitempty"`

	// Queue.
	MsgSize  uint32 `yaml:"msg_size,omitempty"`
	PoolSize uint32 `yaml:"pool_size,omitempty"`

	// Thread. Entry names a function registered on the Builder.
	Entry     string `yaml:"entry,omitempty"`
	StackSize uint32 `yaml:"stack_size,omitempty"`
	Priority  uint8  `yaml:"priority,omitempty"`
	Tick      uint32 `yaml:"tick,omitempty"`
}

// Parse reads a YAML manifest, rejecting unknown fields and invalid
// declarations.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(err, "decode manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Primitives) == 0 {
		return errors.New("manifest declares no primitives")
	}
	seen := make(map[string]bool, len(m.Primitives))
	for i := range m.Primitives {
		p := &m.Primitives[i]
		if p.Name == "" {
			return errors.Errorf("primitive %d: empty name", i)
		}
		if seen[p.Name] {
			return errors.Errorf("primitive %q: duplicate name", p.Name)
		}
		seen[p.Name] = true
		if _, err := p.wakeOrder(); err != nil {
			return err
		}
		if err := p.validateKind(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Primitive) validateKind() error {
	switch p.Kind {
	case KindSemaphore, KindMutex, KindEvent:
	case KindThread:
		if p.Entry == "" {
			return errors.Errorf("thread %q: missing entry", p.Name)
		}
		if p.StackSize == 0 {
			return errors.Errorf("thread %q: missing stack_size", p.Name)
		}
	case KindMailbox:
		if p.Slots == 0 {
			return errors.Errorf("mailbox %q: missing slots", p.Name)
		}
	case KindQueue:
		if p.MsgSize == 0 || p.PoolSize == 0 {
			return errors.Errorf("queue %q: missing msg_size or pool_size", p.Name)
		}
	default:
		return errors.Errorf("primitive %q: unknown kind %q", p.Name, p.Kind)
	}
	return nil
}

func (p *Primitive) wakeOrder() (kernel.WakeOrder, error) {
	switch p.Order {
	case "", "fifo":
		return kernel.FIFO, nil
	case "prio":
		return kernel.Priority, nil
	default:
		return 0, fmt.Errorf("primitive %q: unknown wake order %q", p.Name, p.Order)
	}
}
