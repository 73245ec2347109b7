// Copyright 2024 odddouglas. All rights reserved.

package manifest

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/odddouglas/rtrepack"
	"github.com/odddouglas/rtrepack/kernel"
)

// Builder materializes manifests through a factory. Thread entry
// functions are bound by name before building.
type Builder struct {
	f       *rtrepack.Factory
	entries map[string]kernel.ThreadEntry
}

// NewBuilder returns a builder creating primitives through f.
func NewBuilder(f *rtrepack.Factory) *Builder {
	return &Builder{f: f, entries: map[string]kernel.ThreadEntry{}}
}

// RegisterEntry binds a thread entry function to the name manifests
// refer to it by. Registering the same name twice replaces the binding.
func (b *Builder) RegisterEntry(name string, fn kernel.ThreadEntry) {
	b.entries[name] = fn
}

// Build creates every primitive the manifest declares. Each primitive
// has its own control block, so creation of distinct primitives runs
// concurrently. If any creation fails, everything already created is
// released and the first error is returned.
func (b *Builder) Build(m *Manifest) (*Set, error) {
	for i := range m.Primitives {
		p := &m.Primitives[i]
		if p.Kind == KindThread && b.entries[p.Entry] == nil {
			return nil, errors.Errorf("thread %q: entry %q not registered", p.Name, p.Entry)
		}
	}
	var (
		mu   sync.Mutex
		objs = make(map[string]rtrepack.Releaser, len(m.Primitives))
		g    errgroup.Group
	)
	for i := range m.Primitives {
		p := m.Primitives[i]
		g.Go(func() error {
			r, err := b.build(p)
			if err != nil {
				return err
			}
			mu.Lock()
			objs[p.Name] = r
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// Undo the partial bring-up; the first error still wins.
		for _, r := range objs {
			r.Release()
		}
		return nil, err
	}
	names := make([]string, 0, len(m.Primitives))
	for i := range m.Primitives {
		names = append(names, m.Primitives[i].Name)
	}
	return &Set{names: names, objects: objs}, nil
}

func (b *Builder) build(p Primitive) (rtrepack.Releaser, error) {
	order, err := p.wakeOrder()
	if err != nil {
		return nil, err
	}
	switch p.Kind {
	case KindSemaphore:
		return b.f.NewSemaphore(p.Name, rtrepack.SemaphoreConfig{Initial: p.Initial, Order: order}, rtrepack.Dynamic{})
	case KindThread:
		cfg := rtrepack.ThreadConfig{
			Entry:     b.entries[p.Entry],
			StackSize: p.StackSize,
			Priority:  p.Priority,
			Tick:      p.Tick,
		}
		return b.f.NewThread(p.Name, cfg, rtrepack.Dynamic{})
	case KindMutex:
		return b.f.NewMutex(p.Name, rtrepack.MutexConfig{Order: order}, rtrepack.Dynamic{})
	case KindEvent:
		return b.f.NewEvent(p.Name, rtrepack.EventConfig{Order: order}, rtrepack.Dynamic{})
	case KindMailbox:
		return b.f.NewMailbox(p.Name, rtrepack.MailboxConfig{Slots: p.Slots, Order: order}, rtrepack.Dynamic{})
	case KindQueue:
		return b.f.NewQueue(p.Name, rtrepack.QueueConfig{MsgSize: p.MsgSize, PoolSize: p.PoolSize, Order: order}, rtrepack.Dynamic{})
	default:
		return nil, errors.Errorf("primitive %q: unknown kind %q", p.Name, p.Kind)
	}
}

// Set holds the primitives built from one manifest.
type Set struct {
	names   []string
	objects map[string]rtrepack.Releaser
	mu      sync.Mutex
}

// Names returns the primitive names in declaration order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns the primitive built under name, or nil once released.
// Callers assert the concrete type (*rtrepack.Semaphore and so on) as
// needed.
func (s *Set) Get(name string) rtrepack.Releaser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects[name]
}

// Release releases every primitive in reverse declaration order. All
// primitives are attempted; the first error is returned.
func (s *Set) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for i := len(s.names) - 1; i >= 0; i-- {
		r := s.objects[s.names[i]]
		if r == nil {
			continue
		}
		if err := r.Release(); err != nil && first == nil {
			first = err
		}
		delete(s.objects, s.names[i])
	}
	return first
}
