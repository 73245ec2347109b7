// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testkernel "github.com/odddouglas/rtrepack/internal/test"
	"github.com/odddouglas/rtrepack/kernel"
)

// header is the part of a control block the uniform tests look at.
type header interface {
	Initialized() bool
	Name() string
}

func testEntry(any) {}

var kinds = []struct {
	kind    string
	dynamic func(f *Factory, name string) (Releaser, error)
	static  func(f *Factory, name string) (Releaser, header, error)
}{
	{
		kind: "semaphore",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			s, err := f.NewSemaphore(name, SemaphoreConfig{Initial: 1}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.SemaphoreBlock)
			s, err := f.NewSemaphore(name, SemaphoreConfig{Initial: 1}, StaticSemaphore{Block: b})
			if err != nil {
				return nil, b, err
			}
			return s, b, nil
		},
	},
	{
		kind: "thread",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			t, err := f.NewThread(name, ThreadConfig{Entry: testEntry, StackSize: 512, Priority: 5, Tick: 10}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return t, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.ThreadBlock)
			stack := make([]byte, 512)
			t, err := f.NewThread(name, ThreadConfig{Entry: testEntry, Priority: 5, Tick: 10}, StaticThread{Block: b, Stack: stack})
			if err != nil {
				return nil, b, err
			}
			return t, b, nil
		},
	},
	{
		kind: "mutex",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			m, err := f.NewMutex(name, MutexConfig{}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.MutexBlock)
			m, err := f.NewMutex(name, MutexConfig{}, StaticMutex{Block: b})
			if err != nil {
				return nil, b, err
			}
			return m, b, nil
		},
	},
	{
		kind: "event",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			e, err := f.NewEvent(name, EventConfig{}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return e, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.EventBlock)
			e, err := f.NewEvent(name, EventConfig{}, StaticEvent{Block: b})
			if err != nil {
				return nil, b, err
			}
			return e, b, nil
		},
	},
	{
		kind: "mailbox",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			m, err := f.NewMailbox(name, MailboxConfig{Slots: 8}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return m, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.MailboxBlock)
			pool := make([]byte, 8*8)
			m, err := f.NewMailbox(name, MailboxConfig{Slots: 8}, StaticMailbox{Block: b, Pool: pool})
			if err != nil {
				return nil, b, err
			}
			return m, b, nil
		},
	},
	{
		kind: "queue",
		dynamic: func(f *Factory, name string) (Releaser, error) {
			q, err := f.NewQueue(name, QueueConfig{MsgSize: 16, PoolSize: 256}, Dynamic{})
			if err != nil {
				return nil, err
			}
			return q, nil
		},
		static: func(f *Factory, name string) (Releaser, header, error) {
			b := new(kernel.QueueBlock)
			pool := make([]byte, 256)
			q, err := f.NewQueue(name, QueueConfig{MsgSize: 16}, StaticQueue{Block: b, Pool: pool})
			if err != nil {
				return nil, b, err
			}
			return q, b, nil
		},
	},
}

func TestDynamicOutOfMemory(t *testing.T) {
	for _, tc := range kinds {
		t.Run(tc.kind, func(t *testing.T) {
			a := assert.New(t)
			k := &testkernel.Kernel{OutOfMemory: true}
			f := New(k, nil)
			r, err := tc.dynamic(f, tc.kind+"0")
			a.Nil(r)
			a.True(errors.Is(err, ErrOutOfMemory))
			_, ok := StatusCode(err)
			a.False(ok, "heap exhaustion must not masquerade as a kernel status")
			a.Zero(k.Created())
		})
	}
}

func TestDynamicOK(t *testing.T) {
	for _, tc := range kinds {
		t.Run(tc.kind, func(t *testing.T) {
			a := assert.New(t)
			k := &testkernel.Kernel{}
			f := New(k, nil)
			r, err := tc.dynamic(f, tc.kind+"0")
			if !a.NoError(err) {
				return
			}
			a.NotNil(r)
			a.Equal(1, k.Created())
		})
	}
}

func TestStaticRejected(t *testing.T) {
	for _, tc := range kinds {
		t.Run(tc.kind, func(t *testing.T) {
			a := assert.New(t)
			k := &testkernel.Kernel{InitStatus: kernel.StatusInvalid}
			f := New(k, nil)
			r, hdr, err := tc.static(f, tc.kind+"0")
			a.Nil(r)
			code, ok := StatusCode(err)
			if a.True(ok) {
				a.Equal(kernel.StatusInvalid, code)
			}
			a.False(hdr.Initialized(), "a rejected init must leave the block untouched")
			a.Zero(k.Created(), "the static path must never allocate")
		})
	}
}

func TestStaticOK(t *testing.T) {
	for _, tc := range kinds {
		t.Run(tc.kind, func(t *testing.T) {
			a := assert.New(t)
			k := &testkernel.Kernel{}
			f := New(k, nil)
			name := tc.kind + "0"
			r, hdr, err := tc.static(f, name)
			if !a.NoError(err) {
				return
			}
			a.NotNil(r)
			a.True(hdr.Initialized())
			a.Equal(name, hdr.Name())
			a.Zero(k.Created(), "the static path must never allocate")
		})
	}
}

func TestReleasePairsWithPlacement(t *testing.T) {
	for _, tc := range kinds {
		t.Run(tc.kind, func(t *testing.T) {
			a := assert.New(t)
			k := &testkernel.Kernel{}
			f := New(k, nil)

			dyn, err := tc.dynamic(f, tc.kind+"-dyn")
			require.NoError(t, err)
			a.NoError(dyn.Release())
			a.Equal([]string{tc.kind + "-dyn"}, k.Deleted())
			a.Empty(k.Detached())

			st, _, err := tc.static(f, tc.kind+"-st")
			require.NoError(t, err)
			a.NoError(st.Release())
			a.Equal([]string{tc.kind + "-st"}, k.Detached())
			a.Equal([]string{tc.kind + "-dyn"}, k.Deleted())
		})
	}
}

func TestDoubleReleaseRejected(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	f := New(k, nil)
	s, err := f.NewSemaphore("sem0", SemaphoreConfig{Initial: 1}, Dynamic{})
	require.NoError(t, err)
	a.NoError(s.Release())
	a.Error(s.Release())
	a.Equal([]string{"sem0"}, k.Deleted(), "teardown must not run twice")
}

func TestReleaseRejectionIsVerbatim(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{TeardownStatus: kernel.StatusBusy}
	f := New(k, nil)
	s, err := f.NewSemaphore("sem0", SemaphoreConfig{Initial: 1}, Dynamic{})
	require.NoError(t, err)
	err = s.Release()
	code, ok := StatusCode(err)
	if a.True(ok) {
		a.Equal(kernel.StatusBusy, code)
	}
}

func TestStaticDoubleInitRejected(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	f := New(k, nil)
	b := new(kernel.SemaphoreBlock)
	_, err := f.NewSemaphore("sem0", SemaphoreConfig{Initial: 1}, StaticSemaphore{Block: b})
	require.NoError(t, err)
	_, err = f.NewSemaphore("sem0", SemaphoreConfig{Initial: 1}, StaticSemaphore{Block: b})
	code, ok := StatusCode(err)
	if a.True(ok) {
		a.Equal(kernel.StatusBusy, code)
	}
}

func TestNilPlacement(t *testing.T) {
	a := assert.New(t)
	f := New(&testkernel.Kernel{}, nil)
	_, err := f.NewSemaphore("sem0", SemaphoreConfig{}, nil)
	a.Error(err)
}

// lineLogger records formatted diagnostic lines per severity.
type lineLogger struct {
	debug []string
	errs  []string
}

func (l *lineLogger) Debugf(format string, args ...any) {
	l.debug = append(l.debug, fmt.Sprintf(format, args...))
}

func (l *lineLogger) Errorf(format string, args ...any) {
	l.errs = append(l.errs, fmt.Sprintf(format, args...))
}

func TestDiagnosticsPerPath(t *testing.T) {
	a := assert.New(t)
	log := &lineLogger{}
	f := New(&testkernel.Kernel{}, log)
	_, err := f.NewSemaphore("sem0", SemaphoreConfig{Initial: 1}, Dynamic{})
	require.NoError(t, err)
	a.Len(log.debug, 1)
	a.Empty(log.errs)

	f = New(&testkernel.Kernel{OutOfMemory: true}, log)
	_, err = f.NewSemaphore("sem1", SemaphoreConfig{Initial: 1}, Dynamic{})
	require.Error(t, err)
	a.Len(log.debug, 1)
	a.Len(log.errs, 1)
}
