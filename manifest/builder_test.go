// Copyright 2024 odddouglas. All rights reserved.

package manifest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odddouglas/rtrepack"
	testkernel "github.com/odddouglas/rtrepack/internal/test"
	"github.com/odddouglas/rtrepack/kernel"
)

func parseFull(t *testing.T) *Manifest {
	t.Helper()
	m, err := Parse(strings.NewReader(fullManifest))
	require.NoError(t, err)
	return m
}

func TestBuild(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	b := NewBuilder(rtrepack.New(k, nil))
	b.RegisterEntry("worker", func(any) {})
	set, err := b.Build(parseFull(t))
	require.NoError(t, err)
	a.Equal(6, k.Created())
	a.Equal([]string{"sem0", "mtx0", "ev0", "mb0", "mq0", "t0"}, set.Names())

	sem, ok := set.Get("sem0").(*rtrepack.Semaphore)
	if a.True(ok) {
		a.Equal(uint32(1), k.SemaphoreInitial(sem.Handle()))
	}
	a.Equal(kernel.Priority, k.WakeOrderOf("mb0"))
	a.Equal(kernel.FIFO, k.WakeOrderOf("sem0"))

	a.NoError(set.Release())
	a.Equal([]string{"t0", "mq0", "mb0", "ev0", "mtx0", "sem0"}, k.Deleted(),
		"release runs in reverse declaration order")
	a.Nil(set.Get("sem0"))
}

func TestBuildUnregisteredEntry(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	b := NewBuilder(rtrepack.New(k, nil))
	_, err := b.Build(parseFull(t))
	a.Error(err)
	a.Zero(k.Created(), "nothing is created until all entries resolve")
}

func TestBuildPartialFailure(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{FailNames: map[string]bool{"mb0": true}}
	b := NewBuilder(rtrepack.New(k, nil))
	b.RegisterEntry("worker", func(any) {})
	set, err := b.Build(parseFull(t))
	a.Nil(set)
	a.True(errors.Is(err, rtrepack.ErrOutOfMemory))
	a.Equal(5, k.Created())
	a.Len(k.Deleted(), 5, "everything already created is released")
}

func TestBuildAllExhausted(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{OutOfMemory: true}
	b := NewBuilder(rtrepack.New(k, nil))
	b.RegisterEntry("worker", func(any) {})
	set, err := b.Build(parseFull(t))
	a.Nil(set)
	a.True(errors.Is(err, rtrepack.ErrOutOfMemory))
	a.Empty(k.Deleted())
}
