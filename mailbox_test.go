// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testkernel "github.com/odddouglas/rtrepack/internal/test"
	"github.com/odddouglas/rtrepack/kernel"
)

func TestMailboxStatic(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	f := New(k, nil)
	b := new(kernel.MailboxBlock)
	pool := make([]byte, 16*4)
	m, err := f.NewMailbox("mb0", MailboxConfig{Slots: 16, Order: kernel.Priority}, StaticMailbox{Block: b, Pool: pool})
	require.NoError(t, err)
	a.Equal(b, m.Handle())
	a.True(b.Initialized())
	got := k.MailboxPoolOf(b)
	if a.Len(got, len(pool)) {
		a.True(&got[0] == &pool[0], "the pool must be referenced, not copied")
	}
	a.Equal(kernel.Priority, k.WakeOrderOf("mb0"))
}

func TestMailboxStaticRejected(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{InitStatus: kernel.Status(-5)}
	f := New(k, nil)
	b := new(kernel.MailboxBlock)
	pool := make([]byte, 16*4)
	m, err := f.NewMailbox("mb0", MailboxConfig{Slots: 16, Order: kernel.Priority}, StaticMailbox{Block: b, Pool: pool})
	a.Nil(m)
	code, ok := StatusCode(err)
	if a.True(ok) {
		a.Equal(kernel.Status(-5), code)
	}
	a.False(b.Initialized())
}

func TestMailboxDynamic(t *testing.T) {
	a := assert.New(t)
	k := &testkernel.Kernel{}
	f := New(k, nil)
	m, err := f.NewMailbox("mb1", MailboxConfig{Slots: 8, Order: kernel.FIFO}, Dynamic{})
	require.NoError(t, err)
	a.NotNil(m.Handle())
	a.Equal(ModeDynamic, m.Mode())
}
