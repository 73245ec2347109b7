// Copyright 2024 odddouglas. All rights reserved.

// Package testkernel is a configurable in-memory kernel backend used by
// the test suites. It implements the full capability surface with
// per-path failure injection and records enough of each call for tests
// to assert what the factory passed through.
package testkernel

import (
	"sync"

	"github.com/odddouglas/rtrepack/kernel"
)

// Kernel is a fake kernel. The zero value succeeds on every call.
// Configure failures before handing it to a factory:
//	OutOfMemory - every dynamic create returns a nil handle.
//	FailNames - dynamic creates of these names return a nil handle.
//	InitStatus - every static init returns this status (if non-zero).
//	TeardownStatus - every delete/detach returns this status.
// A static init on a nil block reports StatusInvalid; on a block that
// is already live it reports StatusBusy.
type Kernel struct {
	OutOfMemory    bool
	FailNames      map[string]bool
	InitStatus     kernel.Status
	TeardownStatus kernel.Status

	mu       sync.Mutex
	created  int
	deleted  []string
	detached []string

	semInitial map[*kernel.SemaphoreBlock]uint32
	orders     map[string]kernel.WakeOrder
	stacks     map[*kernel.ThreadBlock][]byte
	stackSizes map[*kernel.ThreadBlock]uint32
	mbPools    map[*kernel.MailboxBlock][]byte
	mqPools    map[*kernel.QueueBlock][]byte
}

var _ kernel.Kernel = (*Kernel)(nil)

// Created returns how many dynamic control blocks were handed out.
func (k *Kernel) Created() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.created
}

// Deleted returns the names passed to Delete* calls, in call order.
func (k *Kernel) Deleted() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.deleted...)
}

// Detached returns the names passed to Detach* calls, in call order.
func (k *Kernel) Detached() []string {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]string(nil), k.detached...)
}

// SemaphoreInitial returns the initial count recorded for b.
func (k *Kernel) SemaphoreInitial(b *kernel.SemaphoreBlock) uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.semInitial[b]
}

// WakeOrderOf returns the wake order recorded for the named object.
func (k *Kernel) WakeOrderOf(name string) kernel.WakeOrder {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.orders[name]
}

// StackOf returns the stack slice recorded for b. For a statically
// initialized thread it aliases the caller's slice.
func (k *Kernel) StackOf(b *kernel.ThreadBlock) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stacks[b]
}

// StackSizeOf returns the stack size recorded for b.
func (k *Kernel) StackSizeOf(b *kernel.ThreadBlock) uint32 {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.stackSizes[b]
}

// MailboxPoolOf returns the message pool recorded for b.
func (k *Kernel) MailboxPoolOf(b *kernel.MailboxBlock) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mbPools[b]
}

// QueuePoolOf returns the message pool recorded for b.
func (k *Kernel) QueuePoolOf(b *kernel.QueueBlock) []byte {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.mqPools[b]
}

// exhausted reports whether a dynamic create of name must fail.
// Callers hold k.mu.
func (k *Kernel) exhausted(name string) bool {
	return k.OutOfMemory || k.FailNames[name]
}

// checkInit validates a static init of a block whose header reports
// live. Callers hold k.mu.
func (k *Kernel) checkInit(live bool, isNil bool) kernel.Status {
	if k.InitStatus != kernel.StatusOK {
		return k.InitStatus
	}
	if isNil {
		return kernel.StatusInvalid
	}
	if live {
		return kernel.StatusBusy
	}
	return kernel.StatusOK
}

func (k *Kernel) teardown(o *kernel.Object, list *[]string) kernel.Status {
	if st := k.TeardownStatus; st != kernel.StatusOK {
		return st
	}
	*list = append(*list, o.Name())
	o.Detach()
	return kernel.StatusOK
}

func (k *Kernel) CreateSemaphore(name string, initial uint32, order kernel.WakeOrder) *kernel.SemaphoreBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.SemaphoreBlock)
	b.Attach(name)
	k.created++
	k.recordSemaphore(b, name, initial, order)
	return b
}

func (k *Kernel) InitSemaphore(b *kernel.SemaphoreBlock, name string, initial uint32, order kernel.WakeOrder) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	b.Attach(name)
	k.recordSemaphore(b, name, initial, order)
	return kernel.StatusOK
}

func (k *Kernel) recordSemaphore(b *kernel.SemaphoreBlock, name string, initial uint32, order kernel.WakeOrder) {
	if k.semInitial == nil {
		k.semInitial = map[*kernel.SemaphoreBlock]uint32{}
	}
	k.semInitial[b] = initial
	k.recordOrder(name, order)
}

func (k *Kernel) recordOrder(name string, order kernel.WakeOrder) {
	if k.orders == nil {
		k.orders = map[string]kernel.WakeOrder{}
	}
	k.orders[name] = order
}

func (k *Kernel) DeleteSemaphore(b *kernel.SemaphoreBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachSemaphore(b *kernel.SemaphoreBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}

func (k *Kernel) CreateThread(name string, entry kernel.ThreadEntry, arg any, stackSize uint32, priority uint8, tick uint32) *kernel.ThreadBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.ThreadBlock)
	b.Attach(name)
	k.created++
	k.recordThread(b, make([]byte, stackSize), stackSize)
	return b
}

func (k *Kernel) InitThread(b *kernel.ThreadBlock, name string, entry kernel.ThreadEntry, arg any, stack []byte, priority uint8, tick uint32) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	if len(stack) == 0 {
		return kernel.StatusInvalid
	}
	b.Attach(name)
	k.recordThread(b, stack, uint32(len(stack)))
	return kernel.StatusOK
}

func (k *Kernel) recordThread(b *kernel.ThreadBlock, stack []byte, size uint32) {
	if k.stacks == nil {
		k.stacks = map[*kernel.ThreadBlock][]byte{}
		k.stackSizes = map[*kernel.ThreadBlock]uint32{}
	}
	k.stacks[b] = stack
	k.stackSizes[b] = size
}

func (k *Kernel) DeleteThread(b *kernel.ThreadBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachThread(b *kernel.ThreadBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}

func (k *Kernel) CreateMutex(name string, order kernel.WakeOrder) *kernel.MutexBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.MutexBlock)
	b.Attach(name)
	k.created++
	k.recordOrder(name, order)
	return b
}

func (k *Kernel) InitMutex(b *kernel.MutexBlock, name string, order kernel.WakeOrder) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	b.Attach(name)
	k.recordOrder(name, order)
	return kernel.StatusOK
}

func (k *Kernel) DeleteMutex(b *kernel.MutexBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachMutex(b *kernel.MutexBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}

func (k *Kernel) CreateEvent(name string, order kernel.WakeOrder) *kernel.EventBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.EventBlock)
	b.Attach(name)
	k.created++
	k.recordOrder(name, order)
	return b
}

func (k *Kernel) InitEvent(b *kernel.EventBlock, name string, order kernel.WakeOrder) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	b.Attach(name)
	k.recordOrder(name, order)
	return kernel.StatusOK
}

func (k *Kernel) DeleteEvent(b *kernel.EventBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachEvent(b *kernel.EventBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}

func (k *Kernel) CreateMailbox(name string, slots uint32, order kernel.WakeOrder) *kernel.MailboxBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.MailboxBlock)
	b.Attach(name)
	k.created++
	k.recordMailbox(b, nil)
	k.recordOrder(name, order)
	return b
}

func (k *Kernel) InitMailbox(b *kernel.MailboxBlock, name string, pool []byte, slots uint32, order kernel.WakeOrder) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	if len(pool) == 0 || slots == 0 {
		return kernel.StatusInvalid
	}
	b.Attach(name)
	k.recordMailbox(b, pool)
	k.recordOrder(name, order)
	return kernel.StatusOK
}

func (k *Kernel) recordMailbox(b *kernel.MailboxBlock, pool []byte) {
	if k.mbPools == nil {
		k.mbPools = map[*kernel.MailboxBlock][]byte{}
	}
	k.mbPools[b] = pool
}

func (k *Kernel) DeleteMailbox(b *kernel.MailboxBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachMailbox(b *kernel.MailboxBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}

func (k *Kernel) CreateQueue(name string, msgSize, poolSize uint32, order kernel.WakeOrder) *kernel.QueueBlock {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.exhausted(name) {
		return nil
	}
	b := new(kernel.QueueBlock)
	b.Attach(name)
	k.created++
	k.recordQueue(b, nil)
	k.recordOrder(name, order)
	return b
}

func (k *Kernel) InitQueue(b *kernel.QueueBlock, name string, pool []byte, msgSize uint32, order kernel.WakeOrder) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	if st := k.checkInit(b != nil && b.Initialized(), b == nil); st != kernel.StatusOK {
		return st
	}
	if len(pool) == 0 || msgSize == 0 {
		return kernel.StatusInvalid
	}
	b.Attach(name)
	k.recordQueue(b, pool)
	k.recordOrder(name, order)
	return kernel.StatusOK
}

func (k *Kernel) recordQueue(b *kernel.QueueBlock, pool []byte) {
	if k.mqPools == nil {
		k.mqPools = map[*kernel.QueueBlock][]byte{}
	}
	k.mqPools[b] = pool
}

func (k *Kernel) DeleteQueue(b *kernel.QueueBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.deleted)
}

func (k *Kernel) DetachQueue(b *kernel.QueueBlock) kernel.Status {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.teardown(&b.Object, &k.detached)
}
