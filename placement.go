// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/odddouglas/rtrepack/kernel"
)

// Placement values select the allocation strategy of a primitive.
// Dynamic applies to every kind; the Static* values are per kind and
// carry the caller-owned memory that kind needs, so the type system
// rules out supplying backing storage dynamically or omitting it
// statically. All supplied memory must outlive the primitive.

// Dynamic asks the kernel to allocate the control block and any
// backing storage from its heap.
type Dynamic struct{}

// StaticSemaphore places a semaphore into a caller-owned control block.
type StaticSemaphore struct {
	Block *kernel.SemaphoreBlock
}

// StaticThread places a thread into a caller-owned control block with a
// caller-owned stack.
type StaticThread struct {
	Block *kernel.ThreadBlock
	Stack []byte
}

// StaticMutex places a mutex into a caller-owned control block.
type StaticMutex struct {
	Block *kernel.MutexBlock
}

// StaticEvent places an event flag group into a caller-owned control
// block.
type StaticEvent struct {
	Block *kernel.EventBlock
}

// StaticMailbox places a mailbox into a caller-owned control block with
// a caller-owned message pool.
type StaticMailbox struct {
	Block *kernel.MailboxBlock
	Pool  []byte
}

// StaticQueue places a message queue into a caller-owned control block
// with a caller-owned message pool; len(Pool) is the pool size.
type StaticQueue struct {
	Block *kernel.QueueBlock
	Pool  []byte
}

// SemaphorePlacement is either Dynamic or StaticSemaphore.
type SemaphorePlacement interface{ semaphorePlacement() }

// ThreadPlacement is either Dynamic or StaticThread.
type ThreadPlacement interface{ threadPlacement() }

// MutexPlacement is either Dynamic or StaticMutex.
type MutexPlacement interface{ mutexPlacement() }

// EventPlacement is either Dynamic or StaticEvent.
type EventPlacement interface{ eventPlacement() }

// MailboxPlacement is either Dynamic or StaticMailbox.
type MailboxPlacement interface{ mailboxPlacement() }

// QueuePlacement is either Dynamic or StaticQueue.
type QueuePlacement interface{ queuePlacement() }

func (Dynamic) semaphorePlacement() {}
func (Dynamic) threadPlacement()    {}
func (Dynamic) mutexPlacement()     {}
func (Dynamic) eventPlacement()     {}
func (Dynamic) mailboxPlacement()   {}
func (Dynamic) queuePlacement()     {}

func (StaticSemaphore) semaphorePlacement() {}
func (StaticThread) threadPlacement()       {}
func (StaticMutex) mutexPlacement()         {}
func (StaticEvent) eventPlacement()         {}
func (StaticMailbox) mailboxPlacement()     {}
func (StaticQueue) queuePlacement()         {}
