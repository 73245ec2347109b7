// Copyright 2024 odddouglas. All rights reserved.

// Package kernel declares the capability surface of the underlying
// RTOS kernel as consumed by the rtrepack factory.
//
// For every primitive kind the kernel exposes four entry points:
//	Create<Kind> - allocates a control block (and backing storage) from
//		the kernel heap and initializes it. Returns nil when the heap
//		is exhausted.
//	Init<Kind> - initializes a caller-supplied control block in place.
//		The kernel never allocates in this path. Returns StatusOK or a
//		kernel-defined failure code.
//	Delete<Kind> - tears down a dynamically created object; the kernel
//		reclaims the control block and backing storage.
//	Detach<Kind> - tears down a statically initialized object; the
//		kernel unlinks its bookkeeping and the caller keeps the memory.
//
// Create/Init calls are atomic: on failure the control block is left
// untouched. Delete and Detach must be paired with the entry point the
// object was made with; mixing them is undefined.
package kernel

// ThreadEntry is the function a thread executes once scheduled.
type ThreadEntry func(arg any)

// SemaphoreOps are the kernel entry points for counting semaphores.
type SemaphoreOps interface {
	// CreateSemaphore allocates and initializes a semaphore with the
	// given initial count. Returns nil if the kernel heap is exhausted.
	CreateSemaphore(name string, initial uint32, order WakeOrder) *SemaphoreBlock
	// InitSemaphore initializes the caller-supplied control block.
	InitSemaphore(b *SemaphoreBlock, name string, initial uint32, order WakeOrder) Status
	// DeleteSemaphore destroys a dynamically created semaphore.
	DeleteSemaphore(b *SemaphoreBlock) Status
	// DetachSemaphore unlinks a statically initialized semaphore.
	// Required once the semaphore is no longer used.
	DetachSemaphore(b *SemaphoreBlock) Status
}

// ThreadOps are the kernel entry points for threads. Starting and
// scheduling a thread is kernel business outside this surface.
type ThreadOps interface {
	// CreateThread allocates a control block and a stack of stackSize
	// bytes from the kernel heap. Returns nil if the heap is exhausted.
	CreateThread(name string, entry ThreadEntry, arg any, stackSize uint32, priority uint8, tick uint32) *ThreadBlock
	// InitThread initializes the caller-supplied control block using
	// the caller-supplied stack. The stack must outlive the thread.
	InitThread(b *ThreadBlock, name string, entry ThreadEntry, arg any, stack []byte, priority uint8, tick uint32) Status
	// DeleteThread destroys a dynamically created thread.
	DeleteThread(b *ThreadBlock) Status
	// DetachThread unlinks a statically initialized thread. Only needed
	// for a thread torn down before it exits: a thread that runs to
	// completion is unlinked by the kernel on exit and requires no
	// explicit release.
	DetachThread(b *ThreadBlock) Status
}

// MutexOps are the kernel entry points for mutexes.
type MutexOps interface {
	// CreateMutex allocates and initializes a mutex. Returns nil if the
	// kernel heap is exhausted.
	CreateMutex(name string, order WakeOrder) *MutexBlock
	// InitMutex initializes the caller-supplied control block.
	InitMutex(b *MutexBlock, name string, order WakeOrder) Status
	// DeleteMutex destroys a dynamically created mutex.
	DeleteMutex(b *MutexBlock) Status
	// DetachMutex unlinks a statically initialized mutex. Required once
	// the mutex is no longer used.
	DetachMutex(b *MutexBlock) Status
}

// EventOps are the kernel entry points for event flag groups.
type EventOps interface {
	// CreateEvent allocates and initializes an event group. Returns nil
	// if the kernel heap is exhausted.
	CreateEvent(name string, order WakeOrder) *EventBlock
	// InitEvent initializes the caller-supplied control block.
	InitEvent(b *EventBlock, name string, order WakeOrder) Status
	// DeleteEvent destroys a dynamically created event group.
	DeleteEvent(b *EventBlock) Status
	// DetachEvent unlinks a statically initialized event group.
	// Required once the event group is no longer used.
	DetachEvent(b *EventBlock) Status
}

// MailboxOps are the kernel entry points for mailboxes. A mailbox
// stores fixed-size messages, one machine word per slot.
type MailboxOps interface {
	// CreateMailbox allocates a control block and a message pool of
	// slots entries. Returns nil if the kernel heap is exhausted.
	CreateMailbox(name string, slots uint32, order WakeOrder) *MailboxBlock
	// InitMailbox initializes the caller-supplied control block using
	// the caller-supplied message pool, which must hold slots entries
	// and outlive the mailbox.
	InitMailbox(b *MailboxBlock, name string, pool []byte, slots uint32, order WakeOrder) Status
	// DeleteMailbox destroys a dynamically created mailbox.
	DeleteMailbox(b *MailboxBlock) Status
	// DetachMailbox unlinks a statically initialized mailbox. Required
	// once the mailbox is no longer used.
	DetachMailbox(b *MailboxBlock) Status
}

// QueueOps are the kernel entry points for message queues. A queue
// stores variable-size messages up to msgSize bytes each.
type QueueOps interface {
	// CreateQueue allocates a control block and a message pool of
	// poolSize bytes. Returns nil if the kernel heap is exhausted.
	CreateQueue(name string, msgSize, poolSize uint32, order WakeOrder) *QueueBlock
	// InitQueue initializes the caller-supplied control block using the
	// caller-supplied message pool; len(pool) is the pool size. The
	// pool must outlive the queue.
	InitQueue(b *QueueBlock, name string, pool []byte, msgSize uint32, order WakeOrder) Status
	// DeleteQueue destroys a dynamically created queue.
	DeleteQueue(b *QueueBlock) Status
	// DetachQueue unlinks a statically initialized queue. Required once
	// the queue is no longer used.
	DetachQueue(b *QueueBlock) Status
}

// Kernel is the complete capability surface.
type Kernel interface {
	SemaphoreOps
	ThreadOps
	MutexOps
	EventOps
	MailboxOps
	QueueOps
}
