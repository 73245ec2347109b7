// Copyright 2024 odddouglas. All rights reserved.

package kernel

// Object is the bookkeeping header embedded in every control block.
// Kernel implementations use it to record the name a block was
// registered under and whether the block is currently live. The
// factory never writes to it.
type Object struct {
	name string
	live bool
}

// Attach records the block as live under the given name. Called by
// kernel implementations from their create/init entry points.
func (o *Object) Attach(name string) {
	o.name = name
	o.live = true
}

// Detach marks the block as no longer live. The memory itself stays
// with whoever allocated it.
func (o *Object) Detach() {
	o.live = false
}

// Initialized reports whether the block is currently live.
func (o *Object) Initialized() bool { return o.live }

// Name returns the name the block was registered under.
func (o *Object) Name() string { return o.name }

// SemaphoreBlock is the control block of a counting semaphore.
// Everything past the header is kernel-owned.
type SemaphoreBlock struct {
	Object
}

// ThreadBlock is the control block of a thread.
type ThreadBlock struct {
	Object
}

// MutexBlock is the control block of a mutex.
type MutexBlock struct {
	Object
}

// EventBlock is the control block of an event flag group.
type EventBlock struct {
	Object
}

// MailboxBlock is the control block of a mailbox.
type MailboxBlock struct {
	Object
}

// QueueBlock is the control block of a message queue.
type QueueBlock struct {
	Object
}
