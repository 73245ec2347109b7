// Copyright 2024 odddouglas. All rights reserved.

// Package rtrepack provides a unified creation layer for RTOS kernel
// synchronization and communication primitives:
//	semaphores
//	threads
//	mutexes
//	event flag groups
//	mailboxes
//	message queues
// Every primitive supports two placement strategies behind one call:
// dynamic, where the kernel allocates the control block and any backing
// storage from its heap, and static, where the caller supplies
// pre-allocated memory and the kernel only initializes it in place.
// The factory keeps the two error domains distinct (heap exhaustion vs.
// a verbatim kernel status code) and pairs teardown with the placement
// used at creation, so delete is never mixed with detach.
// The kernel is consumed through the interfaces in the kernel
// subpackage; this package implements no primitive semantics of its own.
package rtrepack
