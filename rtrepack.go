// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/odddouglas/rtrepack/kernel"
)

// Logger receives the diagnostic lines emitted by factory operations:
// one debug line per success, one error line per failure. The lines are
// informational only and carry no semantics of their own.
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Errorf(string, ...any) {}

// Factory creates and initializes kernel primitives. It holds no
// mutable state, so concurrent calls on distinct control blocks are
// independent; touching the same control block from two creation calls
// is a caller contract violation with undefined outcome.
type Factory struct {
	k   kernel.Kernel
	log Logger
}

// New returns a factory bound to the given kernel.
// log may be nil, in which case diagnostics are discarded.
func New(k kernel.Kernel, log Logger) *Factory {
	if log == nil {
		log = nopLogger{}
	}
	return &Factory{k: k, log: log}
}

// Mode tells how a primitive's memory was obtained.
type Mode uint8

const (
	// ModeDynamic: the kernel allocated the control block and backing
	// storage; releasing the object returns them to the kernel heap.
	ModeDynamic Mode = iota
	// ModeStatic: the caller supplied the memory; releasing the object
	// only unlinks kernel bookkeeping.
	ModeStatic
)

func (m Mode) String() string {
	if m == ModeStatic {
		return "static"
	}
	return "dynamic"
}
