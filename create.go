// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// The two helpers below are the shared core of every factory
// operation. create runs a dynamic entry point and maps a nil handle to
// ErrOutOfMemory; initialize runs a static entry point and surfaces a
// non-success status verbatim. Both emit exactly one diagnostic line.
// The kernel calls are atomic, so neither helper has anything to clean
// up on failure.

func create[B any](log Logger, kind, name string, fn func() *B) (*B, error) {
	b := fn()
	if b == nil {
		log.Errorf("create %s %q: out of memory", kind, name)
		return nil, errors.Wrapf(ErrOutOfMemory, "create %s %q", kind, name)
	}
	log.Debugf("create %s %q: ok", kind, name)
	return b, nil
}

func initialize(log Logger, kind, name string, fn func() kernel.Status) error {
	if st := fn(); st != kernel.StatusOK {
		log.Errorf("init %s %q: %v", kind, name, st)
		return &StatusError{Kind: kind, Name: name, Code: st}
	}
	log.Debugf("init %s %q: ok", kind, name)
	return nil
}
