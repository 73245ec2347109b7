// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"github.com/pkg/errors"

	"github.com/odddouglas/rtrepack/kernel"
)

// Releaser is an object whose kernel-side bookkeeping can be released.
// Every managed primitive returned by the factory satisfies it.
type Releaser interface {
	Release() error
}

// object is the state shared by all managed primitives.
type object struct {
	kind     string
	name     string
	mode     Mode
	released bool
}

// Name returns the name the primitive was registered under.
func (o *object) Name() string { return o.name }

// Mode returns the placement the primitive was created with.
func (o *object) Mode() Mode { return o.mode }

// release runs the mode-matched teardown entry point: del for dynamic
// objects, det for static ones. It runs at most once; a rejected
// teardown is reported verbatim but not retried. Release is not safe
// for concurrent use - ownership of a primitive is single-holder.
func (o *object) release(del, det func() kernel.Status) error {
	if o.released {
		return errors.Errorf("%s %q: already released", o.kind, o.name)
	}
	o.released = true
	fn := det
	if o.mode == ModeDynamic {
		fn = del
	}
	if st := fn(); st != kernel.StatusOK {
		return &StatusError{Kind: o.kind, Name: o.name, Code: st}
	}
	return nil
}
