// Copyright 2024 odddouglas. All rights reserved.

package rtrepack

import (
	"errors"
	"fmt"

	"github.com/odddouglas/rtrepack/kernel"
)

// ErrOutOfMemory reports that the kernel heap could not satisfy a
// dynamic creation. It is only reachable with Dynamic placement. The
// caller may retry after freeing memory or fall back to a static
// placement. Match it with errors.Is.
var ErrOutOfMemory = errors.New("kernel out of memory")

// StatusError carries a kernel status code verbatim. It is only
// reachable with static placement, when the kernel's init entry point
// rejects the caller-supplied parameters or control block. The code is
// never remapped; interpret it against the kernel documentation.
type StatusError struct {
	Kind string // primitive kind, e.g. "semaphore"
	Name string
	Code kernel.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("init %s %q: kernel status %d (%v)", e.Kind, e.Name, int32(e.Code), e.Code)
}

// StatusCode extracts the verbatim kernel status from an error returned
// by a factory operation or a Release. The second result is false if
// err carries no kernel status.
func StatusCode(err error) (kernel.Status, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return kernel.StatusOK, false
}
