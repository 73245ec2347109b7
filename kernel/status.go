// Copyright 2024 odddouglas. All rights reserved.

package kernel

import "fmt"

// Status is an errno-style code returned by the kernel's init and
// teardown entry points. Zero is success; failures are negative and
// kernel-defined.
type Status int32

const (
	StatusOK          Status = 0
	StatusFailed      Status = -1
	StatusTimeout     Status = -2
	StatusFull        Status = -3
	StatusEmpty       Status = -4
	StatusNoMem       Status = -5
	StatusNoSys       Status = -6
	StatusBusy        Status = -7
	StatusIO          Status = -8
	StatusInterrupted Status = -9
	StatusInvalid     Status = -10
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusTimeout:
		return "timed out"
	case StatusFull:
		return "resource full"
	case StatusEmpty:
		return "resource empty"
	case StatusNoMem:
		return "no memory"
	case StatusNoSys:
		return "no such call"
	case StatusBusy:
		return "busy"
	case StatusIO:
		return "io error"
	case StatusInterrupted:
		return "interrupted"
	case StatusInvalid:
		return "invalid parameter"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// WakeOrder selects how the kernel wakes threads blocked on a
// primitive: in arrival order or highest priority first.
type WakeOrder uint8

const (
	FIFO WakeOrder = iota
	Priority
)

func (o WakeOrder) String() string {
	if o == Priority {
		return "prio"
	}
	return "fifo"
}
