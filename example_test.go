// Copyright 2024 odddouglas. All rights reserved.

package rtrepack_test

import (
	"fmt"

	"github.com/odddouglas/rtrepack"
	testkernel "github.com/odddouglas/rtrepack/internal/test"
	"github.com/odddouglas/rtrepack/kernel"
)

func ExampleFactory() {
	f := rtrepack.New(&testkernel.Kernel{}, nil)

	// Dynamic placement: the kernel allocates the control block.
	sem, err := f.NewSemaphore("sem0", rtrepack.SemaphoreConfig{Initial: 1}, rtrepack.Dynamic{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sem.Name(), sem.Mode())

	// Static placement: the caller owns the control block.
	var block kernel.MutexBlock
	m, err := f.NewMutex("mtx0", rtrepack.MutexConfig{Order: kernel.Priority}, rtrepack.StaticMutex{Block: &block})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(m.Name(), m.Mode(), block.Initialized())

	// Release pairs teardown with placement: delete vs. detach.
	sem.Release()
	m.Release()
	// Output:
	// sem0 dynamic
	// mtx0 static true
}
