package tools

import (
	"strconv"
	"sync/atomic"
)

// AtomicBool is a boolean flag that can be flipped exactly once per
// transition across go-routines. The zero value is false.
type AtomicBool int32

// NewAtomicBool returns a flag initialized to v
func NewAtomicBool(v bool) *AtomicBool {
	a := new(AtomicBool)
	if v {
		atomic.StoreInt32((*int32)(a), 1)
	}
	return a
}

// Value returns the current boolean value
func (a *AtomicBool) Value() bool {
	return atomic.LoadInt32((*int32)(a)) == 1
}

// SetIfFalse flips the flag from false to true.
// Returns true only for the caller that made the transition.
func (a *AtomicBool) SetIfFalse() bool {
	return atomic.CompareAndSwapInt32((*int32)(a), 0, 1)
}

// ResetIfTrue flips the flag from true to false.
// Returns true only for the caller that made the transition.
func (a *AtomicBool) ResetIfTrue() bool {
	return atomic.CompareAndSwapInt32((*int32)(a), 1, 0)
}

func (a *AtomicBool) String() string {
	return strconv.FormatBool(a.Value())
}
