package sumcheck

import "errors"

var (
	// ErrDimensionMismatch is returned when a bookkeeping table length is
	// not a power of two, or when jointly-bound tables have inconsistent
	// lengths. The proof attempt aborts with no partial result.
	ErrDimensionMismatch = errors.New("sumcheck: dimension mismatch")

	// ErrAcceleratorFailure is returned when the parallel kernel execution
	// fails (a job panicked or a device buffer could not be acquired). The
	// proof attempt is fatal and is never retried automatically: a
	// partially-folded table cannot yield a consistent proof.
	ErrAcceleratorFailure = errors.New("sumcheck: kernel execution failure")
)
