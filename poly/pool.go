package poly

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// Sets a maximum for the array size we keep in pool
const maxNForLargePool int = 1 << 22
const maxNForSmallPool int = 256

// Aliases because it is annoying to use arrays in all the places
type largeArr = [maxNForLargePool]m31ext3.Element
type smallArr = [maxNForSmallPool]m31ext3.Element

var rC sync.Map = sync.Map{}

var (
	largePool = sync.Pool{
		New: func() interface{} {
			var res largeArr
			return &res
		},
	}
	smallPool = sync.Pool{
		New: func() interface{} {
			var res smallArr
			return &res
		},
	}
)

// MakeLarge returns a table of size n backed by the large pool. Requesting
// more than the pool bound is an allocation failure reported to the caller,
// a partially-run proof must not fall back to a silent heap allocation.
func MakeLarge(n int) (MultiLin, error) {
	if n > maxNForLargePool {
		return nil, fmt.Errorf("been provided with size of %v but the maximum is %v", n, maxNForLargePool)
	}

	ptr := largePool.Get().(*largeArr)
	rC.Store(ptr, struct{}{}) // remember we allocated the pointer is being used
	return (*ptr)[:n], nil
}

// DumpLarge returns the given tables to the large pool. Tables that were not
// allocated by MakeLarge, and double-dumps, are ignored.
func DumpLarge(arrs ...MultiLin) {
	for _, arr := range arrs {
		ptr := arr.ptrLarge()
		if ptr == nil {
			continue
		}
		// If the rC did not register, then either the array was allocated
		// somewhere else and it is fine to ignore, or this is a double put
		// and we MUST ignore
		if _, ok := rC.Load(ptr); ok {
			largePool.Put(ptr)
		}
		// And deregisters the ptr
		rC.Delete(ptr)
	}
}

// MakeSmall returns a table of size n backed by the small pool
func MakeSmall(n int) (MultiLin, error) {
	if n > maxNForSmallPool {
		return nil, fmt.Errorf("want size of %v but the maximum is %v", n, maxNForSmallPool)
	}

	ptr := smallPool.Get().(*smallArr)
	rC.Store(ptr, struct{}{}) // registers the pointer being used
	return (*ptr)[:n], nil
}

// DumpSmall returns the given tables to the small pool
func DumpSmall(arrs ...MultiLin) {
	for _, arr := range arrs {
		ptr := arr.ptrSmall()
		if ptr == nil {
			continue
		}
		if _, ok := rC.Load(ptr); ok {
			smallPool.Put(ptr)
		}
		rC.Delete(ptr)
	}
}

// Get the pointer from the header of the slice. Returns nil if the slice
// cannot have been allocated by the large pool.
func (m MultiLin) ptrLarge() *largeArr {
	if cap(m) != maxNForLargePool || len(m) == 0 {
		return nil
	}
	return (*largeArr)(unsafe.Pointer(&m[0]))
}

// Get the pointer from the header of the slice. Returns nil if the slice
// cannot have been allocated by the small pool.
func (m MultiLin) ptrSmall() *smallArr {
	if cap(m) != maxNForSmallPool || len(m) == 0 {
		return nil
	}
	return (*smallArr)(unsafe.Pointer(&m[0]))
}
