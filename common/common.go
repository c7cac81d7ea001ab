package common

import (
	"fmt"

	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// SliceToString pretty prints a slice of field elements to ease debugging
func SliceToString(slice []m31ext3.Element) string {
	res := "["
	for _, x := range slice {
		res += fmt.Sprintf("%v, ", x.String())
	}
	res += "]"
	return res
}

// RandomArray returns a deterministic pseudo-random array, for tests and
// benchmarks only
func RandomArray(size int) []m31ext3.Element {
	res := make([]m31ext3.Element, size)
	for i := range res {
		res[i].A0.SetUint64(uint64(i)*uint64(i) ^ 0xf45c9df123f)
		res[i].A1.SetUint64(uint64(i) * 0x9e3779b9)
		res[i].A2.SetUint64(uint64(i) ^ 0xdeadbeef)
	}
	return res
}
