package poly

import (
	"fmt"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// MultiLin tracks the values of a (dense i.e. not sparse) multilinear
// polynomial over the Boolean hypercube. The table has length 2^k for k
// remaining variables and shrinks by half at every Fold.
type MultiLin []m31ext3.Element

func (m MultiLin) String() string {
	return common.SliceToString(m)
}

// Fold folds the table on its first coordinate using the given value r
func (m *MultiLin) Fold(r m31ext3.Element) {
	mid := len(*m) / 2
	m.FoldChunk(r, 0, mid)
	*m = (*m)[:mid]
}

// FoldChunk folds one part of the table
func (m *MultiLin) FoldChunk(r m31ext3.Element, start, stop int) {
	mid := len(*m) / 2
	bottom, top := (*m)[:mid], (*m)[mid:]
	for i := start; i < stop; i++ {
		// updating bookkeeping table
		// table[i] <- table[i] + r (table[i + mid] - table[i])
		top[i].Sub(&top[i], &bottom[i])
		top[i].Mul(&top[i], &r)
		bottom[i].Add(&bottom[i], &top[i])
	}
}

// DeepCopy creates a deep copy of a bookkeeping table.
// Both multilinear interpolation and sumcheck require folding an underlying
// array, but folding changes the array. To do both one requires a deep copy
// of the bookkeeping table.
func (m MultiLin) DeepCopy() MultiLin {
	tableDeepCopy := make(MultiLin, len(m))
	copy(tableDeepCopy, m)
	return tableDeepCopy
}

// DeepCopyLarge creates a deep copy of a multilinear table backed by the
// large buffer pool. The caller is responsible for dumping it back.
func (m MultiLin) DeepCopyLarge() (MultiLin, error) {
	tableDeepCopy, err := MakeLarge(len(m))
	if err != nil {
		return nil, err
	}
	copy(tableDeepCopy, m)
	return tableDeepCopy, nil
}

// Evaluate takes a dense bookkeeping table, deep copies it, folds it along
// the variables on which the table depends by substituting the corresponding
// coordinate from coordinates. After folding, the copy is reduced to a one
// item slice containing the evaluation of the original table at coordinates.
func (m MultiLin) Evaluate(coordinates []m31ext3.Element) (m31ext3.Element, error) {
	if len(m) != 1<<len(coordinates) {
		return m31ext3.Element{}, fmt.Errorf("table has length %v, expected %v for %v coordinates",
			len(m), 1<<len(coordinates), len(coordinates))
	}
	bkCopy := m.DeepCopy()
	for _, r := range coordinates {
		bkCopy.Fold(r)
	}
	return bkCopy[0], nil
}
