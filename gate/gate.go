// Package gate defines the pluggable combination formulas a sumcheck
// instance applies to its bookkeeping tables. The engine never hard-codes a
// shape: the caller supplies the gate matching the circuit layer being
// proved.
package gate

import (
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// Gate is a per-round combination formula over the values of the bound
// tables at one hypercube vertex
type Gate interface {
	// ID returns an ID that is unique for the gate
	ID() string
	// Eval evaluates the gate on one input per bound table
	Eval(res *m31ext3.Element, xs ...*m31ext3.Element)
	// Degree returns the degree of the gate in the round variable
	Degree() int
	// NbInputs returns the number of bound tables the gate consumes
	NbInputs() int
}
