package gate

import (
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// IdentityGate passes its single input through, the gate of a plain
// single-table sumcheck
type IdentityGate struct{}

// ID returns "IdentityGate" as an ID for IdentityGate
func (IdentityGate) ID() string { return "IdentityGate" }

// Eval returns the first input
func (IdentityGate) Eval(res *m31ext3.Element, xs ...*m31ext3.Element) {
	res.Set(xs[0])
}

// Degree returns the degree of the gate in the round variable
func (IdentityGate) Degree() int {
	return 1
}

// NbInputs returns the number of inputs of the gate
func (IdentityGate) NbInputs() int {
	return 1
}
