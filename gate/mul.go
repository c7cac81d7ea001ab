package gate

import (
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// MulGate performs a multiplication, the quadratic combination of a GKR
// multiplication layer
type MulGate struct{}

// ID returns the gate ID
func (MulGate) ID() string { return "MulGate" }

// Eval returns vL * vR
func (MulGate) Eval(res *m31ext3.Element, xs ...*m31ext3.Element) {
	res.Mul(xs[0], xs[1])
}

// Degree returns the degree of the gate in the round variable
func (MulGate) Degree() int {
	return 2
}

// NbInputs returns the number of inputs of the gate
func (MulGate) NbInputs() int {
	return 2
}
