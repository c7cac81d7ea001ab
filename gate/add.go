package gate

import (
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// AddGate performs an addition
type AddGate struct{}

// ID returns the gate ID
func (AddGate) ID() string { return "AddGate" }

// Eval returns vL + vR
func (AddGate) Eval(res *m31ext3.Element, xs ...*m31ext3.Element) {
	res.Add(xs[0], xs[1])
}

// Degree returns the degree of the gate in the round variable
func (AddGate) Degree() int {
	return 1
}

// NbInputs returns the number of inputs of the gate
func (AddGate) NbInputs() int {
	return 2
}
