package sumcheck

import (
	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
	"github.com/zkprover/sumcheck-m31/gate"
	"github.com/zkprover/sumcheck-m31/poly"
)

// Evaluation computes the honest claim for the given tables, gate and
// optional eq coordinates, by direct summation over the hypercube. For
// tests and callers deriving the claimed sum; O(2^bn), no parallelism.
func Evaluation(g gate.Gate, X []poly.MultiLin, qPrime []m31ext3.Element) (m31ext3.Element, error) {
	inst, err := makeInstance(X, qPrime, g)
	if err != nil {
		return m31ext3.Element{}, err
	}
	defer inst.release()

	if inst.Eq != nil {
		poly.FoldedEqTable(inst.Eq, qPrime)
	}

	return inst.Evaluation(), nil
}

// InitializeIdentityInstance returns a pseudo-random single-table instance
// of bn variables along with its honest claim
func InitializeIdentityInstance(bn int) (X []poly.MultiLin, g gate.Gate, claim m31ext3.Element) {
	g = gate.IdentityGate{}
	X = []poly.MultiLin{common.RandomArray(1 << bn)}

	var tmp m31ext3.Element
	for i := range X[0] {
		tmp.Add(&tmp, &X[0][i])
	}
	return X, g, tmp
}

// InitializeMulInstance returns a pseudo-random two-table, eq-weighted
// multiplication instance of bn variables along with its honest claim
func InitializeMulInstance(bn int) (X []poly.MultiLin, qPrime []m31ext3.Element, g gate.Gate, claim m31ext3.Element) {
	g = gate.MulGate{}
	X = []poly.MultiLin{
		common.RandomArray(1 << bn),
		common.RandomArray(1 << bn),
	}
	qPrime = common.RandomArray(bn)

	claim, err := Evaluation(g, X, qPrime)
	if err != nil {
		panic(err)
	}
	return X, qPrime, g, claim
}

func deepCopyTables(X []poly.MultiLin) []poly.MultiLin {
	res := make([]poly.MultiLin, len(X))
	for k := range X {
		res[k] = X[k].DeepCopy()
	}
	return res
}
