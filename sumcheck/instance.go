package sumcheck

import (
	"fmt"
	"sync"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
	"github.com/zkprover/sumcheck-m31/gate"
	"github.com/zkprover/sumcheck-m31/poly"
)

// instance bundles the state of one sumcheck run: the bound bookkeeping
// tables, the optional eq weighting table, the gate combining them and the
// degree of the round polynomials. It represents
//
//	g(X) = Σ_Y eq(X, Y) · G(X_0(Y), ..., X_m(Y))
//
// with eq omitted when the combination is unweighted.
type instance struct {
	X  []poly.MultiLin
	Eq poly.MultiLin
	// eqPooled records whether Eq was taken from the buffer pool and must
	// be returned on release
	eqPooled bool
	gate     gate.Gate
	// Degree of the round polynomials
	degree int
}

// makeInstance validates the input tables and assembles an instance.
// Validation failures are ErrDimensionMismatch: nothing is allocated and no
// table is touched.
func makeInstance(X []poly.MultiLin, qPrime []m31ext3.Element, g gate.Gate) (*instance, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil gate", ErrDimensionMismatch)
	}
	if len(X) == 0 {
		return nil, fmt.Errorf("%w: no input table", ErrDimensionMismatch)
	}
	if g.NbInputs() != len(X) {
		return nil, fmt.Errorf("%w: gate %v consumes %v inputs, got %v tables",
			ErrDimensionMismatch, g.ID(), g.NbInputs(), len(X))
	}

	n := len(X[0])
	if !common.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: table length %v is not a power of two", ErrDimensionMismatch, n)
	}
	for k := range X {
		if len(X[k]) != n {
			return nil, fmt.Errorf("%w: table %v has length %v, table 0 has length %v",
				ErrDimensionMismatch, k, len(X[k]), n)
		}
	}

	inst := &instance{X: X, gate: g, degree: g.Degree()}

	if qPrime != nil {
		if n != 1<<len(qPrime) {
			return nil, fmt.Errorf("%w: %v eq coordinates for tables of length %v",
				ErrDimensionMismatch, len(qPrime), n)
		}
		eq, err := poly.MakeLarge(n)
		if err != nil {
			return nil, fmt.Errorf("%w: acquiring eq buffer: %v", ErrAcceleratorFailure, err)
		}
		inst.Eq = eq
		inst.eqPooled = true
		// The eq factor is linear in the round variable
		inst.degree++
	}

	return inst, nil
}

// release returns pooled device buffers. Safe to call on every exit path,
// including aborted ones.
func (inst *instance) release() {
	if inst.eqPooled {
		poly.DumpLarge(inst.Eq)
		inst.Eq = nil
		inst.eqPooled = false
	}
}

// Evaluation computes the instance's full sum over the remaining hypercube.
// Used to derive honest claims and to cross-check kernels in tests. Chunk
// partial sums commute so the result does not depend on scheduling.
func (inst *instance) Evaluation() m31ext3.Element {
	var mu sync.Mutex
	var res m31ext3.Element

	common.Parallelize(len(inst.X[0]), func(start, stop int) {
		var acc, tmp m31ext3.Element
		buf := make([]*m31ext3.Element, len(inst.X))

		for n := start; n < stop; n++ {
			for k := range inst.X {
				buf[k] = &inst.X[k][n]
			}
			inst.gate.Eval(&tmp, buf...)
			if inst.Eq != nil {
				tmp.Mul(&tmp, &inst.Eq[n])
			}
			acc.Add(&acc, &tmp)
		}

		mu.Lock()
		res.Add(&res, &acc)
		mu.Unlock()
	})

	return res
}
