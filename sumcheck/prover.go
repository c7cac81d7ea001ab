package sumcheck

import (
	"fmt"
	"time"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
	"github.com/zkprover/sumcheck-m31/gate"
	"github.com/zkprover/sumcheck-m31/poly"
	"github.com/zkprover/sumcheck-m31/transcript"
)

// Proof is the object produced by the prover: one round polynomial per
// bound variable, in coefficient form low-degree first, plus the final
// claims of the bound tables (one per input table). Immutable once
// returned.
type Proof struct {
	PolyCoeffs  [][]m31ext3.Element
	FinalClaims []m31ext3.Element
}

// Prove runs the sumcheck prover over the given bookkeeping tables,
// claiming that the gate-combined sum over the hypercube equals claim. The
// statement bytes seed the transcript before round 1 so that prover and
// verifier derive identical challenges from identical public inputs.
//
// The tables are folded in place: the caller hands over ownership for the
// duration of the call. On success the returned final evaluation is the
// single value left after all folds; on error nothing partial is returned
// and the attempt must be restarted from fresh tables.
func Prove(X []poly.MultiLin, g gate.Gate, claim m31ext3.Element, statement []byte, opts ...Option) (Proof, m31ext3.Element, error) {
	return prove(X, nil, g, claim, statement, opts...)
}

// ProveEq is Prove with the combination weighted by eq(qPrime, ·), the form
// a GKR layer uses. len(qPrime) must equal the number of variables of the
// input tables.
func ProveEq(X []poly.MultiLin, qPrime []m31ext3.Element, g gate.Gate, claim m31ext3.Element, statement []byte, opts ...Option) (Proof, m31ext3.Element, error) {
	if len(qPrime) == 0 {
		return Proof{}, m31ext3.Element{}, fmt.Errorf("%w: empty qPrime", ErrDimensionMismatch)
	}
	return prove(X, qPrime, g, claim, statement, opts...)
}

func prove(X []poly.MultiLin, qPrime []m31ext3.Element, g gate.Gate, claim m31ext3.Element, statement []byte, opts ...Option) (Proof, m31ext3.Element, error) {
	var zero m31ext3.Element

	cfg, err := newConfig(opts...)
	if err != nil {
		return Proof{}, zero, err
	}

	inst, err := makeInstance(X, qPrime, g)
	if err != nil {
		return Proof{}, zero, err
	}
	// Device buffers go back to the pool on every path, aborts included
	defer inst.release()

	if inst.Eq != nil {
		if err := dispatchEqTable(inst, qPrime); err != nil {
			return Proof{}, zero, fmt.Errorf("building eq table: %w", err)
		}
	}

	n := len(X[0])
	bn := common.Log2(n)

	cfg.log.Debug().
		Int("nbVars", bn).
		Str("gate", g.ID()).
		Msg("sumcheck prover starting")

	proof := Proof{PolyCoeffs: make([][]m31ext3.Element, bn)}

	var ts *transcript.Transcript
	if bn > 0 {
		ts, err = transcript.New(cfg.hashFunc, bn)
		if err != nil {
			return Proof{}, zero, err
		}
		// Seed with the public statement so that two runs with identical
		// public inputs produce identical challenges
		if err = ts.AppendBytes(statement); err != nil {
			return Proof{}, zero, err
		}
		if err = ts.AppendElement(&claim); err != nil {
			return Proof{}, zero, err
		}
	}

	for i := 0; i < bn; i++ {
		start := time.Now()

		evals, err := dispatchPartialEval(inst, cfg)
		if err != nil {
			return Proof{}, zero, fmt.Errorf("round %v of %v (table length %v): %w",
				i+1, bn, len(inst.X[0]), err)
		}

		coeffs := poly.InterpolateOnRange(evals)
		poly.DumpSmall(evals)
		proof.PolyCoeffs[i] = coeffs

		if err = ts.AppendElements(coeffs); err != nil {
			return Proof{}, zero, fmt.Errorf("round %v of %v: %w", i+1, bn, err)
		}
		r, err := ts.Challenge()
		if err != nil {
			return Proof{}, zero, fmt.Errorf("round %v of %v: %w", i+1, bn, err)
		}

		if err = inst.fold(r, cfg); err != nil {
			return Proof{}, zero, fmt.Errorf("round %v of %v (table length %v): %w",
				i+1, bn, len(inst.X[0]), err)
		}

		cfg.log.Debug().
			Int("round", i+1).
			Dur("took", time.Since(start)).
			Msg("sumcheck round done")
	}

	// Finalized: each table holds a single value
	proof.FinalClaims = make([]m31ext3.Element, len(inst.X))
	for k := range inst.X {
		proof.FinalClaims[k] = inst.X[k][0]
	}
	finalEval := inst.Evaluation()

	return proof, finalEval, nil
}
