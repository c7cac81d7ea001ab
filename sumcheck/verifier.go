package sumcheck

import (
	"fmt"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
	"github.com/zkprover/sumcheck-m31/gate"
	"github.com/zkprover/sumcheck-m31/poly"
	"github.com/zkprover/sumcheck-m31/transcript"
)

// Verify walks the arithmetic consistency of a proof: every round
// polynomial must satisfy P_i(0) + P_i(1) = running claim, challenges are
// re-derived from an identically seeded transcript, and the final claims
// must combine to the last running value. It returns the challenges (in
// fold order) and the final evaluation.
//
// This is not a full soundness check: the final claims still have to be
// checked against the committed polynomial by the external
// commitment-opening stage.
func Verify(claim m31ext3.Element, proof Proof, g gate.Gate, qPrime []m31ext3.Element, statement []byte, opts ...Option) ([]m31ext3.Element, m31ext3.Element, error) {
	var zero m31ext3.Element

	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, zero, err
	}
	if g == nil {
		return nil, zero, fmt.Errorf("%w: nil gate", ErrDimensionMismatch)
	}

	bn := len(proof.PolyCoeffs)
	if len(qPrime) > 0 && len(qPrime) != bn {
		return nil, zero, fmt.Errorf("%w: %v eq coordinates for %v rounds",
			ErrDimensionMismatch, len(qPrime), bn)
	}

	nEvals := g.Degree() + 1
	if len(qPrime) > 0 {
		nEvals++
	}

	var ts *transcript.Transcript
	if bn > 0 {
		ts, err = transcript.New(cfg.hashFunc, bn)
		if err != nil {
			return nil, zero, err
		}
		if err = ts.AppendBytes(statement); err != nil {
			return nil, zero, err
		}
		if err = ts.AppendElement(&claim); err != nil {
			return nil, zero, err
		}
	}

	challenges := make([]m31ext3.Element, bn)
	one := m31ext3.One()
	expected := claim

	for i := 0; i < bn; i++ {
		coeffs := proof.PolyCoeffs[i]
		if len(coeffs) != nEvals {
			return nil, zero, fmt.Errorf("round %v of %v: %v coefficients, expected %v",
				i+1, bn, len(coeffs), nEvals)
		}

		// Check P_i(0) + P_i(1) == running claim
		actual := poly.EvalUnivariate(coeffs, zero)
		evalAtOne := poly.EvalUnivariate(coeffs, one)
		actual.Add(&actual, &evalAtOne)

		if !expected.Equal(&actual) {
			return nil, zero, fmt.Errorf("at round %v of %v: eval at 0 + 1 = %v, expected %v",
				i+1, bn, actual.String(), expected.String())
		}

		if err = ts.AppendElements(coeffs); err != nil {
			return nil, zero, fmt.Errorf("round %v of %v: %w", i+1, bn, err)
		}
		r, err := ts.Challenge()
		if err != nil {
			return nil, zero, fmt.Errorf("round %v of %v: %w", i+1, bn, err)
		}
		challenges[i] = r

		// Running claim for the next round is P_i(r)
		expected = poly.EvalUnivariate(coeffs, r)
	}

	// The final claims must combine to the last running value
	if len(proof.FinalClaims) != g.NbInputs() {
		return nil, zero, fmt.Errorf("%w: %v final claims for gate %v consuming %v inputs",
			ErrDimensionMismatch, len(proof.FinalClaims), g.ID(), g.NbInputs())
	}
	buf := make([]*m31ext3.Element, len(proof.FinalClaims))
	for k := range proof.FinalClaims {
		buf[k] = &proof.FinalClaims[k]
	}
	var finalEval m31ext3.Element
	g.Eval(&finalEval, buf...)
	if len(qPrime) > 0 {
		eqWeight := poly.EvalEq(qPrime, challenges)
		finalEval.Mul(&finalEval, &eqWeight)
	}

	if !expected.Equal(&finalEval) {
		return nil, zero, fmt.Errorf("final claims combine to %v, last running claim is %v (%v rounds), claims %v",
			finalEval.String(), expected.String(), bn, common.SliceToString(proof.FinalClaims))
	}

	return challenges, finalEval, nil
}
