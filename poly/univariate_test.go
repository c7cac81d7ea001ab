package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

func TestInterpolateOnRange(t *testing.T) {
	// The interpolation of evaluations on [0 .. d] must give back the same
	// evaluations, and the coefficients must be emitted low-degree first
	for domainSize := 1; domainSize <= maxDomainSize; domainSize++ {
		evals := common.RandomArray(domainSize)
		coeffs := InterpolateOnRange(evals)
		assert.Len(t, coeffs, domainSize)

		for i := range evals {
			x := m31ext3.NewElement(uint64(i))
			got := EvalUnivariate(coeffs, x)
			assert.Equal(t, evals[i], got, "domain %v, point %v", domainSize, i)
		}
	}
}

func TestEvalUnivariateConstantTerm(t *testing.T) {
	// P(0) is the low coefficient, the order the verifier relies on
	coeffs := common.RandomArray(5)
	got := EvalUnivariate(coeffs, m31ext3.Element{})
	assert.Equal(t, coeffs[0], got)
}

func TestInterpolateLinear(t *testing.T) {
	// Evaluations [a, b] of a degree-1 polynomial give coefficients [a, b-a]
	a := m31ext3.NewElement(3)
	b := m31ext3.NewElement(11)
	coeffs := InterpolateOnRange([]m31ext3.Element{a, b})

	var slope m31ext3.Element
	slope.Sub(&b, &a)
	assert.Equal(t, a, coeffs[0])
	assert.Equal(t, slope, coeffs[1])
}
