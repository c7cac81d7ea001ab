package poly

import (
	"fmt"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

func init() {
	initLagrangePolynomials()
}

// The round polynomials of this engine have degree at most maxDomainSize - 1
const maxDomainSize int = 12

var lagrangePolynomials [][][]m31ext3.Element

// GetLagrangePolynomial returns a precalculated array representing the
// univariate lagrange polynomials on domainSize.
func GetLagrangePolynomial(domainSize int) [][]m31ext3.Element {
	return lagrangePolynomials[domainSize]
}

func initLagrangePolynomials() {
	lagrangePolynomials = make([][][]m31ext3.Element, maxDomainSize+1)
	for i := 0; i < maxDomainSize+1; i++ {
		lagrangePolynomials[i] = LagrangeCoefficient(i)
	}
}

// EvalUnivariate evaluates a polynomial from its coefficients, low-degree
// first, at point x using Horner's rule
func EvalUnivariate(coeffs []m31ext3.Element, x m31ext3.Element) m31ext3.Element {
	var result m31ext3.Element
	result.Set(&coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result.Mul(&result, &x)
		result.Add(&result, &coeffs[i])
	}
	return result
}

// LagrangeCoefficient returns the matrix of Lagrange polynomials for the
// domain [[0; domainSize - 1]]
func LagrangeCoefficient(domainSize int) [][]m31ext3.Element {
	// Declare the binomials
	binomials := make([][2]m31ext3.Element, domainSize)
	for i := uint64(0); i < uint64(domainSize); i++ {
		var intercept m31ext3.Element
		intercept.SetUint64(i)
		binomials[i][0].Neg(&intercept)
		binomials[i][1].SetOne()
	}

	result := make([][]m31ext3.Element, domainSize)

	for l := 0; l < domainSize; l++ {
		// Each iteration computes the l-th Lagrange polynomial
		// on range [0, domainSize-1]
		accumulator := make([]m31ext3.Element, domainSize)
		accumulator[0].SetOne()
		var tmp m31ext3.Element

		for i := 0; i < domainSize; i++ {
			if i == l {
				// Skip the monomial
				continue
			}
			// Computes the product of the (X - i) for i != l
			updated := make([]m31ext3.Element, domainSize)
			for j := 0; j < domainSize; j++ {
				for k := 0; k < common.Min(2, domainSize-j); k++ {
					tmp.Set(&accumulator[j])
					tmp.Mul(&tmp, &binomials[i][k])
					updated[j+k].Add(&updated[j+k], &tmp)
				}
			}
			accumulator = updated
		}
		// Normalize the polynomial to have P(l) = 1. To do so, we compute
		// normalizationFactor = P(l) and divide each coefficient by it.
		var lFieldElement m31ext3.Element
		lFieldElement.SetUint64(uint64(l))
		normalizationFactor := EvalUnivariate(accumulator, lFieldElement)
		if _, err := normalizationFactor.Inverse(&normalizationFactor); err != nil {
			// The evaluation points 0..domainSize-1 are distinct, P(l) != 0
			panic(fmt.Sprintf("lagrange basis normalization failed on domain %v: %v", domainSize, err))
		}
		for i := range accumulator {
			accumulator[i].Mul(&accumulator[i], &normalizationFactor)
		}
		result[l] = accumulator
	}

	return result
}

// InterpolateOnRange performs the interpolation of the given list of
// evaluations on the range [0, 1, ..., len(values) - 1], returning the
// coefficients of the unique interpolating polynomial, low-degree first
func InterpolateOnRange(values []m31ext3.Element) []m31ext3.Element {
	nEvals := len(values)
	lagrange := GetLagrangePolynomial(nEvals)
	result := make([]m31ext3.Element, nEvals)
	var tmp m31ext3.Element

	for i := range values {
		for j := range lagrange[i] {
			tmp.Set(&lagrange[i][j])
			tmp.Mul(&tmp, &values[i])
			result[j].Add(&result[j], &tmp)
		}
	}

	return result
}
