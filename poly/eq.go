package poly

import (
	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// EvalEq computes Eq(q1', ... , qn', h1', ... , hn') = Π_1^n Eq(qi', hi')
// where Eq(x, y) = xy + (1-x)(1-y) = 1 - x - y + 2xy interpolates
//
//	_________________
//	|       |       |
//	|   0   |   1   |
//	|_______|_______|
//	|       |       |
//	|   1   |   0   |
//	|_______|_______|
func EvalEq(qPrime, nextQPrime []m31ext3.Element) m31ext3.Element {
	var res, nxt, one, sum m31ext3.Element
	one.SetOne()
	res.SetOne()
	for i := 0; i < len(qPrime); i++ {
		nxt.Mul(&qPrime[i], &nextQPrime[i]) // nxt <- qi' * hi'
		nxt.Add(&nxt, &nxt)                 // nxt <- 2 * qi' * hi'
		nxt.Add(&nxt, &one)                 // nxt <- 1 + 2 * qi' * hi'
		sum.Add(&qPrime[i], &nextQPrime[i]) // sum <- qi' + hi'
		nxt.Sub(&nxt, &sum)                 // nxt <- 1 + 2 * qi' * hi' - qi' - hi'
		res.Mul(&res, &nxt)                 // res <- res * nxt
	}
	return res
}

// FoldedEqTable ought to start life as a sparse bookkeeping table depending
// on 2n variables and containing 2^n ones only, to be folded n times
// according to the values in qPrime. The resulting table would no longer be
// sparse. Instead we directly compute the folded array of length 2^n
// containing the values of Eq(q1, ... , qn, *, ... , *)
// where qPrime = [q1 ... qn].
func FoldedEqTable(preallocated MultiLin, qPrime []m31ext3.Element, multiplier ...m31ext3.Element) (eq MultiLin) {
	n := len(qPrime)

	preallocated[0].SetOne()
	if len(multiplier) > 0 {
		preallocated[0] = multiplier[0]
	}

	for i, r := range qPrime {
		for j := 0; j < (1 << i); j++ {
			J := j << (n - i)
			JNext := J + 1<<(n-1-i)
			preallocated[JNext].Mul(&r, &preallocated[J])
			preallocated[J].Sub(&preallocated[J], &preallocated[JNext])
		}
	}

	return preallocated
}

// ChunkOfEqTable computes only a chunk of the eq table for a given chunkSize
// and chunkID. chunkSize must be a power of two.
func ChunkOfEqTable(preallocatedEq MultiLin, chunkID, chunkSize int, qPrime []m31ext3.Element, multiplier ...m31ext3.Element) {
	nChunks := (1 << len(qPrime)) / chunkSize
	logNChunks := common.Log2Ceil(nChunks)
	one := m31ext3.One()
	var tmp m31ext3.Element

	r := one

	if len(multiplier) > 0 {
		r = multiplier[0]
	}

	for k := 0; k < logNChunks; k++ {
		_rho := &qPrime[logNChunks-k-1]
		if chunkID>>k&1 == 1 { // If the k-th bit of chunkID is 1
			r.Mul(&r, _rho)
		} else {
			tmp.Sub(&one, _rho)
			r.Mul(&r, &tmp)
		}
	}

	FoldedEqTable(
		preallocatedEq[chunkID*chunkSize:(chunkID+1)*chunkSize],
		qPrime[logNChunks:],
		r,
	)
}
