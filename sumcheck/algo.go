package sumcheck

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
	"github.com/zkprover/sumcheck-m31/poly"
)

// The eq table is built by chunks of fixed size.
// This matters because we need powers of two for this to work.
const eqTableChunkSize = 1 << 12

// chunkResult is what a kernel job posts back on its callback channel
type chunkResult struct {
	evals []m31ext3.Element
	err   error
}

// Returns a closure to perform a chunk of partial evaluation
func createPartialEvalJob(inst *instance, callback chan chunkResult, start, stop int) func() {
	return func() {
		callback <- runPartialEvalChunk(inst, start, stop)
	}
}

// Returns a closure to perform a chunk of eq table computation
func createEqTableJob(inst *instance, callback chan chunkResult, qPrime []m31ext3.Element, start, stop int, multiplier ...m31ext3.Element) func() {
	return func() {
		callback <- runEqTableChunk(inst, qPrime, start, stop, multiplier...)
	}
}

// Runs a partial evaluation chunk, converting panics into
// ErrAcceleratorFailure so a failed job aborts the proof instead of killing
// a pool worker. The chunk's partial sums live in a small-pool buffer which
// the combining pass dumps once consumed.
func runPartialEvalChunk(inst *instance, start, stop int) (res chunkResult) {
	defer func() {
		if r := recover(); r != nil {
			res = chunkResult{err: fmt.Errorf("%w: partial-eval chunk [%v:%v] panicked: %v",
				ErrAcceleratorFailure, start, stop, r)}
		}
	}()
	evals, err := poly.MakeSmall(inst.degree + 1)
	if err != nil {
		return chunkResult{err: fmt.Errorf("%w: acquiring evals buffer: %v", ErrAcceleratorFailure, err)}
	}
	inst.getPartialPolyChunk(evals, start, stop)
	return chunkResult{evals: evals}
}

func runEqTableChunk(inst *instance, qPrime []m31ext3.Element, start, stop int, multiplier ...m31ext3.Element) (res chunkResult) {
	defer func() {
		if r := recover(); r != nil {
			res = chunkResult{err: fmt.Errorf("%w: eq-table chunk [%v:%v] panicked: %v",
				ErrAcceleratorFailure, start, stop, r)}
		}
	}()
	inst.computeEqTableJob(qPrime, start, stop, multiplier...)
	return chunkResult{}
}

// getPartialPolyChunk accumulates the contribution of pair indices
// [start, stop) to the round polynomial's evaluations on 0..degree, into the
// evals buffer of length degree+1.
//
// For each pair (T[x], T[x+mid]) the evaluation at t is obtained
// incrementally: eval[0] = T[x], delta = T[x+mid] - T[x],
// eval[t] = eval[t-1] + delta. The gate then combines the per-table values
// and the result accumulates into the chunk's partial sums. Every Add/Mul
// lands in a canonically reduced element, so partial sums stay in range no
// matter how many contributions pile up.
func (inst *instance) getPartialPolyChunk(evals []m31ext3.Element, start, stop int) {
	nEvals := len(evals)
	mid := len(inst.X[0]) / 2

	// Pooled buffers come back dirty
	for t := range evals {
		evals[t].SetZero()
	}

	// Per-table incremental evaluations
	evalX := make([][]m31ext3.Element, len(inst.X))
	for k := range evalX {
		evalX[k] = make([]m31ext3.Element, nEvals)
	}
	deltas := make([]m31ext3.Element, len(inst.X))
	evalEq := make([]m31ext3.Element, nEvals)
	buf := make([]*m31ext3.Element, len(inst.X))

	var v, dEq m31ext3.Element

	for x := start; x < stop; x++ {

		// Computes the preEvaluations
		for k := range inst.X {
			evalX[k][0] = inst.X[k][x]
			deltas[k].Sub(&inst.X[k][x+mid], &inst.X[k][x])
		}
		if inst.Eq != nil {
			evalEq[0] = inst.Eq[x]
			dEq.Sub(&inst.Eq[x+mid], &inst.Eq[x])
		}

		for t := 1; t < nEvals; t++ {
			for k := range inst.X {
				evalX[k][t].Add(&evalX[k][t-1], &deltas[k])
			}
			if inst.Eq != nil {
				evalEq[t].Add(&evalEq[t-1], &dEq)
			}
		}

		for t := 0; t < nEvals; t++ {
			for k := range inst.X {
				buf[k] = &evalX[k][t]
			}
			inst.gate.Eval(&v, buf...)
			if inst.Eq != nil {
				v.Mul(&v, &evalEq[t])
			}
			evals[t].Add(&evals[t], &v)
		}
	}
}

// dispatchPartialEval runs the round-polynomial reduction kernel: per-chunk
// partial sums on the worker pool, then a combining pass over the chunk
// results. The combining pass is the synchronization barrier, the caller
// only touches the transcript once every chunk has reported. The returned
// evals come from the small pool, the caller dumps them once interpolated.
func dispatchPartialEval(inst *instance, cfg *config) ([]m31ext3.Element, error) {
	mid := len(inst.X[0]) / 2
	callback := make(chan chunkResult, 8*runtime.NumCPU())

	nbJobs := common.TryDispatch(mid, cfg.minTaskSize, func(start, stop int) {
		jobQueue <- createPartialEvalJob(inst, callback, start, stop)
	})

	// Too small to parallelize, run inline
	if nbJobs == 0 {
		res := runPartialEvalChunk(inst, 0, mid)
		return res.evals, res.err
	}

	var evals []m31ext3.Element
	var firstErr error
	for i := 0; i < nbJobs; i++ {
		res := <-callback
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		if evals == nil {
			evals = res.evals
			continue
		}
		for t := range evals {
			evals[t].Add(&evals[t], &res.evals[t])
		}
		poly.DumpSmall(res.evals)
	}

	if firstErr != nil {
		poly.DumpSmall(evals)
		return nil, firstErr
	}
	return evals, nil
}

// foldChunk applies the bound challenge on [start, stop) across all bound
// tables. No ordering dependency exists between indices.
func (inst *instance) foldChunk(r m31ext3.Element, start, stop int) {
	for k := range inst.X {
		inst.X[k].FoldChunk(r, start, stop)
	}
	if inst.Eq != nil {
		inst.Eq.FoldChunk(r, start, stop)
	}
}

// fold collapses every bound table to half its size on the challenge r.
// Chunks run concurrently in an errgroup; the Wait is the barrier before
// the next round may read the tables.
func (inst *instance) fold(r m31ext3.Element, cfg *config) error {
	mid := len(inst.X[0]) / 2

	eg := new(errgroup.Group)
	nbJobs := common.TryDispatch(mid, cfg.minTaskSize, func(start, stop int) {
		eg.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("%w: fold chunk [%v:%v] panicked: %v",
						ErrAcceleratorFailure, start, stop, rec)
				}
			}()
			inst.foldChunk(r, start, stop)
			return nil
		})
	})

	if nbJobs == 0 {
		inst.foldChunk(r, 0, mid)
	} else if err := eg.Wait(); err != nil {
		return err
	}

	// Commit the halving only once every chunk is folded
	for k := range inst.X {
		inst.X[k] = inst.X[k][:mid]
	}
	if inst.Eq != nil {
		inst.Eq = inst.Eq[:mid]
	}
	return nil
}

// computeEqTableJob builds the eq table chunks [start, stop)
func (inst *instance) computeEqTableJob(qPrime []m31ext3.Element, start, stop int, multiplier ...m31ext3.Element) {
	for chunkID := start; chunkID < stop; chunkID++ {
		poly.ChunkOfEqTable(inst.Eq, chunkID, eqTableChunkSize, qPrime, multiplier...)
	}
}

// dispatchEqTable builds eq(qPrime, ·) into the instance's preallocated
// buffer, chunked over the worker pool
func dispatchEqTable(inst *instance, qPrime []m31ext3.Element, multiplier ...m31ext3.Element) error {
	nbChunks := len(inst.Eq) / eqTableChunkSize
	if nbChunks < 1 {
		poly.FoldedEqTable(inst.Eq, qPrime, multiplier...)
		return nil
	}

	callback := make(chan chunkResult, 8*runtime.NumCPU())
	nbJobs := common.TryDispatch(nbChunks, 1, func(start, stop int) {
		jobQueue <- createEqTableJob(inst, callback, qPrime, start, stop, multiplier...)
	})

	if nbJobs == 0 {
		res := runEqTableChunk(inst, qPrime, 0, nbChunks, multiplier...)
		return res.err
	}

	var firstErr error
	for i := 0; i < nbJobs; i++ {
		res := <-callback
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	return firstErr
}
