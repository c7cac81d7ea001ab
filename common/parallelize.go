package common

import (
	"runtime"
	"sync"
)

// Parallelize processes the work function in parallel over [0, nbIterations),
// blocking until every range is done
func Parallelize(nbIterations int, work func(int, int), maxCpus ...int) {

	nbTasks := runtime.NumCPU()
	if len(maxCpus) == 1 {
		nbTasks = maxCpus[0]
	}
	nbIterationsPerCpus := nbIterations / nbTasks

	// more CPUs than tasks: a CPU will work on exactly one iteration
	if nbIterationsPerCpus < 1 {
		nbIterationsPerCpus = 1
		nbTasks = nbIterations
	}

	var wg sync.WaitGroup

	extraTasks := nbIterations - (nbTasks * nbIterationsPerCpus)
	extraTasksOffset := 0

	for i := 0; i < nbTasks; i++ {
		wg.Add(1)
		_start := i*nbIterationsPerCpus + extraTasksOffset
		_end := _start + nbIterationsPerCpus
		if extraTasks > 0 {
			_end++
			extraTasks--
			extraTasksOffset++
		}
		go func() {
			work(_start, _end)
			wg.Done()
		}()
	}

	wg.Wait()
}

// TryDispatch splits the large task in smaller chunks and `dispatch`es all of
// them, returning the number of dispatched tasks. Useful to send jobs to a
// worker pool. If it's not worth parallelizing, does nothing and returns 0:
// the caller then runs the task inline.
func TryDispatch(nbIteration, minTaskSize int, dispatch func(start, stop int)) int {

	// For better balance between the threads, make small tasks
	nbTasks := runtime.NumCPU() * 8
	nbIterationPerTasks := nbIteration / nbTasks

	if nbIterationPerTasks < minTaskSize {
		// Not enough iterations per task to make it worth maxing out
		// parallelism. Make bigger tasks.
		nbIterationPerTasks = minTaskSize
		nbTasks = nbIteration / nbIterationPerTasks
	}

	if nbTasks <= 1 {
		// Not enough iterations to make parallelizing interesting at all
		return 0
	}

	// Accounts that `nbTasks` might not divide `nbIteration`
	extraIteration := nbIteration - nbTasks*nbIterationPerTasks
	extraIterationOffset := 0

	for i := 0; i < nbTasks; i++ {
		// Stuffs the extra remaining iterations inside the first tasks
		start := i*nbIterationPerTasks + extraIterationOffset
		stop := start + nbIterationPerTasks

		if extraIteration > 0 {
			stop++
			extraIteration--
			extraIterationOffset++
		}

		dispatch(start, stop)
	}

	return nbTasks
}
