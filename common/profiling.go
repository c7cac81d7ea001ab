package common

import (
	"fmt"
	"os"
	"runtime/trace"
	"testing"

	"github.com/pkg/profile"
)

// ProfileTrace runs the benchmark function with, optionally, profiling and tracing
func ProfileTrace(b *testing.B, profiled, traced bool, fn func()) {
	var f *os.File
	var pprof interface{ Stop() }
	var err error

	if traced {
		f, err = os.Create(fmt.Sprintf("profiling/%v-trace.out", b.Name()))
		if err != nil {
			panic(err)
		}

		if err = trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}

	if profiled {
		pprof = profile.Start(
			profile.ProfilePath(fmt.Sprintf("profiling/%v-pprof", b.Name())),
			profile.Quiet,
		)
		defer pprof.Stop()
	}

	b.StartTimer()
	defer b.StopTimer()

	fn()
}
