package poly

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkprover/sumcheck-m31/common"
)

func TestFoldedEqTable(t *testing.T) {
	for bn := 0; bn < 12; bn++ {
		qPrime := common.RandomArray(bn)
		hPrime := common.RandomArray(bn)

		a := EvalEq(qPrime, hPrime)

		eq := make(MultiLin, 1<<bn)
		FoldedEqTable(eq, qPrime)

		b, err := eq.Evaluate(hPrime)
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String(), "bn %v", bn)
	}
}

func TestEqTableChunk(t *testing.T) {
	for bn := 2; bn < 12; bn++ {
		qPrime := common.RandomArray(bn)
		eqBis := make(MultiLin, 1<<bn)
		FoldedEqTable(eqBis, qPrime)

		for logChunkSize := 1; logChunkSize < bn; logChunkSize++ {
			eq := make(MultiLin, 1<<bn)
			chunkSize := 1 << logChunkSize
			nChunks := (1 << bn) / chunkSize

			for chunkID := 0; chunkID < nChunks; chunkID++ {
				ChunkOfEqTable(eq, chunkID, chunkSize, qPrime)
			}

			if !reflect.DeepEqual(eq, eqBis) {
				t.Fatal(fmt.Sprintf(
					"failed at bn = %v and chunksize = %v\n%v\n%v",
					bn, chunkSize, eq.String(), eqBis.String(),
				))
			}
		}
	}
}
