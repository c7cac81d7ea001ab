package poly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

func TestFold(t *testing.T) {
	// [0, 1, 2, 3]
	bkt := make(MultiLin, 4)
	for i := 0; i < 4; i++ {
		bkt[i].SetUint64(uint64(i))
	}

	r := m31ext3.NewElement(5)

	// Folding on 5 should yield [10, 11]
	bkt.Fold(r)

	assert.Equal(t, m31ext3.NewElement(10), bkt[0], "Mismatch on 0")
	assert.Equal(t, m31ext3.NewElement(11), bkt[1], "Mismatch on 1")
}

func TestFoldZeroAndOne(t *testing.T) {
	table := common.RandomArray(16)

	// r = 0 reproduces the low half
	low := MultiLin(table).DeepCopy()
	low.Fold(m31ext3.Element{})
	assert.Equal(t, MultiLin(table[:8]), low, "folding on 0 should select the low half")

	// r = 1 reproduces the high half
	high := MultiLin(table).DeepCopy()
	high.Fold(m31ext3.One())
	assert.Equal(t, MultiLin(table[8:]), high, "folding on 1 should select the high half")
}

func TestFoldChunk(t *testing.T) {
	// [0, 1, 2, 3]
	bkt := make(MultiLin, 4)
	for i := 0; i < 4; i++ {
		bkt[i].SetUint64(uint64(i))
	}

	r := m31ext3.NewElement(5)

	bktBis := append(MultiLin{}, bkt...)

	// Folding on 5 should yield [10, 11]
	bkt.Fold(r)
	// It should yield the same result
	bktBis.FoldChunk(r, 0, 1)
	bktBis.FoldChunk(r, 1, 2)
	bktBis = bktBis[:2]

	assert.Equal(t, bkt, bktBis)
}

func TestEvaluate(t *testing.T) {
	// The multilinear extension of [3, 5, 7, 11] evaluated on the hypercube
	// must reproduce the table
	table := MultiLin{
		m31ext3.NewElement(3), m31ext3.NewElement(5),
		m31ext3.NewElement(7), m31ext3.NewElement(11),
	}

	zero, one := m31ext3.Element{}, m31ext3.One()
	vertices := [][]m31ext3.Element{
		{zero, zero}, {zero, one}, {one, zero}, {one, one},
	}

	// The first folded variable selects between the two halves, so the
	// coordinates are ordered most-significant first
	for i, coords := range vertices {
		got, err := table.Evaluate(coords)
		require.NoError(t, err)
		assert.Equal(t, table[i], got, "vertex %v", i)
	}

	// Dimension mismatch is reported
	_, err := table.Evaluate([]m31ext3.Element{zero})
	assert.Error(t, err)
}

func TestPoolRoundTrip(t *testing.T) {
	m, err := MakeLarge(64)
	require.NoError(t, err)
	assert.Equal(t, 64, len(m))
	DumpLarge(m)
	// Double dump is a no-op
	DumpLarge(m)

	// Foreign tables are ignored by Dump
	DumpLarge(make(MultiLin, 8))

	_, err = MakeLarge(maxNForLargePool + 1)
	assert.Error(t, err, "oversized allocation should be refused")

	// Same discipline on the small pool
	s, err := MakeSmall(16)
	require.NoError(t, err)
	assert.Equal(t, 16, len(s))
	DumpSmall(s)
	DumpSmall(s)
	DumpSmall(make(MultiLin, 8))

	_, err = MakeSmall(maxNForSmallPool + 1)
	assert.Error(t, err, "oversized allocation should be refused")
}

func BenchmarkFolding(b *testing.B) {
	size := 1 << 22
	bkt := make(MultiLin, size)
	r := m31ext3.NewElement(5)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		cpy := bkt.DeepCopy()
		b.StartTimer()
		cpy.Fold(r)
	}
}
