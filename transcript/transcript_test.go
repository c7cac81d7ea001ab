package transcript

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/zkprover/sumcheck-m31/common"
)

func TestReproducibility(t *testing.T) {
	elements := common.RandomArray(8)

	squeeze := func() []string {
		ts, err := New(sha256.New, 3)
		require.NoError(t, err)

		require.NoError(t, ts.AppendBytes([]byte("statement")))
		require.NoError(t, ts.AppendElements(elements[:4]))
		c0, err := ts.Challenge()
		require.NoError(t, err)

		require.NoError(t, ts.AppendElements(elements[4:]))
		c1, err := ts.Challenge()
		require.NoError(t, err)

		c2, err := ts.Challenge()
		require.NoError(t, err)

		return []string{c0.String(), c1.String(), c2.String()}
	}

	run1 := squeeze()
	run2 := squeeze()
	assert.Equal(t, run1, run2, "identical absorb/squeeze sequences must give identical challenges")

	assert.NotEqual(t, run1[0], run1[1], "chained challenges should differ")
}

func TestAbsorbedDataMatters(t *testing.T) {
	tsA, err := New(sha256.New, 1)
	require.NoError(t, err)
	require.NoError(t, tsA.AppendBytes([]byte("claim=26")))
	a, err := tsA.Challenge()
	require.NoError(t, err)

	tsB, err := New(sha256.New, 1)
	require.NoError(t, err)
	require.NoError(t, tsB.AppendBytes([]byte("claim=27")))
	b, err := tsB.Challenge()
	require.NoError(t, err)

	assert.False(t, a.Equal(&b), "different absorbed statements must give different challenges")
}

func TestHashChoiceMatters(t *testing.T) {
	elements := common.RandomArray(2)

	tsSha, err := New(sha256.New, 1)
	require.NoError(t, err)
	require.NoError(t, tsSha.AppendElements(elements))
	a, err := tsSha.Challenge()
	require.NoError(t, err)

	tsKeccak, err := New(sha3.NewLegacyKeccak256, 1)
	require.NoError(t, err)
	require.NoError(t, tsKeccak.AppendElements(elements))
	b, err := tsKeccak.Challenge()
	require.NoError(t, err)

	assert.False(t, a.Equal(&b), "sha256 and keccak256 transcripts should diverge")
}

func TestExhaustion(t *testing.T) {
	ts, err := New(sha256.New, 1)
	require.NoError(t, err)

	_, err = ts.Challenge()
	require.NoError(t, err)

	_, err = ts.Challenge()
	assert.Error(t, err, "squeezing past the last challenge must fail")

	err = ts.AppendBytes([]byte("late"))
	assert.Error(t, err, "absorbing after the final squeeze must fail")
}

func TestRejectsBadConfig(t *testing.T) {
	_, err := New(sha256.New, 0)
	assert.Error(t, err)
}
