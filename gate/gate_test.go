package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zkprover/sumcheck-m31/common"
	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

func TestGateEvals(t *testing.T) {
	size := 10
	l := common.RandomArray(size)
	r := common.RandomArray(size)

	var res, expected m31ext3.Element

	for i := 0; i < size; i++ {
		IdentityGate{}.Eval(&res, &l[i])
		assert.Equal(t, l[i], res, "identity")

		AddGate{}.Eval(&res, &l[i], &r[i])
		expected.Add(&l[i], &r[i])
		assert.Equal(t, expected, res, "add")

		MulGate{}.Eval(&res, &l[i], &r[i])
		expected.Mul(&l[i], &r[i])
		assert.Equal(t, expected, res, "mul")
	}
}

func TestGateDegrees(t *testing.T) {
	assert.Equal(t, 1, IdentityGate{}.Degree())
	assert.Equal(t, 1, AddGate{}.Degree())
	assert.Equal(t, 2, MulGate{}.Degree())
}

func TestGateArities(t *testing.T) {
	assert.Equal(t, 1, IdentityGate{}.NbInputs())
	assert.Equal(t, 2, AddGate{}.NbInputs())
	assert.Equal(t, 2, MulGate{}.NbInputs())
}
