package m31ext3

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkprover/sumcheck-m31/field/m31"
)

func TestEmbedding(t *testing.T) {
	b := m31.NewElement(42)

	var x Element
	x.SetBase(&b)
	assert.Equal(t, uint64(42), x.A0.Uint64())
	assert.True(t, x.A1.IsZero())
	assert.True(t, x.A2.IsZero())

	// base-field multiplication commutes with the embedding
	c := m31.NewElement(17)
	var y, viaExt Element
	y.SetBase(&c)
	viaExt.Mul(&x, &y)

	var viaBase m31.Element
	viaBase.Mul(&b, &c)
	var expected Element
	expected.SetBase(&viaBase)
	assert.Equal(t, expected, viaExt, "embedding should be a ring homomorphism")
}

func TestMulByBase(t *testing.T) {
	b := m31.NewElement(7)
	x := Element{A0: m31.NewElement(2), A1: m31.NewElement(3), A2: m31.NewElement(4)}

	var got Element
	got.MulByBase(&x, &b)
	expected := Element{A0: m31.NewElement(14), A1: m31.NewElement(21), A2: m31.NewElement(28)}
	assert.Equal(t, expected, got, "base scaling should act coordinatewise")

	// and agrees with a full multiplication by the embedding of b
	var emb, viaMul Element
	emb.SetBase(&b)
	viaMul.Mul(&x, &emb)
	assert.Equal(t, viaMul, got)
}

func TestDouble(t *testing.T) {
	x := Element{A0: m31.NewElement(2), A1: m31.NewElement(3), A2: m31.NewElement(4)}

	var d, s Element
	d.Double(&x)
	s.Add(&x, &x)
	assert.Equal(t, s, d, "doubling should agree with self-addition")
}

func TestCubicReduction(t *testing.T) {
	// x * x * x should reduce to 5
	x := Element{A1: m31.One()}
	var cube Element
	cube.Mul(&x, &x).Mul(&cube, &x)
	assert.Equal(t, NewElement(5), cube, "x^3 should equal the non-residue")
}

func TestInverse(t *testing.T) {
	var zero Element
	_, err := new(Element).Inverse(&zero)
	require.ErrorIs(t, err, m31.ErrDivisionByZero)

	one := One()
	inv, err := new(Element).Inverse(&one)
	require.NoError(t, err)
	assert.True(t, inv.IsOne())
}

func genElement() gopter.Gen {
	return gopter.CombineGens(
		gen.UInt32Range(0, 1<<31-2),
		gen.UInt32Range(0, 1<<31-2),
		gen.UInt32Range(0, 1<<31-2),
	).Map(func(vs []interface{}) Element {
		var z Element
		z.A0.SetUint64(uint64(vs[0].(uint32)))
		z.A1.SetUint64(uint64(vs[1].(uint32)))
		z.A2.SetUint64(uint64(vs[2].(uint32)))
		return z
	})
}

func TestFieldAxioms(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("multiplication is commutative", prop.ForAll(
		func(a, b Element) bool {
			var ab, ba Element
			ab.Mul(&a, &b)
			ba.Mul(&b, &a)
			return ab.Equal(&ba)
		},
		genElement(), genElement(),
	))

	properties.Property("multiplication is associative", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r Element
			l.Mul(&a, &b).Mul(&l, &c)
			r.Mul(&b, &c).Mul(&a, &r)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("multiplication distributes over addition", prop.ForAll(
		func(a, b, c Element) bool {
			var l, r, t Element
			l.Add(&b, &c).Mul(&a, &l)
			r.Mul(&a, &b)
			t.Mul(&a, &c)
			r.Add(&r, &t)
			return l.Equal(&r)
		},
		genElement(), genElement(), genElement(),
	))

	properties.Property("nonzero elements have inverses", prop.ForAll(
		func(a Element) bool {
			if a.IsZero() {
				return true
			}
			var inv, prod Element
			if _, err := inv.Inverse(&a); err != nil {
				return false
			}
			prod.Mul(&a, &inv)
			return prod.IsOne()
		},
		genElement(),
	))

	properties.TestingRun(t)
}

func TestBytesRoundTrip(t *testing.T) {
	var a Element
	a.A0.SetUint64(1)
	a.A1.SetUint64(0x1234)
	a.A2.SetUint64(0x7FFFFFFE)

	buf := a.Bytes()
	var b Element
	b.SetBytes(buf[:])
	assert.Equal(t, a, b)
}
