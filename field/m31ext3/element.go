// Package m31ext3 implements the degree-3 extension of the Mersenne-31
// field, F_p[x]/(x^3 - 5). This is the field sumcheck challenges live in:
// the base field alone is too small for soundness.
package m31ext3

import (
	"fmt"

	"github.com/zkprover/sumcheck-m31/field/m31"
)

const (
	// Bytes is the size of the canonical encoding of an element
	Bytes = 3 * m31.Bytes
)

// x^3 = 5 defines the extension
var nonResidue = m31.NewElement(5)

// Element represents a0 + a1·x + a2·x^2 with each coordinate canonically
// reduced in the base field. A base element b embeds as (b, 0, 0).
type Element struct {
	A0, A1, A2 m31.Element
}

// One returns 1
func One() Element {
	var z Element
	z.SetOne()
	return z
}

// NewElement returns the embedding of v
func NewElement(v uint64) Element {
	var z Element
	z.A0.SetUint64(v)
	return z
}

// SetZero sets z to 0 and returns z
func (z *Element) SetZero() *Element {
	z.A0.SetZero()
	z.A1.SetZero()
	z.A2.SetZero()
	return z
}

// SetOne sets z to 1 and returns z
func (z *Element) SetOne() *Element {
	z.A0.SetOne()
	z.A1.SetZero()
	z.A2.SetZero()
	return z
}

// Set sets z to x and returns z
func (z *Element) Set(x *Element) *Element {
	*z = *x
	return z
}

// SetBase embeds the base element b as (b, 0, 0) and returns z
func (z *Element) SetBase(b *m31.Element) *Element {
	z.A0.Set(b)
	z.A1.SetZero()
	z.A2.SetZero()
	return z
}

// SetUint64 sets z to the embedding of v mod p and returns z
func (z *Element) SetUint64(v uint64) *Element {
	z.A0.SetUint64(v)
	z.A1.SetZero()
	z.A2.SetZero()
	return z
}

// SetRandom sets z to a uniformly sampled element
func (z *Element) SetRandom() (*Element, error) {
	if _, err := z.A0.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.A1.SetRandom(); err != nil {
		return nil, err
	}
	if _, err := z.A2.SetRandom(); err != nil {
		return nil, err
	}
	return z, nil
}

// SetBytes reads the canonical 12-byte little-endian encoding
// (one 4-byte word per coordinate, low coordinate first) and returns z
func (z *Element) SetBytes(b []byte) *Element {
	var buf [Bytes]byte
	copy(buf[:], b)
	z.A0.SetBytes(buf[0:4])
	z.A1.SetBytes(buf[4:8])
	z.A2.SetBytes(buf[8:12])
	return z
}

// Bytes returns the canonical 12-byte little-endian encoding of z
func (z *Element) Bytes() [Bytes]byte {
	var res [Bytes]byte
	b0, b1, b2 := z.A0.Bytes(), z.A1.Bytes(), z.A2.Bytes()
	copy(res[0:4], b0[:])
	copy(res[4:8], b1[:])
	copy(res[8:12], b2[:])
	return res
}

// IsZero returns true iff z == 0
func (z *Element) IsZero() bool {
	return z.A0.IsZero() && z.A1.IsZero() && z.A2.IsZero()
}

// IsOne returns true iff z == 1
func (z *Element) IsOne() bool {
	return z.A0.IsOne() && z.A1.IsZero() && z.A2.IsZero()
}

// Equal returns true iff z == x
func (z *Element) Equal(x *Element) bool {
	return z.A0.Equal(&x.A0) && z.A1.Equal(&x.A1) && z.A2.Equal(&x.A2)
}

func (z *Element) String() string {
	return fmt.Sprintf("(%v, %v, %v)", z.A0.String(), z.A1.String(), z.A2.String())
}

// Add sets z = x + y and returns z
func (z *Element) Add(x, y *Element) *Element {
	z.A0.Add(&x.A0, &y.A0)
	z.A1.Add(&x.A1, &y.A1)
	z.A2.Add(&x.A2, &y.A2)
	return z
}

// Double sets z = 2x and returns z
func (z *Element) Double(x *Element) *Element {
	return z.Add(x, x)
}

// Sub sets z = x - y and returns z
func (z *Element) Sub(x, y *Element) *Element {
	z.A0.Sub(&x.A0, &y.A0)
	z.A1.Sub(&x.A1, &y.A1)
	z.A2.Sub(&x.A2, &y.A2)
	return z
}

// Neg sets z = -x and returns z
func (z *Element) Neg(x *Element) *Element {
	z.A0.Neg(&x.A0)
	z.A1.Neg(&x.A1)
	z.A2.Neg(&x.A2)
	return z
}

// Mul sets z = x * y and returns z. Schoolbook multiplication followed by
// exact reduction with x^3 = 5:
//
//	c0 = a0·b0 + 5(a1·b2 + a2·b1)
//	c1 = a0·b1 + a1·b0 + 5·a2·b2
//	c2 = a0·b2 + a1·b1 + a2·b0
func (z *Element) Mul(x, y *Element) *Element {
	var c0, c1, c2, t, u m31.Element

	t.Mul(&x.A1, &y.A2)
	u.Mul(&x.A2, &y.A1)
	t.Add(&t, &u)
	c0.Mul(&t, &nonResidue)
	t.Mul(&x.A0, &y.A0)
	c0.Add(&c0, &t)

	t.Mul(&x.A2, &y.A2)
	c1.Mul(&t, &nonResidue)
	t.Mul(&x.A0, &y.A1)
	c1.Add(&c1, &t)
	t.Mul(&x.A1, &y.A0)
	c1.Add(&c1, &t)

	c2.Mul(&x.A0, &y.A2)
	t.Mul(&x.A1, &y.A1)
	c2.Add(&c2, &t)
	t.Mul(&x.A2, &y.A0)
	c2.Add(&c2, &t)

	z.A0, z.A1, z.A2 = c0, c1, c2
	return z
}

// Square sets z = x * x and returns z
func (z *Element) Square(x *Element) *Element {
	return z.Mul(x, x)
}

// MulByBase multiplies every coordinate of x by the base element b
func (z *Element) MulByBase(x *Element, b *m31.Element) *Element {
	z.A0.Mul(&x.A0, b)
	z.A1.Mul(&x.A1, b)
	z.A2.Mul(&x.A2, b)
	return z
}

// Inverse sets z = x^-1 and returns z. Inverting 0 fails with
// m31.ErrDivisionByZero.
//
// Algorithm 17 of https://eprint.iacr.org/2010/354.pdf, entirely in
// base-field operations: compute the adjugate coordinates, divide by the
// norm.
func (z *Element) Inverse(x *Element) (*Element, error) {
	if x.IsZero() {
		return nil, m31.ErrDivisionByZero
	}

	var t0, t1, t2, t3, t4, t5, t6, c0, c1, c2, d1, d2 m31.Element
	t0.Square(&x.A0)
	t1.Square(&x.A1)
	t2.Square(&x.A2)
	t3.Mul(&x.A0, &x.A1)
	t4.Mul(&x.A0, &x.A2)
	t5.Mul(&x.A1, &x.A2)

	c0.Mul(&t5, &nonResidue)
	c0.Sub(&t0, &c0)
	c1.Mul(&t2, &nonResidue)
	c1.Sub(&c1, &t3)
	c2.Sub(&t1, &t4)

	t6.Mul(&x.A0, &c0)
	d1.Mul(&x.A2, &c1)
	d2.Mul(&x.A1, &c2)
	d1.Add(&d1, &d2)
	d1.Mul(&d1, &nonResidue)
	t6.Add(&t6, &d1)

	if _, err := t6.Inverse(&t6); err != nil {
		// The norm of a nonzero element in a field extension is nonzero
		return nil, err
	}

	z.A0.Mul(&c0, &t6)
	z.A1.Mul(&c1, &t6)
	z.A2.Mul(&c2, &t6)
	return z, nil
}
