// Package m31 implements arithmetic over the Mersenne prime field F_p,
// p = 2^31 - 1.
//
// Elements are kept canonically reduced in [0, p) after every operation.
// Reduction exploits 2^31 ≡ 1 (mod p): the high bits of an intermediate
// result are folded back onto the low bits instead of performing a full
// division. None of the operations are constant-time, this field is used
// on the proving side only.
package m31

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"math/big"
	"strconv"
)

const (
	// Bits is the number of bits needed to represent an element
	Bits = 31
	// Bytes is the size of the canonical encoding of an element
	Bytes = 4
)

const q uint32 = 1<<31 - 1

// ErrDivisionByZero is returned when inverting the additive identity.
// It must never fire on a well-formed proving path: hitting it signals a
// corrupted witness or a programming error upstream.
var ErrDivisionByZero = errors.New("m31: division by zero")

// Element is a field element in F_p, p = 2^31 - 1.
// The zero value is the additive identity.
type Element [1]uint32

// NewElement returns an element set to v
func NewElement(v uint64) Element {
	var z Element
	z.SetUint64(v)
	return z
}

// One returns 1
func One() Element {
	return Element{1}
}

// Modulus returns p as a big.Int
func Modulus() *big.Int {
	return new(big.Int).SetUint64(uint64(q))
}

// reduce64 folds v onto [0, p) using 2^31 ≡ 1 (mod p).
// Valid for any v < 2^62, which covers the product of two canonical elements.
func reduce64(v uint64) uint32 {
	v = (v & uint64(q)) + (v >> 31)
	v = (v & uint64(q)) + (v >> 31)
	if v >= uint64(q) {
		v -= uint64(q)
	}
	return uint32(v)
}

// SetZero sets z to 0 and returns z
func (z *Element) SetZero() *Element {
	z[0] = 0
	return z
}

// SetOne sets z to 1 and returns z
func (z *Element) SetOne() *Element {
	z[0] = 1
	return z
}

// Set sets z to x and returns z
func (z *Element) Set(x *Element) *Element {
	z[0] = x[0]
	return z
}

// SetUint64 sets z to v mod p and returns z
func (z *Element) SetUint64(v uint64) *Element {
	z[0] = reduce64(v)
	return z
}

// SetRandom sets z to a uniformly sampled element, reading entropy from
// crypto/rand. Sampling is by rejection so the result is unbiased.
func (z *Element) SetRandom() (*Element, error) {
	var buf [4]byte
	for {
		if _, err := rand.Read(buf[:]); err != nil {
			return nil, err
		}
		v := binary.LittleEndian.Uint32(buf[:]) & q
		if v < q {
			z[0] = v
			return z, nil
		}
	}
}

// SetBytes interprets b as the canonical 4-byte little-endian encoding,
// reduces it mod p and returns z. Shorter inputs are zero-padded.
func (z *Element) SetBytes(b []byte) *Element {
	var buf [4]byte
	copy(buf[:], b)
	z[0] = reduce64(uint64(binary.LittleEndian.Uint32(buf[:])))
	return z
}

// Bytes returns the canonical 4-byte little-endian encoding of z
func (z *Element) Bytes() [Bytes]byte {
	var res [Bytes]byte
	binary.LittleEndian.PutUint32(res[:], z[0])
	return res
}

// Uint64 returns the canonical representative of z
func (z *Element) Uint64() uint64 {
	return uint64(z[0])
}

// IsZero returns true iff z == 0
func (z *Element) IsZero() bool {
	return z[0] == 0
}

// IsOne returns true iff z == 1
func (z *Element) IsOne() bool {
	return z[0] == 1
}

// Equal returns true iff z == x
func (z *Element) Equal(x *Element) bool {
	return z[0] == x[0]
}

func (z *Element) String() string {
	return strconv.FormatUint(uint64(z[0]), 10)
}

// Add sets z = x + y mod p and returns z
func (z *Element) Add(x, y *Element) *Element {
	t := uint64(x[0]) + uint64(y[0])
	t = (t & uint64(q)) + (t >> 31)
	if t >= uint64(q) {
		t -= uint64(q)
	}
	z[0] = uint32(t)
	return z
}

// Double sets z = 2x mod p and returns z
func (z *Element) Double(x *Element) *Element {
	return z.Add(x, x)
}

// Sub sets z = x - y mod p and returns z
func (z *Element) Sub(x, y *Element) *Element {
	if x[0] >= y[0] {
		z[0] = x[0] - y[0]
	} else {
		z[0] = q - y[0] + x[0]
	}
	return z
}

// Neg sets z = -x mod p and returns z
func (z *Element) Neg(x *Element) *Element {
	if x[0] == 0 {
		z[0] = 0
	} else {
		z[0] = q - x[0]
	}
	return z
}

// Mul sets z = x * y mod p and returns z
func (z *Element) Mul(x, y *Element) *Element {
	z[0] = reduce64(uint64(x[0]) * uint64(y[0]))
	return z
}

// Square sets z = x * x mod p and returns z
func (z *Element) Square(x *Element) *Element {
	return z.Mul(x, x)
}

// Exp sets z = x^e mod p and returns z
func (z *Element) Exp(x Element, e *big.Int) *Element {
	if e.Sign() == 0 {
		return z.SetOne()
	}
	res := One()
	for i := e.BitLen() - 1; i >= 0; i-- {
		res.Square(&res)
		if e.Bit(i) == 1 {
			res.Mul(&res, &x)
		}
	}
	return z.Set(&res)
}

// Inverse sets z = x^-1 mod p via Fermat (x^(p-2)) with a fixed addition
// chain, and returns z. Inverting 0 fails with ErrDivisionByZero.
//
// The chain exploits p - 2 = (2^29 - 1) * 4 + 1: build x^(2^29 - 1) out of
// runs of ones, then two squarings and a final multiply.
func (z *Element) Inverse(x *Element) (*Element, error) {
	if x.IsZero() {
		return nil, ErrDivisionByZero
	}

	sqMul := func(a Element, n int, b *Element) Element {
		for i := 0; i < n; i++ {
			a.Square(&a)
		}
		a.Mul(&a, b)
		return a
	}

	x1 := *x
	x2 := sqMul(x1, 1, &x1)   // 2 ones
	x4 := sqMul(x2, 2, &x2)   // 4 ones
	x8 := sqMul(x4, 4, &x4)   // 8 ones
	x16 := sqMul(x8, 8, &x8)  // 16 ones
	x24 := sqMul(x16, 8, &x8) // 24 ones
	x28 := sqMul(x24, 4, &x4) // 28 ones
	x29 := sqMul(x28, 1, &x1) // 29 ones

	res := sqMul(x29, 2, &x1) // (2^29 - 1) * 4 + 1 = p - 2
	return z.Set(&res), nil
}
