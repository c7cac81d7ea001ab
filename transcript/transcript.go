// Package transcript implements the Fiat-Shamir coupling between sumcheck
// rounds: an append-only state absorbing round polynomials and squeezing
// extension-field challenges. Prover and verifier run it independently and
// must obtain bit-identical challenges from identical absorb/squeeze
// sequences.
package transcript

import (
	"fmt"
	"hash"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/zkprover/sumcheck-m31/field/m31ext3"
)

// Transcript wraps a gnark-crypto fiat-shamir transcript with one named
// challenge per sumcheck round. Appended data binds to the upcoming
// challenge; the library chains the previous digest into every challenge so
// no two distinct call orderings collide.
type Transcript struct {
	fs    *fiatshamir.Transcript
	names []string
	round int
}

// New creates a transcript able to squeeze nChallenges challenges, hashing
// with h. The hash choice is fixed for the transcript's lifetime and must
// produce at least 12 bytes per digest, one base-field word per extension
// coordinate.
func New(h func() hash.Hash, nChallenges int) (*Transcript, error) {
	if nChallenges <= 0 {
		return nil, fmt.Errorf("transcript needs at least one challenge, got %v", nChallenges)
	}
	hasher := h()
	if hasher.Size() < m31ext3.Bytes {
		return nil, fmt.Errorf("hash size %v is too small to derive an extension element (need %v bytes)",
			hasher.Size(), m31ext3.Bytes)
	}

	names := make([]string, nChallenges)
	for i := range names {
		names[i] = fmt.Sprintf("sumcheck.round.%d", i)
	}

	return &Transcript{
		fs:    fiatshamir.NewTranscript(hasher, names...),
		names: names,
	}, nil
}

// AppendBytes absorbs raw bytes, in call order. Appending after the final
// squeeze is an error.
func (t *Transcript) AppendBytes(b []byte) error {
	if t.round >= len(t.names) {
		return fmt.Errorf("all %v challenges have been squeezed, cannot absorb more data", len(t.names))
	}
	return t.fs.Bind(t.names[t.round], b)
}

// AppendElement absorbs the canonical encoding of one field element
func (t *Transcript) AppendElement(e *m31ext3.Element) error {
	buf := e.Bytes()
	return t.AppendBytes(buf[:])
}

// AppendElements absorbs a sequence of field elements, in order
func (t *Transcript) AppendElements(es []m31ext3.Element) error {
	for i := range es {
		if err := t.AppendElement(&es[i]); err != nil {
			return err
		}
	}
	return nil
}

// Challenge squeezes the next challenge, derived from all prior absorbed
// data and prior squeezes. The digest is split into little-endian 4-byte
// words; coordinate i of the challenge is word i reduced mod p.
func (t *Transcript) Challenge() (m31ext3.Element, error) {
	if t.round >= len(t.names) {
		return m31ext3.Element{}, fmt.Errorf("all %v challenges have been squeezed", len(t.names))
	}

	digest, err := t.fs.ComputeChallenge(t.names[t.round])
	if err != nil {
		return m31ext3.Element{}, fmt.Errorf("computing challenge %v: %w", t.names[t.round], err)
	}
	t.round++

	var c m31ext3.Element
	c.A0.SetBytes(digest[0:4])
	c.A1.SetBytes(digest[4:8])
	c.A2.SetBytes(digest[8:12])
	return c, nil
}
