package sumcheck

import (
	"crypto/sha256"
	"fmt"
	"hash"

	"github.com/rs/zerolog"

	"github.com/zkprover/sumcheck-m31/logger"
)

type config struct {
	hashFunc    func() hash.Hash
	minTaskSize int
	log         zerolog.Logger
}

// Option configures a proof or verification run
type Option func(*config) error

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		hashFunc:    sha256.New,
		minTaskSize: 1 << 10,
		log:         logger.Logger(),
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithChallengeHash sets the hash function backing the Fiat-Shamir
// transcript. The default is sha256. Prover and verifier must agree on it,
// and it never changes mid-proof.
func WithChallengeHash(h func() hash.Hash) Option {
	return func(c *config) error {
		if h == nil {
			return fmt.Errorf("nil challenge hash")
		}
		c.hashFunc = h
		return nil
	}
}

// WithMinTaskSize sets the minimum number of table entries a parallel job
// processes. Tables below this size run inline on the orchestrating
// goroutine.
func WithMinTaskSize(n int) Option {
	return func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("invalid min task size %v", n)
		}
		c.minTaskSize = n
		return nil
	}
}

// WithLogger overrides the logger used by this run
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) error {
		c.log = l
		return nil
	}
}
