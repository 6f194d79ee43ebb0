package crypto

import "crypto/sha256"

// MaxSeeds bounds how many individual seed slices may be folded into a
// Seeds derivation, mirroring the program-derived-address limit.
const MaxSeeds = 32

// Seeds accumulates seed material for deriving an off-curve Pubkey for a
// program-owned account. It is the Go analogue of a "program derived
// address" generator.
type Seeds struct {
	n    int
	data []byte
}

// NewSeeds starts a Seeds accumulator from the given seed slices.
func NewSeeds(seeds ...[]byte) (*Seeds, error) {
	s := &Seeds{}
	if err := s.Add(seeds...); err != nil {
		return nil, err
	}
	return s, nil
}

// Add folds additional seed slices into the accumulator.
func (s *Seeds) Add(seeds ...[]byte) error {
	if s.n+len(seeds) > MaxSeeds {
		return cryptoErr(ErrTooManySeeds, "seed count would exceed the maximum")
	}
	for _, seed := range seeds {
		s.data = append(s.data, seed...)
	}
	s.n += len(seeds)
	return nil
}

// GenerateOffCurve derives a Pubkey from the accumulated seeds plus a
// trailing "bump" byte, trying bumps in ascending order starting at 0 until
// the resulting key falls off the ed25519 curve. It returns the key and the
// bump that produced it.
func (s *Seeds) GenerateOffCurve() (Pubkey, byte, error) {
	for bump := 0; bump < 255; bump++ {
		digest := sha256.Sum256(append(s.data, byte(bump)))
		pubkey, err := PubkeyFromBytes(digest[:])
		if err != nil {
			return Pubkey{}, 0, err
		}
		if !pubkey.IsOnCurve() {
			return pubkey, byte(bump), nil
		}
	}
	return Pubkey{}, 0, cryptoErr(ErrNoOffcurveKeyForSeeds, "no off-curve key found for the given seeds")
}
