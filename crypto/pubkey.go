package crypto

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

const PubkeySize = 32

// Pubkey is a 32-byte ed25519-shaped public key. It may or may not sit on
// the curve: wallet and signing accounts must be on-curve, program accounts
// derived through Seeds must not be.
type Pubkey [PubkeySize]byte

// PubkeyFromBytes copies b into a Pubkey, failing with ErrWrongKeyLength
// unless b is exactly 32 bytes long. It does not check whether the key is
// on the curve.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var p Pubkey
	if len(b) != PubkeySize {
		return p, cryptoErr(ErrWrongKeyLength, fmt.Sprintf("expected %d bytes, got %d", PubkeySize, len(b)))
	}
	copy(p[:], b)
	return p, nil
}

// ParsePubkey decodes a base58-encoded public key.
func ParsePubkey(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, cryptoErr(ErrBase58Decoding, err.Error())
	}
	return PubkeyFromBytes(b)
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// IsOnCurve reports whether the key is a valid compressed point on the
// ed25519 curve. Wallet and signing keys must satisfy this; program keys
// derived via Seeds are chosen specifically to fail it.
func (p Pubkey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func (p Pubkey) Bytes() []byte {
	return p[:]
}
