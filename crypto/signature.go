package crypto

import (
	"fmt"

	"filippo.io/edwards25519"
	"golang.org/x/crypto/ed25519"
)

const SignatureSize = ed25519.SignatureSize

// Signature is a 64-byte ed25519 signature.
type Signature [SignatureSize]byte

func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureSize {
		return s, cryptoErr(ErrWrongSignatureLength, fmt.Sprintf("expected %d bytes, got %d", SignatureSize, len(b)))
	}
	copy(s[:], b)
	return s, nil
}

// Verify checks the signature against message under key using strict
// ed25519 verification (rejects non-canonical S values and small-order
// points), matching ed25519_dalek's verify_strict.
func (s Signature) Verify(key Pubkey, message []byte) error {
	for _, enc := range [][]byte{key[:], s[:32]} {
		point, err := new(edwards25519.Point).SetBytes(enc)
		if err != nil || new(edwards25519.Point).MultByCofactor(point).Equal(edwards25519.NewIdentityPoint()) == 1 {
			return cryptoErr(ErrSignatureInvalid, "key or signature R is not a valid point of large order")
		}
	}
	if !ed25519.Verify(ed25519.PublicKey(key[:]), message, s[:]) {
		return cryptoErr(ErrSignatureInvalid, "signature does not verify against the given key and message")
	}
	return nil
}

func (s Signature) Bytes() []byte {
	return s[:]
}
