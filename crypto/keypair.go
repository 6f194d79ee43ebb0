package crypto

import (
	cryptorand "crypto/rand"

	"golang.org/x/crypto/ed25519"
)

// Keypair holds an ed25519 private key. Unlike a process-wide RNG static,
// key generation reads directly from crypto/rand on every call: Go's CSPRNG
// is safe for concurrent use without an application-level lock.
type Keypair struct {
	priv ed25519.PrivateKey
}

// GenerateKeypair creates a new random Keypair.
func GenerateKeypair() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(cryptorand.Reader)
	if err != nil {
		return nil, cryptoErr(ErrSignatureInvalid, err.Error())
	}
	return &Keypair{priv: priv}, nil
}

// Pubkey returns the public key associated with this Keypair.
func (k *Keypair) Pubkey() Pubkey {
	var p Pubkey
	copy(p[:], k.priv.Public().(ed25519.PublicKey))
	return p
}

// Sign produces a Signature over message using the private key.
func (k *Keypair) Sign(message []byte) Signature {
	var s Signature
	copy(s[:], ed25519.Sign(k.priv, message))
	return s
}
