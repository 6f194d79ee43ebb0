package transaction

import (
	"fmt"

	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// Transaction pairs a Message with the signatures attesting to it. The
// payer's signature always occupies index 0: it is both the transaction's
// identity (Signature()) and the account the executor debits the flat
// network fee from.
type Transaction struct {
	Signatures []crypto.Signature
	Message    Message
}

// NewTransaction wraps msg in an unsigned Transaction.
func NewTransaction(msg Message) *Transaction {
	return &Transaction{Message: msg}
}

// Add appends ix to the underlying message. Any existing signatures are
// dropped, since they no longer attest to the (now different) message
// bytes.
func (t *Transaction) Add(ix Instruction) error {
	if err := t.Message.AddInstruction(ix); err != nil {
		return err
	}
	t.Signatures = nil
	return nil
}

// Sign signs the current message bytes with payer and every additional
// signer, placing the payer's signature at index 0.
func (t *Transaction) Sign(payer *crypto.Keypair, signers ...*crypto.Keypair) error {
	payerKey, err := t.Message.GetPayer()
	if err != nil {
		return err
	}
	if payer.Pubkey() != payerKey {
		return txErr(ErrUnexpectedSigner, fmt.Sprintf("keypair %s is not the message's payer %s", payer.Pubkey(), payerKey))
	}

	msgBytes := t.Message.ToVec()
	sigs := make([]crypto.Signature, 0, 1+len(signers))
	sigs = append(sigs, payer.Sign(msgBytes))
	for _, kp := range signers {
		sigs = append(sigs, kp.Sign(msgBytes))
	}
	t.Signatures = sigs
	return nil
}

// Signature returns the transaction's identity: the payer's signature,
// always at index 0.
func (t *Transaction) Signature() (crypto.Signature, error) {
	if len(t.Signatures) == 0 {
		return crypto.Signature{}, txErr(ErrNoSigners, "transaction has not been signed")
	}
	return t.Signatures[0], nil
}

// GetSigners returns the public keys of every signing account the message
// references.
func (t *Transaction) GetSigners() []crypto.Pubkey {
	var signers []crypto.Pubkey
	for _, meta := range t.Message.Accounts {
		if meta.IsSigning() {
			signers = append(signers, meta.Key())
		}
	}
	return signers
}

// ValidateSigners checks that every signing account named by the message
// has at least one matching signature among t.Signatures (not a
// positional 1:1 mapping; a signer just needs some signature that
// verifies under its key).
func (t *Transaction) ValidateSigners() error {
	signers := t.GetSigners()
	if len(signers) == 0 {
		return txErr(ErrNoSigners, "message has no signing accounts")
	}
	if len(t.Signatures) != len(signers) {
		return txErr(ErrWrongSignatureCount, fmt.Sprintf("expected %d signatures, got %d", len(signers), len(t.Signatures)))
	}

	msgBytes := t.Message.ToVec()
	for _, signer := range signers {
		found := false
		for _, sig := range t.Signatures {
			if sig.Verify(signer, msgBytes) == nil {
				found = true
				break
			}
		}
		if !found {
			return txErr(ErrSignaturesMismatch, fmt.Sprintf("no valid signature found for signer %s", signer))
		}
	}
	return nil
}

// CheckSigned is ValidateSigners plus the payer-at-index-0 invariant: it
// is the gate the validator runs before admitting a transaction.
func (t *Transaction) CheckSigned() error {
	payerKey, err := t.Message.GetPayer()
	if err != nil {
		return err
	}
	if len(t.Signatures) == 0 {
		return txErr(ErrNoSigners, "transaction has not been signed")
	}
	if t.Signatures[0].Verify(payerKey, t.Message.ToVec()) != nil {
		return txErr(ErrUnexpectedSigner, "signature at index 0 does not belong to the payer")
	}
	return t.ValidateSigners()
}

// IsReady reports whether the transaction is structurally valid and fully
// signed.
func (t *Transaction) IsReady() bool {
	return t.Message.IsValid() && t.CheckSigned() == nil
}

// ToVec returns the canonical byte image of the whole transaction: the
// signature list followed by the message bytes.
func (t *Transaction) ToVec() []byte {
	w := wire.NewWriter()
	w.WriteU32(uint32(len(t.Signatures)))
	for _, sig := range t.Signatures {
		w.WriteRaw(sig[:])
	}
	w.WriteRaw(t.Message.ToVec())
	return w.Bytes()
}

// DecodeTransaction parses the canonical byte image produced by ToVec.
func DecodeTransaction(b []byte) (*Transaction, error) {
	r := wire.NewReader(b)
	sigCount, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	t := &Transaction{}
	for i := uint32(0); i < sigCount; i++ {
		sigBytes, err := r.ReadRaw(crypto.SignatureSize)
		if err != nil {
			return nil, err
		}
		sig, err := crypto.SignatureFromBytes(sigBytes)
		if err != nil {
			return nil, err
		}
		t.Signatures = append(t.Signatures, sig)
	}
	msg, err := decodeMessageFrom(r)
	if err != nil {
		return nil, err
	}
	if !r.Done() {
		return nil, txErr(ErrMalformedPayload, "trailing bytes after transaction")
	}
	t.Message = msg
	return t, nil
}
