package account

import (
	"fmt"

	"bifrost.dev/node/crypto"
	"bifrost.dev/node/wire"
)

// Meta is the metadata an instruction carries for each account it
// references: the account's key, its Type, and whether the instruction
// needs to write to it.
type Meta struct {
	key      crypto.Pubkey
	kind     Type
	writable Writable
}

// NewSigningMeta builds metadata for a signing wallet account. key must be
// on the ed25519 curve.
func NewSigningMeta(key crypto.Pubkey, writable Writable) (Meta, error) {
	if err := checkOnCurve(key); err != nil {
		return Meta{}, err
	}
	return Meta{key: key, kind: TypeSigning, writable: writable}, nil
}

// NewWalletMeta builds metadata for a plain wallet account. key must be on
// the ed25519 curve.
func NewWalletMeta(key crypto.Pubkey, writable Writable) (Meta, error) {
	if err := checkOnCurve(key); err != nil {
		return Meta{}, err
	}
	return Meta{key: key, kind: TypeWallet, writable: writable}, nil
}

// NewProgramMeta builds metadata for a program account. key must NOT be on
// the ed25519 curve: program addresses are derived, never signable.
func NewProgramMeta(key crypto.Pubkey) (Meta, error) {
	if key.IsOnCurve() {
		return Meta{}, accountErr(ErrMetaAccountCreation, fmt.Sprintf("program key %s must not be on-curve", key))
	}
	return Meta{key: key, kind: TypeProgram, writable: No}, nil
}

func checkOnCurve(key crypto.Pubkey) error {
	if !key.IsOnCurve() {
		return accountErr(ErrMetaAccountCreation, fmt.Sprintf("wallet key %s must be on-curve", key))
	}
	return nil
}

// Merge folds other into m: the result is writable if either side is, and
// becomes a Signing account if either side is. The two metas must describe
// compatible account types.
func (m *Meta) Merge(other Meta) error {
	if !m.kind.IsCompatible(other.kind) {
		return accountErr(ErrMergeIncompatibleTypes, fmt.Sprintf("cannot merge %s with %s", m.kind, other.kind))
	}
	if other.IsWritable() {
		m.writable = Yes
	}
	if other.IsSigning() {
		m.kind = TypeSigning
	}
	return nil
}

// EncodeTo appends m's canonical byte image to w: the raw 32-byte key, a
// one-byte type tag, and a one-byte writable flag.
func (m Meta) EncodeTo(w *wire.Writer) {
	w.WriteRaw(m.key[:])
	w.WriteU8(byte(m.kind))
	if m.writable == Yes {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// DecodeMetaFrom parses one Meta written by EncodeTo, going back through
// the constructors so the on-curve invariants hold for decoded metadata
// exactly as they do for freshly built metadata.
func DecodeMetaFrom(r *wire.Reader) (Meta, error) {
	keyBytes, err := r.ReadRaw(crypto.PubkeySize)
	if err != nil {
		return Meta{}, err
	}
	key, err := crypto.PubkeyFromBytes(keyBytes)
	if err != nil {
		return Meta{}, err
	}
	kindTag, err := r.ReadU8()
	if err != nil {
		return Meta{}, err
	}
	writableTag, err := r.ReadU8()
	if err != nil {
		return Meta{}, err
	}
	if writableTag > 1 {
		return Meta{}, accountErr(ErrMetaAccountCreation, fmt.Sprintf("invalid writable flag %d", writableTag))
	}
	writable := Writable(writableTag == 1)

	switch Type(kindTag) {
	case TypeProgram:
		if writable == Yes {
			return Meta{}, accountErr(ErrMetaAccountCreation, "program accounts cannot be writable")
		}
		return NewProgramMeta(key)
	case TypeSigning:
		return NewSigningMeta(key, writable)
	case TypeWallet:
		return NewWalletMeta(key, writable)
	default:
		return Meta{}, accountErr(ErrMetaAccountCreation, fmt.Sprintf("unknown account type tag %d", kindTag))
	}
}

func (m Meta) IsSigning() bool {
	return m.kind == TypeSigning
}

func (m Meta) IsWritable() bool {
	return m.writable == Yes
}

func (m Meta) Key() crypto.Pubkey {
	return m.key
}

func (m Meta) Type() Type {
	return m.kind
}
