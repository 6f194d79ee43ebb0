package account

import (
	"math"

	"bifrost.dev/node/crypto"
)

// TransactionAccount is the mutable view a program receives for one account
// referenced by the instruction it's executing: a key, whether the
// transaction's signers include it, whether the executor marked it
// read-only, and a pointer into the working set's prisms balance.
type TransactionAccount struct {
	Key      crypto.Pubkey
	IsSigner bool
	ReadOnly bool
	prisms   *uint64
}

// NewTransactionAccount builds a working-set view over balance, which must
// point at the account's live prisms field in the executor's working set.
func NewTransactionAccount(key crypto.Pubkey, isSigner, readOnly bool, balance *uint64) TransactionAccount {
	return TransactionAccount{Key: key, IsSigner: isSigner, ReadOnly: readOnly, prisms: balance}
}

func (a *TransactionAccount) Prisms() uint64 {
	return *a.prisms
}

// SetPrisms overwrites the account's balance outright. Rejected for
// read-only accounts.
func (a *TransactionAccount) SetPrisms(value uint64) error {
	if a.ReadOnly {
		return accountErr(ErrModificationOfReadOnlyAcct, a.Key.String())
	}
	*a.prisms = value
	return nil
}

// AddPrisms credits amount to the account's balance, checked against
// overflow.
func (a *TransactionAccount) AddPrisms(amount uint64) error {
	if a.ReadOnly {
		return accountErr(ErrModificationOfReadOnlyAcct, a.Key.String())
	}
	if *a.prisms > math.MaxUint64-amount {
		return accountErr(ErrArithmeticOverflow, "add_prisms overflow")
	}
	*a.prisms += amount
	return nil
}

// SubPrisms debits amount from the account's balance, checked against
// underflow.
func (a *TransactionAccount) SubPrisms(amount uint64) error {
	if a.ReadOnly {
		return accountErr(ErrModificationOfReadOnlyAcct, a.Key.String())
	}
	if *a.prisms < amount {
		return accountErr(ErrArithmeticOverflow, "sub_prisms underflow")
	}
	*a.prisms -= amount
	return nil
}
