package program

import "bifrost.dev/node/account"

// Accounts is a forward-only cursor over the working-set accounts an
// instruction declared, letting a program pull them out in the order it
// expects (payer first, then receiver, and so on) without indexing by
// hand.
type Accounts struct {
	items []*account.TransactionAccount
	pos   int
}

func NewAccounts(items []*account.TransactionAccount) *Accounts {
	return &Accounts{items: items}
}

// Next returns the next account in the list, or ErrMissingAccounts if the
// instruction didn't declare enough accounts for the program to proceed.
func (a *Accounts) Next() (*account.TransactionAccount, error) {
	if a.pos >= len(a.items) {
		return nil, programErr(ErrMissingAccounts, "instruction did not supply enough accounts")
	}
	acc := a.items[a.pos]
	a.pos++
	return acc, nil
}
