package validator

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"bifrost.dev/node/account"
	"bifrost.dev/node/crypto"
	"bifrost.dev/node/program"
	"bifrost.dev/node/transaction"
	"bifrost.dev/node/vault"
)

// Validator runs the executor loop: it pulls transactions off a Queue,
// applies them to a working set drawn from the Vault under a conservation
// check, and accumulates committed signatures into the current Block.
type Validator struct {
	Vault *vault.Vault
	Queue *Queue

	mu    sync.Mutex
	block *Block
}

// NewValidator wires a fresh Validator around vlt and its queue, starting
// the chain at genesis.
func NewValidator(vlt *vault.Vault, queue *Queue) (*Validator, error) {
	genesis, err := Genesis()
	if err != nil {
		return nil, err
	}
	return &Validator{Vault: vlt, Queue: queue, block: genesis}, nil
}

// CurrentSlot returns the slot the validator is currently accumulating
// transactions into.
func (v *Validator) CurrentSlot() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.block.Slot
}

// RegisterTransaction admits tx into the executor's queue. A transaction
// that is not structurally valid and fully signed is rejected here,
// before it ever reaches the queue.
func (v *Validator) RegisterTransaction(tx *transaction.Transaction) (<-chan Status, error) {
	if !tx.Message.IsValid() {
		return nil, validatorErr(ErrInvalidTransactionSignatures, "message has no accounts or no instructions")
	}
	if err := tx.CheckSigned(); err != nil {
		return nil, validatorErr(ErrInvalidTransactionSignatures, err.Error())
	}
	return v.Queue.Submit(tx), nil
}

// Run drains the queue until ctx is canceled, applying each transaction in
// turn. It is meant to be the sole consumer of its Queue, run from one
// goroutine.
func (v *Validator) Run(ctx context.Context) {
	for {
		s, ok := v.Queue.receive(ctx.Done())
		if !ok {
			log.Printf("validator: executor stopped, queued transactions dropped")
			return
		}
		s.status <- Running
		if err := v.apply(s.tx); err != nil {
			log.Printf("validator: transaction failed: %v", err)
			s.status <- Failed
			continue
		}
		s.status <- Succeeded
	}
}

// apply runs one transaction to completion: admission check, working-set
// assembly, fee debit, instruction dispatch, conservation check, and
// (only on success) a writable-only commit back to the vault.
func (v *Validator) apply(tx *transaction.Transaction) error {
	if err := tx.CheckSigned(); err != nil {
		return validatorErr(ErrInvalidTransactionSignatures, err.Error())
	}

	slot := v.CurrentSlot()
	working, err := v.buildWorkingSet(tx, slot)
	if err != nil {
		return err
	}

	before := sumPrisms(working)

	payerKey, err := tx.Message.GetPayer()
	if err != nil {
		return err
	}
	payerAccount := accountFor(tx, working, payerKey)
	if payerAccount == nil {
		return validatorErrf(ErrInvalidTransactionSignatures, "payer %s missing from working set", payerKey)
	}
	if err := payerAccount.SubPrisms(TransactionFee); err != nil {
		return err
	}

	for _, ci := range tx.Message.Instructions {
		if int(ci.ProgramAccountID) >= len(tx.Message.Accounts) {
			return validatorErrf(ErrInvalidTransactionSignatures, "program index %d out of range", ci.ProgramAccountID)
		}
		programKey := tx.Message.Accounts[ci.ProgramAccountID].Key()
		touched := make([]*account.TransactionAccount, 0, len(ci.Accounts))
		for _, idx := range ci.Accounts {
			if int(idx) >= len(working) {
				return validatorErrf(ErrInvalidTransactionSignatures, "account index %d out of range", idx)
			}
			touched = append(touched, working[idx])
		}
		if err := program.Dispatch(programKey, program.NewAccounts(touched), ci.Data); err != nil {
			return err
		}
	}

	after := sumPrisms(working)
	if before != after+TransactionFee {
		return validatorErr(ErrPrismTotalChanged, fmt.Sprintf("prisms total %d before fee does not match %d after (fee %d)", before, after, TransactionFee))
	}

	if err := v.commitWritable(tx, working, slot); err != nil {
		return err
	}

	sig, err := tx.Signature()
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.block.AddTransaction(sig)
	v.mu.Unlock()
	return nil
}

// buildWorkingSet loads the current prisms balance for every account the
// message references and wraps each in a TransactionAccount view backed
// by its own copy of the balance, so a mid-transaction failure never
// touches the vault.
func (v *Validator) buildWorkingSet(tx *transaction.Transaction, slot uint64) ([]*account.TransactionAccount, error) {
	working := make([]*account.TransactionAccount, len(tx.Message.Accounts))
	balances := make([]uint64, len(tx.Message.Accounts))

	for i, meta := range tx.Message.Accounts {
		if meta.Type() == account.TypeProgram {
			continue
		}
		wallet, err := v.Vault.Get(meta.Key())
		if err != nil {
			return nil, validatorErr(ErrVaultLock, err.Error())
		}
		balances[i] = wallet.Prisms
		acc := account.NewTransactionAccount(meta.Key(), meta.IsSigning(), !meta.IsWritable(), &balances[i])
		working[i] = &acc
	}
	return working, nil
}

// sumPrisms totals the working set's balances, saturating at the top of
// the u64 range instead of wrapping.
func sumPrisms(working []*account.TransactionAccount) uint64 {
	var total uint64
	for _, acc := range working {
		if acc == nil {
			continue
		}
		p := acc.Prisms()
		if total > math.MaxUint64-p {
			return math.MaxUint64
		}
		total += p
	}
	return total
}

func accountFor(tx *transaction.Transaction, working []*account.TransactionAccount, key crypto.Pubkey) *account.TransactionAccount {
	for i, meta := range tx.Message.Accounts {
		if meta.Key() == key {
			return working[i]
		}
	}
	return nil
}

// FinalizeSlot closes out the current slot: it finalizes the live block
// (hashing its committed transactions and advancing to the next slot),
// persists the vault's index and trash, runs compaction for the slot that
// just closed, and returns the finalized block. This is the one exported
// entry point that moves the chain forward a slot; nothing inside the
// executor loop calls it on its own.
func (v *Validator) FinalizeSlot() (Block, error) {
	v.mu.Lock()
	finished := v.block.Finalize()
	v.mu.Unlock()

	if err := v.Vault.Persist(); err != nil {
		return Block{}, err
	}
	if err := v.Vault.Compact(finished.Slot + 1); err != nil {
		return Block{}, err
	}
	return finished, nil
}

// commitWritable persists every writable account's final balance back to
// the vault. Read-only accounts are never written, even if the program
// somehow left their balance untouched; only writable metadata makes an
// account eligible for persistence at all.
func (v *Validator) commitWritable(tx *transaction.Transaction, working []*account.TransactionAccount, slot uint64) error {
	for i, meta := range tx.Message.Accounts {
		if !meta.IsWritable() || working[i] == nil {
			continue
		}
		if err := v.Vault.Save(meta.Key(), account.Wallet{Prisms: working[i].Prisms()}, slot); err != nil {
			return validatorErr(ErrVaultLock, err.Error())
		}
	}
	return nil
}
