package program

import (
	"testing"

	"bifrost.dev/node/account"
	"bifrost.dev/node/crypto"
)

func newTestAccount(key crypto.Pubkey, isSigner bool, balance *uint64) *account.TransactionAccount {
	acc := account.NewTransactionAccount(key, isSigner, false, balance)
	return &acc
}

func TestSystemProgramTransferMovesPrisms(t *testing.T) {
	payerKp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	receiverKp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}

	payerBal := uint64(100)
	receiverBal := uint64(0)
	accounts := NewAccounts([]*account.TransactionAccount{
		newTestAccount(payerKp.Pubkey(), true, &payerBal),
		newTestAccount(receiverKp.Pubkey(), false, &receiverBal),
	})

	if err := Dispatch(SystemProgram, accounts, EncodeTransfer(40)); err != nil {
		t.Fatalf("dispatch transfer: %v", err)
	}
	if payerBal != 60 {
		t.Fatalf("expected payer balance 60, got %d", payerBal)
	}
	if receiverBal != 40 {
		t.Fatalf("expected receiver balance 40, got %d", receiverBal)
	}
}

func TestSystemProgramTransferRequiresSigner(t *testing.T) {
	payerKp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	receiverKp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}

	payerBal := uint64(100)
	receiverBal := uint64(0)
	accounts := NewAccounts([]*account.TransactionAccount{
		newTestAccount(payerKp.Pubkey(), false, &payerBal),
		newTestAccount(receiverKp.Pubkey(), false, &receiverBal),
	})

	if err := Dispatch(SystemProgram, accounts, EncodeTransfer(40)); err == nil {
		t.Fatal("expected transfer without a signing payer to fail")
	}
}

func TestTestingProgramBurnsWithoutCrediting(t *testing.T) {
	payerKp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	payerBal := uint64(100)
	accounts := NewAccounts([]*account.TransactionAccount{
		newTestAccount(payerKp.Pubkey(), true, &payerBal),
	})

	if err := Dispatch(TestingProgram, accounts, EncodeBurnPrisms(30)); err != nil {
		t.Fatalf("dispatch burn: %v", err)
	}
	if payerBal != 70 {
		t.Fatalf("expected payer balance 70 after burn, got %d", payerBal)
	}
}

func TestDispatchUnknownProgram(t *testing.T) {
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	accounts := NewAccounts(nil)
	if err := Dispatch(kp.Pubkey(), accounts, nil); err == nil {
		t.Fatal("expected dispatch to an unregistered program to fail")
	}
}
