package validator

import (
	"testing"

	"bifrost.dev/node/crypto"
)

func TestGenesisBlock(t *testing.T) {
	b, err := Genesis()
	if err != nil {
		t.Fatalf("genesis: %v", err)
	}
	if b.Slot != 1 {
		t.Fatalf("expected genesis slot 1, got %d", b.Slot)
	}
	if b.Hash != (BlockHash{}) {
		t.Fatal("expected genesis hash to be zero")
	}
	wantParent, err := ParseBlockHash(GenesisParent)
	if err != nil {
		t.Fatalf("parse genesis parent: %v", err)
	}
	if b.Parent != wantParent {
		t.Fatal("genesis parent mismatch")
	}
}

func TestFinalizeAdvancesSlotAndChainsHash(t *testing.T) {
	b, err := Genesis()
	if err != nil {
		t.Fatalf("genesis: %v", err)
	}
	var sig crypto.Signature
	sig[0] = 1
	b.AddTransaction(sig)

	emitted := b.Finalize()

	if emitted.Slot != 1 {
		t.Fatalf("expected emitted slot 1, got %d", emitted.Slot)
	}
	if len(emitted.Transactions) != 1 {
		t.Fatalf("expected emitted block to carry 1 transaction, got %d", len(emitted.Transactions))
	}
	if emitted.Hash == (BlockHash{}) {
		t.Fatal("expected a non-zero hash for the emitted block")
	}

	if b.Slot != 2 {
		t.Fatalf("expected live block to advance to slot 2, got %d", b.Slot)
	}
	if len(b.Transactions) != 0 {
		t.Fatal("expected live block's transactions to be cleared")
	}
	if b.Parent != emitted.Hash {
		t.Fatal("expected live block's parent to become the emitted hash")
	}

	same := emitted
	if !emitted.Equal(&same) {
		t.Fatal("blocks with the same hash should be equal")
	}
	if emitted.Equal(b) {
		t.Fatal("the live block should not equal the emitted one")
	}
}

func TestParseBlockHashRejectsWrongLength(t *testing.T) {
	if _, err := ParseBlockHash("2"); err == nil {
		t.Fatal("expected parsing a too-short hash to fail")
	}
}
