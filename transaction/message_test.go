package transaction

import (
	"bytes"
	"reflect"
	"testing"

	"bifrost.dev/node/account"
)

func TestMessageDeduplicatesAccounts(t *testing.T) {
	payer := mustKeypair(t)
	program := mustProgramKey(t)

	readonlyMeta, err := account.NewWalletMeta(payer.Pubkey(), account.No)
	if err != nil {
		t.Fatalf("readonly meta: %v", err)
	}
	signingMeta, err := account.NewSigningMeta(payer.Pubkey(), account.Yes)
	if err != nil {
		t.Fatalf("signing meta: %v", err)
	}

	m := NewMessage(3)
	if err := m.AddInstruction(NewInstruction(program, []account.Meta{readonlyMeta}, []byte{1})); err != nil {
		t.Fatalf("first instruction: %v", err)
	}
	if err := m.AddInstruction(NewInstruction(program, []account.Meta{signingMeta}, []byte{2})); err != nil {
		t.Fatalf("second instruction: %v", err)
	}

	// One program entry plus one merged wallet entry.
	if len(m.Accounts) != 2 {
		t.Fatalf("expected 2 deduplicated accounts, got %d", len(m.Accounts))
	}
	merged := m.Accounts[1]
	if merged.Key() != payer.Pubkey() {
		t.Fatal("merged entry should keep the shared key")
	}
	if !merged.IsSigning() || !merged.IsWritable() {
		t.Fatal("merge should promote the entry to signing and writable")
	}

	// Both instructions must point at the same merged slot.
	if m.Instructions[0].Accounts[0] != m.Instructions[1].Accounts[0] {
		t.Fatal("both instructions should reference the merged account index")
	}
}

func TestMessageToVecIsDeterministic(t *testing.T) {
	tx, _ := buildSignedTransfer(t)
	if !bytes.Equal(tx.Message.ToVec(), tx.Message.ToVec()) {
		t.Fatal("ToVec should produce identical bytes on every call")
	}
}

func TestMessageRoundTrip(t *testing.T) {
	tx, _ := buildSignedTransfer(t)
	encoded := tx.Message.ToVec()

	decoded, err := DecodeMessage(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded.ToVec(), encoded) {
		t.Fatal("re-encoding the decoded message should reproduce the original bytes")
	}
	if decoded.Slot != tx.Message.Slot {
		t.Fatalf("slot mismatch: %d != %d", decoded.Slot, tx.Message.Slot)
	}
	if !reflect.DeepEqual(decoded.Instructions, tx.Message.Instructions) {
		t.Fatal("instructions should survive the round trip")
	}
}

func TestDecodeMessageRejectsTampering(t *testing.T) {
	tx, _ := buildSignedTransfer(t)
	encoded := tx.Message.ToVec()

	t.Run("truncated", func(t *testing.T) {
		if _, err := DecodeMessage(encoded[:len(encoded)-1]); err == nil {
			t.Fatal("expected a truncated message to fail")
		}
	})
	t.Run("trailing bytes", func(t *testing.T) {
		if _, err := DecodeMessage(append(append([]byte{}, encoded...), 0)); err == nil {
			t.Fatal("expected trailing bytes to fail")
		}
	})
	t.Run("out of range account index", func(t *testing.T) {
		m := tx.Message
		m.Instructions = append([]CompiledInstruction{}, m.Instructions...)
		m.Instructions[0] = CompiledInstruction{
			ProgramAccountID: m.Instructions[0].ProgramAccountID,
			Accounts:         []uint32{99},
			Data:             m.Instructions[0].Data,
		}
		if _, err := DecodeMessage(m.ToVec()); err == nil {
			t.Fatal("expected an out-of-range account index to fail decode")
		}
	})
}

func TestTransactionRoundTrip(t *testing.T) {
	tx, _ := buildSignedTransfer(t)
	encoded := tx.ToVec()

	decoded, err := DecodeTransaction(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(decoded.ToVec(), encoded) {
		t.Fatal("re-encoding the decoded transaction should reproduce the original bytes")
	}
	if len(decoded.Signatures) != len(tx.Signatures) || decoded.Signatures[0] != tx.Signatures[0] {
		t.Fatal("signatures should survive the round trip")
	}
	if err := decoded.CheckSigned(); err != nil {
		t.Fatalf("decoded transaction should still validate: %v", err)
	}
}
