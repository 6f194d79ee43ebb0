package account

import (
	"testing"

	"bifrost.dev/node/crypto"
)

func mustOnCurveKey(t *testing.T) crypto.Pubkey {
	t.Helper()
	kp, err := crypto.GenerateKeypair()
	if err != nil {
		t.Fatalf("generate keypair: %v", err)
	}
	return kp.Pubkey()
}

func mustOffCurveKey(t *testing.T) crypto.Pubkey {
	t.Helper()
	seeds, err := crypto.NewSeeds([]byte("key1"))
	if err != nil {
		t.Fatalf("new seeds: %v", err)
	}
	key, _, err := seeds.GenerateOffCurve()
	if err != nil {
		t.Fatalf("generate off curve: %v", err)
	}
	return key
}

func TestOnlyAllowProgramsOffCurve(t *testing.T) {
	offcurve := mustOffCurveKey(t)
	oncurve := mustOnCurveKey(t)

	if _, err := NewProgramMeta(offcurve); err != nil {
		t.Fatalf("off-curve program meta should succeed: %v", err)
	}
	if _, err := NewProgramMeta(oncurve); err == nil {
		t.Fatal("on-curve program meta should fail")
	}
}

func TestWalletsMustBeOnCurve(t *testing.T) {
	offcurve := mustOffCurveKey(t)
	oncurve := mustOnCurveKey(t)

	meta, err := NewWalletMeta(oncurve, No)
	if err != nil {
		t.Fatalf("on-curve wallet meta should succeed: %v", err)
	}
	if meta.IsWritable() {
		t.Fatal("expected read-only meta")
	}
	if _, err := NewWalletMeta(offcurve, No); err == nil {
		t.Fatal("off-curve wallet meta should fail")
	}
}

func TestAccountsMustBeCompatibleToMerge(t *testing.T) {
	offcurve := mustOffCurveKey(t)
	oncurve := mustOnCurveKey(t)
	program, err := NewProgramMeta(offcurve)
	if err != nil {
		t.Fatalf("program meta: %v", err)
	}
	wallet, err := NewWalletMeta(oncurve, No)
	if err != nil {
		t.Fatalf("wallet meta: %v", err)
	}

	if err := program.Merge(wallet); err == nil {
		t.Fatal("expected merge of incompatible types to fail")
	}
}

func TestMergeMakesWritableAndSigning(t *testing.T) {
	key := mustOnCurveKey(t)
	meta1, err := NewWalletMeta(key, No)
	if err != nil {
		t.Fatalf("meta1: %v", err)
	}
	meta2, err := NewWalletMeta(key, Yes)
	if err != nil {
		t.Fatalf("meta2: %v", err)
	}
	meta2.kind = TypeSigning

	if err := meta1.Merge(meta2); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !meta1.IsWritable() {
		t.Fatal("expected merged meta to be writable")
	}
	if !meta1.IsSigning() {
		t.Fatal("expected merged meta to be signing")
	}
}
