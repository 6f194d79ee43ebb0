package account

import (
	"errors"
	"math"
	"testing"

	"bifrost.dev/node/wire"
)

func TestWalletEncodeDecodeRoundTrip(t *testing.T) {
	for _, prisms := range []uint64{0, 1, 5000, math.MaxUint64} {
		w := Wallet{Prisms: prisms}
		got, err := DecodeWallet(w.Encode())
		if err != nil {
			t.Fatalf("decode %d: %v", prisms, err)
		}
		if got != w {
			t.Fatalf("round trip mismatch: %+v != %+v", got, w)
		}
	}
}

func TestDecodeWalletRejectsTruncation(t *testing.T) {
	b := Wallet{Prisms: 9}.Encode()
	if _, err := DecodeWallet(b[:len(b)-1]); err == nil {
		t.Fatal("expected a truncated wallet image to fail")
	}
}

func TestTransactionAccountArithmetic(t *testing.T) {
	key := mustOnCurveKey(t)
	balance := uint64(100)
	acc := NewTransactionAccount(key, true, false, &balance)

	if err := acc.AddPrisms(50); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := acc.SubPrisms(30); err != nil {
		t.Fatalf("sub: %v", err)
	}
	if acc.Prisms() != 120 {
		t.Fatalf("expected 120, got %d", acc.Prisms())
	}
	if balance != 120 {
		t.Fatal("mutations should write through to the working-set slot")
	}
}

func TestTransactionAccountChecksOverflow(t *testing.T) {
	key := mustOnCurveKey(t)

	balance := uint64(math.MaxUint64 - 1)
	acc := NewTransactionAccount(key, true, false, &balance)
	err := acc.AddPrisms(2)
	var accErr *Error
	if !errors.As(err, &accErr) || accErr.Code != ErrArithmeticOverflow {
		t.Fatalf("expected %s on overflow, got %v", ErrArithmeticOverflow, err)
	}

	balance = 5
	err = acc.SubPrisms(6)
	if !errors.As(err, &accErr) || accErr.Code != ErrArithmeticOverflow {
		t.Fatalf("expected %s on underflow, got %v", ErrArithmeticOverflow, err)
	}
	if balance != 5 {
		t.Fatalf("failed arithmetic should leave the balance untouched, got %d", balance)
	}
}

func TestTransactionAccountRejectsReadOnlyWrites(t *testing.T) {
	key := mustOnCurveKey(t)
	balance := uint64(100)
	acc := NewTransactionAccount(key, false, true, &balance)

	var accErr *Error
	for name, call := range map[string]func() error{
		"add": func() error { return acc.AddPrisms(1) },
		"sub": func() error { return acc.SubPrisms(1) },
		"set": func() error { return acc.SetPrisms(0) },
	} {
		if err := call(); !errors.As(err, &accErr) || accErr.Code != ErrModificationOfReadOnlyAcct {
			t.Fatalf("%s: expected %s, got %v", name, ErrModificationOfReadOnlyAcct, err)
		}
	}
	if balance != 100 {
		t.Fatalf("read-only balance should never change, got %d", balance)
	}
}

func TestMetaEncodeDecodeRoundTrip(t *testing.T) {
	oncurve := mustOnCurveKey(t)
	offcurve := mustOffCurveKey(t)

	signing, err := NewSigningMeta(oncurve, Yes)
	if err != nil {
		t.Fatalf("signing meta: %v", err)
	}
	wallet, err := NewWalletMeta(oncurve, No)
	if err != nil {
		t.Fatalf("wallet meta: %v", err)
	}
	prog, err := NewProgramMeta(offcurve)
	if err != nil {
		t.Fatalf("program meta: %v", err)
	}

	for _, meta := range []Meta{signing, wallet, prog} {
		w := wire.NewWriter()
		meta.EncodeTo(w)
		got, err := DecodeMetaFrom(wire.NewReader(w.Bytes()))
		if err != nil {
			t.Fatalf("decode %s meta: %v", meta.Type(), err)
		}
		if got != meta {
			t.Fatalf("round trip mismatch for %s meta", meta.Type())
		}
	}
}
