package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(7)
	w.WriteU32(1 << 20)
	w.WriteU64(1 << 40)
	w.WriteBytes([]byte("payload"))
	w.WriteString("bifrost")
	w.WriteRaw([]byte{0xde, 0xad})

	r := NewReader(w.Bytes())
	if v, err := r.ReadU8(); err != nil || v != 7 {
		t.Fatalf("u8: got %d, err %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 1<<20 {
		t.Fatalf("u32: got %d, err %v", v, err)
	}
	if v, err := r.ReadU64(); err != nil || v != 1<<40 {
		t.Fatalf("u64: got %d, err %v", v, err)
	}
	if b, err := r.ReadBytes(); err != nil || !bytes.Equal(b, []byte("payload")) {
		t.Fatalf("bytes: got %q, err %v", b, err)
	}
	if s, err := r.ReadString(); err != nil || s != "bifrost" {
		t.Fatalf("string: got %q, err %v", s, err)
	}
	if b, err := r.ReadRaw(2); err != nil || !bytes.Equal(b, []byte{0xde, 0xad}) {
		t.Fatalf("raw: got %x, err %v", b, err)
	}
	if !r.Done() {
		t.Fatal("expected the reader to be fully consumed")
	}
}

func TestReaderFailsOnTruncation(t *testing.T) {
	w := NewWriter()
	w.WriteU64(42)
	full := w.Bytes()

	for cut := 0; cut < len(full); cut++ {
		r := NewReader(full[:cut])
		if _, err := r.ReadU64(); err == nil {
			t.Fatalf("expected reading %d of %d bytes to fail", cut, len(full))
		}
	}
}

func TestReadBytesRejectsTamperedLength(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte("abc"))
	buf := w.Bytes()

	// Inflate the length prefix past the actual payload.
	buf[0] = 0xff
	r := NewReader(buf)
	if _, err := r.ReadBytes(); err == nil {
		t.Fatal("expected an inflated length prefix to fail")
	}

	// An absurd length prefix trips the sanity bound before allocation.
	w2 := NewWriter()
	w2.WriteU32(1 << 30)
	r2 := NewReader(w2.Bytes())
	_, err := r2.ReadBytes()
	var werr *Error
	if !errors.As(err, &werr) || werr.Code != ErrTooLarge {
		t.Fatalf("expected %s, got %v", ErrTooLarge, err)
	}
}
