package wire

import (
	"encoding/binary"
	"fmt"
)

// Writer accumulates a little-endian, length-prefixed byte stream. All
// variable-length fields (byte slices, strings, nested collections) are
// written as a uint32 length followed by the raw bytes, mirroring the
// fixed-width primitives plus length-prefix scheme used throughout.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{buf: make([]byte, 0, 64)}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) WriteU8(v byte) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteU32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

func (w *Writer) WriteU64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// WriteRaw appends b verbatim, with no length prefix. Used for fixed-size
// fields (a Pubkey, a Signature) whose length is implied by the type.
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteBytes appends a uint32 length prefix followed by b.
func (w *Writer) WriteBytes(b []byte) {
	w.WriteU32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// WriteString appends s as a length-prefixed UTF-8 byte slice.
func (w *Writer) WriteString(s string) {
	w.WriteBytes([]byte(s))
}

// Reader walks a byte slice left to right, consuming fixed and
// length-prefixed fields written by Writer.
type Reader struct {
	b   []byte
	pos int
}

func NewReader(b []byte) *Reader {
	return &Reader{b: b, pos: 0}
}

func (r *Reader) remaining() int {
	if r.pos >= len(r.b) {
		return 0
	}
	return len(r.b) - r.pos
}

func (r *Reader) readExact(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, wireErr(ErrTruncated, fmt.Sprintf("need %d bytes, have %d", n, r.remaining()))
	}
	start := r.pos
	r.pos += n
	return r.b[start:r.pos], nil
}

func (r *Reader) ReadU8() (byte, error) {
	b, err := r.readExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadRaw reads exactly n bytes verbatim, with no length prefix.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.readExact(n)
}

// ReadBytes reads a uint32 length prefix followed by that many bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n > 1<<28 {
		return nil, wireErr(ErrTooLarge, fmt.Sprintf("length prefix %d exceeds sanity bound", n))
	}
	return r.readExact(int(n))
}

func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Done reports whether the whole buffer has been consumed.
func (r *Reader) Done() bool {
	return r.remaining() == 0
}

// ExpectDone fails unless the whole buffer has been consumed, catching
// byte images with trailing garbage.
func (r *Reader) ExpectDone() error {
	if !r.Done() {
		return wireErr(ErrInvalidValue, fmt.Sprintf("%d trailing bytes", r.remaining()))
	}
	return nil
}
