package savegame

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	fileMagic   uint32 = 0x54574b53 // "TWKS"
	fileVersion uint8  = 1
)

// Writer serializes save records field by field in little-endian order.
// The on-disk layout is owned by these helpers, not by struct memory layout.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteU8(v uint8) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

func (w *Writer) WriteBool(v bool) error {
	var b uint8
	if v {
		b = 1
	}
	return w.WriteU8(b)
}

func (w *Writer) WriteU16(v uint16) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

func (w *Writer) WriteS16(v int16) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

func (w *Writer) WriteU32(v uint32) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

func (w *Writer) WriteS32(v int32) error {
	return binary.Write(w.w, binary.LittleEndian, v)
}

// Reader mirrors Writer for deserialization.
type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

func (r *Reader) ReadU8() (uint8, error) {
	var v uint8
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	return v != 0, err
}

func (r *Reader) ReadU16() (uint16, error) {
	var v uint16
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *Reader) ReadS16() (int16, error) {
	var v int16
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *Reader) ReadU32() (uint32, error) {
	var v uint32
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

func (r *Reader) ReadS32() (int32, error) {
	var v int32
	err := binary.Read(r.r, binary.LittleEndian, &v)
	return v, err
}

// Skip discards n payload bytes, used to step over records of unknown kinds.
func (r *Reader) Skip(n uint32) error {
	if n == 0 {
		return nil
	}
	if _, err := io.CopyN(io.Discard, r.r, int64(n)); err != nil {
		return fmt.Errorf("savegame: skip %d bytes: %w", n, err)
	}
	return nil
}
