package writers

// Functions for writing a character file.
// Everything is built up in memory, so that nothing touches the disk until the whole
// tree has been encoded; block lengths are patched in place when a block closes.

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"gdedit/keystream"
	"gdedit/types"
)

// Writer encodes keyed values.  It mirrors readers.Reader call for call.
type Writer struct {
	buf    []byte
	ks     *keystream.State
	latin1 *encoding.Encoder
	open   []*types.Block
}

// Encoder is anything that knows how to write itself.
type Encoder interface {
	Write(w *Writer) error
}

// NewWriter starts a file with the given raw seed.
func NewWriter(seed uint32) *Writer {
	w := &Writer{
		buf:    make([]byte, 0, 64*1024),
		ks:     keystream.Derive(seed),
		latin1: charmap.ISO8859_1.NewEncoder(),
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, seed)
	return w
}

// Bytes returns everything written so far.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Offset is the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return int64(len(w.buf))
}

// Key is the current running key.
func (w *Writer) Key() uint32 {
	return w.ks.Key()
}

// WriteTo flushes the encoded file.  Refuses while any block is still open.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	if len(w.open) > 0 {
		return 0, errors.Errorf("block %v still open", w.open[len(w.open)-1].Seq)
	}
	n, err := out.Write(w.buf)
	if err != nil {
		return int64(n), err
	}
	if n != len(w.buf) {
		return int64(n), &types.WriteAmountError{Written: n, Expected: len(w.buf)}
	}
	return int64(n), nil
}

func (w *Writer) WriteU32(v uint32) error {
	raw := binary.LittleEndian.AppendUint32(nil, v^w.ks.Key())
	w.buf = append(w.buf, raw...)
	w.ks.Advance(raw...)
	return nil
}

// PokeU32 writes a masked value without stirring the key (the mirror of readers.PeekU32).
func (w *Writer) PokeU32(v uint32) error {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v^w.ks.Key())
	return nil
}

func (w *Writer) WriteF32(v float32) error {
	return w.WriteU32(math.Float32bits(v))
}

func (w *Writer) WriteU8(v uint8) error {
	raw := v ^ w.ks.Mask()
	w.buf = append(w.buf, raw)
	w.ks.Advance(raw)
	return nil
}

// WriteString writes a length-prefixed single-byte (Latin-1) string.
func (w *Writer) WriteString(s string) error {
	encoded, err := w.latin1.Bytes([]byte(s))
	if err != nil {
		return &types.StringRangeError{Value: s}
	}
	if err := w.WriteU32(uint32(len(encoded))); err != nil {
		return err
	}
	for _, c := range encoded {
		if err := w.WriteU8(c); err != nil {
			return err
		}
	}
	return nil
}

// WriteWString writes a length-prefixed UTF-16LE string, low byte then high byte per unit.
func (w *Writer) WriteWString(s string) error {
	units := types.EncodeWide(s)
	if err := w.WriteU32(uint32(len(units))); err != nil {
		return err
	}
	for _, u := range units {
		if err := w.WriteU8(uint8(u)); err != nil {
			return err
		}
		if err := w.WriteU8(uint8(u >> 8)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteUID(id uuid.UUID) error {
	for _, b := range id {
		if err := w.WriteU8(b); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteByteList(bs []byte) error {
	if err := w.WriteU32(uint32(len(bs))); err != nil {
		return err
	}
	return w.U8s(bs...)
}

func (w *Writer) WriteU32List(vs []uint32) error {
	if err := w.WriteU32(uint32(len(vs))); err != nil {
		return err
	}
	return w.U32s(vs...)
}

func (w *Writer) WriteStringList(ss []string) error {
	if err := w.WriteU32(uint32(len(ss))); err != nil {
		return err
	}
	return w.Strings(ss...)
}

// U32s writes consecutive u32 fields.
func (w *Writer) U32s(vs ...uint32) error {
	for _, v := range vs {
		if err := w.WriteU32(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) F32s(vs ...float32) error {
	for _, v := range vs {
		if err := w.WriteF32(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) U8s(vs ...uint8) error {
	for _, v := range vs {
		if err := w.WriteU8(v); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Strings(ss ...string) error {
	for _, s := range ss {
		if err := w.WriteString(s); err != nil {
			return err
		}
	}
	return nil
}

// WriteVec writes a u32 count followed by the items.
func WriteVec[T Encoder](w *Writer, items []T) error {
	if err := w.WriteU32(uint32(len(items))); err != nil {
		return err
	}
	return WriteArr(w, items)
}

// WriteArr writes the items with no count.
func WriteArr[T Encoder](w *Writer, items []T) error {
	for _, item := range items {
		if err := item.Write(w); err != nil {
			return err
		}
	}
	return nil
}
