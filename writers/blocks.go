package writers

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"gdedit/types"
)

// BlockStart opens a block.  The length is a placeholder until BlockEnd.
func (w *Writer) BlockStart(seq uint32) (*types.Block, error) {
	if err := w.WriteU32(seq); err != nil {
		return nil, err
	}

	b := &types.Block{Seq: seq, Key: w.ks.Key()}
	if err := w.PokeU32(0); err != nil {
		return nil, err
	}
	b.Start = w.Offset()
	w.open = append(w.open, b)
	return b, nil
}

// BlockEnd goes back to the length field, fills in the real payload length, and writes the 0 sentinel.
func (w *Writer) BlockEnd(b *types.Block) error {
	if b.Closed() {
		return errors.Errorf("block %v closed twice", b.Seq)
	}
	if len(w.open) == 0 || w.open[len(w.open)-1] != b {
		return errors.Errorf("closing block %v out of order", b.Seq)
	}

	length := w.Offset() - b.Start
	if length > math.MaxUint32 {
		return errors.Errorf("block %v too long (%v bytes)", b.Seq, length)
	}
	b.Length = uint32(length)
	b.End = w.Offset()

	// The length field never stirs the key, so it is masked with whatever key was current
	// when the placeholder went down - and nothing after it depends on its value.
	binary.LittleEndian.PutUint32(w.buf[b.Start-4:b.Start], b.Length^b.Key)

	w.open = w.open[:len(w.open)-1]
	b.Close()
	return w.PokeU32(0)
}

// Framed writes body inside a block.
func (w *Writer) Framed(seq uint32, body func() error) (err error) {
	b, err := w.BlockStart(seq)
	if err != nil {
		return err
	}
	defer func() {
		if err == nil {
			err = w.BlockEnd(b)
		}
	}()
	return body()
}

// FramedIf is Framed when framed is true and plain pass-through otherwise.
func (w *Writer) FramedIf(framed bool, seq uint32, body func() error) error {
	if !framed {
		return body()
	}
	return w.Framed(seq, body)
}
