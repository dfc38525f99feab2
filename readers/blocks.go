package readers

import (
	"github.com/pkg/errors"

	"gdedit/types"
)

// BlockStart opens a block, checking that it is the block we expect.
func (r *Reader) BlockStart(seq uint32) (*types.Block, error) {
	found, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	length, err := r.PeekU32()
	if err != nil {
		return nil, err
	}
	if found != seq {
		return nil, &types.BlockOrderError{Found: found, Expected: seq}
	}

	r.depth++
	return &types.Block{
		Seq:    seq,
		Length: length,
		Start:  r.offset,
		End:    r.offset + int64(length),
	}, nil
}

// BlockEnd closes a block: we must be exactly at its end, and the sentinel must be 0.
func (r *Reader) BlockEnd(b *types.Block) error {
	if b.Closed() {
		return errors.Errorf("block %v closed twice", b.Seq)
	}
	if r.offset != b.End {
		return &types.BlockEndPositionError{Actual: r.offset, Expected: b.End}
	}

	sentinel, err := r.PeekU32()
	if err != nil {
		return err
	}
	if sentinel != 0 {
		return &types.BlockEndingError{Found: sentinel}
	}

	b.Close()
	r.depth--
	header := int64(types.BlockOverhead - 4)
	r.spans = append(r.spans, types.BlockSpan{
		Seq:    b.Seq,
		Depth:  r.depth,
		Offset: b.Start - header,
		Size:   r.offset - b.Start + header,
	})
	return nil
}

// Framed reads body inside a block with the given sequence id.
func (r *Reader) Framed(seq uint32, body func() error) error {
	b, err := r.BlockStart(seq)
	if err != nil {
		return err
	}
	if err := body(); err != nil {
		return err
	}
	return r.BlockEnd(b)
}

// FramedIf is Framed when framed is true and plain pass-through otherwise.
// Some old record versions were written without a block.
func (r *Reader) FramedIf(framed bool, seq uint32, body func() error) error {
	if !framed {
		return body()
	}
	return r.Framed(seq, body)
}
