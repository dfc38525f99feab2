package types

import "fmt"

// Block is one framed region of a character file.
//
// On disk a block is:
//
//	seq (u32, keyed), length (u32, peeked), payload (length bytes), 0 (u32, peeked)
//
// Length counts the payload only.
type Block struct {
	Seq    uint32
	Length uint32
	// Start is the offset of the payload (just after the length field)
	Start int64
	// End is where the payload must finish
	End int64

	// Writer only: key in force at the length field, which has to be masked with it.
	Key uint32

	closed bool
}

func (b *Block) Closed() bool {
	return b.closed
}

func (b *Block) Close() {
	b.closed = true
}

// BlockSpan records where a closed block sat in the file.
// Offset is the position of the sequence id; Size covers id, length, payload and sentinel.
type BlockSpan struct {
	Seq    uint32
	Depth  int
	Offset int64
	Size   int64
}

func (s BlockSpan) String() string {
	return fmt.Sprintf("%*sblock %v @%v (%v bytes)", 2*s.Depth, "", s.Seq, s.Offset, s.Size)
}

// Size of the framing around a block payload: seq + length before, sentinel after.
const BlockOverhead = 12
