package readers

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"gdedit/keystream"
	"gdedit/types"
)

// Counts read from the file are untrusted; don't preallocate more than this.
const maxPrealloc = 4096

// prealloc clamps before converting, so a huge count can't turn negative on 32-bit ints.
func prealloc(n uint32) int {
	return int(min(n, maxPrealloc))
}

// Reader decodes keyed values from a character file.
// It is strictly forward-only: block ends are checked against a byte count, not a seek position.
type Reader struct {
	r      *bufio.Reader
	offset int64
	ks     *keystream.State
	latin1 *encoding.Decoder

	depth int
	spans []types.BlockSpan
}

// NewReader wraps r.  Nothing can be decoded until ReadKey has been called.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:      bufio.NewReader(r),
		ks:     keystream.Derive(keystream.PlainSeed),
		latin1: charmap.ISO8859_1.NewDecoder(),
	}
}

// Decoder is anything that knows how to read itself.
type Decoder interface {
	Read(r *Reader) error
}

type decodable[T any] interface {
	*T
	Decoder
}

func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	return err
}

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Key is the current running key.
func (r *Reader) Key() uint32 {
	return r.ks.Key()
}

// Blocks lists every block closed so far, in closing order.
func (r *Reader) Blocks() []types.BlockSpan {
	return r.spans
}

// ReadKey reads the raw seed and derives the keystream.  Returns the seed.
func (r *Reader) ReadKey() (uint32, error) {
	buf := [4]byte{}
	if err := r.readFull(buf[:]); err != nil {
		return 0, &types.KeyDerivationError{Err: err}
	}
	seed := binary.LittleEndian.Uint32(buf[:])
	r.ks = keystream.Derive(seed)
	return seed, nil
}

// Validate reads the key and checks the magic value that follows it.
func (r *Reader) Validate() (uint32, error) {
	seed, err := r.ReadKey()
	if err != nil {
		return 0, err
	}
	magic, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if magic != types.Magic {
		return 0, &types.MagicError{Found: magic}
	}
	return seed, nil
}

func (r *Reader) ReadU32() (uint32, error) {
	buf := [4]byte{}
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	v := r.ks.Unmask32(binary.LittleEndian.Uint32(buf[:]))
	r.ks.Advance(buf[:]...)
	return v, nil
}

// PeekU32 unmasks the next 4 bytes without stirring the key.
// The bytes are still consumed.  Block lengths and block sentinels are stored this way.
func (r *Reader) PeekU32() (uint32, error) {
	buf := [4]byte{}
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	return r.ks.Unmask32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadU8() (uint8, error) {
	buf := [1]byte{}
	if err := r.readFull(buf[:]); err != nil {
		return 0, err
	}
	v := r.ks.Unmask8(buf[0])
	r.ks.Advance(buf[0])
	return v, nil
}

// ReadString reads a length-prefixed single-byte string.
func (r *Reader) ReadString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	out := make([]byte, 0, prealloc(n))
	for range n {
		c, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	decoded, err := r.latin1.Bytes(out)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// ReadWString reads a length-prefixed UTF-16LE string.
// Each code unit is two separately keyed bytes, low byte first.  Unpaired surrogates survive.
func (r *Reader) ReadWString() (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	units := make([]uint16, 0, prealloc(n))
	for range n {
		lo, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		hi, err := r.ReadU8()
		if err != nil {
			return "", err
		}
		units = append(units, uint16(lo)|uint16(hi)<<8)
	}

	return types.DecodeWide(units), nil
}

// ReadUID reads 16 keyed bytes.
func (r *Reader) ReadUID() (uuid.UUID, error) {
	out := uuid.UUID{}
	for i := range out {
		b, err := r.ReadU8()
		if err != nil {
			return out, err
		}
		out[i] = b
	}
	return out, nil
}

// ReadVersion reads a version number and fails unless it is one of accepted.
func (r *Reader) ReadVersion(accepted []uint32) (uint32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	if !slices.Contains(accepted, v) {
		return 0, &types.UnsupportedVersionError{Found: v, Expected: accepted}
	}
	return v, nil
}

// ReadByteList reads a u32 count followed by that many single bytes.
func (r *Reader) ReadByteList() ([]byte, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, 0, prealloc(n))
	for range n {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// ReadU32List reads a u32 count followed by that many u32s.
func (r *Reader) ReadU32List() ([]uint32, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]uint32, 0, prealloc(n))
	for range n {
		v, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ReadStringList reads a u32 count followed by that many strings.
func (r *Reader) ReadStringList() ([]string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]string, 0, prealloc(n))
	for range n {
		s, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// U32s reads consecutive u32 fields, in argument order.
func (r *Reader) U32s(dst ...*uint32) error {
	for _, d := range dst {
		v, err := r.ReadU32()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func (r *Reader) F32s(dst ...*float32) error {
	for _, d := range dst {
		v, err := r.ReadF32()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func (r *Reader) U8s(dst ...*uint8) error {
	for _, d := range dst {
		v, err := r.ReadU8()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

func (r *Reader) Strings(dst ...*string) error {
	for _, d := range dst {
		v, err := r.ReadString()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}

// ReadVec reads a u32 count followed by that many Ts.
func ReadVec[T any, P decodable[T]](r *Reader) ([]T, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, err
	}
	return readN[T, P](r, n)
}

// ReadArr reads exactly n Ts, with no count in the file.
func ReadArr[T any, P decodable[T]](r *Reader, n int) ([]T, error) {
	return readN[T, P](r, uint32(n))
}

func readN[T any, P decodable[T]](r *Reader, n uint32) ([]T, error) {
	if n == 0 {
		// nil, not empty, so that decoded trees compare equal to built ones
		return nil, nil
	}
	out := make([]T, 0, prealloc(n))
	for range n {
		var item T
		if err := P(&item).Read(r); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ReadInto fills a fixed-size array in place.
func ReadInto[T any, P decodable[T]](r *Reader, items []T) error {
	for i := range items {
		if err := P(&items[i]).Read(r); err != nil {
			return err
		}
	}
	return nil
}

// ExpectEOF checks that nothing is left in the file.
func (r *Reader) ExpectEOF() error {
	_, err := r.r.ReadByte()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	return &types.TrailingBytesError{Offset: r.offset}
}
