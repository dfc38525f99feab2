package keystream

// Every value in a character file is XOR-ed against a running key.
// The key starts from a seed stored raw in the first 4 bytes of the file, and after
// each value is read (or written) it is stirred with a table lookup per raw byte.
//
// A seed of PlainSeed gives a zero key and an all-zero table, so the "obfuscated"
// file is just the plain data.  New files are written that way.

import "math/bits"

const (
	// XOR-ed into the seed to get the starting key
	SeedMask = 0x55555555

	// odd multiplier used to build the table
	TableMultiplier = 39916801

	PlainSeed = SeedMask
)

// State is the keystream for one open file.
type State struct {
	key   uint32
	table [256]uint32
}

// Derive builds the keystream for a file with the given (raw) seed.
func Derive(seed uint32) *State {
	s := &State{key: seed ^ SeedMask}

	k := s.key
	for i := range s.table {
		k = bits.RotateLeft32(k, -1)
		k *= TableMultiplier
		s.table[i] = k
	}

	return s
}

// Key returns the current running key.
func (s *State) Key() uint32 {
	return s.key
}

// Mask returns the byte mask for the next single-byte value.
func (s *State) Mask() byte {
	return byte(s.key)
}

func (s *State) Unmask32(raw uint32) uint32 {
	return raw ^ s.key
}

func (s *State) Unmask8(raw byte) byte {
	return raw ^ byte(s.key)
}

// Advance stirs the key with the raw (on-disk) bytes of the value just processed.
// Order matters only in the sense that every byte is applied; XOR is commutative,
// but callers pass bytes in file order anyway.
func (s *State) Advance(raw ...byte) {
	for _, b := range raw {
		s.key ^= s.table[b]
	}
}

// Table returns a copy of the substitution table.
func (s *State) Table() [256]uint32 {
	return s.table
}
