package types

import (
	"fmt"
	"strings"
)

// Format errors.  None of these are recoverable; the first one aborts the whole read or write.

type UnsupportedVersionError struct {
	Found    uint32
	Expected []uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported version: %v, expected %v", e.Found, FormatVersions(e.Expected))
}

type BlockOrderError struct {
	Found    uint32
	Expected uint32
}

func (e *BlockOrderError) Error() string {
	return fmt.Sprintf("failed to validate block order: %v, expected %v", e.Found, e.Expected)
}

type BlockEndPositionError struct {
	Actual   int64
	Expected int64
}

func (e *BlockEndPositionError) Error() string {
	return fmt.Sprintf("incorrect block end position: %v, expected %v", e.Actual, e.Expected)
}

type BlockEndingError struct {
	Found uint32
}

func (e *BlockEndingError) Error() string {
	return fmt.Sprintf("failed to validate block ending: %v, expected 0", e.Found)
}

type WriteAmountError struct {
	Written  int
	Expected int
}

func (e *WriteAmountError) Error() string {
	return fmt.Sprintf("failed to validate write amount: %v, expected %v", e.Written, e.Expected)
}

type MagicError struct {
	Found uint32
}

func (e *MagicError) Error() string {
	return fmt.Sprintf("invalid magic header: %#x, expected %#x", e.Found, Magic)
}

// KeyDerivationError means the seed could not even be read.
type KeyDerivationError struct {
	Err error
}

func (e *KeyDerivationError) Error() string {
	return "key derivation failed: " + e.Err.Error()
}

func (e *KeyDerivationError) Unwrap() error {
	return e.Err
}

// SeparatorError is the u32 after the header not being 0.
type SeparatorError struct {
	Found uint32
}

func (e *SeparatorError) Error() string {
	return fmt.Sprintf("header separator is %v, expected 0", e.Found)
}

// TrailingBytesError means the file carries data after the last record.
type TrailingBytesError struct {
	Offset int64
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("unexpected data after last record at offset %v", e.Offset)
}

// EnumError is a small coded field (sex, expansion status...) outside its known range.
type EnumError struct {
	Field string
	Value uint8
}

func (e *EnumError) Error() string {
	return fmt.Sprintf("parse %v error: %v", e.Field, e.Value)
}

// StringRangeError is a narrow string holding a character that can't be stored in one byte.
type StringRangeError struct {
	Value string
}

func (e *StringRangeError) Error() string {
	return fmt.Sprintf("string %q has characters outside Latin-1", e.Value)
}

// Magic is the first keyed value of every character file ("GDCX" when read backwards).
const Magic = 0x58434447

// FormatVersions formats a version set the way error messages want it ("3,4,5").
func FormatVersions(vs []uint32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
