package types

import (
	"unicode/utf16"
	"unicode/utf8"
)

// Wide strings are UTF-16 on disk, and the game does not check them: a name can end up with a
// surrogate that has no partner.  Those are kept in the Go string as their 3-byte generalized
// UTF-8 form (ED A0..BF 80..BF), which utf8 treats as invalid but EncodeWide turns back into
// the same code unit.

// DecodeWide turns UTF-16 code units into a string, keeping unpaired surrogates.
func DecodeWide(units []uint16) string {
	buf := make([]byte, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := rune(units[i])
		switch {
		case !utf16.IsSurrogate(u):
			buf = utf8.AppendRune(buf, u)
		case u < 0xdc00 && i+1 < len(units) && isLowSurrogate(rune(units[i+1])):
			buf = utf8.AppendRune(buf, utf16.DecodeRune(u, rune(units[i+1])))
			i++
		default:
			buf = append(buf, 0xe0|byte(u>>12), 0x80|byte(u>>6)&0x3f, 0x80|byte(u)&0x3f)
		}
	}
	return string(buf)
}

// EncodeWide is the inverse of DecodeWide.  Other invalid UTF-8 becomes U+FFFD.
func EncodeWide(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for i := 0; i < len(s); {
		if i+2 < len(s) && s[i] == 0xed && s[i+1] >= 0xa0 && s[i+1] <= 0xbf && s[i+2] >= 0x80 && s[i+2] <= 0xbf {
			units = append(units, 0xd000|uint16(s[i+1]&0x3f)<<6|uint16(s[i+2]&0x3f))
			i += 3
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		units = utf16.AppendRune(units, r)
		i += size
	}
	return units
}

func isLowSurrogate(r rune) bool {
	return r >= 0xdc00 && r <= 0xdfff
}
