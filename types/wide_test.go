package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWideRoundTrip(t *testing.T) {
	cases := map[string][]uint16{
		"empty":        nil,
		"ascii":        {'H', 'i'},
		"pair":         {0xd83d, 0xde00},
		"lone high":    {0xd800},
		"lone low":     {0xdfff, 'x'},
		"high at end":  {'a', 0xdbff},
		"two highs":    {0xd800, 0xd801, 0xdc00},
		"low then hi":  {0xdc00, 0xd800},
		"mixed":        {'Z', 0xeb, 0xdc00, 0x6f22},
	}
	for name, units := range cases {
		t.Run(name, func(t *testing.T) {
			s := DecodeWide(units)
			got := EncodeWide(s)
			if len(units) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, units, got)
		})
	}
}

func TestWideValidText(t *testing.T) {
	assert.Equal(t, "Zoë 😀", DecodeWide([]uint16{'Z', 'o', 0xeb, ' ', 0xd83d, 0xde00}))
	assert.Equal(t, []uint16{0xfffd}, EncodeWide("\xff"))
}
