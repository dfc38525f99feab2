package writers

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdedit/keystream"
	"gdedit/types"
)

const testSeed = 0x9e3779b9

// short accepts at most n bytes and pretends that was fine.
type short struct{ n int }

func (s short) Write(p []byte) (int, error) {
	return min(len(p), s.n), nil
}

func TestSeedIsRaw(t *testing.T) {
	w := NewWriter(testSeed)
	assert.Equal(t, uint32(testSeed), binary.LittleEndian.Uint32(w.Bytes()))
	assert.Equal(t, keystream.Derive(testSeed).Key(), w.Key())
}

func TestPokeLeavesKeyAlone(t *testing.T) {
	w := NewWriter(testSeed)
	before := w.Key()
	require.NoError(t, w.PokeU32(7))
	assert.Equal(t, before, w.Key())

	require.NoError(t, w.WriteU32(7))
	assert.NotEqual(t, before, w.Key())
}

func TestBlockErrors(t *testing.T) {
	w := NewWriter(testSeed)
	outer, err := w.BlockStart(1)
	require.NoError(t, err)
	inner, err := w.BlockStart(2)
	require.NoError(t, err)

	assert.Error(t, w.BlockEnd(outer), "closing out of order")

	_, err = w.WriteTo(&bytes.Buffer{})
	assert.Error(t, err, "writing with blocks open")

	require.NoError(t, w.BlockEnd(inner))
	assert.ErrorContains(t, w.BlockEnd(inner), "closed twice")
	require.NoError(t, w.BlockEnd(outer))
	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(w.Bytes())), n)
}

func TestShortWrite(t *testing.T) {
	w := NewWriter(testSeed)
	require.NoError(t, w.WriteU32(1))

	_, err := w.WriteTo(short{n: 3})
	var wa *types.WriteAmountError
	require.True(t, errors.As(err, &wa), "got %v", err)
	assert.Equal(t, 3, wa.Written)
	assert.Equal(t, 8, wa.Expected)
}

func TestStringOutsideLatin1(t *testing.T) {
	w := NewWriter(testSeed)
	require.NoError(t, w.WriteString("Grüße"))

	err := w.WriteString("グリム")
	var sr *types.StringRangeError
	assert.True(t, errors.As(err, &sr), "got %v", err)
}
