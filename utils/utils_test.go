package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdedit/character"
)

func TestSmash(t *testing.T) {
	assert.Equal(t, "Zo__the_Tester", Smash("Zo‘ the Tester"))
	assert.Equal(t, "Zoë_1", Smash("Zoë-1"))
}

func TestFuzzyLookup(t *testing.T) {
	names := map[int]string{1: "Hilda", 2: "Hildegard", 3: "Zoë the Tester", 4: "Bob"}

	cases := map[string]int{
		"Hilda":      1, // exact beats prefix
		"hildeg":     2,
		"BOB":        4,
		"zoë_the":    3,
		"the tester": 3,
	}
	for in, want := range cases {
		got, _, err := FuzzyLookup(names, in, "name")
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, _, err := FuzzyLookup(names, "hil", "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hilda, Hildegard")
	assert.Implements(t, (*stackTracer)(nil), err)

	_, _, err = FuzzyLookup(names, "nobody", "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not be matched to any name")
	assert.Implements(t, (*stackTracer)(nil), err)
}

// what github.com/pkg/errors attaches to every error it makes
type stackTracer interface {
	StackTrace() errors.StackTrace
}

func save(t *testing.T, dir string, name string) string {
	d := filepath.Join(dir, "_"+name)
	require.NoError(t, os.MkdirAll(d, 0o755))
	path := filepath.Join(d, character.FILENAME)
	require.NoError(t, character.New(name).Save(path))
	return path
}

func TestFindCharacters(t *testing.T) {
	dir := t.TempDir()
	a := save(t, dir, "Alpha")
	b := save(t, filepath.Join(dir, "main"), "Beta")

	// junk that must be skipped
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "_Broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_Broken", character.FILENAME), []byte("nope"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "settings"), 0o755))

	chars, err := FindCharacters(dir)
	require.NoError(t, err)
	require.Len(t, chars, 2)
	assert.Equal(t, a, chars[0].Path)
	assert.Equal(t, "Alpha", chars[0].Header.Name)
	assert.Equal(t, b, chars[1].Path)

	c, err := FindCharacter(dir, "bet")
	require.NoError(t, err)
	assert.Equal(t, "Beta", c.Header.Name)

	assert.True(t, IsCharacterFile(a))
	assert.False(t, IsCharacterFile(filepath.Join(dir, "settings", character.FILENAME)))
}
