package character

import (
	"sync"

	"github.com/go-test/deep"
)

var diffMu sync.Mutex

// Diff lists every field that differs between two characters, as "path: a != b".  Nil means identical.
func Diff(a, b *Character) []string {
	diffMu.Lock()
	defer diffMu.Unlock()

	// deep's limits are package globals
	oldMax := deep.MaxDiff
	deep.MaxDiff = 1000
	defer func() { deep.MaxDiff = oldMax }()

	return deep.Equal(a, b)
}
