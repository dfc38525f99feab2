// Package journal keeps a history of every character save seen, so progress can be looked back on.
package journal

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"gdedit/character"
)

// Snapshot is what gets remembered about a character each time its file changes.
type Snapshot struct {
	ID         string
	Name       string
	Level      uint32
	Experience uint32
	Deaths     uint32
	Playtime   uint32
	Path       string
	Time       time.Time
}

// Take summarises a decoded character.
func Take(c *character.Character, path string, when time.Time) Snapshot {
	return Snapshot{
		Name:       c.Header.Name,
		Level:      c.Bio.Level,
		Experience: c.Bio.Experience,
		Deaths:     c.Stats.Deaths,
		Playtime:   c.Stats.Playtime,
		Path:       path,
		Time:       when,
	}
}

// Journal is a pebble store of snapshots keyed by name, then by a ksuid, so a prefix scan
// on the name gives the character's history in time order.
type Journal struct {
	db *pebble.DB
}

func Open(path string) (*Journal, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "opening journal %s", path)
	}
	return &Journal{db: db}, nil
}

func prefix(name string) []byte {
	return append([]byte(name), 0)
}

// Record stores s, returning it with its ID filled in.
func (j *Journal) Record(s Snapshot) (Snapshot, error) {
	id, err := ksuid.NewRandomWithTime(s.Time)
	if err != nil {
		return s, err
	}
	s.ID = id.String()

	data, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	key := append(prefix(s.Name), id.Bytes()...)
	if err := j.db.Set(key, data, pebble.Sync); err != nil {
		return s, errors.Wrapf(err, "recording %s", s.Name)
	}
	return s, nil
}

// History lists everything recorded for name, oldest first.
func (j *Journal) History(name string) ([]Snapshot, error) {
	lower := prefix(name)
	upper := append([]byte(name), 1)
	iter, err := j.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	out := []Snapshot{}
	for iter.First(); iter.Valid(); iter.Next() {
		s := Snapshot{}
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return nil, errors.Wrapf(err, "bad journal entry %x", iter.Key())
		}
		out = append(out, s)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	// ksuid order is only second-accurate
	slices.SortStableFunc(out, func(a, b Snapshot) int { return a.Time.Compare(b.Time) })
	return out, nil
}

// Names lists every character with at least one snapshot.
func (j *Journal) Names() ([]string, error) {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	names := []string{}
	for iter.First(); iter.Valid(); iter.Next() {
		name, _, ok := bytes.Cut(iter.Key(), []byte{0})
		if !ok {
			continue
		}
		if len(names) == 0 || names[len(names)-1] != string(name) {
			names = append(names, string(name))
		}
	}
	return names, iter.Error()
}

func (j *Journal) Close() error {
	return j.db.Close()
}
