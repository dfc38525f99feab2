package character

import (
	"github.com/google/uuid"

	"gdedit/readers"
	"gdedit/writers"
)

// Item is one item instance, wherever it lives (bag, stash, equipped).
type Item struct {
	ID             string
	PrefixID       string
	SuffixID       string
	ModifierID     string
	TransmuteID    string
	Seed           uint32
	ComponentID    string
	ComponentBonus string
	ComponentSeed  uint32
	AugmentID      string
	Unknown        uint32
	AugmentSeed    uint32
	Var1           uint32
	StackCount     uint32
}

func (it *Item) Read(r *readers.Reader) error {
	if err := r.Strings(&it.ID, &it.PrefixID, &it.SuffixID, &it.ModifierID, &it.TransmuteID); err != nil {
		return err
	}
	if err := r.U32s(&it.Seed); err != nil {
		return err
	}
	if err := r.Strings(&it.ComponentID, &it.ComponentBonus); err != nil {
		return err
	}
	if err := r.U32s(&it.ComponentSeed); err != nil {
		return err
	}
	if err := r.Strings(&it.AugmentID); err != nil {
		return err
	}
	// unknown comes before the augment seed on disk
	return r.U32s(&it.Unknown, &it.AugmentSeed, &it.Var1, &it.StackCount)
}

func (it Item) Write(w *writers.Writer) error {
	if err := w.Strings(it.ID, it.PrefixID, it.SuffixID, it.ModifierID, it.TransmuteID); err != nil {
		return err
	}
	if err := w.U32s(it.Seed); err != nil {
		return err
	}
	if err := w.Strings(it.ComponentID, it.ComponentBonus); err != nil {
		return err
	}
	if err := w.U32s(it.ComponentSeed); err != nil {
		return err
	}
	if err := w.Strings(it.AugmentID); err != nil {
		return err
	}
	return w.U32s(it.Unknown, it.AugmentSeed, it.Var1, it.StackCount)
}

// UID is a 16-byte identifier: the character's own, or a location's (respawn points, riftgates...).
type UID uuid.UUID

func (u *UID) Read(r *readers.Reader) error {
	id, err := r.ReadUID()
	if err != nil {
		return err
	}
	*u = UID(id)
	return nil
}

func (u UID) Write(w *writers.Writer) error {
	return w.WriteUID(uuid.UUID(u))
}

func (u UID) String() string {
	return uuid.UUID(u).String()
}

func (u UID) MarshalText() ([]byte, error) {
	return uuid.UUID(u).MarshalText()
}
