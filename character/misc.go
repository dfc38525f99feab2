package character

import (
	"github.com/pkg/errors"

	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

// CrucibleTokens is block 10, only present in save versions 7 and up.
// Tokens are kept exactly as found, duplicates and all.
type CrucibleTokens struct {
	Version uint32
	Tokens  [tables.DIFFICULTIES][]string
}

func (c *CrucibleTokens) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_CRUCIBLE, func() error {
		var err error
		if c.Version, err = crucibleVersions.read(r); err != nil {
			return err
		}
		for i := range c.Tokens {
			if c.Tokens[i], err = r.ReadStringList(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c CrucibleTokens) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_CRUCIBLE, func() error {
		if err := w.WriteU32(c.Version); err != nil {
			return err
		}
		for _, tokens := range c.Tokens {
			if err := w.WriteStringList(tokens); err != nil {
				return err
			}
		}
		return nil
	})
}

// Tutorials is block 15: which tutorial pages have been seen.
type Tutorials struct {
	Version uint32
	Pages   []uint32
}

func (t *Tutorials) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_TUTORIALS, func() error {
		var err error
		if t.Version, err = tutorialVersions.read(r); err != nil {
			return err
		}
		t.Pages, err = r.ReadU32List()
		return err
	})
}

func (t Tutorials) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_TUTORIALS, func() error {
		if err := w.WriteU32(t.Version); err != nil {
			return err
		}
		return w.WriteU32List(t.Pages)
	})
}

// Notes is block 12.
type Notes struct {
	Version uint32
	Notes   []string
}

func (n *Notes) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_NOTES, func() error {
		var err error
		if n.Version, err = noteVersions.read(r); err != nil {
			return err
		}
		n.Notes, err = r.ReadStringList()
		return err
	})
}

func (n Notes) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_NOTES, func() error {
		if err := w.WriteU32(n.Version); err != nil {
			return err
		}
		return w.WriteStringList(n.Notes)
	})
}

type Faction struct {
	Modified      uint8
	Unlocked      uint8
	Value         float32
	PositiveBoost float32
	NegativeBoost float32
}

func (f *Faction) Read(r *readers.Reader) error {
	if err := r.U8s(&f.Modified, &f.Unlocked); err != nil {
		return err
	}
	return r.F32s(&f.Value, &f.PositiveBoost, &f.NegativeBoost)
}

func (f Faction) Write(w *writers.Writer) error {
	if err := w.U8s(f.Modified, f.Unlocked); err != nil {
		return err
	}
	return w.F32s(f.Value, f.PositiveBoost, f.NegativeBoost)
}

// Factions is block 13: reputation with every faction, in the game's own faction order.
type Factions struct {
	Version  uint32
	Faction  uint32
	Factions []Faction
}

func (fl *Factions) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_FACTIONS, func() error {
		var err error
		if fl.Version, err = factionVersions.read(r); err != nil {
			return err
		}
		if err := r.U32s(&fl.Faction); err != nil {
			return err
		}
		fl.Factions, err = readers.ReadVec[Faction](r)
		return err
	})
}

func (fl Factions) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_FACTIONS, func() error {
		if err := w.U32s(fl.Version, fl.Faction); err != nil {
			return err
		}
		return writers.WriteVec(w, fl.Factions)
	})
}

// UISlot is a hotbar slot.  Only skill (0) and item (4) slots carry anything past their type.
type UISlot struct {
	Type          uint32
	Skill         string
	IsItemSkill   uint8
	Item          string
	EquipLocation uint32
	BitmapUp      string
	BitmapDown    string
	Label         string
}

func (s *UISlot) Read(r *readers.Reader) error {
	if err := r.U32s(&s.Type); err != nil {
		return err
	}
	switch s.Type {
	case tables.UI_SLOT_SKILL:
		if err := r.Strings(&s.Skill); err != nil {
			return err
		}
		if err := r.U8s(&s.IsItemSkill); err != nil {
			return err
		}
		if err := r.Strings(&s.Item); err != nil {
			return err
		}
		return r.U32s(&s.EquipLocation)
	case tables.UI_SLOT_ITEM:
		if err := r.Strings(&s.Item, &s.BitmapUp, &s.BitmapDown); err != nil {
			return err
		}
		var err error
		s.Label, err = r.ReadWString()
		return err
	}
	return nil
}

func (s UISlot) Write(w *writers.Writer) error {
	if err := w.WriteU32(s.Type); err != nil {
		return err
	}
	switch s.Type {
	case tables.UI_SLOT_SKILL:
		if err := w.WriteString(s.Skill); err != nil {
			return err
		}
		if err := w.WriteU8(s.IsItemSkill); err != nil {
			return err
		}
		if err := w.WriteString(s.Item); err != nil {
			return err
		}
		return w.WriteU32(s.EquipLocation)
	case tables.UI_SLOT_ITEM:
		if err := w.Strings(s.Item, s.BitmapUp, s.BitmapDown); err != nil {
			return err
		}
		return w.WriteWString(s.Label)
	}
	return nil
}

// HotbarBar is one of the five unnamed string/string/byte triples ahead of the slots.
type HotbarBar struct {
	Unknown4 string
	Unknown5 string
	Unknown6 uint8
}

// UI is block 14: hotbar layout and camera.
type UI struct {
	Version        uint32
	Unknown1       uint8
	Unknown2       uint32
	Unknown3       uint8
	Bars           [tables.HOTBAR_BARS]HotbarBar
	Slots          []UISlot
	CameraDistance float32
}

// SlotCount is how many hotbar slots a UI record of this version holds.
func (ui UI) SlotCount() int {
	if uiVersions.Has(UIWideHotbar, ui.Version) {
		return tables.UI_SLOTS
	}
	return tables.UI_SLOTS_LEGACY
}

func (ui *UI) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_UI, func() error {
		var err error
		if ui.Version, err = uiVersions.read(r); err != nil {
			return err
		}
		if err := r.U8s(&ui.Unknown1); err != nil {
			return err
		}
		if err := r.U32s(&ui.Unknown2); err != nil {
			return err
		}
		if err := r.U8s(&ui.Unknown3); err != nil {
			return err
		}
		for i := range ui.Bars {
			b := &ui.Bars[i]
			if err := r.Strings(&b.Unknown4, &b.Unknown5); err != nil {
				return err
			}
			if err := r.U8s(&b.Unknown6); err != nil {
				return err
			}
		}
		if ui.Slots, err = readers.ReadArr[UISlot](r, ui.SlotCount()); err != nil {
			return err
		}
		return r.F32s(&ui.CameraDistance)
	})
}

func (ui UI) Write(w *writers.Writer) error {
	if len(ui.Slots) != ui.SlotCount() {
		return errors.Errorf("ui version %v has %v hotbar slots, got %v", ui.Version, ui.SlotCount(), len(ui.Slots))
	}
	return w.Framed(tables.SEQ_UI, func() error {
		if err := w.WriteU32(ui.Version); err != nil {
			return err
		}
		if err := w.WriteU8(ui.Unknown1); err != nil {
			return err
		}
		if err := w.WriteU32(ui.Unknown2); err != nil {
			return err
		}
		if err := w.WriteU8(ui.Unknown3); err != nil {
			return err
		}
		for _, b := range ui.Bars {
			if err := w.Strings(b.Unknown4, b.Unknown5); err != nil {
				return err
			}
			if err := w.WriteU8(b.Unknown6); err != nil {
				return err
			}
		}
		if err := writers.WriteArr(w, ui.Slots); err != nil {
			return err
		}
		return w.WriteF32(ui.CameraDistance)
	})
}
