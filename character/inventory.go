package character

import (
	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

// InventoryItem is an item in a bag, at a grid position.
type InventoryItem struct {
	Item Item
	X, Y uint32
}

func (ii *InventoryItem) Read(r *readers.Reader) error {
	if err := ii.Item.Read(r); err != nil {
		return err
	}
	return r.U32s(&ii.X, &ii.Y)
}

func (ii InventoryItem) Write(w *writers.Writer) error {
	if err := ii.Item.Write(w); err != nil {
		return err
	}
	return w.U32s(ii.X, ii.Y)
}

// InventorySack is one bag; each is nested in its own block.
type InventorySack struct {
	TempBool uint8
	Items    []InventoryItem
}

func (s *InventorySack) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_NESTED, func() error {
		if err := r.U8s(&s.TempBool); err != nil {
			return err
		}
		var err error
		s.Items, err = readers.ReadVec[InventoryItem](r)
		return err
	})
}

func (s InventorySack) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_NESTED, func() error {
		if err := w.WriteU8(s.TempBool); err != nil {
			return err
		}
		return writers.WriteVec(w, s.Items)
	})
}

// InventoryEquipment is whatever is in an equipment or weapon slot.  An empty slot is an Item with no ID.
type InventoryEquipment struct {
	Item     Item
	Attached uint8
}

func (e *InventoryEquipment) Read(r *readers.Reader) error {
	if err := e.Item.Read(r); err != nil {
		return err
	}
	return r.U8s(&e.Attached)
}

func (e InventoryEquipment) Write(w *writers.Writer) error {
	if err := e.Item.Write(w); err != nil {
		return err
	}
	return w.WriteU8(e.Attached)
}

// Inventory is block 3.  With Flag == 0 there is nothing else in the block.
type Inventory struct {
	Version      uint32
	Flag         uint8
	Focused      uint32
	Selected     uint32
	Sacks        []InventorySack
	UseAlternate uint8
	Equipment    [tables.EQUIPMENT_SLOTS]InventoryEquipment
	Alternate1   uint8
	Weapon1      [tables.WEAPON_SLOTS]InventoryEquipment
	Alternate2   uint8
	Weapon2      [tables.WEAPON_SLOTS]InventoryEquipment
}

func (inv *Inventory) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_INVENTORY, func() error {
		var err error
		if inv.Version, err = inventoryVersions.read(r); err != nil {
			return err
		}
		if err := r.U8s(&inv.Flag); err != nil {
			return err
		}
		if inv.Flag == 0 {
			return nil
		}

		var nsacks uint32
		if err := r.U32s(&nsacks, &inv.Focused, &inv.Selected); err != nil {
			return err
		}
		if inv.Sacks, err = readers.ReadArr[InventorySack](r, int(nsacks)); err != nil {
			return err
		}

		if err := r.U8s(&inv.UseAlternate); err != nil {
			return err
		}
		if err := readers.ReadInto(r, inv.Equipment[:]); err != nil {
			return err
		}
		if err := r.U8s(&inv.Alternate1); err != nil {
			return err
		}
		if err := readers.ReadInto(r, inv.Weapon1[:]); err != nil {
			return err
		}
		if err := r.U8s(&inv.Alternate2); err != nil {
			return err
		}
		return readers.ReadInto(r, inv.Weapon2[:])
	})
}

func (inv Inventory) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_INVENTORY, func() error {
		if err := w.WriteU32(inv.Version); err != nil {
			return err
		}
		if err := w.WriteU8(inv.Flag); err != nil {
			return err
		}
		if inv.Flag == 0 {
			return nil
		}

		if err := w.U32s(uint32(len(inv.Sacks)), inv.Focused, inv.Selected); err != nil {
			return err
		}
		if err := writers.WriteArr(w, inv.Sacks); err != nil {
			return err
		}

		if err := w.WriteU8(inv.UseAlternate); err != nil {
			return err
		}
		if err := writers.WriteArr(w, inv.Equipment[:]); err != nil {
			return err
		}
		if err := w.WriteU8(inv.Alternate1); err != nil {
			return err
		}
		if err := writers.WriteArr(w, inv.Weapon1[:]); err != nil {
			return err
		}
		if err := w.WriteU8(inv.Alternate2); err != nil {
			return err
		}
		return writers.WriteArr(w, inv.Weapon2[:])
	})
}

// StashItem is an item in a stash page.  Unlike the bags, stash positions are floats.
type StashItem struct {
	Item Item
	X, Y float32
}

func (si *StashItem) Read(r *readers.Reader) error {
	if err := si.Item.Read(r); err != nil {
		return err
	}
	return r.F32s(&si.X, &si.Y)
}

func (si StashItem) Write(w *writers.Writer) error {
	if err := si.Item.Write(w); err != nil {
		return err
	}
	return w.F32s(si.X, si.Y)
}

type StashPage struct {
	Width, Height uint32
	Items         []StashItem
}

func (p *StashPage) read(r *readers.Reader, version uint32) error {
	return r.FramedIf(stashVersions.Has(StashPaged, version), tables.SEQ_NESTED, func() error {
		if err := r.U32s(&p.Width, &p.Height); err != nil {
			return err
		}
		var err error
		p.Items, err = readers.ReadVec[StashItem](r)
		return err
	})
}

func (p StashPage) write(w *writers.Writer, version uint32) error {
	return w.FramedIf(stashVersions.Has(StashPaged, version), tables.SEQ_NESTED, func() error {
		if err := w.U32s(p.Width, p.Height); err != nil {
			return err
		}
		return writers.WriteVec(w, p.Items)
	})
}

// Stash is block 4, the character's private stash.  Version 5 has exactly one page.
type Stash struct {
	Version uint32
	Pages   []StashPage
}

func (s *Stash) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_STASH, func() error {
		var err error
		if s.Version, err = stashVersions.read(r); err != nil {
			return err
		}

		npages := uint32(1)
		if stashVersions.Has(StashPaged, s.Version) {
			if npages, err = r.ReadU32(); err != nil {
				return err
			}
		}

		s.Pages = nil
		for range npages {
			var page StashPage
			if err := page.read(r, s.Version); err != nil {
				return err
			}
			s.Pages = append(s.Pages, page)
		}
		return nil
	})
}

func (s Stash) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_STASH, func() error {
		if err := w.WriteU32(s.Version); err != nil {
			return err
		}

		pages := s.Pages
		if stashVersions.Has(StashPaged, s.Version) {
			if err := w.WriteU32(uint32(len(pages))); err != nil {
				return err
			}
		} else if len(pages) != 1 {
			// unpaged stashes always have one page; pad or drop to make it so
			pages = append(pages[:0:0], StashPage{})
			if len(s.Pages) > 0 {
				pages[0] = s.Pages[0]
			}
		}

		for _, page := range pages {
			if err := page.write(w, s.Version); err != nil {
				return err
			}
		}
		return nil
	})
}
