package character

import (
	"strings"

	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

// Skill is a class skill, devotion node or granted skill the character has.
type Skill struct {
	Name               string
	Level              uint32
	Enabled            uint8
	DevotionLevel      uint32
	Experience         uint32
	Active             uint32
	Unknown1           uint8
	Unknown2           uint8
	AutoCastSkill      string
	AutoCastController string
}

func (s *Skill) Read(r *readers.Reader) error {
	if err := r.Strings(&s.Name); err != nil {
		return err
	}
	if err := r.U32s(&s.Level); err != nil {
		return err
	}
	if err := r.U8s(&s.Enabled); err != nil {
		return err
	}
	if err := r.U32s(&s.DevotionLevel, &s.Experience, &s.Active); err != nil {
		return err
	}
	if err := r.U8s(&s.Unknown1, &s.Unknown2); err != nil {
		return err
	}
	return r.Strings(&s.AutoCastSkill, &s.AutoCastController)
}

func (s Skill) Write(w *writers.Writer) error {
	if err := w.Strings(s.Name); err != nil {
		return err
	}
	if err := w.U32s(s.Level); err != nil {
		return err
	}
	if err := w.U8s(s.Enabled); err != nil {
		return err
	}
	if err := w.U32s(s.DevotionLevel, s.Experience, s.Active); err != nil {
		return err
	}
	if err := w.U8s(s.Unknown1, s.Unknown2); err != nil {
		return err
	}
	return w.Strings(s.AutoCastSkill, s.AutoCastController)
}

func (s Skill) IsClassSkill() bool {
	return strings.HasPrefix(s.Name, tables.PREFIX_PLAYERCLASS)
}

func (s Skill) IsDevotion() bool {
	return strings.HasPrefix(s.Name, tables.PREFIX_DEVOTION)
}

// ItemSkill is a skill granted by an equipped item.
type ItemSkill struct {
	Name               string
	AutoCastSkill      string
	AutoCastController string
	ItemSlot           uint32
	ItemID             string
}

func (s *ItemSkill) Read(r *readers.Reader) error {
	if err := r.Strings(&s.Name, &s.AutoCastSkill, &s.AutoCastController); err != nil {
		return err
	}
	if err := r.U32s(&s.ItemSlot); err != nil {
		return err
	}
	return r.Strings(&s.ItemID)
}

func (s ItemSkill) Write(w *writers.Writer) error {
	if err := w.Strings(s.Name, s.AutoCastSkill, s.AutoCastController); err != nil {
		return err
	}
	if err := w.U32s(s.ItemSlot); err != nil {
		return err
	}
	return w.Strings(s.ItemID)
}

// Skills is block 8.
type Skills struct {
	Version                       uint32
	Skills                        []Skill
	MasteriesAllowed              uint32
	SkillReclamationPointsUsed    uint32
	DevotionReclamationPointsUsed uint32
	ItemSkills                    []ItemSkill
}

func (sk *Skills) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_SKILLS, func() error {
		var err error
		if sk.Version, err = skillVersions.read(r); err != nil {
			return err
		}
		if sk.Skills, err = readers.ReadVec[Skill](r); err != nil {
			return err
		}
		if err := r.U32s(&sk.MasteriesAllowed, &sk.SkillReclamationPointsUsed, &sk.DevotionReclamationPointsUsed); err != nil {
			return err
		}
		sk.ItemSkills, err = readers.ReadVec[ItemSkill](r)
		return err
	})
}

func (sk Skills) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_SKILLS, func() error {
		if err := w.WriteU32(sk.Version); err != nil {
			return err
		}
		if err := writers.WriteVec(w, sk.Skills); err != nil {
			return err
		}
		if err := w.U32s(sk.MasteriesAllowed, sk.SkillReclamationPointsUsed, sk.DevotionReclamationPointsUsed); err != nil {
			return err
		}
		return writers.WriteVec(w, sk.ItemSkills)
	})
}
