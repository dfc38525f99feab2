package character

import (
	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

// Difficulty and CrucibleDifficulty are stored as bytes; unknown values read as the lowest difficulty,
// which is what the game does too.
type Difficulty uint8

const (
	Normal Difficulty = iota
	Elite
	Ultimate
)

func (d Difficulty) String() string {
	if int(d) < len(tables.Difficulties) {
		return tables.Difficulties[d]
	}
	return tables.Difficulties[0]
}

type CrucibleDifficulty uint8

const (
	Aspirant CrucibleDifficulty = iota
	Challenger
	Gladiator
)

func (d CrucibleDifficulty) String() string {
	if int(d) < len(tables.Crucible_difficulties) {
		return tables.Crucible_difficulties[d]
	}
	return tables.Crucible_difficulties[0]
}

// Info is block 1: game-progress odds and ends.
type Info struct {
	Version                    uint32
	IsInMainQuest              uint8
	HasBeenInGame              uint8
	Difficulty                 Difficulty
	GreatestDifficulty         Difficulty
	Money                      uint32
	GreatestCrucibleDifficulty CrucibleDifficulty
	CurrentTribute             uint32
	CompassState               uint8
	LootMode                   uint32
	SkillWindowShowHelp        uint8
	AlternateConfig            uint8
	AlternateConfigEnabled     uint8
	Texture                    string
	LootFilters                []byte
}

// HasCrucible reports whether this version records crucible progress.
func (in Info) HasCrucible() bool {
	return infoVersions.Has(InfoCrucible, in.Version)
}

func (in *Info) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_INFO, func() error {
		var err error
		if in.Version, err = infoVersions.read(r); err != nil {
			return err
		}

		var difficulty, greatest uint8
		if err := r.U8s(&in.IsInMainQuest, &in.HasBeenInGame, &difficulty, &greatest); err != nil {
			return err
		}
		in.Difficulty, in.GreatestDifficulty = Difficulty(difficulty), Difficulty(greatest)
		if err := r.U32s(&in.Money); err != nil {
			return err
		}

		if infoVersions.Has(InfoCrucible, in.Version) {
			crucible, err := r.ReadU8()
			if err != nil {
				return err
			}
			in.GreatestCrucibleDifficulty = CrucibleDifficulty(crucible)
			if err := r.U32s(&in.CurrentTribute); err != nil {
				return err
			}
		}

		if err := r.U8s(&in.CompassState); err != nil {
			return err
		}
		if infoVersions.Has(InfoLootMode, in.Version) {
			if err := r.U32s(&in.LootMode); err != nil {
				return err
			}
		}
		if err := r.U8s(&in.SkillWindowShowHelp, &in.AlternateConfig, &in.AlternateConfigEnabled); err != nil {
			return err
		}
		if in.Texture, err = r.ReadString(); err != nil {
			return err
		}

		if infoVersions.Has(InfoLootFilters, in.Version) {
			if in.LootFilters, err = r.ReadByteList(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (in Info) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_INFO, func() error {
		if err := w.WriteU32(in.Version); err != nil {
			return err
		}
		if err := w.U8s(in.IsInMainQuest, in.HasBeenInGame, uint8(in.Difficulty), uint8(in.GreatestDifficulty)); err != nil {
			return err
		}
		if err := w.WriteU32(in.Money); err != nil {
			return err
		}

		if infoVersions.Has(InfoCrucible, in.Version) {
			if err := w.WriteU8(uint8(in.GreatestCrucibleDifficulty)); err != nil {
				return err
			}
			if err := w.WriteU32(in.CurrentTribute); err != nil {
				return err
			}
		}

		if err := w.WriteU8(in.CompassState); err != nil {
			return err
		}
		if infoVersions.Has(InfoLootMode, in.Version) {
			if err := w.WriteU32(in.LootMode); err != nil {
				return err
			}
		}
		if err := w.U8s(in.SkillWindowShowHelp, in.AlternateConfig, in.AlternateConfigEnabled); err != nil {
			return err
		}
		if err := w.WriteString(in.Texture); err != nil {
			return err
		}

		if infoVersions.Has(InfoLootFilters, in.Version) {
			return w.WriteByteList(in.LootFilters)
		}
		return nil
	})
}

// Bio is block 2: level, experience and the points that can be spent.
type Bio struct {
	Version         uint32
	Level           uint32
	Experience      uint32
	AttributePoints uint32
	SkillPoints     uint32
	DevotionPoints  uint32
	TotalDevotion   uint32
	Physique        float32
	Cunning         float32
	Spirit          float32
	Health          float32
	Energy          float32
}

func (b *Bio) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_BIO, func() error {
		var err error
		if b.Version, err = bioVersions.read(r); err != nil {
			return err
		}
		if err := r.U32s(&b.Level, &b.Experience, &b.AttributePoints, &b.SkillPoints, &b.DevotionPoints, &b.TotalDevotion); err != nil {
			return err
		}
		return r.F32s(&b.Physique, &b.Cunning, &b.Spirit, &b.Health, &b.Energy)
	})
}

func (b Bio) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_BIO, func() error {
		if err := w.U32s(b.Version, b.Level, b.Experience, b.AttributePoints, b.SkillPoints, b.DevotionPoints, b.TotalDevotion); err != nil {
			return err
		}
		return w.F32s(b.Physique, b.Cunning, b.Spirit, b.Health, b.Energy)
	})
}
