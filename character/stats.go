package character

import (
	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

type SkillMap struct {
	Skill  string
	Active uint32
}

func (m *SkillMap) Read(r *readers.Reader) error {
	if err := r.Strings(&m.Skill); err != nil {
		return err
	}
	return r.U32s(&m.Active)
}

func (m SkillMap) Write(w *writers.Writer) error {
	if err := w.WriteString(m.Skill); err != nil {
		return err
	}
	return w.WriteU32(m.Active)
}

// StatsPerDifficulty is split in two on disk: the nemesis kills come much later than the rest.
type StatsPerDifficulty struct {
	GreatestMonsterKilledName        string
	GreatestMonsterKilledLevel       uint32
	GreatestMonsterKilledLifeAndMana uint32
	LastMonsterHit                   string
	LastMonsterHitBy                 string
	NemesisKills                     uint32
}

// Stats is block 16, the numbers shown on the character sheet's statistics page.
type Stats struct {
	Version uint32

	Playtime                uint32
	Deaths                  uint32
	Kills                   uint32
	ExperienceFromKills     uint32
	HealthPotionsUsed       uint32
	ManaPotionsUsed         uint32
	MaxLevel                uint32
	HitsReceived            uint32
	HitsInflicted           uint32
	CriticalHitsInflicted   uint32
	CriticalHitsReceived    uint32
	GreatestDamageInflicted float32

	PerDifficulty [tables.STATS_DIFFICULTY]StatsPerDifficulty

	ChampionKills             uint32
	LastHit                   float32
	LastHitBy                 float32
	GreatestDamageReceived    float32
	HeroKills                 uint32
	ItemsCrafted              uint32
	RelicsCrafted             uint32
	TranscendentRelicsCrafted uint32
	MythicalRelicsCrafted     uint32
	ShrinesRestored           uint32
	OneShotChestsOpened       uint32
	LoreNotesCollected        uint32

	SurvivalGreatestWave      uint32
	SurvivalGreatestScore     uint32
	SurvivalDefensesBuilt     uint32
	SurvivalPowerupsActivated uint32

	SkillMap       []SkillMap
	EndlessSouls   uint32
	EndlessEssence uint32
	DifficultySkip uint8

	Unknown1 uint32
	Unknown2 uint32
}

func (s *Stats) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_STATS, func() error {
		var err error
		if s.Version, err = statsVersions.read(r); err != nil {
			return err
		}

		if err := r.U32s(&s.Playtime, &s.Deaths, &s.Kills, &s.ExperienceFromKills, &s.HealthPotionsUsed,
			&s.ManaPotionsUsed, &s.MaxLevel, &s.HitsReceived, &s.HitsInflicted, &s.CriticalHitsInflicted,
			&s.CriticalHitsReceived); err != nil {
			return err
		}
		if err := r.F32s(&s.GreatestDamageInflicted); err != nil {
			return err
		}

		for i := range s.PerDifficulty {
			d := &s.PerDifficulty[i]
			if err := r.Strings(&d.GreatestMonsterKilledName); err != nil {
				return err
			}
			if err := r.U32s(&d.GreatestMonsterKilledLevel, &d.GreatestMonsterKilledLifeAndMana); err != nil {
				return err
			}
			if err := r.Strings(&d.LastMonsterHit, &d.LastMonsterHitBy); err != nil {
				return err
			}
		}

		if err := r.U32s(&s.ChampionKills); err != nil {
			return err
		}
		if err := r.F32s(&s.LastHit, &s.LastHitBy, &s.GreatestDamageReceived); err != nil {
			return err
		}
		if err := r.U32s(&s.HeroKills, &s.ItemsCrafted, &s.RelicsCrafted, &s.TranscendentRelicsCrafted,
			&s.MythicalRelicsCrafted, &s.ShrinesRestored, &s.OneShotChestsOpened, &s.LoreNotesCollected); err != nil {
			return err
		}

		for i := range s.PerDifficulty {
			if err := r.U32s(&s.PerDifficulty[i].NemesisKills); err != nil {
				return err
			}
		}

		if statsVersions.Has(StatsSurvival, s.Version) {
			if err := r.U32s(&s.SurvivalGreatestWave, &s.SurvivalGreatestScore, &s.SurvivalDefensesBuilt,
				&s.SurvivalPowerupsActivated); err != nil {
				return err
			}
		}

		if statsVersions.Has(StatsEndless, s.Version) {
			if s.SkillMap, err = readers.ReadVec[SkillMap](r); err != nil {
				return err
			}
			if err := r.U32s(&s.EndlessSouls, &s.EndlessEssence); err != nil {
				return err
			}
			if err := r.U8s(&s.DifficultySkip); err != nil {
				return err
			}
		}

		return r.U32s(&s.Unknown1, &s.Unknown2)
	})
}

func (s Stats) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_STATS, func() error {
		if err := w.U32s(s.Version, s.Playtime, s.Deaths, s.Kills, s.ExperienceFromKills, s.HealthPotionsUsed,
			s.ManaPotionsUsed, s.MaxLevel, s.HitsReceived, s.HitsInflicted, s.CriticalHitsInflicted,
			s.CriticalHitsReceived); err != nil {
			return err
		}
		if err := w.WriteF32(s.GreatestDamageInflicted); err != nil {
			return err
		}

		for _, d := range s.PerDifficulty {
			if err := w.WriteString(d.GreatestMonsterKilledName); err != nil {
				return err
			}
			if err := w.U32s(d.GreatestMonsterKilledLevel, d.GreatestMonsterKilledLifeAndMana); err != nil {
				return err
			}
			if err := w.Strings(d.LastMonsterHit, d.LastMonsterHitBy); err != nil {
				return err
			}
		}

		if err := w.WriteU32(s.ChampionKills); err != nil {
			return err
		}
		if err := w.F32s(s.LastHit, s.LastHitBy, s.GreatestDamageReceived); err != nil {
			return err
		}
		if err := w.U32s(s.HeroKills, s.ItemsCrafted, s.RelicsCrafted, s.TranscendentRelicsCrafted,
			s.MythicalRelicsCrafted, s.ShrinesRestored, s.OneShotChestsOpened, s.LoreNotesCollected); err != nil {
			return err
		}

		for _, d := range s.PerDifficulty {
			if err := w.WriteU32(d.NemesisKills); err != nil {
				return err
			}
		}

		if statsVersions.Has(StatsSurvival, s.Version) {
			if err := w.U32s(s.SurvivalGreatestWave, s.SurvivalGreatestScore, s.SurvivalDefensesBuilt,
				s.SurvivalPowerupsActivated); err != nil {
				return err
			}
		}

		if statsVersions.Has(StatsEndless, s.Version) {
			if err := writers.WriteVec(w, s.SkillMap); err != nil {
				return err
			}
			if err := w.U32s(s.EndlessSouls, s.EndlessEssence); err != nil {
				return err
			}
			if err := w.WriteU8(s.DifficultySkip); err != nil {
				return err
			}
		}

		return w.U32s(s.Unknown1, s.Unknown2)
	})
}
