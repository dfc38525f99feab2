package character

import (
	"slices"
	"strings"

	"gdedit/tables"
)

// Edits.  All of these return the character so they can be chained:
//
//	c.ResetSkills().ResetAttributes().Rename("Bob")

func (c *Character) Rename(name string) *Character {
	c.Header.Name = name
	return c
}

// ResetAll is every reset, in the order the game's own respec would do them.
func (c *Character) ResetAll() *Character {
	return c.ResetDevotions().ResetAttributes().ResetDeaths().ResetSkills()
}

// ResetAttributes puts physique, cunning and spirit back to base and refunds the points.
func (c *Character) ResetAttributes() *Character {
	spent := (c.Bio.Cunning-tables.ATTRIBUTE_BASE)/tables.ATTRIBUTE_PER_STEP +
		(c.Bio.Physique-tables.ATTRIBUTE_BASE)/tables.ATTRIBUTE_PER_STEP +
		(c.Bio.Spirit-tables.ATTRIBUTE_BASE)/tables.ATTRIBUTE_PER_STEP
	if spent > 0 {
		c.Bio.AttributePoints += uint32(spent)
	}
	c.Bio.Cunning = tables.ATTRIBUTE_BASE
	c.Bio.Physique = tables.ATTRIBUTE_BASE
	c.Bio.Spirit = tables.ATTRIBUTE_BASE
	return c
}

// ResetSkills removes every class skill and refunds the levels of the enabled ones.
func (c *Character) ResetSkills() *Character {
	c.Skills.SkillReclamationPointsUsed = 0

	refund := uint32(0)
	for _, s := range c.Skills.Skills {
		if s.IsClassSkill() && s.Enabled == 1 {
			refund += s.Level
		}
	}

	c.Skills.Skills = slices.DeleteFunc(c.Skills.Skills, func(s Skill) bool {
		return strings.Contains(s.Name, tables.PREFIX_PLAYERCLASS)
	})
	if len(c.Skills.Skills) == 0 {
		c.Skills.Skills = nil
	}
	c.Bio.SkillPoints += refund
	return c
}

// ResetDevotions refunds every taken devotion node.  Nodes that grant a skill of their own
// (devotion level above 1) stay in the list, but go back to level 0.
func (c *Character) ResetDevotions() *Character {
	c.Skills.DevotionReclamationPointsUsed = 0

	taken := func(s Skill) bool {
		return s.IsDevotion() && s.Enabled == 1 && s.Level == 1
	}

	refund := uint32(0)
	for _, s := range c.Skills.Skills {
		if taken(s) {
			refund++
		}
	}

	c.Skills.Skills = slices.DeleteFunc(c.Skills.Skills, func(s Skill) bool {
		return s.DevotionLevel == 1 && taken(s)
	})
	if len(c.Skills.Skills) == 0 {
		c.Skills.Skills = nil
	}

	for i := range c.Skills.Skills {
		s := &c.Skills.Skills[i]
		if s.DevotionLevel > 1 {
			s.Enabled = 1
			s.Level = 0
		}
		// auto-casts are usually bound to devotion skills, which may be gone now
		if s.IsClassSkill() {
			s.AutoCastSkill = ""
			s.AutoCastController = ""
		}
	}

	c.Bio.DevotionPoints += refund
	c.Bio.TotalDevotion = c.Bio.DevotionPoints
	return c
}

func (c *Character) ResetDeaths() *Character {
	c.Stats.Deaths = 0
	return c
}
