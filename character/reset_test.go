package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdedit/tables"
)

func skilled() *Character {
	c := New("Respec")
	c.Bio.Level = 20
	c.Bio.SkillPoints = 1
	c.Bio.DevotionPoints = 2
	c.Bio.TotalDevotion = 9
	c.Skills.SkillReclamationPointsUsed = 4
	c.Skills.DevotionReclamationPointsUsed = 6
	c.Skills.Skills = []Skill{
		{Name: "records/skills/playerclass01/warcry1.dbr", Level: 10, Enabled: 1, AutoCastSkill: "a", AutoCastController: "b"},
		{Name: "records/skills/playerclass01/fighting_form.dbr", Level: 4, Enabled: 0},
		{Name: "records/skills/playerclass02/mastery.dbr", Level: 8, Enabled: 1},
		{Name: "records/skills/devotion/tier1_01a.dbr", Level: 1, Enabled: 1, DevotionLevel: 1},
		{Name: "records/skills/devotion/tier1_01b.dbr", Level: 1, Enabled: 1, DevotionLevel: 1},
		{Name: "records/skills/devotion/tier1_02c.dbr", Level: 1, Enabled: 1, DevotionLevel: 4, Experience: 900},
		{Name: "records/skills/devotion/tier2_05a.dbr", Level: 0, Enabled: 0, DevotionLevel: 1},
		{Name: "records/skills/itemskillsgdx1/granted.dbr", Level: 1, Enabled: 1},
	}
	return c
}

func names(skills []Skill) []string {
	out := []string{}
	for _, s := range skills {
		out = append(out, s.Name)
	}
	return out
}

func TestResetAttributes(t *testing.T) {
	c := New("Attr")
	c.Bio.AttributePoints = 3
	c.Bio.Physique = tables.ATTRIBUTE_BASE + 8*10
	c.Bio.Cunning = tables.ATTRIBUTE_BASE + 8*5
	c.Bio.Spirit = tables.ATTRIBUTE_BASE

	c.ResetAttributes()
	assert.Equal(t, uint32(18), c.Bio.AttributePoints)
	assert.Equal(t, float32(50), c.Bio.Physique)
	assert.Equal(t, float32(50), c.Bio.Cunning)
	assert.Equal(t, float32(50), c.Bio.Spirit)

	// already at base: nothing to refund
	c.ResetAttributes()
	assert.Equal(t, uint32(18), c.Bio.AttributePoints)
}

func TestResetSkills(t *testing.T) {
	c := skilled().ResetSkills()

	// enabled class skills refunded, disabled one just removed
	assert.Equal(t, uint32(1+10+8), c.Bio.SkillPoints)
	assert.Equal(t, uint32(0), c.Skills.SkillReclamationPointsUsed)
	assert.Equal(t, []string{
		"records/skills/devotion/tier1_01a.dbr",
		"records/skills/devotion/tier1_01b.dbr",
		"records/skills/devotion/tier1_02c.dbr",
		"records/skills/devotion/tier2_05a.dbr",
		"records/skills/itemskillsgdx1/granted.dbr",
	}, names(c.Skills.Skills))
}

func TestResetDevotions(t *testing.T) {
	c := skilled().ResetDevotions()

	assert.Equal(t, uint32(0), c.Skills.DevotionReclamationPointsUsed)
	assert.Equal(t, uint32(2+3), c.Bio.DevotionPoints)
	assert.Equal(t, c.Bio.DevotionPoints, c.Bio.TotalDevotion)

	assert.Equal(t, []string{
		"records/skills/playerclass01/warcry1.dbr",
		"records/skills/playerclass01/fighting_form.dbr",
		"records/skills/playerclass02/mastery.dbr",
		"records/skills/devotion/tier1_02c.dbr",
		"records/skills/devotion/tier2_05a.dbr",
		"records/skills/itemskillsgdx1/granted.dbr",
	}, names(c.Skills.Skills))

	celestial := c.Skills.Skills[3]
	assert.Equal(t, uint8(1), celestial.Enabled)
	assert.Equal(t, uint32(0), celestial.Level)
	assert.Equal(t, uint32(900), celestial.Experience)

	assert.Empty(t, c.Skills.Skills[0].AutoCastSkill)
	assert.Empty(t, c.Skills.Skills[0].AutoCastController)
}

func TestResetAllSurvivesRoundTrip(t *testing.T) {
	c := skilled()
	c.Stats.Deaths = 99
	c.Bio.Physique = 90
	c.ResetAll()

	assert.Equal(t, uint32(0), c.Stats.Deaths)
	assert.Equal(t, float32(50), c.Bio.Physique)
	assert.Equal(t, uint32(5), c.Bio.AttributePoints)
	assert.Equal(t, []string{
		"records/skills/devotion/tier1_02c.dbr",
		"records/skills/devotion/tier2_05a.dbr",
		"records/skills/itemskillsgdx1/granted.dbr",
	}, names(c.Skills.Skills))

	roundTrip(t, c)
}

func TestResetEverythingAway(t *testing.T) {
	c := New("Empty")
	c.Skills.Skills = []Skill{{Name: "records/skills/playerclass03/x.dbr", Level: 2, Enabled: 1}}
	c.ResetSkills()
	require.Nil(t, c.Skills.Skills)
	roundTrip(t, c)
}

func TestDiff(t *testing.T) {
	a, b := sample(), sample()
	assert.Nil(t, Diff(a, b))

	b.Stats.Deaths = 0
	b.Inventory.Sacks[2].Items[1].X = 9
	diffs := Diff(a, b)
	require.Len(t, diffs, 2)
	assert.Contains(t, diffs[0], "Inventory.Sacks")
	assert.Contains(t, diffs[1], "Stats.Deaths")
}
