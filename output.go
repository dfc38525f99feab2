package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gdedit/character"
	"gdedit/tables"
)

func heading(w io.Writer, title string) {
	pad := max(0, 50-len(title)-2)
	fmt.Fprintf(w, "%s %s %s\n", strings.Repeat("=", pad/2), title, strings.Repeat("=", pad-pad/2))
}

// print_info prints the interesting bits of a character
func print_info(out io.Writer, c *character.Character) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	row := func(k string, v any) { fmt.Fprintf(w, "%s:\t%v\n", k, v) }

	heading(w, "Main stats")
	row("Name", c.Header.Name)
	row("Sex", c.Header.Sex)
	row("Level", c.Header.Level)
	row("Hardcore", c.Header.Hardcore == 1)
	row("Expansion", c.Header.ExpansionStatus)
	row("Iron", c.Info.Money)
	row("Max difficulty", c.Info.GreatestDifficulty)
	if c.Info.HasCrucible() {
		row("Max crucible difficulty", c.Info.GreatestCrucibleDifficulty)
	}
	row("Experience", c.Bio.Experience)
	row("Skill points", c.Bio.SkillPoints)
	row("Devotion points", c.Bio.DevotionPoints)
	row("Total devotion points", c.Bio.TotalDevotion)
	row("Attribute points", c.Bio.AttributePoints)
	row("Physique", c.Bio.Physique)
	row("Cunning", c.Bio.Cunning)
	row("Spirit", c.Bio.Spirit)
	row("Health", c.Bio.Health)
	row("Energy", c.Bio.Energy)

	heading(w, "Stats")
	row("Playtime", time.Duration(c.Stats.Playtime)*time.Second)
	row("Deaths", c.Stats.Deaths)
	row("Hero kills", c.Stats.HeroKills)
	row("Champion kills", c.Stats.ChampionKills)
	row("Kills", c.Stats.Kills)

	heading(w, "Skills")
	class, devotions := 0, 0
	for _, s := range c.Skills.Skills {
		switch {
		case s.IsClassSkill():
			class++
		case s.IsDevotion():
			devotions++
		}
	}
	row("Class skills", class)
	row("Devotions", devotions)
	row("Skill points expected at this level", tables.Skill_points_for_level(c.Bio.Level))
	row("Skill reclamation points used", c.Skills.SkillReclamationPointsUsed)
	row("Devotion reclamation points used", c.Skills.DevotionReclamationPointsUsed)
	heading(w, "End")
	w.Flush()
}
