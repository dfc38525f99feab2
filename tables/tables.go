package tables

// These tables are in their own file because everything else needs them.

// Block sequence ids.  Each top-level record is framed with its own id, and
// a record turning up under the wrong id means we've lost our place in the file.
const (
	SEQ_NESTED    = 0 // sacks, stash pages: anything inside another block
	SEQ_INFO      = 1
	SEQ_BIO       = 2
	SEQ_INVENTORY = 3
	SEQ_STASH     = 4
	SEQ_RESPAWNS  = 5
	SEQ_TELEPORTS = 6
	SEQ_MARKERS   = 7
	SEQ_SKILLS    = 8
	SEQ_CRUCIBLE  = 10
	SEQ_NOTES     = 12
	SEQ_FACTIONS  = 13
	SEQ_UI        = 14
	SEQ_TUTORIALS = 15
	SEQ_STATS     = 16
	SEQ_SHRINES   = 17
)

// Seq_name names a block sequence id, for dumps and error messages.
func Seq_name(seq uint32) string {
	names := map[uint32]string{
		SEQ_NESTED:    "Nested",
		SEQ_INFO:      "Info",
		SEQ_BIO:       "Bio",
		SEQ_INVENTORY: "Inventory",
		SEQ_STASH:     "Stash",
		SEQ_RESPAWNS:  "Respawns",
		SEQ_TELEPORTS: "Teleports",
		SEQ_MARKERS:   "Markers",
		SEQ_SKILLS:    "Skills",
		SEQ_CRUCIBLE:  "Crucible",
		SEQ_NOTES:     "Notes",
		SEQ_FACTIONS:  "Factions",
		SEQ_UI:        "UI",
		SEQ_TUTORIALS: "Tutorials",
		SEQ_STATS:     "Stats",
		SEQ_SHRINES:   "Shrines",
	}
	name, ok := names[seq]
	if !ok {
		return "Unknown"
	}
	return name
}

// Fixed counts
const (
	DIFFICULTIES     = 3 // Normal, Elite, Ultimate
	SHRINE_LISTS     = 6 // restored and found, per difficulty
	EQUIPMENT_SLOTS  = 12
	WEAPON_SLOTS     = 2
	HOTBAR_BARS      = 5
	UI_SLOTS         = 46
	UI_SLOTS_LEGACY  = 36
	UI_SLOT_SKILL    = 0
	UI_SLOT_ITEM     = 4
	STATS_DIFFICULTY = DIFFICULTIES
)

// Skill records
const (
	PREFIX_DEVOTION    = "records/skills/devotion"
	PREFIX_PLAYERCLASS = "records/skills/playerclass"
)

// Attributes
const (
	ATTRIBUTE_BASE     = 50.0
	ATTRIBUTE_PER_STEP = 8.0 // each attribute point spent adds this much
)

// Skill_points_for_level is the number of skill points a character of the given level has earned.
//
//	3 per level from 2 to 50   (147)
//	2 per level from 51 to 90  (80)
//	1 per level from 91 to 100 (10)
func Skill_points_for_level(level uint32) uint32 {
	switch {
	case level <= 1:
		return 0
	case level <= 50:
		return (level - 1) * 3
	case level <= 90:
		return 147 + (level-50)*2
	default:
		return 147 + 80 + level - 90
	}
}

var Difficulties = []string{"Normal", "Elite", "Ultimate"}

var Crucible_difficulties = []string{"Aspirant", "Challenger", "Gladiator"}
