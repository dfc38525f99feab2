package character

import (
	"slices"

	"gdedit/readers"
)

// Feature is an optional group of fields that only some versions of a record carry.
type Feature int

const (
	SaveCrucible Feature = iota // file: trailing crucible block

	HeaderExpansion // header: expansion status byte

	InfoCrucible    // info: greatest crucible difficulty + current tribute
	InfoLootMode    // info: loot mode (replaced by loot filters)
	InfoLootFilters // info: loot filter list

	StashPaged // stash: page count, and each page in its own block

	UIWideHotbar // ui: 46 slots rather than 36

	StatsSurvival // stats: survival mode records
	StatsEndless  // stats: skill map, endless souls/essence, difficulty skip
)

// span is the (inclusive) range of versions a feature is present in; until == 0 means "and later".
type span struct {
	since, until uint32
}

func (s span) covers(v uint32) bool {
	return v >= s.since && (s.until == 0 || v <= s.until)
}

// VersionTable is what a record type knows about its own on-disk versions.
type VersionTable struct {
	Name     string
	Accepted []uint32
	Features map[Feature]span
}

// Has reports whether a record at version v carries feature f.
func (vt VersionTable) Has(f Feature, v uint32) bool {
	s, ok := vt.Features[f]
	return ok && s.covers(v)
}

func (vt VersionTable) Supports(v uint32) bool {
	return slices.Contains(vt.Accepted, v)
}

// Latest is the highest accepted version; new records are created at it.
func (vt VersionTable) Latest() uint32 {
	return slices.Max(vt.Accepted)
}

// Monotonic reports whether every feature, once introduced, stays for all later accepted versions.
// Returns the offending features otherwise.
func (vt VersionTable) Monotonic() []Feature {
	bad := []Feature{}
	for f, s := range vt.Features {
		if s.until != 0 && s.until < vt.Latest() {
			bad = append(bad, f)
		}
	}
	slices.Sort(bad)
	return bad
}

func (vt VersionTable) read(r *readers.Reader) (uint32, error) {
	return r.ReadVersion(vt.Accepted)
}

var (
	saveVersions = VersionTable{"Save", []uint32{6, 7, 8}, map[Feature]span{
		SaveCrucible: {7, 0},
	}}
	headerVersions = VersionTable{"Header", []uint32{1, 2}, map[Feature]span{
		HeaderExpansion: {2, 0},
	}}
	infoVersions = VersionTable{"Info", []uint32{3, 4, 5}, map[Feature]span{
		InfoCrucible: {4, 0},
		// The only feature ever dropped: loot mode gave way to loot filters in version 5.
		InfoLootMode:    {2, 4},
		InfoLootFilters: {5, 0},
	}}
	bioVersions       = VersionTable{"Bio", []uint32{8}, nil}
	inventoryVersions = VersionTable{"Inventory", []uint32{4, 5}, nil}
	stashVersions     = VersionTable{"Stash", []uint32{5, 6}, map[Feature]span{
		StashPaged: {6, 0},
	}}
	respawnVersions  = VersionTable{"Respawns", []uint32{1}, nil}
	teleportVersions = VersionTable{"Teleports", []uint32{1}, nil}
	markerVersions   = VersionTable{"Markers", []uint32{1}, nil}
	shrineVersions   = VersionTable{"Shrines", []uint32{2}, nil}
	skillVersions    = VersionTable{"Skills", []uint32{5}, nil}
	noteVersions     = VersionTable{"Notes", []uint32{1}, nil}
	factionVersions  = VersionTable{"Factions", []uint32{5}, nil}
	uiVersions       = VersionTable{"UI", []uint32{4, 5}, map[Feature]span{
		UIWideHotbar: {5, 0},
	}}
	tutorialVersions = VersionTable{"Tutorials", []uint32{1}, nil}
	statsVersions    = VersionTable{"Stats", []uint32{7, 9, 11}, map[Feature]span{
		StatsSurvival: {9, 0},
		StatsEndless:  {11, 0},
	}}
	crucibleVersions = VersionTable{"Crucible", []uint32{2}, nil}
)

// VersionTables lists every record type's table, in file order.
func VersionTables() []VersionTable {
	return []VersionTable{
		headerVersions, saveVersions, infoVersions, bioVersions, inventoryVersions, stashVersions,
		respawnVersions, teleportVersions, markerVersions, shrineVersions, skillVersions,
		noteVersions, factionVersions, uiVersions, tutorialVersions, statsVersions, crucibleVersions,
	}
}
