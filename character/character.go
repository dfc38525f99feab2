// Package character is the record tree of a player.gdc file, and the code that moves it to and from disk.
package character

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"gdedit/keystream"
	"gdedit/readers"
	"gdedit/tables"
	"gdedit/types"
	"gdedit/writers"
)

// The name of the file inside each character's directory
const FILENAME = "player.gdc"

type Character struct {
	// Seed is the raw key seed the file was written with; re-used on save so an unmodified tree
	// encodes to the bytes it was decoded from.
	Seed uint32

	Header    Header
	Version   uint32
	UID       UID
	Info      Info
	Bio       Bio
	Inventory Inventory
	Stash     Stash
	Respawns  Respawns
	Teleports Teleports
	Markers   Markers
	Shrines   Shrines
	Skills    Skills
	Notes     Notes
	Factions  Factions
	UI        UI
	Tutorials Tutorials
	Stats     Stats
	Crucible  CrucibleTokens
}

type record struct {
	name string
	dec  readers.Decoder
	enc  writers.Encoder
}

// records lists the framed subsystems in file order.  The crucible block is handled separately.
func (c *Character) records() []record {
	return []record{
		{"info", &c.Info, c.Info},
		{"bio", &c.Bio, c.Bio},
		{"inventory", &c.Inventory, c.Inventory},
		{"stash", &c.Stash, c.Stash},
		{"respawns", &c.Respawns, c.Respawns},
		{"teleports", &c.Teleports, c.Teleports},
		{"markers", &c.Markers, c.Markers},
		{"shrines", &c.Shrines, c.Shrines},
		{"skills", &c.Skills, c.Skills},
		{"notes", &c.Notes, c.Notes},
		{"factions", &c.Factions, c.Factions},
		{"ui", &c.UI, c.UI},
		{"tutorials", &c.Tutorials, c.Tutorials},
		{"stats", &c.Stats, c.Stats},
	}
}

// HasCrucible reports whether this save version carries the crucible block.
func (c *Character) HasCrucible() bool {
	return saveVersions.Has(SaveCrucible, c.Version)
}

// New makes a blank level 1 character, every record at its newest version.  The file is unkeyed.
func New(name string) *Character {
	c := &Character{
		Seed: keystream.PlainSeed,
		Header: Header{
			Version:         headerVersions.Latest(),
			Name:            name,
			Level:           1,
			ExpansionStatus: ForgottenGods,
		},
		Version:   saveVersions.Latest(),
		Info:      Info{Version: infoVersions.Latest()},
		Bio:       Bio{Version: bioVersions.Latest(), Level: 1, Physique: tables.ATTRIBUTE_BASE, Cunning: tables.ATTRIBUTE_BASE, Spirit: tables.ATTRIBUTE_BASE},
		Inventory: Inventory{Version: inventoryVersions.Latest()},
		Stash:     Stash{Version: stashVersions.Latest()},
		Respawns:  Respawns{Version: respawnVersions.Latest(), UIDs: make(UIDLists, tables.DIFFICULTIES)},
		Teleports: Teleports{Version: teleportVersions.Latest(), UIDs: make(UIDLists, tables.DIFFICULTIES)},
		Markers:   Markers{Version: markerVersions.Latest(), UIDs: make(UIDLists, tables.DIFFICULTIES)},
		Shrines:   Shrines{Version: shrineVersions.Latest(), UIDs: make(UIDLists, tables.SHRINE_LISTS)},
		Skills:    Skills{Version: skillVersions.Latest()},
		Notes:     Notes{Version: noteVersions.Latest()},
		Factions:  Factions{Version: factionVersions.Latest()},
		UI:        UI{Version: uiVersions.Latest()},
		Tutorials: Tutorials{Version: tutorialVersions.Latest()},
		Stats:     Stats{Version: statsVersions.Latest()},
		Crucible:  CrucibleTokens{Version: crucibleVersions.Latest()},
	}
	c.UI.Slots = make([]UISlot, c.UI.SlotCount())
	return c
}

// Decode reads a whole character file.  Anything left over after the last block is an error.
func Decode(in io.Reader) (*Character, error) {
	c, _, err := DecodeWithSpans(in)
	return c, err
}

// DecodeWithSpans is Decode, also returning where every block was found.
func DecodeWithSpans(in io.Reader) (*Character, []types.BlockSpan, error) {
	r := readers.NewReader(in)
	c := &Character{}
	if err := c.read(r); err != nil {
		return nil, r.Blocks(), errors.Wrapf(err, "at offset %v", r.Offset())
	}
	return c, r.Blocks(), nil
}

func (c *Character) read(r *readers.Reader) error {
	var err error
	if c.Seed, err = r.Validate(); err != nil {
		return err
	}
	if err := c.Header.Read(r); err != nil {
		return errors.Wrap(err, "reading header")
	}

	sep, err := r.PeekU32()
	if err != nil {
		return errors.Wrap(err, "reading separator")
	}
	if sep != 0 {
		return &types.SeparatorError{Found: sep}
	}

	if c.Version, err = saveVersions.read(r); err != nil {
		return errors.Wrap(err, "reading save version")
	}
	if err := c.UID.Read(r); err != nil {
		return errors.Wrap(err, "reading character uid")
	}

	for _, rec := range c.records() {
		if err := rec.dec.Read(r); err != nil {
			return errors.Wrapf(err, "reading %s", rec.name)
		}
	}
	if c.HasCrucible() {
		if err := c.Crucible.Read(r); err != nil {
			return errors.Wrap(err, "reading crucible")
		}
	}
	return r.ExpectEOF()
}

// Encode writes the whole tree.  Nothing reaches out unless every record encodes.
func (c *Character) Encode(out io.Writer) error {
	w, err := c.encode()
	if err != nil {
		return err
	}
	_, err = w.WriteTo(out)
	return err
}

// Bytes is Encode into memory.
func (c *Character) Bytes() ([]byte, error) {
	w, err := c.encode()
	if err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

func (c *Character) encode() (*writers.Writer, error) {
	w := writers.NewWriter(c.Seed)
	if err := w.WriteU32(types.Magic); err != nil {
		return nil, err
	}
	if err := c.Header.Write(w); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}
	if err := w.PokeU32(0); err != nil {
		return nil, err
	}
	if err := w.WriteU32(c.Version); err != nil {
		return nil, err
	}
	if err := c.UID.Write(w); err != nil {
		return nil, err
	}

	for _, rec := range c.records() {
		if err := rec.enc.Write(w); err != nil {
			return nil, errors.Wrapf(err, "writing %s", rec.name)
		}
	}
	if c.HasCrucible() {
		if err := c.Crucible.Write(w); err != nil {
			return nil, errors.Wrap(err, "writing crucible")
		}
	}
	return w, nil
}

// Load reads the character file at path.
func Load(path string) (*Character, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return c, nil
}

// Save writes the character to path, replacing whatever is there.
// The file is only created once the whole tree has been encoded.
func (c *Character) Save(path string) error {
	data, err := c.Bytes()
	if err != nil {
		return errors.Wrapf(err, "encoding %s", c.Header.Name)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		return errors.Wrapf(err, "saving %s", path)
	}
	return f.Close()
}

// PeekName reads just far enough into a character file to find the character's name.
func PeekName(path string) (string, error) {
	h, err := PeekHeader(path)
	if err != nil {
		return "", err
	}
	return h.Name, nil
}

// PeekHeader reads only the header, which is enough to list characters without decoding everything.
func PeekHeader(path string) (*Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := readers.NewReader(f)
	if _, err := r.Validate(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	h := &Header{}
	if err := h.Read(r); err != nil {
		return nil, errors.Wrapf(err, "reading header of %s", path)
	}
	return h, nil
}
