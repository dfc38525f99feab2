package character

import (
	"gdedit/readers"
	"gdedit/tables"
	"gdedit/writers"
)

// UIDLists is one list of location UIDs per difficulty (or per shrine state and difficulty).
type UIDLists [][]UID

func readUIDLists(r *readers.Reader, n int) (UIDLists, error) {
	lists := make(UIDLists, n)
	for i := range lists {
		var err error
		if lists[i], err = readers.ReadVec[UID](r); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

func (l UIDLists) write(w *writers.Writer, n int) error {
	for i := range n {
		var list []UID
		if i < len(l) {
			list = l[i]
		}
		if err := writers.WriteVec(w, list); err != nil {
			return err
		}
	}
	return nil
}

// Respawns is block 5: discovered respawn points, and the one in use, per difficulty.
type Respawns struct {
	Version uint32
	UIDs    UIDLists
	Spawns  [tables.DIFFICULTIES]UID
}

func (rs *Respawns) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_RESPAWNS, func() error {
		var err error
		if rs.Version, err = respawnVersions.read(r); err != nil {
			return err
		}
		if rs.UIDs, err = readUIDLists(r, tables.DIFFICULTIES); err != nil {
			return err
		}
		return readers.ReadInto(r, rs.Spawns[:])
	})
}

func (rs Respawns) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_RESPAWNS, func() error {
		if err := w.WriteU32(rs.Version); err != nil {
			return err
		}
		if err := rs.UIDs.write(w, tables.DIFFICULTIES); err != nil {
			return err
		}
		return writers.WriteArr(w, rs.Spawns[:])
	})
}

// Teleports (block 6) and Markers (block 7) have the same shape: a version and one UID list per difficulty.
type Teleports struct {
	Version uint32
	UIDs    UIDLists
}

func (t *Teleports) Read(r *readers.Reader) error {
	return readPerDifficulty(r, tables.SEQ_TELEPORTS, teleportVersions, &t.Version, &t.UIDs)
}

func (t Teleports) Write(w *writers.Writer) error {
	return writePerDifficulty(w, tables.SEQ_TELEPORTS, t.Version, t.UIDs)
}

type Markers struct {
	Version uint32
	UIDs    UIDLists
}

func (m *Markers) Read(r *readers.Reader) error {
	return readPerDifficulty(r, tables.SEQ_MARKERS, markerVersions, &m.Version, &m.UIDs)
}

func (m Markers) Write(w *writers.Writer) error {
	return writePerDifficulty(w, tables.SEQ_MARKERS, m.Version, m.UIDs)
}

func readPerDifficulty(r *readers.Reader, seq uint32, vt VersionTable, version *uint32, uids *UIDLists) error {
	return r.Framed(seq, func() error {
		var err error
		if *version, err = vt.read(r); err != nil {
			return err
		}
		*uids, err = readUIDLists(r, tables.DIFFICULTIES)
		return err
	})
}

func writePerDifficulty(w *writers.Writer, seq uint32, version uint32, uids UIDLists) error {
	return w.Framed(seq, func() error {
		if err := w.WriteU32(version); err != nil {
			return err
		}
		return uids.write(w, tables.DIFFICULTIES)
	})
}

// Shrines is block 17: restored and discovered shrines, two lists per difficulty.
type Shrines struct {
	Version uint32
	UIDs    UIDLists
}

func (s *Shrines) Read(r *readers.Reader) error {
	return r.Framed(tables.SEQ_SHRINES, func() error {
		var err error
		if s.Version, err = shrineVersions.read(r); err != nil {
			return err
		}
		s.UIDs, err = readUIDLists(r, tables.SHRINE_LISTS)
		return err
	})
}

func (s Shrines) Write(w *writers.Writer) error {
	return w.Framed(tables.SEQ_SHRINES, func() error {
		if err := w.WriteU32(s.Version); err != nil {
			return err
		}
		return s.UIDs.write(w, tables.SHRINE_LISTS)
	})
}
