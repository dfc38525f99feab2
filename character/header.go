package character

import (
	"fmt"

	"github.com/pkg/errors"

	"gdedit/readers"
	"gdedit/types"
	"gdedit/writers"
)

type Sex uint8

const (
	Female Sex = iota
	Male
)

func ParseSex(b uint8) (Sex, error) {
	switch Sex(b) {
	case Female, Male:
		return Sex(b), nil
	}
	return Female, &types.EnumError{Field: "sex", Value: b}
}

func (s Sex) String() string {
	if s == Male {
		return "Male"
	}
	return "Female"
}

// ExpansionStatus is the newest content the character has been played with.
// The on-disk numbering is not release order.
type ExpansionStatus uint8

const (
	Vanilla         ExpansionStatus = 0
	AshesOfMalmouth ExpansionStatus = 1
	Crucible        ExpansionStatus = 2
	ForgottenGods   ExpansionStatus = 3
)

func ParseExpansionStatus(b uint8) (ExpansionStatus, error) {
	if b > uint8(ForgottenGods) {
		return Vanilla, &types.EnumError{Field: "expansion status", Value: b}
	}
	return ExpansionStatus(b), nil
}

func (e ExpansionStatus) String() string {
	if e > ForgottenGods {
		return fmt.Sprintf("Unknown (%v)", uint8(e))
	}
	return []string{"Vanilla", "AshesOfMalmouth", "Crucible", "ForgottenGods"}[e]
}

// Header is the unframed record at the front of the file.  It is all that's needed to list characters.
type Header struct {
	Version         uint32
	Name            string
	Sex             Sex
	ClassID         string
	Level           uint32
	Hardcore        uint8
	ExpansionStatus ExpansionStatus
}

func (h *Header) Read(r *readers.Reader) error {
	var err error
	if h.Version, err = headerVersions.read(r); err != nil {
		return err
	}
	if h.Name, err = r.ReadWString(); err != nil {
		return err
	}
	sex, err := r.ReadU8()
	if err != nil {
		return err
	}
	if h.Sex, err = ParseSex(sex); err != nil {
		return err
	}
	if h.ClassID, err = r.ReadString(); err != nil {
		return err
	}
	if err := r.U32s(&h.Level); err != nil {
		return err
	}
	if err := r.U8s(&h.Hardcore); err != nil {
		return err
	}

	if headerVersions.Has(HeaderExpansion, h.Version) {
		status, err := r.ReadU8()
		if err != nil {
			return err
		}
		if h.ExpansionStatus, err = ParseExpansionStatus(status); err != nil {
			return err
		}
	}
	return nil
}

func (h Header) Write(w *writers.Writer) error {
	if err := w.WriteU32(h.Version); err != nil {
		return err
	}
	if err := w.WriteWString(h.Name); err != nil {
		return errors.Wrap(err, "name")
	}
	if err := w.WriteU8(uint8(h.Sex)); err != nil {
		return err
	}
	if err := w.WriteString(h.ClassID); err != nil {
		return err
	}
	if err := w.WriteU32(h.Level); err != nil {
		return err
	}
	if err := w.WriteU8(h.Hardcore); err != nil {
		return err
	}
	if headerVersions.Has(HeaderExpansion, h.Version) {
		return w.WriteU8(uint8(h.ExpansionStatus))
	}
	return nil
}
