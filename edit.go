package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/spf13/cobra"

	"gdedit/character"
)

// write_file is os.WriteFile, swappable so tests can make a save fail halfway
var write_file = os.WriteFile

// save writes c over path, keeping the old file as <path>.<ksuid>.bak if backups are on.
// The new file is fully encoded before the old one is touched.
func (a *app) save(c *character.Character, path string) error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}

	if !a.cfg.Backup {
		return errors.Wrapf(write_file(path, data, 0o644), "writing %s", path)
	}

	backup := path + "." + ksuid.New().String() + ".bak"
	if err := os.Rename(path, backup); err != nil {
		return errors.Wrap(err, "backing up")
	}
	a.log.Infow("backed up", "from", path, "to", backup)
	if err := write_file(path, data, 0o644); err != nil {
		// put things back how they were
		if rerr := os.Rename(backup, path); rerr != nil {
			a.log.Errorw("restoring backup failed", "backup", backup, "path", path, "error", rerr)
			return errors.Wrapf(err, "writing %s (restoring it also failed: %v; the old save is at %s)", path, rerr, backup)
		}
		return errors.Wrapf(err, "writing %s (old save restored)", path)
	}
	return nil
}

func (a *app) rename_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <name> <new name>",
		Short: "Rename a character in place",
		Long: `Rename a character in place.  The character's directory keeps its old name;
the game goes by the name inside the file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, path, err := a.load(args[0])
			if err != nil {
				return err
			}
			old := c.Header.Name
			if err := a.save(c.Rename(args[1]), path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is now %s\n", old, c.Header.Name)
			return nil
		},
	}
}

func (a *app) clone_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <name> <new name>",
		Short: "Copy a character under a new name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, path, err := a.load(args[0])
			if err != nil {
				return err
			}
			dir := filepath.Join(filepath.Dir(filepath.Dir(path)), "_"+args[1])
			if _, err := os.Stat(dir); err == nil {
				return errors.Errorf("%s already exists", dir)
			}
			if err := os.Mkdir(dir, 0o755); err != nil {
				return err
			}
			dst := filepath.Join(dir, character.FILENAME)
			if err := c.Rename(args[1]).Save(dst); err != nil {
				os.RemoveAll(dir)
				return err
			}
			fmt.Fprintf(a.out, "saved %s\n", dst)
			return nil
		},
	}
}

var resets = map[string]func(*character.Character) *character.Character{
	"all":        (*character.Character).ResetAll,
	"skills":     (*character.Character).ResetSkills,
	"attributes": (*character.Character).ResetAttributes,
	"devotions":  (*character.Character).ResetDevotions,
	"deaths":     (*character.Character).ResetDeaths,
}

func reset_names() []string {
	return []string{"all", "skills", "attributes", "devotions", "deaths"}
}

func (a *app) reset_cmd() *cobra.Command {
	return &cobra.Command{
		Use:       "reset <name> all|skills|attributes|devotions|deaths",
		Short:     "Refund skills, attributes or devotions, or forget deaths",
		Args:      cobra.ExactArgs(2),
		ValidArgs: reset_names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			reset, ok := resets[strings.ToLower(args[1])]
			if !ok {
				return errors.Errorf("can't reset %q; choose from %s", args[1], strings.Join(reset_names(), ", "))
			}
			c, path, err := a.load(args[0])
			if err != nil {
				return err
			}
			before := *c
			before.Skills.Skills = append([]character.Skill(nil), c.Skills.Skills...)
			reset(c)
			for _, d := range character.Diff(&before, c) {
				fmt.Fprintln(a.out, d)
			}
			return a.save(c, path)
		},
	}
}
