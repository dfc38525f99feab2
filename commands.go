package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gdedit/character"
	"gdedit/tables"
	"gdedit/utils"
)

func (a *app) find(name string) (utils.CharacterFile, error) {
	return utils.FindCharacter(a.cfg.Dir, name)
}

func (a *app) load(name string) (*character.Character, string, error) {
	cf, err := a.find(name)
	if err != nil {
		return nil, "", err
	}
	c, err := character.Load(cf.Path)
	if err != nil {
		return nil, "", err
	}
	a.log.Debugw("loaded", "name", c.Header.Name, "path", cf.Path, "seed", fmt.Sprintf("%#x", c.Seed))
	return c, cf.Path, nil
}

func (a *app) list_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the characters in the save directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chars, err := utils.FindCharacters(a.cfg.Dir)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "NAME\tLEVEL\tSEX\tHARDCORE\tEXPANSION\tPATH")
			for _, c := range chars {
				h := c.Header
				fmt.Fprintf(w, "%s\t%d\t%s\t%v\t%s\t%s\n", h.Name, h.Level, h.Sex, h.Hardcore == 1, h.ExpansionStatus, c.Path)
			}
			return nil
		},
	}
}

func (a *app) show_cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a character's main stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			if a.as_json {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			print_info(a.out, c)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.as_json, "json", false, "dump the whole record tree as JSON")
	return cmd
}

func (a *app) dump_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <name>",
		Short: "Show where every block sits in a character file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := a.find(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(cf.Path)
			if err != nil {
				return err
			}
			c, spans, err := character.DecodeWithSpans(bytes.NewReader(data))
			// what was read before a failure is still worth showing
			fmt.Fprintf(a.out, "%s: %d bytes\n", cf.Path, len(data))
			if c != nil {
				fmt.Fprintf(a.out, "seed %#x, save version %d, uid %s\n", c.Seed, c.Version, c.UID)
			}
			for _, s := range spans {
				fmt.Fprintf(a.out, "%-40s %s\n", s.String(), tables.Seq_name(s.Seq))
			}
			return err
		},
	}
}

func (a *app) verify_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <name>",
		Short: "Check that a character file decodes, and re-encodes to the same bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cf, err := a.find(args[0])
			if err != nil {
				return err
			}
			data, err := os.ReadFile(cf.Path)
			if err != nil {
				return err
			}
			c, err := character.Decode(bytes.NewReader(data))
			if err != nil {
				return err
			}
			again, err := c.Bytes()
			if err != nil {
				return err
			}
			if at := first_difference(data, again); at >= 0 {
				if c2, err := character.Decode(bytes.NewReader(again)); err == nil {
					for _, d := range character.Diff(c, c2) {
						fmt.Fprintln(a.out, d)
					}
				}
				return errors.Errorf("%s: re-encoded file differs from offset %d (%d bytes vs %d)", cf.Path, at, len(again), len(data))
			}
			fmt.Fprintf(a.out, "%s: OK (%d bytes)\n", cf.Path, len(data))
			return nil
		},
	}
}

// first_difference is the first offset at which a and b differ, or -1
func first_difference(a, b []byte) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}

func (a *app) diff_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <name> <name>",
		Short: "List the fields that differ between two characters",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, _, err := a.load(args[0])
			if err != nil {
				return err
			}
			right, _, err := a.load(args[1])
			if err != nil {
				return err
			}
			diffs := character.Diff(left, right)
			if len(diffs) == 0 {
				fmt.Fprintln(a.out, "identical")
			}
			for _, d := range diffs {
				fmt.Fprintln(a.out, d)
			}
			return nil
		},
	}
}
