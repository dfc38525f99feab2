package main

// Character save reader/editor for Grim Dawn
//
// example usage:
//
// gdedit list
// gdedit show hilda
// gdedit rename hilda "Hilda the Brave"
// gdedit reset hilda skills
// gdedit clone hilda Hilda2
// gdedit --dir "C:/Users/me/Documents/My Games/Grim Dawn/save" watch

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gdedit/config"
)

// app is what every command gets to work with, set up once the flags are parsed.
type app struct {
	ini_path string
	dir_flag string
	as_json  bool

	cfg config.Config
	log *zap.SugaredLogger
	out io.Writer
}

func new_root_cmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gdedit",
		Short: "Grim Dawn character file reader/editor",
		Long: `Read, check and edit Grim Dawn character files (player.gdc).

Characters are found in the save directory, taken from --dir, then from the
"dir" key of gdedit.ini, then the working directory.  Character names on the
command line are matched fuzzily: "hil" finds "Hilda" if nothing else fits.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if a.cfg, err = config.Load(a.ini_path, a.dir_flag); err != nil {
				return err
			}
			if a.log, err = config.NewLogger(a.cfg.LogLevel); err != nil {
				return err
			}
			a.out = cmd.OutOrStdout()
			a.log.Debugw("config", "dir", a.cfg.Dir, "backup", a.cfg.Backup, "journal", a.cfg.Journal)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.dir_flag, "dir", "", "save directory")
	root.PersistentFlags().StringVar(&a.ini_path, "config", config.FILENAME, "ini file")

	root.AddCommand(
		a.list_cmd(),
		a.show_cmd(),
		a.dump_cmd(),
		a.verify_cmd(),
		a.diff_cmd(),
		a.rename_cmd(),
		a.clone_cmd(),
		a.reset_cmd(),
		a.watch_cmd(),
		a.history_cmd(),
	)
	return root
}

func main() {
	if err := new_root_cmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
