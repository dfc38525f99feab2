package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"gdedit/journal"
	"gdedit/utils"
	"gdedit/watcher"
)

func (a *app) watch_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the save directory while playing, recording every save in the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(a.cfg.Journal)
			if err != nil {
				return err
			}
			defer j.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return a.watch(ctx, j)
		},
	}
}

// watch runs until ctx is done.
func (a *app) watch(ctx context.Context, j *journal.Journal) error {
	w := watcher.New(a.cfg.Dir, a.cfg.Settle, j, a.log)
	snaps := make(chan journal.Snapshot)
	if err := w.Start(snaps); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Fprintf(a.out, "Watching %s\n", a.cfg.Dir)
	for {
		select {
		case s := <-snaps:
			fmt.Fprintf(a.out, "%s  %-24s level %-3d deaths %-4d playtime %v\n",
				s.Time.Format(time.TimeOnly), s.Name, s.Level, s.Deaths, time.Duration(s.Playtime)*time.Second)
		case <-ctx.Done():
			return nil
		}
	}
}

func (a *app) history_cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <name>",
		Short: "Show what the journal remembers about a character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.Open(a.cfg.Journal)
			if err != nil {
				return err
			}
			defer j.Close()

			names, err := j.Names()
			if err != nil {
				return err
			}
			by_index := map[int]string{}
			for i, n := range names {
				by_index[i] = n
			}
			_, name, err := utils.FuzzyLookup(by_index, args[0], "character in the journal")
			if err != nil {
				return err
			}
			history, err := j.History(name)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "TIME\tLEVEL\tEXPERIENCE\tDEATHS\tPLAYTIME")
			for _, s := range history {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\n", s.Time.Format(time.DateTime), s.Level, s.Experience, s.Deaths,
					time.Duration(s.Playtime)*time.Second)
			}
			return nil
		},
	}
}
