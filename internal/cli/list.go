package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/existflow/daysince/internal/model"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List timers",
	Long: `List timers with the days elapsed since each one started.

Rows are numbered; '#N' can be passed to reset and delete. When --sort
is given here, give the same --sort to reset and delete.

Examples:
  daysince list
  daysince list --sort alphabetical
  daysince ls --sort days --overdue`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listOverdue bool

func init() {
	addSortFlag(listCmd)
	listCmd.Flags().BoolVar(&listOverdue, "overdue", false, "Only show timers that reached their target")
}

func runList(cmd *cobra.Command, args []string) error {
	resorted, err := applySortFlag(cmd)
	if err != nil {
		return err
	}

	s, err := openUnlockedStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	timers, err := listOrder(s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(timers) == 0 {
		fmt.Fprintln(out, "No timers yet. Add one with: daysince add \"Your timer\" --target 30")
		return nil
	}

	printTimers(out, timers, s.Now(), listOverdue)
	if resorted {
		fmt.Fprintf(out, "Rows are in %s order: use --sort %s with reset and delete.\n", cfg.DefaultSort, cfg.DefaultSort)
	}
	return nil
}

func printTimers(out io.Writer, timers []model.Timer, now time.Time, overdueOnly bool) {
	overdue := 0
	for _, t := range timers {
		if t.IsOverdue(now) {
			overdue++
		}
	}

	fmt.Fprintf(out, "\n⏱  Timers (%d, %d overdue)\n", len(timers), overdue)
	fmt.Fprintln(out, strings.Repeat("─", 66))

	if overdueOnly && overdue == 0 {
		fmt.Fprintln(out, "No overdue timers.")
	}
	for i, t := range timers {
		if overdueOnly && !t.IsOverdue(now) {
			continue
		}
		printTimer(out, i+1, t, now)
	}
	fmt.Fprintln(out)
}

func printTimer(out io.Writer, num int, t model.Timer, now time.Time) {
	marker := " "
	if t.IsOverdue(now) {
		marker = "!"
	}

	name := runewidth.FillRight(runewidth.Truncate(t.Name, 30, "..."), 30)

	fmt.Fprintf(out, "%s %3s  %-8s  %s  %5d days  target %d\n",
		marker, fmt.Sprintf("#%d", num), shortID(t.ID), name, t.ElapsedDays(now), t.TargetDays)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
