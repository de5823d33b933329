package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset [timer-id | #row]",
	Short: "Restart a timer from today",
	Long: `Set a timer's start date to now. Name and target are kept.

Examples:
  daysince reset 3f2a9c1e
  daysince reset '#2'
  daysince reset '#1' --sort days`,
	Args: cobra.ExactArgs(1),
	RunE: runReset,
}

func init() {
	addSortFlag(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if _, err := applySortFlag(cmd); err != nil {
		return err
	}

	s, err := openUnlockedStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	target, err := resolveTimer(s, args[0])
	if err != nil {
		return err
	}

	t, err := s.Reset(cmd.Context(), target.ID)
	if err != nil {
		return fmt.Errorf("failed to reset timer: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "↺ Reset %q (0 of %d days)\n", t.Name, t.TargetDays)
	return nil
}
