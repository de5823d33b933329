package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new timer",
	Long: `Add a timer that starts counting now.

Examples:
  daysince add "Quit smoking" --target 30
  daysince add Called mum -t 7`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var addTarget int

func init() {
	addCmd.Flags().IntVarP(&addTarget, "target", "t", 1, "Target number of days (at least 1)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("timer name must not be empty")
	}
	if addTarget < 1 {
		return fmt.Errorf("target must be at least 1 day, got %d", addTarget)
	}

	s, err := openUnlockedStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.Add(cmd.Context(), name, addTarget)
	if err != nil {
		return fmt.Errorf("failed to save timer: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q (target %d days, id %s)\n", t.Name, t.TargetDays, shortID(t.ID))
	return nil
}
