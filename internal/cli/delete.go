package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [timer-id | #row]",
	Aliases: []string{"rm"},
	Short:   "Delete a timer",
	Long: `Delete a timer by its ID, an unambiguous ID prefix, or its row in
'daysince list'.

Examples:
  daysince delete 3f2a9c1e
  daysince rm '#1' --yes
  daysince rm '#2' --sort alphabetical`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	addSortFlag(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if _, err := applySortFlag(cmd); err != nil {
		return err
	}

	s, err := openUnlockedStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := resolveTimer(s, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !deleteYes {
		fmt.Fprintf(out, "About to delete: %q (ID: %s)\n", t.Name, t.ID)
		fmt.Fprint(out, "Are you sure? [y/N]: ")
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer = strings.TrimSpace(answer)
		if answer != "y" && answer != "Y" {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := s.Delete(cmd.Context(), t.ID); err != nil {
		return fmt.Errorf("failed to delete timer: %w", err)
	}

	fmt.Fprintf(out, "🗑️  Deleted: %q\n", t.Name)
	return nil
}
