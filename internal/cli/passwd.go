package cli

import (
	"fmt"
	"os"

	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/config"
	"github.com/existflow/daysince/internal/logger"
	"github.com/spf13/cobra"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set the dashboard password",
	Long: `Prompt for a new password and store its bcrypt hash in the config file.

With --print the hash is written to stdout instead, for use in
DAYSINCE_PASSWORD or another machine's config.`,
	Args: cobra.NoArgs,
	RunE: runPasswd,
}

var passwdPrint bool

// passwordEnv wins over the password in the config file
const passwordEnv = "DAYSINCE_PASSWORD"

func init() {
	passwdCmd.Flags().BoolVar(&passwdPrint, "print", false, "Print the hash instead of saving it")
}

func runPasswd(cmd *cobra.Command, args []string) error {
	// Changing the password needs the old one first
	if err := unlock(); err != nil {
		return err
	}

	password, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if passwdPrint {
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	}

	// Reload without env or per-run flags so only the hash changes
	saved, err := config.LoadSaved()
	if err != nil {
		return err
	}
	saved.Password = hash
	if err := saved.Save(); err != nil {
		return err
	}
	logger.Info("Password updated")
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Password updated.")
	if os.Getenv(passwordEnv) != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  %s is set and overrides the saved password until it is unset.\n", passwordEnv)
	}
	return nil
}
