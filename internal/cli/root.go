package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/daysince/internal/config"
	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool

	storePath    string
	storeBackend string
)

// cfg is loaded once per invocation by the root command
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "daysince",
	Short: "daysince - track how many days since things happened",
	Long: `daysince keeps a list of "days since X" timers. Each timer has a name,
a start date and a target number of days; timers that reach their target
are highlighted as overdue.

Run 'daysince' without arguments to open the interactive dashboard.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			loaded = config.DefaultConfig()
		}
		cfg = loaded

		// Log flags are remembered in the config file
		if err := persistLogFlags(cmd); err != nil {
			logger.Warn("Failed to save config", logger.F("error", err))
		}

		// Store flags apply to this run only
		if cmd.Flags().Changed("store") {
			cfg.StorePath = storePath
		}
		if cmd.Flags().Changed("backend") {
			cfg.Backend = storeBackend
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		logConfig.FilePath = cfg.LogFile
		logConfig.Console = cfg.LogConsole
		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("daysince started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, err := model.ParseSortCriterion(cfg.DefaultSort)
		if err != nil {
			return err
		}

		s, err := openStore(cmd.Context())
		if err != nil {
			logger.Error("Failed to open timer store", logger.F("error", err))
			return err
		}
		defer func() {
			_ = s.Close()
			logger.Info("Timer store closed")
		}()

		logger.Info("Launching TUI")
		m := tui.NewModel(s, newGate().NewSession(), sortBy)
		p := tea.NewProgram(m, tea.WithAltScreen())

		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run TUI: %w", err)
		}

		logger.Info("TUI exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("daysince exiting", logger.F("command", cmd.Name()))
		_ = logger.Close()
	},
}

// persistLogFlags applies the --log-* flags to this run and writes them to
// the config file. The file is re-read without environment overrides so
// DAYSINCE_* values never end up saved.
func persistLogFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("log-level") && !flags.Changed("log-file") && !flags.Changed("log-console") {
		return nil
	}

	saved, err := config.LoadSaved()
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
		saved.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
		saved.LogFile = logFile
	}
	if flags.Changed("log-console") {
		cfg.LogConsole = logConsole
		saved.LogConsole = logConsole
	}
	return saved.Save()
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Timer store file (default ~/.daysince/timers.json)")
	rootCmd.PersistentFlags().StringVar(&storeBackend, "backend", "", "Store backend: json, sqlite or postgres")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(passwdCmd)
}
