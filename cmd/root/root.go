// Package root contains the root command for the application.
package root

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dayveeee07/spaylater-tracker/internal/aggregator"
	"github.com/dayveeee07/spaylater-tracker/internal/allocator"
	"github.com/dayveeee07/spaylater-tracker/internal/backup"
	"github.com/dayveeee07/spaylater-tracker/internal/config"
	"github.com/dayveeee07/spaylater-tracker/internal/models"
	"github.com/dayveeee07/spaylater-tracker/internal/store"
)

// CommonFlags represents the flags shared by multiple commands.
type CommonFlags struct {
	DataDir string
	Date    string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "spaylater",
		Short: "A CLI tool to track buy-now-pay-later purchases across billing cycles.",
		Long: `spaylater keeps a personal buy-now-pay-later ledger: purchases under
one-off or installment plans, optional cost splits across borrowers,
per-borrower payments against the monthly billing cycle, and credit
utilization against a configured limit.

Billing cycles run from the 25th of a month to the 25th of the next,
due on the following 5th.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to spaylater!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			loaded, err := config.InitializeConfig()
			if err != nil {
				Log.Warnf("Configuration problem, using defaults: %v", err)
				loaded = &config.Config{}
				loaded.Log.Level = "info"
				loaded.Log.Format = "text"
				loaded.CSV.Delimiter = ","
			}
			cfg = loaded

			// Set the configured logger for all internal packages
			store.SetLogger(Log)
			allocator.SetLogger(Log)
			aggregator.SetLogger(Log)
			backup.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.DataDir, "data-dir", "", "Directory holding the ledger files (default ~/.spaylater/data)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Date, "date", "d", "", "Anchor date for cycle selection, YYYY-MM-DD (default today)")
}

// Config returns the loaded application configuration.
func Config() *config.Config {
	if cfg == nil {
		cfg = &config.Config{}
		cfg.Log.Level = "info"
		cfg.Log.Format = "text"
		cfg.CSV.Delimiter = ","
	}
	return cfg
}

// OpenStore builds the ledger store from configuration and the --data-dir
// override.
func OpenStore() *store.LedgerStore {
	return store.NewLedgerStore(Config().DataDirectory(SharedFlags.DataDir))
}

// AnchorDate resolves the --date flag to a date, defaulting to today.
func AnchorDate() (models.Date, error) {
	if SharedFlags.Date == "" {
		return models.DateOf(time.Now()), nil
	}
	return models.ParseDate(SharedFlags.Date)
}

// CSVDelimiter returns the configured CSV delimiter rune.
func CSVDelimiter() rune {
	delim := Config().CSV.Delimiter
	if delim == "" {
		return ','
	}
	return []rune(delim)[0]
}
