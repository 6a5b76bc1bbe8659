package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/logger"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tradejournal",
	Short: "A trading journal with performance and risk analytics",
	Long: `Tradejournal records trades and analyses them.

It provides tools for:
  - Logging trades with entry, target and stop prices
  - Filtering the journal by date, price, pair and status
  - Performance statistics by pair and by month
  - Capital tracking and the one percent risk rule
  - CSV, JSON and org-mode import and export
  - An HTTP API for web front ends`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

// setup resolves configuration: defaults, then file, then .env and
// environment, then flags.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	if err := config.LoadEnv(); err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Journal.Type = "sqlite"
		cfg.Journal.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log = logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

func openStore() (journal.Store, error) {
	switch cfg.Journal.Type {
	case "memory":
		return journal.NewMemory(journal.WithLogger(log)), nil
	default:
		s, err := journal.NewSQLite(cfg.Journal.DBPath, journal.WithLogger(log))
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		return s, nil
	}
}
