package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV, JSON or org-mode",
	Long: `Write the journal, optionally filtered, to a file or stdout.

Examples:
  tradejournal export --format csv -o trades.csv
  tradejournal export --format json --status closed
  tradejournal export --format org --from 2024-07-01 > july.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import trades from a CSV or JSON backup",
	Long: `Load trades keeping their numbers. The import is rejected as a whole if
any number already exists.

Examples:
  tradejournal import trades.csv
  tradejournal import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportFilters *filterFlags
	exportFormat  string
	exportOutput  string

	importFormat string
)

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportFilters = addFilterFlags(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "csv", "csv, json or org")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "csv or json (default from extension)")
}

func runExport(cmd *cobra.Command, args []string) error {
	opts, err := exportFilters.options(cmd)
	if err != nil {
		return err
	}
	trades, err := loadTrades(cmd, opts)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "csv", "json", "org":
	default:
		return fmt.Errorf("unknown format %q", exportFormat)
	}

	if exportOutput == "" {
		return writeExport(cmd.OutOrStdout(), trades)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	err = writeExport(f, trades)
	if cerr := f.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output: %w", cerr)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trades to %s\n", len(trades), exportOutput)
	return nil
}

func writeExport(out io.Writer, trades []journal.TradeRecord) error {
	var err error
	switch exportFormat {
	case "csv":
		err = journal.WriteCSV(out, trades)
	case "json":
		err = journal.WriteBackup(out, trades, time.Now())
	case "org":
		_, err = fmt.Fprintln(out, journal.FormatTradesOrg(trades))
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format := importFormat
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var trades []journal.TradeRecord
	switch format {
	case "csv":
		trades, err = journal.ReadCSV(f)
	case "json":
		var b journal.Backup
		b, err = journal.ReadBackup(f)
		trades = b.Trades
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	imp, ok := store.(journal.Importer)
	if !ok {
		return fmt.Errorf("%s journal does not support import", cfg.Journal.Type)
	}
	if err := imp.Import(ctx(cmd), trades); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(trades), path)
	return nil
}
