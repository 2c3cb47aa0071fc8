// Package cmd provides the qtex command line.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/common/config"
)

var (
	cfgFile     string
	debug       bool
	bookID      string
	storeDriver string
	storePath   string
	asJSON      bool
)

var rootCmd = &cobra.Command{
	Use:   "qtex",
	Short: "Bookkeeping and tax estimates for a small business",
	Long: `qtex keeps the books of a Korean sole proprietor in a local store
and computes the figures a filing needs.

It supports:
- Recording income and expenses, or importing a bank statement CSV
- Comprehensive income tax and quarterly VAT estimates
- Payroll for salaried, freelance and part-time workers
- Journal, double-entry ledger and spreadsheet exports
- Serving the REST and MCP APIs locally

Example:
  qtex tx add --date 2026-03-02 --desc "커피 원두" --amount 55000 --type expense
  qtex tax vat --year 2026 --quarter 1
  qtex serve --addr :8080`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&bookID, "book", "local", "book to work on")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "store driver: bolt, sqlite, memory or dynamodb (default from STORE_DRIVER)")
	rootCmd.PersistentFlags().StringVar(&storePath, "path", "", "store file for bolt and sqlite (default from STORE_PATH)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(taxCmd)
	rootCmd.AddCommand(payrollCmd)
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(txCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(booksCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig reads the env file and applies the store flags on top.
func loadConfig() (*config.Config, error) {
	if storeDriver != "" {
		os.Setenv("STORE_DRIVER", storeDriver)
	}
	if storePath != "" {
		os.Setenv("STORE_PATH", storePath)
	}
	return config.LoadFromEnv(cfgFile)
}

// openRuntime opens the configured backends. Callers must Close the runtime.
func openRuntime(cmd *cobra.Command) (*bootstrap.Runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	rt, err := bootstrap.Open(cmd.Context(), cfg, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return rt, nil
}

// withBook runs fn against the book selected by --book.
func withBook(cmd *cobra.Command, fn func(rt *bootstrap.Runtime, book *app.Book) error) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt, rt.Books.Open(bookID))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

var won = message.NewPrinter(language.Korean)

// formatWon renders an amount with thousands separators.
func formatWon(amount int64) string {
	return won.Sprintf("%d원", amount)
}
