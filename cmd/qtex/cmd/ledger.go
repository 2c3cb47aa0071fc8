package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/ledger"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

var (
	ledgerPeriod transaction.Period
	ledgerOut    string
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Journal and ledger views derived from the transactions",
}

var ledgerJournalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Print the derived journal entries",
	RunE:  runLedgerJournal,
}

var ledgerDoubleCmd = &cobra.Command{
	Use:   "double",
	Short: "Print the double-entry ledger with monthly subtotals",
	RunE:  runLedgerDouble,
}

var ledgerSheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Export the journal as a spreadsheet CSV",
	Long: `Export the journal as CSV, one row per debit and credit line pair.
The file starts with a UTF-8 byte order mark so spreadsheet programs
read the Korean text correctly.

Example:
  qtex ledger sheet --year 2026 --out journal-2026.csv`,
	RunE: runLedgerSheet,
}

var ledgerStatementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Print the simplified income statement",
	RunE:  runLedgerStatement,
}

func init() {
	for _, c := range []*cobra.Command{ledgerJournalCmd, ledgerDoubleCmd, ledgerSheetCmd} {
		c.Flags().IntVar(&ledgerPeriod.Year, "year", 0, "only this year")
		c.Flags().IntVar(&ledgerPeriod.Quarter, "quarter", 0, "only this quarter")
		c.Flags().IntVar(&ledgerPeriod.Month, "month", 0, "only this month")
	}
	ledgerSheetCmd.Flags().StringVarP(&ledgerOut, "out", "o", "", "output file (default stdout)")

	ledgerCmd.AddCommand(ledgerJournalCmd)
	ledgerCmd.AddCommand(ledgerDoubleCmd)
	ledgerCmd.AddCommand(ledgerSheetCmd)
	ledgerCmd.AddCommand(ledgerStatementCmd)
}

func journal(cmd *cobra.Command, fn func(entries []ledger.JournalEntry) error) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		entries, err := book.Ledger.Journal(cmd.Context(), ledgerPeriod)
		if err != nil {
			return err
		}
		return fn(entries)
	})
}

func lines(ls []ledger.Line) string {
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.Account + " " + formatWon(l.Amount)
	}
	return strings.Join(parts, ", ")
}

func runLedgerJournal(cmd *cobra.Command, args []string) error {
	return journal(cmd, func(entries []ledger.JournalEntry) error {
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, entries)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "날짜\t구분\t적요\t차변\t대변")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Date, e.Kind, e.Description, lines(e.Debit), lines(e.Credit))
		}
		debit, credit := ledger.Totals(entries)
		fmt.Fprintf(tw, "합계\t\t\t%s\t%s\n", formatWon(debit), formatWon(credit))
		return tw.Flush()
	})
}

func runLedgerDouble(cmd *cobra.Command, args []string) error {
	return journal(cmd, func(entries []ledger.JournalEntry) error {
		rows := ledger.DoubleEntryRows(entries)
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, rows)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "날짜\t적요\t차변\t대변")
		for _, r := range rows {
			if r.Subtotal {
				fmt.Fprintf(tw, "\t%s\t%s\t%s\n", r.Label, formatWon(r.Debit), formatWon(r.Credit))
				continue
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Entry.Date, r.Entry.Description, formatWon(r.Debit), formatWon(r.Credit))
		}
		return tw.Flush()
	})
}

func runLedgerSheet(cmd *cobra.Command, args []string) error {
	return journal(cmd, func(entries []ledger.JournalEntry) error {
		var w io.Writer = cmd.OutOrStdout()
		if ledgerOut != "" {
			f, err := os.Create(ledgerOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		if _, err := io.WriteString(w, "\ufeff"); err != nil {
			return err
		}
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(ledger.SheetRows(entries)); err != nil {
			return err
		}
		if ledgerOut != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d entries written to %s\n", len(entries), ledgerOut)
		}
		return nil
	})
}

func runLedgerStatement(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		st, err := book.Ledger.Statement(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, st)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "매출액\t%s\n", formatWon(st.NetSales))
		for _, e := range st.Expenses {
			fmt.Fprintf(tw, "  %s\t%s\n", e.Account, formatWon(e.Amount))
		}
		fmt.Fprintf(tw, "판매비와관리비\t%s\n", formatWon(st.SGA))
		fmt.Fprintf(tw, "영업이익\t%s\n", formatWon(st.OperatingProfit))
		return tw.Flush()
	})
}
