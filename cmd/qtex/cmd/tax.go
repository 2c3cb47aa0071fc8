package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
)

var (
	taxProfit  int64
	taxYear    int
	taxQuarter int
)

var taxCmd = &cobra.Command{
	Use:   "tax",
	Short: "Income tax and VAT estimates",
}

var taxIncomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Estimate comprehensive income tax on a business profit",
	Long: `Estimate comprehensive income tax on a year's business profit.

Without --profit the profit of the stored book for --year is used.

Example:
  qtex tax income --profit 42000000
  qtex tax income --year 2026`,
	RunE: runTaxIncome,
}

var taxVATCmd = &cobra.Command{
	Use:   "vat",
	Short: "Compute the VAT position of a quarter",
	Long: `Compute output VAT, deductible input VAT, the deemed input credit and
the VAT payable for the stored transactions of a quarter.

Example:
  qtex tax vat --year 2026 --quarter 1`,
	RunE: runTaxVAT,
}

var taxBracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Print the income tax schedule",
	RunE:  runTaxBrackets,
}

func init() {
	taxIncomeCmd.Flags().Int64Var(&taxProfit, "profit", -1, "business profit in won")
	taxIncomeCmd.Flags().IntVar(&taxYear, "year", time.Now().Year(), "tax year")
	taxVATCmd.Flags().IntVar(&taxYear, "year", time.Now().Year(), "tax year")
	taxVATCmd.Flags().IntVar(&taxQuarter, "quarter", (int(time.Now().Month())-1)/3+1, "quarter 1-4, 0 for the whole year")

	taxCmd.AddCommand(taxIncomeCmd)
	taxCmd.AddCommand(taxVATCmd)
	taxCmd.AddCommand(taxBracketsCmd)
}

type incomeTaxOutput struct {
	Profit      int64       `json:"profit"`
	IncomeTax   int64       `json:"incomeTax"`
	LocalTax    int64       `json:"localIncomeTax"`
	TotalBurden int64       `json:"totalBurden"`
	Bracket     tax.Bracket `json:"bracket"`
}

func incomeTaxFor(profit int64) incomeTaxOutput {
	out := incomeTaxOutput{
		Profit:    profit,
		IncomeTax: tax.EstimateIncomeTax(profit),
		Bracket:   tax.BracketFor(profit),
	}
	out.LocalTax = out.IncomeTax / 10
	out.TotalBurden = out.IncomeTax + out.LocalTax
	return out
}

func runTaxIncome(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("profit") {
		return printIncomeTax(cmd, incomeTaxFor(taxProfit))
	}
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		report, err := book.Reports.IncomeTax(cmd.Context(), taxYear)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), report)
		}
		return printIncomeTax(cmd, incomeTaxFor(report.Profit))
	})
}

func printIncomeTax(cmd *cobra.Command, out incomeTaxOutput) error {
	w := cmd.OutOrStdout()
	if asJSON {
		return printJSON(w, out)
	}
	fmt.Fprintf(w, "사업소득:     %s\n", formatWon(out.Profit))
	fmt.Fprintf(w, "세율:         %s%%\n", out.Bracket.Rate.Shift(2).String())
	fmt.Fprintf(w, "종합소득세:   %s\n", formatWon(out.IncomeTax))
	fmt.Fprintf(w, "지방소득세:   %s\n", formatWon(out.LocalTax))
	fmt.Fprintf(w, "합계:         %s\n", formatWon(out.TotalBurden))
	return nil
}

func runTaxVAT(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		report, err := book.Reports.VAT(cmd.Context(), taxYear, taxQuarter)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, report)
		}

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "매출 합계\t%s\n", formatWon(report.TotalSales))
		fmt.Fprintf(tw, "과세 매출\t%s\n", formatWon(report.TaxableSales))
		fmt.Fprintf(tw, "매출세액\t%s\n", formatWon(report.SalesVAT))
		fmt.Fprintf(tw, "공제 매입\t%s\n", formatWon(report.DeductiblePurchases))
		fmt.Fprintf(tw, "매입세액\t%s\n", formatWon(report.PurchaseVAT))
		fmt.Fprintf(tw, "의제매입세액\t%s\n", formatWon(report.DeemedInputTax))
		fmt.Fprintf(tw, "납부세액\t%s\n", formatWon(report.VATPayable))
		return tw.Flush()
	})
}

func runTaxBrackets(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	brackets := tax.Brackets()
	if asJSON {
		return printJSON(w, brackets)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "과세표준 상한\t세율\t누진공제")
	for _, b := range brackets {
		upper := "초과"
		if b.UpperBound > 0 {
			upper = formatWon(b.UpperBound)
		}
		fmt.Fprintf(tw, "%s\t%s%%\t%s\n", upper, b.Rate.Shift(2).String(), formatWon(b.Subtraction))
	}
	return tw.Flush()
}
