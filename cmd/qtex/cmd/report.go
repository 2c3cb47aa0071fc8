package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Dashboard and filing summaries",
}

var reportDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the estimated tax position and the next filing deadline",
	RunE:  runReportDashboard,
}

var reportDeclarationCmd = &cobra.Command{
	Use:   "declaration",
	Short: "Print the figures of the comprehensive income tax return",
	RunE:  runReportDeclaration,
}

func init() {
	reportCmd.AddCommand(reportDashboardCmd)
	reportCmd.AddCommand(reportDeclarationCmd)
}

func runReportDashboard(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		d, err := book.Reports.Dashboard(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, d)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "총 수입\t%s\n", formatWon(d.TotalIncome))
		fmt.Fprintf(tw, "총 지출\t%s\n", formatWon(d.TotalExpense))
		fmt.Fprintf(tw, "인건비\t%s\n", formatWon(d.LaborCost))
		fmt.Fprintf(tw, "예상 부가세\t%s\n", formatWon(d.EstimatedVAT))
		fmt.Fprintf(tw, "예상 종합소득세\t%s\n", formatWon(d.EstimatedIncomeTax))
		fmt.Fprintf(tw, "예상 세금 합계\t%s\n", formatWon(d.TotalEstimatedTax))
		if d.TargetRevenue > 0 {
			fmt.Fprintf(tw, "목표 달성률\t%d%%\n", d.Achievement)
		}
		fmt.Fprintf(tw, "다음 신고\t%s (%s)\n", d.NextDeadline.Label, d.NextDeadline.DDay())
		return tw.Flush()
	})
}

func runReportDeclaration(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		d, err := book.Reports.Declaration(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), d)
	})
}
