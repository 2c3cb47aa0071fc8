package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
)

var (
	payType       string
	paySalary     int64
	payWage       int64
	payDays       int
	payHours      float64
	payName       string
	payResidentID string
	payDate       string
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll for salaried, freelance and part-time workers",
}

var payrollCalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate take-home pay and employer cost without storing anything",
	Long: `Calculate take-home pay and employer cost.

Part-time runs repeat --days days of --hours hours for every week of the month.

Example:
  qtex payroll calc --type 정규직 --salary 2500000
  qtex payroll calc --type 알바 --wage 10320 --days 3 --hours 5`,
	RunE: runPayrollCalc,
}

var payrollConfirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Confirm a payroll run and book its expenses",
	Long: `Confirm a payroll run: the salary expense, the employer insurance expense
and a labor entry are written to the book.

Example:
  qtex payroll confirm --name 홍길동 --type 프리랜서 --salary 1000000 --date 2026-03-25`,
	RunE: runPayrollConfirm,
}

var payrollListCmd = &cobra.Command{
	Use:   "list",
	Short: "List confirmed payroll runs",
	RunE:  runPayrollList,
}

func init() {
	for _, c := range []*cobra.Command{payrollCalcCmd, payrollConfirmCmd} {
		c.Flags().StringVar(&payType, "type", string(payroll.Salaried), "employment type: 정규직, 프리랜서 or 알바")
		c.Flags().Int64Var(&paySalary, "salary", 0, "monthly salary in won")
		c.Flags().Int64Var(&payWage, "wage", 0, "hourly wage in won")
		c.Flags().IntVar(&payDays, "days", 0, "working days per week")
		c.Flags().Float64Var(&payHours, "hours", 0, "hours per working day")
	}
	payrollConfirmCmd.Flags().StringVar(&payName, "name", "", "worker name")
	payrollConfirmCmd.Flags().StringVar(&payResidentID, "resident-id", "", "resident registration number")
	payrollConfirmCmd.Flags().StringVar(&payDate, "date", "", "payment date YYYY-MM-DD (default today)")
	payrollConfirmCmd.MarkFlagRequired("name")

	payrollCmd.AddCommand(payrollCalcCmd)
	payrollCmd.AddCommand(payrollConfirmCmd)
	payrollCmd.AddCommand(payrollListCmd)
}

func payrollInput() payroll.Input {
	in := payroll.Input{Type: payroll.EmploymentType(payType)}
	if in.Type == payroll.PartTime {
		in.HourlyWage = payWage
		in.Weeks = payroll.UniformWeeks(payDays, payHours)
	} else {
		in.MonthlySalary = paySalary
	}
	return in
}

func runPayrollCalc(cmd *cobra.Command, args []string) error {
	result, err := payroll.Calculate(payrollInput())
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	if asJSON {
		return printJSON(w, result)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "구분\t%s\n", result.Type)
	fmt.Fprintf(tw, "지급액\t%s\n", formatWon(result.BaseSalary))
	for _, item := range result.Breakdown {
		fmt.Fprintf(tw, "  %s\t%s\n", item.Label, formatWon(item.Value))
	}
	if result.Type == payroll.PartTime {
		fmt.Fprintf(tw, "주휴수당\t%s\n", formatWon(result.HolidayAllowance))
	}
	fmt.Fprintf(tw, "실수령액\t%s\n", formatWon(result.TakeHome))
	fmt.Fprintf(tw, "사업주 부담\t%s\n", formatWon(result.EmployerExtra))
	fmt.Fprintf(tw, "총 인건비\t%s\n", formatWon(result.TotalCost))
	return tw.Flush()
}

func runPayrollConfirm(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		confirmation, err := book.Payroll.Confirm(cmd.Context(), payName, payResidentID, payrollInput(), payDate)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, confirmation)
		}
		fmt.Fprintf(w, "확정: %s %s 실수령 %s, 장부 기록 %d건\n",
			confirmation.Entry.Date, confirmation.Entry.Name,
			formatWon(confirmation.Entry.TakeHome), len(confirmation.Transactions))
		return nil
	})
}

func runPayrollList(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		entries, err := book.Payroll.List(cmd.Context())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if asJSON {
			return printJSON(w, entries)
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\t날짜\t이름\t구분\t실수령액\t총 인건비")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Name, e.Type, formatWon(e.TakeHome), formatWon(e.TotalCost))
		}
		return tw.Flush()
	})
}
