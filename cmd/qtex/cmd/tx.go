package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/statement"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

var (
	txNew          transaction.Transaction
	txType         string
	txSub          string
	txMethod       string
	txAccount      string
	txVAT          int64
	txNoVAT        bool
	txNoIncomeTax  bool
	txListPeriod   transaction.Period
	txListType     string
	txImportDryRun bool
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Record, list and import transactions",
}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record one income or expense",
	Long: `Record one income or expense.

Example:
  qtex tx add --date 2026-03-02 --desc "커피 원두" --amount 55000 --type expense --account 소모품비
  qtex tx add --desc "3월 매출" --amount 3300000 --type income --sub 세금계산서`,
	RunE: runTxAdd,
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored transactions",
	RunE:  runTxList,
}

var txImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a bank or card statement CSV",
	Long: `Import a bank or card statement CSV. EUC-KR exports are converted to
UTF-8 and rows that cannot be read are skipped.

Example:
  qtex tx import statement.csv --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runTxImport,
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTxDelete,
}

var txCategorizeCmd = &cobra.Command{
	Use:   "categorize",
	Short: "Ask the model to assign accounts to uncategorized expenses",
	RunE:  runTxCategorize,
}

func init() {
	txAddCmd.Flags().StringVar(&txNew.Date, "date", "", "date YYYY-MM-DD (default today)")
	txAddCmd.Flags().StringVar(&txNew.Description, "desc", "", "description")
	txAddCmd.Flags().Int64Var(&txNew.Amount, "amount", 0, "amount in won, VAT included")
	txAddCmd.Flags().StringVar(&txType, "type", string(transaction.Expense), "income or expense")
	txAddCmd.Flags().StringVar(&txSub, "sub", "", "evidence type, e.g. 카드, 세금계산서, 현금")
	txAddCmd.Flags().StringVar(&txMethod, "method", "", "payment method: 카드, 계좌 or 현금")
	txAddCmd.Flags().StringVar(&txAccount, "account", "", "expense account or one of its aliases")
	txAddCmd.Flags().Int64Var(&txVAT, "vat", -1, "VAT amount when it differs from a tenth of the supply value")
	txAddCmd.Flags().BoolVar(&txNoVAT, "no-vat-credit", false, "mark the purchase as not VAT deductible")
	txAddCmd.Flags().BoolVar(&txNoIncomeTax, "no-income-tax", false, "mark the expense as not deductible for income tax")
	txAddCmd.MarkFlagRequired("desc")
	txAddCmd.MarkFlagRequired("amount")

	txListCmd.Flags().IntVar(&txListPeriod.Year, "year", 0, "only this year")
	txListCmd.Flags().IntVar(&txListPeriod.Quarter, "quarter", 0, "only this quarter")
	txListCmd.Flags().IntVar(&txListPeriod.Month, "month", 0, "only this month")
	txListCmd.Flags().StringVar(&txListType, "type", "", "only income or expense")

	txImportCmd.Flags().BoolVar(&txImportDryRun, "dry-run", false, "parse without saving")

	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txImportCmd)
	txCmd.AddCommand(txDeleteCmd)
	txCmd.AddCommand(txCategorizeCmd)
}

func newTransaction() transaction.Transaction {
	tx := txNew
	if tx.Date == "" {
		tx.Date = time.Now().Format(utils.DateLayout)
	}
	tx.Type = transaction.Type(txType)
	tx.SubCategory = transaction.SubCategory(txSub)
	tx.Method = transaction.Method(txMethod)
	tx.AccountName = transaction.Account(txAccount)
	if txVAT >= 0 {
		tx.VAT = transaction.Int64(txVAT)
	}
	if txNoVAT {
		tx.IsVatDeductible = transaction.Bool(false)
	}
	if txNoIncomeTax {
		tx.IsIncomeTaxDeductible = transaction.Bool(false)
	}
	return tx
}

func runTxAdd(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		tx, err := book.Transactions.Add(cmd.Context(), newTransaction())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), tx)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", tx.ID)
		return nil
	})
}

func printTransactions(cmd *cobra.Command, txs []transaction.Transaction) error {
	w := cmd.OutOrStdout()
	if asJSON {
		return printJSON(w, txs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t날짜\t구분\t증빙\t계정\t적요\t금액")
	for _, tx := range txs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, tx.Type, tx.SubCategory, tx.AccountName, tx.Description, formatWon(tx.Amount))
	}
	return tw.Flush()
}

func runTxList(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		txs, err := book.Transactions.List(cmd.Context())
		if err != nil {
			return err
		}
		if txListType != "" {
			txs = transaction.OfType(txs, transaction.Type(txListType))
		}
		return printTransactions(cmd, transaction.Filter(txs, txListPeriod))
	})
}

func runTxImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return withBook(cmd, func(rt *bootstrap.Runtime, book *app.Book) error {
		result, err := statement.ParseCSV(data, rt.Books.Resolver())
		if err != nil {
			return err
		}
		txs := result.Transactions
		if !txImportDryRun {
			if txs, err = book.Transactions.AddAll(cmd.Context(), txs); err != nil {
				return err
			}
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), txs)
		}
		if err := printTransactions(cmd, txs); err != nil {
			return err
		}
		verb := "imported"
		if txImportDryRun {
			verb = "parsed"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%d rows %s, %d skipped\n", len(txs), verb, result.Skipped)
		return nil
	})
}

func runTxDelete(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(_ *bootstrap.Runtime, book *app.Book) error {
		return book.Transactions.Delete(cmd.Context(), args[0])
	})
}

func runTxCategorize(cmd *cobra.Command, args []string) error {
	return withBook(cmd, func(rt *bootstrap.Runtime, book *app.Book) error {
		adv, err := rt.Books.Advisor()
		if err != nil {
			return err
		}
		report, err := book.Transactions.Categorize(cmd.Context(), adv)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), report)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d expenses updated\n", report.Updated, report.Targeted)
		if report.FellBack {
			fmt.Fprintf(cmd.ErrOrStderr(), "model unavailable, default classification applied: %s\n", report.Reason)
		}
		return nil
	})
}
