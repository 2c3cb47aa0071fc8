package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yysangh2-design/APP-QTEX/internal/bootstrap"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump every document of a book as JSON",
	Long: `Dump every document of a book as one JSON object keyed by store key.
The output can be loaded into another store with import.

Example:
  qtex export --book shop-1 --out shop-1.json
  qtex --store sqlite --path qtex.sqlite import shop-1.json`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load a JSON dump written by export into a book",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the books in a local store",
	RunE:  runBooks,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	docs, err := store.Export(cmd.Context(), rt.Books.Store(bookID))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return printJSON(w, docs)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	var docs map[string]json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := store.Import(cmd.Context(), rt.Books.Store(bookID), docs); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d documents imported into %s\n", len(docs), bookID)
	return nil
}

func runBooks(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime(cmd)
	if err != nil {
		return err
	}
	defer rt.Close()
	return listBooks(cmd, rt)
}

func listBooks(cmd *cobra.Command, rt *bootstrap.Runtime) error {
	if rt.Lister == nil {
		return fmt.Errorf("the %s store cannot list books", rt.Config.StoreDriver)
	}
	books, err := rt.Lister()
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd.OutOrStdout(), books)
	}
	for _, b := range books {
		fmt.Fprintln(cmd.OutOrStdout(), b)
	}
	return nil
}
