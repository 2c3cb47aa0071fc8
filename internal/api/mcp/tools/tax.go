package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tax"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// CalculateIncomeTaxTool estimates comprehensive income tax on a profit figure
type CalculateIncomeTaxTool struct{}

func NewCalculateIncomeTaxTool() *CalculateIncomeTaxTool {
	return &CalculateIncomeTaxTool{}
}

func (t *CalculateIncomeTaxTool) GetName() string {
	return "calculate_income_tax"
}

func (t *CalculateIncomeTaxTool) GetDescription() string {
	return "Estimates comprehensive income tax (종합소득세) for a year's business profit in won using the progressive bracket schedule"
}

func (t *CalculateIncomeTaxTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"profit": map[string]string{
				"type":        "integer",
				"description": "Annual business profit in won",
			},
		},
		Required: []string{"profit"},
	}
}

func (t *CalculateIncomeTaxTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		Profit *int64 `json:"profit"`
	}
	if res := parseArgs(arguments, &args); res != nil {
		return res, nil
	}
	if args.Profit == nil {
		return errorResult("Error: profit is required"), nil
	}

	bracket := tax.BracketFor(*args.Profit)
	out := struct {
		Profit      int64       `json:"profit"`
		IncomeTax   int64       `json:"incomeTax"`
		Bracket     tax.Bracket `json:"bracket"`
		LocalTax    int64       `json:"localIncomeTax"`
		TotalBurden int64       `json:"totalBurden"`
	}{
		Profit:    *args.Profit,
		IncomeTax: tax.EstimateIncomeTax(*args.Profit),
		Bracket:   bracket,
	}
	out.LocalTax = out.IncomeTax / 10
	out.TotalBurden = out.IncomeTax + out.LocalTax

	return jsonResult(fmt.Sprintf("Estimated income tax: %d won", out.IncomeTax), out)
}

// CalculateVATTool computes the VAT position of the caller's book
type CalculateVATTool struct {
	books *app.Books
}

func NewCalculateVATTool(books *app.Books) *CalculateVATTool {
	return &CalculateVATTool{books: books}
}

func (t *CalculateVATTool) GetName() string {
	return "calculate_vat"
}

func (t *CalculateVATTool) GetDescription() string {
	return "Computes output VAT, deductible input VAT, the deemed input credit and VAT payable for the stored transactions of a year or quarter"
}

func (t *CalculateVATTool) GetInputSchema() mcp.JSONSchema {
	props := periodProperties()
	delete(props, "month")
	return mcp.JSONSchema{
		Type:       "object",
		Properties: props,
	}
}

func (t *CalculateVATTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args transaction.Period
	if res := parseArgs(arguments, &args); res != nil {
		return res, nil
	}

	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	report, err := book.Reports.VAT(ctx, args.Year, args.Quarter)
	if err != nil {
		return failure("calculating VAT", err)
	}
	return jsonResult(fmt.Sprintf("VAT payable: %d won", report.VATPayable), report)
}
