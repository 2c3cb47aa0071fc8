// Package mcp wires the bookkeeping tools, resources and prompts into an MCP
// handler registry.
package mcp

import (
	"github.com/yysangh2-design/APP-QTEX/internal/api/mcp/prompts"
	"github.com/yysangh2-design/APP-QTEX/internal/api/mcp/resources"
	"github.com/yysangh2-design/APP-QTEX/internal/api/mcp/tools"
	"github.com/yysangh2-design/APP-QTEX/internal/app"
	domainmcp "github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

// NewRegistry registers every handler over books.
func NewRegistry(books *app.Books) *domainmcp.HandlerRegistry {
	registry := domainmcp.NewHandlerRegistry()

	registry.RegisterTool(tools.NewCalculateIncomeTaxTool())
	registry.RegisterTool(tools.NewCalculateVATTool(books))
	registry.RegisterTool(tools.NewCalculatePayrollTool())
	registry.RegisterTool(tools.NewConfirmPayrollTool(books))
	registry.RegisterTool(tools.NewDeriveJournalTool(books))
	registry.RegisterTool(tools.NewIncomeStatementTool(books))
	registry.RegisterTool(tools.NewAddTransactionTool(books))
	registry.RegisterTool(tools.NewCategorizeExpensesTool(books))

	registry.RegisterResource(resources.NewTransactionsResource(books))
	registry.RegisterResource(resources.NewLaborEntriesResource(books))

	registry.RegisterPrompt(prompts.NewTaxReviewPrompt(books))

	return registry
}
