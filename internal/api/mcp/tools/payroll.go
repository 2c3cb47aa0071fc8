package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/payroll"
)

func payrollInputProperties() map[string]interface{} {
	return map[string]interface{}{
		"type": map[string]interface{}{
			"type":        "string",
			"description": "Employment type",
			"enum":        []string{string(payroll.Salaried), string(payroll.Freelancer), string(payroll.PartTime)},
		},
		"monthlySalary": map[string]string{
			"type":        "integer",
			"description": "Gross monthly pay in won (정규직, 프리랜서)",
		},
		"hourlyWage": map[string]string{
			"type":        "integer",
			"description": "Hourly wage in won (알바)",
		},
		"weeks": map[string]interface{}{
			"type":        "array",
			"description": fmt.Sprintf("Exactly %d weekly work patterns (알바)", payroll.WeeksPerMonth),
			"minItems":    payroll.WeeksPerMonth,
			"maxItems":    payroll.WeeksPerMonth,
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"days":  intProperty("Working days in the week", 0, 7),
					"hours": map[string]string{"type": "number", "description": "Hours per working day"},
				},
				"required": []string{"days", "hours"},
			},
		},
	}
}

// CalculatePayrollTool previews a payroll run without saving it
type CalculatePayrollTool struct{}

func NewCalculatePayrollTool() *CalculatePayrollTool {
	return &CalculatePayrollTool{}
}

func (t *CalculatePayrollTool) GetName() string {
	return "calculate_payroll"
}

func (t *CalculatePayrollTool) GetDescription() string {
	return "Calculates take-home pay, employer cost and the deduction breakdown for a salaried, freelance or part-time worker"
}

func (t *CalculatePayrollTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type:       "object",
		Properties: payrollInputProperties(),
		Required:   []string{"type"},
	}
}

func (t *CalculatePayrollTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var in payroll.Input
	if res := parseArgs(arguments, &in); res != nil {
		return res, nil
	}
	result, err := payroll.Calculate(in)
	if err != nil {
		return failure("calculating payroll", err)
	}
	return jsonResult(fmt.Sprintf("Take-home %d won, employer cost %d won", result.TakeHome, result.TotalCost), result)
}

// ConfirmPayrollTool books a payroll run into the caller's ledger
type ConfirmPayrollTool struct {
	books *app.Books
}

func NewConfirmPayrollTool(books *app.Books) *ConfirmPayrollTool {
	return &ConfirmPayrollTool{books: books}
}

func (t *ConfirmPayrollTool) GetName() string {
	return "confirm_payroll"
}

func (t *ConfirmPayrollTool) GetDescription() string {
	return "Confirms a payroll run: records the salary expense, the employer insurance expense and a labor entry with the resident ID masked"
}

func (t *ConfirmPayrollTool) GetInputSchema() mcp.JSONSchema {
	props := payrollInputProperties()
	props["name"] = map[string]string{
		"type":        "string",
		"description": "Worker name",
	}
	props["residentId"] = map[string]string{
		"type":        "string",
		"description": "Resident registration number, 000000-0000000",
		"pattern":     "^[0-9]{6}-[0-9]{7}$",
	}
	props["date"] = map[string]string{
		"type":        "string",
		"description": "Pay date in YYYY-MM-DD format",
		"pattern":     "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
	}
	return mcp.JSONSchema{
		Type:       "object",
		Properties: props,
		Required:   []string{"type", "name", "residentId", "date"},
	}
}

func (t *ConfirmPayrollTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		payroll.Input
		Name       string `json:"name"`
		ResidentID string `json:"residentId"`
		Date       string `json:"date"`
	}
	if res := parseArgs(arguments, &args); res != nil {
		return res, nil
	}

	book, err := t.books.FromContext(ctx)
	if err != nil {
		return failure("opening book", err)
	}
	confirmation, err := book.Payroll.Confirm(ctx, args.Name, args.ResidentID, args.Input, args.Date)
	if err != nil {
		return failure("confirming payroll", err)
	}
	return jsonResult(fmt.Sprintf("Payroll confirmed for %s: %d transactions recorded", confirmation.Entry.Name, len(confirmation.Transactions)), confirmation)
}
