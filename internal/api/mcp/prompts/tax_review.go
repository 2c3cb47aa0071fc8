package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

// TaxReviewPrompt asks the client's model for a tax adjustment review of the
// book's income statement
type TaxReviewPrompt struct {
	books *app.Books
}

func NewTaxReviewPrompt(books *app.Books) *TaxReviewPrompt {
	return &TaxReviewPrompt{books: books}
}

func (p *TaxReviewPrompt) GetName() string {
	return "tax_review"
}

func (p *TaxReviewPrompt) GetDescription() string {
	return "Tax adjustment review (세무조정 검토) of the income statement by a Korean tax accountant persona"
}

func (p *TaxReviewPrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "year",
			Description: "Tax year under review, e.g. 2026",
			Required:    true,
		},
		{
			Name:        "focus",
			Description: "Items to look at closely, e.g. '차량유지비, 접대비'",
		},
	}
}

func (p *TaxReviewPrompt) Get(ctx context.Context, arguments map[string]string) (*mcp.GetPromptResult, error) {
	year, err := strconv.Atoi(strings.TrimSpace(arguments["year"]))
	if err != nil || year < 2000 {
		return nil, errors.NewValidationError("year must be a four digit year")
	}

	book, err := p.books.FromContext(ctx)
	if err != nil {
		return nil, err
	}
	statement, err := book.Ledger.Statement(ctx)
	if err != nil {
		return nil, err
	}
	estimate, err := book.Reports.IncomeTax(ctx, year)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(statement, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal income statement: %w", err)
	}

	focus := "전체 항목"
	if f := strings.TrimSpace(arguments["focus"]); f != "" {
		focus = f
	}

	text := fmt.Sprintf(`대한민국 전문 세무사로서 %d년 귀속 조세법을 적용하여 다음 사업장의 세무조정을 검토하라.
매출액(공급가액): %d원, 영업이익: %d원, 현재 추정 종합소득세: %d원.
중점 검토 항목: %s.

다음 형식으로 답하라:
1. 익금산입/손금불산입 항목과 금액, 근거
2. 손금산입/익금불산입 항목과 금액, 근거
3. 적용 가능한 세액감면과 세액공제
4. 조정 후 과세표준과 최종 예상세액
5. 절세 의견`, year, statement.NetSales, statement.OperatingProfit, estimate.EstimatedTax, focus)

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("%d년 세무조정 검토", year),
		Messages: []mcp.PromptMessage{
			{
				Role: "user",
				Content: mcp.PromptContent{
					Type: "text",
					Text: text,
				},
			},
			{
				Role: "user",
				Content: mcp.PromptContent{
					Type: "resource",
					Resource: &mcp.ResourceContent{
						URI:      "qtex://income-statement",
						MimeType: "application/json",
						Text:     string(data),
					},
				},
			},
		},
	}, nil
}
