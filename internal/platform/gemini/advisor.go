// Package gemini implements the bookkeeping advisor on top of the Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"google.golang.org/genai"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
)

const serviceName = "gemini"

// Generator is the part of the genai client the advisor calls
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Advisor asks a Gemini model for bookkeeping classifications
type Advisor struct {
	models Generator
	model  string
	logger *slog.Logger
}

var _ advisor.Advisor = (*Advisor)(nil)

// NewClient creates a Gemini API client authenticated with apiKey
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}

// NewAdvisor creates an advisor over models, usually client.Models
func NewAdvisor(models Generator, model string, logger *slog.Logger) *Advisor {
	return &Advisor{models: models, model: model, logger: logger}
}

type wireSuggestion struct {
	IsVatDeductible       bool   `json:"isVatDeductible"`
	IsIncomeTaxDeductible bool   `json:"isIncomeTaxDeductible"`
	SuggestedCategory     string `json:"suggestedCategory"`
	SuggestedAccount      string `json:"suggestedAccount"`
}

type wireReceipt struct {
	Date           string  `json:"date"`
	SupplierBizNum string  `json:"supplierBizNum"`
	SupplierName   string  `json:"supplierName"`
	Amount         float64 `json:"amount"`
	Tax            float64 `json:"tax"`
	SubCategory    string  `json:"subCategory"`
}

type wireDeposit struct {
	Date      string  `json:"date"`
	Depositor string  `json:"depositor"`
	Amount    float64 `json:"amount"`
}

// CategorizeBatch classifies items in one call. The answer is returned as is;
// the caller checks that it has one suggestion per item.
func (a *Advisor) CategorizeBatch(ctx context.Context, items []advisor.Item) ([]advisor.Suggestion, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode items", err)
	}
	var wire []wireSuggestion
	if err := a.generate(ctx, genai.Text(categorizePrompt(len(items), string(data))), suggestionSchema, &wire); err != nil {
		return nil, err
	}
	out := make([]advisor.Suggestion, len(wire))
	for i, w := range wire {
		out[i] = advisor.Suggestion(w)
	}
	return out, nil
}

// AnalyzeExpense classifies a single free-text expense.
func (a *Advisor) AnalyzeExpense(ctx context.Context, description string) (*advisor.ExpenseAnalysis, error) {
	var analysis advisor.ExpenseAnalysis
	if err := a.generate(ctx, genai.Text(expensePrompt(description)), expenseSchema, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// AnalyzeReceipt reads a receipt image.
func (a *Advisor) AnalyzeReceipt(ctx context.Context, image []byte, mimeType string) (*advisor.ReceiptFields, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(image, mimeType),
			genai.NewPartFromText(receiptPrompt),
		}, genai.RoleUser),
	}
	var wire wireReceipt
	if err := a.generate(ctx, contents, receiptSchema, &wire); err != nil {
		return nil, err
	}
	return &advisor.ReceiptFields{
		Date:           wire.Date,
		SupplierBizNum: wire.SupplierBizNum,
		SupplierName:   wire.SupplierName,
		Amount:         won(wire.Amount),
		Tax:            won(wire.Tax),
		SubCategory:    wire.SubCategory,
	}, nil
}

// AnalyzeBankStatement extracts the deposits of a statement's text.
func (a *Advisor) AnalyzeBankStatement(ctx context.Context, statement string) ([]advisor.Deposit, error) {
	var wire []wireDeposit
	if err := a.generate(ctx, genai.Text(bankStatementPrompt(statement)), depositSchema, &wire); err != nil {
		return nil, err
	}
	out := make([]advisor.Deposit, len(wire))
	for i, w := range wire {
		out[i] = advisor.Deposit{Date: w.Date, Depositor: w.Depositor, Amount: won(w.Amount)}
	}
	return out, nil
}

func (a *Advisor) generate(ctx context.Context, contents []*genai.Content, schema *genai.Schema, out any) error {
	resp, err := a.models.GenerateContent(ctx, a.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return errors.NewExternalServiceError(serviceName, err)
	}
	raw := resp.Text()
	if strings.TrimSpace(raw) == "" {
		return errors.NewExternalServiceError(serviceName, fmt.Errorf("empty response from model"))
	}
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), out); err != nil {
		a.logger.Debug("unparseable model answer", "raw", raw)
		return errors.NewExternalServiceError(serviceName, fmt.Errorf("unmarshal model JSON: %w", err))
	}
	return nil
}

func won(v float64) int64 {
	return int64(math.Round(v))
}

// cleanModelJSON strips Markdown fences and any text around the outermost
// JSON object or array.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		idx := strings.Index(s, "\n")
		if idx == -1 {
			return s
		}
		s = strings.TrimSpace(s[idx+1:])
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return s
	}
	closing := "]"
	if s[start] == '{' {
		closing = "}"
	}
	if end := strings.LastIndex(s, closing); end > start {
		s = s[start : end+1]
	}
	return strings.TrimSpace(s)
}
