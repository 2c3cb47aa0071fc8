package advisor

import (
	"context"
	"fmt"
	"log/slog"
)

// Result carries either a value from the model or the error that replaced it.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// OrDefault returns the value, or def when the call failed.
func (r Result[T]) OrDefault(def T) T {
	if r.Err != nil {
		return def
	}
	return r.Value
}

// Service wraps an Advisor and converts failures into Results with the
// fallbacks the bookkeeping flows expect.
type Service struct {
	advisor Advisor
	logger  *slog.Logger
}

// NewService creates a new advisor service
func NewService(a Advisor, logger *slog.Logger) *Service {
	return &Service{advisor: a, logger: logger}
}

// Categorize always returns one suggestion per item. When the model fails or
// answers with the wrong number of items, every item gets DefaultSuggestion
// and Err records why.
func (s *Service) Categorize(ctx context.Context, items []Item) Result[[]Suggestion] {
	if len(items) == 0 {
		return Result[[]Suggestion]{Value: []Suggestion{}}
	}
	suggestions, err := s.advisor.CategorizeBatch(ctx, items)
	if err == nil && len(suggestions) != len(items) {
		err = errShortAnswer{want: len(items), got: len(suggestions)}
	}
	if err != nil {
		s.logger.Warn("categorization fell back to defaults", "items", len(items), "error", err)
		defaults := make([]Suggestion, len(items))
		for i := range defaults {
			defaults[i] = DefaultSuggestion()
		}
		return Result[[]Suggestion]{Value: defaults, Err: err}
	}
	return Result[[]Suggestion]{Value: suggestions}
}

// AnalyzeExpense returns the model's opinion on one expense.
func (s *Service) AnalyzeExpense(ctx context.Context, description string) Result[*ExpenseAnalysis] {
	analysis, err := s.advisor.AnalyzeExpense(ctx, description)
	if err != nil {
		s.logger.Warn("expense analysis failed", "error", err)
	}
	return Result[*ExpenseAnalysis]{Value: analysis, Err: err}
}

// ReadReceipt extracts receipt fields. Failure leaves Value nil.
func (s *Service) ReadReceipt(ctx context.Context, image []byte, mimeType string) Result[*ReceiptFields] {
	fields, err := s.advisor.AnalyzeReceipt(ctx, image, mimeType)
	if err != nil {
		s.logger.Warn("receipt analysis failed", "mimeType", mimeType, "error", err)
		return Result[*ReceiptFields]{Err: err}
	}
	return Result[*ReceiptFields]{Value: fields}
}

// ExtractDeposits reads incoming transfers. Failure yields no deposits.
func (s *Service) ExtractDeposits(ctx context.Context, statement string) Result[[]Deposit] {
	deposits, err := s.advisor.AnalyzeBankStatement(ctx, statement)
	if err != nil {
		s.logger.Warn("bank statement analysis failed", "error", err)
		return Result[[]Deposit]{Value: []Deposit{}, Err: err}
	}
	if deposits == nil {
		deposits = []Deposit{}
	}
	return Result[[]Deposit]{Value: deposits}
}

type errShortAnswer struct {
	want, got int
}

func (e errShortAnswer) Error() string {
	return fmt.Sprintf("model returned %d suggestions for %d items", e.got, e.want)
}
