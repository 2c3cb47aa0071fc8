package transaction

import (
	"context"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
)

// awaitingAccount lists the evidence types whose account cannot be inferred
// from the card network and therefore go to the model.
var awaitingAccount = map[SubCategory]bool{
	SubTaxInvoice: true,
	SubCash:       true,
	SubInvoice:    true,
}

// CategorizationTargets returns the indexes of expenses that still need an
// account: tax-invoice, cash or invoice evidence with no account or 기타.
func CategorizationTargets(txs []Transaction) []int {
	var targets []int
	for i, tx := range txs {
		if tx.Type == Expense && awaitingAccount[tx.SubCategory] && tx.AccountName.Unassigned() {
			targets = append(targets, i)
		}
	}
	return targets
}

// ApplySuggestions returns a copy of txs with suggestions[i] applied to
// txs[targets[i]]. The suggested account is resolved against the closed
// vocabulary; anything unrecognised becomes 기타. Rows outside targets and
// targets without a suggestion are left unchanged.
func ApplySuggestions(txs []Transaction, targets []int, suggestions []advisor.Suggestion, r *Resolver) []Transaction {
	if r == nil {
		r = DefaultResolver()
	}
	out := append([]Transaction(nil), txs...)
	for i, idx := range targets {
		if i >= len(suggestions) || idx < 0 || idx >= len(out) {
			continue
		}
		sg := suggestions[i]
		account, _ := r.Resolve(sg.SuggestedAccount)
		if account == "" {
			account = AccountOther
		}
		out[idx].AccountName = account
		out[idx].IsVatDeductible = Bool(sg.IsVatDeductible)
		out[idx].IsIncomeTaxDeductible = Bool(sg.IsIncomeTaxDeductible)
	}
	return out
}

// CategorizationReport summarises one categorization run
type CategorizationReport struct {
	Targeted     int           `json:"targeted"`
	Updated      int           `json:"updated"`
	FellBack     bool          `json:"fellBack"`
	Reason       string        `json:"reason,omitempty"`
	Transactions []Transaction `json:"transactions"`
}

// Categorize sends every expense awaiting an account to the model and stores
// the outcome. When the model fails the fallback classification is applied,
// so a failed batch leaves its rows at the default classification.
func (s *Service) Categorize(ctx context.Context, adv *advisor.Service) (*CategorizationReport, error) {
	txs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	targets := CategorizationTargets(txs)
	report := &CategorizationReport{Targeted: len(targets), Transactions: txs}
	if len(targets) == 0 {
		return report, nil
	}

	items := make([]advisor.Item, len(targets))
	for i, idx := range targets {
		items[i] = advisor.Item{Description: txs[idx].Description, Amount: txs[idx].Amount}
	}

	result := adv.Categorize(ctx, items)
	if !result.OK() {
		report.FellBack = true
		report.Reason = result.Err.Error()
	}

	updated := ApplySuggestions(txs, targets, result.Value, s.resolver)
	for _, idx := range targets {
		if updated[idx].AccountName != txs[idx].AccountName ||
			!sameFlag(updated[idx].IsVatDeductible, txs[idx].IsVatDeductible) ||
			!sameFlag(updated[idx].IsIncomeTaxDeductible, txs[idx].IsIncomeTaxDeductible) {
			report.Updated++
		}
	}

	if err := s.save(ctx, updated); err != nil {
		return nil, err
	}
	report.Transactions = updated
	return report, nil
}

func sameFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
