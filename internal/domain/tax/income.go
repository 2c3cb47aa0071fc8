package tax

import (
	"github.com/shopspring/decimal"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
)

// Bracket is one row of the comprehensive income tax schedule. A zero
// UpperBound marks the open top bracket.
type Bracket struct {
	UpperBound  int64           `json:"upperBound"`
	Rate        decimal.Decimal `json:"rate"`
	Subtraction int64           `json:"subtraction"`
}

// brackets is the 2026 schedule. Each bracket applies its own single
// formula profit*rate - subtraction; the rows are not summed.
var brackets = []Bracket{
	{UpperBound: 14_000_000, Rate: money.Rate("0.06"), Subtraction: 0},
	{UpperBound: 50_000_000, Rate: money.Rate("0.15"), Subtraction: 1_260_000},
	{UpperBound: 88_000_000, Rate: money.Rate("0.24"), Subtraction: 5_760_000},
	{UpperBound: 150_000_000, Rate: money.Rate("0.35"), Subtraction: 15_440_000},
	{UpperBound: 300_000_000, Rate: money.Rate("0.38"), Subtraction: 19_940_000},
	{UpperBound: 500_000_000, Rate: money.Rate("0.40"), Subtraction: 25_940_000},
	{UpperBound: 1_000_000_000, Rate: money.Rate("0.42"), Subtraction: 35_940_000},
	{UpperBound: 0, Rate: money.Rate("0.45"), Subtraction: 65_940_000},
}

// Brackets returns a copy of the schedule.
func Brackets() []Bracket {
	return append([]Bracket(nil), brackets...)
}

// BracketFor returns the first bracket whose upper bound is at least profit.
func BracketFor(profit int64) Bracket {
	for _, b := range brackets {
		if b.UpperBound == 0 || profit <= b.UpperBound {
			return b
		}
	}
	return brackets[len(brackets)-1]
}

// IncomeTax returns the untruncated tax on a year's business profit.
// Profit at or below zero owes nothing.
func IncomeTax(profit int64) decimal.Decimal {
	if profit <= 0 {
		return decimal.Zero
	}
	b := BracketFor(profit)
	return money.Dec(profit).Mul(b.Rate).Sub(money.Dec(b.Subtraction))
}

// EstimateIncomeTax truncates IncomeTax to whole won.
func EstimateIncomeTax(profit int64) int64 {
	return money.Truncate(IncomeTax(profit))
}
