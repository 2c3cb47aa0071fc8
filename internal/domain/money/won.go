// Package money holds the integer-won arithmetic shared by the tax, payroll
// and ledger calculators. Rates and divisions go through decimal so that
// results such as 1,100,000 / 1.1 land exactly on 1,000,000 before flooring.
package money

import "github.com/shopspring/decimal"

var (
	vatDivisor = decimal.RequireFromString("1.1")
	vatRate    = decimal.RequireFromString("0.1")
)

// Rate parses a decimal literal such as "0.045". It panics on malformed input
// and is meant for package-level rate tables.
func Rate(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Dec converts whole won into a decimal.
func Dec(won int64) decimal.Decimal {
	return decimal.NewFromInt(won)
}

// Floor rounds d toward negative infinity and returns whole won.
func Floor(d decimal.Decimal) int64 {
	return d.Floor().IntPart()
}

// Truncate drops the fractional part of d.
func Truncate(d decimal.Decimal) int64 {
	return d.Truncate(0).IntPart()
}

// MulRate returns floor(amount * rate).
func MulRate(amount int64, rate decimal.Decimal) int64 {
	return Floor(Dec(amount).Mul(rate))
}

// NetOfVAT returns floor(gross / 1.1), the supply value of a VAT-inclusive amount.
func NetOfVAT(gross int64) int64 {
	return Floor(Dec(gross).Div(vatDivisor))
}

// VATPortion returns gross - floor(gross / 1.1).
func VATPortion(gross int64) int64 {
	return gross - NetOfVAT(gross)
}

// IncludedVAT returns floor(gross / 1.1 * 0.1).
func IncludedVAT(gross int64) int64 {
	return Floor(Dec(gross).Div(vatDivisor).Mul(vatRate))
}
