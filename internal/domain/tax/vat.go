package tax

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/money"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

var (
	deemedRateNumerator   = money.Dec(9)
	deemedRateDenominator = money.Dec(109)
	deemedBaseCap         = money.Rate("0.5")
)

// VATReport is the VAT position of a set of transactions
type VATReport struct {
	TotalSales          int64 `json:"totalSales"`
	TaxableSales        int64 `json:"taxableSales"`
	SalesVAT            int64 `json:"salesVat"`
	DeductiblePurchases int64 `json:"deductiblePurchases"`
	PurchaseNet         int64 `json:"purchaseNet"`
	PurchaseVAT         int64 `json:"purchaseVat"`
	ExemptPurchases     int64 `json:"exemptPurchases"`
	DeemedInputBase     int64 `json:"deemedInputBase"`
	DeemedInputTax      int64 `json:"deemedInputTax"`
	VATPayable          int64 `json:"vatPayable"`
}

// purchaseCarriesCredit selects expenses whose VAT can be deducted: the flag
// must be explicitly true and the evidence must be card, tax invoice or cash.
func purchaseCarriesCredit(tx transaction.Transaction) bool {
	return tx.Type == transaction.Expense && tx.VATDeductible() && tx.SubCategory.CarriesVATCredit()
}

func exemptPurchase(tx transaction.Transaction) bool {
	return tx.Type == transaction.Expense && tx.SubCategory == transaction.SubInvoice
}

func sale(tx transaction.Transaction) bool {
	return tx.Type == transaction.Income
}

// CalculateVAT computes sales VAT, deductible purchase VAT, the deemed input
// credit for exempt purchases and the resulting payable amount.
func CalculateVAT(txs []transaction.Transaction) VATReport {
	var r VATReport

	r.TotalSales = transaction.Total(txs, sale)
	r.TaxableSales = money.NetOfVAT(r.TotalSales)
	r.SalesVAT = r.TotalSales - r.TaxableSales

	r.DeductiblePurchases = transaction.Total(txs, purchaseCarriesCredit)
	r.PurchaseNet = money.NetOfVAT(r.DeductiblePurchases)
	r.PurchaseVAT = r.DeductiblePurchases - r.PurchaseNet

	r.ExemptPurchases = transaction.Total(txs, exemptPurchase)
	base, deemed := DeemedInputTax(r.ExemptPurchases, r.TotalSales)
	r.DeemedInputBase = base
	r.DeemedInputTax = deemed

	r.VATPayable = max(0, r.SalesVAT-r.PurchaseVAT-r.DeemedInputTax)
	return r
}

// DeemedInputTax returns the qualifying base (floored for display) and the
// credit floor(base*9/109), with the base capped at half of total sales.
func DeemedInputTax(exemptPurchases, totalSales int64) (base int64, credit int64) {
	if exemptPurchases <= 0 {
		return 0, 0
	}
	qualifying := money.Dec(exemptPurchases)
	limit := money.Dec(totalSales).Mul(deemedBaseCap)
	if qualifying.GreaterThan(limit) {
		qualifying = limit
	}
	if !qualifying.IsPositive() {
		return 0, 0
	}
	return money.Floor(qualifying), money.Floor(qualifying.Mul(deemedRateNumerator).Div(deemedRateDenominator))
}
