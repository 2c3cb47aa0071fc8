package statement

import (
	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/pkg/validator"
)

// FromReceipt books the fields read from a receipt as an expense with the
// baseline classification. evidenceURI, when set, links the stored image.
func FromReceipt(fields advisor.ReceiptFields, evidenceURI string) transaction.Transaction {
	tx := Baseline()
	tx.Date = NormalizeDate(fields.Date)
	tx.Description = fields.SupplierName
	if tx.Description == "" {
		tx.Description = DefaultDescription
	}
	tx.Amount = max(0, fields.Amount)
	if fields.Tax > 0 && fields.Tax <= tx.Amount {
		tx.VAT = transaction.Int64(fields.Tax)
	}
	if validator.ValidBusinessNumber(fields.SupplierBizNum) {
		tx.MerchantBizNum = validator.FormatBusinessNumber(fields.SupplierBizNum)
	}
	if sc := transaction.SubCategory(fields.SubCategory); sc.ValidFor(transaction.Expense) {
		tx.SubCategory = sc
	}
	if evidenceURI != "" {
		tx.EvidenceImage = evidenceURI
		tx.EvidenceType = "receipt"
	}
	return tx
}
