// Package statement turns card and bank statements exported by Korean banks
// into transactions.
package statement

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"

	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/pkg/validator"
)

// DefaultDescription is used for rows with an empty description column
const DefaultDescription = "내역 없음"

var now = time.Now

type column int

const (
	colDate column = iota
	colDescription
	colAmount
	colDeposit
	colWithdrawal
	colVAT
	colBizNum
	colCard
	colEvidence
	colAccount
)

// headers maps every header label seen on Korean card and bank exports to a column.
var headers = map[string]column{
	"날짜": colDate, "거래일": colDate, "거래일자": colDate, "거래일시": colDate,
	"이용일": colDate, "이용일자": colDate, "승인일자": colDate, "date": colDate,
	"내용": colDescription, "가맹점": colDescription, "가맹점명": colDescription,
	"적요": colDescription, "이용처": colDescription, "거래내용": colDescription, "description": colDescription,
	"금액": colAmount, "이용금액": colAmount, "거래금액": colAmount, "승인금액": colAmount, "amount": colAmount,
	"입금": colDeposit, "입금액": colDeposit, "입금금액": colDeposit,
	"출금": colWithdrawal, "출금액": colWithdrawal, "출금금액": colWithdrawal,
	"부가세": colVAT, "vat": colVAT,
	"사업자번호": colBizNum, "가맹점사업자번호": colBizNum, "사업자등록번호": colBizNum,
	"카드번호": colCard,
	"증빙": colEvidence, "증빙유형": colEvidence,
	"계정과목": colAccount, "계정": colAccount,
}

var dateLayouts = []string{utils.DateLayout, "2006-1-2", "20060102"}

// Result is the outcome of one import
type Result struct {
	Transactions []transaction.Transaction `json:"transactions"`
	Skipped      int                       `json:"skipped"`
}

// Decode returns data as UTF-8 text. Input that is not valid UTF-8 is read
// as CP949 (EUC-KR), the default encoding of Korean bank exports.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return "", errors.NewInvalidInputError("statement is neither UTF-8 nor CP949", err)
	}
	return string(out), nil
}

// Baseline is the classification of an imported expense row before any
// column says otherwise.
func Baseline() transaction.Transaction {
	return transaction.Transaction{
		Type:                  transaction.Expense,
		SubCategory:           transaction.SubCard,
		Method:                transaction.MethodCard,
		IsVatDeductible:       transaction.Bool(true),
		IsIncomeTaxDeductible: transaction.Bool(true),
		AccountName:           transaction.AccountOther,
	}
}

// ParseCSV reads a statement with a header row. Columns are matched by
// header label, so column order does not matter. Values that cannot be used
// fall back to the baseline instead of failing the batch; rows without a
// usable amount are skipped.
func ParseCSV(data []byte, resolver *transaction.Resolver) (*Result, error) {
	if resolver == nil {
		resolver = transaction.DefaultResolver()
	}
	text, err := Decode(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.NewInvalidInputError("statement is empty", nil)
	}
	if err != nil {
		return nil, errors.NewInvalidInputError("statement is not valid CSV", err)
	}

	cols := make(map[column]int)
	for i, h := range header {
		if c, ok := headers[strings.ToLower(strings.ReplaceAll(strings.TrimSpace(h), " ", ""))]; ok {
			if _, seen := cols[c]; !seen {
				cols[c] = i
			}
		}
	}
	_, hasAmount := cols[colAmount]
	_, hasDeposit := cols[colDeposit]
	_, hasWithdrawal := cols[colWithdrawal]
	if !hasAmount && !hasDeposit && !hasWithdrawal {
		return nil, errors.NewInvalidInputError("statement has no amount column", nil)
	}

	result := &Result{Transactions: []transaction.Transaction{}}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}
		tx, ok := parseRow(record, cols, resolver)
		if !ok {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	return result, nil
}

func parseRow(record []string, cols map[column]int, resolver *transaction.Resolver) (transaction.Transaction, bool) {
	field := func(c column) string {
		i, ok := cols[c]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	tx := Baseline()
	amount, ok := ParseAmount(field(colAmount))
	if deposit, depositOK := ParseAmount(field(colDeposit)); depositOK && deposit > 0 {
		amount, ok = deposit, true
		tx = transaction.Transaction{
			Type:        transaction.Income,
			SubCategory: transaction.SubSimpleCash,
			Method:      transaction.MethodAccount,
		}
	} else if withdrawal, withdrawalOK := ParseAmount(field(colWithdrawal)); withdrawalOK && withdrawal > 0 {
		amount, ok = withdrawal, true
		tx.Method = transaction.MethodAccount
	}
	if !ok || amount <= 0 {
		return tx, false
	}

	tx.Amount = amount
	tx.Date = NormalizeDate(field(colDate))
	tx.Description = field(colDescription)
	if tx.Description == "" {
		tx.Description = DefaultDescription
	}

	if vat, vatOK := ParseAmount(field(colVAT)); vatOK && vat >= 0 && vat <= amount {
		tx.VAT = transaction.Int64(vat)
	}
	if biz := field(colBizNum); validator.ValidBusinessNumber(biz) {
		tx.MerchantBizNum = validator.FormatBusinessNumber(biz)
	}
	if card := field(colCard); utils.ValidateCardNumber(card) == nil {
		tx.CardNumber = card
	}
	if sc := transaction.SubCategory(field(colEvidence)); sc.ValidFor(tx.Type) {
		tx.SubCategory = sc
	}
	if tx.Type == transaction.Expense {
		if account, known := resolver.Resolve(field(colAccount)); known && account != "" {
			tx.AccountName = account
		}
	}
	return tx, true
}

// ParseAmount reads a won amount written with thousands separators, a 원
// suffix or accounting parentheses. Parenthesised amounts are negative.
func ParseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.Trim(s, "()")
	s = strings.NewReplacer(",", "", "원", "", "₩", "", " ", "").Replace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// NormalizeDate converts 2024.01.05, 2024/1/5, 20240105 and timestamped
// variants to YYYY-MM-DD. Unreadable dates become today.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}
	s = strings.NewReplacer(".", "-", "/", "-").Replace(strings.TrimRight(s, "."))
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.Format(utils.DateLayout)
		}
	}
	return now().Format(utils.DateLayout)
}
