package gemini

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

const receiptPrompt = "이 이미지에서 거래일자, 공급자 사업자번호, 상호, 금액, 부가세를 추출해줘."

func categorizePrompt(n int, data string) string {
	accounts := transaction.SuggestibleAccounts()
	quoted := make([]string, len(accounts))
	for i, a := range accounts {
		quoted[i] = fmt.Sprintf("'%s'", a)
	}
	return fmt.Sprintf(`대한민국 세무 신고 기준으로 다음 %d건의 카드 내역을 분류해줘.

[분류 원칙]
1. 식대, 소모품, 비품, 광고비 등 사업 관련 지출은 '카드' 또는 적절한 카테고리로 분류.
2. '주점', '골프', '마사지' 등 유흥성 지출은 사적 지출로 간주.
3. 병원, 약국 등 면세 관련 지출은 부가세 불공제로 분류.
4. 손익계산서 계정과목은 다음 중 가장 적절한 것을 선택: %s

반드시 입력된 순서대로 %d개의 결과를 배열로 반환해.
데이터: %s`, n, strings.Join(quoted, ", "), n, data)
}

func expensePrompt(description string) string {
	return fmt.Sprintf(`다음 거래 내용을 분석하여 '매출' 또는 '매입' 및 상세 하부 카테고리로 분류하고 절세 팁을 알려주세요.

거래명: %s`, description)
}

func bankStatementPrompt(statement string) string {
	return fmt.Sprintf(`다음 통장 내역에서 '입금'된 내역만 추출해서 리스트로 만들어줘. 출금 내역은 무시해.
사람 이름이나 상호명이 입금자명으로 되어 있는 항목들을 우선적으로 찾아줘.
데이터: %s`, statement)
}

func object(required []string, properties map[string]*genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeObject, Properties: properties, Required: required}
}

func arrayOf(item *genai.Schema) *genai.Schema {
	return &genai.Schema{Type: genai.TypeArray, Items: item}
}

var (
	str     = &genai.Schema{Type: genai.TypeString}
	boolean = &genai.Schema{Type: genai.TypeBoolean}
	number  = &genai.Schema{Type: genai.TypeNumber}
)

var suggestionSchema = arrayOf(object(
	[]string{"isVatDeductible", "isIncomeTaxDeductible", "suggestedCategory", "suggestedAccount"},
	map[string]*genai.Schema{
		"isVatDeductible":       boolean,
		"isIncomeTaxDeductible": boolean,
		"suggestedCategory":     {Type: genai.TypeString, Description: "카드, 세금계산서, 현금, 계산서 중 하나"},
		"suggestedAccount":      {Type: genai.TypeString, Description: "손익계산서 계정과목"},
	},
))

var expenseSchema = object(
	[]string{"category", "subCategory", "isDeductible", "reason", "taxSavingTip"},
	map[string]*genai.Schema{
		"category":     str,
		"subCategory":  str,
		"isDeductible": boolean,
		"reason":       str,
		"taxSavingTip": str,
	},
)

var receiptSchema = object(
	[]string{"date", "supplierName", "amount", "tax", "subCategory"},
	map[string]*genai.Schema{
		"date":           str,
		"supplierBizNum": str,
		"supplierName":   str,
		"amount":         number,
		"tax":            number,
		"subCategory":    str,
	},
)

var depositSchema = arrayOf(object(
	[]string{"date", "depositor", "amount"},
	map[string]*genai.Schema{
		"date":      str,
		"depositor": str,
		"amount":    number,
	},
))
