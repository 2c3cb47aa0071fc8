package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/statement"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
)

// AnalyzeRequest is the body of POST /ai/analyze
type AnalyzeRequest struct {
	Description string `json:"description"`
}

// AnalyzeResponse carries the model's opinion, or why there is none
type AnalyzeResponse struct {
	Analysis *advisor.ExpenseAnalysis `json:"analysis"`
	FellBack bool                     `json:"fellBack"`
	Reason   string                   `json:"reason,omitempty"`
}

// ReceiptResponse is what POST /ai/receipt read and stored
type ReceiptResponse struct {
	Fields      *advisor.ReceiptFields   `json:"fields"`
	EvidenceURI string                   `json:"evidenceUri,omitempty"`
	Transaction *transaction.Transaction `json:"transaction,omitempty"`
	FellBack    bool                     `json:"fellBack"`
	Reason      string                   `json:"reason,omitempty"`
}

// BankStatementRequest is the JSON form of POST /ai/bank-statement
type BankStatementRequest struct {
	Text string `json:"text"`
}

// BankStatementResponse is what POST /ai/bank-statement read and stored
type BankStatementResponse struct {
	Deposits     []advisor.Deposit         `json:"deposits"`
	Transactions []transaction.Transaction `json:"transactions"`
	Saved        bool                      `json:"saved"`
	FellBack     bool                      `json:"fellBack"`
	Reason       string                    `json:"reason,omitempty"`
}

func contentType(request events.APIGatewayProxyRequest) string {
	ct := header(request, "Content-Type")
	return strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
}

// Categorize handles POST /ai/categorize. Every expense still awaiting an
// account is sent to the model; on failure the defaults are applied.
func (h *Handler) Categorize(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	adv, err := h.books.Advisor()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	report, err := book.Transactions.Categorize(ctx, adv)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Transactions categorized", "targeted", report.Targeted, "updated", report.Updated, "fellBack", report.FellBack)
	return response.OK(report, requestID(request)), nil
}

// AnalyzeExpense handles POST /ai/analyze
func (h *Handler) AnalyzeExpense(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req AnalyzeRequest
	if err := decodeJSON(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if strings.TrimSpace(req.Description) == "" {
		return events.APIGatewayProxyResponse{}, errors.NewValidationError("description is required")
	}
	adv, err := h.books.Advisor()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	result := adv.AnalyzeExpense(ctx, req.Description)
	resp := AnalyzeResponse{Analysis: result.Value}
	if !result.OK() {
		resp.FellBack = true
		resp.Reason = result.Err.Error()
	}
	return response.OK(resp, requestID(request)), nil
}

// ReadReceipt handles POST /ai/receipt. The body is the image itself. When
// evidence storage is configured the image is filed first; with save=true a
// readable receipt is booked as an expense.
func (h *Handler) ReadReceipt(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	adv, err := h.books.Advisor()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	image, err := body(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if len(image) == 0 {
		return events.APIGatewayProxyResponse{}, errors.NewValidationError("receipt image is required")
	}
	mimeType := contentType(request)

	var resp ReceiptResponse
	if h.evidence != nil {
		uri, err := h.evidence.Upload(ctx, book.ID, mimeType, image)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		resp.EvidenceURI = uri
	}

	result := adv.ReadReceipt(ctx, image, mimeType)
	if !result.OK() || result.Value == nil {
		resp.FellBack = true
		if result.Err != nil {
			resp.Reason = result.Err.Error()
		}
		return response.OK(resp, requestID(request)), nil
	}
	resp.Fields = result.Value

	if queryBool(request, "save") {
		added, err := book.Transactions.Add(ctx, statement.FromReceipt(*result.Value, resp.EvidenceURI))
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		resp.Transaction = added
		logger.Info("Receipt booked", "transactionId", added.ID)
	}
	return response.OK(resp, requestID(request)), nil
}

// ReadBankStatement handles POST /ai/bank-statement. The body is a PDF, plain
// text, or {"text": "..."}; with save=true the deposits are booked as sales.
func (h *Handler) ReadBankStatement(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	adv, err := h.books.Advisor()
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var text string
	switch contentType(request) {
	case "application/pdf":
		data, err := body(request)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		if text, err = h.extractPDF(data); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
	case "application/json":
		var req BankStatementRequest
		if err := decodeJSON(request, &req); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		text = req.Text
	default:
		data, err := body(request)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		if text, err = statement.Decode(data); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
	}
	if strings.TrimSpace(text) == "" {
		return events.APIGatewayProxyResponse{}, errors.NewValidationError("statement text is required")
	}

	result := adv.ExtractDeposits(ctx, text)
	resp := BankStatementResponse{
		Deposits:     result.Value,
		Transactions: statement.FromDeposits(result.Value),
	}
	if !result.OK() {
		resp.FellBack = true
		resp.Reason = result.Err.Error()
	}

	if queryBool(request, "save") && len(resp.Transactions) > 0 {
		added, err := book.Transactions.AddAll(ctx, resp.Transactions)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
		resp.Transactions = added
		resp.Saved = true
		logger.Info("Deposits booked", "count", len(added))
	}
	return response.OK(resp, requestID(request)), nil
}

// ListEvidence handles GET /evidence
func (h *Handler) ListEvidence(ctx context.Context, _ *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	objects, err := h.evidence.List(ctx, book.ID)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(objects, requestID(request)), nil
}

// EvidenceResponse is the stored location of an uploaded file
type EvidenceResponse struct {
	URI string `json:"uri"`
}

// UploadEvidence handles POST /evidence. The body is the file itself.
func (h *Handler) UploadEvidence(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	book, err := h.books.FromContext(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	data, err := body(request)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	uri, err := h.evidence.Upload(ctx, book.ID, contentType(request), data)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	logger.Info("Evidence uploaded", "uri", uri, "bytes", len(data))
	return response.Created(EvidenceResponse{URI: uri}, requestID(request)), nil
}
