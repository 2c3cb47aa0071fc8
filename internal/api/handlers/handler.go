// Package handlers serves the bookkeeping REST API behind API Gateway.
package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/common/utils"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/errors"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/evidence"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/transaction"
	"github.com/yysangh2-design/APP-QTEX/internal/platform/pdftext"
)

// ProfileService reads and updates the signed-in owner's profile
type ProfileService interface {
	Profile(ctx context.Context, accessToken string) (*tenant.Profile, error)
	UpdateProfile(ctx context.Context, accessToken string, update tenant.ProfileUpdate) error
}

// Handler serves every /api route
type Handler struct {
	books      *app.Books
	evidence   *evidence.Service
	profiles   ProfileService
	extractPDF func([]byte) (string, error)
	now        func() time.Time
}

// Option configures a Handler
type Option func(*Handler)

// WithEvidence enables evidence uploads.
func WithEvidence(s *evidence.Service) Option {
	return func(h *Handler) { h.evidence = s }
}

// WithProfiles enables the Cognito-backed profile endpoints.
func WithProfiles(p ProfileService) Option {
	return func(h *Handler) { h.profiles = p }
}

// WithPDFExtractor replaces the PDF text extractor.
func WithPDFExtractor(fn func([]byte) (string, error)) Option {
	return func(h *Handler) { h.extractPDF = fn }
}

// NewHandler creates a new handler
func NewHandler(books *app.Books, opts ...Option) *Handler {
	h := &Handler{
		books:      books,
		extractPDF: pdftext.ExtractText,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func requestID(request events.APIGatewayProxyRequest) string {
	return request.RequestContext.RequestID
}

func header(request events.APIGatewayProxyRequest, name string) string {
	for k, v := range request.Headers {
		if http.CanonicalHeaderKey(k) == http.CanonicalHeaderKey(name) {
			return v
		}
	}
	return ""
}

func bearerToken(request events.APIGatewayProxyRequest) string {
	token, err := utils.ExtractBearerToken(header(request, "Authorization"))
	if err != nil {
		return ""
	}
	return token
}

// body returns the raw request body, decoding binary payloads API Gateway
// delivers base64 encoded.
func body(request events.APIGatewayProxyRequest) ([]byte, error) {
	if request.IsBase64Encoded {
		data, err := base64.StdEncoding.DecodeString(request.Body)
		if err != nil {
			return nil, errors.NewInvalidInputError("body is not valid base64", err)
		}
		return data, nil
	}
	return []byte(request.Body), nil
}

func decodeJSON(request events.APIGatewayProxyRequest, v any) error {
	data, err := body(request)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return errors.NewInvalidInputError("request body is required", nil)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.NewInvalidInputError("invalid request body", err)
	}
	return nil
}

func queryInt(request events.APIGatewayProxyRequest, name string, def int) (int, error) {
	raw := strings.TrimSpace(request.QueryStringParameters[name])
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name + " must be an integer").WithDetail(name, raw)
	}
	return v, nil
}

func queryBool(request events.APIGatewayProxyRequest, name string) bool {
	v, _ := strconv.ParseBool(request.QueryStringParameters[name])
	return v
}

// period reads year, quarter and month from the query string.
func period(request events.APIGatewayProxyRequest) (transaction.Period, error) {
	var p transaction.Period
	var err error
	if p.Year, err = queryInt(request, "year", 0); err != nil {
		return p, err
	}
	if p.Quarter, err = queryInt(request, "quarter", 0); err != nil {
		return p, err
	}
	if p.Month, err = queryInt(request, "month", 0); err != nil {
		return p, err
	}
	if p.Quarter < 0 || p.Quarter > 4 {
		return p, errors.NewValidationError("quarter must be between 1 and 4")
	}
	if p.Month < 0 || p.Month > 12 {
		return p, errors.NewValidationError("month must be between 1 and 12")
	}
	return p, nil
}

func (h *Handler) year(request events.APIGatewayProxyRequest) (int, error) {
	return queryInt(request, "year", h.now().Year())
}

func pathParam(request events.APIGatewayProxyRequest, name string) string {
	return request.PathParameters[name]
}
