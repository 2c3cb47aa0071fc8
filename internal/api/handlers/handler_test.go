package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yysangh2-design/APP-QTEX/internal/api/middleware"
	"github.com/yysangh2-design/APP-QTEX/internal/app"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/advisor"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/evidence"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/store"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/tenant"
)

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Pagination *struct {
		Total      int `json:"total"`
		Page       int `json:"page"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type stubAdvisor struct {
	receipt  *advisor.ReceiptFields
	deposits []advisor.Deposit
	err      error
}

func (s *stubAdvisor) CategorizeBatch(_ context.Context, items []advisor.Item) ([]advisor.Suggestion, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]advisor.Suggestion, len(items))
	for i := range out {
		out[i] = advisor.Suggestion{IsVatDeductible: true, IsIncomeTaxDeductible: true, SuggestedAccount: "소모품비"}
	}
	return out, nil
}

func (s *stubAdvisor) AnalyzeExpense(context.Context, string) (*advisor.ExpenseAnalysis, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &advisor.ExpenseAnalysis{Category: "소모품비", IsDeductible: true}, nil
}

func (s *stubAdvisor) AnalyzeReceipt(context.Context, []byte, string) (*advisor.ReceiptFields, error) {
	return s.receipt, s.err
}

func (s *stubAdvisor) AnalyzeBankStatement(context.Context, string) ([]advisor.Deposit, error) {
	return s.deposits, s.err
}

type fakeProfiles struct {
	profile *tenant.Profile
	updated []tenant.ProfileUpdate
}

func (f *fakeProfiles) Profile(context.Context, string) (*tenant.Profile, error) {
	return f.profile, nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, _ string, update tenant.ProfileUpdate) error {
	f.updated = append(f.updated, update)
	f.profile.Name = update.Name
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testAPI struct {
	t       *testing.T
	handler middleware.APIGatewayHandler
}

func newTestAPI(t *testing.T, adv advisor.Advisor, opts ...Option) *testAPI {
	t.Helper()
	logger := quietLogger()
	var svc *advisor.Service
	if adv != nil {
		svc = advisor.NewService(adv, logger)
	}
	books := app.NewBooks(store.NewMemoryFactory().ForBook, nil, svc, logger)
	h := NewHandler(books, opts...)
	return &testAPI{
		t: t,
		handler: middleware.Chain(h.Routes().Handle,
			middleware.NewRecoveryMiddleware(),
			middleware.NewTenantMiddleware(false),
		),
	}
}

func (a *testAPI) do(method, path, body string, query map[string]string) (events.APIGatewayProxyResponse, envelope) {
	return a.send(events.APIGatewayProxyRequest{
		HTTPMethod:            method,
		Path:                  path,
		Body:                  body,
		QueryStringParameters: query,
		Headers:               map[string]string{"Content-Type": "application/json"},
	})
}

func (a *testAPI) send(req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, envelope) {
	a.t.Helper()
	req.RequestContext.RequestID = "req-1"
	req.RequestContext.Authorizer = map[string]interface{}{"tenantId": "shop-1", "userId": "user-1"}
	resp, err := a.handler(context.Background(), quietLogger(), req)
	require.NoError(a.t, err)

	var env envelope
	if resp.Body != "" && strings.HasPrefix(resp.Headers["Content-Type"], "application/json") {
		require.NoError(a.t, json.Unmarshal([]byte(resp.Body), &env))
	}
	return resp, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func TestRouter(t *testing.T) {
	api := newTestAPI(t, nil)

	t.Run("preflight", func(t *testing.T) {
		resp, _ := api.do(http.MethodOptions, "/api/transactions", "", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, env := api.do(http.MethodGet, "/api/nope", "", nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", env.Error)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, _ := api.do(http.MethodPatch, "/api/transactions", "", nil)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("prefix is optional", func(t *testing.T) {
		resp, env := api.do(http.MethodGet, "/accounts", "", nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		accounts := decode[AccountsResponse](t, env)
		assert.NotEmpty(t, accounts.Accounts)
	})

	t.Run("missing tenant", func(t *testing.T) {
		resp, err := api.handler(context.Background(), quietLogger(), events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodGet,
			Path:       "/api/transactions",
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestTransactions(t *testing.T) {
	t.Run("create, read, update and delete", func(t *testing.T) {
		// Setup
		api := newTestAPI(t, nil)
		body := `{"date":"2024-03-02","description":"카드매출","amount":110000,"type":"income","subCategory":"카드"}`

		// Act
		resp, env := api.do(http.MethodPost, "/api/transactions", body, nil)

		// Assert
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)
		created := decode[map[string]any](t, env)
		id, _ := created["id"].(string)
		require.NotEmpty(t, id)

		resp, env = api.do(http.MethodGet, "/api/transactions/"+id, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "카드매출", decode[map[string]any](t, env)["description"])

		update := `{"date":"2024-03-02","description":"카드매출 정정","amount":220000,"type":"income","subCategory":"카드"}`
		resp, env = api.do(http.MethodPut, "/api/transactions/"+id, update, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		assert.Equal(t, float64(220000), decode[map[string]any](t, env)["amount"])

		resp, _ = api.do(http.MethodDelete, "/api/transactions/"+id, "", nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = api.do(http.MethodGet, "/api/transactions/"+id, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("array bodies are stored together", func(t *testing.T) {
		// Setup
		api := newTestAPI(t, nil)
		body := `[{"date":"2024-01-05","description":"a","amount":1000,"type":"income","subCategory":"카드"},
		          {"date":"2024-05-05","description":"b","amount":2000,"type":"income","subCategory":"카드"}]`

		// Act
		resp, _ := api.do(http.MethodPost, "/api/transactions", body, nil)

		// Assert
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)
		_, env := api.do(http.MethodGet, "/api/transactions", "", map[string]string{"year": "2024", "quarter": "1"})
		assert.Len(t, decode[[]map[string]any](t, env), 1)
	})

	t.Run("invalid body", func(t *testing.T) {
		api := newTestAPI(t, nil)

		resp, env := api.do(http.MethodPost, "/api/transactions", "{", nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_INPUT", env.Error)
	})

	t.Run("bad period", func(t *testing.T) {
		api := newTestAPI(t, nil)

		resp, _ := api.do(http.MethodGet, "/api/transactions", "", map[string]string{"quarter": "5"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestImportStatement(t *testing.T) {
	csv := "이용일자,가맹점명,이용금액\n2024.03.02,문구센터,5500\n2024.03.03,취소,(100)\n"

	t.Run("dry run stores nothing", func(t *testing.T) {
		// Setup
		api := newTestAPI(t, nil)

		// Act
		resp, env := api.do(http.MethodPost, "/api/transactions/import", csv, map[string]string{"dryRun": "true"})

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		result := decode[ImportResponse](t, env)
		assert.True(t, result.DryRun)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, 1, result.Skipped)
		assert.Len(t, result.Transactions, 1)

		_, env = api.do(http.MethodGet, "/api/transactions", "", nil)
		assert.Empty(t, decode[[]map[string]any](t, env))
	})

	t.Run("imports base64 bodies", func(t *testing.T) {
		// Setup
		api := newTestAPI(t, nil)

		// Act
		resp, env := api.send(events.APIGatewayProxyRequest{
			HTTPMethod:      http.MethodPost,
			Path:            "/api/transactions/import",
			Body:            base64.StdEncoding.EncodeToString([]byte(csv)),
			IsBase64Encoded: true,
		})

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		assert.Equal(t, 1, decode[ImportResponse](t, env).Imported)
	})
}

func TestLabor(t *testing.T) {
	api := newTestAPI(t, nil)

	t.Run("calculate does not store", func(t *testing.T) {
		resp, env := api.do(http.MethodPost, "/api/labor/calculate", `{"type":"프리랜서","monthlySalary":1000000}`, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		assert.Equal(t, float64(1000000), decode[map[string]any](t, env)["baseSalary"])

		_, env = api.do(http.MethodGet, "/api/labor", "", nil)
		assert.Empty(t, decode[[]map[string]any](t, env))
	})

	t.Run("confirm appends an entry", func(t *testing.T) {
		body := `{"type":"프리랜서","monthlySalary":1000000,"name":"김디자인","residentId":"900101-1234567","date":"2024-04-25"}`

		resp, _ := api.do(http.MethodPost, "/api/labor/confirm", body, nil)

		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)
		_, env := api.do(http.MethodGet, "/api/labor", "", nil)
		entries := decode[[]map[string]any](t, env)
		require.Len(t, entries, 1)
		assert.Equal(t, "900101-1******", entries[0]["residentId"])
	})

	t.Run("unknown type", func(t *testing.T) {
		resp, env := api.do(http.MethodPost, "/api/labor/calculate", `{"type":"인턴"}`, nil)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", env.Error)
	})
}

func TestLedger(t *testing.T) {
	// Setup
	api := newTestAPI(t, nil)
	var txs []string
	for i := 1; i <= 30; i++ {
		txs = append(txs, fmt.Sprintf(`{"date":"2024-02-%02d","description":"매출%d","amount":11000,"type":"income","subCategory":"카드"}`, (i%28)+1, i))
	}
	resp, _ := api.do(http.MethodPost, "/api/transactions", "["+strings.Join(txs, ",")+"]", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)

	t.Run("simple ledger pages", func(t *testing.T) {
		resp, env := api.do(http.MethodGet, "/api/ledger/simple", "", map[string]string{"page": "2"})

		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		require.NotNil(t, env.Pagination)
		assert.Equal(t, 30, env.Pagination.Total)
		assert.Equal(t, 2, env.Pagination.TotalPages)
		assert.Len(t, decode[[]map[string]any](t, env), 2)
	})

	t.Run("page out of range", func(t *testing.T) {
		resp, _ := api.do(http.MethodGet, "/api/ledger/simple", "", map[string]string{"page": "9"})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("sheet download", func(t *testing.T) {
		resp, _ := api.do(http.MethodGet, "/api/ledger/sheet", "", map[string]string{"year": "2024"})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/csv; charset=utf-8", resp.Headers["Content-Type"])
		assert.Contains(t, resp.Headers["Content-Disposition"], "journal-2024.csv")
		assert.Contains(t, resp.Body, "차변계정")
	})
}

func TestTargetRevenue(t *testing.T) {
	api := newTestAPI(t, nil)

	resp, _ := api.do(http.MethodPut, "/api/target-revenue", `{"target":50000000}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	_, env := api.do(http.MethodGet, "/api/target-revenue", "", nil)
	assert.Equal(t, int64(50000000), decode[TargetRevenue](t, env).Target)

	resp, _ = api.do(http.MethodPut, "/api/target-revenue", `{"target":-1}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAI(t *testing.T) {
	t.Run("no model configured", func(t *testing.T) {
		api := newTestAPI(t, nil)

		resp, env := api.do(http.MethodPost, "/api/ai/analyze", `{"description":"노트북 구입"}`, nil)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "EXTERNAL_SERVICE_ERROR", env.Error)
	})

	t.Run("analysis falls back on model errors", func(t *testing.T) {
		api := newTestAPI(t, &stubAdvisor{err: fmt.Errorf("quota exceeded")})

		resp, env := api.do(http.MethodPost, "/api/ai/analyze", `{"description":"노트북 구입"}`, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		result := decode[AnalyzeResponse](t, env)
		assert.True(t, result.FellBack)
		assert.Nil(t, result.Analysis)
	})

	t.Run("receipt is filed and booked", func(t *testing.T) {
		// Setup
		adv := &stubAdvisor{receipt: &advisor.ReceiptFields{
			Date: "2024-07-01", SupplierName: "오피스마트", Amount: 22000, Tax: 2000, SubCategory: "세금계산서",
		}}
		api := newTestAPI(t, adv, WithEvidence(evidence.NewService(evidence.NewMemoryStorage())))

		// Act
		resp, env := api.send(events.APIGatewayProxyRequest{
			HTTPMethod:            http.MethodPost,
			Path:                  "/api/ai/receipt",
			Headers:               map[string]string{"Content-Type": "image/jpeg"},
			Body:                  base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff}),
			IsBase64Encoded:       true,
			QueryStringParameters: map[string]string{"save": "true"},
		})

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		result := decode[ReceiptResponse](t, env)
		assert.False(t, result.FellBack)
		assert.True(t, strings.HasPrefix(result.EvidenceURI, "mem://books/shop-1/evidence/"))
		require.NotNil(t, result.Transaction)
		assert.Equal(t, result.EvidenceURI, result.Transaction.EvidenceImage)

		_, env = api.do(http.MethodGet, "/api/evidence", "", nil)
		assert.Len(t, decode[[]evidence.Object](t, env), 1)
	})

	t.Run("bank statement deposits", func(t *testing.T) {
		// Setup
		adv := &stubAdvisor{deposits: []advisor.Deposit{{Date: "2024.02.01", Depositor: "김철수", Amount: 500000}}}
		api := newTestAPI(t, adv, WithPDFExtractor(func([]byte) (string, error) { return "2024.02.01 김철수 500,000", nil }))

		// Act
		resp, env := api.send(events.APIGatewayProxyRequest{
			HTTPMethod:            http.MethodPost,
			Path:                  "/api/ai/bank-statement",
			Headers:               map[string]string{"Content-Type": "application/pdf"},
			Body:                  base64.StdEncoding.EncodeToString([]byte("%PDF-1.4")),
			IsBase64Encoded:       true,
			QueryStringParameters: map[string]string{"save": "true"},
		})

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		result := decode[BankStatementResponse](t, env)
		assert.True(t, result.Saved)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "2024-02-01", result.Transactions[0].Date)
	})

	t.Run("categorize applies suggestions", func(t *testing.T) {
		// Setup
		api := newTestAPI(t, &stubAdvisor{})
		resp, _ := api.do(http.MethodPost, "/api/transactions",
			`{"date":"2024-03-02","description":"복사용지","amount":33000,"type":"expense","subCategory":"카드"}`, nil)
		require.Equal(t, http.StatusCreated, resp.StatusCode, resp.Body)

		// Act
		resp, env := api.do(http.MethodPost, "/api/ai/categorize", "", nil)

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		report := decode[map[string]any](t, env)
		assert.Equal(t, false, report["fellBack"])
	})

	t.Run("evidence without storage", func(t *testing.T) {
		api := newTestAPI(t, nil)

		resp, _ := api.do(http.MethodGet, "/api/evidence", "", nil)

		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})
}

func TestProfile(t *testing.T) {
	t.Run("tenant identity without a user pool", func(t *testing.T) {
		api := newTestAPI(t, nil)

		resp, env := api.do(http.MethodGet, "/api/profile", "", nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		profile := decode[tenant.Profile](t, env)
		assert.Equal(t, "shop-1", profile.TenantID)
		assert.Equal(t, "user-1", profile.UserID)
	})

	t.Run("update needs a token", func(t *testing.T) {
		api := newTestAPI(t, nil, WithProfiles(&fakeProfiles{profile: &tenant.Profile{}}))

		resp, _ := api.do(http.MethodPut, "/api/profile", `{"name":"홍길동"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("update", func(t *testing.T) {
		// Setup
		profiles := &fakeProfiles{profile: &tenant.Profile{UserID: "user-1", TenantID: "shop-1"}}
		api := newTestAPI(t, nil, WithProfiles(profiles))

		// Act
		resp, env := api.send(events.APIGatewayProxyRequest{
			HTTPMethod: http.MethodPut,
			Path:       "/api/profile",
			Headers:    map[string]string{"Authorization": "Bearer token-1"},
			Body:       `{"name":"홍길동"}`,
		})

		// Assert
		require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)
		assert.Equal(t, "홍길동", decode[tenant.Profile](t, env).Name)
		assert.Len(t, profiles.updated, 1)
	})
}
