package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer(t *testing.T) {
	var got events.APIGatewayProxyRequest
	echo := func(_ context.Context, _ *slog.Logger, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		got = req
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusCreated,
			Headers:    map[string]string{"Content-Type": "application/json", "X-Test": "yes"},
			Body:       `{"ok":true}`,
		}, nil
	}
	app := New(echo, quietLogger())

	t.Run("translates JSON requests", func(t *testing.T) {
		// Setup
		req := httptest.NewRequest(http.MethodPost, "/api/transactions?year=2024", strings.NewReader(`{"a":1}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Tenant-Id", "local")

		// Act
		resp, err := app.Test(req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "yes", resp.Header.Get("X-Test"))
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"ok":true}`, string(body))

		assert.Equal(t, http.MethodPost, got.HTTPMethod)
		assert.Equal(t, "/api/transactions", got.Path)
		assert.Equal(t, "2024", got.QueryStringParameters["year"])
		assert.Equal(t, "local", got.Headers["X-Tenant-Id"])
		assert.Equal(t, `{"a":1}`, got.Body)
		assert.False(t, got.IsBase64Encoded)
		assert.NotEmpty(t, got.RequestContext.RequestID)
	})

	t.Run("encodes binary bodies", func(t *testing.T) {
		// Setup
		image := []byte{0xff, 0xd8, 0xff, 0x00}
		req := httptest.NewRequest(http.MethodPost, "/api/ai/receipt", strings.NewReader(string(image)))
		req.Header.Set("Content-Type", "image/jpeg")

		// Act
		_, err := app.Test(req)

		// Assert
		require.NoError(t, err)
		assert.True(t, got.IsBase64Encoded)
		decoded, err := base64.StdEncoding.DecodeString(got.Body)
		require.NoError(t, err)
		assert.Equal(t, image, decoded)
	})

	t.Run("health", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))

		require.NoError(t, err)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "ok", body["status"])
	})
}

func TestMount(t *testing.T) {
	// Setup
	var path string
	handler := func(_ context.Context, _ *slog.Logger, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		path = req.Path
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: "{}"}, nil
	}
	app := New(handler, quietLogger())
	Mount(app, "/mcp", handler, quietLogger())

	// Act
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/mcp", path)
}
