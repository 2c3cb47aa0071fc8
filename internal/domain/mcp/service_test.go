package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTool struct {
	name   string
	result *CallToolResult
	err    error
}

func (m *mockTool) GetName() string            { return m.name }
func (m *mockTool) GetDescription() string     { return "tool " + m.name }
func (m *mockTool) GetInputSchema() JSONSchema { return JSONSchema{Type: "object"} }
func (m *mockTool) Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error) {
	return m.result, m.err
}

type mockResource struct {
	uri    string
	result *ReadResourceResult
	err    error
}

func (m *mockResource) GetURI() string         { return m.uri }
func (m *mockResource) GetName() string        { return m.uri }
func (m *mockResource) GetDescription() string { return "" }
func (m *mockResource) GetMimeType() string    { return "application/json" }
func (m *mockResource) Read(ctx context.Context) (*ReadResourceResult, error) {
	return m.result, m.err
}

type mockPrompt struct {
	name string
}

func (m *mockPrompt) GetName() string        { return m.name }
func (m *mockPrompt) GetDescription() string { return "" }
func (m *mockPrompt) GetArguments() []PromptArgument {
	return []PromptArgument{{Name: "year", Required: true}}
}
func (m *mockPrompt) Get(ctx context.Context, arguments map[string]string) (*GetPromptResult, error) {
	return &GetPromptResult{
		Messages: []PromptMessage{{Role: "user", Content: PromptContent{Type: "text", Text: "review " + arguments["year"]}}},
	}, nil
}

func newTestService(registry *HandlerRegistry) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), registry)
}

func call(t *testing.T, s *Service, method string, params any, out any) HTTPResponse {
	t.Helper()
	req := JSONRPCRequest{JSONRPC: "2.0", ID: json.RawMessage(`1`), Method: method}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		req.Params = raw
	}
	resp := s.HandleRequest(context.Background(), req)
	if out != nil && resp.JSONRPCResponse.Error == nil {
		raw, err := json.Marshal(resp.JSONRPCResponse.Result)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return resp
}

func TestService_Initialize(t *testing.T) {
	// Setup
	s := newTestService(NewHandlerRegistry())
	var result InitializeResult

	// Act
	resp := call(t, s, "initialize", InitializeParams{
		ProtocolVersion: "2024-11-05",
		ClientInfo:      ClientInfo{Name: "test-client", Version: "1.0.0"},
	}, &result)

	// Assert
	require.Nil(t, resp.JSONRPCResponse.Error)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, ServerName, result.ServerInfo.Name)
	assert.True(t, result.Capabilities.Prompts.ListChanged)
	assert.NotEmpty(t, result.Instructions)
}

func TestService_Notifications(t *testing.T) {
	s := newTestService(NewHandlerRegistry())

	resp := call(t, s, "notifications/initialized", nil, nil)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestService_List(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{name: "calculate_vat"})
	registry.RegisterTool(&mockTool{name: "add_transaction"})
	registry.RegisterResource(&mockResource{uri: "qtex://transactions"})
	registry.RegisterResource(&mockResource{uri: "qtex://labor-entries"})
	registry.RegisterPrompt(&mockPrompt{name: "tax_review"})
	s := newTestService(registry)

	t.Run("tools are ordered by name", func(t *testing.T) {
		var result ListToolsResult

		call(t, s, "tools/list", nil, &result)

		require.Len(t, result.Tools, 2)
		assert.Equal(t, "add_transaction", result.Tools[0].Name)
		assert.Equal(t, "calculate_vat", result.Tools[1].Name)
	})

	t.Run("resources are ordered by uri", func(t *testing.T) {
		var result ListResourcesResult

		call(t, s, "resources/list", nil, &result)

		require.Len(t, result.Resources, 2)
		assert.Equal(t, "qtex://labor-entries", result.Resources[0].URI)
	})

	t.Run("prompts", func(t *testing.T) {
		var result ListPromptsResult

		call(t, s, "prompts/list", nil, &result)

		require.Len(t, result.Prompts, 1)
		assert.True(t, result.Prompts[0].Arguments[0].Required)
	})
}

func TestService_CallTool(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{
		name:   "ok",
		result: &CallToolResult{Content: []ToolResultContent{{Type: "text", Text: "done"}}},
	})
	registry.RegisterTool(&mockTool{name: "broken", err: errors.New("store unavailable")})
	s := newTestService(registry)

	t.Run("success", func(t *testing.T) {
		var result CallToolResult

		resp := call(t, s, "tools/call", CallToolParams{Name: "ok"}, &result)

		require.Nil(t, resp.JSONRPCResponse.Error)
		assert.Equal(t, "done", result.Content[0].Text)
		assert.False(t, result.IsError)
	})

	t.Run("execution error becomes an error result", func(t *testing.T) {
		var result CallToolResult

		resp := call(t, s, "tools/call", CallToolParams{Name: "broken"}, &result)

		require.Nil(t, resp.JSONRPCResponse.Error)
		assert.True(t, result.IsError)
		assert.Equal(t, "store unavailable", result.Content[0].Text)
	})

	t.Run("unknown tool", func(t *testing.T) {
		resp := call(t, s, "tools/call", CallToolParams{Name: "missing"}, nil)

		require.NotNil(t, resp.JSONRPCResponse.Error)
		assert.Equal(t, InvalidParams, resp.JSONRPCResponse.Error.Code)
	})
}

func TestService_ReadResource(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterResource(&mockResource{
		uri:    "qtex://transactions",
		result: &ReadResourceResult{Contents: []ResourceContent{{URI: "qtex://transactions", Text: "[]"}}},
	})
	registry.RegisterResource(&mockResource{uri: "qtex://broken", err: errors.New("boom")})
	s := newTestService(registry)

	t.Run("success", func(t *testing.T) {
		var result ReadResourceResult

		call(t, s, "resources/read", ReadResourceParams{URI: "qtex://transactions"}, &result)

		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("read failure", func(t *testing.T) {
		resp := call(t, s, "resources/read", ReadResourceParams{URI: "qtex://broken"}, nil)

		require.NotNil(t, resp.JSONRPCResponse.Error)
		assert.Equal(t, InternalError, resp.JSONRPCResponse.Error.Code)
	})
}

func TestService_GetPrompt(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterPrompt(&mockPrompt{name: "tax_review"})
	s := newTestService(registry)

	t.Run("renders with arguments", func(t *testing.T) {
		var result GetPromptResult

		call(t, s, "prompts/get", GetPromptParams{Name: "tax_review", Arguments: map[string]string{"year": "2026"}}, &result)

		require.Len(t, result.Messages, 1)
		assert.Equal(t, "review 2026", result.Messages[0].Content.Text)
	})

	t.Run("missing required argument", func(t *testing.T) {
		resp := call(t, s, "prompts/get", GetPromptParams{Name: "tax_review"}, nil)

		require.NotNil(t, resp.JSONRPCResponse.Error)
		assert.Equal(t, InvalidParams, resp.JSONRPCResponse.Error.Code)
	})
}

func TestService_UnknownMethod(t *testing.T) {
	s := newTestService(NewHandlerRegistry())

	resp := call(t, s, "sampling/createMessage", nil, nil)

	require.NotNil(t, resp.JSONRPCResponse.Error)
	assert.Equal(t, MethodNotFound, resp.JSONRPCResponse.Error.Code)
}
