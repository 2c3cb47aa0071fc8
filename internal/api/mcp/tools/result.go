package tools

import (
	"encoding/json"
	"fmt"

	"github.com/yysangh2-design/APP-QTEX/internal/api/response"
	"github.com/yysangh2-design/APP-QTEX/internal/domain/mcp"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.ToolResultContent{
			{
				Type: "text",
				Text: text,
			},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

// jsonResult renders v under a one-line summary
func jsonResult(summary string, v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format result: %w", err)
	}
	return textResult(summary + "\n" + string(data)), nil
}

// parseArgs decodes tool arguments. An empty payload decodes as {}.
func parseArgs(arguments json.RawMessage, v any) *mcp.CallToolResult {
	if len(arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(arguments, v); err != nil {
		return errorResult("Error parsing arguments: %v", err)
	}
	return nil
}

// failure reports caller mistakes as tool errors and passes server faults up
// so the JSON-RPC layer logs them.
func failure(action string, err error) (*mcp.CallToolResult, error) {
	appErr := response.AsAppError(err)
	if appErr.StatusCode >= 500 {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	if len(appErr.Details) > 0 {
		details, _ := json.Marshal(appErr.Details)
		return errorResult("Error %s: %s %s", action, appErr.Message, details), nil
	}
	return errorResult("Error %s: %s", action, appErr.Message), nil
}

func intProperty(description string, minimum, maximum int) map[string]interface{} {
	p := map[string]interface{}{
		"type":        "integer",
		"description": description,
		"minimum":     minimum,
	}
	if maximum > 0 {
		p["maximum"] = maximum
	}
	return p
}

func periodProperties() map[string]interface{} {
	return map[string]interface{}{
		"year":    intProperty("Calendar year, omit for all years", 2000, 0),
		"quarter": intProperty("VAT quarter 1-4", 1, 4),
		"month":   intProperty("Month 1-12", 1, 12),
	}
}
