package response

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success    bool             `json:"success"`
	Data       interface{}      `json:"data"`
	Metadata   ResponseMetadata `json:"metadata"`
	Pagination *Pagination      `json:"pagination,omitempty"`
}

// ResponseMetadata represents the metadata for responses
type ResponseMetadata struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"requestId,omitempty"`
}

// Pagination describes one page of a ledger view
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	TotalPages int `json:"totalPages"`
}

func newMetadata(requestID string) ResponseMetadata {
	return ResponseMetadata{
		Version:   "1.0",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID,
	}
}

// DefaultHeaders returns the default headers for all responses
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,X-Amz-Date,Authorization,X-Api-Key,X-Tenant-Id",
		"Access-Control-Allow-Methods": "OPTIONS,GET,POST,PUT,DELETE",
	}
}

// RawSuccess writes data as the whole body without the success envelope
func RawSuccess(data interface{}, statusCode int) events.APIGatewayProxyResponse {
	body, err := json.Marshal(data)
	if err != nil {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"success":false,"error":"INTERNAL_ERROR","error_description":{"message":"Failed to marshal response"}}`,
			Headers:    DefaultHeaders(),
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    DefaultHeaders(),
	}
}

// Success creates a success response
func Success(data interface{}, statusCode int, requestID string) events.APIGatewayProxyResponse {
	return RawSuccess(SuccessResponse{
		Success:  true,
		Data:     data,
		Metadata: newMetadata(requestID),
	}, statusCode)
}

// SuccessWithPagination creates a success response with pagination information
func SuccessWithPagination(data interface{}, pagination *Pagination, requestID string) events.APIGatewayProxyResponse {
	return RawSuccess(SuccessResponse{
		Success:    true,
		Data:       data,
		Metadata:   newMetadata(requestID),
		Pagination: pagination,
	}, http.StatusOK)
}

// OK creates a standard OK (200) response
func OK(data interface{}, requestID string) events.APIGatewayProxyResponse {
	return Success(data, http.StatusOK, requestID)
}

// Created creates a standard Created (201) response
func Created(data interface{}, requestID string) events.APIGatewayProxyResponse {
	return Success(data, http.StatusCreated, requestID)
}

// NoContent creates a standard No Content (204) response
func NoContent() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusNoContent,
		Headers:    DefaultHeaders(),
	}
}

// CSV creates a spreadsheet download. A UTF-8 byte order mark is written
// first so spreadsheet programs detect Hangul correctly.
func CSV(rows [][]string, filename string) events.APIGatewayProxyResponse {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return FromError(err, "")
	}

	headers := DefaultHeaders()
	headers["Content-Type"] = "text/csv; charset=utf-8"
	headers["Content-Disposition"] = fmt.Sprintf(`attachment; filename="%s"`, filename)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Body:       buf.String(),
		Headers:    headers,
	}
}
