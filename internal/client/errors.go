// ABOUTME: API error type and server error message extraction
// ABOUTME: Pulls the most specific message out of assorted backend error bodies

package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend error: %s (status %d)", e.Message, e.StatusCode)
}

// handleErrorResponse parses API error responses. The backend is not
// consistent about error shapes: some endpoints return a plain string body,
// others {"message": ...} or {"error": ...}, and validation failures come
// back as arrays.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	msg := extractErrorMessage(body)
	if msg == "" {
		msg = fmt.Sprintf("backend returned status %d", resp.StatusCode)
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// extractErrorMessage walks the known error body shapes in order of
// specificity and returns the first message found.
func extractErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	// {"message": ...} or {"error": ...}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err == nil {
		for _, key := range []string{"message", "error"} {
			var s string
			if raw, ok := obj[key]; ok && json.Unmarshal(raw, &s) == nil && s != "" {
				return s
			}
		}
		// No recognized field; surface the raw body rather than nothing.
		return trimmed
	}

	// Validation arrays: [{"msg": ...}, ...] or ["...", ...]
	var msgs []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body, &msgs); err == nil && len(msgs) > 0 && msgs[0].Msg != "" {
		return msgs[0].Msg
	}
	var list []string
	if err := json.Unmarshal(body, &list); err == nil && len(list) > 0 {
		return strings.Join(list, ", ")
	}

	// A bare JSON string or a plain text body.
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return trimmed
}
