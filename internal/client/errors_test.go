// ABOUTME: Tests for server error message extraction
// ABOUTME: Exercises every error body shape the backend produces

package client

import "testing"

func TestExtractErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"book not found"}`, "book not found"},
		{"error field", `{"error":"unauthorized"}`, "unauthorized"},
		{"message preferred over error", `{"message":"specific","error":"generic"}`, "specific"},
		{"object without known field", `{"detail":"odd shape"}`, `{"detail":"odd shape"}`},
		{"validation array", `[{"msg":"email is required"},{"msg":"phone is invalid"}]`, "email is required"},
		{"string array", `["first","second"]`, "first, second"},
		{"bare json string", `"plain message"`, "plain message"},
		{"plain text", `something broke`, "something broke"},
		{"empty body", ``, ""},
		{"whitespace body", `   `, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractErrorMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("extractErrorMessage(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
