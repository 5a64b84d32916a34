// ABOUTME: Tests for status badge widgets
// ABOUTME: Validates order status and stock level mappings

package widgets

import (
	"strings"
	"testing"
)

func TestOrderStatusLevel(t *testing.T) {
	tests := []struct {
		status string
		want   StatusLevel
	}{
		{"DELIVERED", StatusOK},
		{"COMPLETED", StatusOK},
		{"delivered", StatusOK},
		{"SHIPPED", StatusInfo},
		{"PROCESSING", StatusInfo},
		{"PENDING", StatusWarning},
		{"CANCELLED", StatusCritical},
		{"SOMETHING_ELSE", StatusNeutral},
		{"", StatusNeutral},
	}

	for _, tc := range tests {
		t.Run(tc.status, func(t *testing.T) {
			if got := OrderStatusLevel(tc.status); got != tc.want {
				t.Errorf("OrderStatusLevel(%q) = %v, want %v", tc.status, got, tc.want)
			}
		})
	}
}

func TestOrderStatusBadgeUppercases(t *testing.T) {
	if got := OrderStatusBadge("pending"); !strings.Contains(got, "PENDING") {
		t.Errorf("expected uppercased status, got %q", got)
	}
	if got := OrderStatusBadge(""); !strings.Contains(got, "--") {
		t.Errorf("expected placeholder for empty status, got %q", got)
	}
}

func TestStockLevel(t *testing.T) {
	if StockLevel(0) != StatusCritical || StockLevel(-1) != StatusCritical {
		t.Error("expected critical for no stock")
	}
	if StockLevel(1) != StatusWarning || StockLevel(5) != StatusWarning {
		t.Error("expected warning for low stock")
	}
	if StockLevel(6) != StatusOK {
		t.Error("expected ok above threshold")
	}
}

func TestStockBadgeText(t *testing.T) {
	if got := StockBadge(0); !strings.Contains(got, "OUT") {
		t.Errorf("expected OUT, got %q", got)
	}
	if got := StockBadge(3); !strings.Contains(got, "LOW 3") {
		t.Errorf("expected LOW 3, got %q", got)
	}
	if got := StockBadge(12); !strings.Contains(got, "12") {
		t.Errorf("expected count, got %q", got)
	}
}
