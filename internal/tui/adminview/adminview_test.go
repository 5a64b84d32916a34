// ABOUTME: Tests for the back office component
// ABOUTME: Validates the status cycle, tab navigation, and emitted messages

package adminview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-books/storefront/internal/client"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNextStatus(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"PENDING", "PROCESSING"},
		{"pending", "PROCESSING"},
		{"PROCESSING", "SHIPPED"},
		{"SHIPPED", "DELIVERED"},
		{"DELIVERED", "PENDING"},
		{"CANCELLED", "PENDING"},
		{"", "PENDING"},
	}
	for _, tc := range tests {
		if got := nextStatus(tc.in); got != tc.want {
			t.Errorf("nextStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAdvanceStatusEmitsMessage(t *testing.T) {
	v := New(100)
	v.SetOrders([]client.Order{
		{OrderID: 11, OrderStatus: "PENDING", TotalAmount: 1299},
		{OrderID: 12, OrderStatus: "SHIPPED", TotalAmount: 950},
	})

	v.Update(key("j"))
	_, cmd := v.Update(key("s"))
	if cmd == nil {
		t.Fatal("expected status change command")
	}
	msg, ok := cmd().(ChangeStatusMsg)
	if !ok {
		t.Fatalf("expected ChangeStatusMsg, got %T", cmd())
	}
	if msg.OrderID != 12 || msg.Status != "DELIVERED" {
		t.Errorf("unexpected message %+v", msg)
	}
}

func TestTabNavigationResetsCursor(t *testing.T) {
	v := New(100)
	v.SetOrders([]client.Order{{OrderID: 1}, {OrderID: 2}})
	v.Update(key("j"))

	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if v.tab != TabUsers || v.cursor != 0 {
		t.Errorf("expected users tab with cursor 0, got tab=%v cursor=%d", v.tab, v.cursor)
	}

	v.Update(key("h"))
	if v.tab != TabOrders {
		t.Errorf("expected orders tab, got %v", v.tab)
	}

	v.Update(key("h"))
	if v.tab != TabStats {
		t.Errorf("expected wrap to stats tab, got %v", v.tab)
	}
}

func TestRefreshAndBack(t *testing.T) {
	v := New(100)

	_, cmd := v.Update(key("r"))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if _, ok := cmd().(RefreshMsg); !ok {
		t.Errorf("expected RefreshMsg, got %T", cmd())
	}

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected back command")
	}
	if _, ok := cmd().(BackMsg); !ok {
		t.Errorf("expected BackMsg, got %T", cmd())
	}
}

func TestStatsView(t *testing.T) {
	v := New(100)
	if !strings.Contains(stripToStats(v), "Loading totals") {
		t.Error("expected loading placeholder before stats arrive")
	}

	v.SetStats(&client.DashboardStats{TotalBooks: 12, TotalOrders: 34, TotalUsers: 5, Revenue: 123450})
	out := stripToStats(v)
	if !strings.Contains(out, "12") || !strings.Contains(out, "1234.50") {
		t.Errorf("stats missing from view: %q", out)
	}
}

func stripToStats(v *AdminView) string {
	v.tab = TabStats
	return v.View()
}

func TestEmptyOrdersSelectIsNoOp(t *testing.T) {
	v := New(100)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("selecting in an empty order list must be a no-op")
	}
}
