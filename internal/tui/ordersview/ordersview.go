// ABOUTME: Order history view with list and per-order detail
// ABOUTME: Item details are fetched lazily by the app when an order is opened

package ordersview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
	"github.com/inkwell-books/storefront/internal/tui/widgets"
)

// OpenOrderMsg asks the app to fetch items for an order
type OpenOrderMsg struct {
	OrderID int64
}

// BackMsg is sent when the user leaves the view
type BackMsg struct{}

// OrdersView renders the order history
type OrdersView struct {
	orders  []client.Order
	items   []client.OrderItem
	current *client.Order // non-nil when showing detail
	cursor  int
	width   int
}

// New creates an orders view
func New(orders []client.Order, width int) *OrdersView {
	return &OrdersView{orders: orders, width: width}
}

// SetWidth updates the component width
func (v *OrdersView) SetWidth(width int) {
	v.width = width
}

// ShowDetail switches to the detail pane for an opened order
func (v *OrdersView) ShowDetail(order client.Order, items []client.OrderItem) {
	v.current = &order
	v.items = items
}

// Init implements tea.Model
func (v *OrdersView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *OrdersView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.current != nil {
		switch key.String() {
		case "esc", "b", "enter":
			v.current = nil
			v.items = nil
		}
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.orders)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor >= 0 && v.cursor < len(v.orders) {
			id := v.orders[v.cursor].OrderID
			return v, func() tea.Msg { return OpenOrderMsg{OrderID: id} }
		}
	case "esc", "b":
		return v, func() tea.Msg { return BackMsg{} }
	}

	return v, nil
}

// View implements tea.Model
func (v *OrdersView) View() string {
	if v.current != nil {
		return v.viewDetail()
	}
	return v.viewList()
}

func (v *OrdersView) viewList() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Order.String() + " Order History"))
	sb.WriteString("\n\n")

	if len(v.orders) == 0 {
		sb.WriteString(styles.Subtitle.Render("No orders yet."))
		return sb.String()
	}

	for i, o := range v.orders {
		line := fmt.Sprintf("#%-6d %-18s %10s  %s",
			o.OrderID, o.CreatedAt, o.TotalAmount.String(), widgets.OrderStatusBadge(o.OrderStatus))
		if i == v.cursor {
			sb.WriteString(styles.Selected.Render("> ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(v.width).Render(sb.String())
}

func (v *OrdersView) viewDetail() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(fmt.Sprintf("%s Order #%d", icons.Order.String(), v.current.OrderID)))
	sb.WriteString("\n")
	sb.WriteString(widgets.OrderStatusBadge(v.current.OrderStatus))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Placed: %s\n", v.current.CreatedAt))
	sb.WriteString(fmt.Sprintf("Total:  %s\n\n", styles.PriceStyle.Render(v.current.TotalAmount.String())))

	for _, it := range v.items {
		sb.WriteString(fmt.Sprintf("  %-30s x%-3d %10s\n", truncate(it.Book.Title, 30), it.Quantity, it.Price.String()))
	}

	return lipgloss.NewStyle().Width(v.width).Render(sb.String())
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
