// ABOUTME: Back office view with store totals, order management, and users
// ABOUTME: Status changes are emitted as messages for the app to push to the backend

package adminview

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

// Tab identifies the visible back office pane
type Tab int

const (
	TabOrders Tab = iota
	TabUsers
	TabStats
)

// ChangeStatusMsg asks the app to push a new order status
type ChangeStatusMsg struct {
	OrderID int64
	Status  string
}

// RefreshMsg asks the app to re-fetch the visible tab's data
type RefreshMsg struct{}

// BackMsg is sent when the user leaves the back office
type BackMsg struct{}

// statusCycle is the order fulfilment progression
var statusCycle = []string{"PENDING", "PROCESSING", "SHIPPED", "DELIVERED"}

// nextStatus returns the status after the given one in the fulfilment cycle
func nextStatus(status string) string {
	for i, s := range statusCycle {
		if strings.EqualFold(s, status) && i < len(statusCycle)-1 {
			return statusCycle[i+1]
		}
	}
	return statusCycle[0]
}

// AdminView is the back office component
type AdminView struct {
	tab    Tab
	stats  *client.DashboardStats
	orders []client.Order
	users  []client.UserRecord
	cursor int
	width  int
}

// New creates an empty back office view; data arrives via the setters
func New(width int) *AdminView {
	return &AdminView{width: width}
}

// SetWidth updates the component width
func (v *AdminView) SetWidth(width int) {
	v.width = width
}

// SetStats installs dashboard totals
func (v *AdminView) SetStats(stats *client.DashboardStats) {
	v.stats = stats
}

// SetOrders installs the full order list
func (v *AdminView) SetOrders(orders []client.Order) {
	v.orders = orders
	if v.cursor >= len(orders) {
		v.cursor = len(orders) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// SetUsers installs the user list
func (v *AdminView) SetUsers(users []client.UserRecord) {
	v.users = users
}

// Init implements tea.Model
func (v *AdminView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *AdminView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "tab", "right", "l":
		v.tab = (v.tab + 1) % 3
		v.cursor = 0
	case "left", "h":
		v.tab--
		if v.tab < 0 {
			v.tab = TabStats
		}
		v.cursor = 0
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.tab == TabOrders && v.cursor < len(v.orders)-1 {
			v.cursor++
		}
		if v.tab == TabUsers && v.cursor < len(v.users)-1 {
			v.cursor++
		}
	case "s", "enter":
		if v.tab == TabOrders && v.cursor < len(v.orders) {
			o := v.orders[v.cursor]
			status := nextStatus(o.OrderStatus)
			return v, func() tea.Msg { return ChangeStatusMsg{OrderID: o.OrderID, Status: status} }
		}
	case "r":
		return v, func() tea.Msg { return RefreshMsg{} }
	case "esc", "b":
		return v, func() tea.Msg { return BackMsg{} }
	}

	return v, nil
}

// View implements tea.Model
func (v *AdminView) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Shield.String() + " Back Office"))
	sb.WriteString("\n")
	sb.WriteString(v.renderTabs())
	sb.WriteString("\n\n")

	switch v.tab {
	case TabOrders:
		sb.WriteString(v.viewOrders())
	case TabUsers:
		sb.WriteString(v.viewUsers())
	case TabStats:
		sb.WriteString(v.viewStats())
	}

	return lipgloss.NewStyle().Width(v.width).Render(sb.String())
}

func (v *AdminView) renderTabs() string {
	names := []string{"Orders", "Users", "Stats"}
	var parts []string
	for i, name := range names {
		if Tab(i) == v.tab {
			parts = append(parts, styles.Selected.Render("["+name+"]"))
		} else {
			parts = append(parts, styles.Subtitle.Render(name))
		}
	}
	return strings.Join(parts, "  ")
}

func (v *AdminView) viewOrders() string {
	if len(v.orders) == 0 {
		return styles.Subtitle.Render("No orders.")
	}

	var sb strings.Builder
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
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("s advance status"))
	return sb.String()
}

func (v *AdminView) viewUsers() string {
	if len(v.users) == 0 {
		return styles.Subtitle.Render("No users.")
	}

	var sb strings.Builder
	for i, u := range v.users {
		line := fmt.Sprintf("%-6d %-24s %-32s %s", u.UserID, truncate(u.Name, 24), truncate(u.Email, 32), u.Role)
		if i == v.cursor {
			sb.WriteString(styles.Selected.Render("> ") + line)
		} else {
			sb.WriteString("  " + line)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (v *AdminView) viewStats() string {
	if v.stats == nil {
		return styles.Subtitle.Render("Loading totals...")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s Books:   %s\n", icons.Book.String(), styles.ValueStyle.Render(fmt.Sprintf("%d", v.stats.TotalBooks))))
	sb.WriteString(fmt.Sprintf("%s Orders:  %s\n", icons.Order.String(), styles.ValueStyle.Render(fmt.Sprintf("%d", v.stats.TotalOrders))))
	sb.WriteString(fmt.Sprintf("%s Users:   %s\n", icons.User.String(), styles.ValueStyle.Render(fmt.Sprintf("%d", v.stats.TotalUsers))))
	sb.WriteString(fmt.Sprintf("%s Revenue: %s\n", icons.Cart.String(), styles.PriceStyle.Render(v.stats.Revenue.String())))
	return sb.String()
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
