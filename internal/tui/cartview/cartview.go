// ABOUTME: Cart view listing current lines with totals
// ABOUTME: Quantity changes are emitted as messages for the app to apply

package cartview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// IncrementMsg asks for one more copy of a book
type IncrementMsg struct {
	BookID int64
}

// DecrementMsg asks for one fewer copy of a book
type DecrementMsg struct {
	BookID int64
}

// RemoveMsg asks for a line to be removed
type RemoveMsg struct {
	BookID int64
}

// CheckoutMsg asks to start the checkout flow
type CheckoutMsg struct{}

// BackMsg is sent when the user leaves the cart
type BackMsg struct{}

// CartView renders the cart contents
type CartView struct {
	lines  []cart.Line
	total  client.Cents
	count  int
	cursor int
	width  int
}

// New creates a cart view
func New(lines []cart.Line, total client.Cents, count, width int) *CartView {
	return &CartView{lines: lines, total: total, count: count, width: width}
}

// SetLines refreshes the view after a cart mutation
func (v *CartView) SetLines(lines []cart.Line, total client.Cents, count int) {
	v.lines = lines
	v.total = total
	v.count = count
	if v.cursor >= len(lines) {
		v.cursor = len(lines) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// SetWidth updates the component width
func (v *CartView) SetWidth(width int) {
	v.width = width
}

// Init implements tea.Model
func (v *CartView) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (v *CartView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.lines)-1 {
			v.cursor++
		}
	case "+", "right", "l":
		if id, ok := v.selectedID(); ok {
			return v, func() tea.Msg { return IncrementMsg{BookID: id} }
		}
	case "-", "left", "h":
		if id, ok := v.selectedID(); ok {
			return v, func() tea.Msg { return DecrementMsg{BookID: id} }
		}
	case "x", "delete":
		if id, ok := v.selectedID(); ok {
			return v, func() tea.Msg { return RemoveMsg{BookID: id} }
		}
	case "enter", "c":
		if len(v.lines) > 0 {
			return v, func() tea.Msg { return CheckoutMsg{} }
		}
	case "esc", "b":
		return v, func() tea.Msg { return BackMsg{} }
	}

	return v, nil
}

func (v *CartView) selectedID() (int64, bool) {
	if v.cursor < 0 || v.cursor >= len(v.lines) {
		return 0, false
	}
	return v.lines[v.cursor].BookID, true
}

// View implements tea.Model
func (v *CartView) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Cart.String() + " Your Cart"))
	sb.WriteString("\n\n")

	if len(v.lines) == 0 {
		sb.WriteString(styles.Subtitle.Render("Your cart is empty."))
		return sb.String()
	}

	for i, l := range v.lines {
		subtotal := l.Price * client.Cents(l.Quantity)
		line := fmt.Sprintf("%-30s %8s  x%-3d %10s",
			truncate(l.Title, 30), l.Price.String(), l.Quantity, subtotal.String())
		if i == v.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	totalLine := fmt.Sprintf("Total: %s (%d items)", styles.PriceStyle.Render(v.total.String()), v.count)
	sb.WriteString(totalLine)

	return lipgloss.NewStyle().Width(v.width).Render(sb.String())
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
