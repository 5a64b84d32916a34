// ABOUTME: Catalog component displaying the book list with a detail pane
// ABOUTME: Supports category filtering and adding the selected book to the cart

package catalog

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

// AddToCartMsg is sent when the user adds the selected book to the cart
type AddToCartMsg struct {
	Book client.Book
}

// BackMsg is sent when the user leaves the catalog
type BackMsg struct{}

// fullStock is the inventory count treated as a full stock meter
const fullStock = 20

// Catalog is the book browsing component
type Catalog struct {
	books      []client.Book
	categories []string
	filtered   []client.Book
	category   int // index into categories, 0 means all
	cursor     int
	width      int
	height     int
}

// New creates a catalog from the loaded book list
func New(books []client.Book, categories []string, width, height int) *Catalog {
	c := &Catalog{
		books:      books,
		categories: append([]string{"All"}, categories...),
		width:      width,
		height:     height,
	}
	c.applyFilter()
	return c
}

// SetBooks replaces the book list, keeping the current filter
func (c *Catalog) SetBooks(books []client.Book) {
	c.books = books
	c.applyFilter()
}

// SetSize updates the component dimensions
func (c *Catalog) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// Selected returns the book under the cursor, or nil when the list is empty
func (c *Catalog) Selected() *client.Book {
	if c.cursor < 0 || c.cursor >= len(c.filtered) {
		return nil
	}
	return &c.filtered[c.cursor]
}

func (c *Catalog) applyFilter() {
	if c.category == 0 {
		c.filtered = c.books
	} else {
		name := c.categories[c.category]
		c.filtered = nil
		for _, b := range c.books {
			if b.Category == name {
				c.filtered = append(c.filtered, b)
			}
		}
	}
	if c.cursor >= len(c.filtered) {
		c.cursor = len(c.filtered) - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

// Init implements tea.Model
func (c *Catalog) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (c *Catalog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.filtered)-1 {
			c.cursor++
		}
	case "left", "h":
		c.category--
		if c.category < 0 {
			c.category = len(c.categories) - 1
		}
		c.cursor = 0
		c.applyFilter()
	case "right", "l", "tab":
		c.category = (c.category + 1) % len(c.categories)
		c.cursor = 0
		c.applyFilter()
	case "enter", "a", "+":
		if b := c.Selected(); b != nil && b.Stock > 0 {
			book := *b
			return c, func() tea.Msg { return AddToCartMsg{Book: book} }
		}
	case "esc", "b":
		return c, func() tea.Msg { return BackMsg{} }
	}

	return c, nil
}

// View implements tea.Model
func (c *Catalog) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Book.String() + " Catalog"))
	sb.WriteString("\n")
	sb.WriteString(c.renderCategories())
	sb.WriteString("\n\n")

	if len(c.filtered) == 0 {
		sb.WriteString(styles.Subtitle.Render("No books in this category."))
		return sb.String()
	}

	listWidth := c.width * 3 / 5
	list := c.renderList(listWidth)
	detail := c.renderDetail(c.width - listWidth - 4)

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list, detail))
	return sb.String()
}

func (c *Catalog) renderCategories() string {
	var parts []string
	for i, name := range c.categories {
		if i == c.category {
			parts = append(parts, styles.Selected.Render("["+name+"]"))
		} else {
			parts = append(parts, styles.Subtitle.Render(name))
		}
	}
	return icons.Category.String() + " " + strings.Join(parts, "  ")
}

func (c *Catalog) renderList(width int) string {
	// Window the list around the cursor when it exceeds the pane height
	visible := c.height - 6
	if visible < 5 {
		visible = 5
	}
	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	end := start + visible
	if end > len(c.filtered) {
		end = len(c.filtered)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		b := c.filtered[i]
		line := fmt.Sprintf("%-28s %8s", truncate(b.Title, 28), b.Price.String())
		if b.Stock <= 0 {
			line += " " + widgets.Badge("OUT", widgets.StatusCritical)
		}
		if i == c.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width).Render(sb.String())
}

func (c *Catalog) renderDetail(width int) string {
	b := c.Selected()
	if b == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(styles.ValueStyle.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render("by " + b.Author))
	sb.WriteString("\n\n")
	sb.WriteString(styles.PriceStyle.Render(b.Price.String()))
	sb.WriteString("\n\n")
	if b.Description != "" {
		sb.WriteString(styles.Normal.Render(b.Description))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Stock ")
	sb.WriteString(styles.StockMeter(b.Stock, fullStock, 12))
	sb.WriteString(fmt.Sprintf(" %d\n", b.Stock))

	return styles.Panel.Width(width).Render(sb.String())
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
