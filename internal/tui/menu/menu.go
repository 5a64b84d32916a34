// ABOUTME: Main menu as a bubbletea model
// ABOUTME: Entry point for navigating between storefront screens

package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// Destination identifies where a menu selection leads
type Destination int

const (
	DestCatalog Destination = iota
	DestCart
	DestOrders
	DestProfile
	DestAdmin
	DestLogin
	DestLogout
)

// SelectedMsg is sent when a menu entry is chosen
type SelectedMsg struct {
	Dest Destination
}

// QuitMsg is sent when the user quits from the menu
type QuitMsg struct{}

type entry struct {
	icon  icons.Icon
	label string
	dest  Destination
	admin bool // only shown to admins
	auth  bool // only shown when logged in
	anon  bool // only shown when logged out
}

// Menu is the main navigation menu
type Menu struct {
	entries  []entry
	visible  []entry
	cursor   int
	loggedIn bool
	admin    bool
	userName string
}

// New creates the main menu
func New() *Menu {
	m := &Menu{
		entries: []entry{
			{icon: icons.Book, label: "Browse catalog", dest: DestCatalog},
			{icon: icons.Cart, label: "View cart", dest: DestCart},
			{icon: icons.Order, label: "Order history", dest: DestOrders, auth: true},
			{icon: icons.User, label: "Profile", dest: DestProfile, auth: true},
			{icon: icons.Shield, label: "Back office", dest: DestAdmin, admin: true},
			{icon: icons.Login, label: "Log in", dest: DestLogin, anon: true},
			{icon: icons.Logout, label: "Log out", dest: DestLogout, auth: true},
		},
	}
	m.rebuild()
	return m
}

// SetSession updates which entries are visible for the current session.
func (m *Menu) SetSession(loggedIn, admin bool, userName string) {
	m.loggedIn = loggedIn
	m.admin = admin
	m.userName = userName
	m.rebuild()
}

func (m *Menu) rebuild() {
	m.visible = m.visible[:0]
	for _, e := range m.entries {
		if e.admin && !m.admin {
			continue
		}
		if e.auth && !m.loggedIn {
			continue
		}
		if e.anon && m.loggedIn {
			continue
		}
		m.visible = append(m.visible, e)
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.visible) == 0 {
			return m, nil
		}
		dest := m.visible[m.cursor].dest
		return m, func() tea.Msg { return SelectedMsg{Dest: dest} }
	case "q", "esc":
		return m, func() tea.Msg { return QuitMsg{} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.App.String() + " Inkwell Books"))
	sb.WriteString("\n")
	if m.loggedIn && m.userName != "" {
		sb.WriteString(styles.Subtitle.Render("Signed in as " + m.userName))
	} else {
		sb.WriteString(styles.Subtitle.Render("Browsing as guest"))
	}
	sb.WriteString("\n\n")

	for i, e := range m.visible {
		line := fmt.Sprintf("%s %s", e.icon.String(), e.label)
		if i == m.cursor {
			sb.WriteString(styles.Selected.Render("> " + line))
		} else {
			sb.WriteString(styles.Normal.Render("  " + line))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
