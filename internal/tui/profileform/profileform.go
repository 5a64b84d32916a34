// ABOUTME: Profile editing form as a bubbletea model
// ABOUTME: Lets a logged-in user change their display name and email

package profileform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/inkwell-books/storefront/internal/checkout"
	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// SaveMsg is sent when the user confirms their changes
type SaveMsg struct {
	Name  string
	Email string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// Form edits the current user's profile
type Form struct {
	form  *huh.Form
	name  string
	email string
}

// New creates a profile form prefilled with the current values
func New(name, email string) *Form {
	f := &Form{name: name, email: email}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				CharLimit(64).
				Value(&f.name),
			huh.NewInput().
				Title("Email").
				CharLimit(128).
				Value(&f.email).
				Validate(checkout.ValidateEmail),
		).Title("Your profile").
			Description("Press Enter to save, Esc to cancel"),
	).WithTheme(styles.FormTheme())
	return f
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return f, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		name := strings.TrimSpace(f.name)
		email := strings.TrimSpace(f.email)
		return f, func() tea.Msg { return SaveMsg{Name: name, Email: email} }
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	return styles.Title.Render(icons.User.String()+" Profile") + "\n\n" + f.form.View()
}
