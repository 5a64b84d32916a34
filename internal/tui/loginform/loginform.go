// ABOUTME: Login and registration form as a bubbletea model
// ABOUTME: Uses huh for input handling and emits a submit message on completion

package loginform

import (
	"fmt"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// SubmitMsg is sent when the form completes
type SubmitMsg struct {
	Register bool
	Name     string
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// Form collects credentials for login or registration
type Form struct {
	form     *huh.Form
	register bool
	errMsg   string

	name     string
	email    string
	password string
}

// New creates a login form. Press ctrl+r to switch to registration.
func New() *Form {
	f := &Form{}
	f.form = f.createForm()
	return f
}

// SetError shows a server-side failure above the form
func (f *Form) SetError(msg string) {
	f.errMsg = msg
	f.form = f.createForm()
}

func (f *Form) createForm() *huh.Form {
	fields := []huh.Field{}

	if f.register {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("Jane Reader").
			CharLimit(64).
			Value(&f.name).
			Validate(validateRequired("name")))
	}

	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			CharLimit(128).
			Value(&f.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			CharLimit(128).
			Value(&f.password).
			Validate(validateRequired("password")),
	)

	title := "Log in"
	desc := "Press ctrl+r to create an account instead"
	if f.register {
		title = "Create account"
		desc = "Press ctrl+r to log in instead"
	}

	return huh.NewForm(
		huh.NewGroup(fields...).Title(title).Description(desc),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "ctrl+r":
			f.register = !f.register
			f.errMsg = ""
			f.form = f.createForm()
			return f, f.form.Init()
		}
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted {
		register := f.register
		name := strings.TrimSpace(f.name)
		email := strings.TrimSpace(f.email)
		password := f.password
		return f, func() tea.Msg {
			return SubmitMsg{Register: register, Name: name, Email: email, Password: password}
		}
	}

	return f, cmd
}

// View implements tea.Model
func (f *Form) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.User.String() + " Account"))
	sb.WriteString("\n")
	if f.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(f.errMsg))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(f.form.View())

	return sb.String()
}

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateEmail(s string) error {
	if !emailRe.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("enter a valid email address")
	}
	return nil
}
