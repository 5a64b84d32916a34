// ABOUTME: Multi-step checkout wizard as a bubbletea model
// ABOUTME: Uses huh forms with visual progress indicator for step navigation

package checkoutform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/checkout"
	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/tui/icons"
	"github.com/inkwell-books/storefront/internal/tui/styles"
)

// CompleteMsg is sent when the wizard finishes successfully
type CompleteMsg struct {
	Form *checkout.Form
}

// CancelledMsg is sent when the wizard is cancelled
type CancelledMsg struct{}

// Wizard step numbers
const (
	stepShipping = 1
	stepPayment  = 2
	stepCard     = 3
	stepReview   = 4
)

// Step names for progress indicator
var stepNames = []string{"Shipping", "Payment", "Card", "Review"}

var paymentOptions = []huh.Option[string]{
	huh.NewOption("Cash on delivery", checkout.PaymentCashOnDelivery),
	huh.NewOption("Credit card", checkout.PaymentCard),
}

// Wizard manages the checkout flow as a bubbletea model
type Wizard struct {
	input   *checkout.Form
	lines   []cart.Line
	total   client.Cents
	form    *huh.Form
	step    int
	width   int
	confirm bool
}

// New creates a checkout wizard for the given cart contents.
// Known profile details prefill the shipping step.
func New(lines []cart.Line, total client.Cents, name, email string) *Wizard {
	input := &checkout.Form{
		Email:         email,
		PaymentMethod: checkout.PaymentCashOnDelivery,
	}
	if parts := strings.Fields(name); len(parts) > 0 {
		input.FirstName = parts[0]
		if len(parts) > 1 {
			input.LastName = strings.Join(parts[1:], " ")
		}
	}

	w := &Wizard{
		input: input,
		lines: lines,
		total: total,
		step:  stepShipping,
	}
	w.form = w.createShippingForm()
	return w
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func (w *Wizard) createShippingForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First name").
				CharLimit(64).
				Value(&w.input.FirstName).
				Validate(required("first name")),
			huh.NewInput().
				Title("Last name").
				CharLimit(64).
				Value(&w.input.LastName).
				Validate(required("last name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				CharLimit(128).
				Value(&w.input.Email).
				Validate(checkout.ValidateEmail),
			huh.NewInput().
				Title("Phone").
				Placeholder("+15551234567").
				CharLimit(20).
				Value(&w.input.Phone).
				Validate(checkout.ValidatePhone),
		).Title("Step 1: Shipping").
			Description("Who is this order for?"),
		huh.NewGroup(
			huh.NewInput().
				Title("Street address").
				CharLimit(128).
				Value(&w.input.Address).
				Validate(required("address")),
			huh.NewInput().
				Title("City").
				CharLimit(64).
				Value(&w.input.City).
				Validate(required("city")),
			huh.NewInput().
				Title("Zip code").
				CharLimit(16).
				Value(&w.input.ZipCode).
				Validate(required("zip code")),
			huh.NewInput().
				Title("Country").
				CharLimit(64).
				Value(&w.input.Country).
				Validate(required("country")),
		).Title("Step 1: Shipping").
			Description("Where should we deliver?"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createPaymentForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Payment method").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(paymentOptions...).
				Value(&w.input.PaymentMethod),
		).Title("Step 2: Payment").
			Description("How would you like to pay?"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createCardForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Card number").
				Placeholder("4242424242424242").
				CharLimit(19).
				Value(&w.input.CardNumber).
				Validate(checkout.ValidateCardNumber),
			huh.NewInput().
				Title("Expiry (MM/YY)").
				Placeholder("12/27").
				CharLimit(5).
				Value(&w.input.ExpiryDate).
				Validate(checkout.ValidateExpiry),
			huh.NewInput().
				Title("CVV").
				EchoMode(huh.EchoModePassword).
				CharLimit(3).
				Value(&w.input.CVV).
				Validate(checkout.ValidateCVV),
		).Title("Step 3: Card Details").
			Description("Card details are format-checked only; charging happens server side"),
	).WithTheme(styles.FormTheme())
}

func (w *Wizard) createReviewForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Place this order?").
				Affirmative("Place order").
				Negative("Cancel").
				Value(&w.confirm),
		).Title("Step 4: Review"),
	).WithTheme(styles.FormTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case stepShipping:
		w.step = stepPayment
		w.form = w.createPaymentForm()
		return w, w.form.Init()

	case stepPayment:
		if w.input.PaymentMethod == checkout.PaymentCard {
			w.step = stepCard
			w.form = w.createCardForm()
		} else {
			// Cash on delivery needs no card details
			w.step = stepReview
			w.form = w.createReviewForm()
		}
		return w, w.form.Init()

	case stepCard:
		w.step = stepReview
		w.form = w.createReviewForm()
		return w, w.form.Init()

	case stepReview:
		if !w.confirm {
			return w, func() tea.Msg { return CancelledMsg{} }
		}
		input := w.input
		return w, func() tea.Msg { return CompleteMsg{Form: input} }
	}

	return w, nil
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")

	if w.step == stepReview {
		sb.WriteString(w.renderSummary())
		sb.WriteString("\n")
	}

	sb.WriteString(w.form.View())

	return sb.String()
}

// renderSummary shows the order about to be placed
func (w *Wizard) renderSummary() string {
	var sb strings.Builder

	sb.WriteString(styles.Subtitle.Render("Order summary"))
	sb.WriteString("\n")
	for _, l := range w.lines {
		subtotal := l.Price * client.Cents(l.Quantity)
		sb.WriteString(fmt.Sprintf("  %-30s x%-3d %10s\n", truncate(l.Title, 30), l.Quantity, subtotal.String()))
	}
	sb.WriteString(fmt.Sprintf("  Total: %s\n", styles.PriceStyle.Render(w.total.String())))
	sb.WriteString(fmt.Sprintf("  Deliver to: %s %s, %s, %s %s\n",
		w.input.FirstName, w.input.LastName, w.input.Address, w.input.City, w.input.ZipCode))
	method := "cash on delivery"
	if w.input.PaymentMethod == checkout.PaymentCard {
		method = "card ending " + lastDigits(w.input.CardNumber, 4)
	}
	sb.WriteString(fmt.Sprintf("  Payment: %s\n", method))

	return sb.String()
}

// renderProgress renders the step progress indicator
func (w *Wizard) renderProgress() string {
	width := w.width - 1
	if width < 60 {
		width = 60
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary)

	// Build step indicators
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		skipped := stepNum == stepCard && w.input.PaymentMethod != checkout.PaymentCard && w.step > stepCard

		if stepNum < w.step {
			// Completed or skipped step
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
			if skipped {
				indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("–")
			}
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		} else if stepNum == w.step {
			// Current step
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		} else {
			// Future step
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	stepsLine := strings.Join(steps, "    ")

	// Progress bar line format: "│  " + bar + " │" = 5 chars overhead
	barWidth := width - 5
	totalSteps := len(stepNames)
	filledWidth := (w.step * barWidth) / totalSteps
	emptyWidth := barWidth - filledWidth

	filledBar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filledWidth))
	emptyBar := lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", emptyWidth))
	progressBar := filledBar + emptyBar

	// Build panel with consistent width
	styledTitle := titleStyle.Render("Checkout")
	titleWidth := lipgloss.Width("Checkout")

	topFillWidth := max(0, width-5-titleWidth)
	topBorder := "┌─ " + styledTitle + " " + strings.Repeat("─", topFillWidth) + "┐"

	stepsLineWidth := lipgloss.Width(stepsLine)
	stepsPadding := max(0, width-4-stepsLineWidth)
	stepsLinePadded := "│ " + stepsLine + strings.Repeat(" ", stepsPadding) + " │"

	progressLinePadded := "│  " + progressBar + " │"

	bottomFillWidth := width - 2
	bottomBorder := "└" + strings.Repeat("─", bottomFillWidth) + "┘"

	return borderStyle.Render(strings.Join([]string{
		topBorder,
		stepsLinePadded,
		progressLinePadded,
		bottomBorder,
	}, "\n"))
}

// Input returns the collected checkout form
func (w *Wizard) Input() *checkout.Form {
	return w.input
}

func lastDigits(card string, n int) string {
	card = strings.ReplaceAll(card, " ", "")
	if len(card) <= n {
		return card
	}
	return card[len(card)-n:]
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
