// ABOUTME: Tests for the checkout wizard
// ABOUTME: Validates step progression, the card step skip, and prefilled fields

package checkoutform

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/checkout"
)

func sampleLines() []cart.Line {
	return []cart.Line{{BookID: 5, Title: "Dune", Price: 1299, Quantity: 2}}
}

func TestPrefillFromProfile(t *testing.T) {
	w := New(sampleLines(), 2598, "Ada Augusta Lovelace", "ada@example.com")

	in := w.Input()
	if in.FirstName != "Ada" || in.LastName != "Augusta Lovelace" {
		t.Errorf("unexpected name split: %q %q", in.FirstName, in.LastName)
	}
	if in.Email != "ada@example.com" {
		t.Errorf("unexpected email %q", in.Email)
	}
	if in.PaymentMethod != checkout.PaymentCashOnDelivery {
		t.Errorf("expected cash as the default method, got %q", in.PaymentMethod)
	}
}

func TestCashSkipsCardStep(t *testing.T) {
	w := New(sampleLines(), 2598, "", "")
	w.step = stepPayment
	w.input.PaymentMethod = checkout.PaymentCashOnDelivery

	w.advanceStep()
	if w.step != stepReview {
		t.Errorf("expected review step, got %d", w.step)
	}
}

func TestCardPathIncludesCardStep(t *testing.T) {
	w := New(sampleLines(), 2598, "", "")
	w.step = stepPayment
	w.input.PaymentMethod = checkout.PaymentCard

	w.advanceStep()
	if w.step != stepCard {
		t.Errorf("expected card step, got %d", w.step)
	}

	w.advanceStep()
	if w.step != stepReview {
		t.Errorf("expected review step, got %d", w.step)
	}
}

func TestReviewConfirmCompletes(t *testing.T) {
	w := New(sampleLines(), 2598, "Ada", "ada@example.com")
	w.step = stepReview
	w.confirm = true

	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected completion command")
	}
	msg, ok := cmd().(CompleteMsg)
	if !ok {
		t.Fatalf("expected CompleteMsg, got %T", cmd())
	}
	if msg.Form != w.Input() {
		t.Error("completion must carry the collected form")
	}
}

func TestReviewDeclineCancels(t *testing.T) {
	w := New(sampleLines(), 2598, "", "")
	w.step = stepReview
	w.confirm = false

	_, cmd := w.advanceStep()
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestEscCancels(t *testing.T) {
	w := New(sampleLines(), 2598, "", "")

	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected cancel command")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Errorf("expected CancelledMsg, got %T", cmd())
	}
}

func TestSummaryShowsPaymentMethod(t *testing.T) {
	w := New(sampleLines(), 2598, "Ada", "ada@example.com")
	w.step = stepReview
	w.input.Address = "12 Analytical Way"
	w.input.City = "London"

	out := w.renderSummary()
	if !strings.Contains(out, "cash on delivery") {
		t.Errorf("expected cash method in summary: %q", out)
	}
	if !strings.Contains(out, "25.98") {
		t.Errorf("expected total in summary: %q", out)
	}

	w.input.PaymentMethod = checkout.PaymentCard
	w.input.CardNumber = "4242 4242 4242 4242"
	if out := w.renderSummary(); !strings.Contains(out, "card ending 4242") {
		t.Errorf("expected masked card in summary: %q", out)
	}
}

func TestLastDigits(t *testing.T) {
	if got := lastDigits("4242424242424242", 4); got != "4242" {
		t.Errorf("got %q", got)
	}
	if got := lastDigits("42", 4); got != "42" {
		t.Errorf("got %q", got)
	}
}
