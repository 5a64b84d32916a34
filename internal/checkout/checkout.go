// ABOUTME: Order placement pipeline: validation, defensive cart re-sync,
// ABOUTME: server-side verification, and checkout submission

package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/debuglog"
)

// ErrEmptyCart rejects a checkout before any network call is made.
var ErrEmptyCart = errors.New("cart is empty")

// DefaultSettleDelay gives in-flight cart writes a moment to land before
// the server-side cart is verified.
const DefaultSettleDelay = 500 * time.Millisecond

// Confirmation is the result of a successfully placed order.
type Confirmation struct {
	OrderID   int64
	Reference string
	Message   string
}

// Flow orchestrates checkout. The backend derives order contents from its
// own cart state, so every local line is re-pushed before submission.
type Flow struct {
	api         *client.Client
	cart        *cart.Store
	settleDelay time.Duration
}

// New creates a checkout flow over the given client and cart store.
func New(api *client.Client, cartStore *cart.Store) *Flow {
	return &Flow{api: api, cart: cartStore, settleDelay: DefaultSettleDelay}
}

// SetSettleDelay overrides the re-sync settle delay. Tests set it to zero.
func (f *Flow) SetSettleDelay(d time.Duration) {
	f.settleDelay = d
}

// Place validates the form and submits the order for userID. On failure the
// cart and form are left untouched so the user can correct and resubmit;
// no retry is attempted.
func (f *Flow) Place(ctx context.Context, userID int64, form *Form) (*Confirmation, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	lines := f.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Re-push every line so the server-side cart matches what the user
	// sees. Individual failures are logged, not fatal: the verification
	// fetch below is the real gate.
	g, gctx := errgroup.WithContext(ctx)
	for _, line := range lines {
		g.Go(func() error {
			if err := f.api.PostCartItem(gctx, userID, line.BookID, line.Quantity); err != nil {
				debuglog.Error(fmt.Sprintf("checkout: re-sync book %d", line.BookID), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if f.settleDelay > 0 {
		select {
		case <-time.After(f.settleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	remote, err := f.api.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not verify cart contents: %w", err)
	}
	if len(remote) == 0 {
		return nil, errors.New("cart appears to be empty on the server")
	}

	req := &client.CheckoutRequest{
		FirstName:     strings.TrimSpace(form.FirstName),
		LastName:      strings.TrimSpace(form.LastName),
		Email:         strings.TrimSpace(form.Email),
		Address:       strings.TrimSpace(form.Address),
		City:          strings.TrimSpace(form.City),
		ZipCode:       strings.TrimSpace(form.ZipCode),
		Country:       strings.TrimSpace(form.Country),
		Phone:         CleanPhone(form.Phone),
		PaymentMethod: form.PaymentMethod,
		UserID:        userID,
	}
	if form.PaymentMethod == PaymentCard {
		req.CardNumber = form.CardNumber
		req.ExpiryDate = form.ExpiryDate
		req.CVV = form.CVV
	}

	resp, err := f.api.ProcessCheckout(ctx, req)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "order failed"
		}
		return nil, errors.New(msg)
	}

	return &Confirmation{
		OrderID:   resp.OrderID,
		Reference: NewReference(),
		Message:   resp.Message,
	}, nil
}

// NewReference generates the display order reference shown to the user.
// The backend's numeric order id stays the canonical identifier.
func NewReference() string {
	return "ORD-" + ulid.Make().String()
}
