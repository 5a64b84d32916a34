// ABOUTME: Checkout endpoint: order placement from server-side cart state

package client

import (
	"context"
	"net/http"
)

// CheckoutRequest is the POST /checkout/process payload. Cart contents are
// not included; the backend derives them from the user's server-side cart.
type CheckoutRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZipCode       string `json:"zipCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
	UserID        int64  `json:"userId"`

	// Card fields, present only for paymentMethod "card".
	CardNumber string `json:"cardNumber,omitempty"`
	ExpiryDate string `json:"expiryDate,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

// CheckoutResponse is the POST /checkout/process result.
type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID int64  `json:"orderId"`
	Message string `json:"message,omitempty"`
}

// ProcessCheckout calls POST /checkout/process.
func (c *Client) ProcessCheckout(ctx context.Context, req *CheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/process", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
