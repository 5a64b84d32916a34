// ABOUTME: Remote cart endpoints: fetch, upsert, delete, defensive re-add

package client

import (
	"context"
	"fmt"
	"net/http"
)

// CartLine is one remote cart entry as returned by GET /cart/{userId}.
type CartLine struct {
	CartID   int64 `json:"cartId"`
	Quantity int   `json:"quantity"`
	Book     Book  `json:"book"`
}

// GetCart calls GET /cart/{userId}.
func (c *Client) GetCart(ctx context.Context, userID int64) ([]CartLine, error) {
	var lines []CartLine
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/cart/%d", userID), nil, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

type quantityUpdate struct {
	Quantity int `json:"quantity"`
}

// PutCartItem calls PUT /cart/{userId}/item/{bookId} with the absolute
// quantity for that line.
func (c *Client) PutCartItem(ctx context.Context, userID, bookID int64, quantity int) error {
	path := fmt.Sprintf("/cart/%d/item/%d", userID, bookID)
	return c.do(ctx, http.MethodPut, path, quantityUpdate{Quantity: quantity}, nil)
}

// DeleteCartItem calls DELETE /cart/{userId}/item/{bookId}.
func (c *Client) DeleteCartItem(ctx context.Context, userID, bookID int64) error {
	path := fmt.Sprintf("/cart/%d/item/%d", userID, bookID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type cartUpsert struct {
	User     idRef `json:"user"`
	Book     bkRef `json:"book"`
	Quantity int   `json:"quantity"`
}

type idRef struct {
	UserID int64 `json:"userId"`
}

type bkRef struct {
	BookID int64 `json:"bookId"`
}

// PostCartItem calls POST /cart. Checkout uses it to make sure every line
// exists server side before placing an order.
func (c *Client) PostCartItem(ctx context.Context, userID, bookID int64, quantity int) error {
	body := cartUpsert{
		User:     idRef{UserID: userID},
		Book:     bkRef{BookID: bookID},
		Quantity: quantity,
	}
	return c.do(ctx, http.MethodPost, "/cart", body, nil)
}
