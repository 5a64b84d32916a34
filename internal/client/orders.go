// ABOUTME: Order endpoints: history, detail, line items, admin status updates

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Order is an order summary as returned by the orders endpoints.
type Order struct {
	OrderID     int64  `json:"orderId"`
	CreatedAt   string `json:"createdAt,omitempty"`
	TotalAmount Cents  `json:"totalAmount"`
	OrderStatus string `json:"orderStatus"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	OrderItemID int64 `json:"orderItemId"`
	Quantity    int   `json:"quantity"`
	Price       Cents `json:"price"`
	Book        Book  `json:"book"`
}

// UserOrders calls GET /orders/user/{userId}.
func (c *Client) UserOrders(ctx context.Context, userID int64) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/user/%d", userID), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder calls GET /orders/{id}.
func (c *Client) GetOrder(ctx context.Context, orderID int64) (*Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderItems calls GET /order-items/order/{id}.
func (c *Client) OrderItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	var items []OrderItem
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/order-items/order/%d", orderID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Orders calls GET /orders (admin only).
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateOrderStatus calls PUT /orders/{id}/status (admin only).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	path := fmt.Sprintf("/orders/%d/status", orderID)
	return c.do(ctx, http.MethodPut, path, statusUpdate{Status: status}, nil)
}
