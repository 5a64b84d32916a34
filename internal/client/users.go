// ABOUTME: User profile and admin user/dashboard endpoints

package client

import (
	"context"
	"fmt"
	"net/http"
)

// UserRecord is a user as returned by GET /users/{id}.
type UserRecord struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, userID int64) (*UserRecord, error) {
	var user UserRecord
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, user *UserRecord) (*UserRecord, error) {
	var updated UserRecord
	path := fmt.Sprintf("/users/%d", user.UserID)
	if err := c.do(ctx, http.MethodPut, path, user, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Users calls GET /users (admin only).
func (c *Client) Users(ctx context.Context) ([]UserRecord, error) {
	var users []UserRecord
	if err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalBooks  int   `json:"totalBooks"`
	TotalOrders int   `json:"totalOrders"`
	TotalUsers  int   `json:"totalUsers"`
	Revenue     Cents `json:"revenue"`
}

// AdminDashboard calls GET /admin/dashboard (admin only).
func (c *Client) AdminDashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
