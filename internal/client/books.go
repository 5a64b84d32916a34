// ABOUTME: Catalog endpoints: book listing and categories

package client

import (
	"context"
	"fmt"
	"net/http"
)

// Book is a catalog entry.
type Book struct {
	BookID      int64  `json:"bookId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Price       Cents  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Stock       int    `json:"stock"`
}

// Books calls GET /books.
func (c *Client) Books(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// BookCategories calls GET /books/categories.
func (c *Client) BookCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "/books/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateBook calls POST /books (admin only).
func (c *Client) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	var created Book
	if err := c.do(ctx, http.MethodPost, "/books", book, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBook calls PUT /books/{id} (admin only).
func (c *Client) UpdateBook(ctx context.Context, book *Book) (*Book, error) {
	var updated Book
	path := fmt.Sprintf("/books/%d", book.BookID)
	if err := c.do(ctx, http.MethodPut, path, book, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBook calls DELETE /books/{id} (admin only).
func (c *Client) DeleteBook(ctx context.Context, bookID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", bookID), nil, nil)
}
