// ABOUTME: Tests for the books command
// ABOUTME: Verifies catalog output formatting, filtering, and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkwell-books/storefront/internal/client"
)

func TestFormatBooksHuman(t *testing.T) {
	books := []client.Book{
		{BookID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: 1299, Stock: 8},
		{BookID: 2, Title: "The Hobbit", Author: "J.R.R. Tolkien", Category: "Fantasy", Price: 1050, Stock: 3},
	}

	output := formatBooksHuman(books)

	checks := []string{"Dune", "Frank Herbert", "12.99", "The Hobbit", "Fantasy", "TITLE"}
	for _, check := range checks {
		if !bytes.Contains([]byte(output), []byte(check)) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestFormatBooksHuman_Empty(t *testing.T) {
	if output := formatBooksHuman(nil); !bytes.Contains([]byte(output), []byte("No books found")) {
		t.Error("expected empty catalog message")
	}
}

func TestBooksCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/books" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Book{
			{BookID: 1, Title: "Dune", Author: "Frank Herbert", Category: "Sci-Fi", Price: 1299, Stock: 8},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runBooks(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Dune")) {
		t.Error("expected book title in output")
	}
}

func TestBooksCommand_CategoryFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Book{
			{BookID: 1, Title: "Dune", Category: "Sci-Fi", Price: 1299},
			{BookID: 2, Title: "The Hobbit", Category: "Fantasy", Price: 1050},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	booksCategory = "Fantasy"
	defer func() {
		apiURL = ""
		booksCategory = ""
	}()

	var buf bytes.Buffer
	if exitCode := runBooks(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}
	if bytes.Contains(buf.Bytes(), []byte("Dune")) {
		t.Error("filtered category must not appear")
	}
	if !bytes.Contains(buf.Bytes(), []byte("The Hobbit")) {
		t.Error("expected matching book in output")
	}
}

func TestBooksCommand_JSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]client.Book{
			{BookID: 1, Title: "Dune", Category: "Sci-Fi", Price: 1299, Stock: 8},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	jsonOutput = true
	defer func() {
		apiURL = ""
		jsonOutput = false
	}()

	var buf bytes.Buffer
	if exitCode := runBooks(context.Background(), &buf); exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", exitCode)
	}

	var parsed []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0]["title"] != "Dune" {
		t.Errorf("unexpected JSON output: %v", parsed)
	}
}

func TestBooksCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:0"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runBooks(context.Background(), &buf); exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	long := truncate("an unreasonably long book title", 10)
	if len([]rune(long)) != 10 {
		t.Errorf("expected 10 runes, got %q", long)
	}
}
