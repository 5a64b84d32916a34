// ABOUTME: Books command for listing the catalog
// ABOUTME: Supports category filtering and JSON output for scripting

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-books/storefront/internal/client"
)

var booksCategory string

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the book catalog",
	Long:  `Fetch the catalog from the backend, optionally filtered by category.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooks(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.Flags().StringVar(&booksCategory, "category", "", "Only show books in this category")
}

// runBooks fetches and prints the catalog, returning an exit code.
func runBooks(ctx context.Context, w io.Writer) int {
	api := newAPIClient()

	books, err := api.Books(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if booksCategory != "" {
		filtered := books[:0]
		for _, b := range books {
			if b.Category == booksCategory {
				filtered = append(filtered, b)
			}
		}
		books = filtered
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(books, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBooksHuman(books))
	return 0
}

// formatBooksHuman renders a fixed-width catalog listing.
func formatBooksHuman(books []client.Book) string {
	if len(books) == 0 {
		return "No books found."
	}

	out := fmt.Sprintf("%-6s %-36s %-24s %-12s %8s %6s\n", "ID", "TITLE", "AUTHOR", "CATEGORY", "PRICE", "STOCK")
	for _, b := range books {
		out += fmt.Sprintf("%-6d %-36s %-24s %-12s %8s %6d\n",
			b.BookID, truncate(b.Title, 36), truncate(b.Author, 24), truncate(b.Category, 12), b.Price, b.Stock)
	}
	return out
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
