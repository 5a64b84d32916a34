// ABOUTME: Cart command group for inspecting and mutating the shopping cart
// ABOUTME: Mutations update local state immediately and sync to the backend

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/client"
)

var cartAddQuantity int

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit the shopping cart",
	Long: `Manage the shopping cart. Carts are kept per user (or per anonymous
session) and synced to the backend when logged in.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartShow(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <book-id>",
	Short: "Add a book to the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartAdd(ctx, os.Stdout, args[0], cartAddQuantity)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <book-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Long:  `Set the quantity of an existing cart line. A quantity of zero removes it.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartSet(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <book-id>",
	Short: "Remove a book from the cart",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartRemove(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCartClear(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(cartCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
	cartAddCmd.Flags().IntVar(&cartAddQuantity, "quantity", 1, "Number of copies to add")
}

// openCart wires the session and cart stores and loads current contents.
func openCart(ctx context.Context) *cart.Store {
	api := newAPIClient()
	sess, st := openSession(api)
	c := cart.New(api, st)
	c.Reload(ctx, sess.Identity())
	return c
}

func runCartShow(ctx context.Context, w io.Writer) int {
	c := openCart(ctx)

	lines := c.Lines()
	if IsJSONOutput() {
		payload := map[string]any{
			"items": lines,
			"total": c.TotalPrice().Float(),
			"count": c.TotalItems(),
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(lines) == 0 {
		fmt.Fprintln(w, "Your cart is empty.")
		return 0
	}

	fmt.Fprintf(w, "%-6s %-36s %-24s %8s %5s %10s\n", "ID", "TITLE", "AUTHOR", "PRICE", "QTY", "SUBTOTAL")
	for _, l := range lines {
		subtotal := l.Price * client.Cents(l.Quantity)
		fmt.Fprintf(w, "%-6d %-36s %-24s %8s %5d %10s\n",
			l.BookID, truncate(l.Title, 36), truncate(l.Author, 24), l.Price, l.Quantity, subtotal)
	}
	fmt.Fprintf(w, "\nTotal: %s (%d items)\n", c.TotalPrice(), c.TotalItems())
	return 0
}

func runCartAdd(ctx context.Context, w io.Writer, bookIDArg string, quantity int) int {
	bookID, err := strconv.ParseInt(bookIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookIDArg)
		return 1
	}

	api := newAPIClient()
	sess, st := openSession(api)
	c := cart.New(api, st)
	c.Reload(ctx, sess.Identity())

	books, err := api.Books(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	for _, b := range books {
		if b.BookID == bookID {
			c.AddItem(cart.Line{
				BookID:   b.BookID,
				Title:    b.Title,
				Author:   b.Author,
				Price:    b.Price,
				ImageURL: b.ImageURL,
			}, quantity)
			c.Wait()
			fmt.Fprintf(w, "Added %q to cart.\n", b.Title)
			return 0
		}
	}

	fmt.Fprintf(w, "Error: no book with id %d\n", bookID)
	return 1
}

func runCartSet(ctx context.Context, w io.Writer, bookIDArg, quantityArg string) int {
	bookID, err := strconv.ParseInt(bookIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookIDArg)
		return 1
	}
	quantity, err := strconv.Atoi(quantityArg)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid quantity %q\n", quantityArg)
		return 1
	}

	c := openCart(ctx)
	c.SetQuantity(bookID, quantity)
	c.Wait()

	if quantity <= 0 {
		fmt.Fprintf(w, "Removed book %d from cart.\n", bookID)
	} else {
		fmt.Fprintf(w, "Set book %d quantity to %d.\n", bookID, quantity)
	}
	return 0
}

func runCartRemove(ctx context.Context, w io.Writer, bookIDArg string) int {
	bookID, err := strconv.ParseInt(bookIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookIDArg)
		return 1
	}

	c := openCart(ctx)
	c.RemoveItem(bookID)
	c.Wait()

	fmt.Fprintf(w, "Removed book %d from cart.\n", bookID)
	return 0
}

func runCartClear(ctx context.Context, w io.Writer) int {
	c := openCart(ctx)
	c.Clear()

	fmt.Fprintln(w, "Cart cleared.")
	return 0
}
