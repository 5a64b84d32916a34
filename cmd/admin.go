// ABOUTME: Admin command group for the back office
// ABOUTME: Book CRUD, order status updates, user listing, and dashboard stats

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

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/guard"
	"github.com/inkwell-books/storefront/internal/session"
)

var adminBook client.Book
var adminBookPrice float64

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back office operations",
	Long:  `Manage the catalog, orders, and users. Requires an admin session.`,
}

var adminDashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show store totals",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminDashboard(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List registered users",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminUsers(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List all orders",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminOrders(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminOrderStatusCmd = &cobra.Command{
	Use:   "order-status <order-id> <status>",
	Short: "Update an order's status",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminOrderStatus(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminBookAddCmd = &cobra.Command{
	Use:   "book-add",
	Short: "Add a book to the catalog",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminBookAdd(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminBookUpdateCmd = &cobra.Command{
	Use:   "book-update <book-id>",
	Short: "Update a catalog entry",
	Long:  `Update a book. Only the flags given are changed; other fields keep their current values.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminBookUpdate(ctx, os.Stdout, cmd, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var adminBookDeleteCmd = &cobra.Command{
	Use:   "book-delete <book-id>",
	Short: "Remove a book from the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAdminBookDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminDashboardCmd)
	adminCmd.AddCommand(adminUsersCmd)
	adminCmd.AddCommand(adminOrdersCmd)
	adminCmd.AddCommand(adminOrderStatusCmd)
	adminCmd.AddCommand(adminBookAddCmd)
	adminCmd.AddCommand(adminBookUpdateCmd)
	adminCmd.AddCommand(adminBookDeleteCmd)

	for _, c := range []*cobra.Command{adminBookAddCmd, adminBookUpdateCmd} {
		c.Flags().StringVar(&adminBook.Title, "title", "", "Book title")
		c.Flags().StringVar(&adminBook.Author, "author", "", "Author")
		c.Flags().Float64Var(&adminBookPrice, "price", 0, "Price, e.g. 12.99")
		c.Flags().StringVar(&adminBook.Category, "category", "", "Category")
		c.Flags().StringVar(&adminBook.Description, "description", "", "Description")
		c.Flags().StringVar(&adminBook.ImageURL, "image-url", "", "Cover image URL")
		c.Flags().IntVar(&adminBook.Stock, "stock", 0, "Units in stock")
	}
	adminBookAddCmd.MarkFlagRequired("title")
	adminBookAddCmd.MarkFlagRequired("author")
	adminBookAddCmd.MarkFlagRequired("price")
}

// requireAdmin hydrates the session and enforces the admin role.
// Returns an authenticated client or nil with a printed reason.
func requireAdmin(w io.Writer) (*client.Client, *session.Store) {
	api := newAPIClient()
	sess, _ := openSession(api)

	switch guard.Decide(sess.State(), guard.RoleAdmin) {
	case guard.Allow:
		return api, sess
	case guard.RedirectLogin:
		fmt.Fprintln(w, "Not logged in. Run 'inkwell login' first.")
	default:
		fmt.Fprintln(w, "Admin access required.")
	}
	return nil, nil
}

func runAdminDashboard(ctx context.Context, w io.Writer) int {
	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	stats, err := api.AdminDashboard(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Books:   %d\n", stats.TotalBooks)
	fmt.Fprintf(w, "Orders:  %d\n", stats.TotalOrders)
	fmt.Fprintf(w, "Users:   %d\n", stats.TotalUsers)
	fmt.Fprintf(w, "Revenue: %s\n", stats.Revenue)
	return 0
}

func runAdminUsers(ctx context.Context, w io.Writer) int {
	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	users, err := api.Users(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(users, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "%-6s %-24s %-32s %-8s\n", "ID", "NAME", "EMAIL", "ROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%-6d %-24s %-32s %-8s\n", u.UserID, truncate(u.Name, 24), truncate(u.Email, 32), u.Role)
	}
	return 0
}

func runAdminOrders(ctx context.Context, w io.Writer) int {
	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	orders, err := api.Orders(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(orders, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(orders) == 0 {
		fmt.Fprintln(w, "No orders.")
		return 0
	}
	fmt.Fprintf(w, "%-8s %-20s %10s %-12s\n", "ORDER", "PLACED", "TOTAL", "STATUS")
	for _, o := range orders {
		fmt.Fprintf(w, "%-8d %-20s %10s %-12s\n", o.OrderID, o.CreatedAt, o.TotalAmount, o.OrderStatus)
	}
	return 0
}

func runAdminOrderStatus(ctx context.Context, w io.Writer, orderIDArg, status string) int {
	orderID, err := strconv.ParseInt(orderIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid order id %q\n", orderIDArg)
		return 1
	}

	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	if err := api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Order %d set to %s.\n", orderID, status)
	return 0
}

func runAdminBookAdd(ctx context.Context, w io.Writer) int {
	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	book := adminBook
	book.Price = client.CentsFromFloat(adminBookPrice)
	created, err := api.CreateBook(ctx, &book)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Created book %d: %s\n", created.BookID, created.Title)
	return 0
}

func runAdminBookUpdate(ctx context.Context, w io.Writer, cmd *cobra.Command, bookIDArg string) int {
	bookID, err := strconv.ParseInt(bookIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookIDArg)
		return 1
	}

	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	books, err := api.Books(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	var current *client.Book
	for i := range books {
		if books[i].BookID == bookID {
			current = &books[i]
			break
		}
	}
	if current == nil {
		fmt.Fprintf(w, "Error: no book with id %d\n", bookID)
		return 1
	}

	// Only overwrite fields whose flags were actually set.
	if cmd.Flags().Changed("title") {
		current.Title = adminBook.Title
	}
	if cmd.Flags().Changed("author") {
		current.Author = adminBook.Author
	}
	if cmd.Flags().Changed("price") {
		current.Price = client.CentsFromFloat(adminBookPrice)
	}
	if cmd.Flags().Changed("category") {
		current.Category = adminBook.Category
	}
	if cmd.Flags().Changed("description") {
		current.Description = adminBook.Description
	}
	if cmd.Flags().Changed("image-url") {
		current.ImageURL = adminBook.ImageURL
	}
	if cmd.Flags().Changed("stock") {
		current.Stock = adminBook.Stock
	}

	updated, err := api.UpdateBook(ctx, current)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Updated book %d: %s\n", updated.BookID, updated.Title)
	return 0
}

func runAdminBookDelete(ctx context.Context, w io.Writer, bookIDArg string) int {
	bookID, err := strconv.ParseInt(bookIDArg, 10, 64)
	if err != nil {
		fmt.Fprintf(w, "Error: invalid book id %q\n", bookIDArg)
		return 1
	}

	api, _ := requireAdmin(w)
	if api == nil {
		return 1
	}

	if err := api.DeleteBook(ctx, bookID); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Deleted book %d.\n", bookID)
	return 0
}
