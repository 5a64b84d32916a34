// ABOUTME: Orders command for reviewing order history
// ABOUTME: Lists the logged-in user's orders or shows a single order with items

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
)

var ordersCmd = &cobra.Command{
	Use:   "orders [order-id]",
	Short: "Show order history",
	Long: `List the logged-in user's orders. Pass an order id to see the items
on a single order.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		orderID := ""
		if len(args) > 0 {
			orderID = args[0]
		}
		exitCode := runOrders(ctx, os.Stdout, orderID)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)
}

func runOrders(ctx context.Context, w io.Writer, orderIDArg string) int {
	api := newAPIClient()
	sess, _ := openSession(api)

	userID, err := sess.NumericUserID()
	if err != nil {
		fmt.Fprintln(w, "Not logged in. Run 'inkwell login' first.")
		return 1
	}

	if orderIDArg != "" {
		orderID, err := strconv.ParseInt(orderIDArg, 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Error: invalid order id %q\n", orderIDArg)
			return 1
		}
		return printOrderDetail(ctx, w, api, orderID)
	}

	orders, err := api.UserOrders(ctx, userID)
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
		fmt.Fprintln(w, "No orders yet.")
		return 0
	}

	fmt.Fprintf(w, "%-8s %-20s %10s %-12s\n", "ORDER", "PLACED", "TOTAL", "STATUS")
	for _, o := range orders {
		fmt.Fprintf(w, "%-8d %-20s %10s %-12s\n", o.OrderID, o.CreatedAt, o.TotalAmount, o.OrderStatus)
	}
	return 0
}

func printOrderDetail(ctx context.Context, w io.Writer, api *client.Client, orderID int64) int {
	order, err := api.GetOrder(ctx, orderID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	items, err := api.OrderItems(ctx, orderID)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		payload := map[string]any{"order": order, "items": items}
		data, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Order #%d\n", order.OrderID)
	fmt.Fprintf(w, "Placed: %s\n", order.CreatedAt)
	fmt.Fprintf(w, "Status: %s\n", order.OrderStatus)
	fmt.Fprintf(w, "Total:  %s\n\n", order.TotalAmount)
	for _, it := range items {
		fmt.Fprintf(w, "  %-36s x%-3d %8s\n", truncate(it.Book.Title, 36), it.Quantity, it.Price)
	}
	return 0
}
