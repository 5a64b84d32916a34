// ABOUTME: Checkout command for placing an order without the interactive UI
// ABOUTME: Validates the shipping and payment details before touching the network

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

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/checkout"
)

var checkoutForm checkout.Form

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order for the current cart",
	Long: `Place an order for the current cart contents. Requires a logged-in
session and a non-empty cart.

With --payment card, the card number, expiry, and CVV flags are required.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runCheckout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(checkoutCmd)
	checkoutCmd.Flags().StringVar(&checkoutForm.FirstName, "first-name", "", "First name")
	checkoutCmd.Flags().StringVar(&checkoutForm.LastName, "last-name", "", "Last name")
	checkoutCmd.Flags().StringVar(&checkoutForm.Email, "email", "", "Contact email")
	checkoutCmd.Flags().StringVar(&checkoutForm.Address, "address", "", "Street address")
	checkoutCmd.Flags().StringVar(&checkoutForm.City, "city", "", "City")
	checkoutCmd.Flags().StringVar(&checkoutForm.ZipCode, "zip", "", "Zip or postal code")
	checkoutCmd.Flags().StringVar(&checkoutForm.Country, "country", "", "Country")
	checkoutCmd.Flags().StringVar(&checkoutForm.Phone, "phone", "", "Phone number (E.164)")
	checkoutCmd.Flags().StringVar(&checkoutForm.PaymentMethod, "payment", checkout.PaymentCashOnDelivery,
		"Payment method: cash-on-delivery or card")
	checkoutCmd.Flags().StringVar(&checkoutForm.CardNumber, "card-number", "", "Card number (16 digits)")
	checkoutCmd.Flags().StringVar(&checkoutForm.ExpiryDate, "expiry", "", "Card expiry (MM/YY)")
	checkoutCmd.Flags().StringVar(&checkoutForm.CVV, "cvv", "", "Card CVV (3 digits)")
}

func runCheckout(ctx context.Context, w io.Writer) int {
	if err := checkoutForm.Validate(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	api := newAPIClient()
	sess, st := openSession(api)

	userID, err := sess.NumericUserID()
	if err != nil {
		fmt.Fprintln(w, "Not logged in. Run 'inkwell login' first.")
		return 1
	}

	c := cart.New(api, st)
	c.Reload(ctx, sess.Identity())

	flow := checkout.New(api, c)
	conf, err := flow.Place(ctx, userID, &checkoutForm)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	c.Clear()

	if IsJSONOutput() {
		payload := map[string]any{
			"orderId":   conf.OrderID,
			"reference": conf.Reference,
			"message":   conf.Message,
		}
		data, _ := json.MarshalIndent(payload, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Order placed.\n")
	fmt.Fprintf(w, "Order ID:  %d\n", conf.OrderID)
	fmt.Fprintf(w, "Reference: %s\n", conf.Reference)
	if conf.Message != "" {
		fmt.Fprintf(w, "%s\n", conf.Message)
	}
	return 0
}
