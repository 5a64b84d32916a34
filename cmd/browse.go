// ABOUTME: Browse command launching the interactive storefront
// ABOUTME: Wires the session and cart stores into the TUI

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwell-books/storefront/internal/cart"
	"github.com/inkwell-books/storefront/internal/debuglog"
	"github.com/inkwell-books/storefront/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive storefront",
	Long: `Launch the full-screen storefront. Browse the catalog, manage your
cart, place orders, and (as an admin) run the back office.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runBrowse()
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse() int {
	if err := debuglog.Init(Config().DataDir); err == nil {
		defer debuglog.Close()
	}

	api := newAPIClient()
	sess, st := openSession(api)
	defer sess.Dispose()

	c := cart.New(api, st)
	c.Reload(context.Background(), sess.Identity())

	if err := tui.Run(api, sess, c); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Let in-flight cart syncs finish before the process exits
	c.Wait()
	return 0
}
