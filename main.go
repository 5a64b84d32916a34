// ABOUTME: Entry point for the inkwell storefront CLI
// ABOUTME: Terminal client for browsing, cart management, and ordering

package main

import (
	"fmt"
	"os"

	"github.com/inkwell-books/storefront/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
