// ABOUTME: Shopping cart store: optimistic local state, per-identity persistence,
// ABOUTME: and best-effort background reconciliation with the remote cart

package cart

import (
	"context"
	"strconv"
	"sync"

	"github.com/inkwell-books/storefront/internal/client"
	"github.com/inkwell-books/storefront/internal/debuglog"
	"github.com/inkwell-books/storefront/internal/session"
	"github.com/inkwell-books/storefront/internal/storage"
)

// Line is one cart entry. BookID is unique within a cart and Quantity is
// always positive.
type Line struct {
	BookID   int64        `json:"bookId"`
	Title    string       `json:"title"`
	Author   string       `json:"author"`
	Price    client.Cents `json:"price"`
	Quantity int          `json:"quantity"`
	ImageURL string       `json:"image,omitempty"`
}

// Store is the cart state container. Mutations apply synchronously to local
// state and storage; remote writes are fired in the background and never
// block or fail a mutation.
type Store struct {
	api *client.Client
	st  *storage.Store

	mu       sync.Mutex
	identity string
	lines    []Line
	ready    bool

	outcomes chan SyncOutcome
	wg       sync.WaitGroup
}

// New creates a cart store. Call Reload with the owning identity before use.
func New(api *client.Client, st *storage.Store) *Store {
	return &Store{
		api:      api,
		st:       st,
		identity: session.AnonymousIdentity,
		outcomes: make(chan SyncOutcome, 64),
	}
}

// Reload re-derives the storage key for identity and replaces the cart
// contents. For an authenticated identity the remote cart wins: its contents
// replace local state and storage without merging. If the remote fetch
// fails, the stored cart for that identity is used, or an empty cart.
// The anonymous identity loads from storage only.
func (c *Store) Reload(ctx context.Context, identity string) {
	c.mu.Lock()
	c.identity = identity
	c.ready = false
	c.mu.Unlock()

	if identity != session.AnonymousIdentity {
		if uid, err := strconv.ParseInt(identity, 10, 64); err == nil {
			remote, err := c.api.GetCart(ctx, uid)
			c.publish(OpFetch, 0, err)
			if err == nil {
				lines := fromRemote(remote)
				c.mu.Lock()
				c.lines = lines
				c.ready = true
				c.persistLocked()
				c.mu.Unlock()
				return
			}
			debuglog.Error("cart: remote fetch, falling back to local", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	var stored []Line
	if c.st.GetJSON(storage.CartKey(c.identity), &stored) {
		c.lines = sanitize(stored)
	} else {
		c.lines = nil
	}
	c.ready = true
}

// Ready reports whether the store has finished hydrating for its identity.
func (c *Store) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// Identity returns the identity key owning the current cart.
func (c *Store) Identity() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// AddItem adds quantity of item to the cart. Adding a book already present
// increments its line; quantities accumulate rather than overwrite.
func (c *Store) AddItem(item Line, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}

	c.mu.Lock()
	c.lines = addLine(c.lines, item, quantity)
	total := quantityOf(c.lines, item.BookID)
	c.persistLocked()
	identity := c.identity
	c.mu.Unlock()

	c.syncUpsert(identity, item.BookID, total)
}

// SetQuantity overwrites the quantity for bookID. A quantity of zero or less
// removes the line instead. Setting quantity for an absent book does not
// create a line.
func (c *Store) SetQuantity(bookID int64, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(bookID)
		return
	}

	c.mu.Lock()
	had := quantityOf(c.lines, bookID) > 0
	c.lines = setQuantity(c.lines, bookID, quantity)
	c.persistLocked()
	identity := c.identity
	c.mu.Unlock()

	if had {
		c.syncUpsert(identity, bookID, quantity)
	}
}

// RemoveItem deletes the line for bookID. Removing an absent book is a
// no-op, not an error.
func (c *Store) RemoveItem(bookID int64) {
	c.mu.Lock()
	had := quantityOf(c.lines, bookID) > 0
	c.lines = removeLine(c.lines, bookID)
	c.persistLocked()
	identity := c.identity
	c.mu.Unlock()

	if had {
		c.syncDelete(identity, bookID)
	}
}

// Clear empties the cart in memory and storage. It deliberately does not
// touch the backend; order placement clears the server-side cart.
func (c *Store) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.persistLocked()
}

// Lines returns a copy of the current cart contents.
func (c *Store) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems returns the sum of quantities across all lines.
func (c *Store) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, l := range c.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the exact sum of price times quantity across lines.
func (c *Store) TotalPrice() client.Cents {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total client.Cents
	for _, l := range c.lines {
		total += l.Price * client.Cents(l.Quantity)
	}
	return total
}

// Wait blocks until all in-flight background sync calls finish. Intended
// for tests and shutdown.
func (c *Store) Wait() {
	c.wg.Wait()
}

// persistLocked writes the current lines under the identity's storage key.
// Callers hold c.mu.
func (c *Store) persistLocked() {
	if err := c.st.SetJSON(storage.CartKey(c.identity), c.lines); err != nil {
		debuglog.Error("cart: persist", err)
	}
}

// fromRemote converts backend cart lines to the local shape.
func fromRemote(remote []client.CartLine) []Line {
	lines := make([]Line, 0, len(remote))
	for _, r := range remote {
		if r.Quantity <= 0 {
			continue
		}
		lines = append(lines, Line{
			BookID:   r.Book.BookID,
			Title:    r.Book.Title,
			Author:   r.Book.Author,
			Price:    r.Book.Price,
			Quantity: r.Quantity,
			ImageURL: r.Book.ImageURL,
		})
	}
	return lines
}

// sanitize drops stored lines that violate the cart invariants.
func sanitize(lines []Line) []Line {
	out := lines[:0]
	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 || seen[l.BookID] {
			continue
		}
		seen[l.BookID] = true
		out = append(out, l)
	}
	return out
}
