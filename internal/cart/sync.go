// ABOUTME: Background reconciliation of cart mutations with the backend
// ABOUTME: Fire-and-forget writes whose outcomes surface on a typed event stream

package cart

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-books/storefront/internal/debuglog"
	"github.com/inkwell-books/storefront/internal/session"
)

// Op identifies the kind of reconciliation call behind a SyncOutcome.
type Op string

const (
	OpUpsert Op = "upsert"
	OpDelete Op = "delete"
	OpFetch  Op = "fetch"
)

// SyncOutcome reports the result of one background reconciliation call.
// Failures never surface to the UI; subscribers (tests, telemetry) observe
// them here instead of losing them to a log line.
type SyncOutcome struct {
	ID     string
	Op     Op
	BookID int64
	Err    error
	At     time.Time
}

// Outcomes returns the stream of reconciliation results. The channel is
// buffered; when nobody drains it, outcomes are dropped rather than
// blocking mutations.
func (c *Store) Outcomes() <-chan SyncOutcome {
	return c.outcomes
}

func (c *Store) publish(op Op, bookID int64, err error) {
	outcome := SyncOutcome{
		ID:     uuid.NewString(),
		Op:     op,
		BookID: bookID,
		Err:    err,
		At:     time.Now(),
	}
	select {
	case c.outcomes <- outcome:
	default:
	}
}

// syncUpsert pushes the absolute quantity for a line to the backend. The
// local cart stays authoritative for the UI whatever the remote outcome.
func (c *Store) syncUpsert(identity string, bookID int64, quantity int) {
	uid, ok := numericIdentity(identity)
	if !ok {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.api.PutCartItem(context.Background(), uid, bookID, quantity)
		debuglog.Sync(string(OpUpsert), bookID, err)
		c.publish(OpUpsert, bookID, err)
	}()
}

// syncDelete removes a line from the backend cart.
func (c *Store) syncDelete(identity string, bookID int64) {
	uid, ok := numericIdentity(identity)
	if !ok {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.api.DeleteCartItem(context.Background(), uid, bookID)
		debuglog.Sync(string(OpDelete), bookID, err)
		c.publish(OpDelete, bookID, err)
	}()
}

// numericIdentity converts an authenticated identity key to the backend's
// numeric user id. The anonymous sentinel never syncs.
func numericIdentity(identity string) (int64, bool) {
	if identity == session.AnonymousIdentity {
		return 0, false
	}
	uid, err := strconv.ParseInt(identity, 10, 64)
	if err != nil {
		return 0, false
	}
	return uid, true
}
