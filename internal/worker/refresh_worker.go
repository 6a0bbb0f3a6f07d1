// Package worker reacts to billing change events by dropping cached view
// models so the next request recomputes them from fresh gateway data.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ngrassa/plateforme-electronique/internal/amqp"
)

// ViewInvalidator drops every memoized view model.
type ViewInvalidator interface {
	InvalidateViews()
}

// ListingRefresher refetches the invoice listing's current page.
type ListingRefresher interface {
	Refresh(ctx context.Context) error
}

// RefreshWorker handles billing events from the message broker.
type RefreshWorker struct {
	views   ViewInvalidator
	listing ListingRefresher
}

func NewRefreshWorker(views ViewInvalidator, listing ListingRefresher) *RefreshWorker {
	return &RefreshWorker{views: views, listing: listing}
}

// HandleBillingEvent processes a single change notification. Any resource
// change invalidates the cached views; invoice changes additionally refresh
// the listing so pagination bounds stay accurate.
func (w *RefreshWorker) HandleBillingEvent(ctx context.Context, msg *amqp.BillingEventMessage) error {
	slog.InfoContext(ctx, "Processing billing event",
		"resource", msg.Resource,
		"action", msg.Action,
		"entity_id", msg.EntityID)

	w.views.InvalidateViews()

	if msg.Resource == "invoice" && w.listing != nil {
		if err := w.listing.Refresh(ctx); err != nil {
			return fmt.Errorf("refresh invoice listing: %w", err)
		}
	}

	return nil
}
