package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/ngrassa/plateforme-electronique/internal/amqp"
)

type fakeViews struct {
	invalidations int
}

func (f *fakeViews) InvalidateViews() { f.invalidations++ }

type fakeListing struct {
	refreshes int
	err       error
}

func (f *fakeListing) Refresh(ctx context.Context) error {
	f.refreshes++
	return f.err
}

func TestHandleBillingEventInvoice(t *testing.T) {
	views := &fakeViews{}
	listing := &fakeListing{}
	w := NewRefreshWorker(views, listing)

	msg := amqp.NewBillingEventMessage("invoice", "created", "inv-1")
	if err := w.HandleBillingEvent(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views.invalidations != 1 {
		t.Fatalf("invalidations: got %d, want 1", views.invalidations)
	}
	if listing.refreshes != 1 {
		t.Fatalf("refreshes: got %d, want 1", listing.refreshes)
	}
}

func TestHandleBillingEventPaymentSkipsListing(t *testing.T) {
	views := &fakeViews{}
	listing := &fakeListing{}
	w := NewRefreshWorker(views, listing)

	msg := amqp.NewBillingEventMessage("payment", "updated", "p-1")
	if err := w.HandleBillingEvent(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views.invalidations != 1 || listing.refreshes != 0 {
		t.Fatalf("got %d invalidations, %d refreshes", views.invalidations, listing.refreshes)
	}
}

func TestHandleBillingEventPropagatesRefreshFailure(t *testing.T) {
	listing := &fakeListing{err: errors.New("gateway down")}
	w := NewRefreshWorker(&fakeViews{}, listing)

	msg := amqp.NewBillingEventMessage("invoice", "deleted", "inv-2")
	if err := w.HandleBillingEvent(context.Background(), msg); err == nil {
		t.Fatal("expected an error")
	}
}
