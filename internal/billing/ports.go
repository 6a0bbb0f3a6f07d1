package billing

import (
	"context"

	"github.com/ngrassa/plateforme-electronique/internal/core"
)

// Ports for the remote billing API.
type (
	InvoiceLister interface {
		// ListInvoices returns one page of invoices scoped to an owner.
		ListInvoices(ctx context.Context, ownerID string, page, size int) (core.InvoicePage, error)
	}

	PaymentLister interface {
		// ListPayments returns all payments, unscoped.
		ListPayments(ctx context.Context) ([]core.Payment, error)
	}

	InvoiceCreator interface {
		// CreateInvoice submits a normalized payload and returns the
		// server-assigned invoice, including computed totals and status.
		CreateInvoice(ctx context.Context, payload core.InvoicePayload) (core.Invoice, error)
	}
)
