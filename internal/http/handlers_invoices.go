package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ngrassa/plateforme-electronique/internal/billing"
	"github.com/ngrassa/plateforme-electronique/internal/core"
)

type createInvoiceResponse struct {
	Invoice *core.Invoice `json:"invoice,omitempty"`
	Error   string        `json:"error,omitempty"`
}

// handleInvoiceListing serves the paginated, filtered invoice listing. The
// page parameter is clamped into the known range; status and q narrow the
// held page without refetching.
func (s *Server) handleInvoiceListing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	query := ParseListingQuery(r.URL.Query())
	s.listing.SetFilters(query.Status, query.Search)

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	if err := s.listing.GoToPage(ctx, query.Page); err != nil {
		slog.ErrorContext(r.Context(), "Invoice listing fetch error", "error", err, "page", query.Page)
	}

	writeJSON(w, r, http.StatusOK, s.listing.View())
}

// handleCreateInvoice accepts the invoice creation form, normalizes it into
// the gateway payload, and submits it. On success the cached views are
// dropped and the listing refetched so the new invoice shows up immediately.
func (s *Server) handleCreateInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		writeJSON(w, r, http.StatusBadRequest, createInvoiceResponse{Error: "Formulaire invalide."})
		return
	}

	form := ParseInvoiceForm(r.Form)
	payload, err := core.BuildInvoicePayload(s.ownerID, form)
	if err != nil {
		slog.WarnContext(r.Context(), "Invoice form rejected", "error", err)
		writeJSON(w, r, http.StatusUnprocessableEntity, createInvoiceResponse{Error: invoiceFormMessage(err)})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	invoice, err := s.creator.CreateInvoice(ctx, payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "Invoice creation error", "error", err, "client", payload.ClientName)
		status := http.StatusBadGateway
		var apiErr *billing.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		writeJSON(w, r, status, createInvoiceResponse{Error: apiMessage(err)})
		return
	}

	s.InvalidateViews()
	if err := s.listing.Refresh(ctx); err != nil {
		slog.WarnContext(r.Context(), "Listing refresh after create failed", "error", err)
	}
	if s.events != nil {
		if err := s.events.PublishBillingEvent(ctx, "invoice", "created", invoice.ID); err != nil {
			slog.WarnContext(r.Context(), "Publish billing event failed", "error", err, "invoice_id", invoice.ID)
		}
	}

	writeJSON(w, r, http.StatusCreated, createInvoiceResponse{Invoice: &invoice})
}

// invoiceFormMessage maps a normalization failure to the banner text.
func invoiceFormMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidQuantity):
		return "Quantité invalide."
	case errors.Is(err, core.ErrInvalidUnitPrice):
		return "Prix unitaire invalide."
	case errors.Is(err, core.ErrInvalidVATRate):
		return "Taux de TVA invalide."
	default:
		return "Formulaire invalide."
	}
}
