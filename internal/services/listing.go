package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ngrassa/plateforme-electronique/internal/billing"
	"github.com/ngrassa/plateforme-electronique/internal/core"
)

// ListingPageSize is the fixed page size of the invoice listing view.
const ListingPageSize = 10

// listingUnavailableMessage is shown as a banner when a listing fetch
// fails; the stale collection is never kept.
const listingUnavailableMessage = "Impossible de charger les factures via l'API Gateway."

// ListingView is the read-only snapshot served to the presentation layer.
type ListingView struct {
	Invoices    []core.Invoice `json:"invoices"`
	Page        int            `json:"page"`
	TotalPages  int            `json:"totalPages"`
	Status      string         `json:"status"`
	Search      string         `json:"search"`
	Unavailable string         `json:"error,omitempty"`
}

// ListingEngine holds the paginated, filtered, searched view over invoices.
// It never assumes it holds more than one page: page changes trigger a new
// fetch, and a generation counter discards the result of a superseded
// in-flight fetch so a slow earlier response cannot overwrite a newer one.
type ListingEngine struct {
	lister   billing.InvoiceLister
	ownerID  string
	pageSize int

	mu          sync.Mutex
	generation  uint64
	invoices    []core.Invoice
	page        int
	totalPages  int
	status      string
	search      string
	unavailable string
	loaded      bool
}

func NewListingEngine(lister billing.InvoiceLister, ownerID string) *ListingEngine {
	return &ListingEngine{
		lister:     lister,
		ownerID:    ownerID,
		pageSize:   ListingPageSize,
		totalPages: 1,
		status:     core.StatusAll,
	}
}

// SetFilters updates the status filter and search term. Filtering is a pure
// in-memory predicate over the held page; no fetch is issued.
func (e *ListingEngine) SetFilters(status, search string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if status == "" {
		status = core.StatusAll
	}
	e.status = status
	e.search = search
}

// Refresh refetches the current page, e.g. after an invoice was created or
// a change event arrived from the broker.
func (e *ListingEngine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	page := e.page
	e.mu.Unlock()
	return e.fetch(ctx, page)
}

// GoToPage navigates to a page index, clamped to [0, totalPages-1]. A
// request beyond the valid range is held at the nearest valid index; if
// that index is already loaded no fetch is issued at all.
func (e *ListingEngine) GoToPage(ctx context.Context, page int) error {
	e.mu.Lock()
	if page < 0 {
		page = 0
	}
	if last := e.totalPages - 1; page > last {
		page = last
	}
	if e.loaded && page == e.page {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()
	return e.fetch(ctx, page)
}

func (e *ListingEngine) NextPage(ctx context.Context) error {
	e.mu.Lock()
	page := e.page + 1
	e.mu.Unlock()
	return e.GoToPage(ctx, page)
}

func (e *ListingEngine) PrevPage(ctx context.Context) error {
	e.mu.Lock()
	page := e.page - 1
	e.mu.Unlock()
	return e.GoToPage(ctx, page)
}

// View returns the current snapshot with the filter predicates applied.
func (e *ListingEngine) View() ListingView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ListingView{
		Invoices:    core.FilterInvoices(e.invoices, e.status, e.search),
		Page:        e.page,
		TotalPages:  e.totalPages,
		Status:      e.status,
		Search:      e.search,
		Unavailable: e.unavailable,
	}
}

func (e *ListingEngine) fetch(ctx context.Context, page int) error {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	owner, size := e.ownerID, e.pageSize
	e.mu.Unlock()

	result, err := e.lister.ListInvoices(ctx, owner, page, size)

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		// Superseded while in flight; the newer fetch owns the state.
		return nil
	}
	if err != nil {
		e.invoices = nil
		e.totalPages = 1
		e.loaded = false
		e.unavailable = listingUnavailableMessage
		return fmt.Errorf("fetch invoice page %d: %w", page, err)
	}
	e.invoices = result.Content
	e.totalPages = result.TotalPages
	if e.totalPages < 1 {
		e.totalPages = 1
	}
	e.page = page
	if last := e.totalPages - 1; e.page > last {
		e.page = last
	}
	e.loaded = true
	e.unavailable = ""
	return nil
}
