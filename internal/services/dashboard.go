package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ngrassa/plateforme-electronique/internal/billing"
	"github.com/ngrassa/plateforme-electronique/internal/core"
)

const (
	// OverviewPageSize is the invoice fetch size for the dashboard and
	// client roll-up views; wider than the listing so the roll-up sees
	// enough of the directory.
	OverviewPageSize = 50

	// RecentCount is the length of the recency lists.
	RecentCount = 5
)

// Activity are the quick counters next to the revenue chart.
type Activity struct {
	PendingInvoices int `json:"pendingInvoices"`
	PaidInvoices    int `json:"paidInvoices"`
	PendingPayments int `json:"pendingPayments"`
}

// DashboardView is the combined dashboard view model. It is only ever
// published whole: if either underlying fetch fails nothing is committed.
type DashboardView struct {
	Stats          core.Stats         `json:"stats"`
	Series         []core.MetricPoint `json:"series"`
	SeriesTotal    decimal.Decimal    `json:"seriesTotal"`
	Chart          []core.ChartPoint  `json:"chart"`
	Activity       Activity           `json:"activity"`
	RecentInvoices []core.Invoice     `json:"recentInvoices"`
	RecentPayments []core.Payment     `json:"recentPayments"`
}

// DashboardService recomputes the derived view models from scratch on every
// call; nothing is cached or incrementally updated here.
type DashboardService struct {
	invoices billing.InvoiceLister
	payments billing.PaymentLister
	ownerID  string
	now      func() time.Time
}

func NewDashboardService(invoices billing.InvoiceLister, payments billing.PaymentLister, ownerID string) *DashboardService {
	return &DashboardService{
		invoices: invoices,
		payments: payments,
		ownerID:  ownerID,
		now:      time.Now,
	}
}

// Overview fetches invoices and payments concurrently, joins them, and
// derives the dashboard view model. Both fetches must succeed.
func (s *DashboardService) Overview(ctx context.Context) (DashboardView, error) {
	var (
		page     core.InvoicePage
		payments []core.Payment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.invoices.ListInvoices(gctx, s.ownerID, 0, OverviewPageSize)
		if err != nil {
			return fmt.Errorf("dashboard invoices: %w", err)
		}
		page = p
		return nil
	})
	g.Go(func() error {
		p, err := s.payments.ListPayments(gctx)
		if err != nil {
			return fmt.Errorf("dashboard payments: %w", err)
		}
		payments = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return DashboardView{}, err
	}

	series := core.ComputeRevenueSeries(payments, s.now())
	return DashboardView{
		Stats:       core.ComputeStats(page, payments),
		Series:      series,
		SeriesTotal: core.SeriesTotal(series),
		Chart:       core.ChartPoints(series),
		Activity: Activity{
			PendingInvoices: core.CountInvoicesByStatus(page.Content, core.StatusSent),
			PaidInvoices:    core.CountInvoicesByStatus(page.Content, core.StatusPaid),
			PendingPayments: core.CountPaymentsByStatus(payments, core.PaymentPending),
		},
		RecentInvoices: core.TopRecentInvoices(page.Content, RecentCount),
		RecentPayments: core.TopRecentPayments(payments, RecentCount),
	}, nil
}

// Clients derives the deduplicated client directory.
func (s *DashboardService) Clients(ctx context.Context) ([]core.ClientSummary, error) {
	page, err := s.invoices.ListInvoices(ctx, s.ownerID, 0, OverviewPageSize)
	if err != nil {
		return nil, fmt.Errorf("client roll-up invoices: %w", err)
	}
	return core.SummarizeClients(page.Content), nil
}

// Payments returns the full payment history.
func (s *DashboardService) Payments(ctx context.Context) ([]core.Payment, error) {
	payments, err := s.payments.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("payment history: %w", err)
	}
	return payments, nil
}
