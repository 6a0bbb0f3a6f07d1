package core

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RevenueWindowMonths is the width of the rolling revenue window shown on
// the dashboard. Payments dated outside it are ignored by design.
const RevenueWindowMonths = 6

// Stats are the dashboard headline figures.
type Stats struct {
	TotalInvoices int64           `json:"totalInvoices"`
	TotalPayments int             `json:"totalPayments"`
	Revenue       decimal.Decimal `json:"revenue"`
	UniqueClients int             `json:"uniqueClients"`
}

// MetricPoint is one calendar month's accumulated revenue.
type MetricPoint struct {
	Year  int             `json:"year"`
	Month time.Month      `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// ChartPoint is a chart-ready coordinate in [0,100]².
type ChartPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// monthLabels holds abbreviated French month names, as the admin UI shows
// them under the revenue chart.
var monthLabels = [12]string{
	"janv.", "févr.", "mars", "avr.", "mai", "juin",
	"juil.", "août", "sept.", "oct.", "nov.", "déc.",
}

// ComputeStats derives the headline figures from the latest fetched
// collections. TotalInvoices prefers the page's reported element count and
// falls back to the held invoice count; revenue sums completed payments
// only; unique clients are counted with the roll-up key derivation.
func ComputeStats(page InvoicePage, payments []Payment) Stats {
	total := page.TotalElements
	if total == 0 {
		total = int64(len(page.Content))
	}

	revenue := decimal.Zero
	for _, p := range payments {
		if p.Status == PaymentCompleted {
			revenue = revenue.Add(p.Amount)
		}
	}

	keys := make(map[string]struct{}, len(page.Content))
	for _, inv := range page.Content {
		keys[ClientKey(inv)] = struct{}{}
	}

	return Stats{
		TotalInvoices: total,
		TotalPayments: len(payments),
		Revenue:       revenue,
		UniqueClients: len(keys),
	}
}

// ComputeRevenueSeries buckets payment amounts into the six consecutive
// calendar months ending at now's month, oldest first. Payments without a
// parseable date or outside the window contribute nothing. The series is
// rebuilt from scratch on every call.
func ComputeRevenueSeries(payments []Payment, now time.Time) []MetricPoint {
	series := make([]MetricPoint, RevenueWindowMonths)
	index := make(map[[2]int]int, RevenueWindowMonths)
	// Pin the day to 1 before offsetting so day-of-month overflow (e.g. a
	// month-end now) cannot skip months.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := range series {
		m := base.AddDate(0, i-(RevenueWindowMonths-1), 0)
		series[i] = MetricPoint{
			Year:  m.Year(),
			Month: m.Month(),
			Label: monthLabels[int(m.Month())-1],
			Total: decimal.Zero,
		}
		index[[2]int{m.Year(), int(m.Month())}] = i
	}

	for _, p := range payments {
		paid, ok := ParsePaymentDate(p.PaymentDate)
		if !ok {
			continue
		}
		if i, hit := index[[2]int{paid.Year(), int(paid.Month())}]; hit {
			series[i].Total = series[i].Total.Add(p.Amount)
		}
	}
	return series
}

// SeriesTotal sums a revenue series.
func SeriesTotal(series []MetricPoint) decimal.Decimal {
	total := decimal.Zero
	for _, pt := range series {
		total = total.Add(pt.Total)
	}
	return total
}

// ChartPoints projects a series onto a 100x100 viewport: x evenly spaced
// across the index range, y inverted so larger totals sit higher. The max
// total is floored at 1, so an all-zero series renders as a flat baseline
// at y=100 instead of dividing by zero.
func ChartPoints(series []MetricPoint) []ChartPoint {
	if len(series) == 0 {
		return nil
	}
	max := decimal.NewFromInt(1)
	for _, pt := range series {
		if pt.Total.GreaterThan(max) {
			max = pt.Total
		}
	}
	points := make([]ChartPoint, len(series))
	for i, pt := range series {
		x := 0.0
		if len(series) > 1 {
			x = float64(i) / float64(len(series)-1) * 100
		}
		points[i] = ChartPoint{
			X: x,
			Y: 100 - pt.Total.Div(max).InexactFloat64()*100,
		}
	}
	return points
}

// TopRecentInvoices returns the first n invoices in received order. The
// server already sorts by recency; no client-side reorder.
func TopRecentInvoices(invoices []Invoice, n int) []Invoice {
	if n > len(invoices) {
		n = len(invoices)
	}
	out := make([]Invoice, n)
	copy(out, invoices[:n])
	return out
}

// TopRecentPayments returns the n most recent payments by createdAt,
// compared lexicographically; payments without createdAt sort last.
func TopRecentPayments(payments []Payment, n int) []Payment {
	sorted := make([]Payment, len(payments))
	copy(sorted, payments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.Compare(sorted[j].CreatedAt, sorted[i].CreatedAt) < 0
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// CountInvoicesByStatus counts held invoices with the given status.
func CountInvoicesByStatus(invoices []Invoice, status InvoiceStatus) int {
	n := 0
	for _, inv := range invoices {
		if inv.Status == status {
			n++
		}
	}
	return n
}

// CountPaymentsByStatus counts held payments with the given status.
func CountPaymentsByStatus(payments []Payment, status PaymentStatus) int {
	n := 0
	for _, p := range payments {
		if p.Status == status {
			n++
		}
	}
	return n
}
