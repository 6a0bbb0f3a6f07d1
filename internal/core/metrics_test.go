package core

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestComputeStats(t *testing.T) {
	page := InvoicePage{
		Content: []Invoice{
			{ClientEmail: "a@b.tn"},
			{ClientEmail: "a@b.tn"},
			{ClientName: "NoMail"},
		},
		TotalElements: 42,
	}
	payments := []Payment{
		{Status: PaymentCompleted, Amount: dec(100)},
		{Status: PaymentPending, Amount: dec(50)},
		{Status: PaymentCompleted, Amount: dec(25)},
	}

	stats := ComputeStats(page, payments)
	if stats.TotalInvoices != 42 {
		t.Fatalf("total invoices: got %d, want 42", stats.TotalInvoices)
	}
	if stats.TotalPayments != 3 {
		t.Fatalf("total payments: got %d, want 3", stats.TotalPayments)
	}
	if !stats.Revenue.Equal(dec(125)) {
		t.Fatalf("revenue: got %s, want 125", stats.Revenue)
	}
	if stats.UniqueClients != 2 {
		t.Fatalf("unique clients: got %d, want 2", stats.UniqueClients)
	}
}

func TestComputeStatsFallsBackToHeldCount(t *testing.T) {
	page := InvoicePage{Content: []Invoice{{}, {}}}
	stats := ComputeStats(page, nil)
	if stats.TotalInvoices != 2 {
		t.Fatalf("total invoices: got %d, want held count 2", stats.TotalInvoices)
	}
}

func TestComputeRevenueSeriesWindow(t *testing.T) {
	now := time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)
	payments := []Payment{
		{Amount: dec(100), PaymentDate: "2026-08-02T09:00:00"}, // current month
		{Amount: dec(30), PaymentDate: "2026-08-20"},           // same bucket
		{Amount: dec(50), PaymentDate: "2026-03-31"},           // oldest bucket
		{Amount: dec(70), PaymentDate: "2026-01-15"},           // 7 months back, ignored
		{Amount: dec(10), PaymentDate: ""},                     // no date, ignored
		{Amount: dec(10), PaymentDate: "not-a-date"},           // unparseable, ignored
	}

	series := ComputeRevenueSeries(payments, now)
	if len(series) != RevenueWindowMonths {
		t.Fatalf("got %d points, want %d", len(series), RevenueWindowMonths)
	}
	if series[0].Year != 2026 || series[0].Month != time.March {
		t.Fatalf("oldest bucket: got %d-%d, want 2026-March", series[0].Year, series[0].Month)
	}
	if series[5].Year != 2026 || series[5].Month != time.August {
		t.Fatalf("newest bucket: got %d-%d, want 2026-August", series[5].Year, series[5].Month)
	}
	if !series[0].Total.Equal(dec(50)) {
		t.Fatalf("march total: got %s, want 50", series[0].Total)
	}
	if !series[5].Total.Equal(dec(130)) {
		t.Fatalf("august total: got %s, want 130", series[5].Total)
	}
	for i := 1; i < 5; i++ {
		if !series[i].Total.IsZero() {
			t.Fatalf("bucket %d: got %s, want 0", i, series[i].Total)
		}
	}
}

func TestComputeRevenueSeriesCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	series := ComputeRevenueSeries(nil, now)
	if series[0].Year != 2025 || series[0].Month != time.September {
		t.Fatalf("oldest bucket: got %d-%d, want 2025-September", series[0].Year, series[0].Month)
	}
	if series[5].Year != 2026 || series[5].Month != time.February {
		t.Fatalf("newest bucket: got %d-%d, want 2026-February", series[5].Year, series[5].Month)
	}
}

func TestComputeRevenueSeriesMonthEndNow(t *testing.T) {
	now := time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC)
	payments := []Payment{
		{Amount: dec(40), PaymentDate: "2026-04-10"},
		{Amount: dec(5), PaymentDate: "2026-06-01"},
	}

	series := ComputeRevenueSeries(payments, now)
	want := []time.Month{time.March, time.April, time.May, time.June, time.July, time.August}
	for i, month := range want {
		if series[i].Year != 2026 || series[i].Month != month {
			t.Fatalf("bucket %d: got %d-%s, want 2026-%s", i, series[i].Year, series[i].Month, month)
		}
	}
	if !series[1].Total.Equal(dec(40)) {
		t.Fatalf("april total: got %s, want 40", series[1].Total)
	}
	if !series[3].Total.Equal(dec(5)) {
		t.Fatalf("june total: got %s, want 5", series[3].Total)
	}
	if !SeriesTotal(series).Equal(dec(45)) {
		t.Fatalf("series total: got %s, want 45", SeriesTotal(series))
	}
}

func TestComputeRevenueSeriesAlwaysSixPoints(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	if got := len(ComputeRevenueSeries(nil, now)); got != 6 {
		t.Fatalf("empty input: got %d points, want 6", got)
	}
	many := make([]Payment, 500)
	for i := range many {
		many[i] = Payment{Amount: dec(1), PaymentDate: "2026-07-01"}
	}
	if got := len(ComputeRevenueSeries(many, now)); got != 6 {
		t.Fatalf("large input: got %d points, want 6", got)
	}
}

func TestChartPointsFlatBaseline(t *testing.T) {
	now := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	points := ChartPoints(ComputeRevenueSeries(nil, now))
	if len(points) != 6 {
		t.Fatalf("got %d points, want 6", len(points))
	}
	for i, pt := range points {
		if pt.Y != 100 {
			t.Fatalf("point %d: got y=%v, want flat baseline 100", i, pt.Y)
		}
	}
	if points[0].X != 0 || points[5].X != 100 {
		t.Fatalf("endpoints: got x=%v..%v, want 0..100", points[0].X, points[5].X)
	}
}

func TestChartPointsScaling(t *testing.T) {
	series := []MetricPoint{
		{Total: dec(0)},
		{Total: dec(100)},
		{Total: dec(50)},
	}
	points := ChartPoints(series)
	if points[0].Y != 100 {
		t.Fatalf("zero total: got y=%v, want 100", points[0].Y)
	}
	if points[1].Y != 0 {
		t.Fatalf("max total: got y=%v, want 0", points[1].Y)
	}
	if points[2].Y != 50 {
		t.Fatalf("half total: got y=%v, want 50", points[2].Y)
	}
	if points[1].X != 50 {
		t.Fatalf("middle point: got x=%v, want 50", points[1].X)
	}
}

func TestTopRecentInvoicesKeepsServerOrder(t *testing.T) {
	invoices := []Invoice{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	got := TopRecentInvoices(invoices, 5)
	if len(got) != 3 {
		t.Fatalf("got %d invoices, want 3", len(got))
	}
	got = TopRecentInvoices(invoices, 2)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Fatalf("unexpected truncation: %+v", got)
	}
}

func TestTopRecentPaymentsSortsByCreatedAtDescending(t *testing.T) {
	payments := []Payment{
		{ID: "old", CreatedAt: "2026-01-01T00:00:00"},
		{ID: "nodate"},
		{ID: "new", CreatedAt: "2026-06-01T00:00:00"},
	}
	got := TopRecentPayments(payments, 3)
	want := []string{"new", "old", "nodate"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
	// Input order untouched.
	if payments[0].ID != "old" {
		t.Fatalf("input slice was reordered")
	}
}

func TestComputeStatsIdempotent(t *testing.T) {
	page := InvoicePage{Content: []Invoice{{ClientEmail: "a@b.tn"}}, TotalElements: 7}
	payments := []Payment{{Status: PaymentCompleted, Amount: dec(10)}}
	first := ComputeStats(page, payments)
	second := ComputeStats(page, payments)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("stats not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}
