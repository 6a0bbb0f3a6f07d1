package core

import "testing"

func TestFilterInvoices(t *testing.T) {
	invoices := []Invoice{
		{ID: "1", Status: StatusSent, ClientName: "Acme", ClientEmail: "contact@acme.tn"},
		{ID: "2", Status: StatusPaid, ClientName: "Zed", ClientEmail: "zed@mail.tn", InvoiceNumber: "FAC-2026-001"},
	}

	cases := []struct {
		name   string
		status string
		search string
		want   []string
	}{
		{"all", StatusAll, "", []string{"1", "2"}},
		{"status only", "PAID", "", []string{"2"}},
		{"search name case-insensitive", StatusAll, "acm", []string{"1"}},
		{"search email", StatusAll, "ZED@", []string{"2"}},
		{"search invoice number", StatusAll, "fac-2026", []string{"2"}},
		{"status and search exclude each other", "PAID", "acm", nil},
		{"empty status behaves like all", "", "", []string{"1", "2"}},
		{"whitespace search matches everything", StatusAll, "   ", []string{"1", "2"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterInvoices(invoices, tc.status, tc.search)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d invoices, want %d", len(got), len(tc.want))
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: got id %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestFilterInvoicesNeverNil(t *testing.T) {
	if got := FilterInvoices(nil, StatusAll, ""); got == nil {
		t.Fatal("expected empty slice, got nil")
	}
}
