package core

import "strings"

// MatchesFilter reports whether an invoice passes the listing predicates.
// Status matches by exact equality unless the filter is StatusAll; the search
// term matches case-insensitively against client name, client email or
// invoice number. Both predicates are ANDed; an empty search term matches
// everything.
func MatchesFilter(inv Invoice, status string, search string) bool {
	if status != "" && status != StatusAll && inv.Status != InvoiceStatus(status) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.ClientName), term) ||
		strings.Contains(strings.ToLower(inv.ClientEmail), term) ||
		strings.Contains(strings.ToLower(inv.InvoiceNumber), term)
}

// FilterInvoices returns the invoices passing MatchesFilter, in input order.
// It never returns nil so callers can encode it as an empty JSON array.
func FilterInvoices(invoices []Invoice, status string, search string) []Invoice {
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if MatchesFilter(inv, status, search) {
			out = append(out, inv)
		}
	}
	return out
}
