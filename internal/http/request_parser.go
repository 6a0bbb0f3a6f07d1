package http

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ngrassa/plateforme-electronique/internal/core"
)

// ListingQuery holds the parsed invoice listing parameters.
type ListingQuery struct {
	Page   int
	Status string
	Search string
}

// ParseListingQuery extracts page, status and search from query parameters.
// A missing or malformed page means page zero; a missing status means no
// status filtering.
func ParseListingQuery(query url.Values) ListingQuery {
	q := ListingQuery{
		Page:   0,
		Status: core.StatusAll,
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			q.Page = p
		}
	}
	if v := strings.TrimSpace(query.Get("status")); v != "" {
		q.Status = strings.ToUpper(v)
	}
	q.Search = sanitizeInput(query.Get("q"))

	return q
}

// ParseInvoiceForm assembles the raw creation form from posted values. Line
// items arrive as parallel arrays (description[], quantity[], unitPrice[],
// taxRate[]); rows are kept in form order and ragged arrays are padded with
// empty strings so normalization sees every row.
func ParseInvoiceForm(form url.Values) core.InvoiceForm {
	descriptions := form["description[]"]
	quantities := form["quantity[]"]
	unitPrices := form["unitPrice[]"]
	taxRates := form["taxRate[]"]

	rows := len(descriptions)
	for _, arr := range [][]string{quantities, unitPrices, taxRates} {
		if len(arr) > rows {
			rows = len(arr)
		}
	}

	items := make([]core.InvoiceItemForm, 0, rows)
	for i := 0; i < rows; i++ {
		items = append(items, core.InvoiceItemForm{
			Description: sanitizeInput(at(descriptions, i)),
			Quantity:    strings.TrimSpace(at(quantities, i)),
			UnitPrice:   strings.TrimSpace(at(unitPrices, i)),
			TaxRate:     strings.TrimSpace(at(taxRates, i)),
		})
	}

	return core.InvoiceForm{
		ClientName:     sanitizeInput(form.Get("clientName")),
		ClientEmail:    sanitizeInput(form.Get("clientEmail")),
		BillingAddress: sanitizeInput(form.Get("billingAddress")),
		VATRate:        strings.TrimSpace(form.Get("vatRate")),
		IssueDate:      strings.TrimSpace(form.Get("issueDate")),
		DueDate:        strings.TrimSpace(form.Get("dueDate")),
		Items:          items,
	}
}

func at(arr []string, i int) string {
	if i < len(arr) {
		return arr[i]
	}
	return ""
}
