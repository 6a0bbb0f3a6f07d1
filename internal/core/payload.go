package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrInvalidUnitPrice = errors.New("invalid unit price")
	ErrInvalidVATRate   = errors.New("invalid vat rate")
)

type (
	// InvoiceItemForm is one raw line item as collected by the creation
	// form, all fields still text.
	InvoiceItemForm struct {
		Description string
		Quantity    string
		UnitPrice   string
		TaxRate     string
	}

	// InvoiceForm is the raw creation form state.
	InvoiceForm struct {
		ClientName     string
		ClientEmail    string
		BillingAddress string
		VATRate        string
		IssueDate      string
		DueDate        string
		Items          []InvoiceItemForm
	}

	// InvoiceItemPayload is a normalized line item ready for the gateway.
	InvoiceItemPayload struct {
		Description string          `json:"description"`
		Quantity    decimal.Decimal `json:"quantity"`
		UnitPrice   decimal.Decimal `json:"unitPrice"`
		TaxRate     decimal.Decimal `json:"taxRate"`
	}

	// InvoicePayload is the invoice-creation request body. Date fields
	// are omitted entirely when empty rather than sent as empty strings.
	InvoicePayload struct {
		OwnerUserID    string               `json:"ownerUserId"`
		ClientName     string               `json:"clientName"`
		ClientEmail    string               `json:"clientEmail"`
		BillingAddress string               `json:"billingAddress,omitempty"`
		VATRate        decimal.Decimal      `json:"vatRate"`
		IssueDate      string               `json:"issueDate,omitempty"`
		DueDate        string               `json:"dueDate,omitempty"`
		Items          []InvoiceItemPayload `json:"items"`
	}
)

// BuildInvoicePayload normalizes raw form strings into a typed creation
// payload scoped to one owner. Quantity, unit price and VAT rate must parse
// as decimals; a malformed line tax rate falls back to 0. Line items keep
// form order. Range rules (positive quantity, at least one item) stay with
// the billing service.
func BuildInvoicePayload(ownerID string, form InvoiceForm) (InvoicePayload, error) {
	vatRate, err := parseRate(form.VATRate)
	if err != nil {
		return InvoicePayload{}, fmt.Errorf("%w: %q", ErrInvalidVATRate, form.VATRate)
	}

	items := make([]InvoiceItemPayload, 0, len(form.Items))
	for i, item := range form.Items {
		quantity, err := decimal.NewFromString(strings.TrimSpace(item.Quantity))
		if err != nil {
			return InvoicePayload{}, fmt.Errorf("item %d: %w: %q", i+1, ErrInvalidQuantity, item.Quantity)
		}
		unitPrice, err := decimal.NewFromString(strings.TrimSpace(item.UnitPrice))
		if err != nil {
			return InvoicePayload{}, fmt.Errorf("item %d: %w: %q", i+1, ErrInvalidUnitPrice, item.UnitPrice)
		}
		taxRate, err := parseRate(item.TaxRate)
		if err != nil {
			taxRate = decimal.Zero
		}
		items = append(items, InvoiceItemPayload{
			Description: strings.TrimSpace(item.Description),
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			TaxRate:     taxRate,
		})
	}

	return InvoicePayload{
		OwnerUserID:    ownerID,
		ClientName:     strings.TrimSpace(form.ClientName),
		ClientEmail:    strings.TrimSpace(form.ClientEmail),
		BillingAddress: strings.TrimSpace(form.BillingAddress),
		VATRate:        vatRate,
		IssueDate:      strings.TrimSpace(form.IssueDate),
		DueDate:        strings.TrimSpace(form.DueDate),
		Items:          items,
	}, nil
}

// parseRate parses an optional percentage field; empty means 0.
func parseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
