package core

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft     InvoiceStatus = "DRAFT"
	StatusValidated InvoiceStatus = "VALIDATED"
	StatusSent      InvoiceStatus = "SENT"
	StatusPaid      InvoiceStatus = "PAID"
	StatusCancelled InvoiceStatus = "CANCELLED"

	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"

	MethodCard         PaymentMethod = "CARD"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCash         PaymentMethod = "CASH"
	MethodCheck        PaymentMethod = "CHECK"
)

// StatusAll is the listing filter value that matches every invoice status.
const StatusAll = "ALL"

// clientSentinel keys invoices that carry neither a client email nor a name.
const clientSentinel = "client"

type (
	InvoiceStatus string
	PaymentStatus string
	PaymentMethod string

	// Invoice is a billing-system invoice as served by the gateway.
	// Monetary fields may be absent on the wire; the zero decimal stands
	// in for them.
	Invoice struct {
		ID             string          `json:"id"`
		InvoiceNumber  string          `json:"invoiceNumber,omitempty"`
		ClientName     string          `json:"clientName,omitempty"`
		ClientEmail    string          `json:"clientEmail,omitempty"`
		BillingAddress string          `json:"billingAddress,omitempty"`
		SubtotalHT     decimal.Decimal `json:"subtotalHt"`
		VATRate        decimal.Decimal `json:"vatRate"`
		VATAmount      decimal.Decimal `json:"vatAmount"`
		TotalTTC       decimal.Decimal `json:"totalTtc"`
		Status         InvoiceStatus   `json:"status"`
		IssueDate      string          `json:"issueDate,omitempty"`
		DueDate        string          `json:"dueDate,omitempty"`
		CreatedAt      string          `json:"createdAt,omitempty"`
	}

	// InvoicePage is one page of invoices plus the server's pagination
	// metadata. Number is zero-based.
	InvoicePage struct {
		Content       []Invoice `json:"content"`
		TotalElements int64     `json:"totalElements"`
		TotalPages    int       `json:"totalPages"`
		Number        int       `json:"number"`
		Size          int       `json:"size"`
	}

	Payment struct {
		ID          string          `json:"id"`
		Reference   string          `json:"reference"`
		InvoiceID   string          `json:"invoiceId"`
		UserID      string          `json:"userId"`
		Amount      decimal.Decimal `json:"amount"`
		Currency    string          `json:"currency"`
		Method      PaymentMethod   `json:"method"`
		Status      PaymentStatus   `json:"status"`
		PaymentDate string          `json:"paymentDate,omitempty"`
		CreatedAt   string          `json:"createdAt,omitempty"`
	}
)

// ClientKey derives the roll-up key for an invoice: client email when
// present, else client name, else a fixed sentinel.
func ClientKey(inv Invoice) string {
	if inv.ClientEmail != "" {
		return inv.ClientEmail
	}
	if inv.ClientName != "" {
		return inv.ClientName
	}
	return clientSentinel
}

// paymentDateLayouts covers the date-time shapes the billing services emit.
var paymentDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePaymentDate parses a payment date string. The second return value is
// false when the string is empty or matches none of the known layouts.
func ParsePaymentDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range paymentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
