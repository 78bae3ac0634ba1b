package ledger

import "strings"

// Row is one line of the payment ledger export. One payment number may span
// several rows (one per invoice it covers).
type Row struct {
	InvoiceNumber string
	PaymentNumber string
	PaymentMethod string
	PaymentDate   string
	Amount        string
	HasError      bool
	ErrorMessage  string
}

// Normalize strips quote wrapping, surrounding whitespace and leading zeros
// from an invoice number. The ledger export zero-pads invoice numbers while
// the bills grid renders them bare, so "0042" and "42" are the same invoice.
// All-zero numbers collapse to "0" so they keep a non-empty key and stay
// distinguishable from a blank field.
func Normalize(invoice string) string {
	n := strings.TrimSpace(invoice)
	n = strings.Trim(n, `"`)
	n = strings.TrimSpace(n)
	trimmed := strings.TrimLeft(n, "0")
	if trimmed == "" && n != "" {
		return "0"
	}
	return trimmed
}

// SameInvoice reports whether two invoice numbers identify the same invoice
// under leading-zero-insensitive equality.
func SameInvoice(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

func stripQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
}
