package ledger

// Status classifies one invoice-processing attempt against the ledger.
type Status int

const (
	Skip Status = iota
	Error
	Success
)

func (s Status) String() string {
	switch s {
	case Skip:
		return "skip"
	case Error:
		return "error"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Default error messages when a flagged ledger row carries no message of its
// own. The group pass re-reads every row of the payment group, the invoice
// row included, so its default wins for a blank-message invoice row and the
// last flagged row's message wins overall.
const (
	defaultInvoiceError = "CSV Error - payment and payment number amounts dont match"
	defaultGroupError   = "Unknown error in CSV"
)

// Skip reasons.
const (
	ReasonNoInvoice       = "No matching invoice found"
	ReasonNoPaymentNumber = "Missing or blank payment number"
	ReasonNoPaymentRows   = "No matching payment rows found"
)

// MatchResult is the outcome of classifying one invoice. Group carries every
// ledger row sharing the matched payment number when Status is Error or
// Success.
type MatchResult struct {
	Status        Status
	Reason        string
	PaymentNumber string
	Invoice       *Row
	Group         []Row
}

// Matcher classifies invoices against an immutable ledger snapshot.
type Matcher struct {
	rows []Row
}

func NewMatcher(rows []Row) *Matcher {
	return &Matcher{rows: rows}
}

// Match classifies invoiceID. Pass one finds the first ledger row for the
// invoice under leading-zero-insensitive equality; pass two collects the full
// payment group and surfaces any row-level error flag. Pure and total: every
// invoiceID maps to exactly one of Skip, Error or Success.
func (m *Matcher) Match(invoiceID string) MatchResult {
	var invoice *Row
	for i := range m.rows {
		if SameInvoice(m.rows[i].InvoiceNumber, invoiceID) {
			invoice = &m.rows[i]
			break
		}
	}
	if invoice == nil {
		return MatchResult{Status: Skip, Reason: ReasonNoInvoice}
	}

	paymentNumber := invoice.PaymentNumber
	if paymentNumber == "" {
		return MatchResult{Status: Skip, Reason: ReasonNoPaymentNumber}
	}

	hasError := invoice.HasError
	errorMessage := ""
	if hasError {
		errorMessage = invoice.ErrorMessage
		if errorMessage == "" {
			errorMessage = defaultInvoiceError
		}
	}

	var group []Row
	for _, row := range m.rows {
		if row.PaymentNumber != paymentNumber {
			continue
		}
		group = append(group, row)
		if row.HasError {
			hasError = true
			errorMessage = row.ErrorMessage
			if errorMessage == "" {
				errorMessage = defaultGroupError
			}
		}
	}

	// The invoice row itself carries this payment number, so an empty group
	// is a contradiction. Guarded as a skip rather than trusted.
	if len(group) == 0 {
		return MatchResult{Status: Skip, Reason: ReasonNoPaymentRows, PaymentNumber: paymentNumber}
	}

	if hasError {
		return MatchResult{
			Status:        Error,
			Reason:        errorMessage,
			PaymentNumber: paymentNumber,
			Invoice:       invoice,
			Group:         group,
		}
	}

	return MatchResult{
		Status:        Success,
		PaymentNumber: paymentNumber,
		Invoice:       invoice,
		Group:         group,
	}
}

// Invoices returns the distinct invoice numbers in ledger order, used by the
// offline plan preview.
func (m *Matcher) Invoices() []string {
	seen := make(map[string]bool, len(m.rows))
	var out []string
	for _, row := range m.rows {
		key := Normalize(row.InvoiceNumber)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row.InvoiceNumber)
	}
	return out
}
