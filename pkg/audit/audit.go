package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"billpay/pkg/ledger"
)

// Status of an audit record.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
	StatusSkipped Status = "Skipped"
	// StatusIntent marks a payment about to be saved on screen. It is written
	// before the Save click and resolved after, so a crash in between leaves
	// the invoice in the skip set instead of silently re-paying it.
	StatusIntent Status = "Intent"
)

// Record is one audit trail entry.
type Record struct {
	InvoiceNumber string
	PaymentNumber string
	Status        Status
	Message       string
}

var (
	successHeader = []string{"Invoice Number", "Payment Number", "Status"}
	errorHeader   = []string{"Invoice Number", "Payment Number", "Status", "Error Message"}
)

// Log is the append-only success/error audit trail. The error partition
// doubles as resumption state: invoices recorded there are skipped on later
// runs. Single writer, no locking; concurrent runs against the same files are
// unsupported.
type Log struct {
	successPath string
	errorPath   string
	logger      *log.Logger
}

// Open prepares the audit files, creating them or repairing their headers as
// needed.
func Open(successPath, errorPath string, logger *log.Logger) (*Log, error) {
	l := &Log{successPath: successPath, errorPath: errorPath, logger: logger}
	if err := ensureHeader(successPath, successHeader); err != nil {
		return nil, err
	}
	if err := ensureHeader(errorPath, errorHeader); err != nil {
		return nil, err
	}
	return l, nil
}

// ensureHeader creates the file with its header row, or prepends the header
// when the first line of an existing file does not match.
func ensureHeader(path string, header []string) error {
	want := strings.Join(header, ",")

	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return os.WriteFile(path, []byte(want+"\n"), 0644)
	}
	if err != nil {
		return fmt.Errorf("failed to read audit file %s: %w", path, err)
	}

	firstLine, _, _ := strings.Cut(string(content), "\n")
	if strings.TrimSpace(firstLine) == want {
		return nil
	}
	return os.WriteFile(path, append([]byte(want+"\n"), content...), 0644)
}

// AppendSuccess records a saved payment.
func (l *Log) AppendSuccess(invoiceNumber, paymentNumber string) error {
	return appendRow(l.successPath, []string{invoiceNumber, paymentNumber, string(StatusSuccess)})
}

// AppendFailure records an Error, Skipped or Intent outcome in the error
// partition. A blank payment number is recorded as N/A.
func (l *Log) AppendFailure(rec Record) error {
	payment := rec.PaymentNumber
	if payment == "" {
		payment = "N/A"
	}
	return appendRow(l.errorPath, []string{rec.InvoiceNumber, payment, string(rec.Status), rec.Message})
}

func appendRow(path string, fields []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(fields); err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	w.Flush()
	return w.Error()
}

// SkipSet returns the normalized invoice numbers present in the error
// partition. These are excluded from reprocessing.
func (l *Log) SkipSet() (map[string]struct{}, error) {
	records, err := l.readErrors()
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(records))
	for _, rec := range records {
		// Even an empty key stays in the set: a recorded invoice must be
		// skipped no matter how oddly the grid renders its number.
		set[ledger.Normalize(rec[0])] = struct{}{}
	}
	return set, nil
}

// ResetErrors truncates the error partition back to its header so every
// previously errored invoice becomes eligible again.
func (l *Log) ResetErrors() error {
	l.logger.Info("clearing error partition for reprocessing", "path", l.errorPath)
	return os.WriteFile(l.errorPath, []byte(strings.Join(errorHeader, ",")+"\n"), 0644)
}

// ResolveIntent removes Intent records for an invoice after its Save was
// confirmed, so the success record alone represents the outcome.
func (l *Log) ResolveIntent(invoiceNumber string) error {
	records, err := l.readErrors()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if Status(rec[2]) == StatusIntent && ledger.SameInvoice(rec[0], invoiceNumber) {
			continue
		}
		kept = append(kept, rec)
	}

	f, err := os.Create(l.errorPath)
	if err != nil {
		return fmt.Errorf("failed to rewrite audit file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(errorHeader); err != nil {
		return err
	}
	for _, rec := range kept {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readErrors returns the error partition's data records, header excluded.
// Short rows are padded so callers can index columns safely.
func (l *Log) readErrors() ([][]string, error) {
	f, err := os.Open(l.errorPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file %s: %w", l.errorPath, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read audit file %s: %w", l.errorPath, err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	out := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		for len(rec) < len(errorHeader) {
			rec = append(rec, "")
		}
		out = append(out, rec)
	}
	return out, nil
}
