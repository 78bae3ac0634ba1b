package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the ledger export.
const (
	colInvoiceNumber = "Invoice number"
	colPaymentNumber = "Payment number"
	colPaymentMethod = "Payment method"
	colPaymentDate   = "Payment date"
	colAmount        = "Amount_1"
	colError         = "Error"
	colErrorMessage  = "Error Message"
)

// Load reads the ledger export at path. CSV and XLSX exports are supported,
// dispatched on the file extension.
func Load(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported ledger format %q", filepath.Ext(path))
	}
}

func loadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger is empty")
	}

	return rowsFromRecords(records)
}

func loadXLSX(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("ledger workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger sheet: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger is empty")
	}

	return rowsFromRecords(records)
}

// rowsFromRecords maps header-keyed records to Rows. Unknown columns are
// ignored so the export may carry extra bookkeeping fields.
func rowsFromRecords(records [][]string) ([]Row, error) {
	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[stripQuotes(name)] = i
	}

	for _, required := range []string{colInvoiceNumber, colPaymentNumber} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("ledger is missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return stripQuotes(record[i])
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		rows = append(rows, Row{
			InvoiceNumber: field(record, colInvoiceNumber),
			PaymentNumber: field(record, colPaymentNumber),
			PaymentMethod: field(record, colPaymentMethod),
			PaymentDate:   field(record, colPaymentDate),
			Amount:        field(record, colAmount),
			HasError:      strings.EqualFold(field(record, colError), "true"),
			ErrorMessage:  field(record, colErrorMessage),
		})
	}
	return rows, nil
}
