package ledger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	content := `Invoice number,Payment number,Payment method,Payment date,Amount_1,Error,Error Message
"0042","P1",Check,2026-08-15,"$100.00",,
10,P2,Credit Card,2026-08-16,50.00,true,bad amount
77,,Check,2026-08-17,25.00,,
`
	path := filepath.Join(t.TempDir(), "bills.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.InvoiceNumber != "0042" || first.PaymentNumber != "P1" {
		t.Errorf("quotes not stripped: %+v", first)
	}
	if first.Amount != "$100.00" {
		t.Errorf("amount = %q, want raw value with currency symbol", first.Amount)
	}
	if first.HasError {
		t.Errorf("row 0 should not be flagged")
	}

	if !rows[1].HasError || rows[1].ErrorMessage != "bad amount" {
		t.Errorf("error flag not parsed: %+v", rows[1])
	}
	if rows[2].PaymentNumber != "" {
		t.Errorf("blank payment number not preserved: %+v", rows[2])
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bills.csv")
	if err := os.WriteFile(path, []byte("Invoice number\n42\n"), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for ledger without payment number column")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("bills.xls"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
