package intacct

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"billpay/pkg/browser"
	"billpay/pkg/ledger"
	"billpay/pkg/money"
)

// ErrRowNotFound means the bills grid has no row for the invoice. That is a
// ledger/screen divergence (e.g. the bill was paid outside this tool), not an
// environment failure.
var ErrRowNotFound = errors.New("invoice not found in bills grid")

// Grid reads the open-bills list. Row indices are transient cursors: every
// lookup probes the live grid from zero, because filtering, checking and
// saving all renumber the remaining rows.
type Grid struct {
	drv    browser.Driver
	logger *log.Logger

	// LoadTimeout bounds the page-ready wait; expiry is fatal to the run.
	LoadTimeout time.Duration
	// ProbeTimeout bounds single-cell visibility waits.
	ProbeTimeout time.Duration
}

func NewGrid(drv browser.Driver, logger *log.Logger) *Grid {
	return &Grid{
		drv:          drv,
		logger:       logger,
		LoadTimeout:  30 * time.Second,
		ProbeTimeout: 10 * time.Second,
	}
}

// WaitReady blocks until the grid has rendered its first row.
func (g *Grid) WaitReady() error {
	return g.drv.WaitVisible(selRowVendor(0), g.LoadTimeout)
}

// InvoiceAt returns the invoice number rendered at index. ok is false when
// the grid has no row there, which signals end of list rather than an error.
func (g *Grid) InvoiceAt(index int) (invoice string, ok bool, err error) {
	if err := g.WaitReady(); err != nil {
		return "", false, err
	}

	selector := selRowInvoice(index)
	exists, err := g.drv.Exists(selector)
	if err != nil {
		return "", false, err
	}
	if !exists {
		return "", false, nil
	}

	if err := g.drv.WaitVisible(selector, g.ProbeTimeout); err != nil {
		return "", false, err
	}
	text, err := g.drv.InnerText(selector)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// VendorAt returns the vendor name rendered at index.
func (g *Grid) VendorAt(index int) (string, error) {
	return g.drv.InnerText(selRowVendor(index))
}

// FindRowIndex maps an invoice number to its current index with a fresh
// linear probe. The result must not be cached across any grid mutation.
func (g *Grid) FindRowIndex(invoice string) (int, error) {
	count, err := g.rowCount()
	if err != nil {
		return 0, err
	}

	for index := 0; index < count; index++ {
		text, err := g.drv.InnerText(selRowInvoice(index))
		if err != nil {
			return 0, err
		}
		if ledger.SameInvoice(text, invoice) {
			return index, nil
		}
	}
	return 0, fmt.Errorf("%w: invoice %s not in %d rows", ErrRowNotFound, invoice, count)
}

func (g *Grid) rowCount() (int, error) {
	count := 0
	for {
		exists, err := g.drv.Exists(selRowInvoice(count))
		if err != nil {
			return 0, err
		}
		if !exists {
			return count, nil
		}
		count++
	}
}

// CheckInvoice locates the invoice's current row and marks it selected.
func (g *Grid) CheckInvoice(invoice string) error {
	index, err := g.FindRowIndex(invoice)
	if err != nil {
		return err
	}
	g.logger.Debug("found invoice row", "invoice", invoice, "index", index)
	return g.drv.Check(selRowCheckbox(index))
}

// SelectedTotal reads the footer total for the currently checked rows.
func (g *Grid) SelectedTotal() (decimal.Decimal, error) {
	text, err := g.drv.InnerText(selSelectedTotal)
	if err != nil {
		return decimal.Zero, err
	}
	total, err := money.Parse(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unreadable selected total: %w", err)
	}
	return total, nil
}
