package intacct

import (
	"github.com/charmbracelet/log"

	"billpay/pkg/browser"
)

// Filters drives the grid's filter bar. Vendor filtering scopes row lookups
// to the invoice group being paid; clearing it is how the loop resynchronizes
// after every outcome.
type Filters struct {
	drv    browser.Driver
	grid   *Grid
	logger *log.Logger
}

func NewFilters(drv browser.Driver, grid *Grid, logger *log.Logger) *Filters {
	return &Filters{drv: drv, grid: grid, logger: logger}
}

// ApplySaved selects a saved filter set by its visible label and applies it.
func (f *Filters) ApplySaved(label string) error {
	if err := f.drv.Click(selSavedFilterToggle); err != nil {
		return err
	}
	if err := f.drv.Click(selSavedFilterOption(label)); err != nil {
		return err
	}
	if err := f.drv.Click(selApplyFilterButton); err != nil {
		return err
	}
	f.logger.Info("applied filter set", "filter", label)
	return f.grid.WaitReady()
}

// FilterVendor narrows the grid to a single vendor's bills.
func (f *Filters) FilterVendor(name string) error {
	if err := f.drv.Fill(selVendorFilter, name); err != nil {
		return err
	}
	if err := f.drv.Click(selApplyFilterButton); err != nil {
		return err
	}
	return f.grid.WaitReady()
}

// Clear removes the vendor filter and waits for the full grid to come back.
func (f *Filters) Clear() error {
	if err := f.drv.Fill(selVendorFilter, ""); err != nil {
		return err
	}
	if err := f.drv.Click(selApplyFilterButton); err != nil {
		return err
	}
	if err := f.grid.WaitReady(); err != nil {
		return err
	}
	f.logger.Debug("vendor filter cleared")
	return nil
}
