package intacct

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"billpay/pkg/browser"
	"billpay/pkg/money"
)

// Outcome of a payment form pass.
type Outcome int

const (
	Saved Outcome = iota
	Cancelled
)

func (o Outcome) String() string {
	if o == Cancelled {
		return "cancelled"
	}
	return "saved"
}

// ConfirmFunc decides the final Save-or-Cancel step. true means save.
type ConfirmFunc func() (bool, error)

// PaymentRequest describes one payment spanning one or more invoices of the
// same vendor.
type PaymentRequest struct {
	Method         string
	Date           string
	ExpectedAmount string
	PaymentNumber  string
	Invoices       []string
}

// Form sequences the payment submission: method, bank or card, date, invoice
// checkboxes, amount verification, Pay now, memo, confirm. The sequence is
// linear; any step mismatch aborts the invoice before anything is saved,
// except the confirm step which may still cancel.
type Form struct {
	drv     browser.Driver
	grid    *Grid
	profile Profile
	logger  *log.Logger

	// SettleDelay is the pause before Pay now and before Save/Cancel, giving
	// the page time to recompute totals.
	SettleDelay time.Duration
	// SubSelectDelay is the pause before opening the bank/card dropdown after
	// a method change re-renders the form.
	SubSelectDelay time.Duration
}

func NewForm(drv browser.Driver, grid *Grid, profile Profile, logger *log.Logger) *Form {
	return &Form{
		drv:            drv,
		grid:           grid,
		profile:        profile,
		logger:         logger,
		SettleDelay:    2 * time.Second,
		SubSelectDelay: time.Second,
	}
}

// Submit runs the form end to end and returns whether the payment was saved
// or cancelled. The remote UI is not rolled back on error; callers clear the
// vendor filter and re-probe to resynchronize.
func (f *Form) Submit(req PaymentRequest, confirm ConfirmFunc) (Outcome, error) {
	if err := f.selectMethod(req.Method, req.Date); err != nil {
		return Cancelled, err
	}

	checked := make(map[string]bool, len(req.Invoices))
	for _, invoice := range req.Invoices {
		if checked[invoice] {
			continue
		}
		if err := f.grid.CheckInvoice(invoice); err != nil {
			return Cancelled, err
		}
		checked[invoice] = true
	}
	f.logger.Info("checked invoices", "count", len(checked))

	if err := f.verifyAmount(req.ExpectedAmount); err != nil {
		return Cancelled, err
	}

	time.Sleep(f.SettleDelay)
	if err := f.drv.Click(selPayNow); err != nil {
		return Cancelled, err
	}

	if err := f.drv.WaitVisible(selMemoField, f.grid.ProbeTimeout); err != nil {
		return Cancelled, err
	}
	if err := f.drv.Fill(selMemoField, req.PaymentNumber); err != nil {
		return Cancelled, err
	}
	f.logger.Debug("entered payment number in memo", "payment", req.PaymentNumber)

	save, err := confirm()
	if err != nil {
		return Cancelled, err
	}

	time.Sleep(f.SettleDelay)
	if !save {
		if err := f.drv.Click(selCancelButton); err != nil {
			return Cancelled, err
		}
		f.logger.Info("payment cancelled", "payment", req.PaymentNumber)
		return Cancelled, nil
	}

	if err := f.drv.Click(selSaveButton); err != nil {
		return Cancelled, err
	}
	f.logger.Info("payment saved", "payment", req.PaymentNumber)
	return Saved, nil
}

// selectMethod maps the ledger's payment method onto the form's flows:
// check and bank draft pay by EFT, credit card by Credit Card. Anything else
// is left untouched with a warning, matching how the page treats methods it
// cannot pay.
func (f *Form) selectMethod(method, date string) error {
	var option string
	switch strings.ToLower(method) {
	case "check", "bank draft":
		option = "EFT"
	case "credit card":
		option = "Credit Card"
	default:
		f.logger.Warn("unhandled payment method, no selection made", "method", method)
		return nil
	}

	if err := f.drv.SelectByValue(selPaymentMethod, option); err != nil {
		return fmt.Errorf("failed to select payment method %s: %w", option, err)
	}
	if err := f.grid.WaitReady(); err != nil {
		return err
	}

	time.Sleep(f.SubSelectDelay)
	switch option {
	case "EFT":
		if err := f.selectEntity(selBankToggle, selBankSelect, f.profile.BankLabel); err != nil {
			return fmt.Errorf("failed to select bank: %w", err)
		}
	case "Credit Card":
		if err := f.selectEntity(selCardToggle, selCardSelect, f.profile.CreditCardLabel); err != nil {
			return fmt.Errorf("failed to select credit card: %w", err)
		}
	}

	if err := f.grid.WaitReady(); err != nil {
		return err
	}
	return f.setDate(date)
}

func (f *Form) selectEntity(toggle, selector, label string) error {
	if err := f.drv.Click(toggle); err != nil {
		return err
	}
	if err := f.drv.WaitVisible(selector, f.grid.ProbeTimeout); err != nil {
		return err
	}
	return f.drv.SelectByLabel(selector, label)
}

func (f *Form) setDate(date string) error {
	formatted, err := formatDate(date)
	if err != nil {
		return err
	}
	if err := f.drv.Fill(selPaymentDate, ""); err != nil {
		return err
	}
	if err := f.drv.Fill(selPaymentDate, formatted); err != nil {
		return err
	}
	f.logger.Debug("set payment date", "date", formatted)
	return nil
}

// verifyAmount compares the footer total for the checked rows against the
// ledger amount. Equality is exact; a mismatch aborts before any save.
func (f *Form) verifyAmount(expected string) error {
	selected, err := f.grid.SelectedTotal()
	if err != nil {
		return err
	}
	want, err := money.Parse(expected)
	if err != nil {
		return fmt.Errorf("unreadable expected amount: %w", err)
	}
	if !money.Equal(selected, want) {
		return fmt.Errorf("selected amount (%s) does not match expected amount (%s)", selected, want)
	}
	f.logger.Debug("selected amount matches", "amount", selected)
	return nil
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006", "2006/01/02"}

// formatDate renders a ledger date as MM/DD/YYYY for the date input.
func formatDate(date string) (string, error) {
	trimmed := strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("01/02/2006"), nil
		}
	}
	return "", fmt.Errorf("unrecognized payment date %q", date)
}
