package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"billpay/pkg/audit"
	"billpay/pkg/browser"
	"billpay/pkg/intacct"
	"billpay/pkg/ledger"
	"billpay/pkg/prompt"
)

// isEnvironment reports whether err indicates the external page or session is
// gone, which must stop the run rather than be recorded per invoice.
func isEnvironment(err error) bool {
	return errors.Is(err, browser.ErrTimeout) || errors.Is(err, browser.ErrNoSession)
}

// Controller owns the top-level loop: walk the grid, consult the audit trail,
// classify against the ledger, drive the payment form, record the outcome.
// Every per-invoice failure is converted to an audit record and swallowed;
// only environment-fatal conditions escape Run.
type Controller struct {
	grid     *intacct.Grid
	filters  *intacct.Filters
	form     *intacct.Form
	matcher  *ledger.Matcher
	audit    *audit.Log
	prompter prompt.Prompter
	logger   *log.Logger
}

func New(grid *intacct.Grid, filters *intacct.Filters, form *intacct.Form, matcher *ledger.Matcher, auditLog *audit.Log, prompter prompt.Prompter, logger *log.Logger) *Controller {
	return &Controller{
		grid:     grid,
		filters:  filters,
		form:     form,
		matcher:  matcher,
		audit:    auditLog,
		prompter: prompter,
		logger:   logger,
	}
}

// Setup asks the startup questions and prepares the audit trail. It runs
// before the browser attach so the operator answers everything up front.
func Setup(prompter prompt.Prompter, auditLog *audit.Log, defaultBatchSize int) (Config, error) {
	cfg := Config{BatchSize: defaultBatchSize}

	reprocess, err := prompter.YesNo("Reprocess invoices in the error file?", false)
	if err != nil {
		return cfg, err
	}
	cfg.ReprocessErrors = reprocess
	if reprocess {
		if err := auditLog.ResetErrors(); err != nil {
			return cfg, Fatal(err)
		}
	}

	cfg.Unattended, err = prompter.YesNo("Run in unattended mode?", true)
	if err != nil {
		return cfg, err
	}
	if cfg.Unattended {
		cfg.BatchSize, err = prompter.Int("Number of invoices to process in unattended mode", defaultBatchSize)
		if err != nil {
			return cfg, err
		}
	}

	applyFilter, err := prompter.YesNo("Apply a saved filter set?", true)
	if err != nil {
		return cfg, err
	}
	if applyFilter {
		options := MonthOptions(time.Now(), 12)
		choice, err := prompter.Choose("Select a filter set:", options)
		if err != nil {
			return cfg, err
		}
		cfg.FilterSet = options[choice]
	}

	return cfg, nil
}

// Run processes the grid until it is empty or the operator stops. A nil
// return is a normal completion or a user-initiated stop; a FatalError means
// the environment is gone.
func (c *Controller) Run(cfg Config) error {
	if err := c.grid.WaitReady(); err != nil {
		return Fatal(err)
	}

	if cfg.FilterSet != "" {
		if err := c.filters.ApplySaved(cfg.FilterSet); err != nil {
			return Fatal(err)
		}
	}

	state := &State{Unattended: cfg.Unattended, BatchSize: cfg.BatchSize}
	rowIndex := 0
	skipped := 0

	for {
		invoice, ok, err := c.grid.InvoiceAt(rowIndex)
		if err != nil {
			return Fatal(err)
		}
		if !ok {
			c.logger.Info("no more invoices to process")
			return nil
		}

		skipSet, err := c.audit.SkipSet()
		if err != nil {
			return Fatal(err)
		}
		if _, seen := skipSet[ledger.Normalize(invoice)]; seen {
			rowIndex++
			skipped++
			continue
		}
		if skipped > 0 {
			c.logger.Info("skipped already-recorded invoices", "count", skipped)
			skipped = 0
		}

		if !state.Unattended {
			proceed, err := c.prompter.YesNo(fmt.Sprintf("Process invoice %s?", invoice), true)
			if err != nil {
				return err
			}
			if !proceed {
				c.clearFilter()
				c.logger.Info("user chose to stop")
				return nil
			}
		}

		nextIndex, stop, err := c.processInvoice(rowIndex, invoice, state)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
		rowIndex = nextIndex
	}
}

// processInvoice handles one grid row end to end and returns the cursor for
// the next iteration. Matcher skips and errors leave the cursor in place (the
// new audit record advances past the row next iteration); form failures
// advance it; a completed form resets it to zero because the grid re-renders.
func (c *Controller) processInvoice(rowIndex int, invoice string, state *State) (nextIndex int, stop bool, err error) {
	c.logger.Info("processing invoice", "invoice", invoice)

	vendor, err := c.grid.VendorAt(rowIndex)
	if err != nil {
		return 0, false, Fatal(err)
	}
	if err := c.filters.FilterVendor(vendor); err != nil {
		return 0, false, Fatal(err)
	}
	c.logger.Info("vendor filter applied", "vendor", vendor)

	result := c.matcher.Match(invoice)
	switch result.Status {
	case ledger.Skip:
		c.logger.Warn("skipping invoice", "invoice", invoice, "reason", result.Reason)
		if err := c.recordFailure(invoice, result.PaymentNumber, audit.StatusSkipped, result.Reason); err != nil {
			return 0, false, err
		}
		c.clearFilter()
		return rowIndex, false, nil

	case ledger.Error:
		c.logger.Error("ledger flags invoice", "invoice", invoice, "reason", result.Reason)
		if err := c.recordFailure(invoice, result.PaymentNumber, audit.StatusError, result.Reason); err != nil {
			return 0, false, err
		}
		c.clearFilter()
		return rowIndex, false, nil
	}

	first := result.Group[0]
	invoices := make([]string, 0, len(result.Group))
	for _, row := range result.Group {
		invoices = append(invoices, row.InvoiceNumber)
	}

	outcome, err := c.form.Submit(intacct.PaymentRequest{
		Method:         first.PaymentMethod,
		Date:           first.PaymentDate,
		ExpectedAmount: first.Amount,
		PaymentNumber:  result.PaymentNumber,
		Invoices:       invoices,
	}, c.confirmFunc(state, invoice, result.PaymentNumber))

	if err != nil {
		if IsFatal(err) || isEnvironment(err) {
			return 0, false, Fatal(err)
		}
		c.logger.Error("payment attempt failed", "invoice", invoice, "error", err)
		if err := c.recordFailure(invoice, result.PaymentNumber, audit.StatusError, err.Error()); err != nil {
			return 0, false, err
		}
		c.clearFilter()
		return rowIndex + 1, false, nil
	}

	if outcome == intacct.Saved {
		if err := c.audit.ResolveIntent(invoice); err != nil {
			return 0, false, Fatal(err)
		}
		if err := c.audit.AppendSuccess(invoice, result.PaymentNumber); err != nil {
			return 0, false, Fatal(err)
		}
		c.logger.Info("successfully processed invoice", "invoice", invoice, "payment", result.PaymentNumber)

		stop, err := c.checkpoint(state)
		if err != nil || stop {
			c.clearFilter()
			return 0, stop, err
		}
	} else {
		if err := c.audit.ResolveIntent(invoice); err != nil {
			return 0, false, Fatal(err)
		}
		if err := c.recordFailure(invoice, result.PaymentNumber, audit.StatusSkipped, "User cancelled the save operation"); err != nil {
			return 0, false, err
		}
	}

	c.clearFilter()
	return 0, false, nil
}

// confirmFunc builds the form's final-step decision. The intent record is
// written immediately before a save so a crash between the on-screen Save and
// the success append leaves the invoice skipped, not silently re-payable.
func (c *Controller) confirmFunc(state *State, invoice, paymentNumber string) intacct.ConfirmFunc {
	return func() (bool, error) {
		save := true
		if !state.Unattended {
			var err error
			save, err = c.prompter.YesNo("Ready to save?", true)
			if err != nil {
				return false, err
			}
		}
		if save {
			rec := audit.Record{InvoiceNumber: invoice, PaymentNumber: paymentNumber, Status: audit.StatusIntent, Message: "Save in progress"}
			if err := c.audit.AppendFailure(rec); err != nil {
				return false, Fatal(err)
			}
		}
		return save, nil
	}
}

// checkpoint enforces the unattended batch cap: after BatchSize saves the
// loop pauses for a manual go/no-go and a fresh batch size.
func (c *Controller) checkpoint(state *State) (stop bool, err error) {
	if !state.Unattended {
		return false, nil
	}
	state.BatchCount++
	if state.BatchCount < state.BatchSize {
		return false, nil
	}

	c.logger.Info("unattended batch cap reached", "processed", state.BatchCount)
	c.clearFilter()

	cont, err := c.prompter.YesNo("Continue processing?", true)
	if err != nil {
		return false, err
	}
	if !cont {
		c.logger.Info("user chose to stop")
		return true, nil
	}

	state.BatchSize, err = c.prompter.Int("Number of invoices to process in unattended mode", state.BatchSize)
	if err != nil {
		return false, err
	}
	state.BatchCount = 0
	return false, nil
}

func (c *Controller) recordFailure(invoice, paymentNumber string, status audit.Status, message string) error {
	err := c.audit.AppendFailure(audit.Record{
		InvoiceNumber: invoice,
		PaymentNumber: paymentNumber,
		Status:        status,
		Message:       message,
	})
	if err != nil {
		return Fatal(err)
	}
	return nil
}

// clearFilter is best effort: a failed clear is logged and the next lookup
// resynchronizes from whatever state the page is in.
func (c *Controller) clearFilter() {
	if err := c.filters.Clear(); err != nil {
		c.logger.Warn("failed to clear vendor filter", "error", err)
	}
}
