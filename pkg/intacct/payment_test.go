package intacct

import (
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testForm(d *fakeDriver) *Form {
	f := NewForm(d, testGrid(d), DefaultProfile(), log.New(os.Stderr))
	f.SettleDelay = 0
	f.SubSelectDelay = 0
	return f
}

func autoSave() (bool, error)   { return true, nil }
func autoCancel() (bool, error) { return false, nil }

func actionsJoined(d *fakeDriver) string {
	return strings.Join(d.actions, "\n")
}

func TestSubmitCheckPaymentSaves(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"42", "Globex"}})
	d.texts[selSelectedTotal] = "100.00"
	f := testForm(d)

	outcome, err := f.Submit(PaymentRequest{
		Method:         "Check",
		Date:           "2026-08-15",
		ExpectedAmount: "$100.00",
		PaymentNumber:  "P1",
		Invoices:       []string{"42"},
	}, autoSave)

	require.NoError(t, err)
	assert.Equal(t, Saved, outcome)

	joined := actionsJoined(d)
	assert.Contains(t, joined, "selectValue "+selPaymentMethod+" EFT")
	assert.Contains(t, joined, "selectLabel "+selBankSelect+" CK_Operating x4047--Truist")
	assert.Contains(t, joined, "fill "+selPaymentDate+" 08/15/2026")
	assert.Contains(t, joined, "check "+selRowCheckbox(0))
	assert.Contains(t, joined, "click "+selPayNow)
	assert.Contains(t, joined, "fill "+selMemoField+" P1")
	assert.Contains(t, joined, "click "+selSaveButton)
}

func TestSubmitCreditCardUsesCardFlow(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"42", "Globex"}})
	d.texts[selSelectedTotal] = "50.00"
	f := testForm(d)

	_, err := f.Submit(PaymentRequest{
		Method:         "Credit Card",
		Date:           "08/15/2026",
		ExpectedAmount: "50.00",
		PaymentNumber:  "P2",
		Invoices:       []string{"42"},
	}, autoSave)

	require.NoError(t, err)
	joined := actionsJoined(d)
	assert.Contains(t, joined, "selectValue "+selPaymentMethod+" Credit Card")
	assert.Contains(t, joined, "selectLabel "+selCardSelect+" CC_Truist")
	assert.NotContains(t, joined, selBankSelect)
}

func TestSubmitUnhandledMethodSkipsSelection(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"42", "Globex"}})
	d.texts[selSelectedTotal] = "50.00"
	f := testForm(d)

	outcome, err := f.Submit(PaymentRequest{
		Method:         "Wire",
		ExpectedAmount: "50.00",
		PaymentNumber:  "P3",
		Invoices:       []string{"42"},
	}, autoSave)

	require.NoError(t, err)
	assert.Equal(t, Saved, outcome)
	assert.NotContains(t, actionsJoined(d), "selectValue "+selPaymentMethod)
}

func TestSubmitAmountMismatchAbortsBeforeSave(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"42", "Globex"}})
	d.texts[selSelectedTotal] = "100.00"
	f := testForm(d)

	_, err := f.Submit(PaymentRequest{
		Method:         "Check",
		Date:           "2026-08-15",
		ExpectedAmount: "$100.01",
		PaymentNumber:  "P1",
		Invoices:       []string{"42"},
	}, autoSave)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match expected amount")
	joined := actionsJoined(d)
	assert.NotContains(t, joined, "click "+selPayNow)
	assert.NotContains(t, joined, "click "+selSaveButton)
}

func TestSubmitSplitPaymentChecksWholeGroup(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"5", "Globex"}, {"6", "Globex"}})
	d.texts[selSelectedTotal] = "150.00"
	f := testForm(d)

	outcome, err := f.Submit(PaymentRequest{
		Method:         "Bank Draft",
		Date:           "2026-08-15",
		ExpectedAmount: "150.00",
		PaymentNumber:  "P9",
		Invoices:       []string{"5", "6", "5"},
	}, autoSave)

	require.NoError(t, err)
	assert.Equal(t, Saved, outcome)

	joined := actionsJoined(d)
	assert.Contains(t, joined, "check "+selRowCheckbox(0))
	assert.Contains(t, joined, "check "+selRowCheckbox(1))
	// Duplicate group entry must not re-check.
	assert.Equal(t, 1, strings.Count(joined, "check "+selRowCheckbox(0)+" "))
}

func TestSubmitGroupInvoiceMissingAborts(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"5", "Globex"}})
	d.texts[selSelectedTotal] = "150.00"
	f := testForm(d)

	_, err := f.Submit(PaymentRequest{
		Method:         "Check",
		Date:           "2026-08-15",
		ExpectedAmount: "150.00",
		PaymentNumber:  "P9",
		Invoices:       []string{"5", "6"},
	}, autoSave)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowNotFound)
	assert.NotContains(t, actionsJoined(d), "click "+selPayNow)
}

func TestSubmitCancelled(t *testing.T) {
	d := newFakeDriver()
	d.setRows([][2]string{{"42", "Globex"}})
	d.texts[selSelectedTotal] = "100.00"
	f := testForm(d)

	outcome, err := f.Submit(PaymentRequest{
		Method:         "Check",
		Date:           "2026-08-15",
		ExpectedAmount: "100.00",
		PaymentNumber:  "P1",
		Invoices:       []string{"42"},
	}, autoCancel)

	require.NoError(t, err)
	assert.Equal(t, Cancelled, outcome)
	joined := actionsJoined(d)
	assert.Contains(t, joined, "click "+selCancelButton)
	assert.NotContains(t, joined, "click "+selSaveButton)
}

func TestFormatDate(t *testing.T) {
	for _, in := range []string{"2026-08-05", "08/05/2026", "8/5/2026", "2026/08/05"} {
		got, err := formatDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, "08/05/2026", got)
	}
	_, err := formatDate("next tuesday")
	assert.Error(t, err)
}
