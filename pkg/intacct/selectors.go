package intacct

import "fmt"

// Element ids on the Pay Bills page. Grid cells are addressed positionally;
// the index is only valid until the next filter, check or save re-renders the
// list.
const (
	selPaymentMethod = "#_obj__PAYMENTMETHOD_D"
	selBankToggle    = "#span__obj__FINANCIALENTITY"
	selBankSelect    = "#_c_obj__FINANCIALENTITYsel"
	selCardToggle    = "#span__obj__CREDITCARD"
	selCardSelect    = "#_c_obj__CREDITCARDsel"
	selPaymentDate   = "#_obj__WHENPAID"
	selSelectedTotal = `#tfooter__obj__PAYABLES .grid_total[id$="-_obj__PAYMENTAMOUNT"]`

	selVendorFilter      = "#_obj__VENDORIDRANGESTART_D"
	selApplyFilterButton = `button:has-text("Apply filter")`
	selSavedFilterToggle = "#span__obj__ADVANCEDFILTER"

	selPayNow       = "#paynowid"
	selMemoField    = "#_obj__MOREDETAILSPAGE-_obj__MOREDETAILS_0_-_obj__DESCRIPTION"
	selSaveButton   = `button:has-text("Save")`
	selCancelButton = `button:has-text("Cancel")`
)

func selRowInvoice(index int) string {
	return fmt.Sprintf("#_obj__PAYABLES_%d_-_obj__RECORDID", index)
}

func selRowVendor(index int) string {
	return fmt.Sprintf("#_obj__PAYABLES_%d_-_obj__VENDORNAME", index)
}

func selRowCheckbox(index int) string {
	return fmt.Sprintf("#_obj__PAYABLES_%d_-_obj__SELECTED", index)
}

func selSavedFilterOption(label string) string {
	return fmt.Sprintf(`#_c_obj__ADVANCEDFILTERsel option:has-text("%s")`, label)
}
