package session

import "time"

// Config is fixed at startup from the operator's answers.
type Config struct {
	Unattended bool
	BatchSize  int
	FilterSet  string
	// ReprocessErrors clears the audit error partition before the run, making
	// previously errored invoices eligible again.
	ReprocessErrors bool
}

// State is the loop's mutable state, threaded explicitly rather than held in
// globals. BatchSize can be renegotiated at each unattended checkpoint.
type State struct {
	Unattended bool
	BatchSize  int
	BatchCount int
}

// MonthOptions lists the last n months as saved-filter labels, newest first,
// in the "Jan 2006" form the filter dropdown uses.
func MonthOptions(now time.Time, n int) []string {
	options := make([]string, 0, n)
	for i := 0; i < n; i++ {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		options = append(options, month.Format("Jan 2006"))
	}
	return options
}
