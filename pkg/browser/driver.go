package browser

import (
	"errors"
	"time"
)

var (
	// ErrTimeout wraps any bounded wait that expired. Callers treat it as
	// evidence the page is unresponsive or has changed shape.
	ErrTimeout = errors.New("wait timed out")

	// ErrNoSession means no attachable page was found in the running browser.
	ErrNoSession = errors.New("no attachable session found")
)

// Driver is the capability surface the automation needs from a rendered
// page. Implementations scope every selector to the document frame that
// hosts the application. Nothing else about the engine is assumed beyond
// these verbs and a bounded-wait failure mode.
type Driver interface {
	Click(selector string) error
	Fill(selector, value string) error
	Check(selector string) error
	SelectByLabel(selector, label string) error
	SelectByValue(selector, value string) error
	InnerText(selector string) (string, error)
	Exists(selector string) (bool, error)
	WaitVisible(selector string, timeout time.Duration) error
}
