package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// ConnectOptions locate the already-authenticated application tab inside a
// running browser exposed over the Chrome DevTools Protocol.
type ConnectOptions struct {
	// CDPAddress is the remote debugging endpoint, e.g. http://localhost:9222.
	CDPAddress string
	// URLSubstring selects the page to attach to.
	URLSubstring string
	// FrameSelector scopes all lookups to the application's document frame.
	FrameSelector string
}

// PlaywrightDriver drives the page through a Playwright connection to an
// externally launched browser. It never owns the browser: Close stops the
// Playwright driver process and leaves the session running.
type PlaywrightDriver struct {
	pw     *playwright.Playwright
	frame  playwright.FrameLocator
	logger *log.Logger
}

// Connect attaches to the running browser and scopes to the application
// frame. A missing endpoint or page is ErrNoSession; the environment cannot
// be recovered by retrying.
func Connect(opts ConnectOptions, logger *log.Logger) (*PlaywrightDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.ConnectOverCDP(opts.CDPAddress)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("%w: cannot reach %s: %v", ErrNoSession, opts.CDPAddress, err)
	}

	page, err := findPage(browser, opts.URLSubstring)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	logger.Info("attached to session", "url", page.URL())

	return &PlaywrightDriver{
		pw:     pw,
		frame:  page.FrameLocator(opts.FrameSelector),
		logger: logger,
	}, nil
}

func findPage(browser playwright.Browser, urlSubstring string) (playwright.Page, error) {
	contexts := browser.Contexts()
	if len(contexts) == 0 {
		return nil, fmt.Errorf("%w: browser has no contexts", ErrNoSession)
	}

	for _, ctx := range contexts {
		for _, page := range ctx.Pages() {
			if strings.Contains(page.URL(), urlSubstring) {
				return page, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: no open page matches %q", ErrNoSession, urlSubstring)
}

func (d *PlaywrightDriver) Close() error {
	return d.pw.Stop()
}

func (d *PlaywrightDriver) Click(selector string) error {
	return d.frame.Locator(selector).First().Click()
}

func (d *PlaywrightDriver) Fill(selector, value string) error {
	return d.frame.Locator(selector).First().Fill(value)
}

func (d *PlaywrightDriver) Check(selector string) error {
	return d.frame.Locator(selector).First().Check()
}

func (d *PlaywrightDriver) SelectByLabel(selector, label string) error {
	_, err := d.frame.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Labels: &[]string{label},
	})
	return err
}

func (d *PlaywrightDriver) SelectByValue(selector, value string) error {
	_, err := d.frame.Locator(selector).First().SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return err
}

func (d *PlaywrightDriver) InnerText(selector string) (string, error) {
	return d.frame.Locator(selector).First().InnerText()
}

func (d *PlaywrightDriver) Exists(selector string) (bool, error) {
	count, err := d.frame.Locator(selector).Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *PlaywrightDriver) WaitVisible(selector string, timeout time.Duration) error {
	err := d.frame.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err == nil {
		return nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return fmt.Errorf("%w: %s not visible after %s", ErrTimeout, selector, timeout)
	}
	return err
}
