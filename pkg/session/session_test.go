package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billpay/pkg/browser"
)

func TestMonthOptions(t *testing.T) {
	now := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	options := MonthOptions(now, 12)

	assert.Len(t, options, 12)
	assert.Equal(t, "Aug 2026", options[0])
	assert.Equal(t, "Jul 2026", options[1])
	assert.Equal(t, "Jan 2026", options[7])
	assert.Equal(t, "Sep 2025", options[11])
}

func TestMonthOptionsYearBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	options := MonthOptions(now, 3)
	assert.Equal(t, []string{"Jan 2026", "Dec 2025", "Nov 2025"}, options)
}

func TestFatalWrapping(t *testing.T) {
	base := errors.New("boom")
	assert.False(t, IsFatal(base))
	assert.True(t, IsFatal(Fatal(base)))
	assert.Nil(t, Fatal(nil))

	// Wrapping twice keeps a single layer.
	once := Fatal(base)
	assert.Same(t, once, Fatal(once))

	// The cause stays reachable.
	wrapped := Fatal(browser.ErrTimeout)
	assert.ErrorIs(t, wrapped, browser.ErrTimeout)
}

func TestIsEnvironment(t *testing.T) {
	assert.True(t, isEnvironment(browser.ErrTimeout))
	assert.True(t, isEnvironment(browser.ErrNoSession))
	assert.False(t, isEnvironment(errors.New("row not found")))
}
