// Package browser drives a real Chrome tab for the portals whose search
// forms only materialize results through script. Monitors depend on the
// Session interface, not on the engine behind it.
package browser

import (
	"context"
	"time"
)

// Session is the narrow surface the monitors need from a live browser
// tab. A Session is stateful and not safe for concurrent use: one
// monitor run owns it from Open to Close.
type Session interface {
	Navigate(ctx context.Context, url string) error
	FillField(ctx context.Context, selector, value string) error
	Click(ctx context.Context, selector string) error
	Content(ctx context.Context) (string, error)
	Close() error
}

type Options struct {
	// Headless hides the browser window. The RCL search form behaves
	// differently under headless detection, so tag/search monitors run
	// headful by default.
	Headless bool

	UserAgent string

	// PageLoadTimeout bounds each navigation. Default: 30s.
	PageLoadTimeout time.Duration

	// SettleDelay is a fixed pause after load for result scripts to
	// finish rendering. Default: 2s.
	SettleDelay time.Duration
}

func (o *Options) defaults() {
	if o.PageLoadTimeout <= 0 {
		o.PageLoadTimeout = 30 * time.Second
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = 2 * time.Second
	}
}
