package browser

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodSession is a Session backed by a locally launched Chrome driven
// over DevTools protocol.
type RodSession struct {
	lnch    *launcher.Launcher
	browser *rod.Browser
	page    *rod.Page
	opts    Options
}

// Open launches Chrome and opens a single blank tab. The caller must
// Close the session on every exit path.
func Open(opts Options) (*RodSession, error) {
	opts.defaults()

	lnch := launcher.New().Headless(opts.Headless).Leakless(true)
	controlURL, err := lnch.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		lnch.Cleanup()
		return nil, fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		b.Close()
		lnch.Cleanup()
		return nil, fmt.Errorf("open tab: %w", err)
	}

	if opts.UserAgent != "" {
		err = page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: opts.UserAgent,
		})
		if err != nil {
			b.Close()
			lnch.Cleanup()
			return nil, fmt.Errorf("set user agent: %w", err)
		}
	}

	slog.Debug("browser session opened", "headless", opts.Headless)
	return &RodSession{lnch: lnch, browser: b, page: page, opts: opts}, nil
}

func (s *RodSession) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx).Timeout(s.opts.PageLoadTimeout)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for %s: %w", url, err)
	}
	s.settle(ctx)
	return nil
}

func (s *RodSession) FillField(ctx context.Context, selector, value string) error {
	el, err := s.page.Context(ctx).Timeout(s.opts.PageLoadTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	// clear whatever a previous query left in the field
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("select text in %s: %w", selector, err)
	}
	if err := el.Input(value); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

func (s *RodSession) Click(ctx context.Context, selector string) error {
	el, err := s.page.Context(ctx).Timeout(s.opts.PageLoadTimeout).Element(selector)
	if err != nil {
		return fmt.Errorf("find %s: %w", selector, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click %s: %w", selector, err)
	}
	s.settle(ctx)
	return nil
}

func (s *RodSession) Content(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("read page content: %w", err)
	}
	return html, nil
}

func (s *RodSession) Close() error {
	slog.Debug("closing browser session")
	err := s.browser.Close()
	s.lnch.Cleanup()
	return err
}

func (s *RodSession) settle(ctx context.Context) {
	select {
	case <-time.After(s.opts.SettleDelay):
	case <-ctx.Done():
	}
}
