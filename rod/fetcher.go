// Package rod provides a headless Chrome implementation of insight.Fetcher
// for competitor pages that render their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/insight"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout is the default timeout for a page render.
// Kept consistent with http.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = insight.DefaultRequestTimeout

// Ensure Fetcher implements insight.Fetcher at compile time.
var _ insight.Fetcher = (*Fetcher)(nil)

// serializeJS returns the rendered document with open shadow roots inlined
// as declarative shadow DOM templates, so web component content reaches
// the extractor.
const serializeJS = `() => {
	const inline = (root) => {
		for (const el of root.querySelectorAll('*')) {
			if (el.shadowRoot) {
				inline(el.shadowRoot);
				const tpl = document.createElement('template');
				tpl.setAttribute('shadowrootmode', 'open');
				tpl.innerHTML = el.shadowRoot.innerHTML;
				el.prepend(tpl);
			}
		}
	};
	inline(document);
	const doctype = document.doctype ? '<!DOCTYPE ' + document.doctype.name + '>' : '';
	return doctype + document.documentElement.outerHTML;
}`

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	userAgent string

	closeOnce sync.Once
	closed    atomic.Bool
	closeErr  error
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for rendering a single page.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent for every page.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// LauncherPID returns the process ID of the launched browser.
func (f *Fetcher) LauncherPID() int {
	return f.launcher.PID()
}

// Fetch navigates to the URL and returns the rendered HTML.
// Navigation failures, timeouts and a non-2xx document response return
// EFETCH.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", insight.Errorf(insight.EINVALID, "fetcher is closed")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", insight.Errorf(insight.EINVALID, "URL required")
	}
	if err := ctx.Err(); err != nil {
		return "", fetchError(url, err)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", insight.Errorf(insight.EFETCH, "opening page for %s: %v", url, err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", insight.Errorf(insight.EFETCH, "setting user agent for %s: %v", url, err)
		}
	}

	var status int
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument {
			return false
		}
		status = e.Response.Status
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", fetchError(url, err)
	}
	waitResponse()
	if err := ctx.Err(); err != nil {
		return "", fetchError(url, err)
	}
	if status < 200 || status > 299 {
		return "", insight.Errorf(insight.EFETCH, "HTTP %d for %s", status, url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(url, err)
	}

	res, err := page.Eval(serializeJS)
	if err != nil {
		return "", fetchError(url, err)
	}
	return res.Value.Str(), nil
}

// Close releases browser resources and kills the browser process.
// Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.closeOnce.Do(func() {
		f.closed.Store(true)
		f.closeErr = f.browser.Close()
		f.launcher.Kill()
	})
	return f.closeErr
}

func fetchError(url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return insight.Errorf(insight.EFETCH, "timeout fetching %s", url)
	}
	if errors.Is(err, context.Canceled) {
		return insight.Errorf(insight.EFETCH, "fetch of %s canceled", url)
	}
	return insight.Errorf(insight.EFETCH, "rendering %s failed: %v", url, err)
}
