package http

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/google/uuid"
	"github.com/ysmood/gson"

	"github.com/oshokin/reqrelay/internal/logger"
	"github.com/oshokin/reqrelay/internal/relay"
	"github.com/oshokin/reqrelay/internal/utils"
)

// dispatchScript runs fetch() in the page and parks the Response under id
// so the body can be read by a later call.
const dispatchScript = `async (id, method, url, headers) => {
	const store = (window.__reqrelay = window.__reqrelay || {});
	try {
		const requestHeaders = new Headers();
		for (const [name, value] of headers) {
			requestHeaders.append(name, value);
		}
		const response = await fetch(url, { method, headers: requestHeaders });
		store[id] = response;
		return { ok: true, status: response.status, statusText: response.statusText };
	} catch (e) {
		return { ok: false, error: String(e) };
	}
}`

// textScript reads and releases a parked Response.
const textScript = `async (id) => {
	const store = window.__reqrelay || {};
	const response = store[id];
	delete store[id];
	if (!response) {
		return { ok: false, error: "response is no longer available" };
	}
	try {
		return { ok: true, text: await response.text() };
	} catch (e) {
		return { ok: false, error: String(e) };
	}
}`

// Browser backend errors.
var (
	// ErrBrowserFetch indicates that fetch() rejected inside the page.
	ErrBrowserFetch = errors.New("fetch failed in browser")
	// ErrBrowserClosed indicates that the transport was used after Close.
	ErrBrowserClosed = errors.New("browser transport is closed")
)

// BrowserOptions configures a BrowserTransport.
type BrowserOptions struct {
	// Headless hides the browser window.
	Headless bool
	// Bin is the Chrome binary; empty means the system Chrome or a downloaded Chromium.
	Bin string
	// Origin is the page fetch() calls are issued from.
	Origin string
}

// BrowserTransport dispatches relay requests through fetch() in a stealth browser page.
type BrowserTransport struct {
	mu      sync.RWMutex
	browser *rod.Browser
	page    *rod.Page
	// tempDir is the throwaway profile directory.
	tempDir string
}

// NewBrowserTransport launches a browser and opens the origin page.
// Any launch failure is reported as relay.ErrHostUnavailable.
func NewBrowserTransport(ctx context.Context, opts BrowserOptions) (*BrowserTransport, error) {
	tempDir, err := os.MkdirTemp("", browserProfilePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create browser profile directory: %v", relay.ErrHostUnavailable, err)
	}

	t := &BrowserTransport{tempDir: tempDir}

	if err = t.launch(ctx, opts); err != nil {
		t.cleanup(ctx)

		return nil, fmt.Errorf("%w: %v", relay.ErrHostUnavailable, err)
	}

	return t, nil
}

func (t *BrowserTransport) launch(ctx context.Context, opts BrowserOptions) error {
	browserLauncher := launcher.New().
		Context(ctx).
		Headless(opts.Headless).
		UserDataDir(t.tempDir)

	bin := opts.Bin
	if bin == "" {
		if chromePath, exists := launcher.LookPath(); exists {
			bin = chromePath
		}
	}

	if bin != "" {
		logger.Debugf(ctx, "Using Chrome installation at: %s", bin)

		browserLauncher = browserLauncher.Bin(bin)
	} else {
		logger.Debug(ctx, "System Chrome not found, downloading Chromium")
	}

	controlURL, err := browserLauncher.Launch()
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	logger.Debugf(ctx, "Browser launched at: %s", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if logger.IsDebugLevel() {
		browser = browser.Trace(true)
	}

	if err = browser.Connect(); err != nil {
		return fmt.Errorf("failed to connect to browser: %w", err)
	}

	t.browser = browser

	page, err := stealth.Page(browser)
	if err != nil {
		return fmt.Errorf("failed to open page: %w", err)
	}

	if err = page.Context(ctx).Navigate(opts.Origin); err != nil {
		return fmt.Errorf("failed to open %s: %w", opts.Origin, err)
	}

	if err = page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", opts.Origin, err)
	}

	t.page = page

	logger.Debugf(ctx, "Browser transport ready at origin %s", opts.Origin)

	return nil
}

// Dispatch runs fetch() in the page and returns once the response headers arrive.
func (t *BrowserTransport) Dispatch(ctx context.Context, request *relay.TransportRequest) (relay.TransportResponse, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.page == nil {
		return nil, ErrBrowserClosed
	}

	id := uuid.NewString()

	headers := utils.Map(request.Headers, func(h relay.Header) []string {
		return []string{h.Name, h.Value}
	})

	result, err := t.page.Context(ctx).Eval(dispatchScript, id, request.Method, request.URL.String(), headers)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate fetch: %w", err)
	}

	return parseDispatchResult(t, id, result.Value)
}

// Close shuts the browser down and removes its profile directory.
func (t *BrowserTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cleanup(context.Background())
	t.page = nil

	return nil
}

func (t *BrowserTransport) cleanup(ctx context.Context) {
	if t.browser != nil {
		if err := t.browser.Close(); err != nil {
			logger.Debugf(ctx, "Browser close error: %v", err)
		}

		t.browser = nil
	}

	if t.tempDir != "" {
		time.Sleep(browserCleanupDelay)

		if err := os.RemoveAll(t.tempDir); err != nil {
			logger.Debugf(ctx, "Could not clean up temp directory %s: %v", t.tempDir, err)
		}

		t.tempDir = ""
	}
}

// readText reads the parked body for id.
func (t *BrowserTransport) readText(ctx context.Context, id string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.page == nil {
		return "", ErrBrowserClosed
	}

	result, err := t.page.Context(ctx).Eval(textScript, id)
	if err != nil {
		return "", fmt.Errorf("failed to evaluate text: %w", err)
	}

	return parseTextResult(result.Value)
}

// textReader reads a parked body by id.
type textReader interface {
	readText(ctx context.Context, id string) (string, error)
}

// parseDispatchResult converts the object returned by dispatchScript.
func parseDispatchResult(reader textReader, id string, value gson.JSON) (relay.TransportResponse, error) {
	fields := value.Map()

	if !fields["ok"].Bool() {
		return nil, fmt.Errorf("%w: %s", ErrBrowserFetch, fields["error"].Str())
	}

	return &browserResponse{
		reader:     reader,
		id:         id,
		statusCode: fields["status"].Int(),
		statusText: fields["statusText"].Str(),
	}, nil
}

// parseTextResult converts the object returned by textScript.
func parseTextResult(value gson.JSON) (string, error) {
	fields := value.Map()

	if !fields["ok"].Bool() {
		return "", fmt.Errorf("%w: %s", ErrBrowserFetch, fields["error"].Str())
	}

	return fields["text"].Str(), nil
}

// browserResponse is a Response parked in the page.
type browserResponse struct {
	reader     textReader
	id         string
	statusCode int
	statusText string
}

func (r *browserResponse) StatusCode() int {
	return r.statusCode
}

func (r *browserResponse) StatusText() string {
	return r.statusText
}

// Text reads the parked body. The browser decodes it as UTF-8 with replacement characters.
func (r *browserResponse) Text(ctx context.Context) (string, error) {
	return r.reader.readText(ctx, r.id)
}
