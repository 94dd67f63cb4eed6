package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
)

// actionTimeout bounds every single browser interaction.
const actionTimeout = 30 * time.Second

// Session owns one headless Chrome instance shared by all browser tools. The
// browser is launched lazily on first use so an enabled adapter with no
// traffic never spawns a process.
type Session struct {
	mu       sync.Mutex
	headless bool
	ctx      context.Context
	cancels  []context.CancelFunc
}

func NewSession(headless bool) *Session {
	return &Session{headless: headless}
}

func (s *Session) ensure() (context.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx != nil {
		return s.ctx, nil
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	// Start the browser now so a broken Chrome install fails the first tool
	// call with a usable error instead of hanging in an action.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("browser: start chrome: %w", err)
	}
	s.ctx = browserCtx
	s.cancels = []context.CancelFunc{cancelBrowser, cancelAlloc}
	return s.ctx, nil
}

// run executes chromedp actions against the shared tab with a per-call
// timeout. The session context outlives the call; only the deadline wrapper
// is cancelled.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	browserCtx, err := s.ensure()
	if err != nil {
		return err
	}
	timed, cancel := context.WithTimeout(browserCtx, actionTimeout)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(timed, actions...) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

// Close tears down the Chrome instance. Safe to call on a never-started
// session.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cancel := range s.cancels {
		cancel()
	}
	s.ctx = nil
	s.cancels = nil
}

// Navigate loads a URL and reports the resulting location and page title.
func (s *Session) Navigate(ctx context.Context, url string) (string, string, error) {
	var location, title string
	err := s.run(ctx,
		chromedp.Navigate(url),
		chromedp.Location(&location),
		chromedp.Title(&title),
	)
	if err != nil {
		return "", "", fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	return location, title, nil
}

// Click clicks the first element matching a CSS selector.
func (s *Session) Click(ctx context.Context, selector string) error {
	if err := s.run(ctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("browser: click %q: %w", selector, err)
	}
	return nil
}

// Fill sets the value of the first input matching a CSS selector.
func (s *Session) Fill(ctx context.Context, selector, value string) error {
	if err := s.run(ctx, chromedp.SetValue(selector, value, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("browser: fill %q: %w", selector, err)
	}
	return nil
}

// Evaluate runs a JavaScript expression in the page and returns its
// JSON-serializable result.
func (s *Session) Evaluate(ctx context.Context, expression string) (any, error) {
	var result any
	if err := s.run(ctx, chromedp.Evaluate(expression, &result)); err != nil {
		return nil, fmt.Errorf("browser: evaluate: %w", err)
	}
	return result, nil
}

// Screenshot captures the full page as PNG bytes.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	// quality 100 keeps the capture in PNG
	if err := s.run(ctx, chromedp.FullScreenshot(&buf, 100)); err != nil {
		return nil, fmt.Errorf("browser: screenshot: %w", err)
	}
	return buf, nil
}
