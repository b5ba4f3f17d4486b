package mdpaginate

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"
)

// defaultPreviewTimeout bounds page loads and script evaluations.
const defaultPreviewTimeout = 30 * time.Second

// EvalReply is the eventual outcome of one asynchronous evaluation crossing
// into the preview's scripting environment. ID correlates the reply with the
// request that produced it.
type EvalReply struct {
	ID    uint64
	Value gson.JSON
	Err   error
}

// Preview displays a paginated document in a headless Chrome page (go-rod)
// and binds the pagination core into the page's scripting environment.
//
// The scripting environment runs on its own event loop, so every call that
// crosses into it is fire-and-forget: navigation methods return a reply
// channel that may never deliver (e.g. when the surface is torn down
// mid-request). Callers must not block on it without their own timeout; the
// core never waits.
type Preview struct {
	paginator *Paginator
	timeout   time.Duration

	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
	closed  bool

	requestID atomic.Uint64
}

// PreviewOption customizes a Preview.
type PreviewOption func(*Preview)

// WithPreviewTimeout bounds page loads and evaluations.
func WithPreviewTimeout(d time.Duration) PreviewOption {
	return func(pv *Preview) {
		if d > 0 {
			pv.timeout = d
		}
	}
}

// NewPreview creates a preview surface driving the given paginator.
// The browser is launched lazily on first Show.
func NewPreview(p *Paginator, opts ...PreviewOption) *Preview {
	pv := &Preview{
		paginator: p,
		timeout:   defaultPreviewTimeout,
	}
	for _, opt := range opts {
		opt(pv)
	}
	return pv
}

// ensureBrowser lazily connects to the browser.
// Rod automatically downloads Chromium on first run if not found.
func (pv *Preview) ensureBrowser() error {
	if pv.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	pv.browser = rod.New().ControlURL(u)
	if err := pv.browser.Connect(); err != nil {
		pv.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Show loads a paginated HTML document into the preview page and binds the
// navigation API. Any previously shown page is replaced.
func (pv *Preview) Show(ctx context.Context, htmlContent string) error {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	if pv.closed {
		return ErrPreviewClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pv.ensureBrowser(); err != nil {
		return err
	}

	if pv.page != nil {
		_ = pv.page.Close()
		pv.page = nil
	}

	page, err := pv.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := pv.bindNavigation(page); err != nil {
		_ = page.Close()
		return err
	}

	if err := page.Timeout(pv.loadTimeout(ctx)).SetDocumentContent(htmlContent); err != nil {
		_ = page.Close()
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	pv.page = page
	return nil
}

// ShowURL navigates the preview page to a URL (e.g. a preview server) and
// binds the navigation API.
func (pv *Preview) ShowURL(ctx context.Context, url string) error {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	if pv.closed {
		return ErrPreviewClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := pv.ensureBrowser(); err != nil {
		return err
	}

	if pv.page != nil {
		_ = pv.page.Close()
		pv.page = nil
	}

	page, err := pv.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := page.Timeout(pv.loadTimeout(ctx)).WaitLoad(); err != nil {
		_ = page.Close()
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := pv.bindNavigation(page); err != nil {
		_ = page.Close()
		return err
	}

	pv.page = page
	return nil
}

// bindNavigation exposes the paginator to the page's scripting environment.
// The page reports position changes through hostPageChanged; the host mirrors
// them into the paginator so UI controls outside the page stay in sync.
func (pv *Preview) bindNavigation(page *rod.Page) error {
	bindings := map[string]func(gson.JSON) (interface{}, error){
		"hostGoToPage": func(arg gson.JSON) (interface{}, error) {
			return pv.paginator.GoTo(arg.Int()), nil
		},
		"hostNextPage": func(gson.JSON) (interface{}, error) {
			return pv.paginator.Next(), nil
		},
		"hostPrevPage": func(gson.JSON) (interface{}, error) {
			return pv.paginator.Prev(), nil
		},
		"hostCurrentPage": func(gson.JSON) (interface{}, error) {
			return pv.paginator.CurrentPage(), nil
		},
		"hostTotalPages": func(gson.JSON) (interface{}, error) {
			return pv.paginator.TotalPages(), nil
		},
		"hostPageChanged": func(arg gson.JSON) (interface{}, error) {
			pv.paginator.GoTo(arg.Get("current").Int())
			return nil, nil
		},
	}

	for name, fn := range bindings {
		if _, err := page.Expose(name, fn); err != nil {
			return fmt.Errorf("%w: exposing %s: %v", ErrPageCreate, name, err)
		}
	}
	return nil
}

// GoToPage asks the page to navigate to page n. The reply channel eventually
// carries the in-range result, or nothing at all if the surface goes away.
func (pv *Preview) GoToPage(n int) (uint64, <-chan EvalReply) {
	return pv.evalAsync(fmt.Sprintf("() => goToPage(%d)", n))
}

// NextPage asks the page to advance one page.
func (pv *Preview) NextPage() (uint64, <-chan EvalReply) {
	return pv.evalAsync("() => nextPage()")
}

// PrevPage asks the page to go back one page.
func (pv *Preview) PrevPage() (uint64, <-chan EvalReply) {
	return pv.evalAsync("() => prevPage()")
}

// QueryCurrentPage asks the page for its current page number.
func (pv *Preview) QueryCurrentPage() (uint64, <-chan EvalReply) {
	return pv.evalAsync("() => getCurrentPage()")
}

// QueryTotalPages asks the page for its total page count.
func (pv *Preview) QueryTotalPages() (uint64, <-chan EvalReply) {
	return pv.evalAsync("() => getTotalPages()")
}

// evalAsync evaluates a script in the page without blocking the caller. The
// returned channel is buffered and delivers at most one reply; if the page is
// torn down mid-request the reply is dropped, never retried. The correlation
// id identifies the request in logs and replies.
func (pv *Preview) evalAsync(script string) (uint64, <-chan EvalReply) {
	id := pv.requestID.Add(1)
	reply := make(chan EvalReply, 1)

	pv.mu.Lock()
	page := pv.page
	closed := pv.closed
	pv.mu.Unlock()

	if closed || page == nil {
		reply <- EvalReply{ID: id, Err: ErrPreviewClosed}
		return id, reply
	}

	go func() {
		result, err := page.Timeout(pv.timeout).Eval(script)
		if err != nil {
			reply <- EvalReply{ID: id, Err: fmt.Errorf("%w: %v", ErrPageLoad, err)}
			return
		}
		reply <- EvalReply{ID: id, Value: result.Value}
	}()

	return id, reply
}

// loadTimeout derives the page-load timeout from the context deadline when
// one is set, otherwise uses the configured default.
func (pv *Preview) loadTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 {
			return remaining
		}
	}
	return pv.timeout
}

// Close releases the browser. Pending evaluation replies are dropped.
func (pv *Preview) Close() error {
	pv.mu.Lock()
	defer pv.mu.Unlock()

	pv.closed = true
	pv.page = nil
	if pv.browser != nil {
		err := pv.browser.Close()
		pv.browser = nil
		return err
	}
	return nil
}
