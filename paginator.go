package mdpaginate

import "sync"

// Paginator owns current-page/total-page state and validates navigation
// requests. It is long-lived: SetFragments re-enters the initial
// configuration for each fresh document, replacing state wholesale.
//
// The zero value is not ready; use NewPaginator. Methods are safe for
// concurrent use because the embedded preview surface invokes navigation
// from its own event goroutine.
type Paginator struct {
	mu        sync.Mutex
	current   int
	total     int
	fragments []PageFragment
}

// NewPaginator returns a paginator in its initial state: page 1 of 1,
// no fragments.
func NewPaginator() *Paginator {
	return &Paginator{current: 1, total: 1}
}

// SetFragments replaces the fragment sequence. Total pages becomes
// len(fragments) (minimum 1) and the current page is clamped into the new
// range, so the previously-requested position survives a re-render when it
// still exists.
func (p *Paginator) SetFragments(fragments []PageFragment) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fragments = fragments
	p.total = len(fragments)
	if p.total < 1 {
		p.total = 1
	}
	p.current = clampPage(p.current, p.total)
}

// GoTo navigates to page n. Out-of-range requests are clamped to the nearest
// bound and reported as failures; callers decide whether that is a
// user-visible problem.
func (p *Paginator) GoTo(n int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	clamped := clampPage(n, p.total)
	p.current = clamped
	return clamped == n
}

// Next advances one page. Returns false at the last page without moving.
func (p *Paginator) Next() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current >= p.total {
		return false
	}
	p.current++
	return true
}

// Prev goes back one page. Returns false at the first page without moving.
func (p *Paginator) Prev() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current <= 1 {
		return false
	}
	p.current--
	return true
}

// CanGoNext reports whether Next would succeed, for enabling UI controls
// without duplicating bounds logic.
func (p *Paginator) CanGoNext() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current < p.total
}

// CanGoPrevious reports whether Prev would succeed.
func (p *Paginator) CanGoPrevious() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current > 1
}

// CurrentPage returns the 1-based current page.
func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// TotalPages returns the page count (at least 1, even before content loads).
func (p *Paginator) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

// Fragment returns the fragment at 1-based page n, or false when no fragment
// sequence is loaded or n is out of range.
func (p *Paginator) Fragment(n int) (PageFragment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if n < 1 || n > len(p.fragments) {
		return PageFragment{}, false
	}
	return p.fragments[n-1], true
}

// Fragments returns a copy of the fragment sequence.
func (p *Paginator) Fragments() []PageFragment {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PageFragment, len(p.fragments))
	copy(out, p.fragments)
	return out
}

// clampPage forces n into [1, total].
func clampPage(n, total int) int {
	if n < 1 {
		return 1
	}
	if n > total {
		return total
	}
	return n
}
