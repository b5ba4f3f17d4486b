package mdpaginate

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Compile-time interface implementation checks.
var (
	_ markdownPreprocessor = (*pagedMarkdownPreprocessor)(nil)
	_ htmlConverter        = (*goldmarkConverter)(nil)
	_ cssInjector          = (*cssInjection)(nil)
)

// serviceConfig holds Service-level settings.
type serviceConfig struct {
	linesPerPage int
	logger       *slog.Logger
	debounce     *Debouncer
}

// Service orchestrates the markdown-to-paginated-preview pipeline.
// Create with New, render with Render, and Close when done.
type Service struct {
	cfg           serviceConfig
	preprocessor  markdownPreprocessor
	htmlConverter htmlConverter
	cssInjector   cssInjector
	paginator     *Paginator
}

// Option customizes a Service.
type Option func(*Service)

// WithLinesPerPage sets the density baseline used by Estimate.
// Values below 1 keep the default.
func WithLinesPerPage(n int) Option {
	return func(s *Service) {
		if n >= 1 {
			s.cfg.linesPerPage = n
		}
	}
}

// WithLogger sets the logger for degraded-path warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.cfg.logger = log
		}
	}
}

// WithDebounce sets the window for RenderDebounced.
func WithDebounce(interval time.Duration) Option {
	return func(s *Service) {
		s.cfg.debounce = NewDebouncer(interval)
	}
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithLinesPerPage).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: serviceConfig{
			linesPerPage: DefaultLinesPerPage,
			logger:       slog.Default(),
		},
		preprocessor:  &pagedMarkdownPreprocessor{},
		htmlConverter: newGoldmarkConverter(),
		cssInjector:   &cssInjection{},
		paginator:     NewPaginator(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.debounce == nil {
		s.cfg.debounce = NewDebouncer(DefaultDebounceInterval)
	}

	return s
}

// Render runs the full pipeline: preprocess markdown, convert to HTML, split
// into page fragments, generate numbering and page CSS, and assemble the
// paginated preview document. The service's paginator is re-pointed at the
// new fragment sequence, with the current page clamped into the new range.
// The context is used for cancellation.
func (s *Service) Render(ctx context.Context, input Input) (*Result, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	mdContent := s.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	htmlContent, err := s.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	fragments := splitContent(htmlContent, s.cfg.logger)

	cssContent := BuildNumberingCSS(input.Numbering)
	if input.CSS != "" {
		cssContent += "\n" + input.CSS
	}

	// Fragments are served individually by preview collaborators, so each one
	// becomes a standalone document carrying the stylesheet in its own head.
	// Card assembly extracts body content only, so the CSS lands exactly once
	// in the assembled document.
	for i := range fragments {
		frag := fragments[i].HTML
		if !isCompleteDocument(frag) {
			frag = fmt.Sprintf(fragmentShell, frag)
		}
		if cssContent != "" {
			frag = s.cssInjector.InjectCSS(ctx, frag, cssContent)
		}
		fragments[i].HTML = frag
	}

	pageHTML := BuildPaginatedHTML(fragments, input.Layout, cssContent)

	s.paginator.SetFragments(fragments)

	return &Result{
		HTML:      pageHTML,
		Fragments: fragments,
		CSS:       cssContent,
	}, nil
}

// RenderDebounced schedules a render after the debounce window, dropping any
// earlier render still pending in the same window. Keystroke-driven callers
// use this so overlapping runs cannot race to replace pagination state.
// onDone receives the outcome of the run that actually executes; runs dropped
// by a later trigger never report.
func (s *Service) RenderDebounced(ctx context.Context, input Input, onDone func(*Result, error)) {
	s.cfg.debounce.Trigger(func() {
		result, err := s.Render(ctx, input)
		if onDone != nil {
			onDone(result, err)
		}
	})
}

// Estimate returns the heuristic page count for markdown text using the
// service's lines-per-page baseline, for UI feedback before a render
// completes.
func (s *Service) Estimate(markdown string) int {
	return EstimatePages(markdown, s.cfg.linesPerPage)
}

// Paginator returns the navigation state machine fed by Render.
func (s *Service) Paginator() *Paginator {
	return s.paginator
}

// Close cancels any pending debounced render.
func (s *Service) Close() error {
	s.cfg.debounce.Stop()
	return nil
}

// validateInput checks that required fields are present and valid.
func (s *Service) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	if err := input.Numbering.Validate(); err != nil {
		return err
	}
	if err := input.Layout.Validate(); err != nil {
		return err
	}
	return nil
}
