package mdpaginate

import (
	"fmt"
)

// Estimation defaults.
const (
	// DefaultLinesPerPage is the baseline density used by EstimatePages.
	DefaultLinesPerPage = 40
)

// Page layout bounds and defaults in millimeters (A4).
const (
	DefaultPageWidthMM  = 210.0
	DefaultPageHeightMM = 297.0
	DefaultPageMarginMM = 25.0

	MinPageDimensionMM = 50.0
	MaxPageDimensionMM = 1000.0
	MaxPageMarginMM    = 100.0
)

// BreakSyntax identifies which concrete marker syntax produced a BreakMarker.
type BreakSyntax int

const (
	// BreakHTMLComment is the explicit <!-- PAGE_BREAK --> comment marker.
	BreakHTMLComment BreakSyntax = iota
	// BreakStyledDiv is a div carrying an inline page-break-before declaration.
	BreakStyledDiv
	// BreakCurly is the brace-delimited {pagebreak} / {page-break} token.
	BreakCurly
	// BreakLoneHR is a blank-surrounded "---" line.
	BreakLoneHR
)

// String returns the syntax name for logging and test output.
func (s BreakSyntax) String() string {
	switch s {
	case BreakHTMLComment:
		return "html_comment"
	case BreakStyledDiv:
		return "styled_div"
	case BreakCurly:
		return "curly_pagebreak"
	case BreakLoneHR:
		return "lone_hr"
	}
	return fmt.Sprintf("BreakSyntax(%d)", int(s))
}

// BreakMarker records one detected page-break marker.
// Markers are produced fresh per scan and never persisted.
type BreakMarker struct {
	Line   int // zero-based line index in the scanned text
	Syntax BreakSyntax
}

// PageFragment is one page's worth of HTML after splitting.
// Index is 1-based and always equals the fragment's position in its sequence.
type PageFragment struct {
	Index int
	HTML  string
}

// NumberingConfig controls CSS-counter heading numbering.
type NumberingConfig struct {
	// Technical enables hierarchical "1.2.3"-style numeric prefixes.
	Technical bool
	// StartLevel is the shallowest heading level (1-6) that displays a
	// visible prefix. Deeper levels always chain from StartLevel.
	StartLevel int
}

// DefaultNumberingConfig returns numbering disabled, starting at h1.
func DefaultNumberingConfig() *NumberingConfig {
	return &NumberingConfig{Technical: false, StartLevel: 1}
}

// Validate checks that the numbering configuration is usable.
// Returns nil if n is nil (nil means numbering disabled).
func (n *NumberingConfig) Validate() error {
	if n == nil {
		return nil
	}
	if n.StartLevel < 1 || n.StartLevel > 6 {
		return fmt.Errorf("%w: %d", ErrInvalidStartLevel, n.StartLevel)
	}
	return nil
}

// PageLayout describes the on-screen page card dimensions.
type PageLayout struct {
	WidthMM  float64
	HeightMM float64
	MarginMM float64
}

// DefaultPageLayout returns an A4 layout with 25mm margins.
func DefaultPageLayout() *PageLayout {
	return &PageLayout{
		WidthMM:  DefaultPageWidthMM,
		HeightMM: DefaultPageHeightMM,
		MarginMM: DefaultPageMarginMM,
	}
}

// Validate checks that page dimensions are plausible.
// Returns nil if p is nil (nil means use defaults).
func (p *PageLayout) Validate() error {
	if p == nil {
		return nil
	}
	if p.WidthMM < MinPageDimensionMM || p.WidthMM > MaxPageDimensionMM ||
		p.HeightMM < MinPageDimensionMM || p.HeightMM > MaxPageDimensionMM {
		return fmt.Errorf("%w: %.1fx%.1fmm", ErrInvalidPageSize, p.WidthMM, p.HeightMM)
	}
	if p.MarginMM < 0 || p.MarginMM > MaxPageMarginMM {
		return fmt.Errorf("%w: %.1fmm", ErrInvalidPageMargin, p.MarginMM)
	}
	return nil
}

// Input holds the markdown content and per-render options.
type Input struct {
	// Markdown is the raw document text. Required.
	Markdown string
	// Numbering configures heading numbering. Nil disables numbering.
	Numbering *NumberingConfig
	// Layout overrides the page card dimensions. Nil means A4 defaults.
	Layout *PageLayout
	// CSS is appended after the generated stylesheet.
	CSS string
}

// Result is the outcome of one render pass.
type Result struct {
	// HTML is the complete paginated document with the navigation script.
	HTML string
	// Fragments are the ordered per-page HTML fragments.
	Fragments []PageFragment
	// CSS is the generated stylesheet (numbering rules plus page styles).
	CSS string
}
