package mdpaginate

import (
	"context"
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress multiple blank lines to max 2
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// Highlight syntax ==text==
	highlightPattern = regexp.MustCompile(`==(.*?)==`)
)

// markdownPreprocessor defines the contract for markdown preprocessing.
type markdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// pagedMarkdownPreprocessor applies transformations before CommonMark
// conversion, including break-marker canonicalization so the splitter only
// ever sees styled-div markers.
type pagedMarkdownPreprocessor struct{}

// PreprocessMarkdown applies all transformations to prepare Markdown for
// conversion. Order matters: line endings first, then marker
// canonicalization (which is line-index based), then syntax conversions.
func (p *pagedMarkdownPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = normalizeLineEndings(content)
	content = canonicalizeBreakMarkers(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights transforms ==text== to <mark>text</mark>.
func convertHighlights(content string) string {
	return highlightPattern.ReplaceAllString(content, "<mark>$1</mark>")
}

// canonicalizeBreakMarkers rewrites every recognized break-marker line into
// the canonical styled-div form, surrounded by blank lines so Goldmark treats
// the div as its own raw HTML block. Styled-div markers are left in place;
// non-marker lines (including a "---" adjacent to content) are untouched.
func canonicalizeBreakMarkers(content string) string {
	markers := ScanBreakMarkers(content)
	if len(markers) == 0 {
		return content
	}

	lines := strings.Split(content, "\n")
	byLine := make(map[int]BreakSyntax, len(markers))
	for _, m := range markers {
		byLine[m.Line] = m.Syntax
	}

	for i := range lines {
		syntax, ok := byLine[i]
		if !ok || syntax == BreakStyledDiv {
			continue
		}
		if syntax == BreakHTMLComment {
			// The comment may share its line with other content.
			lines[i] = commentBreakPattern.ReplaceAllString(lines[i], "\n"+canonicalBreakMarker+"\n")
			continue
		}
		lines[i] = "\n" + canonicalBreakMarker + "\n"
	}

	return strings.Join(lines, "\n")
}
