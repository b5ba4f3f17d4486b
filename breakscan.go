package mdpaginate

import (
	"regexp"
	"strings"
)

// Precompiled break-marker patterns.
var (
	// HTML comment marker: <!-- PAGE_BREAK -->
	commentBreakPattern = regexp.MustCompile(`<!--\s*PAGE_BREAK\s*-->`)

	// Styled div marker: <div style="page-break-before: always;"></div>
	styledDivBreakPattern = regexp.MustCompile(`(?i)<div\s+style="page-break-before:\s*always;?"\s*>\s*</div>`)
)

// Curly-brace marker spellings. Matched against the trimmed line only, so a
// brace token embedded in prose is not a break.
const (
	curlyBreakToken           = "{pagebreak}"
	curlyBreakTokenHyphenated = "{page-break}"
)

// ScanBreakMarkers returns all page-break markers in markdown text, ordered
// by line. Lines inside fenced code blocks are never markers: a break token
// in a code sample is content, not a break. The input is never mutated and
// malformed markers are simply not counted; the scanner does not fail on
// arbitrary text. An unclosed fence runs to the end of the document, as in
// CommonMark.
func ScanBreakMarkers(markdown string) []BreakMarker {
	if markdown == "" {
		return nil
	}

	lines := strings.Split(markdown, "\n")
	var markers []BreakMarker

	inFence := false
	for i, line := range lines {
		if fencePattern.MatchString(strings.TrimSpace(line)) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		syntax, ok := classifyBreakLine(lines, i, line)
		if !ok {
			continue
		}
		markers = append(markers, BreakMarker{Line: i, Syntax: syntax})
	}

	return markers
}

// CountBreakMarkers returns the number of page-break markers in markdown text.
func CountBreakMarkers(markdown string) int {
	return len(ScanBreakMarkers(markdown))
}

// classifyBreakLine reports whether line i is a break marker and which syntax
// matched. Syntaxes are checked in a fixed order; the order affects only which
// syntax is reported when a line could match several, not break semantics.
func classifyBreakLine(lines []string, i int, line string) (BreakSyntax, bool) {
	if commentBreakPattern.MatchString(line) {
		return BreakHTMLComment, true
	}
	if styledDivBreakPattern.MatchString(line) {
		return BreakStyledDiv, true
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == curlyBreakToken || trimmed == curlyBreakTokenHyphenated {
		return BreakCurly, true
	}

	if trimmed == "---" && isBlankSurrounded(lines, i) {
		return BreakLoneHR, true
	}

	return 0, false
}

// isBlankSurrounded reports whether line i has a blank line (or the document
// boundary) immediately before and after it. A bare "---" adjacent to content
// is likely a setext heading underline or thematic break, not a page break;
// requiring blank neighbors is the documented disambiguation heuristic.
func isBlankSurrounded(lines []string, i int) bool {
	before := i == 0 || strings.TrimSpace(lines[i-1]) == ""
	after := i == len(lines)-1 || strings.TrimSpace(lines[i+1]) == ""
	return before && after
}
