package mdpaginate

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
)

// canonicalBreakMarker is the styled-div form every upstream marker syntax is
// normalized into before splitting. The splitter recognizes only this form;
// comment and curly-brace markers are rewritten by the preprocessor.
const canonicalBreakMarker = `<div style="page-break-before: always;"></div>`

// fragmentShell wraps a bare HTML fragment in a minimal standalone document.
const fragmentShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
</head>
<body>
%s
</body>
</html>`

// SplitContent cuts converted HTML into ordered page fragments at styled-div
// break markers. The marker tag belongs to the following fragment. Fragments
// that are empty after trimming are dropped, and any fragment that is not
// already a complete HTML document is wrapped in a minimal document shell.
//
// HTML with zero break markers comes back as a single fragment containing the
// input unchanged. On any internal failure the full input is returned as one
// fragment; pagination degrades to a single page rather than failing.
func SplitContent(htmlContent string) []PageFragment {
	return splitContent(htmlContent, slog.Default())
}

func splitContent(htmlContent string, log *slog.Logger) (fragments []PageFragment) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("content split failed, degrading to single page", "panic", r)
			fragments = []PageFragment{{Index: 1, HTML: htmlContent}}
		}
	}()

	segments := styledDivBreakPattern.Split(htmlContent, -1)
	if len(segments) == 1 {
		// No markers: splitting must be a no-op.
		return []PageFragment{{Index: 1, HTML: htmlContent}}
	}

	fragments = make([]PageFragment, 0, len(segments))
	for i, segment := range segments {
		if i > 0 {
			// The split consumed the marker; it belongs to this fragment.
			segment = canonicalBreakMarker + segment
		}
		if strings.TrimSpace(stripBreakMarkers(segment)) == "" {
			continue
		}
		if !isCompleteDocument(segment) {
			segment = fmt.Sprintf(fragmentShell, segment)
		}
		fragments = append(fragments, PageFragment{Index: len(fragments) + 1, HTML: segment})
	}

	if len(fragments) == 0 {
		return []PageFragment{{Index: 1, HTML: htmlContent}}
	}
	return fragments
}

// stripBreakMarkers removes styled-div markers so that a segment consisting
// only of its leading marker counts as empty.
func stripBreakMarkers(segment string) string {
	return styledDivBreakPattern.ReplaceAllString(segment, "")
}

// isCompleteDocument reports whether the fragment already carries a top-level
// <html> element. Leading doctype, comments, and whitespace are skipped; the
// first real tag decides.
func isCompleteDocument(fragment string) bool {
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.TextToken:
			if strings.TrimSpace(string(z.Text())) != "" {
				return false
			}
		case html.DoctypeToken, html.CommentToken:
			// Allowed before <html>.
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			return strings.EqualFold(string(name), "html")
		case html.EndTagToken:
			return false
		}
	}
}
