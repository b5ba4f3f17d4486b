package mdpaginate

// Notes:
// - BuildPaginatedHTML: tests card structure, first-page highlight,
//   page-number badges, and shell stripping (one doctype in the output)
// - buildNavigationScript: tests the embedded page total and API surface
// - fragmentBody: tests inner-content extraction

import (
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildPaginatedHTML
// ---------------------------------------------------------------------------

func TestBuildPaginatedHTML(t *testing.T) {
	t.Parallel()

	fragments := SplitContent(
		"<p>alpha</p>" + canonicalBreakMarker + "<p>beta</p>" + canonicalBreakMarker + "<p>gamma</p>")
	if len(fragments) != 3 {
		t.Fatalf("setup: got %d fragments, want 3", len(fragments))
	}

	doc := BuildPaginatedHTML(fragments, nil, "")

	if got := strings.Count(doc, "<!DOCTYPE"); got != 1 {
		t.Errorf("assembled document has %d doctypes, want 1 (fragment shells must be stripped)", got)
	}
	cards := strings.Count(doc, `<div class="page">`) + strings.Count(doc, `<div class="page current-page">`)
	if cards != 3 {
		t.Errorf("document has %d page cards, want 3", cards)
	}
	if got := strings.Count(doc, `class="page current-page"`); got != 1 {
		t.Errorf("document has %d current-page cards, want exactly 1", got)
	}
	if !strings.Contains(doc, `<div class="page current-page">`+"\n<p>alpha</p>") {
		t.Error("first card should be the current page")
	}

	for n := 1; n <= 3; n++ {
		badge := fmt.Sprintf(`<div class="page-number">%d</div>`, n)
		if !strings.Contains(doc, badge) {
			t.Errorf("missing page-number badge %d", n)
		}
	}

	for _, content := range []string{"alpha", "beta", "gamma"} {
		if !strings.Contains(doc, content) {
			t.Errorf("fragment content %q missing from assembled document", content)
		}
	}
}

func TestBuildPaginatedHTMLUserCSS(t *testing.T) {
	t.Parallel()

	fragments := []PageFragment{{Index: 1, HTML: "<p>x</p>"}}
	doc := BuildPaginatedHTML(fragments, nil, "h1 { color: red; }")
	if !strings.Contains(doc, "h1 { color: red; }") {
		t.Error("user CSS missing from document head")
	}

	// Injected CSS cannot close the style element early.
	doc = BuildPaginatedHTML(fragments, nil, "</style><script>alert(1)</script>")
	if strings.Contains(doc, "</style><script>") {
		t.Error("user CSS should be sanitized before embedding")
	}
}

func TestBuildPaginatedHTMLLayout(t *testing.T) {
	t.Parallel()

	layout := &PageLayout{WidthMM: 148, HeightMM: 210, MarginMM: 12}
	doc := BuildPaginatedHTML([]PageFragment{{Index: 1, HTML: "<p>a5</p>"}}, layout, "")
	for _, want := range []string{"width: 148mm", "min-height: 210mm", "padding: 12mm"} {
		if !strings.Contains(doc, want) {
			t.Errorf("layout rule %q missing", want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestBuildNavigationScript
// ---------------------------------------------------------------------------

func TestBuildNavigationScript(t *testing.T) {
	t.Parallel()

	script := buildNavigationScript(7)
	if !strings.Contains(script, "var totalPages = 7;") {
		t.Error("script should embed the page total")
	}
	for _, fn := range []string{"function goToPage", "function nextPage", "function prevPage",
		"function getCurrentPage", "function getTotalPages"} {
		if !strings.Contains(script, fn) {
			t.Errorf("navigation API missing %q", fn)
		}
	}
	if !strings.Contains(script, "window.hostPageChanged") {
		t.Error("script should notify the host after navigation")
	}

	// Zero or negative totals still produce a one-page document.
	if got := buildNavigationScript(0); !strings.Contains(got, "var totalPages = 1;") {
		t.Error("zero page total should floor at 1")
	}
}

// ---------------------------------------------------------------------------
// TestFragmentBody
// ---------------------------------------------------------------------------

func TestFragmentBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{
			name:     "full shell",
			fragment: "<!DOCTYPE html>\n<html>\n<head></head>\n<body>\n<p>inner</p>\n</body>\n</html>",
			want:     "<p>inner</p>",
		},
		{
			name:     "body with attributes",
			fragment: `<html><body class="x"><p>attr</p></body></html>`,
			want:     "<p>attr</p>",
		},
		{
			name:     "no shell returned unchanged",
			fragment: "<p>bare</p>",
			want:     "<p>bare</p>",
		},
		{
			name:     "uppercase body tag",
			fragment: "<HTML><BODY><p>up</p></BODY></HTML>",
			want:     "<p>up</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fragmentBody(tt.fragment); got != tt.want {
				t.Errorf("fragmentBody() = %q, want %q", got, tt.want)
			}
		})
	}
}
