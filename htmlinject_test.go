package mdpaginate

// Notes:
// - InjectCSS: tests insertion point fallbacks (head, body, prepend) and
//   sanitization of style-closing sequences

import (
	"context"
	"strings"
	"testing"
)

func TestInjectCSS(t *testing.T) {
	t.Parallel()

	injector := &cssInjection{}

	tests := []struct {
		name       string
		html       string
		css        string
		wantBefore string // style block must appear before this substring
	}{
		{
			name:       "inserted before closing head",
			html:       "<html><head><title>t</title></head><body>x</body></html>",
			css:        "p { margin: 0; }",
			wantBefore: "</head>",
		},
		{
			name:       "inserted after body when no head",
			html:       `<html><body class="doc">x</body></html>`,
			css:        "p { margin: 0; }",
			wantBefore: "x</body>",
		},
		{
			name:       "prepended when no structure",
			html:       "<p>bare fragment</p>",
			css:        "p { margin: 0; }",
			wantBefore: "<p>bare fragment</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := injector.InjectCSS(context.Background(), tt.html, tt.css)
			styleIdx := strings.Index(got, "<style>"+tt.css+"</style>")
			if styleIdx == -1 {
				t.Fatalf("style block missing from output: %s", got)
			}
			anchorIdx := strings.Index(got, tt.wantBefore)
			if anchorIdx == -1 || styleIdx > anchorIdx {
				t.Errorf("style block not inserted before %q: %s", tt.wantBefore, got)
			}
		})
	}
}

func TestInjectCSSEmpty(t *testing.T) {
	t.Parallel()

	injector := &cssInjection{}
	html := "<html><head></head><body></body></html>"
	if got := injector.InjectCSS(context.Background(), html, ""); got != html {
		t.Errorf("empty CSS should leave HTML unchanged, got %q", got)
	}
}

func TestInjectCSSCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	injector := &cssInjection{}
	html := "<html><head></head></html>"
	if got := injector.InjectCSS(ctx, html, "p{}"); got != html {
		t.Errorf("cancelled injection should leave HTML unchanged, got %q", got)
	}
}

func TestSanitizeCSS(t *testing.T) {
	t.Parallel()

	injector := &cssInjection{}
	got := injector.InjectCSS(context.Background(),
		"<html><head></head></html>", "</style><script>alert(1)</script>")
	if strings.Contains(got, "</style><script>") {
		t.Errorf("closing sequence not escaped: %s", got)
	}
	if !strings.Contains(got, `<\/style>`) {
		t.Errorf("expected escaped closing sequence, got %s", got)
	}
}
