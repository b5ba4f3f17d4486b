package mdpaginate

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlConverter abstracts Markdown to HTML conversion.
type htmlConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type goldmarkConverter struct {
	md goldmark.Markdown
}

// newGoldmarkConverter creates a goldmarkConverter with GFM extensions and
// syntax highlighting.
func newGoldmarkConverter() *goldmarkConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for external stylesheet control
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
			// WithUnsafe is required: canonical break markers are raw
			// styled-div HTML and must pass through to the splitter.
			html.WithUnsafe(),
		),
	)
	return &goldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML body fragment. The fragment is
// not wrapped in a document shell; pagination assembles the final document
// after splitting. Supports context cancellation via goroutine + select
// pattern since Goldmark doesn't natively support context.
func (c *goldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
