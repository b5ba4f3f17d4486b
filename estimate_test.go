package mdpaginate

// Notes:
// - EstimatePages: tests the density heuristic, the explicit-break floor,
//   and per-category saturation caps
// - countComplexityFeatures: tests structural feature detection

import (
	"strings"
	"testing"
)

// repeatLines builds a document of exactly n identical lines.
func repeatLines(line string, n int) string {
	return strings.TrimSuffix(strings.Repeat(line+"\n", n), "\n")
}

// ---------------------------------------------------------------------------
// TestEstimatePages - Density Heuristic
// ---------------------------------------------------------------------------

func TestEstimatePages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		md           string
		linesPerPage int
		want         int
	}{
		{
			name:         "empty document is one page",
			md:           "",
			linesPerPage: 40,
			want:         1,
		},
		{
			name:         "200 plain lines at 40 per page",
			md:           repeatLines("some text", 200),
			linesPerPage: 40,
			want:         5,
		},
		{
			name:         "exactly one page",
			md:           repeatLines("some text", 40),
			linesPerPage: 40,
			want:         1,
		},
		{
			name:         "one line over rounds up",
			md:           repeatLines("some text", 41),
			linesPerPage: 40,
			want:         2,
		},
		{
			name:         "explicit breaks floor a short document",
			md:           "a\n\n<!-- PAGE_BREAK -->\n\nb\n\n<!-- PAGE_BREAK -->\n\nc",
			linesPerPage: 40,
			want:         3,
		},
		{
			name:         "break token inside a fence does not raise the floor",
			md:           "Example:\n\n```\n{pagebreak}\n```\n\nEnd.",
			linesPerPage: 40,
			want:         1,
		},
		{
			name:         "all four syntaxes count toward the floor",
			md:           "a\n\n<!-- PAGE_BREAK -->\n\nb\n\n{pagebreak}\n\nc\n\n---\n\nd",
			linesPerPage: 40,
			want:         4,
		},
		{
			name:         "density can exceed the break floor",
			md:           repeatLines("text", 100) + "\n\n<!-- PAGE_BREAK -->\n\nend",
			linesPerPage: 40,
			want:         3,
		},
		{
			name:         "images push the estimate up",
			md:           repeatLines("![img](pic.png)", 5) + "\n" + repeatLines("text", 35),
			linesPerPage: 40,
			want:         2,
		},
		{
			name:         "invalid lines per page falls back to default",
			md:           repeatLines("text", 40),
			linesPerPage: 0,
			want:         1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := EstimatePages(tt.md, tt.linesPerPage)
			if got != tt.want {
				t.Errorf("EstimatePages() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestEstimatePagesFloorInvariant verifies the floor property: the estimate
// is never below explicit breaks + 1, whatever the density says.
func TestEstimatePagesFloorInvariant(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<!-- PAGE_BREAK -->",
		"a\n\n{pagebreak}\n\nb\n\n{page-break}\n\nc",
		repeatLines("x", 10) + "\n\n---\n\nend",
		"# h\n\n<!-- PAGE_BREAK -->\n\n```go\ncode\n```\n\n<!-- PAGE_BREAK -->\n\ntail",
	}

	for _, md := range inputs {
		breaks := CountBreakMarkers(md)
		if got := EstimatePages(md, 40); got < breaks+1 {
			t.Errorf("EstimatePages(%q) = %d, below floor %d", md, got, breaks+1)
		}
	}
}

// TestEstimatePagesDeterministic verifies identical input gives identical
// output.
func TestEstimatePagesDeterministic(t *testing.T) {
	t.Parallel()

	md := "# Title\n\n![a](b.png)\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n$x^2$\n"
	first := EstimatePages(md, 40)
	for i := 0; i < 10; i++ {
		if got := EstimatePages(md, 40); got != first {
			t.Fatalf("estimate changed between calls: %d then %d", first, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestCountComplexityFeatures - Feature Detection
// ---------------------------------------------------------------------------

func TestCountComplexityFeatures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   string
		want complexityFeatures
	}{
		{
			name: "plain text has no features",
			md:   "just\nsome\nlines",
			want: complexityFeatures{},
		},
		{
			name: "headings",
			md:   "# one\n## two\n### three\ntext",
			want: complexityFeatures{headings: 3},
		},
		{
			name: "paired code fences make one block",
			md:   "```go\nfmt.Println()\n```",
			want: complexityFeatures{codeBlocks: 1},
		},
		{
			name: "unbalanced trailing fence ignored",
			md:   "```go\ncode\n```\n```",
			want: complexityFeatures{codeBlocks: 1},
		},
		{
			name: "diagram fences counted separately from code",
			md:   "```mermaid\ngraph TD\n```\n\n```go\ncode\n```",
			want: complexityFeatures{codeBlocks: 1, diagrams: 1},
		},
		{
			name: "plantuml diagram",
			md:   "```plantuml\n@startuml\n@enduml\n```",
			want: complexityFeatures{diagrams: 1},
		},
		{
			name: "images",
			md:   "![one](a.png) text ![two](b.png)",
			want: complexityFeatures{images: 2},
		},
		{
			name: "table with separator row",
			md:   "| a | b |\n|---|---|\n| 1 | 2 |",
			want: complexityFeatures{tables: 1},
		},
		{
			name: "pipe line without separator is not a table",
			md:   "a | b\nplain text",
			want: complexityFeatures{},
		},
		{
			name: "inline and display math",
			md:   "$a$ and $$b$$\n$$c\nd$$",
			want: complexityFeatures{mathSpans: 3},
		},
		{
			name: "double-dollar spans not double-counted",
			md:   "$$x^2 + y^2$$",
			want: complexityFeatures{mathSpans: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := strings.Split(tt.md, "\n")
			got := countComplexityFeatures(tt.md, lines)
			if got != tt.want {
				t.Errorf("countComplexityFeatures() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestComplexityFactorSaturation verifies category contributions cap out.
func TestComplexityFactorSaturation(t *testing.T) {
	t.Parallel()

	atCap := complexityFeatures{images: imageCountCap}
	overCap := complexityFeatures{images: imageCountCap * 20}
	if atCap.factor() != overCap.factor() {
		t.Errorf("factor should saturate: at cap %f, over cap %f", atCap.factor(), overCap.factor())
	}

	everything := complexityFeatures{
		headings:   1000,
		codeBlocks: 1000,
		images:     1000,
		tables:     1000,
		diagrams:   1000,
		mathSpans:  1000,
	}
	// 1.0 + 0.10 + 0.20 + 0.30 + 0.25 + 0.35 + 0.15
	const maxFactor = 2.35
	if f := everything.factor(); f > maxFactor+1e-9 {
		t.Errorf("factor = %f, want <= %f", f, maxFactor)
	}
}
