package mdpaginate

import (
	"math"
	"regexp"
	"strings"
)

// Per-category contribution caps for the complexity factor. Each category
// saturates at a fixed occurrence count so pathological inputs cannot inflate
// the estimate unboundedly.
const (
	headingWeightCap = 0.10 // up to +10% at 10 headings
	headingCountCap  = 10

	codeBlockWeightCap = 0.20 // up to +20% at 5 code blocks
	codeBlockCountCap  = 5

	imageWeightCap = 0.30 // up to +30% at 5 images
	imageCountCap  = 5

	tableWeightCap = 0.25 // up to +25% at 5 tables
	tableCountCap  = 5

	diagramWeightCap = 0.35 // up to +35% at 3 diagrams
	diagramCountCap  = 3

	mathWeightCap = 0.15 // up to +15% at 10 equations
	mathCountCap  = 10
)

// Precompiled feature patterns.
var (
	imagePattern = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)

	// Table separator row: pipes, dashes, colons, and spaces only, with at
	// least one dash.
	tableSeparatorPattern = regexp.MustCompile(`^\|?[\s:|-]*-[\s:|-]*\|?$`)

	// Display math $$...$$, possibly spanning lines. Matched and removed
	// before inline math so double-dollar spans are not double-counted.
	displayMathPattern = regexp.MustCompile(`(?s)\$\$.+?\$\$`)
	inlineMathPattern  = regexp.MustCompile(`\$[^$\n]+\$`)

	fencePattern = regexp.MustCompile("^(```|~~~)")
)

// complexityFeatures holds transient structural counts derived from markdown
// text. Recomputed on every estimation call, never cached.
type complexityFeatures struct {
	headings   int
	codeBlocks int
	images     int
	tables     int
	diagrams   int
	mathSpans  int
}

// factor returns the complexity multiplier for these features, starting at
// 1.0. Each category contributes proportionally up to its cap.
func (f complexityFeatures) factor() float64 {
	factor := 1.0
	factor += cappedContribution(f.headings, headingCountCap, headingWeightCap)
	factor += cappedContribution(f.codeBlocks, codeBlockCountCap, codeBlockWeightCap)
	factor += cappedContribution(f.images, imageCountCap, imageWeightCap)
	factor += cappedContribution(f.tables, tableCountCap, tableWeightCap)
	factor += cappedContribution(f.diagrams, diagramCountCap, diagramWeightCap)
	factor += cappedContribution(f.mathSpans, mathCountCap, mathWeightCap)
	return factor
}

// cappedContribution scales count linearly toward weightCap, saturating at
// countCap occurrences.
func cappedContribution(count, countCap int, weightCap float64) float64 {
	if count <= 0 {
		return 0
	}
	if count > countCap {
		count = countCap
	}
	return weightCap * float64(count) / float64(countCap)
}

// EstimatePages returns an approximate page count for markdown text before
// real layout exists, for UI feedback while typing. Explicit break markers
// impose a floor of breaks+1; the density heuristic only ever pushes the
// count up, never below the author-declared breaks. Deterministic for
// identical input and O(number of lines).
//
// linesPerPage values below 1 fall back to DefaultLinesPerPage.
func EstimatePages(markdown string, linesPerPage int) int {
	if linesPerPage < 1 {
		linesPerPage = DefaultLinesPerPage
	}

	explicitBreaks := CountBreakMarkers(markdown)

	lines := strings.Split(markdown, "\n")
	features := countComplexityFeatures(markdown, lines)

	adjustedLines := int(math.Round(float64(len(lines)) * features.factor()))
	pagesByDensity := (adjustedLines + linesPerPage - 1) / linesPerPage
	if pagesByDensity < 1 {
		pagesByDensity = 1
	}

	if floor := explicitBreaks + 1; floor > pagesByDensity {
		return floor
	}
	return pagesByDensity
}

// countComplexityFeatures derives structural counts from markdown text.
// Diagram fences (mermaid/plantuml) are counted separately from plain code
// fences so a diagram does not also count as a code block.
func countComplexityFeatures(markdown string, lines []string) complexityFeatures {
	var f complexityFeatures

	fenceLines := 0
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			f.headings++
		}

		trimmed := strings.TrimSpace(line)
		if fencePattern.MatchString(trimmed) {
			fenceLines++
			tag := strings.ToLower(strings.TrimSpace(trimmed[3:]))
			if tag == "mermaid" || tag == "plantuml" {
				f.diagrams++
			}
		}

		// A table is a pipe-delimited row immediately followed by a
		// separator row.
		if strings.Contains(line, "|") && i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if strings.Contains(next, "-") && tableSeparatorPattern.MatchString(next) &&
				!tableSeparatorPattern.MatchString(trimmed) {
				f.tables++
			}
		}
	}

	// Paired fences make one block; an unbalanced trailing fence is ignored.
	f.codeBlocks = fenceLines/2 - f.diagrams
	if f.codeBlocks < 0 {
		f.codeBlocks = 0
	}

	f.images = len(imagePattern.FindAllString(markdown, -1))

	display := displayMathPattern.FindAllString(markdown, -1)
	withoutDisplay := displayMathPattern.ReplaceAllString(markdown, "")
	f.mathSpans = len(display) + len(inlineMathPattern.FindAllString(withoutDisplay, -1))

	return f
}
