package mdpaginate

import (
	"fmt"
	"strings"
)

// NumberingEscapeClass disables every generated numbering rule when present
// on <body>, so externally-supplied numbering can take over document-wide.
const NumberingEscapeClass = "no-auto-numbering"

// maxHeadingLevel is the deepest heading level with a counter.
const maxHeadingLevel = 6

// BuildNumberingCSS generates CSS-counter rules for hierarchical heading
// numbering. Every heading level increments its own counter and resets all
// deeper counters regardless of the configured start level, so cascading
// reset semantics stay correct even for levels that display no prefix. Only
// levels at or above StartLevel emit a visible content rule; the prefix is
// the dot-joined counter chain from StartLevel through that level.
//
// Pure string generation: identical configs produce byte-identical output.
// Returns "" when cfg is nil or technical numbering is disabled. Start levels
// outside 1..6 are clamped.
func BuildNumberingCSS(cfg *NumberingConfig) string {
	if cfg == nil || !cfg.Technical {
		return ""
	}

	start := cfg.StartLevel
	if start < 1 {
		start = 1
	}
	if start > maxHeadingLevel {
		start = maxHeadingLevel
	}

	var buf strings.Builder

	buf.WriteString(`
/* Heading numbering: counter setup */
body {
  counter-reset: ` + counterChain(1) + `;
}

/* Hide externally-supplied section numbers while generated numbering is active */
body:not(.` + NumberingEscapeClass + `) .header-section-number {
  display: none;
}
`)

	// Explicit restart points: a heading carrying the reset-counter class
	// restarts numbering from its own level down.
	buf.WriteString("\n/* Heading numbering: restart points */\n")
	for level := 1; level <= maxHeadingLevel; level++ {
		fmt.Fprintf(&buf, `%s h%d.reset-counter {
  counter-reset: %s;
}
`, scopedSelector(), level, counterChain(level))
	}

	// Increment-and-reset-children chain for every level, visible or not.
	buf.WriteString("\n/* Heading numbering: counter chain */\n")
	for level := 1; level <= maxHeadingLevel; level++ {
		fmt.Fprintf(&buf, "%s h%d {\n  counter-increment: h%dcounter;\n", scopedSelector(), level, level)
		if level < maxHeadingLevel {
			fmt.Fprintf(&buf, "  counter-reset: %s;\n", counterChain(level+1))
		}
		buf.WriteString("}\n")
	}

	// Visible numeric prefixes, only at or below the start level.
	buf.WriteString("\n/* Heading numbering: visible prefixes */\n")
	for level := start; level <= maxHeadingLevel; level++ {
		fmt.Fprintf(&buf, `%s h%d:before {
  content: %s;
}
`, scopedSelector(), level, numberingContent(start, level))
	}

	return buf.String()
}

// scopedSelector returns the body scope that the escape class opts out of.
func scopedSelector() string {
	return "body:not(." + NumberingEscapeClass + ")"
}

// counterChain lists counter names from the given level through h6counter,
// space-separated for use in counter-reset.
func counterChain(from int) string {
	names := make([]string, 0, maxHeadingLevel-from+1)
	for level := from; level <= maxHeadingLevel; level++ {
		names = append(names, fmt.Sprintf("h%dcounter", level))
	}
	return strings.Join(names, " ")
}

// numberingContent builds the content value for a visible prefix: counters
// from the start level through the heading's level joined with dots. The
// start level itself renders as "N. "; deeper levels render the chain
// followed by a space.
func numberingContent(start, level int) string {
	parts := make([]string, 0, level-start+1)
	for l := start; l <= level; l++ {
		parts = append(parts, fmt.Sprintf("counter(h%dcounter)", l))
	}
	if level == start {
		return parts[0] + ` ". "`
	}
	return strings.Join(parts, ` "." `) + ` " "`
}
