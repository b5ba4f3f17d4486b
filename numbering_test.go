package mdpaginate

// Notes:
// - BuildNumberingCSS: tests enable/disable gating, start-level clamping,
//   per-level content rules, counter-chain format, and escape-class scoping
// - Determinism is checked by byte equality across repeated builds

import (
	"fmt"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestBuildNumberingCSS - Gating and Clamping
// ---------------------------------------------------------------------------

func TestBuildNumberingCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       *NumberingConfig
		wantEmpty bool
	}{
		{
			name:      "nil config yields empty",
			cfg:       nil,
			wantEmpty: true,
		},
		{
			name:      "disabled yields empty",
			cfg:       &NumberingConfig{Technical: false, StartLevel: 1},
			wantEmpty: true,
		},
		{
			name:      "enabled yields rules",
			cfg:       &NumberingConfig{Technical: true, StartLevel: 2},
			wantEmpty: false,
		},
		{
			name:      "start level below range is clamped to 1",
			cfg:       &NumberingConfig{Technical: true, StartLevel: 0},
			wantEmpty: false,
		},
		{
			name:      "start level above range is clamped to 6",
			cfg:       &NumberingConfig{Technical: true, StartLevel: 9},
			wantEmpty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := BuildNumberingCSS(tt.cfg)
			if tt.wantEmpty {
				if got != "" {
					t.Errorf("BuildNumberingCSS() = %q, want empty", got)
				}
				return
			}
			if got == "" {
				t.Fatal("BuildNumberingCSS() returned empty, want rules")
			}
			if !strings.Contains(got, "counter-reset: h1counter h2counter h3counter h4counter h5counter h6counter") {
				t.Error("missing full counter setup on body")
			}
		})
	}
}

// TestBuildNumberingCSSClampEquivalence verifies out-of-range start levels
// produce the same output as the nearest valid level.
func TestBuildNumberingCSSClampEquivalence(t *testing.T) {
	t.Parallel()

	low := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: -3})
	one := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: 1})
	if low != one {
		t.Error("start level below 1 should clamp to 1")
	}

	high := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: 42})
	six := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: 6})
	if high != six {
		t.Error("start level above 6 should clamp to 6")
	}
}

// ---------------------------------------------------------------------------
// TestBuildNumberingCSSContentRules - Visible Prefix Threshold
// ---------------------------------------------------------------------------

// For every start level k, levels 1..k-1 must have no content rule and
// levels k..6 must each have one.
func TestBuildNumberingCSSContentRules(t *testing.T) {
	t.Parallel()

	for start := 1; start <= 6; start++ {
		t.Run(fmt.Sprintf("start_h%d", start), func(t *testing.T) {
			t.Parallel()

			css := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: start})
			for level := 1; level <= 6; level++ {
				rule := fmt.Sprintf("h%d:before", level)
				has := strings.Contains(css, rule)
				if level < start && has {
					t.Errorf("level h%d below start %d should have no content rule", level, start)
				}
				if level >= start && !has {
					t.Errorf("level h%d at or below start %d should have a content rule", level, start)
				}
			}
		})
	}
}

func TestBuildNumberingCSSChainFormat(t *testing.T) {
	t.Parallel()

	css := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: 2})

	// Start level renders a trailing dot.
	if !strings.Contains(css, `content: counter(h2counter) ". ";`) {
		t.Error("start-level prefix should be the counter followed by a dot")
	}

	// Deeper levels render the dot-joined chain from the start level.
	wantH4 := `content: counter(h2counter) "." counter(h3counter) "." counter(h4counter) " ";`
	if !strings.Contains(css, wantH4) {
		t.Errorf("h4 prefix chain missing, want %s", wantH4)
	}

	// The chain never reaches above the start level.
	if strings.Contains(css, `counter(h1counter) "."`) {
		t.Error("chain should not include levels above the start level")
	}
}

// ---------------------------------------------------------------------------
// TestBuildNumberingCSSStructure - Cascade and Escape Class
// ---------------------------------------------------------------------------

func TestBuildNumberingCSSStructure(t *testing.T) {
	t.Parallel()

	css := BuildNumberingCSS(&NumberingConfig{Technical: true, StartLevel: 3})

	// Every level increments its counter and resets the deeper chain,
	// including levels above the start level.
	for level := 1; level <= 6; level++ {
		inc := fmt.Sprintf("counter-increment: h%dcounter;", level)
		if !strings.Contains(css, inc) {
			t.Errorf("missing increment rule for h%d", level)
		}
	}
	if !strings.Contains(css, "h1 {\n  counter-increment: h1counter;\n  counter-reset: h2counter h3counter h4counter h5counter h6counter;") {
		t.Error("h1 should reset all deeper counters even when below the start level")
	}

	// Every generated selector is scoped behind the escape class.
	escape := "body:not(." + NumberingEscapeClass + ")"
	for _, line := range strings.Split(css, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "h") {
			continue
		}
		if strings.HasSuffix(trimmed, "{") && !strings.Contains(line, escape) {
			// Selector lines start with the scope, so a bare h* selector
			// would indicate a rule that ignores the escape class.
			t.Errorf("unscoped selector: %s", trimmed)
		}
	}
	if !strings.Contains(css, escape+" .header-section-number") {
		t.Error("external section numbers should only be hidden while numbering is active")
	}

	// Restart points exist for every level.
	for level := 1; level <= 6; level++ {
		if !strings.Contains(css, fmt.Sprintf("h%d.reset-counter", level)) {
			t.Errorf("missing restart rule for h%d", level)
		}
	}
}

func TestBuildNumberingCSSDeterministic(t *testing.T) {
	t.Parallel()

	cfg := &NumberingConfig{Technical: true, StartLevel: 2}
	first := BuildNumberingCSS(cfg)
	for i := 0; i < 3; i++ {
		if got := BuildNumberingCSS(cfg); got != first {
			t.Fatal("BuildNumberingCSS is not deterministic")
		}
	}
}
