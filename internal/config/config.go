// Package config loads the preview settings schema and maps it onto the
// pagination core's typed configuration. All schema knowledge (key names,
// defaults, the hN level spelling) lives here, populated once at this
// boundary; the core never performs settings lookups itself.
package config

import (
	"errors"
	"fmt"
	"os"

	mdpaginate "github.com/alnah/go-mdpaginate"
	"github.com/alnah/go-mdpaginate/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound        = errors.New("config file not found")
	ErrConfigParse           = errors.New("failed to parse config")
	ErrInvalidNumberingStart = errors.New("numbering start must be h1..h6")
	ErrInvalidLinesPerPage   = errors.New("lines per page must be positive")
)

// Config is the settings schema consumed from the external settings
// collaborator. Unknown keys elsewhere in the file are ignored.
type Config struct {
	Fonts   FontsConfig   `yaml:"fonts"`
	Page    PageConfig    `yaml:"page"`
	Preview PreviewConfig `yaml:"preview"`
}

// FontsConfig holds font-related settings. Only the headings subtree is
// consumed here.
type FontsConfig struct {
	Headings HeadingsConfig `yaml:"headings"`
}

// HeadingsConfig controls generated heading numbering.
type HeadingsConfig struct {
	Numbering      bool   `yaml:"numbering"`
	NumberingStart string `yaml:"numbering_start"` // "h1".."h6"
}

// PageConfig holds page card dimensions in millimeters.
type PageConfig struct {
	WidthMM  float64 `yaml:"width_mm"`
	HeightMM float64 `yaml:"height_mm"`
	MarginMM float64 `yaml:"margin_mm"`
}

// PreviewConfig holds preview-pipeline settings.
type PreviewConfig struct {
	LinesPerPage int    `yaml:"lines_per_page"`
	Style        string `yaml:"style"`
}

// Default returns the configuration used when no settings file exists:
// numbering off starting at h1, A4 pages, 40 lines per page, default style.
func Default() Config {
	return Config{
		Fonts: FontsConfig{
			Headings: HeadingsConfig{
				Numbering:      false,
				NumberingStart: "h1",
			},
		},
		Page: PageConfig{
			WidthMM:  mdpaginate.DefaultPageWidthMM,
			HeightMM: mdpaginate.DefaultPageHeightMM,
			MarginMM: mdpaginate.DefaultPageMarginMM,
		},
		Preview: PreviewConfig{
			LinesPerPage: mdpaginate.DefaultLinesPerPage,
			Style:        "default",
		},
	}
}

// Load reads and parses a settings file, filling absent keys with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses settings YAML, filling absent keys with defaults.
// Empty input is a valid settings file and yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yamlutil.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if cfg.Fonts.Headings.NumberingStart == "" {
		cfg.Fonts.Headings.NumberingStart = "h1"
	}
	if cfg.Preview.LinesPerPage == 0 {
		cfg.Preview.LinesPerPage = mdpaginate.DefaultLinesPerPage
	}
	if cfg.Preview.Style == "" {
		cfg.Preview.Style = "default"
	}
	return cfg, nil
}

// Validate checks the parsed settings before they reach the core.
func (c Config) Validate() error {
	if _, err := parseHeadingLevel(c.Fonts.Headings.NumberingStart); err != nil {
		return err
	}
	if c.Preview.LinesPerPage < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidLinesPerPage, c.Preview.LinesPerPage)
	}
	layout := c.PageLayout()
	return layout.Validate()
}

// NumberingConfig maps the settings subtree onto the core's numbering
// configuration.
func (c Config) NumberingConfig() (*mdpaginate.NumberingConfig, error) {
	level, err := parseHeadingLevel(c.Fonts.Headings.NumberingStart)
	if err != nil {
		return nil, err
	}
	return &mdpaginate.NumberingConfig{
		Technical:  c.Fonts.Headings.Numbering,
		StartLevel: level,
	}, nil
}

// PageLayout maps the settings subtree onto the core's page layout.
func (c Config) PageLayout() *mdpaginate.PageLayout {
	return &mdpaginate.PageLayout{
		WidthMM:  c.Page.WidthMM,
		HeightMM: c.Page.HeightMM,
		MarginMM: c.Page.MarginMM,
	}
}

// parseHeadingLevel converts "h1".."h6" to 1..6.
func parseHeadingLevel(s string) (int, error) {
	switch s {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return int(s[1] - '0'), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidNumberingStart, s)
}
