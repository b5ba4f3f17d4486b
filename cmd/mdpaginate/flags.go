package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// cliFlags holds all parsed command-line options.
type cliFlags struct {
	inputs []string

	output       string
	configPath   string
	cssPath      string
	style        string
	numbering    bool
	numberStart  string
	linesPerPage int
	workers      int

	estimate bool
	preview  bool
	serve    string

	verbose bool
	version bool
}

const usageText = `Usage: mdpaginate [flags] <input.md> [more.md ...]

Renders markdown as a paginated HTML preview document.

Flags:
`

// parseFlags parses command-line arguments into cliFlags.
func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}

	fs := flag.NewFlagSet("mdpaginate", flag.ContinueOnError)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file, or directory in batch mode (default: stdout)")
	fs.StringVarP(&f.configPath, "config", "c", "", "settings YAML file")
	fs.StringVar(&f.cssPath, "css", "", "extra CSS file appended after the generated stylesheet")
	fs.StringVar(&f.style, "style", "", "embedded document style (default: from settings)")
	fs.BoolVar(&f.numbering, "numbering", false, "enable technical heading numbering")
	fs.StringVar(&f.numberStart, "numbering-start", "", "heading level where visible numbering starts (h1..h6)")
	fs.IntVar(&f.linesPerPage, "lines-per-page", 0, "density baseline for page estimation")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel renders in batch mode (default: auto)")
	fs.BoolVar(&f.estimate, "estimate", false, "print the heuristic page count and exit")
	fs.BoolVar(&f.preview, "preview", false, "open the result in an embedded browser preview")
	fs.StringVar(&f.serve, "serve", "", "serve the result over HTTP on this address (e.g. 127.0.0.1:8765)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, err
	}

	f.inputs = fs.Args()
	if !f.version && len(f.inputs) == 0 {
		fs.Usage()
		return nil, ErrNoInput
	}
	return f, nil
}
