package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	mdpaginate "github.com/alnah/go-mdpaginate"
	"github.com/alnah/go-mdpaginate/internal/assets"
	"github.com/alnah/go-mdpaginate/internal/config"
	"github.com/alnah/go-mdpaginate/internal/previewserver"
)

// run executes the CLI according to the parsed flags.
func run(flags *cliFlags) error {
	cfg, err := resolveConfig(flags)
	if err != nil {
		return err
	}

	if flags.estimate {
		return runEstimate(flags, cfg)
	}

	input, err := buildInput(flags, cfg)
	if err != nil {
		return err
	}

	if flags.preview || flags.serve != "" {
		return runPreview(flags, cfg, input)
	}

	if len(flags.inputs) > 1 {
		return runBatch(flags, cfg, input)
	}

	return runSingle(flags, cfg, input, flags.inputs[0], flags.output)
}

// resolveConfig loads the settings file and layers explicit flags on top.
func resolveConfig(flags *cliFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.numbering {
		cfg.Fonts.Headings.Numbering = true
	}
	if flags.numberStart != "" {
		cfg.Fonts.Headings.NumberingStart = flags.numberStart
	}
	if flags.linesPerPage > 0 {
		cfg.Preview.LinesPerPage = flags.linesPerPage
	}
	if flags.style != "" {
		cfg.Preview.Style = flags.style
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildInput assembles the per-render input shared by all input files.
// Markdown is filled per file.
func buildInput(flags *cliFlags, cfg config.Config) (mdpaginate.Input, error) {
	numbering, err := cfg.NumberingConfig()
	if err != nil {
		return mdpaginate.Input{}, err
	}

	css, err := assets.LoadStyle(cfg.Preview.Style)
	if err != nil {
		return mdpaginate.Input{}, err
	}

	if flags.cssPath != "" {
		extra, err := os.ReadFile(flags.cssPath)
		if err != nil {
			return mdpaginate.Input{}, fmt.Errorf("%w: %v", ErrReadCSS, err)
		}
		css += "\n" + string(extra)
	}

	return mdpaginate.Input{
		Numbering: numbering,
		Layout:    cfg.PageLayout(),
		CSS:       css,
	}, nil
}

// runEstimate prints the heuristic page count for each input.
func runEstimate(flags *cliFlags, cfg config.Config) error {
	for _, path := range flags.inputs {
		markdown, err := readMarkdown(path)
		if err != nil {
			return err
		}
		pages := mdpaginate.EstimatePages(markdown, cfg.Preview.LinesPerPage)
		fmt.Printf("%s: %d page(s)\n", path, pages)
	}
	return nil
}

// runSingle renders one file and writes the paginated document.
func runSingle(flags *cliFlags, cfg config.Config, input mdpaginate.Input, path, output string) error {
	markdown, err := readMarkdown(path)
	if err != nil {
		return err
	}
	input.Markdown = markdown

	svc := mdpaginate.New(mdpaginate.WithLinesPerPage(cfg.Preview.LinesPerPage))
	defer func() { _ = svc.Close() }()

	result, err := svc.Render(context.Background(), input)
	if err != nil {
		return err
	}

	if flags.verbose {
		fmt.Fprintf(os.Stderr, "%s: %d page(s)\n", path, len(result.Fragments))
	}

	if output == "" {
		_, err = os.Stdout.WriteString(result.HTML)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}

	if err := os.WriteFile(output, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// runBatch renders multiple files in parallel using a service pool.
// Output names derive from input names; --output selects the directory.
func runBatch(flags *cliFlags, cfg config.Config, input mdpaginate.Input) error {
	poolSize := mdpaginate.ResolvePoolSize(flags.workers)
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := mdpaginate.NewServicePool(poolSize, mdpaginate.WithLinesPerPage(cfg.Preview.LinesPerPage))
	defer func() { _ = pool.Close() }()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, path := range flags.inputs {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			svc := pool.Acquire()
			defer pool.Release(svc)

			perFile := input
			markdown, err := readMarkdown(path)
			if err == nil {
				perFile.Markdown = markdown
				var result *mdpaginate.Result
				result, err = svc.Render(context.Background(), perFile)
				if err == nil {
					err = writeBatchOutput(flags.output, path, result.HTML)
				}
			}

			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
				mu.Unlock()
			}
		}(path)
	}
	wg.Wait()

	if len(errs) > 0 {
		for _, err := range errs[1:] {
			fmt.Fprintln(os.Stderr, err)
		}
		return errs[0]
	}
	return nil
}

// runPreview renders the first input, serves it, and optionally opens the
// embedded browser preview. Blocks until interrupted.
func runPreview(flags *cliFlags, cfg config.Config, input mdpaginate.Input) error {
	markdown, err := readMarkdown(flags.inputs[0])
	if err != nil {
		return err
	}
	input.Markdown = markdown

	svc := mdpaginate.New(mdpaginate.WithLinesPerPage(cfg.Preview.LinesPerPage))
	defer func() { _ = svc.Close() }()

	result, err := svc.Render(context.Background(), input)
	if err != nil {
		return err
	}

	srv := previewserver.New(nil)
	srv.Update(result)
	if err := srv.Start(flags.serve); err != nil {
		return err
	}
	defer func() { _ = srv.Shutdown(context.Background()) }()

	fmt.Fprintf(os.Stderr, "Serving paginated preview at %s (%d pages)\n", srv.URL(), len(result.Fragments))

	var pv *mdpaginate.Preview
	if flags.preview {
		pv = mdpaginate.NewPreview(svc.Paginator())
		defer func() { _ = pv.Close() }()

		if err := pv.ShowURL(context.Background(), srv.URL()); err != nil {
			return err
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	fmt.Fprintln(os.Stderr, "shutting down")
	return nil
}

// readMarkdown reads a markdown file, wrapping I/O failures for exit codes.
func readMarkdown(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReadInput, err)
	}
	return string(data), nil
}

// writeBatchOutput writes one rendered document next to its input, or into
// the output directory when one is given.
func writeBatchOutput(outputDir, inputPath, html string) error {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".html"

	target := base
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		target = filepath.Join(outputDir, base)
	} else {
		target = filepath.Join(filepath.Dir(inputPath), base)
	}

	if err := os.WriteFile(target, []byte(html), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
