package main

import (
	"errors"
	"os"

	mdpaginate "github.com/alnah/go-mdpaginate"
	"github.com/alnah/go-mdpaginate/internal/config"
)

// Exit codes for the mdpaginate CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput     = errors.New("no input file specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrReadCSS     = errors.New("failed to read CSS file")
	ErrWriteOutput = errors.New("failed to write output")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpaginate.ErrBrowserConnect) ||
		errors.Is(err, mdpaginate.ErrPageCreate) ||
		errors.Is(err, mdpaginate.ErrPageLoad) ||
		errors.Is(err, mdpaginate.ErrPreviewClosed) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/validation errors (exit 2)
	if errors.Is(err, ErrNoInput) ||
		errors.Is(err, mdpaginate.ErrEmptyMarkdown) ||
		errors.Is(err, mdpaginate.ErrInvalidStartLevel) ||
		errors.Is(err, mdpaginate.ErrInvalidLinesPerPage) ||
		errors.Is(err, mdpaginate.ErrInvalidPageSize) ||
		errors.Is(err, mdpaginate.ErrInvalidPageMargin) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidNumberingStart) ||
		errors.Is(err, config.ErrInvalidLinesPerPage) {
		return ExitUsage
	}

	return ExitGeneral
}
