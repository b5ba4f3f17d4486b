package mdpaginate

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown  = errors.New("markdown content cannot be empty")
	ErrHTMLConversion = errors.New("HTML conversion failed")

	// Numbering validation errors.
	ErrInvalidStartLevel = errors.New("numbering start level must be between 1 and 6")

	// Estimation validation errors.
	ErrInvalidLinesPerPage = errors.New("lines per page must be positive")

	// Page layout validation errors.
	ErrInvalidPageSize   = errors.New("invalid page dimensions")
	ErrInvalidPageMargin = errors.New("invalid page margin")

	// Preview surface errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPreviewClosed  = errors.New("preview surface is closed")
)
