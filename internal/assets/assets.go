// Package assets provides embedded CSS styles for the paginated preview.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// Sentinel errors for asset operations.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// LoadStyle loads a CSS style by name (without the .css extension).
func LoadStyle(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return string(content), nil
}

// ListStyles returns the available style names, sorted.
func ListStyles() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".css"); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// validateName rejects names that could escape the styles directory.
func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, "/\\.\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
