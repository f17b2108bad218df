// Package i18n provides locale-scoped message catalogs for document rendering.
//
// Catalogs are explicit values passed to whatever renders text; there is no
// process-wide active locale. A message missing from a catalog falls back to
// the original string, so an empty or partial catalog is always safe to use.
package i18n

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog maps source-language messages to translations for one locale.
type Catalog struct {
	code string
	msgs map[string]string
}

// Default returns the identity catalog for the source language.
func Default() *Catalog {
	return &Catalog{}
}

// Load reads the catalog for a locale code from <dir>/<code>.yaml.
// The file is a flat mapping of source message to translation.
// A listed locale without a catalog file is an operator mistake, so a
// missing or unreadable file is an error rather than a silent fallback.
func Load(dir, code string) (*Catalog, error) {
	path := filepath.Join(dir, code+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog for locale %s: %w", code, err)
	}

	msgs := make(map[string]string)
	if err := yaml.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	return &Catalog{code: code, msgs: msgs}, nil
}

// Code returns the locale code, or "" for the default catalog.
func (c *Catalog) Code() string {
	return c.code
}

// T translates a message, falling back to the original when no translation
// exists.
func (c *Catalog) T(msg string) string {
	if c == nil || c.msgs == nil {
		return msg
	}
	if t, ok := c.msgs[msg]; ok && t != "" {
		return t
	}
	return msg
}

// Tf translates a format string and applies its arguments.
func (c *Catalog) Tf(format string, args ...interface{}) string {
	return fmt.Sprintf(c.T(format), args...)
}

// FileSuffix returns the filename infix for this locale: ".pt_BR" for pt_BR,
// "" for the default catalog. Generated files are named README<suffix>.rst.
func (c *Catalog) FileSuffix() string {
	if c == nil || c.code == "" {
		return ""
	}
	return "." + c.code
}
