package docgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/i18n"
	"github.com/distkit/distkit/internal/pkgindex"
	"github.com/distkit/distkit/internal/safewrite"
)

// RenderFunc renders one document for one locale.
type RenderFunc func(*config.Project, *i18n.Catalog, pkgindex.Index) (*Document, error)

// Generator emits a document once per configured locale plus once for the
// default locale, each pass going through its own catalog.
type Generator struct {
	Project *config.Project
	Index   pkgindex.Index
	Writer  *safewrite.Writer
	Logger  *zap.Logger
}

// Catalogs returns the default catalog followed by one per configured
// locale. Loading fails when a listed locale has no catalog file.
func (g *Generator) Catalogs() ([]*i18n.Catalog, error) {
	cats := []*i18n.Catalog{i18n.Default()}
	for _, lang := range g.Project.Langs {
		cat, err := i18n.Load(g.Project.LocaleDir, lang)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteAll renders the document for every locale and writes
// <base><.locale>.rst files through the safe writer. It returns the names
// of files actually written or refreshed.
func (g *Generator) WriteAll(base string, render RenderFunc) ([]string, error) {
	cats, err := g.Catalogs()
	if err != nil {
		return nil, err
	}

	if len(g.Project.Langs) > 0 {
		g.logger().Info("emitting localized documents",
			zap.String("base", base), zap.Int("locales", len(g.Project.Langs)))
	}

	var written []string
	for _, cat := range cats {
		doc, err := render(g.Project, cat, g.Index)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", base, err)
		}
		fname := base + cat.FileSuffix() + ".rst"
		res, err := g.Writer.Write(doc.Lines(), fname)
		if err != nil {
			return written, err
		}
		if res == safewrite.Written {
			written = append(written, fname)
		}
	}
	return written, nil
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}
