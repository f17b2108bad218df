package docgen

import (
	"fmt"
	"strings"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/i18n"
	"github.com/distkit/distkit/internal/license"
	"github.com/distkit/distkit/internal/pkgindex"
	"github.com/distkit/distkit/internal/safewrite"
)

// legacyHostPattern marks project URLs whose hosting service exposes the
// derived issues and downloads listing pages.
const legacyHostPattern = "code.google.com/"

// Readme renders the README document for one locale.
func Readme(proj *config.Project, cat *i18n.Catalog, idx pkgindex.Index) (*Document, error) {
	d := &Document{}
	d.Title(capitalize(proj.Name))
	d.Blank()
	d.Wrap(cat.T(proj.Description))
	d.Blank()
	d.Wrap(cat.T(proj.LongDescription))
	d.Blank()

	d.Section(cat.T("Home Page"))
	d.Blank()
	d.Append(cat.Tf("You can find %s hosted at:", proj.Name))
	d.Append("  " + proj.URL)
	if strings.Contains(proj.URL, legacyHostPattern) {
		d.Blank()
		d.Append(cat.T("You can file bugs at:"))
		d.Append(fmt.Sprintf("  %s/issues/list", proj.URL))
		d.Blank()
		d.Append(cat.T("Latest downloads can be found at:"))
		d.Append(fmt.Sprintf("  %s/downloads/list", proj.URL))
	}

	if len(proj.Depends) > 0 {
		d.Blank()
		d.Section(cat.T("Requirements"))
		d.Blank()
		d.Append(cat.T("This program requires other libraries which you may or may not have installed."))
		d.Blank()
		deps, err := fillDepends(proj.Depends, idx)
		if err != nil {
			return nil, err
		}
		d.Append(deps...)
	}

	d.Blank()
	d.Section(cat.T("License"))
	d.Blank()
	d.Append(proj.License)
	licenseFile := license.FindFile(".")
	if licenseFile == "" {
		licenseFile = license.DefaultFilename
	}
	d.Append(cat.Tf("You can find it in the %s file.", licenseFile))
	d.Blank()
	d.Append(markerLine(cat))
	return d, nil
}

// fillDepends lists dependencies with their package-index summary and
// homepage, aligned to the longest dependency name. Unknown packages are
// listed bare; an unavailable index is an error, never silent omission.
func fillDepends(depends []string, idx pkgindex.Index) ([]string, error) {
	longest := 0
	for _, req := range depends {
		if len(req) > longest {
			longest = len(req)
		}
	}

	var lines []string
	for _, req := range depends {
		entry, found, err := idx.Lookup(req)
		if err != nil {
			return nil, err
		}
		if !found {
			lines = append(lines, fmt.Sprintf(" * %s", req))
			continue
		}
		lines = append(lines, fmt.Sprintf("* %-*s - %s", longest, req, entry.Summary))
		if entry.Homepage != "" {
			lines = append(lines, fmt.Sprintf("  %-*s   (%s)", longest, " ", entry.Homepage))
		}
	}
	return lines, nil
}

// markerLine is the fixed final line identifying a machine-generated file.
func markerLine(cat *i18n.Catalog) string {
	return cat.Tf("-- file generated by %s.", safewrite.Marker)
}
