package docgen

import (
	"fmt"
	"strings"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/i18n"
	"github.com/distkit/distkit/internal/pkgindex"
)

// Install renders the INSTALL document for one locale.
func Install(proj *config.Project, cat *i18n.Catalog, idx pkgindex.Index) (*Document, error) {
	d := &Document{}
	d.Title(cat.Tf("Installing %s", proj.Name))
	d.Blank()

	d.Section(cat.T("Downloading"))
	d.Blank()
	vcs := proj.VCS
	if vcs == "" {
		vcs = proj.URL
	}
	if strings.Contains(vcs, legacyHostPattern) {
		d.Append(cat.T("You will always find the latest version at:"))
		d.Blank()
		d.Append(fmt.Sprintf("  %s/downloads/list", proj.URL))
		d.Blank()
		if strings.HasSuffix(vcs, "/hg") || strings.HasSuffix(vcs, "/hg/") {
			d.Append(cat.T("If you prefer you can clone repository from::"))
			d.Blank()
			d.Append(fmt.Sprintf("  hg clone %s %s", vcs, proj.Name))
			d.Blank()
		}
	}

	d.Section(cat.T("Installation"))
	d.Blank()
	d.Append(cat.T("To install using ``pip``,::"))
	d.Blank()
	d.Append(fmt.Sprintf("  $ pip install %s", proj.Name))
	d.Blank()
	d.Append(cat.T("To install using ``easy_install``,::"))
	d.Blank()
	d.Append(fmt.Sprintf("  $ easy_install %s", proj.Name))
	d.Blank()
	d.Append(cat.T("To install from .deb package::"))
	d.Blank()
	d.Append(fmt.Sprintf("  $ sudo dpkg -i %s*.deb", proj.Name))
	d.Blank()
	d.Append(fmt.Sprintf("If you get errors like Package %s depends on XXX;"+
		" however it is not installed.", proj.Name))
	d.Blank()
	d.Append("  $ sudo apt-get -f install")
	d.Append("Should install everything you need, then run:")
	d.Append(fmt.Sprintf("  $ sudo dpkg -i %s*.deb # again", proj.Name))

	if len(proj.Depends) > 0 {
		d.Blank()
		d.Section(cat.T("Dependencies"))
		d.Blank()
		d.Append(cat.T("This program requires::"))
		d.Blank()
		deps, err := fillDepends(proj.Depends, idx)
		if err != nil {
			return nil, err
		}
		d.Append(deps...)
	}

	d.Blank()
	d.Append(markerLine(cat))
	return d, nil
}
