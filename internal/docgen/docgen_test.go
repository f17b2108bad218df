package docgen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distkit/distkit/internal/cli/config"
	"github.com/distkit/distkit/internal/i18n"
	"github.com/distkit/distkit/internal/pkgindex"
)

func testProject() *config.Project {
	return &config.Project{
		Name:            "myproj",
		Version:         "1.2",
		Description:     "A tool that does one thing well.",
		LongDescription: "A much longer description of the tool, with enough words in it that the renderer has to wrap the paragraph to the fixed eighty column width used by every generated document.",
		License:         "Apache 2.0",
		URL:             "http://code.google.com/p/myproj",
		Author:          "Jane Dev",
		Depends:         []string{"python-apt", "fakeroot"},
	}
}

func testIndex() pkgindex.Index {
	return pkgindex.Static{
		"python-apt": {Summary: "Python interface to APT", Homepage: "http://apt.example.org"},
	}
}

func TestDocumentTitleAndSection(t *testing.T) {
	d := &Document{}
	d.Title("Myproj")
	d.Section("Home Page")

	assert.Equal(t, []string{
		"======",
		"Myproj",
		"======",
		"Home Page",
		"---------",
	}, d.Lines())
}

func TestDocumentWrapColumn(t *testing.T) {
	d := &Document{}
	d.Wrap(strings.Repeat("word ", 40))
	for _, line := range d.Lines() {
		assert.LessOrEqual(t, len(line), 80)
	}
	assert.Greater(t, len(d.Lines()), 1)
}

func TestReadmeStructure(t *testing.T) {
	doc, err := Readme(testProject(), i18n.Default(), testIndex())
	require.NoError(t, err)
	lines := doc.Lines()

	// Underlined title
	assert.Equal(t, "======", lines[0])
	assert.Equal(t, "Myproj", lines[1])
	assert.Equal(t, "======", lines[2])

	text := doc.String()
	assert.Contains(t, text, "You can find myproj hosted at:")
	assert.Contains(t, text, "  http://code.google.com/p/myproj")
	// Derived listing links for the legacy host
	assert.Contains(t, text, "http://code.google.com/p/myproj/issues/list")
	assert.Contains(t, text, "http://code.google.com/p/myproj/downloads/list")
	// Known dependency aligned with its summary, unknown one listed bare
	assert.Contains(t, text, "* python-apt - Python interface to APT")
	assert.Contains(t, text, "(http://apt.example.org)")
	assert.Contains(t, text, " * fakeroot")
	assert.Contains(t, text, "Apache 2.0")

	// The marker is the final line
	assert.Equal(t, "-- file generated by `distkit`.", lines[len(lines)-1])
}

func TestReadmeSkipsDerivedLinksForOtherHosts(t *testing.T) {
	proj := testProject()
	proj.URL = "https://example.org/myproj"
	proj.Depends = nil

	doc, err := Readme(proj, i18n.Default(), pkgindex.Static{})
	require.NoError(t, err)

	text := doc.String()
	assert.NotContains(t, text, "/issues/list")
	assert.NotContains(t, text, "Requirements")
}

func TestReadmeFailsLoudlyWhenIndexUnavailable(t *testing.T) {
	broken := brokenIndex{err: errors.New("apt-cache not found")}
	_, err := Readme(testProject(), i18n.Default(), broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apt-cache not found")
}

func TestInstallSnippets(t *testing.T) {
	proj := testProject()
	proj.VCS = "http://myproj.code.google.com/hg"

	doc, err := Install(proj, i18n.Default(), testIndex())
	require.NoError(t, err)
	text := doc.String()

	assert.Contains(t, text, "  $ pip install myproj")
	assert.Contains(t, text, "  $ easy_install myproj")
	assert.Contains(t, text, "  $ sudo dpkg -i myproj*.deb")
	assert.Contains(t, text, "  hg clone http://myproj.code.google.com/hg myproj")
	lines := doc.Lines()
	assert.Equal(t, "-- file generated by `distkit`.", lines[len(lines)-1])
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Readme(testProject(), i18n.Default(), testIndex())
	require.NoError(t, err)
	second, err := Readme(testProject(), i18n.Default(), testIndex())
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

type brokenIndex struct {
	err error
}

func (b brokenIndex) Lookup(string) (pkgindex.Entry, bool, error) {
	return pkgindex.Entry{}, false, b.err
}
