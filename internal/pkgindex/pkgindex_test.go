package pkgindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const showOutput = `Package: python-gtk2
Architecture: amd64
Version: 2.24.0-6
Description-en: Python bindings for the GTK+ widget set
 This archive contains modules that allow you to use GTK+.
Homepage: http://www.pygtk.org/

Package: python-gtk2
Version: 2.24.0-5
Description-en: older stanza, ignored
`

func TestParseShowOutput(t *testing.T) {
	entry := parseShowOutput(showOutput)
	assert.Equal(t, "Python bindings for the GTK+ widget set", entry.Summary)
	assert.Equal(t, "http://www.pygtk.org/", entry.Homepage)
}

func TestParseShowOutputPlainDescription(t *testing.T) {
	entry := parseShowOutput("Package: foo\nDescription: a plain description\n")
	assert.Equal(t, "a plain description", entry.Summary)
	assert.Equal(t, "", entry.Homepage)
}

func TestParseShowOutputEmpty(t *testing.T) {
	assert.Equal(t, Entry{}, parseShowOutput(""))
}

func TestStaticLookup(t *testing.T) {
	idx := Static{
		"python-gtk2": {Summary: "Python bindings for the GTK+ widget set", Homepage: "http://www.pygtk.org/"},
	}

	entry, ok, err := idx.Lookup("python-gtk2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Python bindings for the GTK+ widget set", entry.Summary)

	_, ok, err = idx.Lookup("no-such-package")
	require.NoError(t, err)
	assert.False(t, ok)
}
