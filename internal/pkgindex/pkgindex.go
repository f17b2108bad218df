// Package pkgindex resolves dependency names against the system package
// cache. The cache is an external collaborator; lookups shell out to
// apt-cache and parse its output.
package pkgindex

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Entry is the one-line summary and optional homepage for a package.
type Entry struct {
	Summary  string
	Homepage string
}

// Index looks up dependency names. The second return value reports whether
// the package is known; an error means the index itself is unavailable and
// must be surfaced to the operator rather than silently omitting data.
type Index interface {
	Lookup(name string) (Entry, bool, error)
}

// AptCache queries the Debian package cache via apt-cache show.
type AptCache struct {
	Timeout time.Duration
}

// NewAptCache returns an AptCache with a 30 second per-lookup timeout.
func NewAptCache() *AptCache {
	return &AptCache{Timeout: 30 * time.Second}
}

// Lookup runs apt-cache show for the package and extracts the description
// and homepage. An unknown package is not an error; a missing or failing
// apt-cache binary is.
func (a *AptCache) Lookup(name string) (Entry, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout())
	defer cancel()

	cmd := exec.CommandContext(ctx, "apt-cache", "show", name)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			// apt-cache exits non-zero for unknown packages
			if strings.Contains(stderr.String(), "No packages found") || stdout.Len() == 0 {
				return Entry{}, false, nil
			}
		}
		return Entry{}, false, fmt.Errorf("package index unavailable (apt-cache show %s): %w", name, err)
	}
	if stdout.Len() == 0 {
		return Entry{}, false, nil
	}

	return parseShowOutput(stdout.String()), true, nil
}

func (a *AptCache) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return 30 * time.Second
}

// parseShowOutput extracts the first Description and Homepage stanza fields.
func parseShowOutput(out string) Entry {
	var entry Entry
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case entry.Summary == "" && strings.HasPrefix(line, "Description-en: "):
			entry.Summary = strings.TrimPrefix(line, "Description-en: ")
		case entry.Summary == "" && strings.HasPrefix(line, "Description: "):
			entry.Summary = strings.TrimPrefix(line, "Description: ")
		case entry.Homepage == "" && strings.HasPrefix(line, "Homepage: "):
			entry.Homepage = strings.TrimPrefix(line, "Homepage: ")
		}
	}
	return entry
}

// Static is a fixed in-memory index, used by tests and on hosts without apt.
type Static map[string]Entry

// Lookup reports the entry for name if present.
func (s Static) Lookup(name string) (Entry, bool, error) {
	e, ok := s[name]
	return e, ok, nil
}
