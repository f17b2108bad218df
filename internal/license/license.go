// Package license resolves a license identifier to canonical license text
// with the year and copyright holder substituted in.
//
// Short permissive licenses ship as bundled templates, stored rot13-encoded
// so the repository does not carry literal license text. Longer copyleft
// texts are fetched from their canonical URLs.
package license

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/distkit/distkit/internal/safewrite"
)

//go:embed assets/*.rot13
var assetsFS embed.FS

// ErrUnknown reports a license identifier that matches no rule.
var ErrUnknown = errors.New("unknown license")

// DefaultFilename is used when no existing *license* file is found.
const DefaultFilename = "LICENSE-2.0.txt"

// Rule maps a license-name pattern to its source and substitution patterns.
// Asset names a bundled rot13 template; URL names a canonical remote text.
// An empty YearPattern means no year substitution; an empty HolderPattern
// means the holder is appended to the end of the text instead.
type Rule struct {
	Pattern       *regexp.Regexp
	Asset         string
	URL           string
	YearPattern   string
	HolderPattern string
}

// rules is ordered; the first matching entry wins.
var rules = []Rule{
	{
		Pattern:       regexp.MustCompile(`(?i)Apache`),
		Asset:         "apache.rot13",
		YearPattern:   `\[yyyy\]`,
		HolderPattern: `\[name of copyright owner\]`,
	},
	{
		Pattern:       regexp.MustCompile(`(?i)Artistic`),
		URL:           "http://www.perlfoundation.org/attachment/legal/artistic-2_0.txt",
		YearPattern:   `2000-2006`,
		HolderPattern: `The Perl Foundation`,
	},
	{
		Pattern:     regexp.MustCompile(`(?i)GPL.*2`),
		URL:         "http://www.gnu.org/licenses/gpl-2.0.txt",
		YearPattern: `END OF TERMS.+`,
	},
	{
		Pattern:     regexp.MustCompile(`(?i)GPL.*3`),
		URL:         "http://www.gnu.org/licenses/gpl-3.0.txt",
		YearPattern: `END OF TERMS.+`,
	},
	{
		Pattern: regexp.MustCompile(`(?i)LGPL`),
		URL:     "http://www.gnu.org/licenses/lgpl.txt",
	},
	{
		Pattern:       regexp.MustCompile(`(?i)MIT`),
		Asset:         "mit-license.rot13",
		YearPattern:   `<year>`,
		HolderPattern: `<copyright holders>`,
	},
	{
		Pattern: regexp.MustCompile(`(?i)Mozilla`),
		URL:     "http://www.mozilla.org/MPL/MPL-1.1.txt",
	},
	{
		Pattern:       regexp.MustCompile(`(?i)BSD`),
		Asset:         "new-bsd-license.rot13",
		YearPattern:   `<YEAR>`,
		HolderPattern: `<OWNER>`,
	},
}

// match returns the first rule whose pattern matches the identifier.
func match(identifier string) (Rule, error) {
	for _, r := range rules {
		if r.Pattern.MatchString(identifier) {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: %q", ErrUnknown, identifier)
}

// FindFile returns the name of an existing *license*-matching file in dir,
// or "" when none exists.
func FindFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name()), "license") {
			return e.Name()
		}
	}
	return ""
}

// Fetcher resolves and writes license files.
type Fetcher struct {
	HTTPClient *http.Client
	Writer     *safewrite.Writer
	Logger     *zap.Logger
	// Now is injectable for tests; nil means time.Now.
	Now func() time.Time
}

// NewFetcher returns a Fetcher with a 30 second HTTP timeout.
func NewFetcher(writer *safewrite.Writer, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Writer:     writer,
		Logger:     logger,
	}
}

// Render resolves the identifier and returns the license text with year and
// holder substituted. It does not touch the filesystem.
func (f *Fetcher) Render(identifier, holder string) (string, error) {
	rule, err := match(identifier)
	if err != nil {
		return "", err
	}

	text, err := f.source(rule)
	if err != nil {
		return "", err
	}

	year := f.now().Format("2006")
	if rule.YearPattern != "" {
		re, err := regexp.Compile(`(?s)` + rule.YearPattern)
		if err != nil {
			return "", fmt.Errorf("bad year pattern for %s: %w", identifier, err)
		}
		text = re.ReplaceAllString(text, year)
	}

	if rule.HolderPattern != "" {
		re, err := regexp.Compile(`(?s)` + rule.HolderPattern)
		if err != nil {
			return "", fmt.Errorf("bad holder pattern for %s: %w", identifier, err)
		}
		text = re.ReplaceAllString(text, holder)
	} else if holder != "" {
		text += " " + holder
	}

	return text, nil
}

// Generate writes the rendered license into dir through the safe writer,
// reusing an existing *license* file name or creating DefaultFilename.
// It returns the filename written to.
func (f *Fetcher) Generate(identifier, holder, dir string) (string, safewrite.Result, error) {
	logger := f.logger()

	text, err := f.Render(identifier, holder)
	if err != nil {
		return "", safewrite.Protected, err
	}

	fname := FindFile(dir)
	if fname == "" {
		fname = DefaultFilename
		logger.Info("creating license file", zap.String("file", fname))
	} else {
		logger.Info("license file already exists", zap.String("file", fname))
	}

	lines := strings.Split(text, "\n")
	lines = append(lines, "", fmt.Sprintf("-- file generated by %s.", safewrite.Marker))

	res, err := f.Writer.Write(lines, filepath.Join(dir, fname))
	return fname, res, err
}

// source loads the rule's text: a bundled rot13 asset or a canonical URL.
func (f *Fetcher) source(rule Rule) (string, error) {
	if rule.Asset != "" {
		data, err := assetsFS.ReadFile("assets/" + rule.Asset)
		if err != nil {
			return "", fmt.Errorf("failed to read bundled license %s: %w", rule.Asset, err)
		}
		return rot13(string(data)), nil
	}

	resp, err := f.httpClient().Get(rule.URL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch license from %s: %w", rule.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch license from %s: HTTP %d", rule.URL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read license from %s: %w", rule.URL, err)
	}
	return string(body), nil
}

func (f *Fetcher) httpClient() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}
	return http.DefaultClient
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return zap.NewNop()
}

func (f *Fetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

// rot13 reverses the letter-substitution cipher on bundled templates.
func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		}
		return r
	}, s)
}
