// Package hosting talks to the legacy artifact hosting service: it lists
// previously uploaded release files from the feed, scrapes per-file detail
// pages, downloads artifacts, and publishes files through the upload API.
//
// The wire formats are owned by the hosting service and scraped with
// narrow first-match-or-absent pattern extraction; a field that fails to
// match is recorded as absent, never escalated as a parse error.
package hosting

// Record is one remote artifact entry, rebuilt on every query.
// Zero values mean the field was absent from the feed or detail page.
type Record struct {
	Project       string
	Filename      string
	Updated       string
	Summary       string
	Labels        []string
	SHA1          string
	Date          string
	DownloadCount int
}

// HasChecksum reports whether the detail page published a SHA1 digest.
func (r Record) HasChecksum() bool {
	return r.SHA1 != ""
}

// HasLabel reports whether the record carries the given label.
func (r Record) HasLabel(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// WithoutLabel returns a copy of the label list with the given label removed.
func (r Record) WithoutLabel(label string) []string {
	var out []string
	for _, l := range r.Labels {
		if l != label {
			out = append(out, l)
		}
	}
	return out
}
