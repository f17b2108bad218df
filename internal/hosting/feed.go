package hosting

import (
	"regexp"
	"strconv"
	"strings"
)

// Feed and detail pages are scraped with single-group patterns. safeSearch
// returns "" when a pattern does not match, so every field is
// first-match-or-absent and one bad field never aborts the entry.
var (
	reEntry    = regexp.MustCompile(`(?s)<entry>(.+?)</entry>`)
	reUpdated  = regexp.MustCompile(`(?s)<updated>(.+?)</updated>`)
	reTitle    = regexp.MustCompile(`<title>\s*(.*?)\s*</title>`)
	reLabels   = regexp.MustCompile(`(?s)Labels:(.+?)&lt;`)
	reFilename = regexp.MustCompile(`downloads/detail\?name=(.+?)"`)

	reSHA1  = regexp.MustCompile(`(?s)SHA1 Checksum: ([^<]+)`)
	reDate  = regexp.MustCompile(`(?s)<span class="date"[^>]+ title="([^"]+)"`)
	reCount = regexp.MustCompile(`(?s)>Downloads:&nbsp;</th><td>([^<]+)</td>`)
)

// safeSearch returns the pattern's first group, or "" when there is no
// match. Patterns must have exactly one group.
func safeSearch(re *regexp.Regexp, haystack string) string {
	m := re.FindStringSubmatch(haystack)
	if m == nil {
		return ""
	}
	return m[1]
}

// parseFeed extracts one Record per feed entry. Fields that fail to match
// are left absent rather than failing the entry.
func parseFeed(project, text string) []Record {
	var records []Record
	for _, m := range reEntry.FindAllStringSubmatch(text, -1) {
		entry := m[1]

		var labels []string
		if raw := safeSearch(reLabels, entry); raw != "" {
			labels = strings.Fields(raw)
		}

		records = append(records, Record{
			Project:  project,
			Filename: safeSearch(reFilename, entry),
			Updated:  safeSearch(reUpdated, entry),
			Summary:  safeSearch(reTitle, entry),
			Labels:   labels,
		})
	}
	return records
}

// parseDetail fills the checksum, date, and download count from a detail
// page into rec.
func parseDetail(rec *Record, text string) {
	rec.SHA1 = strings.TrimSpace(safeSearch(reSHA1, text))
	rec.Date = safeSearch(reDate, text)
	if raw := safeSearch(reCount, text); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			rec.DownloadCount = n
		}
	}
}
