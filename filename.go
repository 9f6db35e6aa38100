package repodoc

import (
	"net/url"
	"strings"
	"time"
)

// DateLayout formats the date suffix of generated file names.
const DateLayout = "2006-01-02"

// GenerateFileName derives a download file name from a website URL:
// the first label of the hostname (without "www.") followed by "-docs-"
// and the date. Falls back to "website-docs-<date>.md" when the URL has
// no usable hostname.
func GenerateFileName(rawURL string, now time.Time) string {
	date := now.Format(DateLayout)

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "website-docs-" + date + ".md"
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	label, _, _ := strings.Cut(host, ".")
	if label == "" {
		return "website-docs-" + date + ".md"
	}
	return label + "-docs-" + date + ".md"
}
