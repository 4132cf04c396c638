// Package normalize classifies raw history URLs and reduces the web ones to
// their canonical top-level form, which is the grouping key for ranking.
package normalize

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/histy/histy/internal/history"
)

// Reason classifies why a record was rejected.
type Reason string

const (
	// ReasonNonWebScheme marks URLs whose scheme is outside the accepted
	// web set (chrome://, file://, ftp://, ...).
	ReasonNonWebScheme Reason = "non-web-scheme"

	// ReasonMalformed marks URLs that do not parse at all.
	ReasonMalformed Reason = "malformed"
)

// Entry is a record reduced to its canonical URL, ready for aggregation.
type Entry struct {
	CanonicalURL string
	VisitCount   int64
}

// Rejection is a record excluded from ranking, retained for diagnostics.
type Rejection struct {
	URL    string
	Reason Reason

	maxLogLen int
}

// LogURL returns the rejected URL bounded to the configured maximum number
// of characters, ellipsis-suffixed when truncated. The cut falls on a rune
// boundary so the diagnostic line stays valid UTF-8. The bound applies to
// diagnostic output only; ranked URLs are never truncated.
func (r Rejection) LogURL() string {
	if r.maxLogLen <= 0 || utf8.RuneCountInString(r.URL) <= r.maxLogLen {
		return r.URL
	}
	runes := []rune(r.URL)
	return string(runes[:r.maxLogLen]) + "..."
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s (%s)", r.LogURL(), r.Reason)
}

// defaultPorts maps accepted schemes to the port canonicalization drops.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// Normalizer reduces raw visits to canonical entries. It is pure and total:
// every input yields exactly one of Entry or Rejection.
type Normalizer struct {
	maxURLLen int
}

// New returns a Normalizer whose rejection log output is bounded to
// maxURLLen characters.
func New(maxURLLen int) *Normalizer {
	return &Normalizer{maxURLLen: maxURLLen}
}

// Normalize classifies raw. Web URLs (http, https) come back as an Entry
// holding the canonical scheme://host/ form; everything else comes back as
// a Rejection with a typed reason.
func (n *Normalizer) Normalize(raw history.RawVisit) (Entry, *Rejection) {
	u, err := url.Parse(raw.URL)
	if err != nil {
		return Entry{}, n.reject(raw.URL, ReasonMalformed)
	}

	scheme := strings.ToLower(u.Scheme)
	if _, ok := defaultPorts[scheme]; !ok {
		return Entry{}, n.reject(raw.URL, ReasonNonWebScheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return Entry{}, n.reject(raw.URL, ReasonMalformed)
	}

	// Hostname strips the brackets from IPv6 literals; restore them so the
	// canonical form stays a valid URL.
	if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}

	// Keep the port only when it differs from the scheme default.
	if port := u.Port(); port != "" && port != defaultPorts[scheme] {
		host += ":" + port
	}

	return Entry{
		CanonicalURL: scheme + "://" + host + "/",
		VisitCount:   raw.VisitCount,
	}, nil
}

// Host extracts the bare host (no port) from a canonical URL. Used for
// matching configured domain exclusions.
func Host(canonical string) string {
	u, err := url.Parse(canonical)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func (n *Normalizer) reject(rawURL string, reason Reason) *Rejection {
	return &Rejection{URL: rawURL, Reason: reason, maxLogLen: n.maxURLLen}
}
