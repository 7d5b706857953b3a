package search

import (
	"net/url"
	"strings"
)

// trackingParams are dropped from result URLs before de-duplication.
var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content", "utm_id", "gclid", "fbclid"}

// NormalizeResults canonicalizes result URLs, trims obvious tracking
// parameters and drops exact duplicates. Order is preserved so the first
// occurrence keeps its rank.
func NormalizeResults(results []Result) []Result {
	seen := map[string]struct{}{}
	out := make([]Result, 0, len(results))
	for _, r := range results {
		if r.URL == "" {
			continue
		}
		u, err := url.Parse(r.URL)
		if err != nil || u.Host == "" {
			continue
		}
		normalizeURL(u)
		key := u.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		r.URL = key
		out = append(out, r)
	}
	return out
}

// normalizeURL drops the fragment, lower-cases the host and removes tracking
// parameters. The raw query is filtered pair by pair so the remaining pairs
// keep their order and encoding, including ones url.ParseQuery rejects.
func normalizeURL(u *url.URL) {
	u.Fragment = ""
	u.RawFragment = ""
	u.Host = strings.ToLower(u.Host)
	if u.RawQuery == "" {
		return
	}
	pairs := strings.Split(u.RawQuery, "&")
	kept := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if isTrackingParam(p) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) != len(pairs) {
		u.RawQuery = strings.Join(kept, "&")
	}
}

func isTrackingParam(pair string) bool {
	key, _, _ := strings.Cut(pair, "=")
	if k, err := url.QueryUnescape(key); err == nil {
		key = k
	}
	for _, p := range trackingParams {
		if key == p {
			return true
		}
	}
	return false
}
