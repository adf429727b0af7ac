package goquery

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// resolveHTTP resolves href against base. Returns false for unparseable
// hrefs and non-HTTP targets (mailto:, tel:, javascript:, data:).
func resolveHTTP(base *url.URL, href string) (*url.URL, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return nil, false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil, false
	}
	return resolved, true
}

// sameHost uses exact hostname matching; subdomains are different hosts.
func sameHost(base, target *url.URL) bool {
	return strings.EqualFold(base.Hostname(), target.Hostname())
}

// sameDomain compares registrable domains (eTLD+1), so blog.example.com
// and www.example.com match. Falls back to host matching for hosts
// without a public suffix, such as IP addresses and localhost.
func sameDomain(base, target *url.URL) bool {
	a, errA := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(base.Hostname()))
	b, errB := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(target.Hostname()))
	if errA != nil || errB != nil {
		return sameHost(base, target)
	}
	return a == b
}
