// Package cookie parses pre-captured browser cookie strings into credential
// sets and splits multi-account credential sources.
package cookie

import (
	"net/url"
	"strings"
)

// Parse turns a raw "name=value; name2=value2" cookie header string into a
// name->value map. Segments without '=' are discarded, values are
// percent-decoded, and on duplicate names the last occurrence wins, matching
// standard cookie-header semantics. An empty map means no valid pairs were
// found; callers treat that as a credential format error.
func Parse(raw string) map[string]string {
	cookies := make(map[string]string)
	for _, segment := range strings.Split(raw, ";") {
		segment = strings.TrimSpace(segment)
		name, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		cookies[name] = value
	}
	return cookies
}

// SplitCredentials splits a credential source holding one or more raw cookie
// strings: '&'-delimited if present, otherwise newline-delimited, otherwise a
// single entry. Entries that are empty after trimming are dropped.
func SplitCredentials(src string) []string {
	var parts []string
	switch {
	case strings.Contains(src, "&"):
		parts = strings.Split(src, "&")
	case strings.Contains(src, "\n"):
		parts = strings.Split(src, "\n")
	default:
		parts = []string{src}
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
