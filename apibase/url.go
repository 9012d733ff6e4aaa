package apibase

import (
	"fmt"
	"net/url"
	"strings"
)

const upperhex = "0123456789ABCDEF"

// BuildURL combines an optional base origin, a path and ordered query
// items into a URL. Without a base the result is origin-relative.
//
// Query names and values are percent-encoded with the URL query safe set
// except '+', which is always sent as %2B so servers never read it as an
// encoded space.
func BuildURL(baseURL, path string, query []QueryItem) (*url.URL, error) {
	ref := &url.URL{
		Path:     path,
		RawQuery: EncodeQuery(query),
	}

	if baseURL == "" {
		if strings.HasPrefix(path, "//") {
			return nil, fmt.Errorf("%w: path %q would be read as an authority", ErrInvalidURL, path)
		}
		return checkURL(ref)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base: %w", ErrInvalidURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base %q is not absolute", ErrInvalidURL, baseURL)
	}

	u := base.ResolveReference(ref)
	if u.Path == "" {
		u.Path = "/"
	}

	return checkURL(u)
}

// checkURL makes sure u survives a round trip through the parser, which
// rejects control characters and similar input the struct accepts.
func checkURL(u *url.URL) (*url.URL, error) {
	if _, err := url.Parse(u.String()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	return u, nil
}

// EncodeQuery renders items as a raw query string, in order and without
// deduplication. It returns "" for no items.
func EncodeQuery(items []QueryItem) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escapeQuery(item.Name))
		b.WriteByte('=')
		b.WriteString(escapeQuery(item.Value))
	}

	return b.String()
}

func escapeQuery(s string) string {
	var n int
	for i := 0; i < len(s); i++ {
		if !querySafe(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if querySafe(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperhex[c>>4], upperhex[c&15])
	}

	return string(buf)
}

// querySafe reports whether c may appear unescaped in a query component:
// unreserved characters, sub-delims other than '+', and ":@/?".
func querySafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '.', '_', '~',
		'!', '$', '&', '\'', '(', ')', '*', ',', ';', '=',
		':', '@', '/', '?':
		return true
	}

	return false
}
