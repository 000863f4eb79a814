package clientip

import (
	"net"
	"net/http"
	"net/textproto"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Extractor resolves the client address from trusted proxy headers.
type Extractor struct {
	headers []string
}

// New creates an extractor trusting the given headers, in priority order.
// No headers means DefaultHeaders. Pass "-" alone to trust RemoteAddr only.
func New(headers ...string) *Extractor {
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	if len(headers) == 1 && headers[0] == "-" {
		headers = nil
	}

	canonical := make([]string, 0, len(headers))
	for _, h := range headers {
		if h = strings.TrimSpace(h); h != "" {
			canonical = append(canonical, textproto.CanonicalMIMEHeaderKey(h))
		}
	}
	return &Extractor{headers: canonical}
}

var defaultExtractor = New()

// GetIP returns the client's IP address using DefaultHeaders.
func GetIP(r *http.Request) string {
	return defaultExtractor.IP(r)
}

// IP returns the first valid address found in the trusted headers or RemoteAddr.
// Forwarded lists yield their left-most valid entry.
func (e *Extractor) IP(r *http.Request) string {
	for _, h := range e.headers {
		for _, value := range r.Header.Values(h) {
			for candidate := range strings.SplitSeq(value, ",") {
				if ip := parseIP(candidate); ip != "" {
					return ip
				}
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
