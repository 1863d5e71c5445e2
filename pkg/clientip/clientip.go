package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the client IP for rate limiting. Uses r.RemoteAddr
// only, never proxy headers, since those are spoofable when traffic hits the
// app directly.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return strings.TrimSpace(host)
}
