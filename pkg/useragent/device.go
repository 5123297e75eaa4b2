package useragent

import (
	"net"
	"net/http"
	"strings"
)

type marker struct {
	token   string
	exclude string
	name    string
}

// order matters: Edge and Chrome both claim Safari, Edge also claims Chrome
var browsers = []marker{
	{token: "Edg/", name: "Edge"},
	{token: "Firefox/", name: "Firefox"},
	{token: "Chrome/", name: "Chrome"},
	{token: "Safari/", exclude: "Chrome", name: "Safari"},
}

var systems = []marker{
	{token: "Android", name: "Android"},
	{token: "iPhone", name: "iOS"},
	{token: "iPad", name: "iOS"},
	{token: "Windows", name: "Windows"},
	{token: "Mac OS X", name: "macOS"},
	{token: "Linux", name: "Linux"},
}

func match(ua string, markers []marker) (marker, bool) {
	for _, m := range markers {
		if strings.Contains(ua, m.token) && (m.exclude == "" || !strings.Contains(ua, m.exclude)) {
			return m, true
		}
	}
	return marker{}, false
}

// majorVersion reads the digits after token, e.g. "Chrome/120.0" -> "120".
func majorVersion(ua, token string) string {
	idx := strings.Index(ua, token)
	if idx < 0 {
		return ""
	}
	rest := ua[idx+len(token):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	return rest[:end]
}

// ExtractDeviceInfo summarises the User-Agent as "Browser 120 on OS" for the
// session list.
func ExtractDeviceInfo(r *http.Request) string {
	ua := r.Header.Get("User-Agent")
	if ua == "" {
		return "Unknown Device"
	}

	browser := "Unknown Browser"
	if m, ok := match(ua, browsers); ok {
		browser = m.name
		if v := majorVersion(ua, m.token); v != "" {
			browser += " " + v
		}
	}

	system := "Unknown OS"
	if m, ok := match(ua, systems); ok {
		system = m.name
	}

	return browser + " on " + system
}

// ExtractIPAddress honours X-Forwarded-For and X-Real-IP from a reverse
// proxy before falling back to the peer address.
func ExtractIPAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
