package useragent

import (
	"net/http/httptest"
	"testing"
)

func TestExtractDeviceInfo(t *testing.T) {
	tests := []struct {
		ua   string
		want string
	}{
		{"", "Unknown Device"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36", "Chrome 120 on Windows"},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.2210.91", "Edge 120 on Windows"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1", "Safari 604 on iOS"},
		{"Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.6045.163 Mobile Safari/537.36", "Chrome 119 on Android"},
		{"Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0", "Firefox 121 on Linux"},
		{"curl/8.4.0", "Unknown Browser on Unknown OS"},
	}
	for _, tc := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("User-Agent", tc.ua)
		if got := ExtractDeviceInfo(r); got != tc.want {
			t.Errorf("%q: got %q, want %q", tc.ua, got, tc.want)
		}
	}
}

func TestExtractIPAddress(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:51234"
	if got := ExtractIPAddress(r); got != "10.0.0.5" {
		t.Fatalf("remote addr: got %q", got)
	}

	r.Header.Set("X-Real-IP", " 192.168.1.9 ")
	if got := ExtractIPAddress(r); got != "192.168.1.9" {
		t.Fatalf("x-real-ip: got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ExtractIPAddress(r); got != "203.0.113.7" {
		t.Fatalf("x-forwarded-for: got %q", got)
	}
}
