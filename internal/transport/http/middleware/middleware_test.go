package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/gin-gonic/gin"
)

type fakeValidator struct{}

func (fakeValidator) ValidateToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &auth.Claims{UserID: 9, Username: "ivy", SessionID: "s9"}, nil
}

func (fakeValidator) UpdateSessionActivity(string) error { return nil }

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeadersMiddleware(), CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/open", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/private", AuthMiddleware(fakeValidator{}), func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok || c.GetInt64(ContextUserID) != 9 {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.Username)
	})
	return r
}

func TestCORS(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		method string
		origin string
		status int
	}{
		{"no origin", http.MethodGet, "", http.StatusOK},
		{"allowed origin", http.MethodGet, "http://localhost:5173", http.StatusOK},
		{"foreign origin", http.MethodGet, "http://evil.example", http.StatusForbidden},
		{"preflight", http.MethodOptions, "http://localhost:5173", http.StatusNoContent},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/open", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("got %d, want %d", w.Code, tc.status)
			}
			if tc.status != http.StatusForbidden && tc.origin != "" && w.Header().Get("Access-Control-Allow-Origin") != tc.origin {
				t.Fatal("allowed origin not echoed")
			}
			if w.Header().Get("X-Content-Type-Options") != "nosniff" {
				t.Fatal("security headers missing")
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("got %d, want %d", w.Code, tc.status)
			}
			if tc.status == http.StatusOK && w.Body.String() != "ivy" {
				t.Fatalf("unexpected body %q", w.Body.String())
			}
		})
	}
}
