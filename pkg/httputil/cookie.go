package httputil

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/config"
)

const AuthCookieName = "gomoku_token"

var ErrNoToken = errors.New("no auth token found in cookie or header")

// SetAuthCookie stores the access token in an HttpOnly cookie that expires
// with the token. SameSite=None needs Secure, so plain-http development
// falls back to Lax.
func SetAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	secure := strings.HasPrefix(config.AppConfig.FrontendURL, "https://")

	cookie := &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		cookie.SameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, cookie)
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// GetTokenFromRequest prefers the Authorization header ("Bearer <token>")
// and falls back to the auth cookie.
func GetTokenFromRequest(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		token, found := strings.CutPrefix(header, "Bearer ")
		if found && token != "" {
			return token, nil
		}
	}

	cookie, err := r.Cookie(AuthCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}
