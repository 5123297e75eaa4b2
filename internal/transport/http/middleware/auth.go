package middleware

import (
	"log"
	"net/http"

	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/HuiyanRoy/GomokuMaster/pkg/httputil"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
	UpdateSessionActivity(sessionID string) error
}

// AuthMiddleware validates the JWT (Bearer header or cookie) and the
// session behind it, then stores the user on the gin context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			httputil.ClearAuthCookie(c.Writer)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}

		// Run in background to not block request
		go func(sessionID string) {
			if err := validator.UpdateSessionActivity(sessionID); err != nil {
				log.Printf("[AUTH] Failed to update activity of session %s: %v", sessionID, err)
			}
		}(claims.SessionID)

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// GetClaims returns the claims AuthMiddleware stored.
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
