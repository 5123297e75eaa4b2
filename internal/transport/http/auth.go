package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/session"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/http/middleware"
	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/HuiyanRoy/GomokuMaster/pkg/httputil"
	"github.com/HuiyanRoy/GomokuMaster/pkg/useragent"
	"github.com/gin-gonic/gin"
)

type Disconnector interface {
	DisconnectUser(userID int64, reason string)
}

type AuthService interface {
	Register(username, password string, client session.Client) (*session.LoginResult, error)
	Login(username, password string, client session.Client) (*session.LoginResult, error)
	Logout(claims *auth.Claims) error
	GetUser(userID int64) (*domain.User, error)
}

type StatsReader interface {
	GetStats(userID int64) (domain.GameStats, error)
}

type AuthHandler struct {
	AuthService AuthService
	Stats       StatsReader
	ConnManager Disconnector // Optional, can be nil
}

func NewAuthHandler(as AuthService, stats StatsReader, cm Disconnector) *AuthHandler {
	return &AuthHandler{
		AuthService: as,
		Stats:       stats,
		ConnManager: cm,
	}
}

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID       int64            `json:"id"`
	Username string           `json:"username"`
	Stats    domain.GameStats `json:"stats"`
	WinRate  int              `json:"winRate"`
}

// authStatus maps auth errors to HTTP status codes.
func authStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidUsername),
		errors.Is(err, domain.ErrReservedUsername),
		errors.Is(err, domain.ErrWeakPassword):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, status int, err error) {
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		msg = "Internal server error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func clientOf(r *http.Request) session.Client {
	return session.Client{
		DeviceInfo: useragent.ExtractDeviceInfo(r),
		IPAddress:  useragent.ExtractIPAddress(r),
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	res, err := h.AuthService.Register(req.Username, req.Password, clientOf(c.Request))
	if err != nil {
		writeError(c, authStatus(err), err)
		return
	}

	httputil.SetAuthCookie(c.Writer, res.Token, res.ExpiresAt)
	c.JSON(http.StatusCreated, gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      userResponse{ID: res.User.ID, Username: res.User.Username},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	res, err := h.AuthService.Login(req.Username, req.Password, clientOf(c.Request))
	if err != nil {
		writeError(c, authStatus(err), err)
		return
	}

	stats, err := h.Stats.GetStats(res.User.ID)
	if err != nil {
		log.Printf("[AUTH] Could not load stats for user %d: %v", res.User.ID, err)
	}

	httputil.SetAuthCookie(c.Writer, res.Token, res.ExpiresAt)
	c.JSON(http.StatusOK, gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      userResponse{ID: res.User.ID, Username: res.User.Username, Stats: stats, WinRate: stats.WinRate()},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.AuthService.Logout(claims); err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if h.ConnManager != nil {
		h.ConnManager.DisconnectUser(claims.UserID, "Logged out")
	}

	httputil.ClearAuthCookie(c.Writer)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)

	user, err := h.AuthService.GetUser(userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	stats, err := h.Stats.GetStats(userID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userResponse{ID: user.ID, Username: user.Username, Stats: stats, WinRate: stats.WinRate()},
	})
}
