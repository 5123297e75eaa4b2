package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/config"
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/game"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/session"
	"github.com/HuiyanRoy/GomokuMaster/internal/transport/http/middleware"
	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/HuiyanRoy/GomokuMaster/pkg/httputil"
	"github.com/gin-gonic/gin"
)

type fakeAuthService struct {
	loggedOut    []string
	disconnected []int64
}

func (f *fakeAuthService) Register(username, password string, client session.Client) (*session.LoginResult, error) {
	if username == "taken" {
		return nil, domain.ErrUsernameTaken
	}
	if len(password) < 6 {
		return nil, domain.ErrWeakPassword
	}
	return &session.LoginResult{
		User:      &domain.User{ID: 1, Username: username},
		Token:     "token-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Login(username, password string, client session.Client) (*session.LoginResult, error) {
	if password != "secret1" {
		return nil, domain.ErrInvalidCredentials
	}
	return &session.LoginResult{
		User:      &domain.User{ID: 1, Username: username},
		Token:     "token-2",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (f *fakeAuthService) Logout(claims *auth.Claims) error {
	f.loggedOut = append(f.loggedOut, claims.SessionID)
	return nil
}

func (f *fakeAuthService) GetUser(userID int64) (*domain.User, error) {
	if userID != 1 {
		return nil, nil
	}
	return &domain.User{ID: 1, Username: "alice"}, nil
}

func (f *fakeAuthService) ValidateToken(token string) (*auth.Claims, error) {
	if token != "good" {
		return nil, domain.ErrSessionRevoked
	}
	return &auth.Claims{UserID: 1, Username: "alice", SessionID: "s1"}, nil
}

func (f *fakeAuthService) UpdateSessionActivity(string) error { return nil }

func (f *fakeAuthService) DisconnectUser(userID int64, reason string) {
	f.disconnected = append(f.disconnected, userID)
}

type fakeStats struct{}

func (fakeStats) GetStats(int64) (domain.GameStats, error) {
	return domain.GameStats{Wins: 3, Losses: 1}, nil
}

type fakeHistory struct{}

func (fakeHistory) GetUserGameHistory(userID int64, limit int) ([]domain.GameRecord, error) {
	return []domain.GameRecord{{GameID: "g1", UserID: userID, Result: domain.ResultWin}}, nil
}

func (fakeHistory) GetGameByID(gameID string, userID int64) (*domain.GameRecord, error) {
	if gameID != "g1" {
		return nil, nil
	}
	return &domain.GameRecord{
		GameID: "g1",
		UserID: userID,
		Moves:  []domain.Move{{Row: 4, Col: 4, Player: domain.Player1}, {Row: 4, Col: 5, Player: domain.Player2}},
	}, nil
}

type fakeLive struct{}

func (fakeLive) Snapshot(userID int64) (game.Snapshot, bool) {
	if userID != 1 {
		return game.Snapshot{}, false
	}
	return game.Snapshot{GameID: "live", Difficulty: "easy", MoveCount: 2}, true
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeAuthService) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{FrontendURL: "http://localhost:5173"}
	t.Cleanup(func() { config.AppConfig = prev })

	gin.SetMode(gin.TestMode)
	svc := &fakeAuthService{}
	authHandler := NewAuthHandler(svc, fakeStats{}, svc)
	historyHandler := NewHistoryHandler(game.NewService(fakeHistory{}))
	gameHandler := NewGameHandler(fakeLive{}, fakeStats{})

	r := gin.New()
	r.GET("/healthz", Health)
	r.GET("/api/difficulties", gameHandler.Difficulties)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware(svc))
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/me", authHandler.Me)
	protected.GET("/stats", gameHandler.GetStats)
	protected.GET("/game", gameHandler.CurrentGame)
	protected.GET("/history", historyHandler.GetHistory)
	protected.GET("/history/:id", historyHandler.GetGameDetails)
	return r, svc
}

func do(r *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer good")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginHandlers(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"register", "/api/auth/register", `{"username":"alice","password":"secret1"}`, http.StatusCreated},
		{"register taken", "/api/auth/register", `{"username":"taken","password":"secret1"}`, http.StatusConflict},
		{"register weak", "/api/auth/register", `{"username":"bob","password":"123"}`, http.StatusBadRequest},
		{"register missing", "/api/auth/register", `{"username":"bob"}`, http.StatusBadRequest},
		{"login", "/api/auth/login", `{"username":"alice","password":"secret1"}`, http.StatusOK},
		{"login wrong", "/api/auth/login", `{"username":"alice","password":"nope123"}`, http.StatusUnauthorized},
		{"login malformed", "/api/auth/login", `{`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, http.MethodPost, tc.path, tc.body, false)
			if w.Code != tc.status {
				t.Fatalf("got %d, want %d: %s", w.Code, tc.status, w.Body.String())
			}
			if tc.status < 300 && !strings.Contains(w.Header().Get("Set-Cookie"), httputil.AuthCookieName) {
				t.Fatal("auth cookie not set")
			}
		})
	}
}

func TestLogoutHandler(t *testing.T) {
	r, svc := newTestRouter(t)

	if w := do(r, http.MethodPost, "/api/auth/logout", "", false); w.Code != http.StatusUnauthorized {
		t.Fatalf("logout without a token: got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/auth/logout", "", true); w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "s1" {
		t.Fatalf("session not logged out: %v", svc.loggedOut)
	}
	if len(svc.disconnected) != 1 || svc.disconnected[0] != 1 {
		t.Fatalf("websocket not closed: %v", svc.disconnected)
	}
}

func TestMeAndStats(t *testing.T) {
	r, _ := newTestRouter(t)

	w := do(r, http.MethodGet, "/api/auth/me", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("got %d", w.Code)
	}
	var me struct {
		User userResponse `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &me); err != nil {
		t.Fatal(err)
	}
	if me.User.Username != "alice" || me.User.Stats.Wins != 3 || me.User.WinRate != 75 {
		t.Fatalf("unexpected /me %+v", me.User)
	}

	w = do(r, http.MethodGet, "/api/stats", "", true)
	var stats map[string]int
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats["total"] != 4 || stats["winRate"] != 75 {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestHistoryHandlers(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/api/history?limit=abc", "", true); w.Code != http.StatusBadRequest {
		t.Fatalf("bad limit: got %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/history?limit=5", "", true)
	var games []domain.GameRecord
	if err := json.Unmarshal(w.Body.Bytes(), &games); err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].GameID != "g1" {
		t.Fatalf("unexpected history %+v", games)
	}

	w = do(r, http.MethodGet, "/api/history/g1", "", true)
	var replay struct {
		Board [][]int `json:"board"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &replay); err != nil {
		t.Fatal(err)
	}
	if replay.Board[4][4] != 1 || replay.Board[4][5] != 2 {
		t.Fatalf("unexpected replay board %v", replay.Board)
	}

	if w := do(r, http.MethodGet, "/api/history/missing", "", true); w.Code != http.StatusNotFound {
		t.Fatalf("missing game: got %d", w.Code)
	}
}

func TestPublicAndGameEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	if w := do(r, http.MethodGet, "/healthz", "", false); w.Code != http.StatusOK {
		t.Fatalf("healthz: got %d", w.Code)
	}

	w := do(r, http.MethodGet, "/api/difficulties", "", false)
	var tiers []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &tiers); err != nil {
		t.Fatal(err)
	}
	if len(tiers) != 6 || tiers[0]["value"] != "simple" || tiers[5]["value"] != "expert" {
		t.Fatalf("unexpected difficulties %v", tiers)
	}

	w = do(r, http.MethodGet, "/api/game", "", true)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"gameId":"live"`) {
		t.Fatalf("unexpected current game %d %s", w.Code, w.Body.String())
	}
}
