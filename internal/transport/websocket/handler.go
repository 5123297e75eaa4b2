package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/config"
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/game"
	"github.com/HuiyanRoy/GomokuMaster/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type GameSessions interface {
	StartGame(userID int64, username, difficulty string) (*game.GameSession, error)
	HandleMove(userID int64, row, col int) error
	HandleUndo(userID int64) error
	HandleDifficultyChange(userID int64, difficulty string) error
	HandleReconnect(userID int64) bool
}

type Authenticator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
	GetSession(sessionID string) (*domain.UserSession, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager    *ConnectionManager
	SessionManager GameSessions
	AuthService    Authenticator
	Upgrader       websocket.Upgrader
}

func NewHandler(cm *ConnectionManager, sm GameSessions, as Authenticator) *Handler {
	return &Handler{
		ConnManager:    cm,
		SessionManager: sm,
		AuthService:    as,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// checkOrigin accepts same-origin and non-browser clients, and browsers on
// an allowed origin.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || config.AppConfig == nil {
		return true
	}
	return slices.Contains(config.AppConfig.AllowedOrigins, origin)
}

// HandleWebSocket upgrades the request. Authentication happens on the
// first message.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go keepAlive(conn, done)

	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("[WS] Read error during init: %v", err)
		conn.Close()
		return
	}

	var message domain.ClientMessage
	if err := json.Unmarshal(data, &message); err != nil || message.Type != "init" || message.JWT == "" {
		log.Printf("[WS] Missing initialization or token")
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "First message must be init with a token"})
		conn.Close()
		return
	}

	claims, err := h.AuthService.ValidateToken(message.JWT)
	if err != nil {
		log.Printf("[WS] Invalid token during init: %v", err)
		conn.WriteJSON(domain.ErrorMessage{Type: "error", Message: "Invalid token or session expired"})
		conn.Close()
		return
	}
	userID, username, sessionID := claims.UserID, claims.Username, claims.SessionID

	log.Printf("[WS] Connection initialized for user: %s (ID: %d)", username, userID)
	h.ConnManager.AddConnection(userID, conn, username)

	// The game session outlives the socket; idle cleanup removes it.
	defer func() {
		log.Printf("[WS] Connection closed for user %s", username)
		h.ConnManager.RemoveConnectionIfMatching(userID, conn)
	}()

	h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "connected", Message: username})
	h.SessionManager.HandleReconnect(userID)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] User disconnected unexpectedly: %v", err)
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[WS] Invalid message format: %v", err)
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Invalid message format"})
			continue
		}

		// A logout elsewhere ends this socket on its next message.
		sess, err := h.AuthService.GetSession(sessionID)
		if err != nil || sess == nil || !sess.IsActive {
			log.Printf("[WS] Session %s of user %d is no longer active", sessionID, userID)
			h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Session expired or logged out"})
			return
		}

		h.processMessage(userID, username, msg)
	}
}

// processMessage routes specific actions
func (h *Handler) processMessage(userID int64, username string, msg domain.ClientMessage) {
	var err error
	switch msg.Type {
	case "new_game":
		_, err = h.SessionManager.StartGame(userID, username, msg.Difficulty)
	case "make_move":
		err = h.SessionManager.HandleMove(userID, msg.Row, msg.Col)
	case "undo":
		err = h.SessionManager.HandleUndo(userID)
	case "set_difficulty":
		err = h.SessionManager.HandleDifficultyChange(userID, msg.Difficulty)
	case "resume":
		if !h.SessionManager.HandleReconnect(userID) {
			err = domain.ErrNoActiveGame
		}
	case "ping":
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "pong"})
	default:
		log.Printf("[WS] Unknown message type %q from user %d", msg.Type, userID)
		h.ConnManager.SendMessage(userID, domain.ServerMessage{Type: "error", Message: "Unknown message type"})
	}

	if err != nil {
		h.ConnManager.SendError(userID, err)
	}
}

// keepAlive pings until done is closed or a ping fails.
func keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
