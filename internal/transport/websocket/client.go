package websocket

import (
	"sync"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ConnectionManager handles active WebSocket connections thread-safely
type ConnectionManager struct {
	connections map[int64]*websocket.Conn
	usernames   map[int64]string

	// conn.WriteJSON is not safe for concurrent use
	writeMu map[int64]*sync.Mutex

	mu sync.RWMutex // Protects the maps themselves
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[int64]*websocket.Conn),
		usernames:   make(map[int64]string),
		writeMu:     make(map[int64]*sync.Mutex),
	}
}

// AddConnection registers a connection. An older socket of the same user is
// closed, so a user plays from one tab at a time.
func (cm *ConnectionManager) AddConnection(userID int64, conn *websocket.Conn, username string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if oldConn, exists := cm.connections[userID]; exists && oldConn != conn {
		oldConn.Close()
	}

	cm.connections[userID] = conn
	cm.usernames[userID] = username
	cm.writeMu[userID] = &sync.Mutex{}
}

// RemoveConnection removes a user's connection and cleans up locks
func (cm *ConnectionManager) RemoveConnection(userID int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if conn, exists := cm.connections[userID]; exists {
		conn.Close()
		cm.deleteLocked(userID)
	}
}

// RemoveConnectionIfMatching leaves a newer connection of the same user alone.
func (cm *ConnectionManager) RemoveConnectionIfMatching(userID int64, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if currentConn, exists := cm.connections[userID]; exists && currentConn == conn {
		currentConn.Close()
		cm.deleteLocked(userID)
	}
}

func (cm *ConnectionManager) deleteLocked(userID int64) {
	delete(cm.connections, userID)
	delete(cm.usernames, userID)
	delete(cm.writeMu, userID)
}

func (cm *ConnectionManager) IsCurrentConnection(userID int64, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	currentConn, exists := cm.connections[userID]
	return exists && currentConn == conn
}

// SendMessage writes a JSON message to the user's socket. Messages for
// users without a connection are dropped.
func (cm *ConnectionManager) SendMessage(userID int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[userID]
	mu, muExists := cm.writeMu[userID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// SendError wraps err in an error message for the user.
func (cm *ConnectionManager) SendError(userID int64, err error) error {
	return cm.SendMessage(userID, domain.ServerMessage{Type: "error", Message: err.Error()})
}

// DisconnectUser tells the client why and closes the socket.
func (cm *ConnectionManager) DisconnectUser(userID int64, reason string) {
	msg := domain.ServerMessage{
		Type:    "force_disconnect",
		Message: reason,
	}
	_ = cm.SendMessage(userID, msg)
	cm.RemoveConnection(userID)
}

// GetUsername returns the username for a connected user
func (cm *ConnectionManager) GetUsername(userID int64) (string, bool) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	name, exists := cm.usernames[userID]
	return name, exists
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
