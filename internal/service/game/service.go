package game

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/HuiyanRoy/GomokuMaster/internal/service/bot"
	"github.com/HuiyanRoy/GomokuMaster/pkg/uid"
)

const (
	ReasonFiveInARow = "five_in_a_row"
	ReasonDraw       = "draw"
	ReasonBoardFull  = "board_full"
)

type ConnectionManagerInterface interface {
	SendMessage(userID int64, message domain.ServerMessage) error
}

type GameRepository interface {
	SaveGame(record domain.GameRecord) error
}

type StatsProvider interface {
	GetStats(userID int64) (domain.GameStats, error)
	Invalidate(userID int64)
}

type Options struct {
	ThinkDelay        time.Duration  // pause before the computer replies
	DefaultDifficulty bot.Difficulty // used when new_game names no tier
	IdleTimeout       time.Duration
}

// SessionManager owns every in-memory game. A user has at most one.
type SessionManager struct {
	Session    map[string]*GameSession // gameID → GameSession
	UserToGame map[int64]string        // userID → gameID (for quick lookup)
	mu         sync.RWMutex
	repo       GameRepository
	stats      StatsProvider
	conn       ConnectionManagerInterface
	opts       Options
}

func NewSessionManager(repo GameRepository, stats StatsProvider, conn ConnectionManagerInterface, opts Options) *SessionManager {
	if opts.DefaultDifficulty == "" {
		opts.DefaultDifficulty = bot.DifficultyExpert
	}
	return &SessionManager{
		Session:    make(map[string]*GameSession),
		UserToGame: make(map[int64]string),
		repo:       repo,
		stats:      stats,
		conn:       conn,
		opts:       opts,
	}
}

// GameSession is one human-vs-computer game.
type GameSession struct {
	GameID       string
	UserID       int64
	Username     string
	Game         *domain.Game
	Difficulty   bot.Difficulty
	Stats        domain.GameStats // the user's record, updated locally when this game ends
	Reason       string
	CreatedAt    time.Time
	FinishedAt   time.Time
	LastActivity time.Time
	thinking     bool
	closed       bool
	botTimer     *time.Timer
	rng          *rand.Rand
	mu           sync.Mutex
	manager      *SessionManager
}

// StartGame replaces any session the user has with a fresh board. An empty
// difficulty selects the configured default.
func (sm *SessionManager) StartGame(userID int64, username, difficulty string) (*GameSession, error) {
	level := sm.opts.DefaultDifficulty
	if difficulty != "" {
		parsed, ok := bot.ParseDifficulty(difficulty)
		if !ok {
			return nil, domain.ErrUnknownLevel
		}
		level = parsed
	}

	stats, err := sm.stats.GetStats(userID)
	if err != nil {
		log.Printf("[GAME] Could not load stats for user %d: %v", userID, err)
	}

	now := time.Now()
	gs := &GameSession{
		GameID:       uid.GenerateGameID(),
		UserID:       userID,
		Username:     username,
		Game:         domain.NewGame(),
		Difficulty:   level,
		Stats:        stats,
		CreatedAt:    now,
		LastActivity: now,
		rng:          rand.New(rand.NewSource(now.UnixNano())),
		manager:      sm,
	}

	sm.mu.Lock()
	if oldID, exists := sm.UserToGame[userID]; exists {
		if old := sm.Session[oldID]; old != nil {
			old.close()
		}
		delete(sm.Session, oldID)
		log.Printf("[SESSION] Replaced session %s for user %d", oldID, userID)
	}
	sm.Session[gs.GameID] = gs
	sm.UserToGame[userID] = gs.GameID
	sm.mu.Unlock()

	log.Printf("[SESSION] Created session %s: %s (ID: %d) vs %s on %s",
		gs.GameID, username, userID, domain.ComputerName, level)

	gs.mu.Lock()
	gs.sendStateLocked("game_start")
	gs.mu.Unlock()
	return gs, nil
}

func (sm *SessionManager) GetSessionByUserID(userID int64) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	gameID, exists := sm.UserToGame[userID]
	if !exists {
		return nil, false
	}

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) GetSessionByGameID(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.Session[gameID]
	return session, exists
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.removeSessionLocked(gameID)
}

// removeSessionLocked removes session from maps without acquiring lock (caller must hold it)
func (sm *SessionManager) removeSessionLocked(gameID string) error {
	session, exists := sm.Session[gameID]
	if !exists {
		return fmt.Errorf("session not found")
	}

	log.Printf("[SESSION] Removing session %s", gameID)

	session.close()
	if sm.UserToGame[session.UserID] == gameID {
		delete(sm.UserToGame, session.UserID)
	}
	delete(sm.Session, gameID)
	return nil
}

func (sm *SessionManager) sessionFor(userID int64) (*GameSession, error) {
	gs, ok := sm.GetSessionByUserID(userID)
	if !ok {
		return nil, domain.ErrNoActiveGame
	}
	return gs, nil
}

func (sm *SessionManager) HandleMove(userID int64, row, col int) error {
	gs, err := sm.sessionFor(userID)
	if err != nil {
		return err
	}
	return gs.HandleMove(row, col)
}

func (sm *SessionManager) HandleUndo(userID int64) error {
	gs, err := sm.sessionFor(userID)
	if err != nil {
		return err
	}
	return gs.HandleUndo()
}

func (sm *SessionManager) HandleDifficultyChange(userID int64, difficulty string) error {
	gs, err := sm.sessionFor(userID)
	if err != nil {
		return err
	}
	return gs.HandleDifficultyChange(difficulty)
}

// HandleReconnect re-sends the board of the user's current game, if any.
func (sm *SessionManager) HandleReconnect(userID int64) bool {
	gs, ok := sm.GetSessionByUserID(userID)
	if !ok {
		return false
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.LastActivity = time.Now()
	gs.sendStateLocked("game_resumed")
	return true
}

// CleanupIdleSessions drops sessions nobody touched within the idle timeout,
// finished or not. A session waiting on the computer is never idle.
func (sm *SessionManager) CleanupIdleSessions() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	count := 0
	for gameID, session := range sm.Session {
		session.mu.Lock()
		idle := !session.thinking && now.Sub(session.LastActivity) > sm.opts.IdleTimeout
		session.mu.Unlock()

		if idle {
			sm.removeSessionLocked(gameID)
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: Removed %d idle game sessions", count)
	}
	return count
}

// Snapshot is a read-only view of a session for the HTTP layer.
type Snapshot struct {
	GameID     string    `json:"gameId"`
	Difficulty string    `json:"difficulty"`
	Board      [][]int   `json:"board"`
	NextTurn   int       `json:"nextTurn"`
	Status     string    `json:"status"`
	MoveCount  int       `json:"moveCount"`
	Thinking   bool      `json:"thinking"`
	StartedAt  time.Time `json:"startedAt"`
}

func (sm *SessionManager) Snapshot(userID int64) (Snapshot, bool) {
	gs, ok := sm.GetSessionByUserID(userID)
	if !ok {
		return Snapshot{}, false
	}
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return Snapshot{
		GameID:     gs.GameID,
		Difficulty: string(gs.Difficulty),
		Board:      gs.Game.Board.Ints(),
		NextTurn:   int(gs.Game.CurrentPlayer),
		Status:     string(gs.Game.Status),
		MoveCount:  gs.Game.MoveCount(),
		Thinking:   gs.thinking,
		StartedAt:  gs.CreatedAt,
	}, true
}

func (sm *SessionManager) ActiveSessions() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.Session)
}

// HandleMove places the human's stone and, if the game goes on, schedules
// the computer's reply after the think delay.
func (gs *GameSession) HandleMove(row, col int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.Game.IsFinished() {
		return domain.ErrGameOver
	}
	if gs.thinking {
		return domain.ErrBotThinking
	}

	at := domain.Coordinate{Row: row, Col: col}
	if err := gs.Game.MakeMove(domain.Player1, at); err != nil {
		return err
	}
	gs.LastActivity = time.Now()
	gs.sendMoveLocked(at, domain.Player1)

	if gs.Game.IsFinished() {
		gs.finishLocked()
		return nil
	}

	gs.thinking = true
	gs.send(domain.ServerMessage{Type: "bot_thinking", GameID: gs.GameID})
	gs.botTimer = time.AfterFunc(gs.manager.opts.ThinkDelay, func() {
		if err := gs.HandleBotMove(); err != nil {
			log.Printf("[BOT] Error handling bot move in %s: %v", gs.GameID, err)
		}
	})
	return nil
}

func (gs *GameSession) HandleBotMove() error {
	// Acquire lock since this is entry point from the timer goroutine
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.thinking = false
	if gs.closed || gs.Game.IsFinished() || gs.Game.CurrentPlayer != domain.Player2 {
		return nil
	}

	move, ok := bot.CalculateBestMove(gs.Game.Board, gs.Difficulty, gs.rng)
	if !ok {
		log.Printf("[BOT] No legal move in %s, declaring a draw", gs.GameID)
		gs.Game.Draw()
		gs.Reason = ReasonBoardFull
		gs.finishLocked()
		return nil
	}

	if err := gs.Game.MakeMove(domain.Player2, move); err != nil {
		return err
	}
	gs.LastActivity = time.Now()
	gs.sendMoveLocked(move, domain.Player2)

	if gs.Game.IsFinished() {
		gs.finishLocked()
	}
	return nil
}

// HandleUndo takes back the human's last move and the computer's answer.
func (gs *GameSession) HandleUndo() error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.thinking {
		return domain.ErrBotThinking
	}
	if err := gs.Game.Undo(); err != nil {
		return err
	}
	gs.LastActivity = time.Now()

	gs.send(domain.ServerMessage{
		Type:      "undo_done",
		GameID:    gs.GameID,
		Board:     gs.Game.Board.Ints(),
		NextTurn:  int(gs.Game.CurrentPlayer),
		MoveCount: gs.Game.MoveCount(),
	})
	return nil
}

// HandleDifficultyChange applies from the computer's next move on.
func (gs *GameSession) HandleDifficultyChange(difficulty string) error {
	level, ok := bot.ParseDifficulty(difficulty)
	if !ok {
		return domain.ErrUnknownLevel
	}

	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.Difficulty = level
	gs.LastActivity = time.Now()
	gs.send(domain.ServerMessage{
		Type:       "difficulty_changed",
		GameID:     gs.GameID,
		Difficulty: string(level),
	})
	return nil
}

func (gs *GameSession) IsThinking() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.thinking
}

func (gs *GameSession) close() {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.closed = true
	gs.thinking = false
	if gs.botTimer != nil {
		gs.botTimer.Stop()
		gs.botTimer = nil
	}
}

func (gs *GameSession) send(msg domain.ServerMessage) {
	if err := gs.manager.conn.SendMessage(gs.UserID, msg); err != nil {
		log.Printf("[GAME] Failed to send %s to user %d: %v", msg.Type, gs.UserID, err)
	}
}

func (gs *GameSession) sendStateLocked(msgType string) {
	stats := gs.Stats
	gs.send(domain.ServerMessage{
		Type:       msgType,
		GameID:     gs.GameID,
		Opponent:   domain.ComputerName,
		Difficulty: string(gs.Difficulty),
		YourPlayer: int(domain.Player1),
		Board:      gs.Game.Board.Ints(),
		NextTurn:   int(gs.Game.CurrentPlayer),
		MoveCount:  gs.Game.MoveCount(),
		Stats:      &stats,
	})
}

func (gs *GameSession) sendMoveLocked(at domain.Coordinate, player domain.PlayerID) {
	row, col := at.Row, at.Col
	gs.send(domain.ServerMessage{
		Type:      "move_made",
		GameID:    gs.GameID,
		Row:       &row,
		Col:       &col,
		Player:    int(player),
		Board:     gs.Game.Board.Ints(),
		NextTurn:  int(gs.Game.CurrentPlayer),
		MoveCount: gs.Game.MoveCount(),
	})
}

func (gs *GameSession) winnerName() string {
	switch gs.Game.Winner {
	case domain.Player1:
		return gs.Username
	case domain.Player2:
		return domain.ComputerName
	}
	return "draw"
}

// finishLocked announces the result and persists the game in the background.
func (gs *GameSession) finishLocked() {
	gs.FinishedAt = time.Now()
	if gs.Reason == "" {
		gs.Reason = ReasonDraw
		if gs.Game.Status == domain.StatusWon {
			gs.Reason = ReasonFiveInARow
		}
	}

	result := domain.ResultFor(gs.Game.Winner)
	gs.Stats.Record(result)
	stats := gs.Stats

	gs.send(domain.ServerMessage{
		Type:         "game_over",
		GameID:       gs.GameID,
		Winner:       gs.winnerName(),
		Reason:       gs.Reason,
		Board:        gs.Game.Board.Ints(),
		WinningCells: gs.Game.WinningCells,
		MoveCount:    gs.Game.MoveCount(),
		Stats:        &stats,
	})

	log.Printf("[GAME] Game %s finished: %s (%s) after %d moves", gs.GameID, result, gs.Reason, gs.Game.MoveCount())

	gs.saveGameAsync(domain.GameRecord{
		GameID:          gs.GameID,
		UserID:          gs.UserID,
		Difficulty:      string(gs.Difficulty),
		Result:          result,
		Reason:          gs.Reason,
		Moves:           append([]domain.Move(nil), gs.Game.Moves...),
		TotalMoves:      gs.Game.MoveCount(),
		DurationSeconds: int(gs.FinishedAt.Sub(gs.CreatedAt).Seconds()),
		CreatedAt:       gs.CreatedAt,
		FinishedAt:      gs.FinishedAt,
	})
}

// Saves game data to database in background to avoid blocking game_over messages
func (gs *GameSession) saveGameAsync(record domain.GameRecord) {
	repo, stats := gs.manager.repo, gs.manager.stats
	go func() {
		if err := repo.SaveGame(record); err != nil {
			log.Printf("[GAME] Error saving game %s: %v", record.GameID, err)
			return
		}
		stats.Invalidate(record.UserID)
		log.Printf("[GAME] Game %s saved successfully", record.GameID)
	}()
}
