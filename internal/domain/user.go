package domain

import (
	"math"
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSession is one login. Tokens carry the session id so a logout can
// revoke them before they expire.
type UserSession struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	SessionID    string    `json:"session_id"`
	DeviceInfo   string    `json:"device_info"`
	IPAddress    string    `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	LastActivity time.Time `json:"last_activity"`
	IsActive     bool      `json:"is_active"`
}

// GameStats is the human's record against the computer.
type GameStats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Draws  int `json:"draws"`
}

func (s GameStats) Total() int {
	return s.Wins + s.Losses + s.Draws
}

// WinRate is the rounded percentage of games won, 0 when nothing was played.
func (s GameStats) WinRate() int {
	total := s.Total()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Wins) / float64(total) * 100))
}

// Record counts one finished game.
func (s *GameStats) Record(result GameResult) {
	switch result {
	case ResultWin:
		s.Wins++
	case ResultLoss:
		s.Losses++
	default:
		s.Draws++
	}
}

type GameResult string

const (
	ResultWin  GameResult = "win"
	ResultLoss GameResult = "loss"
	ResultDraw GameResult = "draw"
)

// ResultFor maps a finished game's winner to the human's result.
func ResultFor(winner PlayerID) GameResult {
	switch winner {
	case Player1:
		return ResultWin
	case Player2:
		return ResultLoss
	}
	return ResultDraw
}

// GameRecord is a finished game as persisted.
type GameRecord struct {
	GameID          string     `json:"id"`
	UserID          int64      `json:"user_id"`
	Difficulty      string     `json:"difficulty"`
	Result          GameResult `json:"result"`
	Reason          string     `json:"reason"`
	Moves           []Move     `json:"moves,omitempty"`
	TotalMoves      int        `json:"total_moves"`
	DurationSeconds int        `json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
	FinishedAt      time.Time  `json:"finished_at"`
}
