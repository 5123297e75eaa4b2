package domain

import "strings"

// ComputerName is shown as the opponent in every game.
const ComputerName = "Computer"

// IsReservedName reports names a human may not register because they would
// read as the computer opponent.
func IsReservedName(username string) bool {
	switch strings.ToLower(strings.TrimSpace(username)) {
	case "computer", "bot", "ai":
		return true
	}
	return false
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1 // human, black, always moves first
	Player2 PlayerID = 2 // computer, white
)

func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "black"
	case Player2:
		return "white"
	}
	return "empty"
}

const (
	Rows    = 10
	Columns = 10
	ToWin   = 5
	Cells   = Rows * Columns
)

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove   Error = "invalid move"
	ErrOutOfBounds   Error = "cell is out of bounds"
	ErrCellOccupied  Error = "cell is already occupied"
	ErrGameOver      Error = "game is over"
	ErrNotYourTurn   Error = "not your turn"
	ErrNothingToUndo Error = "nothing to undo"
	ErrBotThinking   Error = "computer is thinking"
	ErrNoActiveGame  Error = "no active game"
	ErrUnknownLevel  Error = "unknown difficulty"
)

// auth errors
const (
	ErrInvalidCredentials Error = "invalid username or password"
	ErrUsernameTaken      Error = "username already exists"
	ErrInvalidUsername    Error = "username must be between 3 and 50 characters"
	ErrReservedUsername   Error = "username is reserved"
	ErrWeakPassword       Error = "password must be at least 6 characters"
	ErrSessionRevoked     Error = "session is no longer valid"
)
