package game

import (
	"fmt"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

type HistoryRepository interface {
	GetUserGameHistory(userID int64, limit int) ([]domain.GameRecord, error)
	GetGameByID(gameID string, userID int64) (*domain.GameRecord, error)
}

// Service is the read side of finished games (facade for the HTTP layer)
type Service struct {
	Repo HistoryRepository
}

func NewService(repo HistoryRepository) *Service {
	return &Service{
		Repo: repo,
	}
}

// Replay is a finished game together with the board it ended on.
type Replay struct {
	domain.GameRecord
	Board        [][]int             `json:"board"`
	WinningCells []domain.Coordinate `json:"winningCells,omitempty"`
}

func (s *Service) History(userID int64, limit int) ([]domain.GameRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	games, err := s.Repo.GetUserGameHistory(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if games == nil {
		games = []domain.GameRecord{}
	}
	return games, nil
}

// GetReplay returns nil when the game does not exist or belongs to someone else.
func (s *Service) GetReplay(gameID string, userID int64) (*Replay, error) {
	record, err := s.Repo.GetGameByID(gameID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load game: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	g := domain.NewGame()
	for i, m := range record.Moves {
		if g.IsFinished() {
			return nil, fmt.Errorf("game %s continues after it ended at move %d", gameID, i)
		}
		if err := g.MakeMove(m.Player, m.Coordinate()); err != nil {
			return nil, fmt.Errorf("game %s has an invalid move %d: %w", gameID, i, err)
		}
	}

	return &Replay{
		GameRecord:   *record,
		Board:        g.Board.Ints(),
		WinningCells: g.WinningCells,
	}, nil
}
