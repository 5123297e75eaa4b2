package postgres

import (
	"database/sql"
	"fmt"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
	"github.com/lib/pq"
)

type GameRepo struct {
	DB *sql.DB
}

func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db}
}

// SaveGame stores a finished game and bumps the player's stats in one
// transaction. Saving the same game id twice is a no-op, so stats are
// counted once per game.
func (r *GameRepo) SaveGame(record domain.GameRecord) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	query := `
	INSERT INTO games (game_id, user_id, difficulty, result, reason, moves, total_moves, duration_seconds, created_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (game_id) DO NOTHING;
	`
	res, err := tx.Exec(query, record.GameID, record.UserID, record.Difficulty, string(record.Result), record.Reason,
		pq.Array(encodeMoves(record.Moves)), record.TotalMoves, record.DurationSeconds, record.CreatedAt, record.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game record: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if inserted == 0 {
		return nil
	}

	if err := r.updateStatsTx(tx, record.UserID, record.Result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// updateStatsTx upserts the user's game_stats row within a transaction
func (r *GameRepo) updateStatsTx(tx *sql.Tx, userID int64, result domain.GameResult) error {
	var win, loss, draw int
	switch result {
	case domain.ResultWin:
		win = 1
	case domain.ResultLoss:
		loss = 1
	default:
		draw = 1
	}

	query := `
	INSERT INTO game_stats (user_id, wins, losses, draws, updated_at)
	VALUES ($1, $2, $3, $4, NOW())
	ON CONFLICT (user_id) DO UPDATE SET
		wins = game_stats.wins + EXCLUDED.wins,
		losses = game_stats.losses + EXCLUDED.losses,
		draws = game_stats.draws + EXCLUDED.draws,
		updated_at = NOW();
	`
	if _, err := tx.Exec(query, userID, win, loss, draw); err != nil {
		return fmt.Errorf("failed to update stats in transaction: %w", err)
	}
	return nil
}

// GetStats returns zero stats for users who have not finished a game yet.
func (r *GameRepo) GetStats(userID int64) (domain.GameStats, error) {
	query := `SELECT wins, losses, draws FROM game_stats WHERE user_id = $1;`

	var stats domain.GameStats
	err := r.DB.QueryRow(query, userID).Scan(&stats.Wins, &stats.Losses, &stats.Draws)
	if err == sql.ErrNoRows {
		return domain.GameStats{}, nil
	}
	if err != nil {
		return domain.GameStats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

const gameSelectFields = `game_id, user_id, difficulty, result, reason, moves, total_moves, duration_seconds, created_at, finished_at`

func scanGame(row interface{ Scan(dest ...any) error }) (*domain.GameRecord, error) {
	var record domain.GameRecord
	var result string
	var moves []int64

	err := row.Scan(
		&record.GameID,
		&record.UserID,
		&record.Difficulty,
		&result,
		&record.Reason,
		pq.Array(&moves),
		&record.TotalMoves,
		&record.DurationSeconds,
		&record.CreatedAt,
		&record.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Result = domain.GameResult(result)
	record.Moves = decodeMoves(moves)
	return &record, nil
}

// GetGameByID returns nil when the game does not exist or belongs to another user.
func (r *GameRepo) GetGameByID(gameID string, userID int64) (*domain.GameRecord, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games WHERE game_id = $1 AND user_id = $2;`

	record, err := scanGame(r.DB.QueryRow(query, gameID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}
	return record, nil
}

// GetUserGameHistory lists the user's games, newest first, without the move lists.
func (r *GameRepo) GetUserGameHistory(userID int64, limit int) ([]domain.GameRecord, error) {
	query := `SELECT ` + gameSelectFields + ` FROM games WHERE user_id = $1 ORDER BY finished_at DESC LIMIT $2;`

	rows, err := r.DB.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	games := make([]domain.GameRecord, 0)
	for rows.Next() {
		record, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		record.Moves = nil
		games = append(games, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game rows: %w", err)
	}
	return games, nil
}

// encodeMoves packs each move as row*10+col. The player is implied by
// position since the human always moves first and turns alternate.
func encodeMoves(moves []domain.Move) []int64 {
	out := make([]int64, len(moves))
	for i, m := range moves {
		out[i] = int64(m.Row*domain.Columns + m.Col)
	}
	return out
}

func decodeMoves(cells []int64) []domain.Move {
	moves := make([]domain.Move, len(cells))
	for i, cell := range cells {
		player := domain.Player1
		if i%2 == 1 {
			player = domain.Player2
		}
		moves[i] = domain.Move{
			Row:    int(cell) / domain.Columns,
			Col:    int(cell) % domain.Columns,
			Player: player,
		}
	}
	return moves
}
