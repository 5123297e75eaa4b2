package bot

import (
	"math"
	"math/rand"
	"time"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

type Difficulty string

const (
	DifficultySimple     Difficulty = "simple"
	DifficultyEasy       Difficulty = "easy"
	DifficultyMediumEasy Difficulty = "medium-easy"
	DifficultyMedium     Difficulty = "medium"
	DifficultyMediumHard Difficulty = "medium-hard"
	DifficultyExpert     Difficulty = "expert"
)

// DifficultyInfo describes a tier for difficulty pickers.
type DifficultyInfo struct {
	Value       Difficulty `json:"value"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Stars       int        `json:"stars"`
}

// Difficulties lists every tier from weakest to strongest.
var Difficulties = []DifficultyInfo{
	{DifficultySimple, "Simple", "Random moves", 1},
	{DifficultyEasy, "Easy", "Basic blocking", 2},
	{DifficultyMediumEasy, "Medium-Easy", "Pattern recognition", 3},
	{DifficultyMedium, "Medium", "Strategic thinking", 4},
	{DifficultyMediumHard, "Medium-Hard", "Advanced tactics", 5},
	{DifficultyExpert, "Expert", "Master-level play", 6},
}

// ParseDifficulty returns the tier named by s and whether s was recognised.
// Unrecognised labels yield medium-easy, the same tier CalculateBestMove falls back to.
func ParseDifficulty(s string) (Difficulty, bool) {
	for _, info := range Difficulties {
		if string(info.Value) == s {
			return info.Value, true
		}
	}
	return DifficultyMediumEasy, false
}

// CalculateBestMove selects the computer's (Player2) move for the given
// difficulty. The board is taken by value, so the caller's copy is never
// touched. ok is false when the board is full. rng drives the random
// tiers; nil means a fresh time-seeded source.
func CalculateBestMove(board domain.Board, difficulty Difficulty, rng *rand.Rand) (move domain.Coordinate, ok bool) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch difficulty {
	case DifficultySimple:
		return calculateSimpleMove(&board, rng)
	case DifficultyEasy:
		return calculateEasyMove(&board, rng)
	case DifficultyMediumEasy:
		return calculateMediumEasyMove(&board)
	case DifficultyMedium:
		return calculateMediumMove(&board)
	case DifficultyMediumHard:
		return calculateMediumHardMove(&board)
	case DifficultyExpert:
		return calculateExpertMove(&board)
	default:
		return calculateMediumEasyMove(&board)
	}
}

// findWinningMove returns the first cell, in scan order, where `player` completes five.
func findWinningMove(board *domain.Board, cells []domain.Coordinate, player domain.PlayerID) (domain.Coordinate, bool) {
	for _, cell := range cells {
		if WouldWin(board, cell, player) {
			return cell, true
		}
	}
	return domain.Coordinate{}, false
}

// findThreatMove returns the first cell where `player` would make a four with room to grow.
func findThreatMove(board *domain.Board, cells []domain.Coordinate, player domain.PlayerID) (domain.Coordinate, bool) {
	for _, cell := range cells {
		if WouldCreateThreat(board, cell, player) {
			return cell, true
		}
	}
	return domain.Coordinate{}, false
}

// forcedMove runs the shared opening of every scored tier: win now, block
// the human's win, and optionally block the human's four.
func forcedMove(board *domain.Board, cells []domain.Coordinate, blockFours bool) (domain.Coordinate, bool) {
	if move, ok := findWinningMove(board, cells, computer); ok {
		return move, true
	}
	if move, ok := findWinningMove(board, cells, human); ok {
		return move, true
	}
	if blockFours {
		if move, ok := findThreatMove(board, cells, human); ok {
			return move, true
		}
	}
	return domain.Coordinate{}, false
}

// pickBest returns the highest scoring cell. Ties keep the earliest cell in
// scan order. cells must not be empty.
func pickBest(cells []domain.Coordinate, score func(domain.Coordinate) float64) domain.Coordinate {
	bestMove := cells[0]
	bestScore := math.Inf(-1)
	for _, cell := range cells {
		if s := score(cell); s > bestScore {
			bestScore = s
			bestMove = cell
		}
	}
	return bestMove
}
