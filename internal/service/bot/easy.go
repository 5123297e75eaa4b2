package bot

import (
	"math/rand"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

// calculateSimpleMove plays a uniformly random empty cell.
func calculateSimpleMove(board *domain.Board, rng *rand.Rand) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}
	return emptyCells[rng.Intn(len(emptyCells))], true
}

// calculateEasyMove takes a winning cell, otherwise blocks the human's
// immediate win, otherwise plays at random.
func calculateEasyMove(board *domain.Board, rng *rand.Rand) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}

	if move, ok := forcedMove(board, emptyCells, false); ok {
		return move, true
	}

	return emptyCells[rng.Intn(len(emptyCells))], true
}
