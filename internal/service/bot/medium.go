package bot

import (
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

func calculateMediumEasyMove(board *domain.Board) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}

	if move, ok := forcedMove(board, emptyCells, false); ok {
		return move, true
	}

	return pickBest(emptyCells, func(at domain.Coordinate) float64 {
		return scoreMediumEasy(board, at)
	}), true
}

func scoreMediumEasy(board *domain.Board, at domain.Coordinate) float64 {
	score := float64(Evaluate(board, at, computer)) - float64(Evaluate(board, at, human))*0.9
	score += float64(OpenThreeLevel(board, at, human)) * 10
	return score
}

func calculateMediumMove(board *domain.Board) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}

	if move, ok := forcedMove(board, emptyCells, true); ok {
		return move, true
	}

	return pickBest(emptyCells, func(at domain.Coordinate) float64 {
		return scoreMedium(board, at)
	}), true
}

func scoreMedium(board *domain.Board, at domain.Coordinate) float64 {
	score := float64(Evaluate(board, at, computer)) - float64(Evaluate(board, at, human))*1.1

	score += float64(OpenThreeLevel(board, at, human)) * 15
	score += float64(OpenThreeLevel(board, at, computer)) * 8

	score += centerBonus(at, 5)
	score += float64(neighborDensity(board, at, 2)) * 10
	return score
}
