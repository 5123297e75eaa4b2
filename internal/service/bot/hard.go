package bot

import (
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

const (
	FORK_DOUBLE_BONUS  = 15000 // two or more follow-up threats
	FORK_PARTIAL_BONUS = 8000
	DANGER_PENALTY     = 3000
	WIN_SETUP_BONUS    = 8000 // per winning cell created, medium-hard
)

func calculateMediumHardMove(board *domain.Board) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}

	if move, ok := forcedMove(board, emptyCells, true); ok {
		return move, true
	}

	// An open three left alone becomes an open four; answer the worst one.
	if move, ok := mostUrgentDefense(board, emptyCells, THREAT_OPEN_THREE, func(level int) int {
		return level
	}); ok {
		return move, true
	}

	scratch := *board
	return pickBest(emptyCells, func(at domain.Coordinate) float64 {
		return scoreMediumHard(board, &scratch, at)
	}), true
}

// scoreMediumHard uses scratch, a copy of board, for one-ply lookahead and
// leaves it equal to board on return.
func scoreMediumHard(board, scratch *domain.Board, at domain.Coordinate) float64 {
	score := float64(Evaluate(board, at, computer)) * 1.2
	score -= float64(Evaluate(board, at, human)) * 1.3

	score += float64(OpenThreeLevel(board, at, human)) * 25
	score += float64(OpenThreeLevel(board, at, computer)) * 12

	scratch[at.Row][at.Col] = computer
	score += float64(winningCellsAfter(scratch, computer)) * WIN_SETUP_BONUS
	scratch[at.Row][at.Col] = domain.Empty

	score += centerBonus(at, 8)
	score += float64(neighborDensity(board, at, 2)) * 15
	return score
}

func calculateExpertMove(board *domain.Board) (domain.Coordinate, bool) {
	emptyCells := EmptyCells(board)
	if len(emptyCells) == 0 {
		return domain.Coordinate{}, false
	}

	if move, ok := forcedMove(board, emptyCells, true); ok {
		return move, true
	}

	if move, ok := mostUrgentDefense(board, emptyCells, THREAT_CLOSED_THREE, func(level int) int {
		if level >= THREAT_OPEN_THREE {
			return level + 1000
		}
		return level + 500
	}); ok {
		return move, true
	}

	scratch := *board
	return pickBest(emptyCells, func(at domain.Coordinate) float64 {
		return scoreExpert(board, &scratch, at)
	}), true
}

// scoreExpert uses scratch, a copy of board, for one-ply lookahead and
// leaves it equal to board on return.
func scoreExpert(board, scratch *domain.Board, at domain.Coordinate) float64 {
	score := float64(Evaluate(board, at, computer)) * 1.5
	score -= float64(Evaluate(board, at, human)) * 1.4

	score += float64(OpenThreeLevel(board, at, human)) * 30
	score += float64(OpenThreeLevel(board, at, computer)) * 20

	scratch[at.Row][at.Col] = computer
	threatsCreated, defensiveNeeds := lookahead(scratch)
	scratch[at.Row][at.Col] = domain.Empty

	if threatsCreated >= 2 {
		score += FORK_DOUBLE_BONUS
	} else if threatsCreated >= 1.5 {
		score += FORK_PARTIAL_BONUS
	}
	score -= defensiveNeeds * DANGER_PENALTY

	score += centerBonus(at, 12)
	score += proximityValue(board, at)
	score += linePatternScore(board, at)
	return score
}

// lookahead walks every empty cell of a board that already holds the
// candidate move. threats counts the computer's follow-ups (a win is 1, a
// three of level 50 or more is 0.5); danger counts the human's replies (a
// win is 1, an open three is 0.7).
func lookahead(board *domain.Board) (threats, danger float64) {
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if board[row][col] != domain.Empty {
				continue
			}
			at := domain.Coordinate{Row: row, Col: col}

			if WouldWin(board, at, computer) {
				threats++
			}
			if OpenThreeLevel(board, at, computer) >= THREAT_CLOSED_THREE {
				threats += 0.5
			}

			if WouldWin(board, at, human) {
				danger++
			}
			if OpenThreeLevel(board, at, human) >= THREAT_OPEN_THREE {
				danger += 0.7
			}
		}
	}
	return threats, danger
}

// mostUrgentDefense returns the cell where the human's threat level is at
// least minLevel and whose priority is highest. Equal priorities keep scan order.
func mostUrgentDefense(board *domain.Board, cells []domain.Coordinate, minLevel int, priority func(level int) int) (domain.Coordinate, bool) {
	var bestMove domain.Coordinate
	bestPriority := -1
	for _, cell := range cells {
		level := OpenThreeLevel(board, cell, human)
		if level < minLevel {
			continue
		}
		if p := priority(level); p > bestPriority {
			bestPriority = p
			bestMove = cell
		}
	}
	return bestMove, bestPriority >= 0
}
