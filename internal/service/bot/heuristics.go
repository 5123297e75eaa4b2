package bot

import (
	"math"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

const boardCenter = 4.5

// centerBonus rewards cells near the middle of the board: weight * (9 - manhattan distance to center).
func centerBonus(at domain.Coordinate, weight float64) float64 {
	distance := math.Abs(float64(at.Row)-boardCenter) + math.Abs(float64(at.Col)-boardCenter)
	return (9 - distance) * weight
}

// neighborDensity counts stones of either color in the square of the given
// radius around `at`.
func neighborDensity(board *domain.Board, at domain.Coordinate, radius int) int {
	stones := 0
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			r, c := at.Row+dr, at.Col+dc
			if domain.InBounds(r, c) && board[r][c] != domain.Empty {
				stones++
			}
		}
	}
	return stones
}

// proximityValue weighs nearby stones by manhattan distance within a
// radius-3 square. Enemy stones count more so the computer interferes with
// the human's shape. Stones at distance 5 and 6 contribute negatively.
func proximityValue(board *domain.Board, at domain.Coordinate) float64 {
	value := 0
	for dr := -3; dr <= 3; dr++ {
		for dc := -3; dc <= 3; dc++ {
			r, c := at.Row+dr, at.Col+dc
			if !domain.InBounds(r, c) {
				continue
			}
			distance := abs(dr) + abs(dc)
			switch board[r][c] {
			case computer:
				value += (4 - distance) * 8
			case human:
				value += (4 - distance) * 12
			}
		}
	}
	return float64(value)
}

// linePatternScore slides a five-cell window over each axis so that every
// window contains `at`. Windows free of human stones with two or more
// computer stones (the candidate included) score own^2 * 100.
func linePatternScore(board *domain.Board, at domain.Coordinate) float64 {
	score := 0
	for _, dir := range domain.Directions {
		for offset := -4; offset <= 0; offset++ {
			own, enemy := 0, 0
			for i := 0; i < 5; i++ {
				r := at.Row + (offset+i)*dir[0]
				c := at.Col + (offset+i)*dir[1]
				if !domain.InBounds(r, c) {
					continue
				}
				if board[r][c] == computer || (r == at.Row && c == at.Col) {
					own++
				} else if board[r][c] == human {
					enemy++
				}
			}
			if enemy == 0 && own >= 2 {
				score += own * own * 100
			}
		}
	}
	return float64(score)
}

// winningCellsAfter counts empty cells where `player` would complete five on
// the given board.
func winningCellsAfter(board *domain.Board, player domain.PlayerID) int {
	wins := 0
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if board[row][col] != domain.Empty {
				continue
			}
			if WouldWin(board, domain.Coordinate{Row: row, Col: col}, player) {
				wins++
			}
		}
	}
	return wins
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
