package bot

import (
	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

const (
	human    = domain.Player1
	computer = domain.Player2
)

// Position scores, keyed by run length and open ends
const (
	SCORE_FIVE         = 100000 // immediate win
	SCORE_OPEN_FOUR    = 10000
	SCORE_CLOSED_FOUR  = 5000
	SCORE_OPEN_THREE   = 1000
	SCORE_CLOSED_THREE = 100
	SCORE_OPEN_TWO     = 100
	SCORE_CLOSED_TWO   = 10
)

// Threat levels reported by OpenThreeLevel
const (
	THREAT_NONE         = 0
	THREAT_OPEN_TWO     = 20
	THREAT_CLOSED_THREE = 50
	THREAT_OPEN_THREE   = 100
)

// line is the result of scanning one axis through a cell.
type line struct {
	count    int // stones in the run, origin included
	openEnds int // 0, 1 or 2
}

// scanLine counts the contiguous run through `at` as if `owner` stood there,
// walking both senses of (dRow, dCol). An end is open when the first cell
// past the run is on the board and empty.
func scanLine(board *domain.Board, at domain.Coordinate, owner domain.PlayerID, dRow, dCol int) line {
	l := line{count: 1}

	for _, sign := range [2]int{1, -1} {
		stepRow, stepCol := sign*dRow, sign*dCol
		r, c := at.Row+stepRow, at.Col+stepCol
		for domain.InBounds(r, c) && board[r][c] == owner {
			l.count++
			r += stepRow
			c += stepCol
		}
		if domain.InBounds(r, c) && board[r][c] == domain.Empty {
			l.openEnds++
		}
	}

	return l
}

// scanLineWithGap is scanLine with a one-gap allowance per side: a single
// empty cell is stepped over when an owner stone sits right behind it, so
// `_XX_X_` still reads as a three. The gap itself is not counted.
func scanLineWithGap(board *domain.Board, at domain.Coordinate, owner domain.PlayerID, dRow, dCol int) line {
	l := line{count: 1}

	for _, sign := range [2]int{1, -1} {
		stepRow, stepCol := sign*dRow, sign*dCol
		r, c := at.Row+stepRow, at.Col+stepCol
		gapUsed := false
		for domain.InBounds(r, c) {
			cell := board[r][c]
			if cell == owner {
				l.count++
			} else if cell == domain.Empty && !gapUsed && isOwnedAt(board, r+stepRow, c+stepCol, owner) {
				gapUsed = true
			} else {
				break
			}
			r += stepRow
			c += stepCol
		}
		if domain.InBounds(r, c) && board[r][c] == domain.Empty {
			l.openEnds++
		}
	}

	return l
}

func isOwnedAt(board *domain.Board, row, col int, owner domain.PlayerID) bool {
	return domain.InBounds(row, col) && board[row][col] == owner
}

func lineScore(l line) int {
	switch {
	case l.count >= 5:
		return SCORE_FIVE
	case l.count == 4:
		return byOpenEnds(l.openEnds, SCORE_OPEN_FOUR, SCORE_CLOSED_FOUR)
	case l.count == 3:
		return byOpenEnds(l.openEnds, SCORE_OPEN_THREE, SCORE_CLOSED_THREE)
	case l.count == 2:
		return byOpenEnds(l.openEnds, SCORE_OPEN_TWO, SCORE_CLOSED_TWO)
	}
	return 0
}

func byOpenEnds(openEnds, open, closed int) int {
	switch openEnds {
	case 2:
		return open
	case 1:
		return closed
	}
	return 0
}

// Evaluate scores an empty cell for `owner` by summing the line score of
// all four axes through it. The result is never negative.
func Evaluate(board *domain.Board, at domain.Coordinate, owner domain.PlayerID) int {
	score := 0
	for _, dir := range domain.Directions {
		score += lineScore(scanLine(board, at, owner, dir[0], dir[1]))
	}
	return score
}

// WouldWin reports whether placing `owner` at `at` completes five or more.
// Only `owner` stones are counted; the board is not modified.
func WouldWin(board *domain.Board, at domain.Coordinate, owner domain.PlayerID) bool {
	for _, dir := range domain.Directions {
		if scanLine(board, at, owner, dir[0], dir[1]).count >= 5 {
			return true
		}
	}
	return false
}

// WouldCreateThreat reports a four with at least one open end: a line that
// becomes five on the next move unless blocked.
func WouldCreateThreat(board *domain.Board, at domain.Coordinate, owner domain.PlayerID) bool {
	for _, dir := range domain.Directions {
		l := scanLine(board, at, owner, dir[0], dir[1])
		if l.count >= 4 && l.openEnds >= 1 {
			return true
		}
	}
	return false
}

// OpenThreeLevel grades the most dangerous three or two that `owner` would
// form at `at`, tolerating one gap per side.
func OpenThreeLevel(board *domain.Board, at domain.Coordinate, owner domain.PlayerID) int {
	level := THREAT_NONE
	for _, dir := range domain.Directions {
		l := scanLineWithGap(board, at, owner, dir[0], dir[1])
		level = max(level, threatLevel(l))
	}
	return level
}

func threatLevel(l line) int {
	switch {
	case l.count == 3 && l.openEnds == 2:
		return THREAT_OPEN_THREE
	case l.count == 3 && l.openEnds == 1:
		return THREAT_CLOSED_THREE
	case l.count == 2 && l.openEnds == 2:
		return THREAT_OPEN_TWO
	}
	return THREAT_NONE
}

// EmptyCells lists every empty cell in row-major order.
func EmptyCells(board *domain.Board) []domain.Coordinate {
	cells := make([]domain.Coordinate, 0, domain.Cells)
	for row := 0; row < domain.Rows; row++ {
		for col := 0; col < domain.Columns; col++ {
			if board[row][col] == domain.Empty {
				cells = append(cells, domain.Coordinate{Row: row, Col: col})
			}
		}
	}
	return cells
}
