package domain

// Directions are the four line axes: horizontal, vertical and both
// diagonals. Each is walked forward and backward.
var Directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// CheckWin reports whether the stone at `at` is part of ToWin or more in a row.
func CheckWin(board *Board, at Coordinate, player PlayerID) bool {
	for _, dir := range Directions {
		count := 1 + CountDiskInDirection(board, at.Row, at.Col, dir[0], dir[1], player) +
			CountDiskInDirection(board, at.Row, at.Col, -dir[0], -dir[1], player)
		if count >= ToWin {
			return true
		}
	}
	return false
}

// WinningCells returns the cells of the first winning line through `at`,
// truncated to ToWin cells: the origin, then the forward run, then the backward run.
func WinningCells(board *Board, at Coordinate, player PlayerID) []Coordinate {
	for _, dir := range Directions {
		cells := []Coordinate{at}

		r, c := at.Row+dir[0], at.Col+dir[1]
		for InBounds(r, c) && board[r][c] == player {
			cells = append(cells, Coordinate{Row: r, Col: c})
			r += dir[0]
			c += dir[1]
		}

		r, c = at.Row-dir[0], at.Col-dir[1]
		for InBounds(r, c) && board[r][c] == player {
			cells = append(cells, Coordinate{Row: r, Col: c})
			r -= dir[0]
			c -= dir[1]
		}

		if len(cells) >= ToWin {
			return cells[:ToWin]
		}
	}
	return nil
}

// this counts the number of stones in a specific direction, not including the origin
func CountDiskInDirection(board *Board, row, col int, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, col+deltaCol
	for InBounds(r, c) && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
