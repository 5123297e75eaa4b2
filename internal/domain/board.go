package domain

import "fmt"

// Coordinate addresses a cell by row and column, both in [0, 9].
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func (c Coordinate) InBounds() bool {
	return InBounds(c.Row, c.Col)
}

// Board is a fixed grid indexed [row][col]. Being an array, assigning or
// passing it by value copies every cell.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Columns
}

func (b *Board) At(c Coordinate) PlayerID {
	return b[c.Row][c.Col]
}

func (b *Board) IsEmpty(c Coordinate) bool {
	return c.InBounds() && b[c.Row][c.Col] == Empty
}

func (b *Board) Place(c Coordinate, player PlayerID) error {
	if !c.InBounds() {
		return ErrOutOfBounds
	}
	if b[c.Row][c.Col] != Empty {
		return ErrCellOccupied
	}
	b[c.Row][c.Col] = player
	return nil
}

func (b *Board) IsFull() bool {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] == Empty {
				return false
			}
		}
	}
	return true
}

func (b *Board) CountStones() int {
	count := 0
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			if b[row][col] != Empty {
				count++
			}
		}
	}
	return count
}

// Ints flattens the board for JSON and database storage.
func (b *Board) Ints() [][]int {
	out := make([][]int, Rows)
	for row := range out {
		out[row] = make([]int, Columns)
		for col := range out[row] {
			out[row][col] = int(b[row][col])
		}
	}
	return out
}

// BoardFromInts is the inverse of Ints. Values other than 1 and 2 are read as Empty.
func BoardFromInts(cells [][]int) (Board, error) {
	var b Board
	if len(cells) != Rows {
		return b, fmt.Errorf("board must have %d rows, got %d", Rows, len(cells))
	}
	for row := range cells {
		if len(cells[row]) != Columns {
			return b, fmt.Errorf("row %d must have %d columns, got %d", row, Columns, len(cells[row]))
		}
		for col, v := range cells[row] {
			switch PlayerID(v) {
			case Player1, Player2:
				b[row][col] = PlayerID(v)
			}
		}
	}
	return b, nil
}
