package domain

type Move struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Player PlayerID `json:"player"`
}

func (m Move) Coordinate() Coordinate {
	return Coordinate{Row: m.Row, Col: m.Col}
}

type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	Winner        PlayerID
	Moves         []Move
	WinningCells  []Coordinate
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

func (g *Game) Reset() {
	g.Board = NewBoard()
	g.CurrentPlayer = Player1
	g.Status = StatusActive
	g.Winner = Empty
	g.Moves = nil
	g.WinningCells = nil
}

func (g *Game) MoveCount() int {
	return len(g.Moves)
}

func (g *Game) MakeMove(player PlayerID, at Coordinate) error {
	if g.Status != StatusActive {
		return ErrGameOver
	}
	if player != g.CurrentPlayer {
		return ErrNotYourTurn
	}
	if err := g.Board.Place(at, player); err != nil {
		return err
	}

	g.Moves = append(g.Moves, Move{Row: at.Row, Col: at.Col, Player: player})

	if CheckWin(&g.Board, at, player) {
		g.Status = StatusWon
		g.Winner = player
		g.WinningCells = WinningCells(&g.Board, at, player)
		return nil
	}

	if len(g.Moves) == Cells {
		g.Status = StatusDraw
		return nil
	}

	g.CurrentPlayer = player.Opponent()
	return nil
}

// Undo takes back the last human move and the computer reply, then rebuilds
// the board from the remaining history. The human is to move afterwards.
func (g *Game) Undo() error {
	if g.IsFinished() {
		return ErrGameOver
	}
	if len(g.Moves) < 2 {
		return ErrNothingToUndo
	}

	remaining := g.Moves[:len(g.Moves)-2]
	g.Board = NewBoard()
	for _, m := range remaining {
		g.Board[m.Row][m.Col] = m.Player
	}
	g.Moves = remaining
	g.CurrentPlayer = Player1
	return nil
}

// Draw ends the game without a winner.
func (g *Game) Draw() {
	g.Status = StatusDraw
	g.Winner = Empty
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusDraw
}
