package domain

type ClientMessage struct {
	Type       string `json:"type"`
	JWT        string `json:"jwt,omitempty"`
	Row        int    `json:"row"`
	Col        int    `json:"col"`
	Difficulty string `json:"difficulty,omitempty"`
}

type ServerMessage struct {
	Type         string       `json:"type"`
	Message      string       `json:"message,omitempty"`
	GameID       string       `json:"gameId,omitempty"`
	Opponent     string       `json:"opponent,omitempty"`
	Difficulty   string       `json:"difficulty,omitempty"`
	YourPlayer   int          `json:"yourPlayer,omitempty"`
	Row          *int         `json:"row,omitempty"`
	Col          *int         `json:"col,omitempty"`
	Player       int          `json:"player,omitempty"`
	Board        [][]int      `json:"board,omitempty"`
	NextTurn     int          `json:"nextTurn,omitempty"`
	Winner       string       `json:"winner,omitempty"`
	Reason       string       `json:"reason,omitempty"`
	WinningCells []Coordinate `json:"winningCells,omitempty"`
	Stats        *GameStats   `json:"stats,omitempty"`
	MoveCount    int          `json:"moveCount,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
