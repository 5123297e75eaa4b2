package bot

import (
	"testing"

	"github.com/HuiyanRoy/GomokuMaster/internal/domain"
)

func TestCenterBonus(t *testing.T) {
	tests := []struct {
		cell domain.Coordinate
		want float64
	}{
		{at(4, 4), 40},
		{at(4, 5), 40},
		{at(5, 5), 40},
		{at(0, 0), 0},
		{at(9, 9), 0},
		{at(0, 9), 0},
		{at(2, 4), 30},
	}
	for _, tc := range tests {
		if got := centerBonus(tc.cell, 5); got != tc.want {
			t.Errorf("centerBonus(%v, 5) = %v, want %v", tc.cell, got, tc.want)
		}
	}
}

func TestNeighborDensity(t *testing.T) {
	var b domain.Board
	place(&b, human, at(0, 0), at(3, 3))
	place(&b, computer, at(2, 2))

	if got := neighborDensity(&b, at(1, 1), 2); got != 3 {
		t.Errorf("radius 2: got %d, want 3", got)
	}
	if got := neighborDensity(&b, at(1, 1), 1); got != 2 {
		t.Errorf("radius 1: got %d, want 2", got)
	}
	if got := neighborDensity(&b, at(9, 9), 2); got != 0 {
		t.Errorf("far corner: got %d, want 0", got)
	}
}

func TestProximityValue(t *testing.T) {
	var b domain.Board
	place(&b, computer, at(5, 5))
	place(&b, human, at(5, 8))

	// computer at distance 1: 3*8, human at distance 2: 2*12
	if got := proximityValue(&b, at(5, 6)); got != 48 {
		t.Fatalf("got %v, want 48", got)
	}

	// distance 6 sits inside the square but counts against the cell
	place(&b, human, at(8, 9))
	if got := proximityValue(&b, at(5, 6)); got != 24 {
		t.Fatalf("got %v, want 24", got)
	}
}

func TestLinePatternScore(t *testing.T) {
	var b domain.Board
	if got := linePatternScore(&b, at(0, 0)); got != 0 {
		t.Fatalf("lone candidate must not score, got %v", got)
	}

	place(&b, computer, at(0, 1))
	// four in-bounds row windows hold both stones
	if got := linePatternScore(&b, at(0, 0)); got != 1600 {
		t.Fatalf("got %v, want 1600", got)
	}

	place(&b, human, at(0, 3))
	if got := linePatternScore(&b, at(0, 0)); got != 800 {
		t.Fatalf("windows with a human stone must be ignored, got %v", got)
	}
}

func TestWinningCellsAfter(t *testing.T) {
	var b domain.Board
	place(&b, computer, at(2, 0), at(2, 1), at(2, 2), at(2, 3))
	if got := winningCellsAfter(&b, computer); got != 1 {
		t.Fatalf("four on the edge: got %d, want 1", got)
	}
	if got := winningCellsAfter(&b, human); got != 0 {
		t.Fatalf("human has no stones: got %d", got)
	}

	var open domain.Board
	place(&open, computer, at(5, 4), at(5, 5), at(5, 6), at(5, 7))
	if got := winningCellsAfter(&open, computer); got != 2 {
		t.Fatalf("open four: got %d, want 2", got)
	}
}

func TestLookahead(t *testing.T) {
	var b domain.Board
	place(&b, computer, at(5, 4), at(5, 5), at(5, 6), at(5, 7))

	threats, danger := lookahead(&b)
	if threats != 2 || danger != 0 {
		t.Fatalf("open four: got threats=%v danger=%v, want 2 and 0", threats, danger)
	}

	place(&b, human, at(0, 0), at(0, 1), at(0, 2), at(0, 3))
	threats, danger = lookahead(&b)
	if threats != 2 || danger != 1 {
		t.Fatalf("human four: got threats=%v danger=%v, want 2 and 1", threats, danger)
	}
}
