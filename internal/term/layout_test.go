package term

import (
	"strings"
	"testing"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

func TestSquareAtCell(t *testing.T) {
	tests := []struct {
		row, col int
		flipped  bool
		want     board.Square
	}{
		{0, 0, false, board.A8},
		{7, 7, false, board.H1},
		{7, 4, false, board.E1},
		{0, 0, true, board.H1},
		{7, 7, true, board.A8},
		{6, 3, true, board.E7},
	}
	for _, tc := range tests {
		got := squareAtCell(tc.row, tc.col, tc.flipped)
		if got != tc.want {
			t.Errorf("squareAtCell(%d, %d, %v) = %s, want %s", tc.row, tc.col, tc.flipped, got, tc.want)
		}
		row, col := cellOf(got, tc.flipped)
		if row != tc.row || col != tc.col {
			t.Errorf("cellOf(%s) = %d,%d", got, row, col)
		}
	}
}

func TestHitTest(t *testing.T) {
	const ox, oy = 10, 5
	tests := []struct {
		x, y    int
		flipped bool
		want    board.Square
	}{
		{ox + labelWidth, oy, false, board.A8},
		{ox + labelWidth + 2, oy, false, board.A8},
		{ox + labelWidth + 3, oy, false, board.B8},
		{ox + labelWidth + 4*cellWidth + 1, oy + 6, false, board.E2},
		{ox + labelWidth + 4*cellWidth + 1, oy + 6, true, board.D7},
		{ox, oy, false, board.NoSquare},
		{ox + labelWidth, oy + 8, false, board.NoSquare},
		{ox + labelWidth + 8*cellWidth, oy, false, board.NoSquare},
	}
	for _, tc := range tests {
		if got := hitTest(tc.x, tc.y, ox, oy, tc.flipped); got != tc.want {
			t.Errorf("hitTest(%d, %d, flipped=%v) = %s, want %s", tc.x, tc.y, tc.flipped, got, tc.want)
		}
	}
}

func TestMoveCursor(t *testing.T) {
	tests := []struct {
		from      board.Square
		up, right int
		flipped   bool
		want      board.Square
	}{
		{board.E2, 1, 0, false, board.E3},
		{board.E2, 0, 1, false, board.F2},
		{board.E2, 1, 0, true, board.E1},
		{board.E2, 0, 1, true, board.D2},
		{board.A8, 1, 0, false, board.A8},
		{board.H1, 0, 1, false, board.H1},
	}
	for _, tc := range tests {
		if got := moveCursor(tc.from, tc.up, tc.right, tc.flipped); got != tc.want {
			t.Errorf("moveCursor(%s, %d, %d, %v) = %s, want %s", tc.from, tc.up, tc.right, tc.flipped, got, tc.want)
		}
	}
}

func TestLabels(t *testing.T) {
	if rankLabel(0, false) != '8' || rankLabel(7, false) != '1' || rankLabel(0, true) != '1' {
		t.Error("rank labels")
	}
	if fileLabel(0, false) != 'a' || fileLabel(7, false) != 'h' || fileLabel(0, true) != 'h' {
		t.Error("file labels")
	}
}

func TestPieceRune(t *testing.T) {
	if pieceRune(board.NoPiece) != ' ' {
		t.Error("empty square")
	}
	if pieceRune(board.WhiteKnight) != '♞' || pieceRune(board.BlackKnight) != '♞' {
		t.Error("knight figurine")
	}
	if pieceRune(board.BlackKing) != '♚' {
		t.Error("king figurine")
	}
}

func TestInfoText(t *testing.T) {
	g := game.New()
	for _, m := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := g.PlayMoveString(m); err != nil {
			t.Fatal(err)
		}
	}
	clock := game.NewClock(0)
	text := infoText(g.Snapshot(), clock, false, "")
	for _, want := range []string{"Checkmate - Black wins (0-1)", "1. f3 e5", "2. g4 Qh4#", "White 10:00"} {
		if !strings.Contains(text, want) {
			t.Errorf("info text missing %q:\n%s", want, text)
		}
	}
}
