package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/hailam/chesspad/internal/board"
)

const (
	cellWidth  = 3
	labelWidth = 2
	boardWidth = labelWidth + 8*cellWidth
	// boardHeight counts the eight ranks and the file labels.
	boardHeight = 9
)

var (
	lightSquare  = tcell.NewRGBColor(240, 217, 181)
	darkSquare   = tcell.NewRGBColor(181, 136, 99)
	lastMoveBG   = tcell.NewRGBColor(205, 210, 106)
	selectedBG   = tcell.NewRGBColor(130, 151, 105)
	checkBG      = tcell.NewRGBColor(235, 97, 80)
	cursorBG     = tcell.NewRGBColor(100, 150, 220)
	whitePieceFG = tcell.NewRGBColor(255, 255, 255)
	blackPieceFG = tcell.NewRGBColor(0, 0, 0)
)

// squareAtCell maps a cell of the drawn grid (row 0 at the top) to a square.
func squareAtCell(row, col int, flipped bool) board.Square {
	if flipped {
		row, col = 7-row, 7-col
	}
	return board.SquareAt(row, col)
}

// cellOf is the inverse of squareAtCell.
func cellOf(sq board.Square, flipped bool) (row, col int) {
	row, col = sq.Rank(), sq.File()
	if flipped {
		row, col = 7-row, 7-col
	}
	return row, col
}

// hitTest maps a screen position to the square drawn there, given the top-left
// corner of the board area. It returns board.NoSquare outside the grid.
func hitTest(x, y, originX, originY int, flipped bool) board.Square {
	dx := x - originX - labelWidth
	dy := y - originY
	if dx < 0 || dy < 0 || dy >= 8 || dx >= 8*cellWidth {
		return board.NoSquare
	}
	return squareAtCell(dy, dx/cellWidth, flipped)
}

// moveCursor steps the cursor by a screen direction. Off-board steps keep
// the cursor where it is.
func moveCursor(sq board.Square, up, right int, flipped bool) board.Square {
	dr, df := -up, right
	if flipped {
		dr, df = -dr, -df
	}
	next := sq.Offset(dr, df)
	if !next.IsValid() {
		return sq
	}
	return next
}

// pieceRune returns the figurine for p, or a space.
func pieceRune(p board.Piece) rune {
	if p == board.NoPiece {
		return ' '
	}
	// Filled figurines for both sides; color comes from the style.
	return []rune("♟♞♝♜♛♚")[p.Type()]
}

func squareColor(sq board.Square) tcell.Color {
	if (sq.Rank()+sq.File())%2 == 0 {
		return lightSquare
	}
	return darkSquare
}

// rankLabel is the label drawn left of grid row.
func rankLabel(row int, flipped bool) rune {
	if flipped {
		return rune('1' + row)
	}
	return rune('8' - row)
}

// fileLabel is the label drawn under grid column col.
func fileLabel(col int, flipped bool) rune {
	if flipped {
		return rune('h' - col)
	}
	return rune('a' + col)
}
