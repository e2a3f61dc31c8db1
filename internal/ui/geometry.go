package ui

import "github.com/hailam/chesspad/internal/board"

// Layout constants in logical pixels.
const (
	ScreenWidth  = 960
	ScreenHeight = 640
	BoardSize    = 640
	SquareSize   = BoardSize / 8
	PanelWidth   = ScreenWidth - BoardSize
)

// boardGeometry maps squares to pixels. Unflipped, rank 8 is the top row and
// the a-file the left column.
type boardGeometry struct {
	squareSize int
	flipped    bool
}

// squareToScreen returns the top-left corner of sq.
func (bg boardGeometry) squareToScreen(sq board.Square) (int, int) {
	row, col := sq.Rank(), sq.File()
	if bg.flipped {
		row, col = 7-row, 7-col
	}
	return col * bg.squareSize, row * bg.squareSize
}

// screenToSquare returns the square under (x, y), or NoSquare off the board.
func (bg boardGeometry) screenToSquare(x, y int) board.Square {
	size := bg.squareSize * 8
	if x < 0 || x >= size || y < 0 || y >= size {
		return board.NoSquare
	}
	row, col := y/bg.squareSize, x/bg.squareSize
	if bg.flipped {
		row, col = 7-row, 7-col
	}
	return board.SquareAt(row, col)
}

// rowLabel is the rank digit shown beside screen row row.
func (bg boardGeometry) rowLabel(row int) string {
	if bg.flipped {
		return string(rune('1' + row))
	}
	return string(rune('8' - row))
}

// colLabel is the file letter shown below screen column col.
func (bg boardGeometry) colLabel(col int) string {
	if bg.flipped {
		return string(rune('h' - col))
	}
	return string(rune('a' + col))
}
