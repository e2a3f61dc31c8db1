package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

// BoardView draws a game's board into a tview Box and turns mouse clicks and
// cursor keys into square clicks.
type BoardView struct {
	*tview.Box

	game    *game.Game
	cursor  board.Square
	flipped bool

	// originX and originY are where the last draw put the grid.
	originX, originY int

	onClick func(board.Square)
}

// NewBoardView creates a view of g. onClick runs for every square clicked.
func NewBoardView(g *game.Game, onClick func(board.Square)) *BoardView {
	v := &BoardView{
		Box:     tview.NewBox(),
		game:    g,
		cursor:  board.E2,
		onClick: onClick,
	}
	v.SetBorder(true).SetTitle(" chesspad ")
	v.SetDrawFunc(v.draw)
	v.SetMouseCapture(v.mouse)
	return v
}

// Flip turns the board around.
func (v *BoardView) Flip() {
	v.flipped = !v.flipped
}

// SetFlipped sets the orientation; flipped puts black at the bottom.
func (v *BoardView) SetFlipped(flipped bool) {
	v.flipped = flipped
}

// Cursor returns the square under the keyboard cursor.
func (v *BoardView) Cursor() board.Square { return v.cursor }

// MoveCursor steps the cursor in screen directions.
func (v *BoardView) MoveCursor(up, right int) {
	v.cursor = moveCursor(v.cursor, up, right, v.flipped)
}

func (v *BoardView) mouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick {
		return action, event
	}
	x, y := event.Position()
	sq := hitTest(x, y, v.originX, v.originY, v.flipped)
	if sq == board.NoSquare {
		return action, event
	}
	v.cursor = sq
	v.onClick(sq)
	return tview.MouseConsumed, nil
}

func (v *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	ix, iy, iw, ih := v.GetInnerRect()
	v.originX = ix + (iw-boardWidth)/2
	v.originY = iy + (ih-boardHeight)/2
	if v.originX < ix {
		v.originX = ix
	}
	if v.originY < iy {
		v.originY = iy
	}

	view := v.game.Snapshot()
	targets := make(map[board.Square]bool, len(view.Highlights))
	for _, sq := range view.Highlights {
		targets[sq] = true
	}

	labels := tcell.StyleDefault
	for row := 0; row < 8; row++ {
		screen.SetContent(v.originX, v.originY+row, rankLabel(row, v.flipped), nil, labels)
		for col := 0; col < 8; col++ {
			sq := squareAtCell(row, col, v.flipped)
			v.drawSquare(screen, sq, row, col, view, targets[sq])
		}
	}
	for col := 0; col < 8; col++ {
		screen.SetContent(v.originX+labelWidth+col*cellWidth+1, v.originY+8, fileLabel(col, v.flipped), nil, labels)
	}
	return ix, iy, iw, ih
}

func (v *BoardView) drawSquare(screen tcell.Screen, sq board.Square, row, col int, view game.View, target bool) {
	bg := squareColor(sq)
	if view.LastMove != board.NoMove && (sq == view.LastMove.From() || sq == view.LastMove.To()) {
		bg = lastMoveBG
	}
	if sq == view.Selected {
		bg = selectedBG
	}
	if sq == view.CheckedKing {
		bg = checkBG
	}

	piece := view.Board.PieceAt(sq)
	fg := whitePieceFG
	if piece != board.NoPiece && piece.Color() == board.Black {
		fg = blackPieceFG
	}
	style := tcell.StyleDefault.Background(bg).Foreground(fg)

	left, right := ' ', ' '
	if sq == v.cursor {
		left, right = '[', ']'
	}
	mid := pieceRune(piece)
	if target {
		if piece == board.NoPiece {
			mid = '·'
		} else {
			left, right = '(', ')'
		}
	}

	px := v.originX + labelWidth + col*cellWidth
	py := v.originY + row
	screen.SetContent(px, py, left, nil, style)
	screen.SetContent(px+1, py, mid, nil, style)
	screen.SetContent(px+2, py, right, nil, style)
}
