package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesspad/internal/board"
)

// promotionChoices is the order pieces are offered in, nearest the
// promotion square first.
var promotionChoices = [4]board.PieceType{board.Queen, board.Knight, board.Rook, board.Bishop}

var (
	pickerShade  = color.RGBA{0, 0, 0, 140}
	pickerTile   = color.RGBA{235, 235, 235, 255}
	pickerHover  = color.RGBA{247, 247, 105, 255}
	pickerBorder = color.RGBA{60, 65, 72, 255}
)

// pickerSlots returns the top-left corners of the choice tiles: a column on
// the promotion square's file, running from it toward the board's center.
func pickerSlots(geo boardGeometry, sq board.Square) [4][2]int {
	x, y := geo.squareToScreen(sq)
	step := geo.squareSize
	if y > 0 {
		step = -step
	}
	var slots [4][2]int
	for i := range slots {
		slots[i] = [2]int{x, y + i*step}
	}
	return slots
}

// pickAt returns the choice under (mx, my).
func pickAt(geo boardGeometry, sq board.Square, mx, my int) (board.PieceType, bool) {
	for i, s := range pickerSlots(geo, sq) {
		if mx >= s[0] && mx < s[0]+geo.squareSize && my >= s[1] && my < s[1]+geo.squareSize {
			return promotionChoices[i], true
		}
	}
	return 0, false
}

// PromotionPicker is the modal shown while a promotion waits for its piece.
type PromotionPicker struct {
	renderer *Renderer
}

// NewPromotionPicker creates a picker drawing with r.
func NewPromotionPicker(r *Renderer) *PromotionPicker {
	return &PromotionPicker{renderer: r}
}

// HandleInput returns the piece picked this frame, from a click or a key.
// The second result is false when nothing was picked.
func (pp *PromotionPicker) HandleInput(in *InputHandler, sq board.Square) (board.PieceType, bool) {
	if pt, ok := in.PromotionKey(); ok {
		return pt, true
	}
	if in.IsLeftJustPressed() {
		mx, my := in.MousePosition()
		return pickAt(pp.renderer.geo, sq, mx, my)
	}
	return 0, false
}

// Draw dims the board and draws the choices for the side to move.
func (pp *PromotionPicker) Draw(screen *ebiten.Image, in *InputHandler, sq board.Square, side board.Color) {
	geo := pp.renderer.geo
	vector.DrawFilledRect(screen, 0, 0, BoardSize, BoardSize, pickerShade, false)

	mx, my := in.MousePosition()
	hovered, hover := pickAt(geo, sq, mx, my)
	size := float32(geo.squareSize)
	for i, s := range pickerSlots(geo, sq) {
		pt := promotionChoices[i]
		bg := pickerTile
		if hover && pt == hovered {
			bg = pickerHover
		}
		x, y := float32(s[0]), float32(s[1])
		vector.DrawFilledRect(screen, x, y, size, size, bg, false)
		vector.StrokeRect(screen, x, y, size, size, 1, pickerBorder, false)
		pp.renderer.sprites.DrawPieceAt(screen, board.NewPiece(pt, side), s[0], s[1])
	}
}
