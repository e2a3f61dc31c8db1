package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},
	}
}

// Renderer handles all board drawing.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	geo     boardGeometry
}

// NewRenderer creates a renderer for a board of the given square size.
func NewRenderer(squareSize int) (*Renderer, error) {
	sprites, err := NewSpriteManager(squareSize)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		sprites: sprites,
		theme:   DefaultTheme(),
		geo:     boardGeometry{squareSize: squareSize},
	}, nil
}

// SetFlipped puts black at the bottom when flipped is true.
func (r *Renderer) SetFlipped(flipped bool) {
	r.geo.flipped = flipped
}

// Flipped reports the board orientation.
func (r *Renderer) Flipped() bool {
	return r.geo.flipped
}

// DrawBoard draws the squares and their coordinate labels.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	size := float32(r.geo.squareSize)
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		c := r.theme.LightSquare
		if (sq.Rank()+sq.File())%2 == 1 {
			c = r.theme.DarkSquare
		}
		x, y := r.geo.squareToScreen(sq)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the left column with ranks and the bottom row with
// files, in the color of the opposite square.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := GetFaceWithSize(labelFontSize)
	size := float64(r.geo.squareSize)
	for i := 0; i < 8; i++ {
		c := r.theme.DarkSquare
		if i%2 == 1 {
			c = r.theme.LightSquare
		}
		drawText(screen, r.geo.rowLabel(i), face, 3, float64(i)*size+2, c)

		c = r.theme.LightSquare
		if i%2 == 1 {
			c = r.theme.DarkSquare
		}
		w, h := MeasureText(r.geo.colLabel(i), face)
		drawText(screen, r.geo.colLabel(i), face, float64(i+1)*size-w-3, 8*size-h-2, c)
	}
}

// DrawHighlights draws the last move, the selection and the selected piece's
// legal targets.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, v game.View) {
	if v.LastMove != board.NoMove {
		r.highlightSquare(screen, v.LastMove.From(), r.theme.LastMoveColor)
		r.highlightSquare(screen, v.LastMove.To(), r.theme.LastMoveColor)
	}
	r.highlightSquare(screen, v.Selected, r.theme.SelectedSquare)
	for _, sq := range v.Highlights {
		r.drawLegalMoveIndicator(screen, sq, v.Board.PieceAt(sq) != board.NoPiece)
	}
}

// DrawCheck highlights the king's square if in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, kingSq board.Square) {
	r.highlightSquare(screen, kingSq, r.theme.CheckColor)
}

func (r *Renderer) highlightSquare(screen *ebiten.Image, sq board.Square, c color.RGBA) {
	if !sq.IsValid() {
		return
	}
	x, y := r.geo.squareToScreen(sq)
	size := float32(r.geo.squareSize)
	vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
}

// drawLegalMoveIndicator draws a dot on empty targets and a ring on captures.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq board.Square, capture bool) {
	x, y := r.geo.squareToScreen(sq)
	size := float32(r.geo.squareSize)
	cx := float32(x) + size/2
	cy := float32(y) + size/2
	if capture {
		vector.StrokeCircle(screen, cx, cy, size*0.44, size*0.07, r.theme.LegalMoveColor, true)
		return
	}
	vector.DrawFilledCircle(screen, cx, cy, size*0.15, r.theme.LegalMoveColor, true)
}

// DrawPieces draws every piece except the one on skip, applying shake
// offsets from anims.
func (r *Renderer) DrawPieces(screen *ebiten.Image, b *board.Board, skip board.Square, anims *AnimationManager) {
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		piece := b.PieceAt(sq)
		if piece == board.NoPiece || sq == skip {
			continue
		}
		x, y := r.geo.squareToScreen(sq)
		if anims != nil {
			dx, dy := anims.GetShakeOffset(sq)
			x += int(dx)
			y += int(dy)
		}
		r.sprites.DrawPieceAt(screen, piece, x, y)
	}
}

// DrawDraggedPiece draws piece centered on the mouse.
func (r *Renderer) DrawDraggedPiece(screen *ebiten.Image, piece board.Piece, mouseX, mouseY int) {
	half := r.geo.squareSize / 2
	r.sprites.DrawPieceAt(screen, piece, mouseX-half, mouseY-half)
}

// SquareToScreen converts a board square to screen coordinates.
func (r *Renderer) SquareToScreen(sq board.Square) (int, int) {
	return r.geo.squareToScreen(sq)
}

// ScreenToSquare converts screen coordinates to a board square.
func (r *Renderer) ScreenToSquare(x, y int) board.Square {
	return r.geo.screenToSquare(x, y)
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.geo.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// Sprites returns the sprite manager.
func (r *Renderer) Sprites() *SpriteManager {
	return r.sprites
}
