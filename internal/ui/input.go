package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/hailam/chesspad/internal/board"
)

// Action is a keyboard shortcut.
type Action int

const (
	ActionNone Action = iota
	ActionNewGame
	ActionUndo
	ActionRedo
	ActionFlip
	ActionToggleSound
	ActionCancel
)

var shortcuts = []struct {
	key    ebiten.Key
	action Action
}{
	{ebiten.KeyN, ActionNewGame},
	{ebiten.KeyU, ActionUndo},
	{ebiten.KeyBackspace, ActionUndo},
	{ebiten.KeyR, ActionRedo},
	{ebiten.KeyF, ActionFlip},
	{ebiten.KeyM, ActionToggleSound},
	{ebiten.KeyEscape, ActionCancel},
}

var promotionKeys = []struct {
	key ebiten.Key
	pt  board.PieceType
}{
	{ebiten.KeyQ, board.Queen},
	{ebiten.KeyR, board.Rook},
	{ebiten.KeyB, board.Bishop},
	{ebiten.KeyN, board.Knight},
}

// InputHandler snapshots mouse and keyboard state once per frame.
type InputHandler struct {
	mouseX, mouseY   int
	leftPressed      bool
	leftJustPressed  bool
	leftJustReleased bool
	wheelY           float64
}

// NewInputHandler creates a new input handler.
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Update updates the input state. Call this once per frame.
func (ih *InputHandler) Update() {
	ih.mouseX, ih.mouseY = ebiten.CursorPosition()
	ih.leftJustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	ih.leftJustReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	ih.leftPressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, ih.wheelY = ebiten.Wheel()
}

// MousePosition returns the current mouse position in logical coordinates.
func (ih *InputHandler) MousePosition() (int, int) {
	return ih.mouseX, ih.mouseY
}

// IsLeftJustPressed returns true if the left mouse button was just pressed.
func (ih *InputHandler) IsLeftJustPressed() bool {
	return ih.leftJustPressed
}

// IsLeftJustReleased returns true if the left mouse button was just released.
func (ih *InputHandler) IsLeftJustReleased() bool {
	return ih.leftJustReleased
}

// IsLeftPressed returns true if the left mouse button is currently pressed.
func (ih *InputHandler) IsLeftPressed() bool {
	return ih.leftPressed
}

// Wheel returns this frame's vertical scroll.
func (ih *InputHandler) Wheel() float64 {
	return ih.wheelY
}

// IsInBounds returns true if the mouse is within the given rectangle.
func (ih *InputHandler) IsInBounds(x, y, w, h int) bool {
	return ih.mouseX >= x && ih.mouseX < x+w && ih.mouseY >= y && ih.mouseY < y+h
}

// Shortcut returns the first shortcut key pressed this frame.
func (ih *InputHandler) Shortcut() Action {
	for _, s := range shortcuts {
		if inpututil.IsKeyJustPressed(s.key) {
			return s.action
		}
	}
	return ActionNone
}

// PromotionKey returns the piece type whose key was pressed this frame.
func (ih *InputHandler) PromotionKey() (board.PieceType, bool) {
	for _, k := range promotionKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return k.pt, true
		}
	}
	return 0, false
}
