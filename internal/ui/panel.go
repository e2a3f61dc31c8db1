package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 24
	ButtonHeight   = 40
	TabHeight      = 32
	SectionLabelH  = 20
	statusBarH     = 70
	moveRowHeight  = 22
	capturedSize   = 24
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	accentPressed   = color.RGBA{56, 155, 100, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
	statusCheck     = color.RGBA{255, 120, 120, 255}
	clockActive     = color.RGBA{240, 240, 245, 255}
	clockFlagged    = color.RGBA{255, 90, 90, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	hovered    bool
	pressed    bool
	disabled   bool
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// Panel is the side panel with controls, captured pieces and move history.
type Panel struct {
	game *Game

	newGameBtn *Button
	undoBtn    *Button
	redoBtn    *Button
	soundBtn   *Button
	modeTabs   []*Button // [0] = two players, [1] = vs bot
	colorTabs  []*Button // [0] = bot plays white, [1] = bot plays black

	scrollY    int
	maxScrollY int
}

// NewPanel creates the panel for g.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g}
	p.createButtons()
	return p
}

func (p *Panel) createButtons() {
	contentX := BoardSize + PanelPadding
	contentW := PanelWidth - PanelPadding*2
	half := contentW / 2

	y := PanelPadding + 8
	p.newGameBtn = &Button{X: contentX, Y: y, W: contentW, H: ButtonHeight,
		Label: "New Game", OnClick: p.game.NewGameAction}

	y += ButtonHeight + 8
	p.undoBtn = &Button{X: contentX, Y: y, W: half - 4, H: TabHeight,
		Label: "Undo", OnClick: p.game.UndoAction}
	p.redoBtn = &Button{X: contentX + half + 4, Y: y, W: half - 4, H: TabHeight,
		Label: "Redo", OnClick: p.game.RedoAction}

	y += TabHeight + SectionSpacing + SectionLabelH
	p.modeTabs = []*Button{
		{X: contentX, Y: y, W: half, H: TabHeight, Label: "Two Players",
			OnClick: func() { p.game.SetModeAction(game.ModeTwoPlayer) }},
		{X: contentX + half, Y: y, W: half, H: TabHeight, Label: "vs Bot",
			OnClick: func() { p.game.SetModeAction(game.ModeVsBot) }},
	}

	y += TabHeight + SectionSpacing + SectionLabelH
	p.colorTabs = []*Button{
		{X: contentX, Y: y, W: half, H: TabHeight - 2, Label: "White",
			OnClick: func() { p.game.SetBotColorAction(board.White) }},
		{X: contentX + half, Y: y, W: half, H: TabHeight - 2, Label: "Black",
			OnClick: func() { p.game.SetBotColorAction(board.Black) }},
	}

	p.soundBtn = &Button{X: contentX, Y: y, W: contentW, H: TabHeight - 4,
		OnClick: p.game.ToggleSoundAction}
}

// buttons returns the buttons active in the current mode.
func (p *Panel) buttons() []*Button {
	bs := []*Button{p.newGameBtn, p.undoBtn, p.redoBtn}
	bs = append(bs, p.modeTabs...)
	if p.game.Mode() == game.ModeVsBot {
		bs = append(bs, p.colorTabs...)
	}
	return append(bs, p.soundBtn)
}

// layoutSound places the sound toggle under the last visible tab row.
func (p *Panel) layoutSound() {
	last := p.modeTabs[0]
	if p.game.Mode() == game.ModeVsBot {
		last = p.colorTabs[0]
	}
	p.soundBtn.Y = last.Y + last.H + 12
	p.soundBtn.Label = "Sound: Off"
	if p.game.SoundEnabled() {
		p.soundBtn.Label = "Sound: On"
	}
	p.undoBtn.disabled = !p.game.CanUndo()
	p.redoBtn.disabled = !p.game.CanRedo()
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	p.layoutSound()
	mx, my := input.MousePosition()

	if wheel := input.Wheel(); wheel != 0 && mx >= BoardSize && my >= p.historyStartY() {
		p.scrollY -= int(wheel * 30)
		p.clampScroll()
	}

	for _, btn := range p.buttons() {
		btn.hovered = !btn.disabled && btn.contains(mx, my)
		btn.pressed = input.IsLeftPressed() && btn.hovered
	}
	if !input.IsLeftJustPressed() {
		return false
	}
	for _, btn := range p.buttons() {
		if btn.hovered {
			btn.OnClick()
			return true
		}
	}
	return mx >= BoardSize
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, btn := range p.buttons() {
		if btn.hovered {
			return true
		}
	}
	return false
}

func (p *Panel) clampScroll() {
	if p.scrollY > p.maxScrollY {
		p.scrollY = p.maxScrollY
	}
	if p.scrollY < 0 {
		p.scrollY = 0
	}
}

// ScrollToEnd shows the latest moves.
func (p *Panel) ScrollToEnd() {
	p.scrollY = 1 << 30
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image, v game.View) {
	p.layoutSound()
	vector.DrawFilledRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg, false)

	p.drawPrimaryButton(screen, p.newGameBtn)
	p.drawSecondaryButton(screen, p.undoBtn)
	p.drawSecondaryButton(screen, p.redoBtn)

	x := BoardSize + PanelPadding
	p.drawSectionLabel(screen, "Game Mode", x, p.modeTabs[0].Y-SectionLabelH)
	p.drawTabs(screen, p.modeTabs, modeTab(v.Mode))
	if v.Mode == game.ModeVsBot {
		p.drawSectionLabel(screen, "Bot Plays", x, p.colorTabs[0].Y-SectionLabelH)
		p.drawTabs(screen, p.colorTabs, int(v.BotColor))
	}
	p.drawSecondaryButton(screen, p.soundBtn)

	y := p.soundBtn.Y + p.soundBtn.H + 14
	y = p.drawClocks(screen, x, y)
	y = p.drawCaptured(screen, v, x, y)

	p.drawSectionLabel(screen, "Moves", x, y)
	p.drawMoveHistory(screen, v.History, y+SectionLabelH+4)

	p.drawStatusBar(screen, v)
}

func modeTab(m game.Mode) int {
	if m == game.ModeVsBot {
		return 1
	}
	return 0
}

func (p *Panel) historyStartY() int {
	return p.soundBtn.Y + p.soundBtn.H + 14
}

func (p *Panel) drawClocks(screen *ebiten.Image, x, y int) int {
	clock := p.game.Clock()
	if clock == nil {
		return y
	}
	face := GetBoldFace()
	for i, side := range []board.Color{board.White, board.Black} {
		c := textMuted
		if clock.Running() == side {
			c = clockActive
		}
		if clock.Flagged(side) {
			c = clockFlagged
		}
		drawText(screen, fmt.Sprintf("%s %s", side, clock.Format(side)), face,
			float64(x+i*(PanelWidth-PanelPadding*2)/2), float64(y), c)
	}
	return y + 28
}

// drawCaptured draws two rows of small sprites: pieces each side has taken.
func (p *Panel) drawCaptured(screen *ebiten.Image, v game.View, x, y int) int {
	sprites := p.game.renderer.Sprites()
	fraction := float64(capturedSize) / float64(sprites.Size())
	for _, row := range [][]board.Piece{v.CapturedBlack, v.CapturedWhite} {
		if len(row) == 0 {
			drawText(screen, "-", GetRegularFace(), float64(x), float64(y+4), textMuted)
		}
		for i, piece := range row {
			sprites.DrawPieceSized(screen, piece, x+i*(capturedSize-6), y, fraction)
		}
		y += capturedSize + 2
	}
	return y + 10
}

func (p *Panel) drawPrimaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := accentColor
	if btn.pressed {
		bgColor = accentPressed
	} else if btn.hovered {
		bgColor = accentHover
	}
	p.drawButtonBox(screen, btn, bgColor, accentPressed)
	drawTextCentered(screen, btn.Label, GetRegularFace(), float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), textPrimary)
}

func (p *Panel) drawSecondaryButton(screen *ebiten.Image, btn *Button) {
	bgColor := buttonBg
	if btn.pressed {
		bgColor = buttonPressedBg
	} else if btn.hovered {
		bgColor = buttonHoverBg
	}
	borderC := buttonBorder
	if btn.hovered {
		borderC = accentColor
	}
	p.drawButtonBox(screen, btn, bgColor, borderC)

	textC := textSecondary
	if btn.disabled {
		textC = textMuted
	}
	drawTextCentered(screen, btn.Label, GetRegularFace(), float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), textC)
}

func (p *Panel) drawButtonBox(screen *ebiten.Image, btn *Button, bg, border color.RGBA) {
	x, y, w, h := float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H)
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, border, false)
}

// drawTabs draws a tab row with tabs[active] highlighted.
func (p *Panel) drawTabs(screen *ebiten.Image, tabs []*Button, active int) {
	for i, btn := range tabs {
		isActive := i == active

		bgColor := tabInactiveBg
		switch {
		case isActive:
			bgColor = tabActiveBg
		case btn.pressed:
			bgColor = buttonPressedBg
		case btn.hovered:
			bgColor = tabHoverBg
		}
		borderC := buttonBorder
		if isActive {
			borderC = tabActiveBg
		} else if btn.hovered {
			borderC = accentColor
		}
		p.drawButtonBox(screen, btn, bgColor, borderC)

		textColor := textSecondary
		if isActive {
			textColor = textPrimary
		}
		drawTextCentered(screen, btn.Label, GetRegularFace(), float64(btn.X+btn.W/2), float64(btn.Y+btn.H/2), textColor)
	}
}

func (p *Panel) drawSectionLabel(screen *ebiten.Image, label string, x, y int) {
	drawText(screen, label, GetRegularFace(), float64(x), float64(y), textMuted)
}

// drawMoveHistory draws numbered move pairs, scrolled by scrollY.
func (p *Panel) drawMoveHistory(screen *ebiten.Image, history []game.HistoryEntry, startY int) {
	face := GetRegularFace()
	x := BoardSize + PanelPadding
	if len(history) == 0 {
		drawText(screen, "No moves yet", face, float64(x), float64(startY+5), textMuted)
		return
	}

	maxY := ScreenHeight - statusBarH
	visibleHeight := maxY - startY
	totalRows := (len(history) + 1) / 2
	contentHeight := totalRows * moveRowHeight
	p.maxScrollY = max(contentHeight-visibleHeight, 0)
	p.clampScroll()

	startRow := p.scrollY / moveRowHeight
	y := startY - p.scrollY%moveRowHeight
	for row := startRow; row < totalRows && y <= maxY-moveRowHeight; row++ {
		if y >= startY {
			if row%2 == 1 {
				vector.DrawFilledRect(screen, float32(x-4), float32(y-2),
					float32(PanelWidth-PanelPadding*2+8), moveRowHeight, moveRowAlt, false)
			}
			white := history[row*2]
			drawText(screen, fmt.Sprintf("%d.", white.MoveNumber), face, float64(x), float64(y), textMuted)
			drawText(screen, white.Notation, face, float64(x+36), float64(y), textPrimary)
			if row*2+1 < len(history) {
				drawText(screen, history[row*2+1].Notation, face, float64(x+120), float64(y), textPrimary)
			}
		}
		y += moveRowHeight
	}

	if p.maxScrollY > 0 {
		scrollPct := float32(p.scrollY) / float32(p.maxScrollY)
		indicatorH := max(float32(visibleHeight)*float32(visibleHeight)/float32(contentHeight), 20)
		indicatorY := float32(startY) + scrollPct*(float32(visibleHeight)-indicatorH)
		vector.DrawFilledRect(screen, float32(BoardSize+PanelWidth-8), indicatorY, 4, indicatorH, textMuted, false)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image, v game.View) {
	statusY := ScreenHeight - statusBarH
	x := BoardSize + PanelPadding
	face := GetRegularFace()

	vector.DrawFilledRect(screen, float32(x), float32(statusY-10), float32(PanelWidth-PanelPadding*2), 1, dividerColor, false)

	username := p.game.Username()
	if len(username) > 16 {
		username = username[:16] + "..."
	}
	drawText(screen, username, face, float64(x), float64(statusY), textPrimary)

	statusText, statusColor := statusLine(v, p.game.Thinking())
	drawText(screen, statusText, face, float64(x), float64(statusY+22), statusColor)
}

// statusLine is the bottom line of the panel.
func statusLine(v game.View, thinking bool) (string, color.RGBA) {
	switch {
	case v.Phase.Over():
		return fmt.Sprintf("%s (%s)", v.StatusText, v.Result), statusGameOver
	case thinking:
		return "Bot thinking...", statusThinking
	case v.Status.InCheck:
		return v.StatusText, statusCheck
	}
	return v.StatusText, textPrimary
}
