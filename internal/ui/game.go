package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
	"github.com/hailam/chesspad/internal/storage"
)

// Game implements ebiten.Game around a chess game. Update and Draw run on
// the same goroutine, so the chess game needs no locking.
type Game struct {
	chess *game.Game
	bot   *game.BotRunner
	clock *game.Clock

	// Drag state. dragFrom is NoSquare when nothing is dragged; dragMoved
	// is set once the mouse leaves dragFrom.
	dragFrom  board.Square
	dragMoved bool
	// reclick is set when a press landed on the already selected piece, so
	// releasing there deselects it.
	reclick bool

	store    *storage.Storage
	prefs    *storage.UserPreferences
	logger   zerolog.Logger
	started  time.Time
	finished bool

	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager
	picker   *PromotionPicker
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the UI's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithStorage persists the session, preferences and finished games.
func WithStorage(s *storage.Storage, prefs *storage.UserPreferences) Option {
	return func(g *Game) {
		g.store = s
		if prefs != nil {
			g.prefs = prefs
		}
	}
}

// WithClock shows per-side clocks.
func WithClock(c *game.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithStarted sets when a resumed game began.
func WithStarted(t time.Time) Option {
	return func(g *Game) {
		if !t.IsZero() {
			g.started = t
		}
	}
}

// NewGame creates the desktop UI for chess. A nil bot gets a default runner.
func NewGame(chess *game.Game, bot *game.BotRunner, opts ...Option) (*Game, error) {
	if bot == nil {
		bot = game.NewBotRunner(chess, nil)
	}
	g := &Game{
		chess:    chess,
		bot:      bot,
		dragFrom: board.NoSquare,
		prefs:    storage.DefaultPreferences(),
		logger:   zerolog.Nop(),
		started:  time.Now(),
		input:    NewInputHandler(),
	}
	for _, opt := range opts {
		opt(g)
	}

	var err error
	if g.renderer, err = NewRenderer(SquareSize); err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, err
	}
	g.renderer.SetFlipped(chess.Mode() == game.ModeVsBot && chess.BotColor() == board.White)
	g.feedback = NewFeedbackManager(g.prefs.SoundEnabled)
	g.picker = NewPromotionPicker(g.renderer)
	g.panel = NewPanel(g)

	chess.OnMove(g.feedback.OnMove)
	chess.OnMove(func(game.MoveEvent) { g.panel.ScrollToEnd() })
	g.finished = chess.Phase().Over()
	return g, nil
}

// Update advances one frame.
func (g *Game) Update() error {
	g.input.Update()
	g.feedback.Update()

	if g.chess.PromotionPending() {
		g.updatePromotion()
	} else if !g.panel.HandleInput(g.input) {
		g.handleShortcut(g.input.Shortcut())
		g.handleBoardInput()
	}

	played, err := g.bot.Poll()
	if err != nil {
		g.logger.Error().Err(err).Msg("bot move")
		g.feedback.OnError(err)
	}
	if played {
		g.afterMove()
	}
	if g.clock != nil {
		g.clock.SyncGame(g.chess)
	}
	g.updateCursor()
	return nil
}

func (g *Game) updatePromotion() {
	if g.input.Shortcut() == ActionCancel {
		g.UndoAction()
		return
	}
	pt, ok := g.picker.HandleInput(g.input, g.chess.PromotionSquare())
	if !ok {
		return
	}
	if err := g.chess.ResolvePromotion(pt); err != nil {
		g.feedback.OnError(err)
		return
	}
	g.afterMove()
}

func (g *Game) handleShortcut(a Action) {
	switch a {
	case ActionNewGame:
		g.NewGameAction()
	case ActionUndo:
		g.UndoAction()
	case ActionRedo:
		g.RedoAction()
	case ActionFlip:
		g.renderer.SetFlipped(!g.renderer.Flipped())
	case ActionToggleSound:
		g.ToggleSoundAction()
	case ActionCancel:
		if g.chess.Selected() != board.NoSquare {
			g.chess.ClickSquare(g.chess.Selected())
		}
	}
}

func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
		return
	}
	ebiten.SetCursorShape(ebiten.CursorShapeDefault)
}

// handleBoardInput turns presses, drags and releases on the board into
// square clicks.
func (g *Game) handleBoardInput() {
	mx, my := g.input.MousePosition()
	sq := g.renderer.ScreenToSquare(mx, my)

	if g.dragFrom != board.NoSquare {
		if sq != g.dragFrom {
			g.dragMoved = true
		}
		if g.input.IsLeftJustReleased() {
			g.release(sq)
		}
		return
	}
	if !g.input.IsLeftJustPressed() || sq == board.NoSquare {
		return
	}

	selected := g.chess.Selected()
	if selected == sq {
		g.reclick = true
		g.startDrag(sq)
		return
	}
	if selected != board.NoSquare && !isTarget(g.chess.Highlights(), sq) && !g.ownPiece(sq) {
		g.feedback.OnInvalidMove(selected, sq)
	}
	g.click(sq)
	if g.chess.Selected() == sq {
		g.startDrag(sq)
	}
}

func (g *Game) startDrag(sq board.Square) {
	g.dragFrom = sq
	g.dragMoved = false
}

// release ends a drag on target.
func (g *Game) release(target board.Square) {
	from, moved, reclick := g.dragFrom, g.dragMoved, g.reclick
	g.dragFrom, g.dragMoved, g.reclick = board.NoSquare, false, false

	switch {
	case !moved || target == from:
		if reclick {
			g.click(from)
		}
	case target == board.NoSquare:
	case isTarget(g.chess.Highlights(), target):
		g.click(target)
	default:
		g.feedback.OnInvalidMove(from, target)
	}
}

func (g *Game) click(sq board.Square) {
	switch g.chess.ClickSquare(sq) {
	case game.ClickMoved:
		g.afterMove()
	case game.ClickIgnored:
		if g.chess.BotToMove() {
			g.feedback.OnNotice("Bot is thinking")
		}
	}
}

func (g *Game) ownPiece(sq board.Square) bool {
	p := g.chess.PieceAt(sq)
	return p != board.NoPiece && p.Color() == g.chess.Turn()
}

func isTarget(targets []board.Square, sq board.Square) bool {
	for _, t := range targets {
		if t == sq {
			return true
		}
	}
	return false
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	v := g.chess.Snapshot()
	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	g.renderer.DrawCheck(screen, v.CheckedKing)
	g.renderer.DrawHighlights(screen, v)

	skip := board.NoSquare
	if g.dragFrom != board.NoSquare && g.dragMoved {
		skip = g.dragFrom
	}
	g.renderer.DrawPieces(screen, &v.Board, skip, g.feedback.Animations())
	if skip != board.NoSquare {
		mx, my := g.input.MousePosition()
		g.renderer.DrawDraggedPiece(screen, v.Board.PieceAt(skip), mx, my)
	}

	if v.Phase == game.PhasePendingPromotion {
		g.picker.Draw(screen, g.input, v.PromotionSquare, v.Turn)
	}
	g.feedback.Draw(screen, g.renderer)
	g.panel.Draw(screen, v)
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// afterMove persists the game and records it once it has ended.
func (g *Game) afterMove() {
	if !g.chess.Phase().Over() {
		g.saveSession()
		return
	}
	if g.finished {
		return
	}
	g.finished = true
	if g.store == nil {
		return
	}
	id, err := g.store.Finish(g.chess, g.started)
	if err != nil {
		g.logger.Error().Err(err).Msg("record finished game")
		return
	}
	g.logger.Info().Str("id", id).Str("result", g.chess.Result().String()).Msg("game archived")
}

func (g *Game) saveSession() {
	if g.store == nil || g.chess.Phase().Over() {
		return
	}
	if err := g.store.SaveSession(storage.SessionOf(g.chess, g.started)); err != nil {
		g.logger.Error().Err(err).Msg("save session")
	}
}

func (g *Game) savePreferences() {
	if g.store == nil {
		return
	}
	g.prefs.GameMode = storage.ModeOf(g.chess.Mode())
	g.prefs.BotColor = storage.ColorOf(g.chess.BotColor())
	g.prefs.SoundEnabled = g.feedback.Audio().IsEnabled()
	if err := g.store.SavePreferences(g.prefs); err != nil {
		g.logger.Error().Err(err).Msg("save preferences")
	}
}

// NewGameAction starts over, keeping the mode.
func (g *Game) NewGameAction() {
	g.bot.Cancel()
	g.chess.NewGame()
	g.dragFrom = board.NoSquare
	g.finished = false
	g.started = time.Now()
	if g.clock != nil {
		g.clock.Reset()
	}
	if g.store != nil {
		if err := g.store.ClearSession(); err != nil {
			g.logger.Error().Err(err).Msg("clear session")
		}
	}
}

// UndoAction takes back the last move, or the last full turn against the bot.
func (g *Game) UndoAction() {
	g.bot.Cancel()
	pending := g.chess.PromotionPending()
	if g.chess.TakeBack() == 0 && !pending {
		g.feedback.OnNotice("Nothing to undo")
	}
	g.dragFrom = board.NoSquare
	g.finished = g.chess.Phase().Over()
	g.saveSession()
}

// RedoAction replays the last undone move.
func (g *Game) RedoAction() {
	if !g.chess.Redo() {
		g.feedback.OnNotice("Nothing to redo")
		return
	}
	g.afterMove()
}

// SetModeAction switches between two players and playing the bot.
func (g *Game) SetModeAction(m game.Mode) {
	if m == g.chess.Mode() {
		return
	}
	g.bot.Cancel()
	g.chess.SetMode(m, g.chess.BotColor())
	g.savePreferences()
	g.saveSession()
}

// SetBotColorAction makes the bot play c and turns the board so the human
// sits at the bottom.
func (g *Game) SetBotColorAction(c board.Color) {
	if c == g.chess.BotColor() {
		return
	}
	g.bot.Cancel()
	g.chess.SetMode(g.chess.Mode(), c)
	g.renderer.SetFlipped(c == board.White)
	g.savePreferences()
	g.saveSession()
}

// ToggleSoundAction turns sound effects on or off.
func (g *Game) ToggleSoundAction() {
	a := g.feedback.Audio()
	a.SetEnabled(!a.IsEnabled())
	g.savePreferences()
}

// Close stops the bot and saves the game in progress.
func (g *Game) Close() {
	g.bot.Cancel()
	g.saveSession()
}

// Mode returns the chess game's mode.
func (g *Game) Mode() game.Mode { return g.chess.Mode() }

// CanUndo reports whether there is a move to take back.
func (g *Game) CanUndo() bool { return g.chess.CanUndo() }

// CanRedo reports whether there is an undone move to replay.
func (g *Game) CanRedo() bool { return g.chess.CanRedo() }

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool { return g.feedback.Audio().IsEnabled() }

// Thinking reports whether the bot is choosing a move.
func (g *Game) Thinking() bool { return g.bot.Thinking() }

// Clock returns the clock, or nil.
func (g *Game) Clock() *game.Clock { return g.clock }

// Username returns the player's name.
func (g *Game) Username() string { return g.prefs.Username }
