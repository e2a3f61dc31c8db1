// Package term is a terminal frontend built on tview and tcell.
package term

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
	"github.com/hailam/chesspad/internal/storage"
)

const tickInterval = 100 * time.Millisecond

// App owns the game and all widgets. Game state is only touched on the tview
// event goroutine.
type App struct {
	app   *tview.Application
	board *BoardView
	info  *tview.TextView

	game   *game.Game
	bot    *game.BotRunner
	clock  *game.Clock
	store  *storage.Storage
	logger zerolog.Logger

	started  time.Time
	finished bool
	message  string
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the app's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) { a.logger = l }
}

// WithStarted sets when a resumed game began.
func WithStarted(t time.Time) Option {
	return func(a *App) {
		if !t.IsZero() {
			a.started = t
		}
	}
}

// WithStorage saves the session as the game goes and records finished games.
func WithStorage(s *storage.Storage) Option {
	return func(a *App) { a.store = s }
}

// WithClock shows per-side clocks.
func WithClock(c *game.Clock) Option {
	return func(a *App) { a.clock = c }
}

// New builds the terminal UI around g. A nil bot gets a default runner.
func New(g *game.Game, bot *game.BotRunner, opts ...Option) *App {
	if bot == nil {
		bot = game.NewBotRunner(g, nil)
	}
	a := &App{
		app:     tview.NewApplication(),
		game:    g,
		bot:     bot,
		logger:  zerolog.Nop(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.board = NewBoardView(g, a.click)
	if g.Mode() == game.ModeVsBot && g.BotColor() == board.White {
		a.board.SetFlipped(true)
	}
	a.info = tview.NewTextView().SetDynamicColors(true).SetWrap(true)
	a.info.SetBorder(true).SetTitle(" game ")

	layout := tview.NewFlex().
		AddItem(a.board, boardWidth+4, 0, true).
		AddItem(a.info, 0, 1, false)

	a.app.SetRoot(layout, true).EnableMouse(true).SetFocus(a.board)
	a.app.SetInputCapture(a.key)
	a.refresh()
	return a
}

// Run shows the UI until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.tick(ctx)
	go func() {
		<-ctx.Done()
		a.app.Stop()
	}()

	err := a.app.Run()
	a.bot.Cancel()
	a.saveSession()
	return err
}

// tick drives the bot and the clocks from the event goroutine.
func (a *App) tick(ctx context.Context) {
	t := time.NewTicker(tickInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.app.QueueUpdateDraw(a.update)
		}
	}
}

func (a *App) update() {
	played, err := a.bot.Poll()
	if err != nil {
		a.logger.Error().Err(err).Msg("bot move")
		a.message = err.Error()
	}
	if played {
		a.afterMove()
	}
	a.refresh()
}

func (a *App) click(sq board.Square) {
	res := a.game.ClickSquare(sq)
	a.message = ""
	if res == game.ClickMoved {
		a.afterMove()
	}
	a.refresh()
}

func (a *App) key(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		a.board.MoveCursor(1, 0)
	case tcell.KeyDown:
		a.board.MoveCursor(-1, 0)
	case tcell.KeyLeft:
		a.board.MoveCursor(0, -1)
	case tcell.KeyRight:
		a.board.MoveCursor(0, 1)
	case tcell.KeyEnter:
		a.click(a.board.Cursor())
	case tcell.KeyEscape:
		a.app.Stop()
	case tcell.KeyRune:
		a.handleRune(event.Rune())
	default:
		return event
	}
	return nil
}

func (a *App) handleRune(r rune) {
	if a.game.PromotionPending() {
		if pt, ok := board.ParsePromotion(byte(r)); r < 128 && ok {
			if err := a.game.ResolvePromotion(pt); err != nil {
				a.message = err.Error()
			} else {
				a.afterMove()
			}
			a.refresh()
			return
		}
	}

	switch r {
	case ' ':
		a.click(a.board.Cursor())
	case 'u':
		a.bot.Cancel()
		a.game.TakeBack()
		a.finished = a.game.Phase().Over()
		a.saveSession()
	case 'r':
		if a.game.Redo() {
			a.afterMove()
		}
	case 'n':
		a.bot.Cancel()
		a.game.NewGame()
		a.finished = false
		a.started = time.Now()
		if a.clock != nil {
			a.clock.Reset()
		}
		a.saveSession()
	case 'f':
		a.board.Flip()
	case 'q':
		a.app.Stop()
	}
	a.refresh()
}

// afterMove persists the game and records it once it has ended.
func (a *App) afterMove() {
	if !a.game.Phase().Over() {
		a.saveSession()
		return
	}
	if a.finished {
		return
	}
	a.finished = true
	if a.store == nil {
		return
	}
	if _, err := a.store.Finish(a.game, a.started); err != nil {
		a.logger.Error().Err(err).Msg("record finished game")
	}
}

func (a *App) saveSession() {
	if a.store == nil || a.game.Phase().Over() {
		return
	}
	if err := a.store.SaveSession(storage.SessionOf(a.game, a.started)); err != nil {
		a.logger.Error().Err(err).Msg("save session")
	}
}

func (a *App) refresh() {
	if a.clock != nil {
		a.clock.SyncGame(a.game)
	}
	a.info.SetText(infoText(a.game.Snapshot(), a.clock, a.bot.Thinking(), a.message))
}

// infoText renders the side panel.
func infoText(v game.View, clock *game.Clock, thinking bool, message string) string {
	var sb strings.Builder

	switch {
	case v.Phase.Over():
		fmt.Fprintf(&sb, "[yellow]%s (%s)[-]\n", v.StatusText, v.Result)
	case v.Status.InCheck:
		fmt.Fprintf(&sb, "[red]%s[-]\n", v.StatusText)
	default:
		fmt.Fprintf(&sb, "%s\n", v.StatusText)
	}
	if thinking {
		sb.WriteString("Bot is thinking...\n")
	}

	mode := "Two players"
	if v.Mode == game.ModeVsBot {
		mode = fmt.Sprintf("Versus bot (bot plays %s)", v.BotColor)
	}
	fmt.Fprintf(&sb, "%s\n\n", mode)

	if clock != nil {
		fmt.Fprintf(&sb, "White %s   Black %s\n\n", clock.Format(board.White), clock.Format(board.Black))
	}

	fmt.Fprintf(&sb, "Captured by white: %s\n", pieceList(v.CapturedBlack))
	fmt.Fprintf(&sb, "Captured by black: %s\n\n", pieceList(v.CapturedWhite))

	for i := 0; i < len(v.History); i += 2 {
		line := v.History[i].String()
		if i+1 < len(v.History) {
			line += " " + v.History[i+1].Notation
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	if v.Phase == game.PhasePendingPromotion {
		sb.WriteString("\n[green]Promote: q queen, r rook, b bishop, n knight[-]\n")
	}
	if message != "" {
		fmt.Fprintf(&sb, "\n[red]%s[-]\n", tview.Escape(message))
	}
	sb.WriteString("\narrows/enter or mouse: select and move\nu undo  r redo  n new  f flip  q quit\n")
	return sb.String()
}

func pieceList(ps []board.Piece) string {
	if len(ps) == 0 {
		return "-"
	}
	var sb strings.Builder
	for _, p := range ps {
		sb.WriteRune(pieceRune(p))
	}
	return sb.String()
}
