// Package console drives a game over a line-oriented text protocol.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
	"github.com/hailam/chesspad/internal/storage"
)

// Console reads commands, applies them to a Game and writes the replies.
type Console struct {
	game   *game.Game
	bot    *game.BotRunner
	store  *storage.Storage
	logger zerolog.Logger
	out    io.Writer

	started  time.Time
	finished bool
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the console's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// WithStarted sets when a resumed game began.
func WithStarted(t time.Time) Option {
	return func(c *Console) {
		if !t.IsZero() {
			c.started = t
		}
	}
}

// WithStorage saves the session after every move and records finished games.
func WithStorage(s *storage.Storage) Option {
	return func(c *Console) { c.store = s }
}

// New creates a console for g. A nil bot gets a runner with the default engine.
func New(g *game.Game, bot *game.BotRunner, opts ...Option) *Console {
	if bot == nil {
		bot = game.NewBotRunner(g, nil)
	}
	c := &Console{
		game:    g,
		bot:     bot,
		logger:  zerolog.Nop(),
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run is the main loop. It returns when the input ends, "quit" is read or ctx
// is cancelled.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.out = out
	scanner := bufio.NewScanner(in)

	// The bot may open the game.
	if err := c.awaitBot(ctx); err != nil {
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "new":
			c.handleNew()
		case "mode":
			c.handleMode(args)
		case "click":
			c.handleClick(args)
		case "moves":
			c.handleMoves(args)
		case "move":
			c.handleMove(args)
		case "promote":
			c.handlePromote(args)
		case "undo":
			c.handleUndo()
		case "redo":
			c.handleRedo()
		case "d", "show":
			c.handleShow()
		case "status":
			c.println(c.game.StatusText())
		case "history":
			c.handleHistory()
		case "captured":
			c.handleCaptured()
		case "perft":
			c.handlePerft(args)
		case "quit":
			c.saveSession()
			return nil
		default:
			c.printf("unknown command: %s\n", cmd)
		}

		if err := c.awaitBot(ctx); err != nil {
			return err
		}
		c.checkFinished()
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	c.saveSession()
	return nil
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) fail(err error) {
	c.printf("error: %v\n", err)
}

// awaitBot lets the bot reply and reports its move.
func (c *Console) awaitBot(ctx context.Context) error {
	played, err := c.bot.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.fail(err)
		return nil
	}
	if played {
		h := c.game.History()
		c.printf("bot plays %s\n", h[len(h)-1])
		c.saveSession()
	}
	return nil
}

// checkFinished reports the end of the game once and records it.
func (c *Console) checkFinished() {
	if c.finished || !c.game.Phase().Over() {
		return
	}
	c.finished = true
	c.printf("%s (%s)\n", c.game.StatusText(), c.game.Result())
	if c.store == nil {
		return
	}
	if _, err := c.store.Finish(c.game, c.started); err != nil {
		c.logger.Error().Err(err).Msg("record finished game")
	}
}

func (c *Console) saveSession() {
	if c.store == nil || c.game.Phase().Over() {
		return
	}
	if err := c.store.SaveSession(storage.SessionOf(c.game, c.started)); err != nil {
		c.logger.Error().Err(err).Msg("save session")
	}
}

func (c *Console) restart() {
	c.bot.Cancel()
	c.finished = false
	c.started = time.Now()
}

func (c *Console) handleNew() {
	c.restart()
	c.game.NewGame()
	c.saveSession()
	c.println("new game")
}

// handleMode parses "mode two" or "mode bot <white|black>".
func (c *Console) handleMode(args []string) {
	if len(args) == 0 {
		c.printf("mode %s", c.game.Mode())
		if c.game.Mode() == game.ModeVsBot {
			c.printf(" %s", strings.ToLower(c.game.BotColor().String()))
		}
		c.println("")
		return
	}
	m, err := game.ParseMode(args[0])
	if err != nil {
		c.fail(err)
		return
	}
	botColor := board.Black
	if len(args) > 1 {
		col, ok := board.ParseColor(args[1])
		if !ok {
			c.printf("error: invalid color: %s\n", args[1])
			return
		}
		botColor = col
	}
	c.bot.Cancel()
	c.game.SetMode(m, botColor)
	c.println("ok")
}

func (c *Console) square(args []string) (board.Square, bool) {
	if len(args) == 0 {
		c.println("error: missing square")
		return board.NoSquare, false
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		c.fail(err)
		return board.NoSquare, false
	}
	return sq, true
}

func (c *Console) handleClick(args []string) {
	sq, ok := c.square(args)
	if !ok {
		return
	}
	res := c.game.ClickSquare(sq)
	switch res {
	case game.ClickSelected:
		c.printf("selected %s: %s\n", sq, joinSquares(c.game.Highlights()))
	case game.ClickMoved:
		c.printLastMove()
	case game.ClickPromotionPending:
		c.printf("promotion pending on %s\n", c.game.PromotionSquare())
	default:
		c.println(res.String())
	}
}

func (c *Console) handleMoves(args []string) {
	sq, ok := c.square(args)
	if !ok {
		return
	}
	c.println(joinSquares(c.game.LegalMoves(sq)))
}

func (c *Console) handleMove(args []string) {
	if len(args) == 0 {
		c.println("error: missing move")
		return
	}
	if err := c.game.PlayMoveString(args[0]); err != nil {
		c.fail(err)
		return
	}
	c.printLastMove()
}

func (c *Console) handlePromote(args []string) {
	if len(args) == 0 || len(args[0]) != 1 {
		c.println("error: promote takes one of q, r, b, n")
		return
	}
	pt, ok := board.ParsePromotion(args[0][0])
	if !ok {
		c.printf("error: invalid promotion piece: %s\n", args[0])
		return
	}
	if err := c.game.ResolvePromotion(pt); err != nil {
		c.fail(err)
		return
	}
	c.printLastMove()
}

func (c *Console) printLastMove() {
	h := c.game.History()
	c.println(h[len(h)-1].String())
	c.saveSession()
}

func (c *Console) handleUndo() {
	if !c.game.CanUndo() {
		c.println("nothing to undo")
		return
	}
	c.bot.Cancel()
	n := c.game.TakeBack()
	c.finished = false
	c.saveSession()
	c.printf("undone %d\n", n)
}

func (c *Console) handleRedo() {
	if !c.game.Redo() {
		c.println("nothing to redo")
		return
	}
	c.printLastMove()
}

func (c *Console) handleShow() {
	pos := c.game.Position()
	c.printf("%s", pos.String())
	c.println(c.game.StatusText())
}

func (c *Console) handleHistory() {
	h := c.game.History()
	if len(h) == 0 {
		c.println("no moves")
		return
	}
	var sb strings.Builder
	for i, e := range h {
		if e.Mover == board.White || i == 0 {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(e.String())
		} else {
			sb.WriteByte(' ')
			sb.WriteString(e.Notation)
		}
	}
	c.println(sb.String())
}

func (c *Console) handleCaptured() {
	c.printf("white: %s\n", joinPieces(c.game.Captured(board.White)))
	c.printf("black: %s\n", joinPieces(c.game.Captured(board.Black)))
}

// handlePerft runs a perft count from the current position.
func (c *Console) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			c.printf("error: invalid depth: %s\n", args[0])
			return
		}
		depth = d
	}

	pos := c.game.Position()
	start := time.Now()
	nodes := board.Perft(&pos, depth)
	elapsed := time.Since(start)

	c.printf("Nodes: %d\n", nodes)
	c.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		c.printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func joinSquares(sqs []board.Square) string {
	if len(sqs) == 0 {
		return "-"
	}
	names := make([]string, len(sqs))
	for i, sq := range sqs {
		names[i] = sq.String()
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

func joinPieces(ps []board.Piece) string {
	if len(ps) == 0 {
		return "-"
	}
	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.String()
	}
	return strings.Join(names, " ")
}
