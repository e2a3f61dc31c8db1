// Package game holds the state of one chess game and the commands that change
// it: square clicks, promotion choice, undo and redo, new game and bot moves.
// A Game is owned by a single goroutine; the bot works on value copies.
package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
)

// Phase is the interaction state of the game.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSelected
	PhasePendingPromotion
	PhaseCheckmate
	PhaseStalemate
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSelected:
		return "selected"
	case PhasePendingPromotion:
		return "promotion"
	case PhaseCheckmate:
		return "checkmate"
	case PhaseStalemate:
		return "stalemate"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Over reports whether the phase is terminal.
func (p Phase) Over() bool {
	return p == PhaseCheckmate || p == PhaseStalemate
}

// Mode selects who plays the two sides.
type Mode int

const (
	ModeTwoPlayer Mode = iota
	ModeVsBot
)

func (m Mode) String() string {
	if m == ModeVsBot {
		return "bot"
	}
	return "two"
}

// ParseMode accepts "two" or "bot".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "two", "two-player", "2":
		return ModeTwoPlayer, nil
	case "bot", "vs-bot", "1":
		return ModeVsBot, nil
	}
	return ModeTwoPlayer, fmt.Errorf("unknown game mode %q", s)
}

// ClickResult reports what a square click did.
type ClickResult int

const (
	ClickIgnored ClickResult = iota
	ClickSelected
	ClickDeselected
	ClickMoved
	ClickPromotionPending
)

func (r ClickResult) String() string {
	switch r {
	case ClickSelected:
		return "selected"
	case ClickDeselected:
		return "deselected"
	case ClickMoved:
		return "moved"
	case ClickPromotionPending:
		return "promotion pending"
	}
	return "ignored"
}

// Game is the stateful chess engine behind every frontend.
type Game struct {
	pos    board.Position
	status board.Status
	phase  Phase

	selected   board.Square
	selMoves   board.MoveList
	highlights []board.Square

	// pending is the half-made promotion move; before is the position it
	// was made from.
	pending board.Move
	before  board.Position

	lastMove board.Move
	captured [2][]board.Piece

	stack   []snapshot
	history []HistoryEntry
	redo    []board.Move

	mode     Mode
	botColor board.Color

	version   uint64
	observers []func(MoveEvent)
	logger    zerolog.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the game's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithMode sets the game mode and, for ModeVsBot, the bot's color.
func WithMode(m Mode, botColor board.Color) Option {
	return func(g *Game) {
		g.mode = m
		g.botColor = botColor
	}
}

// New creates a game at the initial position.
func New(opts ...Option) *Game {
	g := &Game{
		logger:   zerolog.Nop(),
		botColor: board.Black,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reset()
	return g
}

func (g *Game) reset() {
	g.pos = board.NewPosition()
	g.lastMove = board.NoMove
	g.captured = [2][]board.Piece{}
	g.history = nil
	g.redo = nil
	g.pending = board.NoMove
	g.stack = []snapshot{g.takeSnapshot()}
	g.clearSelection()
	g.refreshStatus()
	g.version++
}

// NewGame resets to the initial position, keeping mode and observers.
func (g *Game) NewGame() {
	g.reset()
	g.logger.Info().Str("mode", g.mode.String()).Msg("new game")
}

// SetMode changes the mode. The current position is kept.
func (g *Game) SetMode(m Mode, botColor board.Color) {
	g.mode = m
	g.botColor = botColor
	g.version++
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// BotColor returns the color the bot plays in ModeVsBot.
func (g *Game) BotColor() board.Color { return g.botColor }

// BotToMove reports whether the bot should move now.
func (g *Game) BotToMove() bool {
	return g.mode == ModeVsBot && g.pos.SideToMove == g.botColor &&
		!g.phase.Over() && g.phase != PhasePendingPromotion
}

// LegalMoves returns the legal destinations of the piece on sq.
func (g *Game) LegalMoves(sq board.Square) []board.Square {
	if g.phase.Over() || g.phase == PhasePendingPromotion {
		return nil
	}
	return g.pos.LegalTargets(sq)
}

// ClickSquare advances the selection state machine by one click.
func (g *Game) ClickSquare(sq board.Square) ClickResult {
	if !sq.IsValid() || g.phase.Over() || g.phase == PhasePendingPromotion {
		return ClickIgnored
	}
	if g.mode == ModeVsBot && g.pos.SideToMove == g.botColor {
		return ClickIgnored
	}

	if g.phase == PhaseSelected {
		if m := g.selMoves.Find(g.selected, sq); m != board.NoMove {
			return g.executeClick(m)
		}
		if sq == g.selected {
			g.clearSelection()
			g.version++
			return ClickDeselected
		}
	}

	piece := g.pos.PieceAt(sq)
	if piece != board.NoPiece && piece.Color() == g.pos.SideToMove {
		g.selected = sq
		g.selMoves = g.pos.LegalMoves(sq)
		g.highlights = g.selMoves.Targets()
		g.phase = PhaseSelected
		g.version++
		g.logger.Debug().Str("square", sq.String()).Int("targets", len(g.highlights)).Msg("selected")
		return ClickSelected
	}

	if g.phase == PhaseSelected {
		g.clearSelection()
		g.version++
		return ClickDeselected
	}
	return ClickIgnored
}

func (g *Game) executeClick(m board.Move) ClickResult {
	g.redo = nil
	if m.IsPromotion() {
		g.before = g.pos
		captured := g.pos.MovePieces(m)
		g.recordCapture(captured)
		g.lastMove = m
		g.pending = m
		g.clearSelection()
		g.phase = PhasePendingPromotion
		g.version++
		g.logger.Debug().Str("move", m.String()).Msg("promotion pending")
		return ClickPromotionPending
	}
	g.apply(m)
	return ClickMoved
}

// ResolvePromotion completes a pending promotion with piece type pt.
func (g *Game) ResolvePromotion(pt board.PieceType) error {
	if g.phase != PhasePendingPromotion {
		return ErrNoPromotionPending
	}
	if !pt.CanPromoteTo() {
		return fmt.Errorf("%w: %s", ErrInvalidPromotion, pt)
	}
	m := g.pending.WithPromotion(pt)
	if err := g.pos.PromotePawn(m.To(), pt); err != nil {
		return err
	}
	g.pending = board.NoMove
	g.lastMove = m
	g.commit(m, g.before, g.before.PieceAt(m.To()))
	return nil
}

// PlayMove executes a complete move, promotion included. It ignores whose
// turn the mode reserves for the bot.
func (g *Game) PlayMove(m board.Move) error {
	switch {
	case g.phase == PhasePendingPromotion:
		return ErrPromotionPending
	case g.phase.Over():
		return ErrGameOver
	case !g.pos.IsLegal(m):
		return fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	g.redo = nil
	g.apply(m)
	return nil
}

// PlayMoveString parses a coordinate move ("e2e4", "e7e8q") and plays it.
func (g *Game) PlayMoveString(s string) error {
	switch {
	case g.phase == PhasePendingPromotion:
		return ErrPromotionPending
	case g.phase.Over():
		return ErrGameOver
	}
	m, err := board.ParseMove(s, &g.pos)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIllegalMove, err)
	}
	return g.PlayMove(m)
}

// apply executes a legal move in full and commits it.
func (g *Game) apply(m board.Move) {
	before := g.pos
	captured := g.pos.MovePieces(m)
	if m.IsPromotion() {
		if err := g.pos.PromotePawn(m.To(), m.Promotion()); err != nil {
			panic(err)
		}
	}
	g.recordCapture(captured)
	g.lastMove = m
	g.commit(m, before, captured)
}

func (g *Game) recordCapture(p board.Piece) {
	if p == board.NoPiece {
		return
	}
	c := p.Color()
	g.captured[c] = append(g.captured[c], p)
}

// commit finishes a move whose pieces are already placed: notation, history,
// turn flip, snapshot and status.
func (g *Game) commit(m board.Move, before board.Position, captured board.Piece) {
	mover := before.SideToMove
	san := m.ToSAN(&before)

	g.pos.PassTurn()
	g.refreshStatus()

	ply := len(g.stack) - 1
	entry := HistoryEntry{
		MoveNumber:  ply/2 + 1,
		Notation:    san,
		Mover:       mover,
		IsCheck:     g.status.InCheck,
		IsCheckmate: g.status.IsCheckmate,
		Move:        m,
	}
	g.history = append(g.history, entry)
	g.stack = append(g.stack, g.takeSnapshot())
	g.clearSelection()
	g.version++

	g.logger.Info().
		Str("move", m.String()).
		Str("san", san).
		Str("mover", mover.String()).
		Uint64("version", g.version).
		Msg("move played")

	ev := MoveEvent{
		Entry:     entry,
		Captured:  captured,
		Castle:    m.IsCastling(),
		Promotion: m.IsPromotion(),
		Check:     g.status.InCheck,
		Checkmate: g.status.IsCheckmate,
		Stalemate: g.status.IsStalemate,
	}
	for _, fn := range g.observers {
		fn(ev)
	}
}

func (g *Game) refreshStatus() {
	g.status = g.pos.Status()
	switch {
	case g.status.IsCheckmate:
		g.phase = PhaseCheckmate
	case g.status.IsStalemate:
		g.phase = PhaseStalemate
	default:
		g.phase = PhaseIdle
	}
}

func (g *Game) clearSelection() {
	g.selected = board.NoSquare
	g.selMoves = nil
	g.highlights = nil
	if g.phase == PhaseSelected {
		g.phase = PhaseIdle
	}
}

// OnMove registers fn to run after every committed move.
func (g *Game) OnMove(fn func(MoveEvent)) {
	g.observers = append(g.observers, fn)
}

// Read model.

// Position returns a copy of the live position.
func (g *Game) Position() board.Position { return g.pos }

// Board returns a copy of the board.
func (g *Game) Board() board.Board { return g.pos.Board }

// PieceAt returns the piece on sq.
func (g *Game) PieceAt(sq board.Square) board.Piece { return g.pos.Board.PieceAt(sq) }

// Turn returns the side to move.
func (g *Game) Turn() board.Color { return g.pos.SideToMove }

// Captured returns the pieces of color c that have been captured, in order.
func (g *Game) Captured(c board.Color) []board.Piece {
	return append([]board.Piece(nil), g.captured[c]...)
}

// History returns a copy of the move history.
func (g *Game) History() []HistoryEntry {
	return append([]HistoryEntry(nil), g.history...)
}

// CastlingRights returns the remaining castling rights.
func (g *Game) CastlingRights() board.CastlingRights { return g.pos.CastlingRights }

// EnPassantTarget returns the en-passant square, or board.NoSquare.
func (g *Game) EnPassantTarget() board.Square { return g.pos.EnPassant }

// LastMove returns the most recent move, or board.NoMove.
func (g *Game) LastMove() board.Move { return g.lastMove }

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool { return g.status.InCheck }

// IsCheckmate reports whether the side to move is checkmated.
func (g *Game) IsCheckmate() bool { return g.status.IsCheckmate }

// IsStalemate reports whether the side to move is stalemated.
func (g *Game) IsStalemate() bool { return g.status.IsStalemate }

// PromotionPending reports whether the game waits for a promotion choice.
func (g *Game) PromotionPending() bool { return g.phase == PhasePendingPromotion }

// PromotionSquare returns the square of the pawn awaiting promotion.
func (g *Game) PromotionSquare() board.Square {
	if g.phase != PhasePendingPromotion {
		return board.NoSquare
	}
	return g.pending.To()
}

// Selected returns the selected square, or board.NoSquare.
func (g *Game) Selected() board.Square { return g.selected }

// Highlights returns the legal destinations of the selected piece.
func (g *Game) Highlights() []board.Square {
	return append([]board.Square(nil), g.highlights...)
}

// Phase returns the interaction phase.
func (g *Game) Phase() Phase { return g.phase }

// Version increases on every state change.
func (g *Game) Version() uint64 { return g.version }

// Result returns the outcome so far.
func (g *Game) Result() Result {
	switch g.phase {
	case PhaseCheckmate:
		if g.pos.SideToMove == board.White {
			return BlackWins
		}
		return WhiteWins
	case PhaseStalemate:
		return Draw
	}
	return Ongoing
}

// StatusText is a one-line description of the game state for display.
func (g *Game) StatusText() string {
	turn := g.pos.SideToMove
	switch g.phase {
	case PhaseCheckmate:
		return fmt.Sprintf("Checkmate - %s wins", turn.Other())
	case PhaseStalemate:
		return "Stalemate - draw"
	case PhasePendingPromotion:
		return fmt.Sprintf("%s to choose a promotion piece", turn)
	}
	if g.status.InCheck {
		return fmt.Sprintf("%s to move - check", turn)
	}
	return fmt.Sprintf("%s to move", turn)
}

// Result is the outcome of a game.
type Result int

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	}
	return "*"
}

// Winner returns the winning color, or board.NoColor.
func (r Result) Winner() board.Color {
	switch r {
	case WhiteWins:
		return board.White
	case BlackWins:
		return board.Black
	}
	return board.NoColor
}
