package game

import (
	"fmt"

	"github.com/hailam/chesspad/internal/board"
)

// HistoryEntry records one committed move.
type HistoryEntry struct {
	MoveNumber  int
	Notation    string
	Mover       board.Color
	IsCheck     bool
	IsCheckmate bool
	Move        board.Move
}

// String renders the entry as "1. e4" or "1... e5".
func (h HistoryEntry) String() string {
	return board.FormatMoveNumber(h.MoveNumber, h.Mover, h.Notation)
}

// snapshot is everything Undo restores.
type snapshot struct {
	pos      board.Position
	lastMove board.Move
	captured [2][]board.Piece
}

func (g *Game) takeSnapshot() snapshot {
	s := snapshot{pos: g.pos, lastMove: g.lastMove}
	for c := range g.captured {
		s.captured[c] = append([]board.Piece(nil), g.captured[c]...)
	}
	return s
}

func (g *Game) restore(s snapshot) {
	g.pos = s.pos
	g.lastMove = s.lastMove
	for c := range s.captured {
		g.captured[c] = append([]board.Piece(nil), s.captured[c]...)
	}
	g.pending = board.NoMove
	g.clearSelection()
	g.refreshStatus()
	g.version++
}

// Undo takes back the last move. While a promotion is pending it cancels the
// half-made move instead. It returns false when there was nothing to undo.
func (g *Game) Undo() bool {
	if g.phase == PhasePendingPromotion {
		g.restore(g.stack[len(g.stack)-1])
		g.logger.Debug().Msg("promotion cancelled")
		return true
	}
	if len(g.stack) <= 1 {
		return false
	}

	last := g.history[len(g.history)-1]
	g.stack = g.stack[:len(g.stack)-1]
	g.history = g.history[:len(g.history)-1]
	g.redo = append(g.redo, last.Move)
	g.restore(g.stack[len(g.stack)-1])

	g.logger.Info().Str("move", last.Move.String()).Str("san", last.Notation).Msg("move undone")
	return true
}

// Redo replays the most recently undone move. It returns false when the redo
// stack is empty or the game cannot accept a move.
func (g *Game) Redo() bool {
	if len(g.redo) == 0 || g.phase == PhasePendingPromotion || g.phase.Over() {
		return false
	}
	m := g.redo[len(g.redo)-1]
	if !g.pos.IsLegal(m) {
		g.redo = nil
		return false
	}
	g.redo = g.redo[:len(g.redo)-1]
	g.apply(m)
	g.logger.Info().Str("move", m.String()).Msg("move redone")
	return true
}

// CanUndo reports whether Undo would change anything.
func (g *Game) CanUndo() bool {
	return g.phase == PhasePendingPromotion || len(g.stack) > 1
}

// CanRedo reports whether Redo would replay a move.
func (g *Game) CanRedo() bool {
	return len(g.redo) > 0 && g.phase != PhasePendingPromotion && !g.phase.Over()
}

// TakeBack undoes one move, and in ModeVsBot keeps undoing until it is the
// human's turn again. It returns the number of moves undone.
func (g *Game) TakeBack() int {
	n := 0
	pending := g.phase == PhasePendingPromotion
	if !g.Undo() {
		return 0
	}
	if !pending {
		n++
	}
	for g.mode == ModeVsBot && g.pos.SideToMove == g.botColor && g.Undo() {
		n++
	}
	return n
}

// Moves returns the coordinate form of every committed move.
func (g *Game) Moves() []string {
	out := make([]string, len(g.history))
	for i, h := range g.history {
		out[i] = h.Move.String()
	}
	return out
}

// Replay starts a new game and plays the given coordinate moves.
func (g *Game) Replay(moves []string) error {
	g.reset()
	for i, s := range moves {
		if err := g.PlayMoveString(s); err != nil {
			return fmt.Errorf("replay move %d (%s): %w", i+1, s, err)
		}
	}
	return nil
}
