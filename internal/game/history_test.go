package game

import (
	"testing"

	"github.com/hailam/chesspad/internal/board"
)

func TestUndoAtStartIsNoop(t *testing.T) {
	g := New()
	v := g.Version()
	if g.Undo() {
		t.Error("Undo at the initial position reported a change")
	}
	if g.Version() != v || g.Board() != board.StartBoard() {
		t.Error("Undo at the initial position changed state")
	}
	if g.CanUndo() || g.CanRedo() {
		t.Error("CanUndo/CanRedo true on a fresh game")
	}
}

func TestUndoRestoresEverything(t *testing.T) {
	moves := []string{"e2e4", "d7d5", "e4d5", "c7c5", "d5c6", "b8c6", "g1f3", "g8f6", "f1e2", "e7e6", "e1g1"}
	g := New()
	playAll(t, g, moves...)

	for i := len(moves); i > 0; i-- {
		if !g.Undo() {
			t.Fatalf("Undo %d failed", i)
		}
		want := New()
		playAll(t, want, moves[:i-1]...)
		if g.Position() != want.Position() {
			got, exp := g.Position(), want.Position()
			t.Fatalf("after undoing to ply %d:\n%s\nwant\n%s", i-1, got.String(), exp.String())
		}
		if g.LastMove() != want.LastMove() {
			t.Errorf("ply %d: LastMove = %s, want %s", i-1, g.LastMove(), want.LastMove())
		}
		if len(g.Captured(board.White)) != len(want.Captured(board.White)) ||
			len(g.Captured(board.Black)) != len(want.Captured(board.Black)) {
			t.Errorf("ply %d: captured lists differ", i-1)
		}
		if len(g.History()) != i-1 {
			t.Errorf("ply %d: history length %d", i-1, len(g.History()))
		}
	}
	if g.Board() != board.StartBoard() || g.Turn() != board.White || g.CastlingRights() != board.AllCastling {
		t.Error("N undos did not restore the initial position")
	}
	if g.Undo() {
		t.Error("extra Undo reported a change")
	}
}

func TestUndoAfterCheckmate(t *testing.T) {
	g := New()
	playAll(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	g.Undo()
	if g.Phase() != PhaseIdle || g.IsCheckmate() || g.Turn() != board.Black {
		t.Errorf("phase=%s mate=%v turn=%s", g.Phase(), g.IsCheckmate(), g.Turn())
	}
}

func TestUndoCancelsPendingPromotion(t *testing.T) {
	g := promotionGame(t)
	before := g.Position()
	historyLen := len(g.History())

	click(t, g, "g7", "h8")
	if !g.PromotionPending() {
		t.Fatal("promotion not pending")
	}
	if !g.Undo() {
		t.Fatal("Undo while pending reported no change")
	}
	if g.PromotionPending() || g.Position() != before || len(g.History()) != historyLen {
		t.Error("pending promotion not cancelled cleanly")
	}
	if len(g.Captured(board.Black)) != 0 {
		t.Errorf("captured rook kept: %v", g.Captured(board.Black))
	}
}

func TestRedo(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "e7e5", "g1f3")
	after := g.Position()

	g.Undo()
	g.Undo()
	if !g.CanRedo() {
		t.Fatal("CanRedo false after undo")
	}
	if !g.Redo() || !g.Redo() {
		t.Fatal("Redo failed")
	}
	if g.Position() != after {
		t.Error("redo did not restore the position")
	}
	if g.Redo() {
		t.Error("Redo past the newest move")
	}
	if h := g.History(); len(h) != 3 || h[2].Notation != "Nf3" {
		t.Errorf("history = %+v", h)
	}
}

func TestRedoClearedByNewMove(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "e7e5")
	g.Undo()
	playAll(t, g, "c7c5")
	if g.CanRedo() || g.Redo() {
		t.Error("redo survived a new move")
	}

	g.Undo()
	g.NewGame()
	if g.CanRedo() {
		t.Error("redo survived NewGame")
	}
}

func TestRedoPromotion(t *testing.T) {
	g := promotionGame(t)
	click(t, g, "g7", "h8")
	if err := g.ResolvePromotion(board.Rook); err != nil {
		t.Fatal(err)
	}
	g.Undo()
	g.Redo()
	if g.PieceAt(board.H8) != board.WhiteRook {
		t.Errorf("h8 = %s after redo, want R", g.PieceAt(board.H8))
	}
}

func TestTakeBackVsBot(t *testing.T) {
	g := New(WithMode(ModeVsBot, board.Black))
	playAll(t, g, "e2e4", "e7e5", "g1f3", "b8c6")
	if n := g.TakeBack(); n != 2 {
		t.Errorf("TakeBack undid %d moves, want 2", n)
	}
	if g.Turn() != board.White || len(g.History()) != 2 {
		t.Errorf("turn=%s history=%d", g.Turn(), len(g.History()))
	}

	two := New()
	playAll(t, two, "e2e4")
	if n := two.TakeBack(); n != 1 {
		t.Errorf("two-player TakeBack undid %d moves", n)
	}
}

func TestReplay(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "e7e5", "g1f3")
	moves := g.Moves()

	r := New()
	if err := r.Replay(moves); err != nil {
		t.Fatal(err)
	}
	if r.Position() != g.Position() || len(r.History()) != 3 {
		t.Error("replay diverged")
	}
	if err := r.Replay([]string{"e2e4", "e2e4"}); err == nil {
		t.Error("replaying an illegal move succeeded")
	}
}
