package game

import (
	"errors"
	"testing"

	"github.com/hailam/chesspad/internal/board"
)

func sq(s string) board.Square { return board.MustSquare(s) }

func click(t *testing.T, g *Game, squares ...string) ClickResult {
	t.Helper()
	var res ClickResult
	for _, s := range squares {
		res = g.ClickSquare(sq(s))
	}
	return res
}

func playAll(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.PlayMoveString(m); err != nil {
			t.Fatalf("PlayMoveString(%s): %v", m, err)
		}
	}
}

func squareSet(sqs []board.Square) map[string]bool {
	out := make(map[string]bool, len(sqs))
	for _, s := range sqs {
		out[s.String()] = true
	}
	return out
}

func TestLegalMovesInitial(t *testing.T) {
	g := New()
	tests := []struct {
		from string
		want []string
	}{
		{"e2", []string{"e3", "e4"}},
		{"b1", []string{"a3", "c3"}},
		{"e1", nil},
	}
	for _, tc := range tests {
		got := squareSet(g.LegalMoves(sq(tc.from)))
		if len(got) != len(tc.want) {
			t.Errorf("LegalMoves(%s) = %v, want %v", tc.from, got, tc.want)
			continue
		}
		for _, w := range tc.want {
			if !got[w] {
				t.Errorf("LegalMoves(%s) missing %s", tc.from, w)
			}
		}
	}
}

func TestClickStateMachine(t *testing.T) {
	tests := []struct {
		name   string
		clicks []string
		result ClickResult
		phase  Phase
		turn   board.Color
	}{
		{"select own piece", []string{"e2"}, ClickSelected, PhaseSelected, board.White},
		{"opponent piece ignored", []string{"e7"}, ClickIgnored, PhaseIdle, board.White},
		{"empty square ignored", []string{"e4"}, ClickIgnored, PhaseIdle, board.White},
		{"reselect same square", []string{"e2", "e2"}, ClickDeselected, PhaseIdle, board.White},
		{"invalid target", []string{"e2", "e5"}, ClickDeselected, PhaseIdle, board.White},
		{"switch selection", []string{"e2", "d2"}, ClickSelected, PhaseSelected, board.White},
		{"move", []string{"e2", "e4"}, ClickMoved, PhaseIdle, board.Black},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			if got := click(t, g, tc.clicks...); got != tc.result {
				t.Errorf("result = %s, want %s", got, tc.result)
			}
			if g.Phase() != tc.phase {
				t.Errorf("phase = %s, want %s", g.Phase(), tc.phase)
			}
			if g.Turn() != tc.turn {
				t.Errorf("turn = %s, want %s", g.Turn(), tc.turn)
			}
		})
	}
}

func TestSelectionHighlights(t *testing.T) {
	g := New()
	click(t, g, "g1")
	if g.Selected() != board.G1 {
		t.Fatalf("Selected = %s", g.Selected())
	}
	got := squareSet(g.Highlights())
	if len(got) != 2 || !got["f3"] || !got["h3"] {
		t.Errorf("Highlights = %v, want f3 h3", got)
	}
	click(t, g, "f3")
	if g.Selected() != board.NoSquare || len(g.Highlights()) != 0 {
		t.Error("selection not cleared after move")
	}
	if g.LastMove() != board.NewMove(board.G1, board.F3) {
		t.Errorf("LastMove = %s", g.LastMove())
	}
}

func TestFoolsMate(t *testing.T) {
	g := New()
	var events []MoveEvent
	g.OnMove(func(e MoveEvent) { events = append(events, e) })

	click(t, g, "f2", "f3", "e7", "e5", "g2", "g4", "d8", "h4")

	if !g.IsCheckmate() || !g.InCheck() || g.IsStalemate() {
		t.Fatalf("status check=%v mate=%v stalemate=%v", g.InCheck(), g.IsCheckmate(), g.IsStalemate())
	}
	if g.Phase() != PhaseCheckmate || g.Result() != BlackWins {
		t.Errorf("phase=%s result=%s", g.Phase(), g.Result())
	}

	pos := g.Position()
	if n := len(pos.AllLegalMoves()); n != 0 {
		t.Errorf("%d legal moves after mate", n)
	}
	if res := g.ClickSquare(board.E2); res != ClickIgnored {
		t.Errorf("click after mate = %s", res)
	}
	if err := g.PlayMoveString("e2e4"); !errors.Is(err, ErrGameOver) {
		t.Errorf("PlayMoveString after mate err = %v", err)
	}

	h := g.History()
	if len(h) != 4 || h[3].Notation != "Qh4#" || !h[3].IsCheckmate || h[3].String() != "2... Qh4#" {
		t.Errorf("history = %+v", h)
	}
	if len(events) != 4 || !events[3].Checkmate {
		t.Errorf("events = %+v", events)
	}
}

func TestStalemateEndsGame(t *testing.T) {
	g := New()
	// Sam Loyd's ten-move stalemate.
	playAll(t, g,
		"e2e3", "a7a5", "d1h5", "a8a6", "h5a5", "h7h5", "h2h4", "a6h6",
		"a5c7", "f7f6", "c7d7", "e8f7", "d7b7", "d8d3", "b7b8", "d3h7",
		"b8c8", "f7g6", "c8e6")
	if !g.IsStalemate() || g.IsCheckmate() || g.Phase() != PhaseStalemate {
		t.Fatalf("stalemate=%v mate=%v phase=%s", g.IsStalemate(), g.IsCheckmate(), g.Phase())
	}
	if g.Result() != Draw {
		t.Errorf("Result = %s", g.Result())
	}
}

func TestCapturedPieces(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "d7d5", "e4d5", "d8d5")
	if got := g.Captured(board.Black); len(got) != 1 || got[0] != board.BlackPawn {
		t.Errorf("Captured(Black) = %v", got)
	}
	if got := g.Captured(board.White); len(got) != 1 || got[0] != board.WhitePawn {
		t.Errorf("Captured(White) = %v", got)
	}
}

func TestEnPassantThroughGame(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "a7a6", "e4e5", "d7d5")
	if g.EnPassantTarget() != board.D6 {
		t.Fatalf("EnPassantTarget = %s", g.EnPassantTarget())
	}
	if res := click(t, g, "e5", "d6"); res != ClickMoved {
		t.Fatalf("en passant click = %s", res)
	}
	b := g.Board()
	if b.PieceAt(board.D5) != board.NoPiece || b.PieceAt(board.D6) != board.WhitePawn {
		t.Error("passed pawn not removed")
	}
	h := g.History()
	if h[len(h)-1].Notation != "exd6" {
		t.Errorf("notation = %s", h[len(h)-1].Notation)
	}
	if got := g.Captured(board.Black); len(got) != 1 {
		t.Errorf("Captured(Black) = %v", got)
	}
}

func TestCastlingThroughGame(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6")
	if res := click(t, g, "e1", "g1"); res != ClickMoved {
		t.Fatalf("castle click = %s", res)
	}
	b := g.Board()
	if b.PieceAt(board.G1) != board.WhiteKing || b.PieceAt(board.F1) != board.WhiteRook {
		t.Fatal("castling did not relocate king and rook")
	}
	if g.CastlingRights() != board.BlackKingSideCastle|board.BlackQueenSideCastle {
		t.Errorf("rights = %s", g.CastlingRights())
	}
	if h := g.History(); h[len(h)-1].Notation != "O-O" {
		t.Errorf("notation = %s", h[len(h)-1].Notation)
	}
}

func promotionGame(t *testing.T) *Game {
	t.Helper()
	g := New()
	playAll(t, g, "h2h4", "g7g5", "h4g5", "g8f6", "g5g6", "f6e4", "g6g7", "e4d6")
	return g
}

func TestPromotionSuspends(t *testing.T) {
	g := promotionGame(t)
	if res := click(t, g, "g7", "h8"); res != ClickPromotionPending {
		t.Fatalf("click = %s, want promotion pending", res)
	}
	if !g.PromotionPending() || g.Turn() != board.White || g.PromotionSquare() != board.H8 {
		t.Fatalf("pending=%v turn=%s square=%s", g.PromotionPending(), g.Turn(), g.PromotionSquare())
	}
	if got := g.Captured(board.Black); len(got) != 1 || got[0] != board.BlackRook {
		t.Errorf("Captured(Black) = %v", got)
	}
	if res := g.ClickSquare(board.A2); res != ClickIgnored {
		t.Errorf("click while pending = %s", res)
	}
	if err := g.PlayMoveString("a2a3"); !errors.Is(err, ErrPromotionPending) {
		t.Errorf("PlayMoveString while pending err = %v", err)
	}
	if err := g.ResolvePromotion(board.King); !errors.Is(err, ErrInvalidPromotion) {
		t.Errorf("ResolvePromotion(King) err = %v", err)
	}

	if err := g.ResolvePromotion(board.Knight); err != nil {
		t.Fatal(err)
	}
	if g.PieceAt(board.H8) != board.WhiteKnight {
		t.Errorf("h8 = %s, want N", g.PieceAt(board.H8))
	}
	if g.Turn() != board.Black || g.PromotionPending() {
		t.Errorf("turn=%s pending=%v", g.Turn(), g.PromotionPending())
	}
	if h := g.History(); h[len(h)-1].Notation != "gxh8=N" {
		t.Errorf("notation = %s", h[len(h)-1].Notation)
	}
	if err := g.ResolvePromotion(board.Queen); !errors.Is(err, ErrNoPromotionPending) {
		t.Errorf("second ResolvePromotion err = %v", err)
	}
}

func TestPlayMoveErrors(t *testing.T) {
	g := New()
	if err := g.PlayMove(board.NewMove(board.E2, board.E5)); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("PlayMove(e2e5) err = %v", err)
	}
	if err := g.PlayMoveString("zz"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("PlayMoveString(zz) err = %v", err)
	}
	if g.Version() == 0 {
		t.Error("Version not initialised")
	}
}

func TestVsBotIgnoresClicksOnBotTurn(t *testing.T) {
	g := New(WithMode(ModeVsBot, board.White))
	if !g.BotToMove() {
		t.Fatal("bot should move first as white")
	}
	if res := g.ClickSquare(board.E2); res != ClickIgnored {
		t.Errorf("click on bot turn = %s", res)
	}
	playAll(t, g, "e2e4")
	if g.BotToMove() {
		t.Error("bot to move on human turn")
	}
	if res := g.ClickSquare(board.E7); res != ClickSelected {
		t.Errorf("human click = %s", res)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4")
	v := g.Snapshot()
	playAll(t, g, "e7e5")
	if v.Turn != board.Black || len(v.History) != 1 || v.Board.PieceAt(board.E5) != board.NoPiece {
		t.Errorf("snapshot changed with the game: %+v", v)
	}
	if v.StatusText != "Black to move" {
		t.Errorf("StatusText = %q", v.StatusText)
	}
}

func TestSnapshotCheck(t *testing.T) {
	g := New()
	playAll(t, g, "e2e4", "f7f6", "d1h5")
	v := g.Snapshot()
	if v.CheckedKing != board.E8 || len(v.Checkers) != 1 || v.Checkers[0] != board.H5 {
		t.Errorf("CheckedKing=%s Checkers=%v", v.CheckedKing, v.Checkers)
	}
}
