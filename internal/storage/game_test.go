package storage

import (
	"testing"
	"time"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

func playMoves(t *testing.T, g *game.Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if err := g.PlayMoveString(m); err != nil {
			t.Fatalf("%s: %v", m, err)
		}
	}
}

func TestSessionRestore(t *testing.T) {
	s := openTest(t)
	g := game.New(game.WithMode(game.ModeVsBot, board.White))
	playMoves(t, g, "e2e4", "e7e5", "g1f3")

	if err := s.SaveSession(SessionOf(g, time.Now())); err != nil {
		t.Fatal(err)
	}
	sess, err := s.LoadSession()
	if err != nil || sess == nil {
		t.Fatalf("LoadSession = %v, %v", sess, err)
	}

	r := game.New()
	if err := sess.Restore(r); err != nil {
		t.Fatal(err)
	}
	if r.Position() != g.Position() || r.Mode() != game.ModeVsBot || r.BotColor() != board.White {
		t.Errorf("restored mode=%s bot=%s", r.Mode(), r.BotColor())
	}
}

func TestFinish(t *testing.T) {
	s := openTest(t)
	started := time.Now().Add(-time.Minute)

	g := game.New(game.WithMode(game.ModeVsBot, board.White))
	if id, err := s.Finish(g, started); err != nil || id != "" {
		t.Fatalf("Finish on an unfinished game = %q, %v", id, err)
	}

	playMoves(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	if err := s.SaveSession(SessionOf(g, started)); err != nil {
		t.Fatal(err)
	}
	id, err := s.Finish(g, started)
	if err != nil || id == "" {
		t.Fatalf("Finish = %q, %v", id, err)
	}

	rec, err := s.LoadGame(id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Result != "0-1" || rec.Mode != "bot" || len(rec.Notation) != 4 || rec.Notation[3] != "Qh4#" {
		t.Errorf("record = %+v", rec)
	}

	stats, _ := s.LoadStats()
	if stats.GamesPlayed != 1 || stats.BlackWins != 1 || stats.WinsVsBot != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if sess, _ := s.LoadSession(); sess != nil {
		t.Error("session kept after the game finished")
	}
}
