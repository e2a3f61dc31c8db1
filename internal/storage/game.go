package storage

import (
	"time"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

// ModeOf converts a game mode to its stored form.
func ModeOf(m game.Mode) GameMode {
	if m == game.ModeVsBot {
		return ModeVsBot
	}
	return ModeTwoPlayer
}

// Mode converts a stored mode back.
func (m GameMode) Mode() game.Mode {
	if m == ModeVsBot {
		return game.ModeVsBot
	}
	return game.ModeTwoPlayer
}

// ColorOf converts a board color to its stored form.
func ColorOf(c board.Color) PlayerColor {
	if c == board.White {
		return ColorWhite
	}
	return ColorBlack
}

// Color converts a stored color back.
func (c PlayerColor) Color() board.Color {
	if c == ColorWhite {
		return board.White
	}
	return board.Black
}

// SessionOf captures g for SaveSession.
func SessionOf(g *game.Game, started time.Time) *Session {
	return &Session{
		Mode:     ModeOf(g.Mode()),
		BotColor: ColorOf(g.BotColor()),
		Moves:    g.Moves(),
		Started:  started,
	}
}

// Restore sets g's mode and replays the session's moves into it.
func (sess *Session) Restore(g *game.Game) error {
	g.SetMode(sess.Mode.Mode(), sess.BotColor.Color())
	return g.Replay(sess.Moves)
}

// ResultOf summarizes a finished game for RecordGame. ok is false while the
// game is still being played.
func ResultOf(g *game.Game, played time.Duration) (GameResult, bool) {
	res := GameResult{
		Mode:     ModeOf(g.Mode()),
		BotColor: ColorOf(g.BotColor()),
		Duration: played,
	}
	switch g.Result() {
	case game.WhiteWins:
		res.Outcome = OutcomeWhiteWins
	case game.BlackWins:
		res.Outcome = OutcomeBlackWins
	case game.Draw:
		res.Outcome = OutcomeDraw
	default:
		return res, false
	}
	return res, true
}

// RecordOf builds the archive record of g.
func RecordOf(g *game.Game, started time.Time) *GameRecord {
	history := g.History()
	notation := make([]string, len(history))
	for i, h := range history {
		notation[i] = h.Notation
	}
	return &GameRecord{
		Mode:      g.Mode().String(),
		Result:    g.Result().String(),
		Moves:     g.Moves(),
		Notation:  notation,
		StartedAt: started,
	}
}

// Finish records a finished game in the statistics and the archive and
// clears the saved session. It returns the archive ID.
func (s *Storage) Finish(g *game.Game, started time.Time) (string, error) {
	res, ok := ResultOf(g, time.Since(started))
	if !ok {
		return "", nil
	}
	if err := s.RecordGame(res); err != nil {
		return "", err
	}
	id, err := s.ArchiveGame(RecordOf(g, started))
	if err != nil {
		return "", err
	}
	return id, s.ClearSession()
}
