package app

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
	"github.com/hailam/chesspad/internal/storage"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg := DefaultConfig()
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestFlagDefaults(t *testing.T) {
	cfg := parse(t)
	if cfg.LogLevel != "info" || cfg.Mode != "" || cfg.BotDelay >= 0 || cfg.NoStore {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Str("square", "e4").Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") || !strings.Contains(out, "e4") {
		t.Errorf("log output = %q", out)
	}

	if _, err := NewLogger("loud", &buf); err == nil {
		t.Error("bad level accepted")
	}
}

func TestSetupWithoutStore(t *testing.T) {
	cfg := parse(t, "-no-store", "-mode", "two", "-bot-delay", "0", "-clock", "5m")
	s, err := Setup(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Store != nil {
		t.Error("store opened with -no-store")
	}
	if s.Game.Mode() != game.ModeTwoPlayer {
		t.Errorf("mode = %s", s.Game.Mode())
	}
	if s.Prefs.BotDelayMS != 0 || s.Prefs.ClockMinutes != 5 {
		t.Errorf("prefs = %+v", s.Prefs)
	}
	if got := s.Clock.Format(board.White); got != "05:00" {
		t.Errorf("clock = %s", got)
	}
}

func TestSetupRejectsBadFlags(t *testing.T) {
	for _, args := range [][]string{
		{"-no-store", "-mode", "solo"},
		{"-no-store", "-bot-color", "green"},
	} {
		if _, err := Setup(parse(t, args...), zerolog.Nop()); err == nil {
			t.Errorf("Setup(%v) succeeded", args)
		}
	}
}

func TestSetupLayersFlagsOverPreferences(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	prefs := storage.DefaultPreferences()
	prefs.GameMode = storage.ModeVsBot
	prefs.BotColor = storage.ColorWhite
	prefs.BotDelayMS = 250
	if err := store.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}
	store.Close()

	s, err := Setup(parse(t, "-data-dir", dir, "-bot-color", "black"), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Game.Mode() != game.ModeVsBot {
		t.Errorf("mode = %s, want saved bot mode", s.Game.Mode())
	}
	if s.Game.BotColor() != board.Black {
		t.Errorf("bot color = %s, want flag value", s.Game.BotColor())
	}
	if s.Prefs.BotDelayMS != 250 {
		t.Errorf("bot delay = %d, want saved 250", s.Prefs.BotDelayMS)
	}
}

func TestSetupResumesSession(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	err = store.SaveSession(&storage.Session{
		Mode:     storage.ModeTwoPlayer,
		BotColor: storage.ColorBlack,
		Moves:    []string{"e2e4", "e7e5"},
		Started:  started,
	})
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	s, err := Setup(parse(t, "-data-dir", dir), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Resumed || len(s.Game.History()) != 2 || !s.Started.Equal(started) {
		t.Errorf("resumed=%v history=%d started=%v", s.Resumed, len(s.Game.History()), s.Started)
	}
	if s.Game.Mode() != game.ModeTwoPlayer {
		t.Errorf("mode = %s, want session mode", s.Game.Mode())
	}
	s.Close()

	s, err = Setup(parse(t, "-data-dir", dir, "-fresh"), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Resumed || len(s.Game.History()) != 0 {
		t.Error("-fresh resumed the saved game")
	}
	if sess, err := s.Store.LoadSession(); err != nil || sess != nil {
		t.Errorf("session after -fresh = %v, %v", sess, err)
	}
}

func TestSetupDropsBrokenSession(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSession(&storage.Session{Moves: []string{"e2e5"}}); err != nil {
		t.Fatal(err)
	}
	store.Close()

	s, err := Setup(parse(t, "-data-dir", dir), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Resumed || len(s.Game.History()) != 0 {
		t.Error("broken session resumed")
	}
}

func TestMainExitCodes(t *testing.T) {
	ran := false
	code := Main("test", DefaultConfig(), []string{"-no-store", "-log-level", "disabled"}, func(s *Session) error {
		ran = s.Game != nil
		return nil
	})
	if code != 0 || !ran {
		t.Errorf("Main = %d, ran=%v", code, ran)
	}
	if code := Main("test", DefaultConfig(), []string{"-bogus"}, func(*Session) error { return nil }); code != 2 {
		t.Errorf("unknown flag exit code = %d", code)
	}

	logFile := filepath.Join(t.TempDir(), "chesspad.log")
	defaults := DefaultConfig()
	defaults.LogLevel = "debug"
	Main("test", defaults, []string{"-no-store", "-log-file", logFile}, func(s *Session) error {
		s.Logger.Info().Msg("to file")
		return nil
	})
	data, err := os.ReadFile(logFile)
	if err != nil || !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, %v", data, err)
	}
}
