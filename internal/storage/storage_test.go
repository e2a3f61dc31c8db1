package storage

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.GameMode != ModeVsBot || prefs.BotColor != ColorBlack {
			t.Errorf("Expected bot game with the bot on black")
		}
		if prefs.BotDelay() != 500*time.Millisecond {
			t.Errorf("Expected 500ms bot delay, got %s", prefs.BotDelay())
		}
		if !prefs.SoundEnabled {
			t.Errorf("Expected sound enabled by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetWinRate() != 0 {
			t.Errorf("Expected 0 win rate")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			WinsVsBot:   5,
			LossesVsBot: 5,
		}
		rate := stats.GetWinRate()
		if rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
	})
}

func TestStatsRecord(t *testing.T) {
	var st GameStats
	st.Record(GameResult{Outcome: OutcomeWhiteWins, Mode: ModeVsBot, BotColor: ColorBlack, Duration: time.Minute})
	st.Record(GameResult{Outcome: OutcomeWhiteWins, Mode: ModeVsBot, BotColor: ColorBlack, Duration: time.Minute})
	st.Record(GameResult{Outcome: OutcomeBlackWins, Mode: ModeVsBot, BotColor: ColorBlack})
	st.Record(GameResult{Outcome: OutcomeDraw, Mode: ModeTwoPlayer})

	if st.GamesPlayed != 4 || st.WhiteWins != 2 || st.BlackWins != 1 || st.Stalemates != 1 {
		t.Errorf("counts = %+v", st)
	}
	if st.WinsVsBot != 2 || st.LossesVsBot != 1 {
		t.Errorf("bot record = %d-%d", st.WinsVsBot, st.LossesVsBot)
	}
	if st.LongestWinStrk != 2 || st.CurrentStreak != 0 {
		t.Errorf("streaks = %d/%d", st.LongestWinStrk, st.CurrentStreak)
	}
	if st.TotalPlayTime != 2*time.Minute {
		t.Errorf("play time = %s", st.TotalPlayTime)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if prefs.Username != "Player" {
		t.Errorf("fresh database did not return defaults: %+v", prefs)
	}

	prefs.Username = "ada"
	prefs.GameMode = ModeTwoPlayer
	prefs.SoundEnabled = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}
	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "ada" || got.GameMode != ModeTwoPlayer || got.SoundEnabled {
		t.Errorf("loaded %+v", got)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)
	for i := 0; i < 3; i++ {
		if err := s.RecordGame(GameResult{Outcome: OutcomeBlackWins, Mode: ModeVsBot, BotColor: ColorWhite}); err != nil {
			t.Fatal(err)
		}
	}
	stats, err := s.LoadStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.GamesPlayed != 3 || stats.WinsVsBot != 3 || stats.CurrentStreak != 3 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestArchive(t *testing.T) {
	s := openTest(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := &GameRecord{Mode: "bot", Result: "0-1", Moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"}, FinishedAt: base}
	id, err := s.ArchiveGame(first)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" || first.ID != id {
		t.Fatalf("ArchiveGame id = %q, record id = %q", id, first.ID)
	}
	second := &GameRecord{Mode: "two", Result: "1/2-1/2", FinishedAt: base.Add(time.Hour)}
	if _, err := s.ArchiveGame(second); err != nil {
		t.Fatal(err)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].ID != second.ID || games[1].ID != first.ID {
		t.Fatalf("ListGames = %+v", games)
	}

	got, err := s.LoadGame(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Moves) != 4 || got.Result != "0-1" {
		t.Errorf("LoadGame = %+v", got)
	}

	if err := s.DeleteGame(id); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadGame(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGame after delete: %v", err)
	}
}

func TestSession(t *testing.T) {
	s := openTest(t)

	sess, err := s.LoadSession()
	if err != nil || sess != nil {
		t.Fatalf("LoadSession on empty db = %+v, %v", sess, err)
	}

	want := &Session{Mode: ModeVsBot, BotColor: ColorWhite, Moves: []string{"e2e4", "e7e5"}}
	if err := s.SaveSession(want); err != nil {
		t.Fatal(err)
	}
	sess, err = s.LoadSession()
	if err != nil || sess == nil {
		t.Fatalf("LoadSession = %+v, %v", sess, err)
	}
	if sess.Mode != ModeVsBot || sess.BotColor != ColorWhite || len(sess.Moves) != 2 || sess.Moves[1] != "e7e5" {
		t.Errorf("session = %+v", sess)
	}

	if err := s.ClearSession(); err != nil {
		t.Fatal(err)
	}
	if sess, _ := s.LoadSession(); sess != nil {
		t.Error("session survived ClearSession")
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	// Test that GetDataDir returns a valid path
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	dbDir, err := GetDatabaseDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("Database directory was not created: %v", err)
	}
}
