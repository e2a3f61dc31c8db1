// Package app wires a game, its bot, clock and storage from command-line
// flags layered over the saved preferences. Every entrypoint starts here.
package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/engine"
	"github.com/hailam/chesspad/internal/game"
	"github.com/hailam/chesspad/internal/storage"
)

// Config holds the flags shared by the entrypoints. Empty strings and
// negative durations defer to the saved preferences.
type Config struct {
	DataDir  string
	LogLevel string
	LogFile  string
	Mode     string
	BotColor string
	BotDelay time.Duration
	Clock    time.Duration
	NoStore  bool
	Fresh    bool
	Seed     int64
}

// DefaultConfig returns the flag defaults.
func DefaultConfig() Config {
	return Config{LogLevel: "info", BotDelay: -1, Clock: -1}
}

// RegisterFlags defines the shared flags on fs, defaulting to c's values.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.DataDir, "data-dir", c.DataDir, "data directory (default: platform data dir)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: trace, debug, info, warn, error, disabled")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file instead of stderr")
	fs.StringVar(&c.Mode, "mode", c.Mode, "game mode: two or bot (default: saved preference)")
	fs.StringVar(&c.BotColor, "bot-color", c.BotColor, "color the bot plays: white or black (default: saved preference)")
	fs.DurationVar(&c.BotDelay, "bot-delay", c.BotDelay, "pause before each bot move (default: saved preference)")
	fs.DurationVar(&c.Clock, "clock", c.Clock, "time per side shown on the clocks (default: saved preference)")
	fs.BoolVar(&c.NoStore, "no-store", c.NoStore, "do not open the database")
	fs.BoolVar(&c.Fresh, "fresh", c.Fresh, "start a new game instead of resuming the saved one")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "bot random seed (0 picks one)")
}

// NewLogger builds a console logger on w at the named level.
func NewLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level %q: %w", level, err)
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: w != os.Stderr}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Session is everything a frontend needs to play.
type Session struct {
	Game    *game.Game
	Bot     *game.BotRunner
	Clock   *game.Clock
	Store   *storage.Storage // nil with -no-store
	Prefs   *storage.UserPreferences
	Started time.Time
	Resumed bool
	Logger  zerolog.Logger
}

// Setup opens storage, applies cfg over the saved preferences and resumes the
// saved game unless cfg.Fresh is set.
func Setup(cfg Config, logger zerolog.Logger) (*Session, error) {
	s := &Session{
		Prefs:   storage.DefaultPreferences(),
		Started: time.Now(),
		Logger:  logger,
	}

	if !cfg.NoStore {
		store, err := storage.Open(cfg.DataDir, logger)
		if err != nil {
			return nil, err
		}
		s.Store = store
		if s.Prefs, err = store.LoadPreferences(); err != nil {
			store.Close()
			return nil, fmt.Errorf("load preferences: %w", err)
		}
	}

	if err := applyFlags(cfg, s.Prefs); err != nil {
		s.Close()
		return nil, err
	}

	s.Game = game.New(
		game.WithLogger(logger.With().Str("component", "game").Logger()),
		game.WithMode(s.Prefs.GameMode.Mode(), s.Prefs.BotColor.Color()),
	)
	if err := s.resume(cfg); err != nil {
		s.Close()
		return nil, err
	}

	engineOpts := []engine.Option{engine.WithLogger(logger.With().Str("component", "engine").Logger())}
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, engine.WithSeed(cfg.Seed))
	}
	s.Bot = game.NewBotRunner(s.Game, engine.NewEngine(engineOpts...),
		game.WithDelay(s.Prefs.BotDelay()),
		game.WithRunnerLogger(logger.With().Str("component", "bot").Logger()),
	)
	s.Clock = game.NewClock(time.Duration(s.Prefs.ClockMinutes) * time.Minute)

	if s.Store != nil {
		s.Prefs.LastPlayed = time.Now()
		if err := s.Store.SavePreferences(s.Prefs); err != nil {
			logger.Warn().Err(err).Msg("save preferences")
		}
	}
	return s, nil
}

// applyFlags overrides prefs with the flags that were given.
func applyFlags(cfg Config, prefs *storage.UserPreferences) error {
	if cfg.Mode != "" {
		m, err := game.ParseMode(cfg.Mode)
		if err != nil {
			return err
		}
		prefs.GameMode = storage.ModeOf(m)
	}
	if cfg.BotColor != "" {
		c, ok := board.ParseColor(cfg.BotColor)
		if !ok {
			return fmt.Errorf("bot color %q: want white or black", cfg.BotColor)
		}
		prefs.BotColor = storage.ColorOf(c)
	}
	if cfg.BotDelay >= 0 {
		prefs.BotDelayMS = int(cfg.BotDelay / time.Millisecond)
	}
	if cfg.Clock > 0 {
		prefs.ClockMinutes = int(cfg.Clock / time.Minute)
	}
	if prefs.ClockMinutes <= 0 {
		prefs.ClockMinutes = int(game.DefaultClockTime / time.Minute)
	}
	return nil
}

// resume replays the saved session. Mode flags still win over the session's
// mode.
func (s *Session) resume(cfg Config) error {
	if s.Store == nil {
		return nil
	}
	if cfg.Fresh {
		return s.Store.ClearSession()
	}
	sess, err := s.Store.LoadSession()
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil || len(sess.Moves) == 0 {
		return nil
	}
	if err := sess.Restore(s.Game); err != nil {
		// A session that no longer replays is dropped, not fatal.
		s.Logger.Warn().Err(err).Msg("discarding saved session")
		s.Game.NewGame()
		return s.Store.ClearSession()
	}
	if cfg.Mode != "" || cfg.BotColor != "" {
		s.Game.SetMode(s.Prefs.GameMode.Mode(), s.Prefs.BotColor.Color())
	}
	s.Started = sess.Started
	s.Resumed = true
	s.Logger.Info().Int("moves", len(sess.Moves)).Msg("resumed saved game")
	return nil
}

// Close closes storage.
func (s *Session) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// Main parses args over defaults, sets up a session and hands it to run. It
// returns the process exit code.
func Main(name string, defaults Config, args []string, run func(*Session) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg := defaults
	cfg.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	logger, err := NewLogger(cfg.LogLevel, logOut)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	s, err := Setup(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("setup")
		return 1
	}
	defer s.Close()

	if err := run(s); err != nil {
		logger.Error().Err(err).Msg(name)
		return 1
	}
	return 0
}
