package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keySession     = "session"
	prefixGame     = "game/"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// GameMode represents the game mode
type GameMode int

const (
	ModeTwoPlayer GameMode = iota
	ModeVsBot
)

// PlayerColor is a side of the board.
type PlayerColor int

const (
	ColorWhite PlayerColor = iota
	ColorBlack
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string      `json:"username"`
	GameMode     GameMode    `json:"game_mode"`
	BotColor     PlayerColor `json:"bot_color"`
	BotDelayMS   int         `json:"bot_delay_ms"`
	SoundEnabled bool        `json:"sound_enabled"`
	ClockMinutes int         `json:"clock_minutes"`
	LastPlayed   time.Time   `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		GameMode:     ModeVsBot,
		BotColor:     ColorBlack,
		BotDelayMS:   500,
		SoundEnabled: true,
		ClockMinutes: 10,
		LastPlayed:   time.Now(),
	}
}

// BotDelay returns the configured bot delay.
func (p *UserPreferences) BotDelay() time.Duration {
	return time.Duration(p.BotDelayMS) * time.Millisecond
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int           `json:"games_played"`
	WhiteWins      int           `json:"white_wins"`
	BlackWins      int           `json:"black_wins"`
	Stalemates     int           `json:"stalemates"`
	WinsVsBot      int           `json:"wins_vs_bot"`
	LossesVsBot    int           `json:"losses_vs_bot"`
	TotalPlayTime  time.Duration `json:"total_play_time"`
	LongestWinStrk int           `json:"longest_win_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// Outcome is how a finished game ended.
type Outcome int

const (
	OutcomeWhiteWins Outcome = iota
	OutcomeBlackWins
	OutcomeDraw
)

// GameResult represents the result of a completed game
type GameResult struct {
	Outcome  Outcome
	Mode     GameMode
	BotColor PlayerColor
	Duration time.Duration
}

// GameRecord is a finished game kept in the archive.
type GameRecord struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Result     string    `json:"result"`
	Moves      []string  `json:"moves"`
	Notation   []string  `json:"notation"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Session is the game in progress, resumed on the next launch.
type Session struct {
	Mode     GameMode    `json:"mode"`
	BotColor PlayerColor `json:"bot_color"`
	Moves    []string    `json:"moves"`
	Started  time.Time   `json:"started"`
	SavedAt  time.Time   `json:"saved_at"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewStorage opens the database in the default data directory.
func NewStorage(logger zerolog.Logger) (*Storage, error) {
	return Open("", logger)
}

// Open opens (or creates) the database under dataDir. An empty dataDir
// selects the platform default.
func Open(dataDir string, logger zerolog.Logger) (*Storage, error) {
	dbDir, err := GetDatabaseDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("database dir: %w", err)
	}

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = badgerLogger{logger.With().Str("component", "badger").Logger()}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dbDir, err)
	}

	logger.Debug().Str("dir", dbDir).Msg("storage opened")
	return &Storage{db: db, logger: logger}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes key into v. It returns ErrNotFound when key is absent.
func (s *Storage) getJSON(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	if err := s.getJSON(keyPreferences, prefs); err != nil && !errors.Is(err, ErrNotFound) {
		return DefaultPreferences(), err
	}
	return prefs, nil
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.getJSON(keyStats, stats); err != nil && !errors.Is(err, ErrNotFound) {
		return NewGameStats(), err
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.Record(result)
	return s.SaveStats(stats)
}

// Record folds one finished game into the statistics. Streaks count wins
// against the bot.
func (st *GameStats) Record(result GameResult) {
	st.GamesPlayed++
	st.TotalPlayTime += result.Duration

	switch result.Outcome {
	case OutcomeWhiteWins:
		st.WhiteWins++
	case OutcomeBlackWins:
		st.BlackWins++
	case OutcomeDraw:
		st.Stalemates++
	}

	if result.Mode != ModeVsBot {
		return
	}
	humanWon := (result.Outcome == OutcomeWhiteWins && result.BotColor == ColorBlack) ||
		(result.Outcome == OutcomeBlackWins && result.BotColor == ColorWhite)
	switch {
	case humanWon:
		st.WinsVsBot++
		st.CurrentStreak++
		if st.CurrentStreak > st.LongestWinStrk {
			st.LongestWinStrk = st.CurrentStreak
		}
	case result.Outcome == OutcomeDraw:
		st.CurrentStreak = 0
	default:
		st.LossesVsBot++
		st.CurrentStreak = 0
	}
}

// GetWinRate returns the win rate against the bot as a percentage (0-100)
func (st *GameStats) GetWinRate() float64 {
	played := st.WinsVsBot + st.LossesVsBot
	if played == 0 {
		return 0
	}
	return float64(st.WinsVsBot) / float64(played) * 100
}

// ArchiveGame stores a finished game and returns its ID. A record without an
// ID gets a fresh one.
func (s *Storage) ArchiveGame(rec *GameRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now()
	}
	if err := s.putJSON(prefixGame+rec.ID, rec); err != nil {
		return "", fmt.Errorf("archive game %s: %w", rec.ID, err)
	}
	s.logger.Info().Str("id", rec.ID).Str("result", rec.Result).Int("moves", len(rec.Moves)).Msg("game archived")
	return rec.ID, nil
}

// LoadGame returns the archived game with the given ID.
func (s *Storage) LoadGame(id string) (*GameRecord, error) {
	rec := &GameRecord{}
	if err := s.getJSON(prefixGame+id, rec); err != nil {
		return nil, fmt.Errorf("game %s: %w", id, err)
	}
	return rec, nil
}

// ListGames returns every archived game, most recently finished first.
func (s *Storage) ListGames() ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(games, func(i, j int) bool {
		return games[i].FinishedAt.After(games[j].FinishedAt)
	})
	return games, nil
}

// DeleteGame removes an archived game.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(prefixGame + id))
	})
}

// SaveSession stores the game in progress.
func (s *Storage) SaveSession(sess *Session) error {
	sess.SavedAt = time.Now()
	return s.putJSON(keySession, sess)
}

// LoadSession returns the saved game in progress, or nil if there is none.
func (s *Storage) LoadSession() (*Session, error) {
	sess := &Session{}
	err := s.getJSON(keySession, sess)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// ClearSession forgets the game in progress.
func (s *Storage) ClearSession() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keySession))
	})
}

// badgerLogger routes badger's log output to zerolog. Badger is chatty at
// info level, so info is demoted to debug.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(format, args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(format, args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(format, args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(format, args...)
}
