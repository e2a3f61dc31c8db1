package game

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/engine"
)

// DefaultBotDelay is the pause before the bot replies.
const DefaultBotDelay = 500 * time.Millisecond

// Searcher picks a move for a position.
type Searcher interface {
	Search(ctx context.Context, pos board.Position) (board.Move, error)
}

type botResult struct {
	move    board.Move
	version uint64
	err     error
}

// BotRunner schedules the bot's moves for a Game. The search runs on its own
// goroutine over a copy of the position; results are applied only from the
// goroutine that owns the Game, through Poll or Wait.
type BotRunner struct {
	game     *Game
	searcher Searcher
	delay    time.Duration
	logger   zerolog.Logger

	inFlight bool
	cancel   context.CancelFunc
	results  chan botResult
}

// RunnerOption configures a BotRunner.
type RunnerOption func(*BotRunner)

// WithDelay sets the pause before each bot move.
func WithDelay(d time.Duration) RunnerOption {
	return func(r *BotRunner) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithRunnerLogger sets the runner's logger.
func WithRunnerLogger(l zerolog.Logger) RunnerOption {
	return func(r *BotRunner) { r.logger = l }
}

// NewBotRunner creates a runner playing for g with s.
func NewBotRunner(g *Game, s Searcher, opts ...RunnerOption) *BotRunner {
	if s == nil {
		s = engine.NewEngine()
	}
	r := &BotRunner{
		game:     g,
		searcher: s,
		delay:    DefaultBotDelay,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Thinking reports whether a bot move is in flight.
func (r *BotRunner) Thinking() bool { return r.inFlight }

// Schedule starts a bot move if the bot is to move and none is in flight.
func (r *BotRunner) Schedule() bool {
	if r.inFlight || !r.game.BotToMove() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	results := make(chan botResult, 1)
	pos := r.game.Position()
	version := r.game.Version()
	delay := r.delay
	searcher := r.searcher

	r.inFlight = true
	r.cancel = cancel
	r.results = results

	r.logger.Debug().Uint64("version", version).Dur("delay", delay).Msg("bot scheduled")

	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			results <- botResult{version: version, err: ctx.Err()}
			return
		case <-timer.C:
		}
		m, err := searcher.Search(ctx, pos)
		results <- botResult{move: m, version: version, err: err}
	}()
	return true
}

// Cancel abandons the move in flight, if any.
func (r *BotRunner) Cancel() {
	if !r.inFlight {
		return
	}
	r.cancel()
	r.inFlight = false
	r.cancel = nil
	r.results = nil
	r.logger.Debug().Msg("bot cancelled")
}

// Poll applies a finished bot move without blocking and schedules the next one
// when the bot is to move. It reports whether a move was played.
func (r *BotRunner) Poll() (bool, error) {
	if !r.inFlight {
		r.Schedule()
		return false, nil
	}
	select {
	case res := <-r.results:
		return r.handle(res)
	default:
		return false, nil
	}
}

// Wait blocks until the bot has played or ctx ends. It returns false with a
// nil error when the bot is not to move.
func (r *BotRunner) Wait(ctx context.Context) (bool, error) {
	for {
		if !r.inFlight && !r.Schedule() {
			return false, nil
		}
		select {
		case <-ctx.Done():
			r.Cancel()
			return false, ctx.Err()
		case res := <-r.results:
			played, err := r.handle(res)
			if played || err != nil {
				return played, err
			}
		}
	}
}

func (r *BotRunner) handle(res botResult) (bool, error) {
	r.cancel()
	r.inFlight = false
	r.cancel = nil
	r.results = nil

	switch {
	case errors.Is(res.err, engine.ErrNoLegalMoves):
		return false, nil
	case errors.Is(res.err, context.Canceled):
		return false, nil
	case res.err != nil:
		return false, res.err
	}

	if res.version != r.game.Version() {
		r.logger.Debug().
			Uint64("version", res.version).
			Uint64("current", r.game.Version()).
			Msg("stale bot move discarded")
		r.Schedule()
		return false, nil
	}

	if err := r.game.PlayMove(res.move); err != nil {
		return false, err
	}
	return true, nil
}
