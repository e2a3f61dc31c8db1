// Package engine implements the computer opponent: a one-ply greedy evaluator
// that prefers captures and material gain.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chesspad/internal/board"
)

// CaptureWeight scales the value of a captured piece in a move's score.
const CaptureWeight = 15

// ErrNoLegalMoves is returned when the side to move is mated or stalemated.
var ErrNoLegalMoves = errors.New("no legal moves")

// SearchInfo describes the outcome of one bot decision.
type SearchInfo struct {
	Move       board.Move
	Score      int
	Candidates int
	Time       time.Duration
	Random     bool
}

// Engine is the chess bot.
type Engine struct {
	logger  zerolog.Logger
	workers int

	mu  sync.Mutex
	rng *rand.Rand

	// Callbacks
	OnInfo func(SearchInfo)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithWorkers bounds the number of goroutines scoring moves.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithSeed makes the random fallback deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// NewEngine creates a bot.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:  zerolog.Nop(),
		workers: runtime.GOMAXPROCS(0),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores m played from pos for the side to move: the material
// balance after the move plus CaptureWeight times the captured piece's value.
func Evaluate(pos *board.Position, m board.Move) int {
	us := pos.SideToMove
	after := *pos
	captured := after.MakeMove(m)
	score := after.Board.Material(us) - after.Board.Material(us.Other())
	if captured != board.NoPiece {
		score += CaptureWeight * captured.Value()
	}
	return score
}

// Candidates returns the moves the bot considers: every legal move, with
// promotions limited to the queen.
func Candidates(pos *board.Position) board.MoveList {
	all := pos.AllLegalMoves()
	out := all[:0]
	for _, m := range all {
		if m.IsPromotion() && m.Promotion() != board.Queen {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Search picks the highest scoring candidate, taking the first one found on
// ties. It returns ErrNoLegalMoves when the side to move has no move, or the
// context's error if ctx ends first.
func (e *Engine) Search(ctx context.Context, pos board.Position) (board.Move, error) {
	start := time.Now()
	moves := Candidates(&pos)
	if len(moves) == 0 {
		return board.NoMove, ErrNoLegalMoves
	}

	scores := make([]int, len(moves))
	scored := make([]bool, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, m := range moves {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scores[i] = Evaluate(&pos, m)
			scored[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return board.NoMove, err
	}
	if err := ctx.Err(); err != nil {
		return board.NoMove, err
	}

	best := -1
	for i := range moves {
		if !scored[i] {
			continue
		}
		if best < 0 || scores[i] > scores[best] {
			best = i
		}
	}

	info := SearchInfo{Candidates: len(moves)}
	if best < 0 {
		info.Move = e.randomMove(moves)
		info.Random = true
	} else {
		info.Move = moves[best]
		info.Score = scores[best]
	}
	info.Time = time.Since(start)

	e.logger.Debug().
		Str("move", info.Move.String()).
		Int("score", info.Score).
		Int("candidates", info.Candidates).
		Bool("random", info.Random).
		Dur("elapsed", info.Time).
		Msg("bot move chosen")

	if e.OnInfo != nil {
		e.OnInfo(info)
	}
	return info.Move, nil
}

// BestMove returns the bot's move in pos, or false exactly when pos has no
// legal move.
func (e *Engine) BestMove(pos board.Position) (board.Move, bool) {
	m, err := e.Search(context.Background(), pos)
	if err != nil {
		return board.NoMove, false
	}
	return m, true
}

func (e *Engine) randomMove(moves board.MoveList) board.Move {
	e.mu.Lock()
	defer e.mu.Unlock()
	return moves[e.rng.Intn(len(moves))]
}
