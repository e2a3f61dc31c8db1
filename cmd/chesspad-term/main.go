// Command chesspad-term plays chess in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hailam/chesspad/internal/app"
	"github.com/hailam/chesspad/internal/term"
)

func main() {
	os.Exit(app.Main("chesspad-term", termDefaults(), os.Args[1:], func(s *app.Session) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := []term.Option{
			term.WithLogger(s.Logger.With().Str("component", "term").Logger()),
			term.WithStarted(s.Started),
			term.WithClock(s.Clock),
		}
		if s.Store != nil {
			opts = append(opts, term.WithStorage(s.Store))
		}
		return term.New(s.Game, s.Bot, opts...).Run(ctx)
	}))
}

// termDefaults keeps logs off the screen tview draws on.
func termDefaults() app.Config {
	cfg := app.DefaultConfig()
	cfg.LogLevel = "disabled"
	return cfg
}
