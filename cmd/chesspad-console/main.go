// Command chesspad-console plays chess through text commands on stdin.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hailam/chesspad/internal/app"
	"github.com/hailam/chesspad/internal/console"
)

func main() {
	os.Exit(app.Main("chesspad-console", app.DefaultConfig(), os.Args[1:], func(s *app.Session) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := []console.Option{
			console.WithLogger(s.Logger.With().Str("component", "console").Logger()),
			console.WithStarted(s.Started),
		}
		if s.Store != nil {
			opts = append(opts, console.WithStorage(s.Store))
		}
		return console.New(s.Game, s.Bot, opts...).Run(ctx, os.Stdin, os.Stdout)
	}))
}
