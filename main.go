// Chesspad is a chess game built with Ebitengine.
package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chesspad/internal/app"
	"github.com/hailam/chesspad/internal/ui"
)

func main() {
	os.Exit(app.Main("chesspad", app.DefaultConfig(), os.Args[1:], func(s *app.Session) error {
		opts := []ui.Option{
			ui.WithLogger(s.Logger.With().Str("component", "ui").Logger()),
			ui.WithStarted(s.Started),
			ui.WithClock(s.Clock),
		}
		if s.Store != nil {
			opts = append(opts, ui.WithStorage(s.Store, s.Prefs))
		}
		g, err := ui.NewGame(s.Game, s.Bot, opts...)
		if err != nil {
			return err
		}
		defer g.Close()

		ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
		ebiten.SetWindowTitle("Chesspad")
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return ebiten.RunGame(g)
	}))
}
