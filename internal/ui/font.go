package ui

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	defaultFontSize = 14.0
	titleFontSize   = 16.0
	labelFontSize   = 11.0
)

var (
	fontsOnce   sync.Once
	fontsErr    error
	regularSrc  *text.GoTextFaceSource
	boldSrc     *text.GoTextFaceSource
	regularFace *text.GoTextFace
	boldFace    *text.GoTextFace
)

// loadFonts parses the Go fonts once.
func loadFonts() error {
	fontsOnce.Do(func() {
		regularSrc, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if fontsErr != nil {
			fontsErr = fmt.Errorf("load regular font: %w", fontsErr)
			return
		}
		boldSrc, fontsErr = text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
		if fontsErr != nil {
			fontsErr = fmt.Errorf("load bold font: %w", fontsErr)
			return
		}
		regularFace = &text.GoTextFace{Source: regularSrc, Size: defaultFontSize}
		boldFace = &text.GoTextFace{Source: boldSrc, Size: titleFontSize}
	})
	return fontsErr
}

// GetRegularFace returns the regular font face, or nil if fonts failed to load.
func GetRegularFace() *text.GoTextFace {
	if loadFonts() != nil {
		return nil
	}
	return regularFace
}

// GetBoldFace returns the bold font face, or nil if fonts failed to load.
func GetBoldFace() *text.GoTextFace {
	if loadFonts() != nil {
		return nil
	}
	return boldFace
}

// GetFaceWithSize returns a regular face of a custom size.
func GetFaceWithSize(size float64) *text.GoTextFace {
	if loadFonts() != nil {
		return nil
	}
	return &text.GoTextFace{Source: regularSrc, Size: size}
}

// MeasureText returns the width and height of the given text.
func MeasureText(s string, face *text.GoTextFace) (width, height float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// drawText draws s with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.Color) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// drawTextCentered draws s centered on (cx, cy).
func drawTextCentered(screen *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c color.Color) {
	w, h := MeasureText(s, face)
	drawText(screen, s, face, cx-w/2, cy-h/2, c)
}
