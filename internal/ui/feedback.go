package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/hailam/chesspad/internal/board"
	"github.com/hailam/chesspad/internal/game"
)

// ToastType represents the type of toast notification.
type ToastType int

const (
	ToastInfo ToastType = iota
	ToastWarning
	ToastError
	ToastSuccess
)

// Toast is a notification shown over the board for a while.
type Toast struct {
	Message   string
	Type      ToastType
	StartTime time.Time
	Duration  time.Duration
}

// ToastManager manages toast notifications.
type ToastManager struct {
	toasts   []*Toast
	maxStack int
	now      func() time.Time
}

// NewToastManager creates a new toast manager.
func NewToastManager() *ToastManager {
	return &ToastManager{maxStack: 3, now: time.Now}
}

// Show displays a new toast notification, dropping the oldest past maxStack.
func (tm *ToastManager) Show(message string, toastType ToastType, duration time.Duration) {
	tm.toasts = append(tm.toasts, &Toast{
		Message:   message,
		Type:      toastType,
		StartTime: tm.now(),
		Duration:  duration,
	})
	if len(tm.toasts) > tm.maxStack {
		tm.toasts = tm.toasts[1:]
	}
}

// Update removes expired toasts.
func (tm *ToastManager) Update() {
	now := tm.now()
	active := tm.toasts[:0]
	for _, t := range tm.toasts {
		if now.Sub(t.StartTime) < t.Duration {
			active = append(active, t)
		}
	}
	tm.toasts = active
}

// Messages returns the active toast texts, oldest first.
func (tm *ToastManager) Messages() []string {
	out := make([]string, len(tm.toasts))
	for i, t := range tm.toasts {
		out[i] = t.Message
	}
	return out
}

func toastColors(t ToastType, alpha float64) (bg, fg color.RGBA) {
	fg = color.RGBA{255, 255, 255, uint8(255 * alpha)}
	switch t {
	case ToastWarning:
		return color.RGBA{180, 140, 20, uint8(220 * alpha)}, color.RGBA{40, 30, 0, uint8(255 * alpha)}
	case ToastError:
		return color.RGBA{180, 50, 50, uint8(220 * alpha)}, fg
	case ToastSuccess:
		return color.RGBA{50, 150, 50, uint8(220 * alpha)}, fg
	}
	return color.RGBA{50, 100, 150, uint8(220 * alpha)}, fg
}

// Draw renders all active toasts centered over the board.
func (tm *ToastManager) Draw(screen *ebiten.Image) {
	face := GetRegularFace()
	if face == nil {
		return
	}
	const padding, fadeTime = 12.0, 0.2

	y := 50.0
	for _, t := range tm.toasts {
		elapsed := tm.now().Sub(t.StartTime).Seconds()
		duration := t.Duration.Seconds()
		alpha := 1.0
		if elapsed < fadeTime {
			alpha = elapsed / fadeTime
		} else if elapsed > duration-fadeTime {
			alpha = math.Max(0, (duration-elapsed)/fadeTime)
		}
		bg, fg := toastColors(t.Type, alpha)

		w, h := MeasureText(t.Message, face)
		boxW, boxH := w+padding*2, h+padding*2
		x := float64(BoardSize)/2 - boxW/2
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(boxW), float32(boxH), bg, false)
		drawText(screen, t.Message, face, x+padding, y+padding, fg)

		y += boxH + 8
	}
}

// ShakeAnimation is a damped horizontal wobble of the piece on a square.
type ShakeAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Intensity float64
}

// FlashAnimation is a fading overlay on a square.
type FlashAnimation struct {
	Square    board.Square
	StartTime time.Time
	Duration  time.Duration
	Color     color.RGBA
}

// AnimationManager manages visual animations.
type AnimationManager struct {
	shakes  []*ShakeAnimation
	flashes []*FlashAnimation
}

// NewAnimationManager creates a new animation manager.
func NewAnimationManager() *AnimationManager {
	return &AnimationManager{}
}

// StartShake begins a shake animation on a square.
func (am *AnimationManager) StartShake(sq board.Square) {
	am.shakes = append(am.shakes, &ShakeAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  300 * time.Millisecond,
		Intensity: 8.0,
	})
}

// StartFlash begins a flash animation on a square.
func (am *AnimationManager) StartFlash(sq board.Square, c color.RGBA) {
	am.flashes = append(am.flashes, &FlashAnimation{
		Square:    sq,
		StartTime: time.Now(),
		Duration:  400 * time.Millisecond,
		Color:     c,
	})
}

// Update removes expired animations.
func (am *AnimationManager) Update() {
	now := time.Now()
	shakes := am.shakes[:0]
	for _, s := range am.shakes {
		if now.Sub(s.StartTime) < s.Duration {
			shakes = append(shakes, s)
		}
	}
	am.shakes = shakes

	flashes := am.flashes[:0]
	for _, f := range am.flashes {
		if now.Sub(f.StartTime) < f.Duration {
			flashes = append(flashes, f)
		}
	}
	am.flashes = flashes
}

// GetShakeOffset returns the current shake offset for a square.
func (am *AnimationManager) GetShakeOffset(sq board.Square) (float64, float64) {
	for _, s := range am.shakes {
		if s.Square != sq {
			continue
		}
		progress := time.Since(s.StartTime).Seconds() / s.Duration.Seconds()
		if progress >= 1.0 {
			return 0, 0
		}
		amplitude := s.Intensity * math.Exp(-5*progress)
		return amplitude * math.Sin(40*progress), 0
	}
	return 0, 0
}

// DrawFlashes renders all active flash overlays.
func (am *AnimationManager) DrawFlashes(screen *ebiten.Image, r *Renderer) {
	size := float32(r.SquareSize())
	for _, f := range am.flashes {
		progress := time.Since(f.StartTime).Seconds() / f.Duration.Seconds()
		if progress >= 1.0 {
			continue
		}
		c := f.Color
		c.A = uint8(float64(c.A) * (1.0 - progress))
		x, y := r.SquareToScreen(f.Square)
		vector.DrawFilledRect(screen, float32(x), float32(y), size, size, c, false)
	}
}

// FeedbackManager turns game events into toasts, animations and sounds.
type FeedbackManager struct {
	toasts     *ToastManager
	animations *AnimationManager
	audio      *AudioManager
}

// NewFeedbackManager creates a new feedback manager.
func NewFeedbackManager(sound bool) *FeedbackManager {
	return &FeedbackManager{
		toasts:     NewToastManager(),
		animations: NewAnimationManager(),
		audio:      NewAudioManager(sound),
	}
}

// Update updates all feedback systems.
func (fm *FeedbackManager) Update() {
	fm.toasts.Update()
	fm.animations.Update()
}

// Draw renders all feedback overlays.
func (fm *FeedbackManager) Draw(screen *ebiten.Image, r *Renderer) {
	fm.animations.DrawFlashes(screen, r)
	fm.toasts.Draw(screen)
}

// Animations returns the animation manager for renderer integration.
func (fm *FeedbackManager) Animations() *AnimationManager {
	return fm.animations
}

// Audio returns the audio manager.
func (fm *FeedbackManager) Audio() *AudioManager {
	return fm.audio
}

// OnMove reacts to a committed move. It is registered with Game.OnMove.
func (fm *FeedbackManager) OnMove(e game.MoveEvent) {
	fm.audio.Play(soundFor(e))
	if msg, kind, ok := moveToast(e); ok {
		fm.toasts.Show(msg, kind, toastDuration(kind))
	}
}

// OnInvalidMove shakes the piece that could not go to target.
func (fm *FeedbackManager) OnInvalidMove(from, target board.Square) {
	fm.toasts.Show("Illegal move", ToastWarning, 2*time.Second)
	fm.animations.StartShake(from)
	fm.animations.StartFlash(target, color.RGBA{255, 80, 80, 150})
	fm.audio.Play(SoundInvalid)
}

// OnNotice shows a plain informational toast.
func (fm *FeedbackManager) OnNotice(message string) {
	fm.toasts.Show(message, ToastInfo, 2*time.Second)
}

// OnError shows an error toast.
func (fm *FeedbackManager) OnError(err error) {
	fm.toasts.Show(err.Error(), ToastError, 3*time.Second)
}

// moveToast picks the toast announced for a move, if any.
func moveToast(e game.MoveEvent) (string, ToastType, bool) {
	switch {
	case e.Checkmate:
		return "Checkmate! " + e.Entry.Mover.String() + " wins!", ToastSuccess, true
	case e.Stalemate:
		return "Stalemate - Draw", ToastInfo, true
	case e.Check:
		return "Check!", ToastWarning, true
	}
	return "", ToastInfo, false
}

func toastDuration(t ToastType) time.Duration {
	if t == ToastSuccess || t == ToastInfo {
		return 5 * time.Second
	}
	return 2 * time.Second
}
