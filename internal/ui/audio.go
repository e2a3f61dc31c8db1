// Package ui is the desktop frontend, built on Ebitengine.
package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/hailam/chesspad/internal/game"
)

// SoundType represents different sound effects.
type SoundType int

const (
	SoundMove SoundType = iota
	SoundCapture
	SoundCheck
	SoundCastle
	SoundPromote
	SoundInvalid
	SoundGameEnd
)

const sampleRate = 44100

// soundFor picks the sound for a committed move. Game end wins over check,
// check over the kind of move.
func soundFor(e game.MoveEvent) SoundType {
	switch {
	case e.Checkmate || e.Stalemate:
		return SoundGameEnd
	case e.Check:
		return SoundCheck
	case e.Promotion:
		return SoundPromote
	case e.Castle:
		return SoundCastle
	case e.IsCapture():
		return SoundCapture
	}
	return SoundMove
}

// AudioManager handles sound effect playback.
type AudioManager struct {
	context *audio.Context
	sounds  map[SoundType][]byte
	enabled bool
	volume  float64
}

// NewAudioManager creates an audio manager with every sound pre-rendered.
func NewAudioManager(enabled bool) *AudioManager {
	am := &AudioManager{
		context: audio.NewContext(sampleRate),
		sounds:  make(map[SoundType][]byte),
		enabled: enabled,
		volume:  0.5,
	}
	am.generateSounds()
	return am
}

func (am *AudioManager) generateSounds() {
	am.sounds[SoundMove] = click(440, 0.08, 0.3)
	am.sounds[SoundCapture] = click(330, 0.12, 0.5)
	am.sounds[SoundCheck] = tone(880, 0.15, 0.4)
	am.sounds[SoundCastle] = concat(click(400, 0.06, 0.3), silence(0.05), click(440, 0.06, 0.24))
	am.sounds[SoundPromote] = concat(tone(523.25, 0.08, 0.3), tone(783.99, 0.12, 0.3))
	am.sounds[SoundInvalid] = buzz(150, 0.1, 0.3)
	am.sounds[SoundGameEnd] = chord(0.4, 0.5, 261.63, 329.63, 392.00)
}

// synth renders duration seconds of 16-bit stereo PCM from a sample function
// of time and progress through the sound.
func synth(duration float64, sample func(t, progress float64) float64) []byte {
	samples := int(sampleRate * duration)
	data := make([]byte, samples*4)
	for i := 0; i < samples; i++ {
		t := float64(i) / sampleRate
		v := math.Max(-1, math.Min(1, sample(t, t/duration)))
		val := int16(v * 32767)
		data[i*4] = byte(val)
		data[i*4+1] = byte(val >> 8)
		data[i*4+2] = byte(val)
		data[i*4+3] = byte(val >> 8)
	}
	return data
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func silence(duration float64) []byte {
	return make([]byte, int(sampleRate*duration)*4)
}

// click is a short percussive knock, wood on wood.
func click(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, _ float64) float64 {
		envelope := math.Exp(-t * 30)
		noise := (math.Sin(t*sampleRate*0.3) + math.Sin(t*sampleRate*0.7)) * 0.3
		return (math.Sin(2*math.Pi*freq*t) + noise) * envelope * amplitude
	})
}

// tone is a sine with a short attack and linear decay.
func tone(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0 - (progress-0.1)/0.9
		if progress < 0.1 {
			envelope = progress / 0.1
		}
		return math.Sin(2*math.Pi*freq*t) * envelope * amplitude
	})
}

// buzz is a low square-ish error sound.
func buzz(freq, duration, amplitude float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		wave := math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(4*math.Pi*freq*t)
		return wave * (1.0 - progress) * amplitude * 0.5
	})
}

func chord(duration, amplitude float64, freqs ...float64) []byte {
	return synth(duration, func(t, progress float64) float64 {
		envelope := 1.0
		switch {
		case progress < 0.1:
			envelope = progress / 0.1
		case progress > 0.7:
			envelope = (1.0 - progress) / 0.3
		}
		sum := 0.0
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * f * t)
		}
		return sum / float64(len(freqs)) * envelope * amplitude
	})
}

// Play plays a sound effect. A new player per call lets sounds overlap.
func (am *AudioManager) Play(sound SoundType) {
	if !am.enabled {
		return
	}
	data, ok := am.sounds[sound]
	if !ok {
		return
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume)
	player.Play()
}

// SetEnabled enables or disables audio.
func (am *AudioManager) SetEnabled(enabled bool) {
	am.enabled = enabled
}

// IsEnabled returns whether audio is enabled.
func (am *AudioManager) IsEnabled() bool {
	return am.enabled
}
