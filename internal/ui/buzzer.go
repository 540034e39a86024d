package ui

import (
	"encoding/binary"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 48000

// squareWave is an endless 16-bit stereo square-wave stream at a fixed
// frequency. The audio player pulls from it while the tone is sounding.
type squareWave struct {
	freq   float64
	volume float64
	pos    int
}

func (s *squareWave) Read(p []byte) (int, error) {
	period := int(sampleRate / s.freq)
	if period < 2 {
		period = 2
	}
	amp := int16(s.volume * 32767)
	n := len(p) / 4 * 4
	for i := 0; i+3 < n; i += 4 {
		v := amp
		if s.pos%period >= period/2 {
			v = -amp
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(v))
		binary.LittleEndian.PutUint16(p[i+2:], uint16(v))
		s.pos++
	}
	return n, nil
}

// Buzzer implements the tone generator on top of the ebiten audio player.
type Buzzer struct {
	player *audio.Player
	muted  bool
}

// Start creates the audio context and a paused player over the square wave.
// Playback errors are not fatal for emulation; the buzzer just stays silent.
func (b *Buzzer) Start(frequency, volume float64) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	p, err := ctx.NewPlayer(&squareWave{freq: frequency, volume: volume})
	if err != nil {
		return
	}
	b.player = p
}

// Play starts the tone.
func (b *Buzzer) Play() {
	if b.player != nil && !b.muted {
		b.player.Play()
	}
}

// Pause stops the tone.
func (b *Buzzer) Pause() {
	if b.player != nil {
		b.player.Pause()
	}
}

// SetMuted silences the buzzer without touching the sound timer.
func (b *Buzzer) SetMuted(muted bool) {
	b.muted = muted
	if muted {
		b.Pause()
	}
}
