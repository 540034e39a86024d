package console

import (
	"encoding/binary"
	"math"

	"github.com/ebitengine/oto/v3"
)

const sampleRate = 44100

// toneStream is an endless mono float32 square wave the oto player pulls
// from while the tone is sounding.
type toneStream struct {
	freq   float64
	volume float64
	pos    int
}

func (s *toneStream) Read(p []byte) (int, error) {
	period := int(float64(sampleRate) / s.freq)
	if period < 2 {
		period = 2
	}
	n := len(p) / 4 * 4
	for i := 0; i+3 < n; i += 4 {
		v := float32(s.volume)
		if s.pos%period >= period/2 {
			v = -v
		}
		binary.LittleEndian.PutUint32(p[i:], math.Float32bits(v))
		s.pos++
	}
	return n, nil
}

// Buzzer implements the tone generator with an oto player, for use where no
// ebiten audio context exists.
type Buzzer struct {
	player *oto.Player
}

// Start creates the oto context and a paused player over the square wave.
// Audio setup failure leaves the buzzer silent; emulation continues.
func (b *Buzzer) Start(frequency, volume float64) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready
	b.player = ctx.NewPlayer(&toneStream{freq: frequency, volume: volume})
}

// Play starts the tone.
func (b *Buzzer) Play() {
	if b.player != nil && !b.player.IsPlaying() {
		b.player.Play()
	}
}

// Pause stops the tone.
func (b *Buzzer) Pause() {
	if b.player != nil {
		b.player.Pause()
	}
}
