package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	shotDuration      = 90 * time.Millisecond
	explosionDuration = 450 * time.Millisecond
)

// Bank holds the game's sound effects rendered into memory once at start-up.
// Audio payloads point at these buffers.
type Bank struct {
	Format    beep.Format
	Shot      *beep.Buffer
	Explosion *beep.Buffer
}

// NewBank synthesizes every effect at sampleRate. volume is a base-2
// exponent applied on top of each effect's own level; 0 leaves it unchanged.
func NewBank(sampleRate int, volume float64) *Bank {
	format := beep.Format{SampleRate: beep.SampleRate(sampleRate), NumChannels: 2, Precision: 2}
	rate := format.SampleRate
	master := math.Exp2(volume)

	shot := Envelope(Tone(WaveSquare, 880, -440, shotDuration, rate),
		shotDuration, 5*time.Millisecond, 40*time.Millisecond, rate)
	blast := beep.Mix(
		gain(Envelope(Tone(WaveNoise, 0, 0, explosionDuration, rate),
			explosionDuration, 10*time.Millisecond, 350*time.Millisecond, rate), 0.7),
		gain(Envelope(Tone(WaveSine, 90, -50, explosionDuration, rate),
			explosionDuration, 5*time.Millisecond, 300*time.Millisecond, rate), 0.5),
	)

	return &Bank{
		Format:    format,
		Shot:      render(format, gain(shot, 0.4*master)),
		Explosion: render(format, gain(blast, master)),
	}
}

func render(format beep.Format, s beep.Streamer) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return buf
}
