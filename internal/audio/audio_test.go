package audio_test

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/l1jgo/aliens/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			peak = max(peak, smp[0], -smp[0])
		}
		samples += n
		if !ok || n == 0 {
			return samples, peak
		}
	}
}

func TestToneLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []audio.Wave{audio.WaveSine, audio.WaveSquare, audio.WaveNoise} {
		n, peak := drain(audio.Tone(w, 440, 0, 100*time.Millisecond, rate))
		assert.Equal(t, rate.N(100*time.Millisecond), n)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.0)
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	rate := beep.SampleRate(1000)
	d := 100 * time.Millisecond
	env := audio.Envelope(audio.Tone(audio.WaveSquare, 250, 0, d, rate), d, 10*time.Millisecond, 10*time.Millisecond, rate)
	buf := make([][2]float64, 100)
	n, _ := env.Stream(buf)
	require.Equal(t, 100, n)
	assert.Zero(t, buf[0][0], "attack starts silent")
	assert.InDelta(t, 1.0, buf[50][0]*buf[50][0], 1e-9, "sustain at full level")
	assert.Less(t, buf[99][0]*buf[99][0], 0.05, "release ends near silence")
}

func TestBankRendersEffects(t *testing.T) {
	bank := audio.NewBank(8000, 0)
	assert.Equal(t, beep.SampleRate(8000).N(90*time.Millisecond), bank.Shot.Len())
	assert.Equal(t, beep.SampleRate(8000).N(450*time.Millisecond), bank.Explosion.Len())
	assert.Equal(t, 2, bank.Format.NumChannels)
}

func TestPlayerMixesUntilDrained(t *testing.T) {
	bank := audio.NewBank(8000, 0)
	p := audio.NewPlayer(8000)
	p.Play(bank.Shot)
	p.Play(bank.Explosion)
	p.Play(nil)
	assert.Equal(t, 2, p.Active())

	buf := make([][2]float64, bank.Explosion.Len()+1024)
	p.Mixer().Stream(buf)
	assert.Zero(t, p.Active())

	p.Play(bank.Shot)
	p.Close()
	assert.Zero(t, p.Active())
}
