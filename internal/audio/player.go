package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Player mixes effect buffers into one stream. Until Start is called the
// mixer is not attached to the speaker and plays nowhere.
type Player struct {
	mu    sync.Mutex
	mixer *beep.Mixer
	rate  beep.SampleRate
	live  bool
}

func NewPlayer(sampleRate int) *Player {
	return &Player{mixer: &beep.Mixer{}, rate: beep.SampleRate(sampleRate)}
}

// Start opens the speaker and attaches the mixer.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.live = true
	return nil
}

// Play queues a full buffer on the mixer.
func (p *Player) Play(buf *beep.Buffer) {
	if buf == nil || buf.Len() == 0 {
		return
	}
	p.locked(func() { p.mixer.Add(buf.Streamer(0, buf.Len())) })
}

// Active reports how many sounds are still mixing.
func (p *Player) Active() int {
	n := 0
	p.locked(func() { n = p.mixer.Len() })
	return n
}

// Mixer exposes the mix for callers that drive the stream themselves.
func (p *Player) Mixer() beep.Streamer {
	return p.mixer
}

// Close silences every sound.
func (p *Player) Close() {
	p.locked(func() { p.mixer.Clear() })
}

func (p *Player) locked(fn func()) {
	p.mu.Lock()
	live := p.live
	p.mu.Unlock()
	if live {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}
