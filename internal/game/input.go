package game

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/aliens/internal/component"
)

// Input collects key presses between frames. The terminal event loop writes,
// the input phase takes and resets. Terminals report no key releases, so a
// held key shows up as repeated presses.
type Input struct {
	mu   sync.Mutex
	dir  component.Direction
	fire bool
	quit bool
}

func (in *Input) Steer(d component.Direction) {
	in.mu.Lock()
	in.dir = d
	in.mu.Unlock()
}

func (in *Input) Fire() {
	in.mu.Lock()
	in.fire = true
	in.mu.Unlock()
}

func (in *Input) Quit() {
	in.mu.Lock()
	in.quit = true
	in.mu.Unlock()
}

func (in *Input) take() (dir component.Direction, fire, quit bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	dir, fire, quit = in.dir, in.fire, in.quit
	in.dir, in.fire = component.None, false
	return dir, fire, quit
}

// HandleKey maps arrows/a/d to steering, space to fire and Esc/q/Ctrl-C to
// quit. It reports whether the key was used.
func (in *Input) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		in.Steer(component.Left)
	case tcell.KeyRight:
		in.Steer(component.Right)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		in.Quit()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			in.Fire()
		case 'a', 'h':
			in.Steer(component.Left)
		case 'd', 'l':
			in.Steer(component.Right)
		case 'q':
			in.Quit()
		default:
			return false
		}
	default:
		return false
	}
	return true
}
