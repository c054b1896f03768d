package inject

import (
	"fmt"
	"sync"
)

// Recorder keeps every event in memory. Tests assert on Events; the daemon
// can select it to dry-run a session.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func init() {
	Register("recorder", func() (Injector, error) { return &Recorder{}, nil }, 2000)
}

func (r *Recorder) add(format string, args ...interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf(format, args...))
	return nil
}

func (r *Recorder) Close() error { return nil }

func (r *Recorder) KeyEvent(code int, down bool) error {
	if down {
		return r.add("key %d down", code)
	}
	return r.add("key %d up", code)
}

func (r *Recorder) PointerMove(deltaX, deltaY int) error {
	return r.add("move %d %d", deltaX, deltaY)
}

func (r *Recorder) PointerButton(button PointerButton, down bool) error {
	if down {
		return r.add("%s down", button)
	}
	return r.add("%s up", button)
}

func (r *Recorder) Scroll(clicks int) error {
	return r.add("scroll %d", clicks)
}

// Events returns and clears the recorded events.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.events
	r.events = nil
	return out
}
