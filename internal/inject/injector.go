// Package inject emulates mouse and keyboard input on the desktop.
package inject

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/logger"
)

type PointerButton int

const (
	PointerButtonLeft PointerButton = iota
	PointerButtonRight
)

func (b PointerButton) String() string {
	if b == PointerButtonRight {
		return "right"
	}
	return "left"
}

// Injector sends synthetic input events. Key codes are Linux evdev codes.
type Injector interface {
	Close() error
	KeyEvent(code int, down bool) error
	PointerMove(deltaX, deltaY int) error
	PointerButton(button PointerButton, down bool) error
	// Scroll moves the wheel by clicks; positive scrolls up.
	Scroll(clicks int) error
}

type Info struct {
	Name string
	Init func() (Injector, error)

	priority int
}

var injectors []Info

// Register adds an injector. Lower priorities are tried first by Open("").
func Register(name string, init func() (Injector, error), priority int) {
	injectors = append(injectors, Info{Name: name, Init: init, priority: priority})
	sort.SliceStable(injectors, func(i, j int) bool {
		return injectors[i].priority < injectors[j].priority
	})
}

// Available lists the registered injector names in priority order.
func Available() []string {
	names := make([]string, len(injectors))
	for i, info := range injectors {
		names[i] = info.Name
	}
	return names
}

// Open initializes the named injector. With an empty name every registered
// injector is tried in priority order and the first that initializes wins.
func Open(name string) (Injector, string, error) {
	var errs []string
	for _, info := range injectors {
		if name != "" && info.Name != name {
			continue
		}
		inj, err := info.Init()
		if err == nil {
			return inj, info.Name, nil
		}
		if name != "" {
			return nil, "", errors.Wrapf(err, "init %s injector", info.Name)
		}
		logger.Warningf("injector %s unavailable: %v", info.Name, err)
		errs = append(errs, info.Name)
	}
	if name != "" {
		return nil, "", errors.Errorf("unknown injector %q (available: %v)", name, Available())
	}
	return nil, "", errors.Errorf("no injector available (tried %v)", errs)
}
