// Package sdlreader reads the first connected joystick through SDL3. It is
// kept apart from package gamepad because loading SDL fails on machines
// without libSDL3.
package sdlreader

import (
	"context"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
)

const pollDelayNS = 4_000_000 // ~250Hz, faster than any flight loop rate

type joystickInfo struct {
	joystick  *sdl.Joystick
	name      string
	id        sdl.JoystickID
	vendorID  uint16
	productID uint16
	numAxes   int32
	numButton int32
	numHats   int32
}

// Reader reads the first connected joystick through the SDL3 Joystick API and
// emits raw frames whenever its state changes.
type Reader struct {
	frame     gamepad.Frame
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID
	hasActive bool
	changes   chan gamepad.Frame
	mu        sync.RWMutex
}

func NewReader() *Reader {
	return &Reader{
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		changes:   make(chan gamepad.Frame, 64),
	}
}

// Changes returns the channel on which frames are sent.
func (r *Reader) Changes() <-chan gamepad.Frame {
	return r.changes
}

// Run initializes SDL and polls until ctx is done. SDL requires a single OS
// thread, so Run locks the calling goroutine to its thread.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	defer sdl.Quit()

	logger.Infof("SDL3 joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		default:
		}

		r.processEvents()
		r.poll()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)
		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)
		}
	}
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		logger.Warningf("failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	info := &joystickInfo{
		joystick:  js,
		id:        sdl.GetJoystickID(js),
		name:      sdl.GetJoystickName(js),
		vendorID:  sdl.GetJoystickVendor(js),
		productID: sdl.GetJoystickProduct(js),
		numAxes:   sdl.GetNumJoystickAxes(js),
		numButton: sdl.GetNumJoystickButtons(js),
		numHats:   sdl.GetNumJoystickHats(js),
	}
	r.joysticks[info.id] = info

	suggested := "none"
	if t, ok := gamepad.LookupType(info.vendorID, info.productID); ok {
		suggested = t.String()
	}
	logger.Infof("joystick connected: %s (VID=%04X PID=%04X) axes=%d buttons=%d hats=%d suggested=%s",
		info.name, info.vendorID, info.productID, info.numAxes, info.numButton, info.numHats, suggested)

	if !r.hasActive {
		r.activate(info)
	}
}

func (r *Reader) activate(info *joystickInfo) {
	r.activeID = info.id
	r.hasActive = true
	logger.Infof("active joystick: %s (ID=%d)", info.name, info.id)
	r.poll()
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	logger.Infof("joystick disconnected: %s", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return
	}
	r.hasActive = false
	for _, next := range r.joysticks {
		if sdl.JoystickConnected(next.joystick) {
			r.activate(next)
			return
		}
	}
	r.publish(gamepad.Frame{})
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
}

func (r *Reader) poll() {
	if !r.hasActive {
		return
	}
	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}
	js := info.joystick

	frame := gamepad.Frame{
		Connected: true,
		Name:      info.name,
		VendorID:  info.vendorID,
		ProductID: info.productID,
		Axes:      make([]float32, info.numAxes),
		Buttons:   make([]bool, int(info.numButton)+8*int(info.numHats)),
	}
	for i := int32(0); i < info.numAxes; i++ {
		frame.Axes[i] = gamepad.NormalizeAxis(sdl.GetJoystickAxis(js, i))
	}
	for i := int32(0); i < info.numButton; i++ {
		frame.Buttons[i] = sdl.GetJoystickButton(js, i)
	}
	for h := int32(0); h < info.numHats; h++ {
		base := int(info.numButton) + 8*int(h)
		gamepad.ExpandHat(frame.Buttons[base:base+8], sdl.GetJoystickHat(js, h))
	}

	r.mu.RLock()
	changed := r.frame.Changed(frame)
	r.mu.RUnlock()
	if changed {
		r.publish(frame)
	}
}

func (r *Reader) publish(frame gamepad.Frame) {
	r.mu.Lock()
	r.frame = frame
	r.mu.Unlock()

	// Never block the SDL thread; when the consumer lags, the oldest queued
	// frame is dropped so the newest always gets through.
	out := frame.Clone()
	for {
		select {
		case r.changes <- out:
			return
		default:
		}
		select {
		case <-r.changes:
		default:
		}
	}
}
