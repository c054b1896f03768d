//go:build linux

package inject

import (
	"github.com/bendahl/uinput"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const uinputPath = "/dev/uinput"

type uinputInjector struct {
	keyboard uinput.Keyboard
	mouse    uinput.Mouse
}

func init() {
	Register("uinput", openUinput, 0)
}

func openUinput() (Injector, error) {
	keyboard, err := uinput.CreateKeyboard(uinputPath, []byte("xgamepad-keyboard"))
	if err != nil {
		return nil, errors.Wrap(err, "create uinput keyboard")
	}
	mouse, err := uinput.CreateMouse(uinputPath, []byte("xgamepad-mouse"))
	if err != nil {
		keyboard.Close()
		return nil, errors.Wrap(err, "create uinput mouse")
	}
	return &uinputInjector{keyboard: keyboard, mouse: mouse}, nil
}

func (p *uinputInjector) Close() error {
	var result *multierror.Error
	if err := p.keyboard.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := p.mouse.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

func (p *uinputInjector) KeyEvent(code int, down bool) error {
	if down {
		return p.keyboard.KeyDown(code)
	}
	return p.keyboard.KeyUp(code)
}

func (p *uinputInjector) PointerMove(deltaX, deltaY int) error {
	return p.mouse.Move(int32(deltaX), int32(deltaY))
}

func (p *uinputInjector) PointerButton(button PointerButton, down bool) error {
	switch {
	case button == PointerButtonLeft && down:
		return p.mouse.LeftPress()
	case button == PointerButtonLeft:
		return p.mouse.LeftRelease()
	case down:
		return p.mouse.RightPress()
	default:
		return p.mouse.RightRelease()
	}
}

func (p *uinputInjector) Scroll(clicks int) error {
	return p.mouse.Wheel(false, int32(clicks))
}
