package inject

import "github.com/soar/xgamepad/internal/logger"

type nullInjector struct{}

func init() {
	Register("null", func() (Injector, error) { return nullInjector{}, nil }, 1000)
}

func (nullInjector) Close() error {
	return nil
}

func (nullInjector) KeyEvent(code int, down bool) error {
	logger.Debugf("KeyEvent(code: %d, down: %v)", code, down)
	return nil
}

func (nullInjector) PointerMove(deltaX, deltaY int) error {
	logger.Debugf("PointerMove(deltaX: %d, deltaY: %d)", deltaX, deltaY)
	return nil
}

func (nullInjector) PointerButton(button PointerButton, down bool) error {
	logger.Debugf("PointerButton(button: %s, down: %v)", button, down)
	return nil
}

func (nullInjector) Scroll(clicks int) error {
	logger.Debugf("Scroll(clicks: %d)", clicks)
	return nil
}
