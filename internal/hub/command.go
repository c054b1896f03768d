package hub

import (
	"github.com/pkg/errors"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
)

func handleCommand(msg ClientMessage, loop Poster, controls Controls) error {
	switch msg.Type {
	case CmdStartConfiguration:
		loop.Post(controls.StartConfiguration)
	case CmdStopConfiguration:
		loop.Post(controls.StopConfiguration)
	case CmdSetController:
		t, ok := gamepad.ParseControllerType(msg.ControllerType)
		if !ok {
			return errors.Errorf("unknown controller type %q", msg.ControllerType)
		}
		loop.Post(func() { controls.SetControllerType(t) })
	case CmdShowIndicators:
		show := msg.Show
		loop.Post(func() { controls.SetShowIndicators(show) })
	case CmdHideKeyboard:
		loop.Post(controls.HideKeyboard)
	default:
		return errors.Errorf("unknown command %q", msg.Type)
	}
	logger.Debugf("status client command %s", msg.Type)
	return nil
}
