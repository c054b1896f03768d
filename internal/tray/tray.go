// Package tray shows the system tray icon and its menu.
package tray

import (
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/systray"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
	"github.com/soar/xgamepad/internal/session"
)

const refreshInterval = 500 * time.Millisecond

// ShutdownFunc is called when "Exit" is clicked
type ShutdownFunc func()

// Session is what the menu drives. Calls are made on the flight loop.
type Session interface {
	StartConfiguration()
	SetControllerType(gamepad.ControllerType)
	SetShowIndicators(bool)
}

// Loop runs a function on the flight loop.
type Loop interface {
	Post(fn func())
}

// Source publishes the session snapshot the menu state follows.
type Source interface {
	Latest() session.Snapshot
}

type Options struct {
	Session  Session
	Loop     Loop
	Source   Source
	URL      string
	Shutdown ShutdownFunc
}

// Tray manages the system tray icon and menu
type Tray struct {
	opts         Options
	once         sync.Once
	shuttingDown atomic.Bool
	done         chan struct{}

	menuOpen       *systray.MenuItem
	menuController *systray.MenuItem
	menuXbox       *systray.MenuItem
	menuDS4        *systray.MenuItem
	menuConfigure  *systray.MenuItem
	menuIndicators *systray.MenuItem
	menuExit       *systray.MenuItem
}

func New(opts Options) *Tray {
	return &Tray{opts: opts, done: make(chan struct{})}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the icon; Run returns afterwards.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("xgamepad")
	systray.SetTooltip("xgamepad - " + t.opts.URL)

	t.menuOpen = systray.AddMenuItem("Open Status Page", "Open the status page in a browser")
	systray.AddSeparator()
	t.menuController = systray.AddMenuItem("Controller", "Controller layout")
	t.menuXbox = t.menuController.AddSubMenuItemCheckbox("Xbox 360", "Xbox 360 layout", true)
	t.menuDS4 = t.menuController.AddSubMenuItemCheckbox("DualShock 4", "DualShock 4 layout", false)
	t.menuConfigure = systray.AddMenuItem("Start Configuration", "Detect the controller in the joystick arrays")
	t.menuIndicators = systray.AddMenuItemCheckbox("Show Indicators", "Show the lever indicators", true)
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

	go t.handleMenuClicks()
	go t.follow()

	logger.Infof("system tray initialized")
}

// handleMenuClicks processes menu item clicks without blocking
func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.done:
			return
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				t.openBrowser()
			}
		case <-t.menuXbox.ClickedCh:
			t.post(func() { t.opts.Session.SetControllerType(gamepad.Xbox360) })
		case <-t.menuDS4.ClickedCh:
			t.post(func() { t.opts.Session.SetControllerType(gamepad.DS4) })
		case <-t.menuConfigure.ClickedCh:
			t.post(t.opts.Session.StartConfiguration)
		case <-t.menuIndicators.ClickedCh:
			show := !t.menuIndicators.Checked()
			t.post(func() { t.opts.Session.SetShowIndicators(show) })
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.Shutdown != nil {
					t.once.Do(t.opts.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) post(fn func()) {
	if t.shuttingDown.Load() {
		return
	}
	t.opts.Loop.Post(fn)
}

// follow keeps the check marks and the configuration caption in line with
// the session.
func (t *Tray) follow() {
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.apply(t.opts.Source.Latest())
		}
	}
}

func (t *Tray) apply(snap session.Snapshot) {
	setChecked(t.menuXbox, snap.ControllerType == gamepad.Xbox360.String())
	setChecked(t.menuDS4, snap.ControllerType == gamepad.DS4.String())
	setChecked(t.menuIndicators, snap.ShowIndicators)
	if snap.CalibrationStep == "axes" || snap.CalibrationStep == "buttons" {
		t.menuConfigure.SetTitle("Abort Configuration")
	} else {
		t.menuConfigure.SetTitle("Start Configuration")
	}
	t.menuConfigure.SetTooltip(snap.CalibrationStatus)
}

func setChecked(item *systray.MenuItem, checked bool) {
	if item.Checked() == checked {
		return
	}
	if checked {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	close(t.done)
	logger.Infof("system tray exiting")
}

// openBrowser opens the default web browser
func (t *Tray) openBrowser() {
	if t.shuttingDown.Load() {
		return
	}

	url := t.opts.URL
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		logger.Warningf("failed to open browser: %v", err)
	}
}
