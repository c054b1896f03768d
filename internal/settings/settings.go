// Package settings persists the per-user controller record: the selected
// layout, the calibration offsets and the overlay preferences.
package settings

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/soar/xgamepad/internal/gamepad"
	"github.com/soar/xgamepad/internal/logger"
)

const (
	keyControllerType   = "controller_type"
	keyAxisOffset       = "axis_offset"
	keyButtonOffset     = "button_offset"
	keyXInputUserIndex  = "xinput_user_index"
	keyShowIndicators   = "show_indicators"
	keyIndicatorsRight  = "indicators_right"
	keyIndicatorsBottom = "indicators_bottom"
	keyKeyboardRight    = "keyboard_right"
	keyKeyboardBottom   = "keyboard_bottom"
)

// Settings is the persisted record.
type Settings struct {
	ControllerType   gamepad.ControllerType `json:"controllerType"`
	AxisOffset       int                    `json:"axisOffset"`
	ButtonOffset     int                    `json:"buttonOffset"`
	XInputUserIndex  int                    `json:"xinputUserIndex"`
	ShowIndicators   bool                   `json:"showIndicators"`
	IndicatorsRight  int                    `json:"indicatorsRight"`
	IndicatorsBottom int                    `json:"indicatorsBottom"`
	KeyboardRight    int                    `json:"keyboardRight"`
	KeyboardBottom   int                    `json:"keyboardBottom"`
}

// Defaults is what a fresh install starts with.
func Defaults() Settings {
	return Settings{
		ControllerType: gamepad.Xbox360,
		ShowIndicators: true,
	}
}

// File reads and writes Settings as TOML. Every read and write uses its own
// viper instance, so values from a previous Save never shadow the file.
type File struct {
	path string

	mu   sync.Mutex
	last Settings
	seen bool
}

func NewFile(path string) *File {
	return &File{path: filepath.Clean(path)}
}

func (f *File) Path() string {
	return f.path
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	d := Defaults()
	v.SetDefault(keyControllerType, d.ControllerType.String())
	v.SetDefault(keyAxisOffset, d.AxisOffset)
	v.SetDefault(keyButtonOffset, d.ButtonOffset)
	v.SetDefault(keyXInputUserIndex, d.XInputUserIndex)
	v.SetDefault(keyShowIndicators, d.ShowIndicators)
	v.SetDefault(keyIndicatorsRight, d.IndicatorsRight)
	v.SetDefault(keyIndicatorsBottom, d.IndicatorsBottom)
	v.SetDefault(keyKeyboardRight, d.KeyboardRight)
	v.SetDefault(keyKeyboardBottom, d.KeyboardBottom)
	return v
}

// Load reads the file. A missing file yields the defaults without error; a
// malformed one is logged and also yields the defaults.
func (f *File) Load() Settings {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		logger.Infof("no settings at %s, using defaults", f.path)
		return Defaults()
	}
	s, err := f.read()
	if err != nil {
		logger.Warningf("%v; using defaults", err)
		return Defaults()
	}
	f.last, f.seen = s, true
	return s
}

// read must be called with f.mu held.
func (f *File) read() (Settings, error) {
	v := newViper(f.path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, errors.Wrapf(err, "reading settings %s", f.path)
	}
	return decode(v), nil
}

func decode(v *viper.Viper) Settings {
	ct, ok := gamepad.ParseControllerType(v.GetString(keyControllerType))
	if !ok {
		logger.Warningf("unknown controller type %q in settings", v.GetString(keyControllerType))
	}
	return Settings{
		ControllerType:   ct,
		AxisOffset:       v.GetInt(keyAxisOffset),
		ButtonOffset:     v.GetInt(keyButtonOffset),
		XInputUserIndex:  v.GetInt(keyXInputUserIndex),
		ShowIndicators:   v.GetBool(keyShowIndicators),
		IndicatorsRight:  v.GetInt(keyIndicatorsRight),
		IndicatorsBottom: v.GetInt(keyIndicatorsBottom),
		KeyboardRight:    v.GetInt(keyKeyboardRight),
		KeyboardBottom:   v.GetInt(keyKeyboardBottom),
	}
}

// Save writes s to the file, creating it when needed.
func (f *File) Save(s Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := newViper(f.path)
	v.Set(keyControllerType, s.ControllerType.String())
	v.Set(keyAxisOffset, s.AxisOffset)
	v.Set(keyButtonOffset, s.ButtonOffset)
	v.Set(keyXInputUserIndex, s.XInputUserIndex)
	v.Set(keyShowIndicators, s.ShowIndicators)
	v.Set(keyIndicatorsRight, s.IndicatorsRight)
	v.Set(keyIndicatorsBottom, s.IndicatorsBottom)
	v.Set(keyKeyboardRight, s.KeyboardRight)
	v.Set(keyKeyboardBottom, s.KeyboardBottom)

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrapf(err, "create settings directory for %s", f.path)
	}
	if err := v.WriteConfigAs(f.path); err != nil {
		return errors.Wrapf(err, "write settings %s", f.path)
	}
	f.last, f.seen = s, true
	return nil
}

// settleDelay lets an editor finish writing before the file is re-read.
const settleDelay = 100 * time.Millisecond

// Watch calls onChange with the re-read record whenever the file is edited
// externally, until ctx is done. The directory is watched, so a file created
// later by Save or by hand is picked up too. Records equal to the last one
// loaded or saved are not reported.
func (f *File) Watch(ctx context.Context, onChange func(Settings)) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create settings directory %s", dir)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create settings watcher")
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return errors.Wrapf(err, "watch %s", dir)
	}
	go f.watch(ctx, w, onChange)
	return nil
}

func (f *File) watch(ctx context.Context, w *fsnotify.Watcher, onChange func(Settings)) {
	defer w.Close()

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warningf("settings watcher: %v", err)
		case e, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != f.path || e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			settle.Reset(settleDelay)
		case <-settle.C:
			if s, changed := f.reload(); changed {
				logger.Infof("settings changed: %s", f.path)
				onChange(s)
			}
		}
	}
}

func (f *File) reload() (Settings, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); err != nil {
		return Settings{}, false
	}
	s, err := f.read()
	if err != nil {
		logger.Warningf("%v; keeping current settings", err)
		return Settings{}, false
	}
	if f.seen && s == f.last {
		return Settings{}, false
	}
	f.last, f.seen = s, true
	return s, true
}
