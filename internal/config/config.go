// Package config reads the daemon configuration from flags, XGAMEPAD_*
// environment variables and an optional xgamepad.toml, in that order of
// precedence.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/xgamepad/internal/inject"
)

const (
	KeyConfig    = "config"
	KeyListen    = "listen"
	KeySettings  = "settings"
	KeyRate      = "rate"
	KeyInjector  = "injector"
	KeyXPlaneURL = "xplane-url"
	KeyAircraft  = "aircraft"
	KeyPlugins   = "plugins"
	KeyLogLevel  = "log-level"
	KeyTray      = "tray"
	KeyDisplays  = "displays"

	envPrefix = "XGAMEPAD"
)

type Config struct {
	Listen string
	// Settings is the path of the persisted controller record.
	Settings string
	// Rate is the flight loop frequency in Hz.
	Rate     float64
	Injector string
	// XPlaneURL is the base URL of the X-Plane web API. Empty runs the
	// simulated host on its own.
	XPlaneURL string
	// Aircraft is the .acf file the simulated host reports as loaded.
	Aircraft string
	// Plugins are the plugin signatures the simulated host reports as
	// enabled.
	Plugins  []string
	LogLevel string
	Tray     bool
	Displays []inject.Rect
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "xgamepad-settings.toml"
	}
	return filepath.Join(dir, "xgamepad", "settings.toml")
}

// Flags declares the command line flags on fs.
func Flags(fs *pflag.FlagSet) {
	fs.StringP(KeyConfig, "c", "", "configuration file (default ./xgamepad.toml when present)")
	fs.StringP(KeyListen, "l", ":8080", "status page listen address")
	fs.String(KeySettings, defaultSettingsPath(), "controller settings file")
	fs.Float64(KeyRate, 60, "flight loop rate in Hz")
	fs.String(KeyInjector, "", "input injector (empty picks the first available)")
	fs.String(KeyXPlaneURL, "", "X-Plane web API base URL, e.g. http://localhost:8086")
	fs.String(KeyAircraft, "", "aircraft file reported by the simulated host")
	fs.StringSlice(KeyPlugins, nil, "plugin signatures reported as enabled")
	fs.String(KeyLogLevel, "info", "log level (debug, info, warn, error)")
	fs.Bool(KeyTray, runtime.GOOS == "windows", "show the system tray icon")
	fs.StringArray(KeyDisplays, nil, "display bounds as x,y,width,height; repeat per display")
}

// Load parses args and merges the environment and the configuration file.
func Load(args []string) (Config, error) {
	fs := pflag.NewFlagSet("xgamepad", pflag.ContinueOnError)
	Flags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, errors.Wrap(err, "parse flags")
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	} else {
		v.SetConfigName("xgamepad")
		v.SetConfigType("toml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, errors.Wrap(err, "read config")
			}
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	c := Config{
		Listen:    v.GetString(KeyListen),
		Settings:  v.GetString(KeySettings),
		Rate:      v.GetFloat64(KeyRate),
		Injector:  v.GetString(KeyInjector),
		XPlaneURL: strings.TrimRight(v.GetString(KeyXPlaneURL), "/"),
		Aircraft:  v.GetString(KeyAircraft),
		Plugins:   v.GetStringSlice(KeyPlugins),
		LogLevel:  v.GetString(KeyLogLevel),
		Tray:      v.GetBool(KeyTray),
	}
	if c.Rate <= 0 {
		return Config{}, errors.Errorf("rate must be positive, got %v", c.Rate)
	}
	for _, s := range v.GetStringSlice(KeyDisplays) {
		r, err := ParseRect(s)
		if err != nil {
			return Config{}, err
		}
		c.Displays = append(c.Displays, r)
	}
	return c, nil
}

// ParseRect parses "x,y,width,height".
func ParseRect(s string) (inject.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return inject.Rect{}, errors.Errorf("display %q: want x,y,width,height", s)
	}
	var n [4]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return inject.Rect{}, errors.Wrapf(err, "display %q", s)
		}
		n[i] = v
	}
	if n[2] <= 0 || n[3] <= 0 {
		return inject.Rect{}, errors.Errorf("display %q: empty size", s)
	}
	return inject.Rect{X: n[0], Y: n[1], Width: n[2], Height: n[3]}, nil
}
