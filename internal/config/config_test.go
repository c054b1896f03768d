package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/soar/xgamepad/internal/inject"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != ":8080" || c.Rate != 60 || c.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.XPlaneURL != "" || len(c.Displays) != 0 {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xgamepad.toml")
	content := `listen = ":9000"
rate = 30
plugins = ["ivao.xivap"]
displays = ["0,0,1920,1080", "1920,0,1280,1024"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XGAMEPAD_XPLANE_URL", "http://localhost:8086/")

	c, err := Load([]string{"--config", path, "--rate", "120"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Listen != ":9000" {
		t.Errorf("listen = %q, want value from file", c.Listen)
	}
	if c.Rate != 120 {
		t.Errorf("rate = %v, want flag value", c.Rate)
	}
	if c.XPlaneURL != "http://localhost:8086" {
		t.Errorf("xplane url = %q", c.XPlaneURL)
	}
	if diff := cmp.Diff([]string{"ivao.xivap"}, c.Plugins); diff != "" {
		t.Errorf("plugins mismatch (-want +got):\n%s", diff)
	}
	want := []inject.Rect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1280, Height: 1024},
	}
	if diff := cmp.Diff(want, c.Displays); diff != "" {
		t.Errorf("displays mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, args := range [][]string{
		{"--rate", "0"},
		{"--displays", "0,0,1920"},
		{"--unknown"},
	} {
		if _, err := Load(args); err == nil {
			t.Errorf("Load(%v) succeeded", args)
		}
	}
}

func TestParseRect(t *testing.T) {
	tests := []struct {
		in      string
		want    inject.Rect
		wantErr bool
	}{
		{"0,0,1920,1080", inject.Rect{Width: 1920, Height: 1080}, false},
		{" -1280, 0, 1280, 1024", inject.Rect{X: -1280, Width: 1280, Height: 1024}, false},
		{"0,0,0,1080", inject.Rect{}, true},
		{"a,b,c,d", inject.Rect{}, true},
	}
	for _, tt := range tests {
		got, err := ParseRect(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRect(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRect(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
