package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/ripple/pkg/platform"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name    string
		want    ebiten.Key
		wantErr bool
	}{
		{"P", ebiten.KeyP, false},
		{"p", ebiten.KeyP, false},
		{"F11", ebiten.KeyF11, false},
		{"Space", ebiten.KeySpace, false},
		{" Escape ", ebiten.KeyEscape, false},
		{"", 0, true},
		{"NoSuchKey", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseKey(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKey(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseKey(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error: %v", err)
	}
	if cfg.Shell.PauseLabel != "Pause bg" {
		t.Errorf("PauseLabel = %q, want default", cfg.Shell.PauseLabel)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "background.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func isolateStorage(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
}

func TestNewAppRejectsUnknownKey(t *testing.T) {
	isolateStorage(t)
	path := writeConfig(t, "controls:\n  pauseKey: \"Bogus\"\n")
	if _, err := NewApp(Config{ConfigPath: path}); err == nil {
		t.Error("NewApp accepted an unknown pause key")
	}
}

func TestNewAppToggleThroughShell(t *testing.T) {
	isolateStorage(t)
	path := writeConfig(t, "window:\n  title: \"Test\"\n")

	a, err := NewApp(Config{ConfigPath: path, Paused: true, DisableShader: true})
	if err != nil {
		t.Fatalf("NewApp error: %v", err)
	}
	if a.BackgroundConfig().Window.Title != "Test" {
		t.Errorf("title = %q, want Test", a.BackgroundConfig().Window.Title)
	}
	if !a.shell.Paused() {
		t.Fatal("-paused should start the shell paused")
	}

	// 背景挂载在惰性设备上
	a.mount()
	if a.bg.Active() {
		t.Error("background active without a shader device")
	}

	a.host.Layout(800, 600, 1)
	a.host.FlushResize()
	a.shell.Layout(a.host.ViewportSize())
	b := a.shell.Button()

	clicks := 0
	a.host.OnClick(func(platform.PointerEvent) { clicks++ })
	a.host.Pointer(b.X+1, b.Y+1, true)

	if a.shell.Paused() {
		t.Error("clicking the toggle should resume")
	}
	if clicks != 0 {
		t.Error("toggle click leaked to the background surface")
	}
	if a.Settings().GetSettings().Paused {
		t.Error("settings not updated after toggle")
	}

	a.Close()
	a.Close()
	if a.bg.Mounted() {
		t.Error("background still mounted after Close")
	}
}
