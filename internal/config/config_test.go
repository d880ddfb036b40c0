package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/cellui/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/tools/dashboard/v2\n\ngo 1.24\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "dashboard" {
		t.Errorf("Title = %q, want %q", r.Title, "dashboard")
	}
	if r.ModulePath != "example.com/tools/dashboard/v2" {
		t.Errorf("ModulePath = %q", r.ModulePath)
	}
	if r.Host != HostTcell || r.FPS != DefaultFPS || r.Mouse != MouseDrag {
		t.Errorf("unexpected defaults: %+v", r)
	}
	if !r.Paste || !r.Focus || !r.AltScreen {
		t.Errorf("terminal features should default on: %+v", r)
	}
	if r.Source != "" {
		t.Errorf("Source = %q, want empty", r.Source)
	}
}

func TestResolveWithoutModule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "scratch" {
		t.Errorf("Title = %q, want directory name", r.Title)
	}
}

func TestResolveYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cellui.yaml", `
app:
  title: Monitor
  host: bubbletea
  fps: 30
terminal:
  mouse: motion
  paste: false
debug:
  addr: 127.0.0.1:9339
  hud: true
log:
  file: /tmp/cellui.log
  level: debug
`)

	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := Resolved{
		Root:      dir,
		Source:    filepath.Join(dir, "cellui.yaml"),
		Title:     "Monitor",
		Host:      HostBubbletea,
		FPS:       30,
		Mouse:     MouseMotion,
		Paste:     false,
		Focus:     true,
		AltScreen: true,
		DebugAddr: "127.0.0.1:9339",
		HUD:       true,
		LogFile:   "/tmp/cellui.log",
		LogLevel:  "debug",
	}
	if *r != want {
		t.Errorf("Resolve() =\n%+v\nwant\n%+v", *r, want)
	}
}

func TestResolveTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cellui.toml", `
[app]
title = "Monitor"

[terminal]
mouse = "buttons"
alt_screen = false
`)

	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Monitor" || r.Mouse != MouseButtons || r.AltScreen {
		t.Errorf("unexpected resolve: %+v", r)
	}
}

func TestYAMLTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cellui.yaml", "app:\n  title: from-yaml\n")
	writeFile(t, dir, "cellui.toml", "[app]\ntitle = \"from-toml\"\n")

	r, err := Resolve(dir)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "from-yaml" {
		t.Errorf("Title = %q, want from-yaml", r.Title)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		data   string
		format string
	}{
		{"unknown yaml key", "cellui.yaml", "app:\n  colour: red\n", "yaml"},
		{"unknown toml key", "cellui.toml", "[app]\ncolour = \"red\"\n", "toml"},
		{"bad toml", "cellui.toml", "[app\n", "toml"},
		{"unsupported", "cellui.json", "{}", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.file, []byte(tt.data))
			var ce *errors.ConfigError
			if !stderrors.As(err, &ce) {
				t.Fatalf("Parse() error = %v, want *ConfigError", err)
			}
			if ce.Format != tt.format {
				t.Errorf("Format = %q, want %q", ce.Format, tt.format)
			}
		})
	}
}

func TestParseEmptyYAML(t *testing.T) {
	cfg, err := Parse("cellui.yaml", nil)
	if err != nil {
		t.Fatalf("empty yaml: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("empty yaml decoded to %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"host", Config{App: AppConfig{Host: "curses"}}},
		{"mouse", Config{Terminal: TerminalConfig{Mouse: "all"}}},
		{"fps", Config{App: AppConfig{FPS: 1000}}},
		{"level", Config{Log: LogConfig{Level: "trace"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.cfg.Resolve(t.TempDir(), ""); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
