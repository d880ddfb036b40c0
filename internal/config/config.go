// Package config loads the optional cellui.yaml / cellui.toml project file
// and resolves it against defaults.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/errors"
)

// FileNames are the config files searched for, in order.
var FileNames = []string{"cellui.yaml", "cellui.yml", "cellui.toml"}

// Config mirrors the config file.
type Config struct {
	App      AppConfig      `yaml:"app" toml:"app"`
	Terminal TerminalConfig `yaml:"terminal" toml:"terminal"`
	Debug    DebugConfig    `yaml:"debug" toml:"debug"`
	Log      LogConfig      `yaml:"log" toml:"log"`
}

// AppConfig contains application settings.
type AppConfig struct {
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`
	// Host is "tcell" or "bubbletea".
	Host string `yaml:"host,omitempty" toml:"host,omitempty"`
	FPS  int    `yaml:"fps,omitempty" toml:"fps,omitempty"`
}

// TerminalConfig contains terminal feature toggles. Nil means the default.
type TerminalConfig struct {
	// Mouse is "off", "buttons", "drag" or "motion".
	Mouse     string `yaml:"mouse,omitempty" toml:"mouse,omitempty"`
	Paste     *bool  `yaml:"paste,omitempty" toml:"paste,omitempty"`
	Focus     *bool  `yaml:"focus,omitempty" toml:"focus,omitempty"`
	AltScreen *bool  `yaml:"alt_screen,omitempty" toml:"alt_screen,omitempty"`
}

// DebugConfig configures the debug server.
type DebugConfig struct {
	// Addr enables the debug HTTP server when set, e.g. "127.0.0.1:9339".
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty"`
	// HUD draws frame statistics over the app.
	HUD bool `yaml:"hud,omitempty" toml:"hud,omitempty"`
}

// LogConfig configures the log file.
type LogConfig struct {
	File  string `yaml:"file,omitempty" toml:"file,omitempty"`
	Level string `yaml:"level,omitempty" toml:"level,omitempty"`
}

// MouseMode selects how much pointer reporting the terminal is asked for.
type MouseMode string

const (
	MouseOff     MouseMode = "off"
	MouseButtons MouseMode = "buttons"
	MouseDrag    MouseMode = "drag"
	MouseMotion  MouseMode = "motion"
)

// Host names a terminal backend.
type Host string

const (
	HostTcell     Host = "tcell"
	HostBubbletea Host = "bubbletea"
)

// Defaults.
const (
	DefaultFPS   = 60
	DefaultTitle = "cellui"
)

// Resolved contains resolved configuration values.
type Resolved struct {
	Root       string `yaml:"root" json:"root"`
	Source     string `yaml:"source,omitempty" json:"source,omitempty"`
	ModulePath string `yaml:"module_path,omitempty" json:"module_path,omitempty"`

	Title     string    `yaml:"title" json:"title"`
	Host      Host      `yaml:"host" json:"host"`
	FPS       int       `yaml:"fps" json:"fps"`
	Mouse     MouseMode `yaml:"mouse" json:"mouse"`
	Paste     bool      `yaml:"paste" json:"paste"`
	Focus     bool      `yaml:"focus" json:"focus"`
	AltScreen bool      `yaml:"alt_screen" json:"alt_screen"`
	DebugAddr string    `yaml:"debug_addr,omitempty" json:"debug_addr,omitempty"`
	HUD       bool      `yaml:"hud" json:"hud"`
	LogFile   string    `yaml:"log_file,omitempty" json:"log_file,omitempty"`
	LogLevel  string    `yaml:"log_level" json:"log_level"`
}

// SlogLevel returns LogLevel as a slog level.
func (r *Resolved) SlogLevel() slog.Level {
	return logger.ParseLevel(r.LogLevel)
}

// Load reads the config file at path. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap("config.Load", errors.KindConfig, err)
	}
	return Parse(path, data)
}

// Parse decodes data as YAML or TOML depending on the extension of name.
// Unknown keys are an error.
func Parse(name string, data []byte) (*Config, error) {
	var cfg Config
	switch format := formatOf(name); format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return nil, &errors.ConfigError{Path: name, Format: format, Err: err}
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return nil, &errors.ConfigError{Path: name, Format: format, Err: err}
		}
	default:
		return nil, &errors.ConfigError{Path: name, Format: format, Err: fmt.Errorf("unsupported config extension %q", filepath.Ext(name))}
	}
	return &cfg, nil
}

// LoadOptional reads the first config file found in dir. It returns an
// empty config and an empty path when there is none.
func LoadOptional(dir string) (*Config, string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			if stderrors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", errors.Wrap("config.LoadOptional", errors.KindConfig, err)
		}
		cfg, err := Load(path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}
	return &Config{}, "", nil
}

// Resolve loads the config file in dir (if present) and resolves defaults.
// The title defaults to the last element of the go.mod module path, or to
// the directory name outside a module.
func Resolve(dir string) (*Resolved, error) {
	cfg, source, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve(dir, source)
}

// Resolve fills defaults for a config loaded from source in dir.
func (cfg *Config) Resolve(dir, source string) (*Resolved, error) {
	modPath, err := modulePath(dir)
	if err != nil {
		logger.WithComponent("config").Debug("no module path", "dir", dir, "error", err)
	}

	r := &Resolved{
		Root:       dir,
		Source:     source,
		ModulePath: modPath,
		Title:      strings.TrimSpace(cfg.App.Title),
		Host:       Host(strings.ToLower(strings.TrimSpace(cfg.App.Host))),
		FPS:        cfg.App.FPS,
		Mouse:      MouseMode(strings.ToLower(strings.TrimSpace(cfg.Terminal.Mouse))),
		Paste:      boolOr(cfg.Terminal.Paste, true),
		Focus:      boolOr(cfg.Terminal.Focus, true),
		AltScreen:  boolOr(cfg.Terminal.AltScreen, true),
		DebugAddr:  strings.TrimSpace(cfg.Debug.Addr),
		HUD:        cfg.Debug.HUD,
		LogFile:    strings.TrimSpace(cfg.Log.File),
		LogLevel:   strings.ToLower(strings.TrimSpace(cfg.Log.Level)),
	}
	if r.Title == "" {
		r.Title = defaultTitle(modPath, dir)
	}
	if r.Host == "" {
		r.Host = HostTcell
	}
	if r.FPS == 0 {
		r.FPS = DefaultFPS
	}
	if r.Mouse == "" {
		r.Mouse = MouseDrag
	}
	if r.LogLevel == "" {
		r.LogLevel = "info"
	}

	if err := r.validate(); err != nil {
		return nil, &errors.ConfigError{Path: source, Format: formatOf(source), Err: err}
	}
	return r, nil
}

func (r *Resolved) validate() error {
	switch r.Host {
	case HostTcell, HostBubbletea:
	default:
		return fmt.Errorf("app.host must be tcell or bubbletea (got %q)", r.Host)
	}
	switch r.Mouse {
	case MouseOff, MouseButtons, MouseDrag, MouseMotion:
	default:
		return fmt.Errorf("terminal.mouse must be off, buttons, drag or motion (got %q)", r.Mouse)
	}
	if r.FPS < 1 || r.FPS > 240 {
		return fmt.Errorf("app.fps must be between 1 and 240 (got %d)", r.FPS)
	}
	switch r.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error (got %q)", r.LogLevel)
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
// Outside a module it returns the current directory.
func FindProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return wd, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultTitle(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		prefix, _, ok := module.SplitPathVersion(modulePath)
		if ok {
			parts := strings.Split(prefix, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return DefaultTitle
	}
	return base
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	case "":
		return ""
	default:
		return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	}
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
