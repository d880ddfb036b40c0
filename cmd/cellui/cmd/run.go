package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/cellui/cmd/cellui/internal/demo"
	"github.com/go-drift/cellui/internal/config"
	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/debug"
	"github.com/go-drift/cellui/pkg/engine"
	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/paint"
	"github.com/go-drift/cellui/pkg/teahost"
	"github.com/go-drift/cellui/pkg/terminal"
)

var (
	runHost      string
	runFPS       int
	runMouse     string
	runDebugAddr string
	runHUD       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the demo app in this terminal",
	Long: `Run the demo app full screen.

Settings come from cellui.yaml or cellui.toml in the project directory;
flags override them. With --debug-addr the debug server exposes the live
tree, layers, debug messages and frame timings over HTTP.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&runHost, "host", "", "terminal backend: tcell or bubbletea")
	f.IntVar(&runFPS, "fps", 0, "frame rate cap")
	f.StringVar(&runMouse, "mouse", "", "mouse reporting: off, buttons, drag or motion")
	f.StringVar(&runDebugAddr, "debug-addr", "", "serve the debug API on this address")
	f.BoolVar(&runHUD, "hud", false, "draw frame statistics over the app")
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.App.Host = runHost
	}
	if flags.Changed("fps") {
		cfg.App.FPS = runFPS
	}
	if flags.Changed("mouse") {
		cfg.Terminal.Mouse = runMouse
	}
	if flags.Changed("debug-addr") {
		cfg.Debug.Addr = runDebugAddr
	}
	if flags.Changed("hud") {
		cfg.Debug.HUD = runHUD
	}
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.Wrap("cellui.run", errors.KindTerminal, fmt.Errorf("stdout is not a terminal"))
	}

	r, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := startLogging(r)
	if err != nil {
		return err
	}
	defer closeLog()
	log := logger.WithComponent("cli")
	log.Info("starting", "host", r.Host, "fps", r.FPS, "mouse", r.Mouse, "config", r.Source)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := demo.New(r.Title)
	switch r.Host {
	case config.HostBubbletea:
		opts := teahost.Options{
			Title:     r.Title,
			Mouse:     mouseMode(r.Mouse),
			Focus:     r.Focus,
			AltScreen: r.AltScreen,
			FPS:       r.FPS,
		}
		m := teahost.New(app.Build, opts)
		srv, err := startDebug(r, m.Driver())
		if err != nil {
			return err
		}
		defer srv.Stop()
		if _, err := tea.NewProgram(m, teahost.ProgramOptions(ctx, opts)...).Run(); err != nil && ctx.Err() == nil {
			return errors.Wrap("cellui.run", errors.KindTerminal, err)
		}
		return nil
	default:
		host, err := terminal.New(nil, terminal.Options{
			Title: r.Title,
			Mouse: mouseMode(r.Mouse),
			Paste: r.Paste,
			Focus: r.Focus,
			FPS:   r.FPS,
		}, app.Build)
		if err != nil {
			return err
		}
		srv, err := startDebug(r, host.Driver())
		if err != nil {
			return err
		}
		defer srv.Stop()
		return host.Run(ctx)
	}
}

// startDebug starts the debug server when an address is configured and
// publishes every frame to it. It returns a stopped server otherwise.
func startDebug(r *config.Resolved, d *engine.Driver) (*debug.Server, error) {
	if r.HUD {
		d.ShowHUD(nil)
	}
	srv := debug.NewServer()
	if r.DebugAddr == "" {
		return srv, nil
	}
	srv.SetTrace(d.Trace())
	if _, err := srv.Start(r.DebugAddr); err != nil {
		return nil, err
	}
	d.OnFrame(func(e *core.Engine, _ *paint.Surface) {
		srv.Publish(e.Snapshot(), e.DebugMessages())
	})
	return srv, nil
}

func mouseMode(m config.MouseMode) terminal.MouseMode {
	switch m {
	case config.MouseOff:
		return terminal.MouseOff
	case config.MouseButtons:
		return terminal.MouseButtons
	case config.MouseMotion:
		return terminal.MouseMotion
	default:
		return terminal.MouseDrag
	}
}
