// Package teahost runs an app as a Bubble Tea model. The engine paints into
// a surface and the model's View renders that surface with lipgloss styles,
// so a cellui app can run under Bubble Tea's renderer or be embedded in a
// larger Bubble Tea program.
package teahost

import (
	"context"
	stderrors "errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/cellui/internal/logger"
	"github.com/go-drift/cellui/pkg/core"
	"github.com/go-drift/cellui/pkg/engine"
	"github.com/go-drift/cellui/pkg/errors"
	"github.com/go-drift/cellui/pkg/event"
	"github.com/go-drift/cellui/pkg/geom"
	"github.com/go-drift/cellui/pkg/paint"
	"github.com/go-drift/cellui/pkg/terminal"
)

// Options configures a Model and the program Run starts for it.
type Options struct {
	Title string
	Mouse terminal.MouseMode
	Focus bool
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
	FPS       int
	// QuitKeys end the program when no widget sinks them. Nil means
	// terminal.DefaultQuitKeys.
	QuitKeys []event.Keybind
}

type tickMsg struct{ at time.Time }

type wakeMsg struct{}

// Model adapts an engine driver to tea.Model.
type Model struct {
	driver *engine.Driver
	opts   Options
	ptr    pointer

	view    string
	tickAt  time.Time
	ticking bool

	log *slog.Logger
}

var _ tea.Model = (*Model)(nil)

// New returns a model for build. It has no size until the first
// tea.WindowSizeMsg.
func New(build func(ui *core.UI), opts Options) *Model {
	if opts.QuitKeys == nil {
		opts.QuitKeys = terminal.DefaultQuitKeys
	}
	return &Model{
		driver: engine.NewDriver(core.New(geom.Rect{}), build, opts.FPS),
		opts:   opts,
		log:    logger.WithComponent("teahost"),
	}
}

// Driver returns the frame driver.
func (m *Model) Driver() *engine.Driver { return m.driver }

// Engine returns the driven engine.
func (m *Model) Engine() *core.Engine { return m.driver.Engine() }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.opts.Title != "" {
		cmds = append(cmds, tea.SetWindowTitle(m.opts.Title))
	}
	cmds = append(cmds, m.waitWake(), m.step())
	return tea.Batch(cmds...)
}

// waitWake turns driver dispatches into messages.
func (m *Model) waitWake() tea.Cmd {
	wake := m.driver.Wake()
	return func() tea.Msg {
		<-wake
		return wakeMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var extra tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.driver.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		for _, ev := range translateKey(msg) {
			sunk := m.driver.Handle(ev)
			if kp, ok := ev.(event.KeyPress); ok && !sunk && m.isQuitKey(kp) {
				m.log.Info("quit key", "key", kp)
				return m, tea.Quit
			}
		}
	case tea.MouseMsg:
		for _, ev := range m.ptr.translate(msg) {
			m.driver.Handle(ev)
		}
	case tea.FocusMsg:
		m.driver.Handle(event.Focus{Gained: true})
	case tea.BlurMsg:
		m.driver.Handle(event.Focus{Gained: false})
	case tickMsg:
		if msg.at.Equal(m.tickAt) {
			m.ticking = false
		}
	case wakeMsg:
		extra = m.waitWake()
	}
	if m.driver.Engine().QuitRequested() {
		return m, tea.Quit
	}
	return m, tea.Batch(m.step(), extra)
}

func (m *Model) isQuitKey(kp event.KeyPress) bool {
	return slices.ContainsFunc(m.opts.QuitKeys, func(b event.Keybind) bool { return b.Matches(kp) })
}

// step runs a frame if one is due and schedules the next wake-up.
func (m *Model) step() tea.Cmd {
	_, commands := m.driver.Step(m.flush)

	var cmds []tea.Cmd
	for _, c := range commands {
		if c.Kind == core.CommandSetTitle {
			cmds = append(cmds, tea.SetWindowTitle(c.Title))
		}
	}
	if m.driver.Engine().QuitRequested() {
		m.log.Info("quit requested")
		return tea.Sequence(append(cmds, tea.Quit)...)
	}

	if d, ok := m.driver.NextWake(); ok {
		at := time.Now().Add(d)
		if !m.ticking || at.Before(m.tickAt) {
			m.ticking = true
			m.tickAt = at
			cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{at: at} }))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) flush(s *paint.Surface) {
	m.view = Render(s)
}

// View implements tea.Model.
func (m *Model) View() string { return m.view }

// Render formats a surface as styled lines, one per row. Runs of cells with
// the same style are rendered together.
func Render(s *paint.Surface) string {
	size := s.Size()
	var b strings.Builder
	var run strings.Builder
	for y := 0; y < size.Y; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var style paint.Style
		for x := 0; x < size.X; x++ {
			c := s.At(geom.Pos{X: x, Y: y})
			if c.Continuation {
				continue
			}
			if c.Style != style && run.Len() > 0 {
				b.WriteString(renderRun(run.String(), style))
				run.Reset()
			}
			style = c.Style
			run.WriteString(c.Text())
		}
		if run.Len() > 0 {
			b.WriteString(renderRun(run.String(), style))
			run.Reset()
		}
	}
	return b.String()
}

func renderRun(text string, s paint.Style) string {
	if s == (paint.Style{}) {
		return text
	}
	return lipglossStyle(s).Render(text)
}

func lipglossColor(c paint.Color) lipgloss.TerminalColor {
	if c.IsReset() {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c.Code())
}

func lipglossStyle(s paint.Style) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipglossColor(s.Fg)).
		Background(lipglossColor(s.Bg)).
		Bold(s.Attrs&paint.AttrBold != 0).
		Faint(s.Attrs&paint.AttrDim != 0).
		Italic(s.Attrs&paint.AttrItalic != 0).
		Underline(s.Attrs&paint.AttrUnderline != 0).
		Reverse(s.Attrs&paint.AttrReverse != 0).
		Strikethrough(s.Attrs&paint.AttrStrike != 0)
}

// ProgramOptions returns the tea.Program options matching opts.
func ProgramOptions(ctx context.Context, opts Options) []tea.ProgramOption {
	out := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		out = append(out, tea.WithAltScreen())
	}
	switch opts.Mouse {
	case terminal.MouseButtons, terminal.MouseDrag:
		out = append(out, tea.WithMouseCellMotion())
	case terminal.MouseMotion:
		out = append(out, tea.WithMouseAllMotion())
	}
	if opts.Focus {
		out = append(out, tea.WithReportFocus())
	}
	if opts.FPS > 0 {
		out = append(out, tea.WithFPS(opts.FPS))
	}
	return out
}

// Run runs build under a Bubble Tea program until it quits or ctx is done.
func Run(ctx context.Context, build func(ui *core.UI), opts Options, extra ...tea.ProgramOption) error {
	m := New(build, opts)
	p := tea.NewProgram(m, append(ProgramOptions(ctx, opts), extra...)...)
	_, err := p.Run()
	if err == nil || (ctx.Err() != nil && stderrors.Is(err, tea.ErrProgramKilled)) {
		return nil
	}
	return errors.Wrap("teahost.Run", errors.KindTerminal, err)
}
