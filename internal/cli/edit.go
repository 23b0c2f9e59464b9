package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
	"github.com/matzehuels/graphsketch/pkg/render/canvas"
)

// Editor styles
var (
	editStatusOK    = lipgloss.NewStyle().Foreground(colorGreen)
	editStatusError = lipgloss.NewStyle().Foreground(colorRed)
	editPromptStyle = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	editFlagStyle   = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	editHeader = 1 // rows above the canvas
	editFooter = 2 // prompt/help and status rows

	editHelp = "click add·select·connect  hold drag  del delete  w weighted  d directed  n new  s save  r reload  q quit"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var weighted, directed bool

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive graph editor",
		Long: `Open the interactive graph editor in the terminal.

Click on empty space to add a node. Click a node to select it, then click
another node to connect the two. Press and hold a node to drag it. Click an
edge to select it; on weighted graphs, type a number and press enter to set
its weight.

If file is given it is loaded when it exists, and 's' saves to it. The
format follows the extension (.json, .yaml, .yml).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			var flags graph.FlagUpdate
			if cmd.Flags().Changed("weighted") {
				flags.Weighted = graph.Bool(weighted)
			}
			if cmd.Flags().Changed("directed") {
				flags.Directed = graph.Bool(directed)
			}
			return c.runEdit(cmd.Context(), path, flags)
		},
	}

	cmd.Flags().BoolVar(&weighted, "weighted", false, "start with a weighted graph")
	cmd.Flags().BoolVar(&directed, "directed", false, "start with a directed graph")

	return cmd
}

// redrawMsg asks the program to redraw after a change it did not cause,
// such as the dwell timer turning a press into a drag.
type redrawMsg struct{}

func (c *CLI) runEdit(ctx context.Context, path string, flags graph.FlagUpdate) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	snap := graph.Empty().SetFlags(graph.FlagUpdate{
		Weighted: graph.Bool(cfg.Editor.Weighted),
		Directed: graph.Bool(cfg.Editor.Directed),
	})
	if path != "" {
		s, err := readGraphFile(path)
		switch {
		case err == nil:
			snap = s
		case errors.Is(err, errors.ErrCodeFileNotFound):
			c.Logger.Debug("new file", "path", path)
		default:
			return err
		}
	}
	snap = snap.SetFlags(flags)

	editLog, closeLog := c.editLogger()
	defer closeLog()

	var prog atomic.Pointer[tea.Program]
	ctrl := interact.New(
		interact.WithSnapshot(snap),
		interact.WithDwell(cfg.Editor.Dwell.Duration),
		interact.WithLogger(editLog),
		interact.WithOnChange(func() {
			if p := prog.Load(); p != nil {
				p.Send(redrawMsg{})
			}
		}),
	)
	defer ctrl.Close()

	p := tea.NewProgram(
		newEditModel(ctrl, path, cfg.Editor.NodeRadius),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	prog.Store(p)

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run editor: %w", err)
	}
	return nil
}

// editLogger returns the logger for the editor. The terminal belongs to
// the editor while it runs, so debug output goes to a file in the cache
// directory instead.
func (c *CLI) editLogger() (*log.Logger, func()) {
	discard := func() {}
	if c.Logger.GetLevel() > log.DebugLevel {
		return newLogger(io.Discard, log.InfoLevel), discard
	}
	dir, err := cacheDir()
	if err != nil {
		return newLogger(io.Discard, log.InfoLevel), discard
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, log.InfoLevel), discard
	}
	path := filepath.Join(dir, "edit.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return newLogger(io.Discard, log.InfoLevel), discard
	}
	c.Logger.Debug("editor log", "path", path)
	return newLogger(f, log.DebugLevel), func() { f.Close() }
}

// =============================================================================
// editModel - bubbletea model around an interaction controller
// =============================================================================

type editModel struct {
	ctrl   *interact.Controller
	canvas *canvas.Canvas
	path   string

	weight string // weight prompt input
	status string
	failed bool
}

func newEditModel(ctrl *interact.Controller, path string, radius float64) editModel {
	return editModel{
		ctrl:   ctrl,
		canvas: canvas.New(80, 20, radius),
		path:   path,
	}
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height-editHeader-editFooter)
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.KeyMsg:
		return m.key(msg)
	case redrawMsg:
	}
	return m, nil
}

func (m *editModel) mouse(msg tea.MouseMsg) {
	w, h := m.canvas.Size()
	row := msg.Y - editHeader
	pos := graph.Point{
		X: float64(min(max(msg.X, 0), w-1)),
		Y: float64(min(max(row, 0), h-1)),
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || row < 0 || row >= h {
			return
		}
		m.weight = ""
		m.ctrl.PointerDown(pos, m.canvas.HitTest(pos))
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(pos)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp(pos)
	}
}

func (m editModel) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()

	if _, pending := m.ctrl.PendingWeightEdit(); pending {
		switch {
		case k == "enter":
			m.submitWeight()
			return m, nil
		case k == "esc":
			m.ctrl.CancelWeight()
			m.weight = ""
			return m, nil
		case k == "backspace" && m.weight != "":
			m.weight = m.weight[:len(m.weight)-1]
			return m, nil
		case len(k) == 1 && strings.Contains("0123456789.-", k):
			m.weight += k
			return m, nil
		}
	}

	switch k {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.ctrl.KeyPress(interact.KeyEscape)
	case "delete", "backspace", "x":
		m.ctrl.KeyPress(interact.KeyDelete)
	case "w":
		on := !m.ctrl.Graph().Weighted()
		m.ctrl.SetWeighted(on)
		m.report(nil, "weighted: %t", on)
	case "d":
		on := !m.ctrl.Graph().Directed()
		m.ctrl.SetDirected(on)
		m.report(nil, "directed: %t", on)
	case "n":
		m.ctrl.Reset()
		m.report(nil, "new graph")
	case "s":
		m.save()
	case "r":
		m.reload()
	}
	return m, nil
}

func (m *editModel) submitWeight() {
	input := m.weight
	m.weight = ""
	w, err := strconv.ParseFloat(input, 64)
	if err != nil {
		m.report(errors.New(errors.ErrCodeInvalidWeight, "%q is not a number", input), "")
		return
	}
	m.report(m.ctrl.SubmitWeight(w), "weight set to %g", w)
}

func (m *editModel) save() {
	if m.path == "" {
		m.report(errors.New(errors.ErrCodeInvalidPath, "no file; start with %s edit <file>", appName), "")
		return
	}
	m.report(writeGraphFile(m.ctrl.Graph(), m.path), "saved %s", m.path)
}

func (m *editModel) reload() {
	if m.path == "" {
		m.report(errors.New(errors.ErrCodeInvalidPath, "no file to reload"), "")
		return
	}
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.report(errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", m.path), "")
		return
	}
	m.report(m.ctrl.Import(formatFromPath(m.path), data), "loaded %s", m.path)
}

// report sets the status line to err, or to the formatted message when
// err is nil.
func (m *editModel) report(err error, format string, args ...any) {
	if err != nil {
		m.status, m.failed = errors.UserMessage(err), true
		return
	}
	m.status, m.failed = fmt.Sprintf(format, args...), false
}

func (m editModel) View() string {
	v := m.ctrl.View()
	m.canvas.Draw(v)

	var b strings.Builder
	b.WriteString(m.header(v))
	b.WriteByte('\n')
	b.WriteString(m.canvas.String())
	b.WriteByte('\n')
	if id, ok := m.ctrl.PendingWeightEdit(); ok {
		e, _ := v.Graph.Edge(id)
		b.WriteString(editPromptStyle.Render(fmt.Sprintf("weight of edge %d (%g): ", id, e.W)))
		b.WriteString(StyleValue.Render(m.weight + "▏"))
	} else {
		b.WriteString(StyleDim.Render(editHelp))
	}
	b.WriteByte('\n')
	switch {
	case m.status == "":
	case m.failed:
		b.WriteString(editStatusError.Render(iconError + " " + m.status))
	default:
		b.WriteString(editStatusOK.Render(iconSuccess + " " + m.status))
	}
	return b.String()
}

func (m editModel) header(v interact.View) string {
	parts := []string{StyleTitle.Render(appName)}
	if m.path != "" {
		parts = append(parts, StyleDim.Render(m.path))
	}
	if v.Graph.Weighted() {
		parts = append(parts, editFlagStyle.Render("weighted"))
	}
	if v.Graph.Directed() {
		parts = append(parts, editFlagStyle.Render("directed"))
	}
	parts = append(parts,
		StyleHighlight.Render(v.State.String()),
		StyleDim.Render(fmt.Sprintf("%d nodes · %d edges", v.Graph.NodeCount(), v.Graph.EdgeCount())),
	)
	return strings.Join(parts, "  ")
}
