// Package tui renders the dashboard and handles keyboard input.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"horizonx-top/internal/domain"
)

const (
	commandRefresh = 16 * time.Millisecond
	normalRefresh  = 100 * time.Millisecond
	outputLines    = 5
)

// State is the slice of the shared telemetry state the dashboard needs.
type State interface {
	Read() domain.View
	TogglePause() bool
}

type Runner interface {
	Run(ctx context.Context, input string) []string
}

type Options struct {
	ProcessLimit int
	NetworkLimit int
}

type tickMsg time.Time

type sortBy int

const (
	sortCPU sortBy = iota
	sortMemory
	sortPID
)

func (s sortBy) String() string {
	switch s {
	case sortMemory:
		return "Memory"
	case sortPID:
		return "PID"
	default:
		return "CPU"
	}
}

type tuiModel struct {
	ctx    context.Context
	state  State
	runner Runner
	opts   Options

	view    domain.View
	sortBy  sortBy
	network table.Model

	commandMode bool
	input       textinput.Model
	output      []string

	width  int
	height int
}

func newModel(ctx context.Context, state State, runner Runner, opts Options) tuiModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Width = 40

	m := tuiModel{
		ctx:    ctx,
		state:  state,
		runner: runner,
		opts:   opts,
		input:  ti,
	}
	m.initNetworkTable()
	m.refresh()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return m.tick()
}

func (m tuiModel) tick() tea.Cmd {
	interval := normalRefresh
	if m.commandMode {
		interval = commandRefresh
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh takes one copy of the shared state for the next frame.
func (m *tuiModel) refresh() {
	m.view = m.state.Read()
	m.updateNetworkRows()
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.commandMode {
			return m.updateCommand(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m tuiModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case ":":
		m.commandMode = true
		m.input.Reset()
		return m, m.input.Focus()
	case "c":
		m.sortBy = sortCPU
	case "m":
		m.sortBy = sortMemory
	case "p":
		m.sortBy = sortPID
	case " ", "s":
		m.state.TogglePause()
	}

	m.refresh()
	return m, nil
}

func (m tuiModel) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.output = m.runner.Run(m.ctx, m.input.Value())
		m.leaveCommandMode()
		m.refresh()
		return m, nil
	case "esc":
		m.leaveCommandMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) leaveCommandMode() {
	m.commandMode = false
	m.input.Reset()
	m.input.Blur()
}

func Run(ctx context.Context, state State, runner Runner, opts Options) error {
	p := tea.NewProgram(newModel(ctx, state, runner, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
