// Package tui is the terminal front end: a start dialog, then side-by-side
// panes for the original, rewritten and debug channels above a command line.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Manto/llm-if-wrapper/internal/session"
)

const (
	focusDelay  = 150 * time.Millisecond
	scrollLines = 8
)

type Options struct {
	Gateway      Gateway
	Logger       *slog.Logger
	Selection    session.Settings
	PollInterval time.Duration
	Warm         bool
}

type Model struct {
	gateway Gateway
	logger  *slog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	warm    bool

	dispatcher *session.Dispatcher
	tailer     *session.Tailer
	visibility *session.Visibility
	dialog     startDialog

	width      int
	height     int
	statusLine string
	statusErr  bool
	quitting   bool

	keys      keyMap
	help      help.Model
	input     textinput.Model
	spinner   spinner.Model
	viewports map[session.Channel]*viewport.Model

	theme uiTheme
}

func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "❯ "
	input.Placeholder = "What do you do next?"
	input.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#05ffa1"))

	viewports := make(map[session.Channel]*viewport.Model, 3)
	for _, channel := range session.Channels() {
		vp := viewport.New(0, 0)
		vp.MouseWheelEnabled = true
		vp.MouseWheelDelta = 4
		viewports[channel] = &vp
	}

	streams := session.NewStreams()
	return Model{
		gateway:    opts.Gateway,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		warm:       opts.Warm,
		dispatcher: session.NewDispatcher(streams),
		tailer:     session.NewTailer(streams, opts.PollInterval),
		visibility: session.NewVisibility(),
		dialog:     newStartDialog(opts.Selection),
		statusLine: "pick a game, a tone and a provider",
		keys:       newKeyMap(),
		help:       help.New(),
		input:      input,
		spinner:    sp,
		viewports:  viewports,
		theme:      newTheme(),
	}
}

// Close stops log polling and aborts every outstanding request.
func (m Model) Close() {
	m.tailer.Stop()
	m.cancel()
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.warm {
		cmds = append(cmds, m.warmCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case warmDoneMsg:
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.logger.Warn("warm inference failed", "error", msg.err)
		}
	case startDoneMsg:
		if err := m.dispatcher.FinishStart(msg.resp, msg.err); err != nil {
			m.logError("start failed", err)
			break
		}
		s := m.dispatcher.Session()
		m.logger.Info("session started", "session_id", s.ID, "game", s.GameID, "tone", s.Tone, "provider", s.Provider)
		m.setStatus(fmt.Sprintf("ready · session=%s", s.ID))
		cmds = append(cmds, m.input.Focus(), m.tailCmd())
		m.renderPanes()
	case commandDoneMsg:
		cmds = append(cmds, m.finishCommand(msg))
	case tailTickMsg:
		if m.tailer.Holds(msg.lease) && m.dispatcher.Phase() == session.PhaseBusy {
			cmds = append(cmds, m.tailCmd(), tailTick(m.tailer.Interval(), msg.lease))
		}
	case tailDoneMsg:
		if msg.err != nil {
			if m.tailer.Outdated(msg.seq) {
				m.logger.Debug("stale log tail failure discarded", "seq", msg.seq, "error", msg.err)
				break
			}
			if !errors.Is(msg.err, context.Canceled) {
				m.logError("log tail failed", msg.err)
			}
			break
		}
		if m.tailer.Apply(msg.seq, msg.log) {
			m.renderPanes()
		} else {
			m.logger.Debug("stale log tail discarded", "seq", msg.seq)
		}
	case focusInputMsg:
		if m.dispatcher.Phase() == session.PhaseIdle {
			cmds = append(cmds, m.input.Focus())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(20, m.width-12)
		m.help.Width = max(20, m.width-8)
		m.renderPanes()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	case tea.MouseMsg:
		if !m.dispatcher.Phase().Active() {
			break
		}
		for _, channel := range m.visibility.Shown() {
			vp := m.viewports[channel]
			var cmd tea.Cmd
			*vp, cmd = vp.Update(msg)
			cmds = append(cmds, cmd)
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.Close()
			return m, tea.Quit
		}
		if m.dispatcher.Phase().Active() {
			cmds = append(cmds, m.updateActive(msg))
		} else {
			if quit := m.updateDialog(msg); quit {
				m.quitting = true
				m.Close()
				return m, tea.Quit
			}
			if m.dispatcher.Phase() == session.PhaseUnconfigured && key.Matches(msg, m.keys.Start) {
				cmds = append(cmds, m.startSession())
			}
		}
	}
	return m, tea.Batch(cmds...)
}

// updateDialog handles keys before a session exists and reports whether the
// user asked to leave.
func (m *Model) updateDialog(msg tea.KeyMsg) bool {
	if m.dispatcher.Phase() == session.PhaseStarting {
		return false
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return true
	case key.Matches(msg, m.keys.FieldUp):
		m.dialog.moveField(-1)
	case key.Matches(msg, m.keys.FieldDown):
		m.dialog.moveField(1)
	case key.Matches(msg, m.keys.OptPrev):
		m.dialog.cycle(-1)
	case key.Matches(msg, m.keys.OptNext):
		m.dialog.cycle(1)
	}
	return false
}

func (m *Model) updateActive(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ToggleOriginal):
		m.toggle(session.ChannelOriginal)
	case key.Matches(msg, m.keys.ToggleRewritten):
		m.toggle(session.ChannelRewritten)
	case key.Matches(msg, m.keys.ToggleDebug):
		m.toggle(session.ChannelDebug)
	case key.Matches(msg, m.keys.ScrollUp):
		m.scroll(-scrollLines)
	case key.Matches(msg, m.keys.ScrollDown):
		m.scroll(scrollLines)
	case key.Matches(msg, m.keys.Submit):
		return m.submitCommand()
	default:
		if m.dispatcher.Phase() == session.PhaseBusy {
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) startSession() tea.Cmd {
	req, err := m.dispatcher.BeginStart(m.dialog.selected)
	if err != nil {
		m.logError("start rejected", err)
		return nil
	}
	m.setStatus("starting " + req.GameID + "...")
	return m.startCmd(req)
}

// submitCommand claims the command slot, disables the input and starts log
// polling for as long as the command is out.
func (m *Model) submitCommand() tea.Cmd {
	sent, err := m.dispatcher.BeginCommand(m.input.Value())
	switch {
	case errors.Is(err, session.ErrEmptyCommand):
		m.input.SetValue("")
		return nil
	case err != nil:
		m.logError("command rejected", err)
		return nil
	}
	m.input.Blur()
	m.setStatus("> " + sent)
	cmds := []tea.Cmd{m.commandCmd(m.dispatcher.Session().ID, sent)}
	if lease, started := m.tailer.Start(); started {
		cmds = append(cmds, tailTick(m.tailer.Interval(), lease))
	}
	return tea.Batch(cmds...)
}

// finishCommand returns to idle on every outcome: polling stops, the input is
// cleared and focus comes back once the redraw settles. One last tail picks up
// whatever the finished command wrote to the log.
func (m *Model) finishCommand(msg commandDoneMsg) tea.Cmd {
	err := m.dispatcher.FinishCommand(msg.resp, msg.err)
	m.tailer.Stop()
	m.input.SetValue("")
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		m.logError("command failed", err)
	} else {
		m.setStatus(fmt.Sprintf("ready · session=%s", m.dispatcher.Session().ID))
	}
	m.renderPanes()
	return tea.Batch(focusAfter(focusDelay), m.tailCmd())
}

func (m *Model) toggle(channel session.Channel) {
	shown, err := m.visibility.Toggle(channel)
	if err != nil {
		m.logError("toggle failed", err)
		return
	}
	if shown {
		m.setStatus(channel.String() + " shown")
	} else {
		m.setStatus(channel.String() + " hidden")
	}
	m.renderPanes()
}

func (m *Model) setStatus(line string) {
	m.statusLine = line
	m.statusErr = false
}

func (m *Model) logError(prefix string, err error) {
	if err == nil {
		return
	}
	m.logger.Error(prefix, "error", err, "phase", m.dispatcher.Phase().String())
	m.statusLine = prefix + ": " + compactSingleLine(err.Error(), 160)
	m.statusErr = true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.dispatcher.Phase().Active() {
		return m.theme.root.Render(m.renderDialog())
	}
	return m.theme.root.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderInput(),
		m.renderFooter(),
	))
}
