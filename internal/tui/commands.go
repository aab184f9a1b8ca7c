package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Manto/llm-if-wrapper/internal/gateway"
)

// Gateway is the subset of the remote service the client drives.
type Gateway interface {
	Start(ctx context.Context, req gateway.StartRequest) (gateway.StartResponse, error)
	Command(ctx context.Context, sessionID, input string) (gateway.CommandResponse, error)
	TailLog(ctx context.Context, sessionID string) (string, error)
	Warm(ctx context.Context) error
}

type warmDoneMsg struct {
	err error
}

type startDoneMsg struct {
	resp gateway.StartResponse
	err  error
}

type commandDoneMsg struct {
	resp gateway.CommandResponse
	err  error
}

type tailDoneMsg struct {
	seq uint64
	log string
	err error
}

type tailTickMsg struct {
	lease uint64
}

type focusInputMsg struct{}

func (m Model) warmCmd() tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	return func() tea.Msg {
		return warmDoneMsg{err: gw.Warm(ctx)}
	}
}

func (m Model) startCmd(req gateway.StartRequest) tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	return func() tea.Msg {
		resp, err := gw.Start(ctx, req)
		return startDoneMsg{resp: resp, err: err}
	}
}

func (m Model) commandCmd(sessionID, input string) tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	return func() tea.Msg {
		resp, err := gw.Command(ctx, sessionID, input)
		return commandDoneMsg{resp: resp, err: err}
	}
}

// tailCmd tags a log fetch with the next sequence number before it leaves.
func (m Model) tailCmd() tea.Cmd {
	gw := m.gateway
	ctx := m.ctx
	sessionID := m.dispatcher.Session().ID
	seq := m.tailer.Issue()
	return func() tea.Msg {
		log, err := gw.TailLog(ctx, sessionID)
		return tailDoneMsg{seq: seq, log: log, err: err}
	}
}

func tailTick(interval time.Duration, lease uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tailTickMsg{lease: lease}
	})
}

func focusAfter(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return focusInputMsg{}
	})
}
