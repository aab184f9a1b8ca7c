package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manto/llm-if-wrapper/internal/gateway"
)

var (
	ErrAlreadyStarted = errors.New("session already started")
	ErrNoSession      = errors.New("no active session")
	ErrBusy           = errors.New("a command is already in flight")
	ErrEmptyCommand   = errors.New("empty command")
)

// Settings is the selection made before a session starts. It does not change
// for the life of the session.
type Settings struct {
	GameID   string
	Tone     string
	Provider string
}

type Session struct {
	ID string
	Settings
}

// Dispatcher serializes the start call and every command submission for one
// session and is the only writer of the prose channels. It is not safe for
// concurrent use; the caller's event loop owns it.
type Dispatcher struct {
	phase   Phase
	session Session
	streams *Streams
}

func NewDispatcher(streams *Streams) *Dispatcher {
	if streams == nil {
		streams = NewStreams()
	}
	return &Dispatcher{phase: PhaseUnconfigured, streams: streams}
}

func (d *Dispatcher) Phase() Phase {
	return d.phase
}

func (d *Dispatcher) Busy() bool {
	return d.phase == PhaseStarting || d.phase == PhaseBusy
}

func (d *Dispatcher) Session() Session {
	return d.session
}

func (d *Dispatcher) Streams() *Streams {
	return d.streams
}

// BeginStart marks the start call in flight and returns the request to send.
func (d *Dispatcher) BeginStart(settings Settings) (gateway.StartRequest, error) {
	if d.phase != PhaseUnconfigured {
		return gateway.StartRequest{}, ErrAlreadyStarted
	}
	d.transition(PhaseStarting)
	d.session = Session{Settings: settings}
	return gateway.StartRequest{
		GameID:   settings.GameID,
		Tone:     settings.Tone,
		Provider: settings.Provider,
	}, nil
}

// FinishStart settles the start call. The in-flight flag is released on every
// path; on failure the session stays unset and the error is returned.
func (d *Dispatcher) FinishStart(resp gateway.StartResponse, callErr error) error {
	if d.phase != PhaseStarting {
		return fmt.Errorf("finish start: unexpected phase %s", d.phase)
	}
	if callErr == nil && strings.TrimSpace(resp.SessionID) == "" {
		callErr = fmt.Errorf("start_game: %w: missing session id", gateway.ErrMalformedResponse)
	}
	if callErr != nil {
		d.session = Session{}
		d.transition(PhaseUnconfigured)
		return callErr
	}
	d.session.ID = resp.SessionID
	_ = d.streams.Append(ChannelOriginal, Turn{Role: RoleResponse, Text: resp.GameResponse})
	_ = d.streams.Append(ChannelRewritten, Turn{Role: RoleResponse, Text: resp.LLMResponse})
	d.transition(PhaseIdle)
	return nil
}

// BeginCommand claims the single command slot. Blank input is rejected here so
// it never reaches the service.
func (d *Dispatcher) BeginCommand(raw string) (string, error) {
	if !d.phase.Active() || d.session.ID == "" {
		return "", ErrNoSession
	}
	if d.phase == PhaseBusy {
		return "", ErrBusy
	}
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyCommand
	}
	d.transition(PhaseBusy)
	return raw, nil
}

// FinishCommand releases the command slot and, on success, records the echo
// and response on both prose channels. A failed command appends nothing.
func (d *Dispatcher) FinishCommand(resp gateway.CommandResponse, callErr error) error {
	if d.phase != PhaseBusy {
		return fmt.Errorf("finish command: unexpected phase %s", d.phase)
	}
	d.transition(PhaseIdle)
	if callErr != nil {
		return callErr
	}
	d.streams.AppendPair(
		[2]string{resp.GameCommand, resp.GameResponse},
		[2]string{resp.InputCommand, resp.LLMResponse},
	)
	return nil
}

func (d *Dispatcher) transition(to Phase) {
	if !canTransition(d.phase, to) {
		panic(fmt.Sprintf("session: illegal transition %s -> %s", d.phase, to))
	}
	d.phase = to
}
