package session

import "fmt"

// Phase is where a play-through is in its lifecycle. There is no terminal
// phase; the session ends when the program exits.
type Phase int

const (
	PhaseUnconfigured Phase = iota
	PhaseStarting
	PhaseIdle
	PhaseBusy
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseStarting:
		return "starting"
	case PhaseIdle:
		return "idle"
	case PhaseBusy:
		return "busy"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Active reports whether a session id has been assigned.
func (p Phase) Active() bool {
	return p == PhaseIdle || p == PhaseBusy
}

var phaseTransitions = map[Phase][]Phase{
	PhaseUnconfigured: {PhaseStarting},
	PhaseStarting:     {PhaseIdle, PhaseUnconfigured},
	PhaseIdle:         {PhaseBusy},
	PhaseBusy:         {PhaseIdle},
}

func canTransition(from, to Phase) bool {
	for _, next := range phaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
