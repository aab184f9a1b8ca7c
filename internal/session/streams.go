package session

import (
	"fmt"
	"sync"
)

// Channel names one of the parallel text histories.
type Channel int

const (
	ChannelOriginal Channel = iota
	ChannelRewritten
	ChannelDebug
)

var allChannels = []Channel{ChannelOriginal, ChannelRewritten, ChannelDebug}

// Channels lists every channel in display order.
func Channels() []Channel {
	out := make([]Channel, len(allChannels))
	copy(out, allChannels)
	return out
}

func (c Channel) String() string {
	switch c {
	case ChannelOriginal:
		return "original"
	case ChannelRewritten:
		return "rewritten"
	case ChannelDebug:
		return "debug"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

func (c Channel) valid() bool {
	return c >= ChannelOriginal && c <= ChannelDebug
}

type Role string

const (
	RoleEcho     Role = "echo"
	RoleResponse Role = "response"
)

type Turn struct {
	Ordinal int
	Role    Role
	Text    string
}

// Streams is the append-only record of what each channel has shown. The
// original and rewritten channels hold turns; debug holds one snapshot that
// each tail replaces.
type Streams struct {
	mu    sync.RWMutex
	turns map[Channel][]Turn
	debug string
}

func NewStreams() *Streams {
	return &Streams{
		turns: map[Channel][]Turn{
			ChannelOriginal:  {},
			ChannelRewritten: {},
		},
	}
}

// Append adds turns to a prose channel in order, numbering them after the
// channel's last ordinal.
func (s *Streams) Append(channel Channel, turns ...Turn) error {
	if channel != ChannelOriginal && channel != ChannelRewritten {
		return fmt.Errorf("append to %s: not a turn channel", channel)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(channel, turns)
	return nil
}

// AppendPair records one command's echo and response on both prose channels
// in a single critical section.
func (s *Streams) AppendPair(original, rewritten [2]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLocked(ChannelOriginal, []Turn{
		{Role: RoleEcho, Text: original[0]},
		{Role: RoleResponse, Text: original[1]},
	})
	s.appendLocked(ChannelRewritten, []Turn{
		{Role: RoleEcho, Text: rewritten[0]},
		{Role: RoleResponse, Text: rewritten[1]},
	})
}

func (s *Streams) appendLocked(channel Channel, turns []Turn) {
	history := s.turns[channel]
	next := len(history) + 1
	for _, turn := range turns {
		turn.Ordinal = next
		next++
		history = append(history, turn)
	}
	s.turns[channel] = history
}

// Snapshot returns a copy of the channel's turns. The debug channel yields a
// single response turn holding the current log, or nothing before the first tail.
func (s *Streams) Snapshot(channel Channel) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if channel == ChannelDebug {
		if s.debug == "" {
			return []Turn{}
		}
		return []Turn{{Ordinal: 1, Role: RoleResponse, Text: s.debug}}
	}
	history := s.turns[channel]
	out := make([]Turn, len(history))
	copy(out, history)
	return out
}

func (s *Streams) Len(channel Channel) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns[channel])
}

func (s *Streams) SetDebug(log string) {
	s.mu.Lock()
	s.debug = log
	s.mu.Unlock()
}

func (s *Streams) Debug() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}
