package session

import "fmt"

// Visibility is the set of channels currently rendered. It never touches the
// streams: hidden channels keep accumulating.
type Visibility struct {
	shown map[Channel]bool
}

// NewVisibility shows the original and rewritten channels and hides debug.
func NewVisibility() *Visibility {
	return &Visibility{shown: map[Channel]bool{
		ChannelOriginal:  true,
		ChannelRewritten: true,
	}}
}

// Toggle flips the channel's membership and reports whether it is now shown.
func (v *Visibility) Toggle(channel Channel) (bool, error) {
	if !channel.valid() {
		return false, fmt.Errorf("toggle %s: unknown channel", channel)
	}
	if v.shown[channel] {
		delete(v.shown, channel)
		return false, nil
	}
	v.shown[channel] = true
	return true, nil
}

func (v *Visibility) Visible(channel Channel) bool {
	return v.shown[channel]
}

// Shown lists visible channels in display order.
func (v *Visibility) Shown() []Channel {
	out := make([]Channel, 0, len(v.shown))
	for _, channel := range allChannels {
		if v.shown[channel] {
			out = append(out, channel)
		}
	}
	return out
}
