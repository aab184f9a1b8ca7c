package session

import "time"

const DefaultTailInterval = 5 * time.Second

// Tailer keeps the debug snapshot fresh while a command is in flight.
//
// Fetches may complete out of order, so each is tagged with a sequence number
// and a response is applied only when it is newer than the last one applied.
// Polling is held as a lease: Start hands out a lease id, Stop revokes it, and
// ticks carrying a revoked lease are dropped.
type Tailer struct {
	streams  *Streams
	interval time.Duration

	issued  uint64
	applied uint64

	lease   uint64
	polling bool
}

func NewTailer(streams *Streams, interval time.Duration) *Tailer {
	if interval <= 0 {
		interval = DefaultTailInterval
	}
	return &Tailer{streams: streams, interval: interval}
}

func (t *Tailer) Interval() time.Duration {
	return t.interval
}

// Issue tags an outgoing fetch.
func (t *Tailer) Issue() uint64 {
	t.issued++
	return t.issued
}

// Apply stores log as the debug snapshot unless a newer fetch already landed.
// It reports whether the snapshot was written.
func (t *Tailer) Apply(seq uint64, log string) bool {
	if seq == 0 || seq > t.issued || seq <= t.applied {
		return false
	}
	t.applied = seq
	t.streams.SetDebug(log)
	return true
}

// Outdated reports whether a fetch tagged seq has been overtaken by a newer
// applied one. Its result, or its failure, no longer matters.
func (t *Tailer) Outdated(seq uint64) bool {
	return seq <= t.applied
}

// Start acquires a polling lease. If one is already held it is returned and
// started is false.
func (t *Tailer) Start() (lease uint64, started bool) {
	if t.polling {
		return t.lease, false
	}
	t.lease++
	t.polling = true
	return t.lease, true
}

// Stop releases the current lease; pending ticks for it become no-ops.
func (t *Tailer) Stop() {
	if !t.polling {
		return
	}
	t.polling = false
	t.lease++
}

func (t *Tailer) Polling() bool {
	return t.polling
}

// Holds reports whether a tick scheduled under lease should still fire a fetch.
func (t *Tailer) Holds(lease uint64) bool {
	return t.polling && lease == t.lease
}
