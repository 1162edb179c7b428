package sync

import "context"

// Based on the slides for "Rethinking Classical Concurrency Patterns" by
// Bryan C. Mills: state lives in a one-element channel, and every
// notification closes the previous generation's channel.

type state struct {
	seq     int64
	changed chan struct{} // closed upon notify
}

// A Notifier broadcasts one-to-many change notifications. Listeners track
// a sequence number; notifications that arrive between two AwaitChange
// calls coalesce into one. That's the right fit for routing table readers,
// which only ever want the latest table, never the intermediate ones.
type Notifier struct {
	st chan state
}

func NewNotifier() *Notifier {
	st := make(chan state, 1)
	st <- state{
		seq:     0,
		changed: make(chan struct{}),
	}

	return &Notifier{st: st}
}

func (n *Notifier) NotifyChange() {
	st := <-n.st
	close(st.changed)
	n.st <- state{
		seq:     st.seq + 1,
		changed: make(chan struct{}),
	}
}

// LastSeq returns the current sequence number, the usual starting point
// for a loop around AwaitChange.
func (n *Notifier) LastSeq() int64 {
	st := <-n.st
	n.st <- st

	return st.seq
}

// AwaitChange blocks until the sequence number differs from seq, then
// returns the new one. Calling it with an out-of-date seq returns
// immediately. If ctx is done first, seq is returned unchanged.
func (n *Notifier) AwaitChange(ctx context.Context, seq int64) int64 {
	st := <-n.st
	n.st <- st

	if st.seq != seq {
		return st.seq
	}

	select {
	case <-ctx.Done():
		return seq
	case <-st.changed:
		return seq + 1
	}
}
