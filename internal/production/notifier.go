package production

import (
	"time"

	"github.com/comalice/statetree"
)

// Notification is one machine change forwarded by a ChannelNotifier.
type Notification struct {
	Channel   string // statetree.EventRebuild, EventStateChange, or EventDataChange
	Path      statetree.Path
	Value     string // child name or data value; empty for rebuilds
	Timestamp time.Time
}

// ChannelNotifier implements all three statetree listener interfaces and
// forwards notifications to a Go channel. Non-blocking send with drop on
// backpressure, so a slow consumer can never stall the machine's
// synchronous dispatch.
type ChannelNotifier struct {
	ch chan<- Notification
}

// NewChannelNotifier creates a ChannelNotifier with the given output channel.
func NewChannelNotifier(ch chan<- Notification) *ChannelNotifier {
	return &ChannelNotifier{ch: ch}
}

// Attach subscribes the notifier on every machine channel.
func (n *ChannelNotifier) Attach(m *statetree.Machine) error {
	for _, event := range []string{
		statetree.EventRebuild,
		statetree.EventStateChange,
		statetree.EventDataChange,
	} {
		if err := m.Subscribe(event, n); err != nil {
			return err
		}
	}
	return nil
}

// Detach removes the notifier from every machine channel.
func (n *ChannelNotifier) Detach(m *statetree.Machine) error {
	for _, event := range []string{
		statetree.EventRebuild,
		statetree.EventStateChange,
		statetree.EventDataChange,
	} {
		if err := m.Unsubscribe(event, n); err != nil {
			return err
		}
	}
	return nil
}

func (n *ChannelNotifier) MachineRebuilt() {
	n.send(Notification{Channel: statetree.EventRebuild, Timestamp: time.Now()})
}

func (n *ChannelNotifier) StateChanged(path statetree.Path, child string) {
	n.send(Notification{
		Channel:   statetree.EventStateChange,
		Path:      path,
		Value:     child,
		Timestamp: time.Now(),
	})
}

func (n *ChannelNotifier) DataChanged(path statetree.Path, value string) {
	n.send(Notification{
		Channel:   statetree.EventDataChange,
		Path:      path,
		Value:     value,
		Timestamp: time.Now(),
	})
}

func (n *ChannelNotifier) send(note Notification) {
	select {
	case n.ch <- note:
	default:
		// Non-blocking drop.
	}
}

// Close closes the output channel. Detach from the machine first.
func (n *ChannelNotifier) Close() error {
	close(n.ch)
	return nil
}
