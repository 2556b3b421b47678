package statetree

import "fmt"

// Event channel names accepted by Subscribe and Unsubscribe.
const (
	// EventRebuild fires once on every editing-to-live transition.
	EventRebuild = "rebuild"
	// EventStateChange fires per successful SetCurrent while live.
	EventStateChange = "state-change"
	// EventDataChange fires per successful SetData while live.
	EventDataChange = "data-change"
)

// RebuildListener is notified when the machine goes live after editing.
type RebuildListener interface {
	MachineRebuilt()
}

// StateChangeListener is notified when a variable parent's current child
// changes while the machine is live.
type StateChangeListener interface {
	StateChanged(path Path, child string)
}

// DataChangeListener is notified when a data leaf's value changes while the
// machine is live.
type DataChangeListener interface {
	DataChanged(path Path, value string)
}

// ListenerFuncs adapts plain functions to all three listener interfaces.
// Register a *ListenerFuncs so removal by identity works; nil fields ignore
// their channel.
type ListenerFuncs struct {
	OnRebuild func()
	OnState   func(path Path, child string)
	OnData    func(path Path, value string)
}

func (f *ListenerFuncs) MachineRebuilt() {
	if f.OnRebuild != nil {
		f.OnRebuild()
	}
}

func (f *ListenerFuncs) StateChanged(path Path, child string) {
	if f.OnState != nil {
		f.OnState(path, child)
	}
}

func (f *ListenerFuncs) DataChanged(path Path, value string) {
	if f.OnData != nil {
		f.OnData(path, value)
	}
}

// Subscribe registers listener on the named channel. Dispatch is
// synchronous, on the mutating goroutine, in registration order; a listener
// that calls back into the machine runs to completion before the outer
// mutation returns. The listener must implement the channel's interface.
func (m *Machine) Subscribe(event string, listener any) error {
	switch event {
	case EventRebuild:
		l, ok := listener.(RebuildListener)
		if !ok {
			return fmt.Errorf("%w: %s needs a RebuildListener", ErrBadListener, event)
		}
		m.rebuild = append(m.rebuild, l)
	case EventStateChange:
		l, ok := listener.(StateChangeListener)
		if !ok {
			return fmt.Errorf("%w: %s needs a StateChangeListener", ErrBadListener, event)
		}
		m.state = append(m.state, l)
	case EventDataChange:
		l, ok := listener.(DataChangeListener)
		if !ok {
			return fmt.Errorf("%w: %s needs a DataChangeListener", ErrBadListener, event)
		}
		m.data = append(m.data, l)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return nil
}

// Unsubscribe removes a previously registered listener by identity.
// Removing a listener that was never registered is a no-op; an unknown
// channel name is still an error.
func (m *Machine) Unsubscribe(event string, listener any) error {
	switch event {
	case EventRebuild:
		m.rebuild = removeListener(m.rebuild, listener)
	case EventStateChange:
		m.state = removeListener(m.state, listener)
	case EventDataChange:
		m.data = removeListener(m.data, listener)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return nil
}

// removeListener returns a fresh slice so in-flight dispatch over the old
// backing array is unaffected.
func removeListener[L any](list []L, target any) []L {
	var out []L
	for _, l := range list {
		if any(l) == target {
			continue
		}
		out = append(out, l)
	}
	return out
}
