// Package testutil provides shared helpers for statetree tests.
package testutil

import "github.com/comalice/statetree"

// Change is one recorded (path, value) notification.
type Change struct {
	Path  statetree.Path
	Value string
}

// Recorder implements all three statetree listener interfaces and records
// every notification it receives, in dispatch order. Register the same
// *Recorder on several channels to assert cross-channel interleavings.
type Recorder struct {
	Rebuilds int
	States   []Change
	Datas    []Change
}

func (r *Recorder) MachineRebuilt() {
	r.Rebuilds++
}

func (r *Recorder) StateChanged(path statetree.Path, child string) {
	r.States = append(r.States, Change{Path: path, Value: child})
}

func (r *Recorder) DataChanged(path statetree.Path, value string) {
	r.Datas = append(r.Datas, Change{Path: path, Value: value})
}

// AttachAll subscribes the recorder on every machine channel.
func (r *Recorder) AttachAll(m *statetree.Machine) error {
	for _, event := range []string{
		statetree.EventRebuild,
		statetree.EventStateChange,
		statetree.EventDataChange,
	} {
		if err := m.Subscribe(event, r); err != nil {
			return err
		}
	}
	return nil
}

// DetachAll removes the recorder from every machine channel.
func (r *Recorder) DetachAll(m *statetree.Machine) error {
	for _, event := range []string{
		statetree.EventRebuild,
		statetree.EventStateChange,
		statetree.EventDataChange,
	} {
		if err := m.Unsubscribe(event, r); err != nil {
			return err
		}
	}
	return nil
}

// Reset clears everything recorded so far.
func (r *Recorder) Reset() {
	r.Rebuilds = 0
	r.States = nil
	r.Datas = nil
}
