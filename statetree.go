// Package statetree implements a hierarchical statechart tree: named states
// composed either exclusively (one child current at a time, joined by '/')
// or concurrently (all children active, joined by '.'), with per-leaf data,
// an editing/live lifecycle, change notification, and a line-oriented text
// protocol for construction and serialization.
//
// A machine is born in editing mode holding only the root state. Structure
// is added while editing; FinishEditing moves it live, after which current
// selections and leaf data may still change and each successful change
// notifies the registered listeners. Machines are not safe for concurrent
// use; a single logical owner must serialize access.
package statetree

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Option applies configuration to a Machine via functional options.
type Option func(*Machine)

// WithID sets the machine identifier used by persistence adapters.
func WithID(id string) Option {
	return func(m *Machine) { m.id = id }
}

// WithLogger sets the collaborator that receives internal assertion
// messages. The machine never writes output on its own; the default logger
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) { m.log = l }
}

// Machine is one independently owned statechart tree.
type Machine struct {
	id      string
	nodes   map[Path]*node
	editing bool
	log     *slog.Logger

	rebuild []RebuildListener
	state   []StateChangeListener
	data    []DataChangeListener
}

// NewMachine creates a machine holding only the root state, in editing mode.
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		nodes:   map[Path]*node{Root: {path: Root}},
		editing: true,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the machine identifier (empty unless set with WithID).
func (m *Machine) ID() string { return m.id }

// Editing reports whether structural mutation is currently permitted.
func (m *Machine) Editing() bool { return m.editing }

// StartEditing re-enters editing mode from live mode.
func (m *Machine) StartEditing() error {
	if m.editing {
		return ErrAlreadyEditing
	}
	m.editing = true
	return nil
}

// FinishEditing moves the machine live and fires every rebuild listener,
// in registration order, exactly once.
func (m *Machine) FinishEditing() error {
	if !m.editing {
		return ErrNotEditing
	}
	m.editing = false
	for _, l := range m.rebuild {
		l.MachineRebuilt()
	}
	return nil
}

// Reset discards every state except root. Editing mode only.
func (m *Machine) Reset() error {
	if !m.editing {
		return ErrNotEditing
	}
	m.nodes = map[Path]*node{Root: {path: Root}}
	return nil
}

// Exists reports whether the normalized path names an existing state.
func (m *Machine) Exists(path string) bool {
	p, err := NormalizePath(path)
	if err != nil {
		return false
	}
	_, ok := m.nodes[p]
	return ok
}

func (m *Machine) lookup(path string) (*node, error) {
	p, err := NormalizePath(path)
	if err != nil {
		return nil, err
	}
	n, ok := m.nodes[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchPath, p)
	}
	return n, nil
}

// Add creates the state at path, creating missing ancestors on the way.
// Adding an existing path succeeds with no effect. The path's last
// separator fixes how the parent composes its children: once a parent has a
// '/' child it is permanently exclusive, once it has a '.' child it is
// permanently concurrent, and mixing is rejected. A state holding data
// cannot take children. Editing mode only.
func (m *Machine) Add(path string) error {
	if !m.editing {
		return ErrNotEditing
	}
	p, err := NormalizePath(path)
	if err != nil {
		return err
	}
	return m.add(p)
}

func (m *Machine) add(p Path) error {
	if _, ok := m.nodes[p]; ok {
		return nil // idempotent
	}
	parentPath, sep, name, err := p.Split()
	if err != nil {
		return err
	}
	if err := m.add(parentPath); err != nil {
		return err
	}
	parent := m.nodes[parentPath]
	if parent.data != nil {
		return fmt.Errorf("%w: %q", ErrParentHasData, parentPath)
	}
	if len(parent.children) == 0 {
		// The first child fixes the parent's composition kind. Exclusive
		// parents start with their first-declared child current.
		parent.variable = sep == SepVariable
		parent.current = 0
	} else if parent.variable && sep == SepConcurrent {
		return fmt.Errorf("%w: %q under %q", ErrConcurrentChildOfVariable, name, parentPath)
	} else if !parent.variable && sep == SepVariable {
		return fmt.Errorf("%w: %q under %q", ErrVariableChildOfConcurrent, name, parentPath)
	}
	parent.children = append(parent.children, name)
	m.nodes[p] = &node{path: p, name: name, parent: parent}
	return nil
}

// AddMany applies Add to each path in order, stopping at the first failure.
func (m *Machine) AddMany(paths []string) error {
	for _, p := range paths {
		if err := m.Add(p); err != nil {
			return fmt.Errorf("add %q: %w", p, err)
		}
	}
	return nil
}

// SetCurrent selects child as the active alternative of the variable parent
// at path. While live, every state-change listener is invoked with
// (path, child) before SetCurrent returns; while editing the change is
// silent.
func (m *Machine) SetCurrent(path, child string) error {
	n, err := m.lookup(path)
	if err != nil {
		return err
	}
	if !n.variable {
		return fmt.Errorf("%w: %q", ErrNotVariable, n.path)
	}
	child = strings.ToLower(strings.TrimSpace(child))
	i := n.childIndex(child)
	if i < 0 {
		return fmt.Errorf("%w: %q under %q", ErrNoSuchChild, child, n.path)
	}
	n.current = i
	if !m.editing {
		for _, l := range m.state {
			l.StateChanged(n.path, child)
		}
	}
	return nil
}

// SetData stores value on the leaf at path. Only leaves of concurrent
// parents hold data; alternatives of a variable parent do not. While live,
// every data-change listener is invoked with (path, value) before SetData
// returns.
func (m *Machine) SetData(path, value string) error {
	n, err := m.lookup(path)
	if err != nil {
		return err
	}
	if !n.isLeaf() {
		return fmt.Errorf("%w: %q", ErrNotLeaf, n.path)
	}
	if n.isVariableLeaf() {
		return fmt.Errorf("%w: %q", ErrVariableLeaf, n.path)
	}
	n.data = &value
	if !m.editing {
		for _, l := range m.data {
			l.DataChanged(n.path, value)
		}
	}
	return nil
}

// Data returns the value stored on a data leaf. ok is false if the path
// does not name a state that can hold data; a data leaf that was never
// written reads as the empty string.
func (m *Machine) Data(path string) (value string, ok bool) {
	n, err := m.lookup(path)
	if err != nil || !n.isDataLeaf() {
		return "", false
	}
	if n.data == nil {
		return "", true
	}
	return *n.data, true
}

// IsLeaf reports whether path names an existing childless state.
func (m *Machine) IsLeaf(path string) bool {
	n, err := m.lookup(path)
	return err == nil && n.isLeaf()
}

// IsVariableParent reports whether path names an exclusive parent.
func (m *Machine) IsVariableParent(path string) bool {
	n, err := m.lookup(path)
	return err == nil && n.variable
}

// IsVariableLeaf reports whether path names a childless alternative of an
// exclusive parent.
func (m *Machine) IsVariableLeaf(path string) bool {
	n, err := m.lookup(path)
	return err == nil && n.isVariableLeaf()
}

// IsDataLeaf reports whether path names a leaf that can hold data.
func (m *Machine) IsDataLeaf(path string) bool {
	n, err := m.lookup(path)
	return err == nil && n.isDataLeaf()
}

// CurrentChildName returns the selected child of the variable parent at
// path; ok is false for any other kind of state.
func (m *Machine) CurrentChildName(path string) (string, bool) {
	n, err := m.lookup(path)
	if err != nil {
		return "", false
	}
	return n.currentChild()
}

// NodeInfo is a read-only copy of one state's attributes.
type NodeInfo struct {
	Path     Path
	Name     string
	Children []string // declaration order
	Variable bool
	Current  string // selected child name; empty unless Variable
	Data     string
	HasData  bool
}

// Node returns a copy of the state at path.
func (m *Machine) Node(path string) (NodeInfo, bool) {
	n, err := m.lookup(path)
	if err != nil {
		return NodeInfo{}, false
	}
	info := NodeInfo{
		Path:     n.path,
		Name:     n.name,
		Children: append([]string(nil), n.children...),
		Variable: n.variable,
	}
	if cur, ok := n.currentChild(); ok {
		info.Current = cur
	}
	if n.data != nil {
		info.Data, info.HasData = *n.data, true
	}
	return info, true
}
