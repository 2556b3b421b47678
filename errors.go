package statetree

import "errors"

// Every fallible operation returns one of these sentinel reasons, usually
// wrapped with the offending path or name. Nothing here is fatal to the
// machine; callers branch with errors.Is.
var (
	// Lifecycle.
	ErrNotEditing     = errors.New("machine is not in editing mode")
	ErrAlreadyEditing = errors.New("machine is already in editing mode")

	// Path and name syntax.
	ErrBadPath = errors.New("malformed path")
	ErrBadName = errors.New("malformed state name")

	// Composition.
	ErrParentHasData             = errors.New("state holds data and cannot take children")
	ErrVariableChildOfConcurrent = errors.New("concurrent parent cannot take a '/' child")
	ErrConcurrentChildOfVariable = errors.New("variable parent cannot take a '.' child")

	// References.
	ErrNoSuchPath   = errors.New("no such state")
	ErrNotVariable  = errors.New("state is not a variable parent")
	ErrNoSuchChild  = errors.New("no such child")
	ErrNotLeaf      = errors.New("state is not a leaf")
	ErrVariableLeaf = errors.New("variable leaf cannot hold data")

	// Events and protocol.
	ErrUnknownEvent = errors.New("unknown event channel")
	ErrBadListener  = errors.New("listener does not implement the channel interface")
	ErrBadCommand   = errors.New("bad command")
)
