package statetree

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Protocol command letters. One line of text is one operation.
const (
	cmdAdd     = "P"
	cmdCurrent = "C"
	cmdData    = "D"
	cmdAppend  = "A"
)

// Interpret applies one line of the textual protocol:
//
//	P <path>            add a state (idempotent, editing mode only)
//	C <path> <child>    select the current child of an exclusive parent
//	D <path> <value>    set leaf data; value is the rest of the line verbatim
//	A <path> <value>    append value to the leaf's existing data
//	# comment           ignored, as are blank lines
//
// Command letters are upper case. A trailing separator on C's path is
// tolerated and stripped. Anything else fails with ErrBadCommand.
func (m *Machine) Interpret(line string) error {
	// Keep the tail of the line intact for D/A, whose value is verbatim.
	line = strings.TrimLeft(line, " \t")
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case cmdAdd:
		arg := strings.TrimSpace(rest)
		if arg == "" {
			return fmt.Errorf("%w: P needs a path", ErrBadCommand)
		}
		return m.Add(arg)

	case cmdCurrent:
		pathArg, child, ok := strings.Cut(strings.TrimSpace(rest), " ")
		if !ok || strings.TrimSpace(child) == "" {
			return fmt.Errorf("%w: C needs a path and a child name", ErrBadCommand)
		}
		pathArg = strings.TrimRight(pathArg, "./")
		return m.SetCurrent(pathArg, strings.TrimSpace(child))

	case cmdData:
		pathArg, value, _ := strings.Cut(rest, " ")
		pathArg = strings.TrimSpace(pathArg)
		if pathArg == "" {
			return fmt.Errorf("%w: D needs a path", ErrBadCommand)
		}
		return m.SetData(pathArg, value)

	case cmdAppend:
		pathArg, value, _ := strings.Cut(rest, " ")
		pathArg = strings.TrimSpace(pathArg)
		if pathArg == "" {
			return fmt.Errorf("%w: A needs a path", ErrBadCommand)
		}
		prev, _ := m.Data(pathArg)
		return m.SetData(pathArg, prev+value)

	default:
		return fmt.Errorf("%w: %q", ErrBadCommand, cmd)
	}
}

// InterpretAll applies each line in order, stopping at and returning the
// first failure with its one-based line number.
func (m *Machine) InterpretAll(lines []string) error {
	for i, line := range lines {
		if err := m.Interpret(line); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// InterpretReader reads r line by line and applies each operation in order.
func (m *Machine) InterpretReader(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for i := 1; sc.Scan(); i++ {
		if err := m.Interpret(sc.Text()); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
	}
	return sc.Err()
}
