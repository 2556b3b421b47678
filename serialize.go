package statetree

// Serialize emits the minimal operation sequence that reconstructs the
// machine: a P line per state in AllPaths order, a C line immediately after
// the selected child of any exclusive parent whose selection is non-default,
// and a D line per leaf holding non-empty data. Replaying the result through
// InterpretAll on a fresh machine reproduces the same path set, the same
// selections, and the same data, in the same order.
//
// The root is never emitted: it always exists and P cannot create it. A
// variable root's selection is emitted with the bare separator "/" as the
// path, which the interpreter strips back to the root.
func (m *Machine) Serialize() []string {
	var lines []string
	for _, p := range m.AllPaths() {
		if p == Root {
			continue
		}
		n := m.nodes[p]
		lines = append(lines, cmdAdd+" "+string(p))

		parent := n.parent
		if parent.variable {
			if parent.current != 0 && parent.children[parent.current] == n.name {
				parentArg := string(parent.path)
				if parentArg == "" {
					parentArg = "/"
				}
				lines = append(lines, cmdCurrent+" "+parentArg+" "+n.name)
			}
		} else if n.data != nil && *n.data != "" {
			lines = append(lines, cmdData+" "+string(p)+" "+*n.data)
		}
	}
	return lines
}
