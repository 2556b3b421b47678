package statetree

// AllPaths returns every existing state path, depth first and parent first,
// starting at the root, with children in declaration order regardless of
// composition kind.
func (m *Machine) AllPaths() []Path {
	paths := make([]Path, 0, len(m.nodes))
	m.walk(m.nodes[Root], false, &paths)
	return paths
}

// ActivePaths returns the currently active subset of AllPaths: under an
// exclusive parent only the selected child is descended into (inactive
// subtrees are skipped entirely), under a concurrent parent every child is.
// This is the only traversal that depends on current selections.
func (m *Machine) ActivePaths() []Path {
	paths := make([]Path, 0, len(m.nodes))
	m.walk(m.nodes[Root], true, &paths)
	return paths
}

func (m *Machine) walk(n *node, activeOnly bool, out *[]Path) {
	*out = append(*out, n.path)
	if activeOnly && n.variable {
		if name, ok := n.currentChild(); ok {
			m.walkChild(n, name, activeOnly, out)
		}
		return
	}
	for _, name := range n.children {
		m.walkChild(n, name, activeOnly, out)
	}
}

func (m *Machine) walkChild(parent *node, name string, activeOnly bool, out *[]Path) {
	child, ok := m.nodes[parent.childPath(name)]
	if !ok {
		// A registered child name without a node breaks the map invariant.
		m.log.Error("statetree: child name has no node",
			"parent", string(parent.path), "child", name)
		return
	}
	m.walk(child, activeOnly, out)
}
