package statetree

// node is one state record. The machine's node map is the sole owner of
// every node; parent is a non-owning back-reference used for upward queries
// (composition kind, current-selection pair), never for traversal order.
type node struct {
	path     Path
	name     string
	parent   *node // nil only for root
	children []string
	variable bool    // exclusive parent: exactly one child active
	current  int     // index into children; meaningful only when variable
	data     *string // leaf payload; nil until first write
}

func (n *node) isLeaf() bool { return len(n.children) == 0 }

// isVariableLeaf reports whether n is a childless alternative of an
// exclusive parent. Such states never carry data; being current is their
// whole payload.
func (n *node) isVariableLeaf() bool {
	return n.isLeaf() && n.parent != nil && n.parent.variable
}

func (n *node) isDataLeaf() bool {
	return n.isLeaf() && !(n.parent != nil && n.parent.variable)
}

func (n *node) currentChild() (string, bool) {
	if !n.variable || n.current < 0 || n.current >= len(n.children) {
		return "", false
	}
	return n.children[n.current], true
}

// sep returns the separator this parent's children were declared with.
func (n *node) sep() byte {
	if n.variable {
		return SepVariable
	}
	return SepConcurrent
}

func (n *node) childPath(name string) Path {
	return n.path.join(n.sep(), name)
}

func (n *node) childIndex(name string) int {
	for i, c := range n.children {
		if c == name {
			return i
		}
	}
	return -1
}
