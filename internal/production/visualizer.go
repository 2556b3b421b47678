package production

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/statetree"
)

// DefaultVisualizer is the stdlib-only tree visualizer.
type DefaultVisualizer struct{}

// ExportDOT generates Graphviz DOT source for the machine. Active states
// are filled; the selected child of an exclusive parent hangs off a bold
// edge.
func (v *DefaultVisualizer) ExportDOT(m *statetree.Machine) string {
	var buf bytes.Buffer
	buf.WriteString("digraph StateTree {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	active := make(map[statetree.Path]bool)
	for _, p := range m.ActivePaths() {
		active[p] = true
	}

	for _, p := range m.AllPaths() {
		info, ok := m.Node(string(p))
		if !ok {
			continue
		}

		label := info.Name
		if p == statetree.Root {
			label = "root"
		}
		switch {
		case info.Variable:
			label += " (one of)"
		case len(info.Children) > 0:
			label += " (all of)"
		}
		if info.HasData && info.Data != "" {
			label += "\\n" + info.Data
		}

		attrs := ""
		if active[p] {
			attrs = `, style="rounded,filled", fillcolor=lightgreen`
		}
		fmt.Fprintf(&buf, "  %q [label=\"%s\"%s];\n", string(p), label, attrs)
	}

	for _, p := range m.AllPaths() {
		info, ok := m.Node(string(p))
		if !ok {
			continue
		}
		sep := "."
		if info.Variable {
			sep = "/"
		}
		for _, child := range info.Children {
			childPath := string(p) + sep + child
			attrs := ""
			if info.Variable && child == info.Current {
				attrs = ` [style=bold]`
			}
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", string(p), childPath, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// treeNode is the nested JSON form of one state.
type treeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Kind     string      `json:"kind"` // root, exclusive, concurrent, or leaf
	Current  string      `json:"current,omitempty"`
	Data     string      `json:"data,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

// ExportJSON serializes the tree to an indented nested JSON document.
func (v *DefaultVisualizer) ExportJSON(m *statetree.Machine) ([]byte, error) {
	root := buildTree(m, statetree.Root)
	if root == nil {
		return nil, fmt.Errorf("machine has no root")
	}
	return json.MarshalIndent(root, "", "  ")
}

func buildTree(m *statetree.Machine, p statetree.Path) *treeNode {
	info, ok := m.Node(string(p))
	if !ok {
		return nil
	}

	n := &treeNode{
		Name: info.Name,
		Path: string(p),
	}
	switch {
	case p == statetree.Root:
		n.Kind = "root"
	case info.Variable:
		n.Kind = "exclusive"
	case len(info.Children) > 0:
		n.Kind = "concurrent"
	default:
		n.Kind = "leaf"
	}
	n.Current = info.Current
	if info.HasData {
		n.Data = info.Data
	}

	sep := "."
	if info.Variable {
		sep = "/"
	}
	for _, child := range info.Children {
		if c := buildTree(m, statetree.Path(string(p)+sep+child)); c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}
