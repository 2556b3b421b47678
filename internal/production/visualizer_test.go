package production

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportDOT(t *testing.T) {
	m := fixtureMachine(t, "net-chart")
	v := &DefaultVisualizer{}

	dot := v.ExportDOT(m)
	assert.True(t, strings.HasPrefix(dot, "digraph StateTree {"))
	assert.True(t, strings.HasSuffix(dot, "}\n"))

	// Nodes for every path, with composition kinds in the labels.
	assert.Contains(t, dot, `".net.ipv4assign" [label="ipv4assign (one of)"`)
	assert.Contains(t, dot, `".net" [label="net (all of)"`)
	assert.Contains(t, dot, "8.8.8.8")

	// The selected alternative hangs off a bold edge.
	assert.Contains(t, dot, `".net.ipv4assign" -> ".net.ipv4assign/dhcp" [style=bold];`)
	assert.Contains(t, dot, `".net.ipv4assign" -> ".net.ipv4assign/static";`)

	// Active paths are filled, inactive ones are not.
	assert.Contains(t, dot, `".net.ipv4assign/dhcp" [label="dhcp", style="rounded,filled", fillcolor=lightgreen];`)
	assert.Contains(t, dot, `".net.ipv4assign/static" [label="static"];`)
}

func TestExportJSON(t *testing.T) {
	m := fixtureMachine(t, "net-chart")
	v := &DefaultVisualizer{}

	out, err := v.ExportJSON(m)
	require.NoError(t, err)

	var root struct {
		Kind     string `json:"kind"`
		Children []struct {
			Name     string `json:"name"`
			Kind     string `json:"kind"`
			Current  string `json:"current"`
			Children []struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
				Data string `json:"data"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(out, &root))

	assert.Equal(t, "root", root.Kind)
	require.Len(t, root.Children, 1)
	net := root.Children[0]
	assert.Equal(t, "net", net.Name)
	assert.Equal(t, "concurrent", net.Kind)
	require.Len(t, net.Children, 2)
	assert.Equal(t, "dns", net.Children[0].Name)
	assert.Equal(t, "leaf", net.Children[0].Kind)
	assert.Equal(t, "8.8.8.8", net.Children[0].Data)
	assert.Equal(t, "exclusive", net.Children[1].Kind)
}
