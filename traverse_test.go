package statetree_test

import (
	"testing"

	. "github.com/comalice/statetree"
)

func pathsEqual(got []Path, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if string(got[i]) != want[i] {
			return false
		}
	}
	return true
}

// Test AllPaths is depth-first and parent-first in declaration order.
func TestAllPathsOrder(t *testing.T) {
	m := NewMachine()
	err := m.AddMany([]string{
		".net.dns",
		".net.ipv4assign/static",
		".net.ipv4assign/dhcp",
		".snd/on",
		".snd/off",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"",
		".net",
		".net.dns",
		".net.ipv4assign",
		".net.ipv4assign/static",
		".net.ipv4assign/dhcp",
		".snd",
		".snd/on",
		".snd/off",
	}
	if got := m.AllPaths(); !pathsEqual(got, want) {
		t.Errorf("AllPaths = %v, want %v", got, want)
	}
}

// Test active-path filtering: only the selected alternative of an exclusive
// parent is descended into, and the filter tracks SetCurrent.
func TestActivePathsFiltering(t *testing.T) {
	m := NewMachine()
	err := m.AddMany([]string{
		".net.ipv4assign/static",
		".net.ipv4assign/dhcp",
		".net.ipv4assign/zeroconf",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"", ".net", ".net.ipv4assign", ".net.ipv4assign/static"}
	if got := m.ActivePaths(); !pathsEqual(got, want) {
		t.Errorf("ActivePaths = %v, want %v", got, want)
	}

	if err := m.SetCurrent(".net.ipv4assign", "zeroconf"); err != nil {
		t.Fatal(err)
	}
	want = []string{"", ".net", ".net.ipv4assign", ".net.ipv4assign/zeroconf"}
	if got := m.ActivePaths(); !pathsEqual(got, want) {
		t.Errorf("ActivePaths = %v, want %v", got, want)
	}
}

// Test inactive subtrees are skipped entirely, not just their roots, while
// the paths still exist in the machine.
func TestActivePathsSkipsInactiveSubtrees(t *testing.T) {
	m := NewMachine()
	err := m.AddMany([]string{
		".mode/work.inbox",
		".mode/play.queue",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"", ".mode", ".mode/work", ".mode/work.inbox"}
	if got := m.ActivePaths(); !pathsEqual(got, want) {
		t.Errorf("ActivePaths = %v, want %v", got, want)
	}
	// The inactive branch still exists.
	if !m.Exists(".mode/play.queue") {
		t.Error("inactive paths must still exist")
	}
}

// Test the §8-style scenario: exclusive children of a single parent before
// and after a selection change.
func TestActivePathsScenario(t *testing.T) {
	m := NewMachine()
	if err := m.AddMany([]string{".a", ".a/x", ".a/y"}); err != nil {
		t.Fatal(err)
	}
	if err := m.FinishEditing(); err != nil {
		t.Fatal(err)
	}

	if got := m.ActivePaths(); !pathsEqual(got, []string{"", ".a", ".a/x"}) {
		t.Errorf("ActivePaths = %v", got)
	}
	if err := m.SetCurrent(".a", "y"); err != nil {
		t.Fatal(err)
	}
	if got := m.ActivePaths(); !pathsEqual(got, []string{"", ".a", ".a/y"}) {
		t.Errorf("ActivePaths = %v", got)
	}
}
