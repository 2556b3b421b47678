package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/statetree"
)

func TestChannelNotifierForwards(t *testing.T) {
	m := statetree.NewMachine()
	require.NoError(t, m.AddMany([]string{".x/a", ".x/b", ".note"}))

	ch := make(chan Notification, 16)
	n := NewChannelNotifier(ch)
	require.NoError(t, n.Attach(m))

	require.NoError(t, m.FinishEditing())
	require.NoError(t, m.SetCurrent(".x", "b"))
	require.NoError(t, m.SetData(".note", "v1"))

	require.Len(t, ch, 3)

	got := <-ch
	assert.Equal(t, statetree.EventRebuild, got.Channel)

	got = <-ch
	assert.Equal(t, statetree.EventStateChange, got.Channel)
	assert.Equal(t, statetree.Path(".x"), got.Path)
	assert.Equal(t, "b", got.Value)

	got = <-ch
	assert.Equal(t, statetree.EventDataChange, got.Channel)
	assert.Equal(t, statetree.Path(".note"), got.Path)
	assert.Equal(t, "v1", got.Value)
}

func TestChannelNotifierDropsOnBackpressure(t *testing.T) {
	m := statetree.NewMachine()
	require.NoError(t, m.AddMany([]string{".x/a", ".x/b"}))
	require.NoError(t, m.FinishEditing())

	ch := make(chan Notification, 1)
	n := NewChannelNotifier(ch)
	require.NoError(t, n.Attach(m))

	// The second change must not block even though nobody is draining.
	require.NoError(t, m.SetCurrent(".x", "b"))
	require.NoError(t, m.SetCurrent(".x", "a"))

	require.Len(t, ch, 1)
	got := <-ch
	assert.Equal(t, "b", got.Value, "first notification wins, later ones drop")
}

func TestChannelNotifierDetach(t *testing.T) {
	m := statetree.NewMachine()
	require.NoError(t, m.AddMany([]string{".x/a", ".x/b"}))
	require.NoError(t, m.FinishEditing())

	ch := make(chan Notification, 16)
	n := NewChannelNotifier(ch)
	require.NoError(t, n.Attach(m))
	require.NoError(t, n.Detach(m))

	require.NoError(t, m.SetCurrent(".x", "b"))
	assert.Empty(t, ch)
}
