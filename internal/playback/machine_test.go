package playback

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/soundpad/internal/audio/audiotest"
	"github.com/zjrosen/soundpad/internal/binding"
	"github.com/zjrosen/soundpad/internal/catalog"
)

// boardOf builds a catalog of groups named by letters, each with the given
// sound count, over a fresh fake player.
func boardOf(t *testing.T, counts ...int) (*Machine, *catalog.Catalog, *audiotest.Player) {
	t.Helper()
	player := audiotest.NewPlayer()
	tbl, err := binding.New()
	require.NoError(t, err)

	var paths []string
	for gi, n := range counts {
		name := fmt.Sprintf("Group%c", 'A'+gi)
		for i := 1; i <= n; i++ {
			paths = append(paths, fmt.Sprintf("%03d_%s (%d).wav", gi+1, name, i))
		}
	}
	cat := catalog.Build(player, tbl, paths)
	require.Equal(t, len(counts), cat.Len())
	return New(cat), cat, player
}

func group(t *testing.T, cat *catalog.Catalog, name string) *catalog.Group {
	t.Helper()
	g, ok := cat.ByName(name)
	require.True(t, ok)
	return g
}

func handles(p *audiotest.Player, g *catalog.Group) []*audiotest.Handle {
	out := make([]*audiotest.Handle, len(g.Sounds))
	for i, h := range g.Sounds {
		out[i] = p.Handle(h.Path())
	}
	return out
}

func TestSequentialExhaustion(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	// Triggers walk 0, 1, 2.
	for want := 0; want < 3; want++ {
		ev := m.TriggerNext(g)
		assert.Equal(t, KindPlayed, ev.Kind)
		assert.Equal(t, want, ev.Index)
		assert.Equal(t, want, g.LastPlayedIndex)
		assert.True(t, hs[want].Playing)
	}

	// The fourth trigger resets to idle without starting anything.
	plays := hs[0].Plays + hs[1].Plays + hs[2].Plays
	ev := m.TriggerNext(g)
	assert.Equal(t, KindCompleted, ev.Kind)
	assert.True(t, g.Idle())
	assert.Equal(t, plays, hs[0].Plays+hs[1].Plays+hs[2].Plays,
		"completion must not start playback")
	assert.False(t, hs[2].Playing, "the final sound is stopped on the reset trigger")

	// The fifth restarts the sequence at zero.
	ev = m.TriggerNext(g)
	assert.Equal(t, KindPlayed, ev.Kind)
	assert.Equal(t, 0, ev.Index)
	assert.Equal(t, 0, g.LastPlayedIndex)
	assert.Equal(t, 2, hs[0].Plays)
}

func TestSequentialTriggerStopsPriorSound(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.TriggerNext(g)
	m.TriggerNext(g)

	assert.Equal(t, 1, hs[0].Stops)
	assert.False(t, hs[0].Playing)
	assert.True(t, hs[1].Playing)
}

func TestStackModeOverlaysSounds(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.ToggleStack()
	m.TriggerNext(g)
	m.TriggerNext(g)

	assert.True(t, hs[0].Playing, "stacked trigger must not stop the prior sound")
	assert.True(t, hs[1].Playing)
	assert.Zero(t, hs[0].Stops)
}

func TestTriggerSnapshotsTogglesAtTriggerTime(t *testing.T) {
	m, cat, _ := boardOf(t, 3)
	g := group(t, cat, "GroupA")

	m.TriggerNext(g)
	assert.False(t, g.StackEnabled)
	assert.False(t, g.LoopEnabled)

	// Toggling after the trigger leaves the active group untouched.
	m.ToggleStack()
	m.ToggleLoop()
	assert.False(t, g.StackEnabled)
	assert.False(t, g.LoopEnabled)

	// The next trigger picks the new values up.
	m.TriggerNext(g)
	assert.True(t, g.StackEnabled)
	assert.True(t, g.LoopEnabled)
	assert.Equal(t, catalog.ModeParallel, g.Mode)
}

func TestSnapshotGovernsTheTriggeringPress(t *testing.T) {
	// Stack toggled on while a sound plays: the very next trigger already
	// overlays instead of stopping.
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.TriggerNext(g)
	m.ToggleStack()
	m.TriggerNext(g)

	assert.True(t, hs[0].Playing)
	assert.True(t, hs[1].Playing)
}

func TestTriggerIndex(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	ev, err := m.TriggerIndex(g, 2)
	require.NoError(t, err)
	assert.Equal(t, KindPlayed, ev.Kind)
	assert.Equal(t, 2, g.LastPlayedIndex)
	assert.True(t, hs[2].Playing)

	// Sequence advance continues from the explicit position: 2 is the
	// last index, so the next sequential trigger completes.
	ev = m.TriggerNext(g)
	assert.Equal(t, KindCompleted, ev.Kind)
	assert.True(t, g.Idle())
}

func TestTriggerIndexRestartsActiveIndex(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.TriggerNext(g)
	_, err := m.TriggerIndex(g, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, hs[0].Stops, "restart stops the active sound first")
	assert.Equal(t, 2, hs[0].Plays)
	assert.True(t, hs[0].Playing)
}

func TestTriggerIndexOutOfRange(t *testing.T) {
	m, cat, _ := boardOf(t, 3)
	g := group(t, cat, "GroupA")

	for _, idx := range []int{-1, 3, 99} {
		_, err := m.TriggerIndex(g, idx)
		require.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", idx)
		assert.True(t, g.Idle(), "state must not change on a rejected index")
	}
}

func TestLoopTickRestartsEndedHandle(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.ToggleLoop()
	m.TriggerNext(g)
	require.True(t, g.LoopEnabled)

	// Still sounding: ticks do nothing.
	assert.Empty(t, m.Tick())
	assert.Empty(t, m.Tick())
	assert.Equal(t, 1, hs[0].Plays)

	// Natural end: the next tick reseeks to start and replays.
	hs[0].MarkEnded()
	events := m.Tick()
	require.Len(t, events, 1)
	assert.Equal(t, KindLoopRestart, events[0].Kind)
	assert.Equal(t, 0, events[0].Index)
	assert.Equal(t, 2, hs[0].Plays)
	assert.True(t, hs[0].AtStart())

	// Restart cleared the end state, so further ticks stay quiet.
	assert.Empty(t, m.Tick())
}

func TestLoopTickIgnoresNonLoopingGroups(t *testing.T) {
	m, cat, player := boardOf(t, 2)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.TriggerNext(g)
	hs[0].MarkEnded()

	assert.Empty(t, m.Tick())
	assert.Equal(t, 1, hs[0].Plays)
}

func TestLoopTickNonStackedInspectsOnlyLastIndex(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.ToggleLoop()
	m.TriggerNext(g)
	m.TriggerNext(g)

	// Index 0 sits at its end, but only index 1 is inspected.
	hs[0].MarkEnded()
	assert.Empty(t, m.Tick())
	assert.Equal(t, 1, hs[0].Plays)
}

func TestLoopTickStackedInspectsAllTriggeredIndexes(t *testing.T) {
	m, cat, player := boardOf(t, 3)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	m.ToggleLoop()
	m.ToggleStack()
	m.TriggerNext(g)
	m.TriggerNext(g)
	m.TriggerNext(g)

	hs[0].MarkEnded()
	hs[2].MarkEnded()

	events := m.Tick()
	require.Len(t, events, 2)
	assert.Equal(t, 2, hs[0].Plays)
	assert.Equal(t, 1, hs[1].Plays, "untouched while still sounding")
	assert.Equal(t, 2, hs[2].Plays)
}

func TestStopAllPreservesIndexes(t *testing.T) {
	m, cat, player := boardOf(t, 3, 2)
	a := group(t, cat, "GroupA")
	b := group(t, cat, "GroupB")
	ha := handles(player, a)
	hb := handles(player, b)

	m.TriggerNext(a)
	m.TriggerNext(a)
	m.TriggerNext(b)

	stopped := m.StopAll()
	assert.Equal(t, 5, stopped)
	assert.Equal(t, 1, a.LastPlayedIndex)
	assert.Equal(t, 0, b.LastPlayedIndex)
	for _, h := range append(ha, hb...) {
		assert.False(t, h.Playing)
	}

	// Sequential playback resumes from the stopped position's successor.
	ev := m.TriggerNext(a)
	assert.Equal(t, 2, ev.Index)
}

func TestAdapterErrorsDoNotAbortTransitions(t *testing.T) {
	m, cat, player := boardOf(t, 2)
	g := group(t, cat, "GroupA")
	hs := handles(player, g)

	hs[0].PlayErr = fmt.Errorf("device wedged")
	ev := m.TriggerNext(g)
	assert.Equal(t, KindPlayed, ev.Kind)
	assert.Equal(t, 0, g.LastPlayedIndex, "state advances even when the adapter fails")

	hs[0].StopErr = fmt.Errorf("still wedged")
	ev = m.TriggerNext(g)
	assert.Equal(t, 1, ev.Index)
	assert.True(t, hs[1].Playing)

	stopped := m.StopAll()
	assert.Equal(t, 1, stopped, "only the healthy handle counts")
	assert.Equal(t, 1, g.LastPlayedIndex)
}

func TestTriggerNextOnEmptyGroupIsNoop(t *testing.T) {
	m, _, _ := boardOf(t, 1)
	empty := &catalog.Group{Name: "Hollow", LastPlayedIndex: catalog.NoIndex}

	ev := m.TriggerNext(empty)
	assert.Equal(t, KindNone, ev.Kind)
	assert.True(t, empty.Idle())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "played", KindPlayed.String())
	assert.Equal(t, "completed", KindCompleted.String())
	assert.Equal(t, "loop_restart", KindLoopRestart.String())
	assert.Equal(t, "none", KindNone.String())
}
