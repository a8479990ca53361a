package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// driver delivers events against a manual clock the way the TUI does with
// tea.Tick, so tests can observe state at exact offsets.
type driver struct {
	seq     *Sequencer
	clock   *ManualClock
	pending *Event
	elapsed time.Duration
}

func newDriver(opts ...Option) *driver {
	clock := NewManualClock(time.Unix(0, 0))
	opts = append([]Option{WithClock(clock)}, opts...)
	return &driver{seq: New(opts...), clock: clock}
}

func (d *driver) start() bool {
	ev, ok := d.seq.Start()
	if ok {
		d.pending = &ev
		d.elapsed = 0
	}
	return ok
}

// advanceTo fires every pending event due at or before target.
func (d *driver) advanceTo(target time.Duration) {
	for d.pending != nil {
		wait := d.seq.Delay(*d.pending)
		if d.elapsed+wait > target {
			break
		}
		d.clock.Advance(wait)
		d.elapsed += wait
		next, ok := d.seq.Fire(*d.pending)
		if ok {
			d.pending = &next
		} else {
			d.pending = nil
		}
	}
	d.clock.Advance(target - d.elapsed)
	d.elapsed = target
}

func headlines(n int) []string {
	var out []string
	for _, step := range Steps()[:n] {
		out = append(out, step.Headline)
	}
	return out
}

func TestTimelineOffsets(t *testing.T) {
	events := Timeline()
	require.Len(t, events, StepCount()+1)
	want := []time.Duration{0, 1500 * time.Millisecond, 3000 * time.Millisecond, 3900 * time.Millisecond}
	for i, ev := range events {
		assert.Equal(t, i, ev.Index)
		assert.Equal(t, want[i], ev.At)
		assert.Equal(t, i == StepCount(), ev.Terminal())
	}
}

func TestFullRunEmitsStepsAtFixedOffsets(t *testing.T) {
	d := newDriver()
	require.True(t, d.start())

	snap := d.seq.Snapshot()
	assert.True(t, snap.Started)
	assert.True(t, snap.Running)
	assert.Empty(t, snap.Emitted)

	d.advanceTo(0)
	assert.Equal(t, headlines(1), d.seq.Snapshot().Emitted)
	assert.Equal(t, Steps()[0].Detail, d.seq.Snapshot().Detail)

	d.advanceTo(1499 * time.Millisecond)
	assert.Len(t, d.seq.Snapshot().Emitted, 1)

	d.advanceTo(1500 * time.Millisecond)
	assert.Equal(t, headlines(2), d.seq.Snapshot().Emitted)

	d.advanceTo(3000 * time.Millisecond)
	snap = d.seq.Snapshot()
	assert.Equal(t, headlines(3), snap.Emitted)
	assert.Equal(t, Steps()[2].Detail, snap.Detail)
	assert.True(t, snap.Running)
	assert.False(t, snap.ResultReady)

	d.advanceTo(3899 * time.Millisecond)
	assert.False(t, d.seq.Snapshot().ResultReady)

	d.advanceTo(3900 * time.Millisecond)
	snap = d.seq.Snapshot()
	assert.True(t, snap.ResultReady)
	assert.False(t, snap.Running)
	assert.Equal(t, PhaseCompleted, d.seq.Phase())
	assert.Nil(t, d.pending)
}

func TestStartWhileRunningIsIgnored(t *testing.T) {
	var notices []Notice
	d := newDriver(WithObserver(func(n Notice) { notices = append(notices, n) }))
	require.True(t, d.start())
	d.advanceTo(1500 * time.Millisecond)
	before := d.seq.Snapshot()

	_, ok := d.seq.Start()
	assert.False(t, ok)
	assert.Equal(t, before, d.seq.Snapshot())
	require.NotEmpty(t, notices)
	assert.Equal(t, NoticeIgnoredStart, notices[len(notices)-1].Kind)

	d.advanceTo(3900 * time.Millisecond)
	assert.True(t, d.seq.Snapshot().ResultReady)
}

func TestResetCancelsEveryPendingEvent(t *testing.T) {
	d := newDriver()
	require.True(t, d.start())
	d.advanceTo(0)
	stale := Timeline()
	for i := range stale {
		stale[i].Run = d.seq.Snapshot().Run
	}

	d.seq.Reset()
	after := d.seq.Snapshot()
	assert.False(t, after.Started)
	assert.False(t, after.Running)
	assert.Empty(t, after.Emitted)
	assert.False(t, after.ResultReady)

	for _, ev := range stale {
		d.clock.Advance(time.Second)
		_, ok := d.seq.Fire(ev)
		assert.False(t, ok)
		assert.Equal(t, after, d.seq.Snapshot(), "stale event %d mutated state", ev.Index)
	}
	assert.Equal(t, PhaseIdle, d.seq.Phase())
}

func TestRestartInvalidatesPreviousRun(t *testing.T) {
	d := newDriver()
	require.True(t, d.start())
	d.advanceTo(3900 * time.Millisecond)
	oldRun := d.seq.Snapshot().Run

	require.True(t, d.start())
	snap := d.seq.Snapshot()
	assert.NotEqual(t, oldRun, snap.Run)
	assert.Empty(t, snap.Emitted)
	assert.False(t, snap.ResultReady)

	_, ok := d.seq.Fire(Event{Run: oldRun, Index: 0})
	assert.False(t, ok)
	assert.Empty(t, d.seq.Snapshot().Emitted)
}

func TestOutOfOrderEventIsIgnored(t *testing.T) {
	d := newDriver()
	first, ok := d.seq.Start()
	require.True(t, ok)

	skipped := Event{Run: first.Run, Index: 2, At: 3 * StepInterval}
	_, ok = d.seq.Fire(skipped)
	assert.False(t, ok)
	assert.Empty(t, d.seq.Snapshot().Emitted)

	next, ok := d.seq.Fire(first)
	require.True(t, ok)
	assert.Equal(t, 1, next.Index)
}

func TestDelayIsMeasuredFromRunStart(t *testing.T) {
	d := newDriver()
	first, ok := d.seq.Start()
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), d.seq.Delay(first))

	d.clock.Advance(200 * time.Millisecond)
	next, ok := d.seq.Fire(first)
	require.True(t, ok)
	assert.Equal(t, 1300*time.Millisecond, d.seq.Delay(next))

	d.clock.Advance(5 * time.Second)
	assert.Equal(t, time.Duration(0), d.seq.Delay(next))
}

func TestClearResultKeepsLog(t *testing.T) {
	d := newDriver()
	require.True(t, d.start())
	d.advanceTo(3900 * time.Millisecond)

	d.seq.ClearResult()
	snap := d.seq.Snapshot()
	assert.False(t, snap.ResultReady)
	assert.True(t, snap.Started)
	assert.Len(t, snap.Emitted, StepCount())
}

func TestObserverSeesRunLifecycle(t *testing.T) {
	var kinds []NoticeKind
	d := newDriver(WithObserver(func(n Notice) { kinds = append(kinds, n.Kind) }))
	require.True(t, d.start())
	d.advanceTo(3900 * time.Millisecond)
	assert.Equal(t, []NoticeKind{
		NoticeStarted, NoticeStep, NoticeStep, NoticeStep, NoticeCompleted,
	}, kinds)
}
