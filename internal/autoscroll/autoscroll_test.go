package autoscroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduler struct {
	next     FrameID
	pending  map[FrameID]func(time.Time)
	canceled []FrameID
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{pending: make(map[FrameID]func(time.Time))}
}

func (f *fakeScheduler) RequestFrame(fn func(time.Time)) FrameID {
	f.next++
	f.pending[f.next] = fn
	return f.next
}

func (f *fakeScheduler) CancelFrame(id FrameID) {
	f.canceled = append(f.canceled, id)
	delete(f.pending, id)
}

// fire runs every pending callback once, like a single animation frame.
func (f *fakeScheduler) fire(now time.Time) {
	due := f.pending
	f.pending = make(map[FrameID]func(time.Time))
	for _, fn := range due {
		fn(now)
	}
}

type fakeScroller struct {
	deltas []int
}

func (f *fakeScroller) ScrollBy(delta int) { f.deltas = append(f.deltas, delta) }

func (f *fakeScroller) total() int {
	n := 0
	for _, d := range f.deltas {
		n += d
	}
	return n
}

func constSpeed(v float64) SpeedFunc { return func() float64 { return v } }

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func TestFirstFrameOnlyRecordsTick(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(1000))

	c.Start()
	sched.fire(at(0))

	assert.Empty(t, scr.deltas)
	assert.Len(t, sched.pending, 1, "loop reschedules itself")
}

func TestSteadyRate(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(30))

	c.Start()
	sched.fire(at(0))
	sched.fire(at(100))
	sched.fire(at(200))
	sched.fire(at(300))

	assert.Equal(t, 9, scr.total())
}

func TestRemainderCarriesSlowSpeeds(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(1))

	c.Start()
	sched.fire(at(0))
	for i := 1; i <= 62; i++ {
		sched.fire(at(i * 16))
	}
	assert.Equal(t, 0, scr.total())

	sched.fire(at(63 * 16))
	assert.Equal(t, 1, scr.total())
}

func TestJitterDoesNotDrift(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(45))

	c.Start()
	sched.fire(at(0))
	for _, ms := range []int{7, 40, 41, 90, 133, 134, 250, 500, 1010} {
		sched.fire(at(ms))
	}

	assert.Equal(t, 45, scr.total()) // 45.45 exact
	for _, d := range scr.deltas {
		assert.Positive(t, d, "only positive distances are applied")
	}
}

func TestSpeedChangeAppliesNextFrame(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	speed := 10.0
	c := New(sched, scr, func() float64 { return speed })

	c.Start()
	sched.fire(at(0))
	sched.fire(at(1000))
	require.Equal(t, []int{10}, scr.deltas)

	speed = 100
	sched.fire(at(2000))
	assert.Equal(t, []int{10, 100}, scr.deltas)
}

func TestStopCancelsAndResets(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(1))

	c.Start()
	sched.fire(at(0))
	sched.fire(at(900)) // 0.9 carried
	s := c.session

	assert.False(t, c.Toggle())
	assert.False(t, c.Running())
	assert.Empty(t, sched.pending)
	assert.Len(t, sched.canceled, 1)
	assert.Zero(t, s.remainder)
	assert.False(t, s.hasTick)

	assert.True(t, c.Toggle())
	sched.fire(at(5000))
	assert.Empty(t, scr.deltas, "first frame after a restart never scrolls")

	sched.fire(at(5200)) // 0.2 without the old 0.9
	assert.Empty(t, scr.deltas)
	assert.InDelta(t, 0.2, c.session.remainder, 1e-9)
}

func TestStaleFrameIgnored(t *testing.T) {
	sched, scr := newFakeScheduler(), &fakeScroller{}
	c := New(sched, scr, constSpeed(100))

	c.Start()
	sched.fire(at(0))
	var stale func(time.Time)
	for _, fn := range sched.pending {
		stale = fn
	}
	c.Stop()
	c.Start()

	stale(at(1000))
	assert.Empty(t, scr.deltas)
	assert.False(t, c.session.hasTick)
}

func TestStartIsIdempotent(t *testing.T) {
	sched := newFakeScheduler()
	c := New(sched, &fakeScroller{}, constSpeed(1))

	c.Start()
	c.Start()
	assert.Len(t, sched.pending, 1)

	c.Stop()
	c.Stop()
	assert.Len(t, sched.canceled, 1)
}
