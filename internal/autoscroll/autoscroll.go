// Package autoscroll moves a viewport at a steady rate driven by frame
// callbacks. Whole units are scrolled per frame and the fractional part is
// carried to the next frame, so slow speeds still move and no distance is
// lost to rounding.
package autoscroll

import (
	"math"
	"time"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// Scheduler invokes a callback once before the next frame is drawn.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

// Scroller moves the viewport by a relative offset.
type Scroller interface {
	ScrollBy(delta int)
}

// SpeedFunc returns the configured speed in units per second. It is read on
// every frame so a change applies on the next one.
type SpeedFunc func() float64

// Session is the state of one run, from Start to Stop.
type Session struct {
	lastTick  time.Time
	hasTick   bool
	remainder float64
	frame     FrameID
}

type Controller struct {
	sched    Scheduler
	scroller Scroller
	speed    SpeedFunc

	session *Session
}

func New(sched Scheduler, scroller Scroller, speed SpeedFunc) *Controller {
	return &Controller{sched: sched, scroller: scroller, speed: speed}
}

func (c *Controller) Running() bool {
	return c.session != nil
}

// Toggle starts or stops the loop and reports whether it is now running.
func (c *Controller) Toggle() bool {
	if c.session != nil {
		c.Stop()
		return false
	}
	c.Start()
	return true
}

func (c *Controller) Start() {
	if c.session != nil {
		return
	}
	s := &Session{}
	c.session = s
	c.schedule(s)
}

func (c *Controller) Stop() {
	s := c.session
	if s == nil {
		return
	}
	c.sched.CancelFrame(s.frame)
	s.hasTick = false
	s.lastTick = time.Time{}
	s.remainder = 0
	c.session = nil
}

func (c *Controller) schedule(s *Session) {
	s.frame = c.sched.RequestFrame(func(now time.Time) {
		c.tick(s, now)
	})
}

func (c *Controller) tick(s *Session, now time.Time) {
	// frame from a run that has since been stopped
	if s != c.session {
		return
	}

	if s.hasTick {
		elapsed := now.Sub(s.lastTick)
		if elapsed < 0 {
			elapsed = 0
		}
		speed := c.speed()
		if speed < 0 {
			speed = 0
		}
		exact := speed*elapsed.Seconds() + s.remainder
		whole := math.Floor(exact)
		s.remainder = exact - whole
		if whole > 0 {
			c.scroller.ScrollBy(int(whole))
		}
	}
	s.lastTick = now
	s.hasTick = true

	if c.session == s {
		c.schedule(s)
	}
}
