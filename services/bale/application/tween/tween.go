// Package tween models the presentation side of a rotation: an eased angle
// interpolation with a completion callback that fires exactly once.
package tween

import (
	"sync/atomic"
	"time"
)

// Tween interpolates a yaw angle between two orientations.
type Tween struct {
	From     float64       `json:"from"`
	To       float64       `json:"to"`
	Duration time.Duration `json:"duration"`
}

// Angle returns the eased angle after elapsed time, clamped to [From, To].
func (t Tween) Angle(elapsed time.Duration) float64 {
	if t.Duration <= 0 || elapsed >= t.Duration {
		return t.To
	}
	if elapsed <= 0 {
		return t.From
	}
	p := float64(elapsed) / float64(t.Duration)
	// ease-in-out quad
	if p < 0.5 {
		p = 2 * p * p
	} else {
		p = 1 - 2*(1-p)*(1-p)
	}
	return t.From + (t.To-t.From)*p
}

// Handle is a scheduled completion. Fire and Stop may race freely and never
// block; the completion runs at most once.
type Handle struct {
	done  atomic.Bool
	timer *time.Timer
	fn    func(*Handle)
}

// Fire runs the completion now unless it already ran or was stopped.
func (h *Handle) Fire() {
	if !h.done.CompareAndSwap(false, true) {
		return
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	h.fn(h)
}

func (h *Handle) expire() {
	if h.done.CompareAndSwap(false, true) {
		h.fn(h)
	}
}

// Stop cancels the completion. It reports whether the completion was still pending.
func (h *Handle) Stop() bool {
	if !h.done.CompareAndSwap(false, true) {
		return false
	}
	if h.timer != nil {
		h.timer.Stop()
	}
	return true
}

// Scheduler arms completion callbacks on timers.
type Scheduler struct {
	grace time.Duration
}

// NewScheduler returns a scheduler that fires a completion grace after the tween ends.
func NewScheduler(grace time.Duration) *Scheduler {
	return &Scheduler{grace: grace}
}

// Schedule arms fn to run once after t.Duration plus the grace period.
// fn receives the handle it was armed with.
func (s *Scheduler) Schedule(t Tween, fn func(*Handle)) *Handle {
	h := &Handle{fn: fn}
	h.timer = time.AfterFunc(t.Duration+s.grace, h.expire)
	return h
}
