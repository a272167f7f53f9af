package nav

import (
	"sync"
	"time"
)

// Splash timing: a 2s hold, then a 0.5s fade, then the auto-advance to
// onboarding. The only time-driven transition in the machine.
const (
	SplashHold = 2 * time.Second
	SplashFade = 500 * time.Millisecond
)

// SplashDuration is the total time splash stays on screen.
func SplashDuration() time.Duration {
	return SplashHold + SplashFade
}

// Timer is a cancellable one-shot timer. Cancel and the callback are
// mutually exclusive: whichever wins the race, the other is a no-op.
type Timer struct {
	mu    sync.Mutex
	t     *time.Timer
	fired bool
	done  bool
}

func newTimer(d time.Duration, fn func()) *Timer {
	tm := &Timer{}
	tm.t = time.AfterFunc(d, func() {
		tm.mu.Lock()
		if tm.done {
			tm.mu.Unlock()
			return
		}
		tm.fired = true
		tm.done = true
		tm.mu.Unlock()
		fn()
	})
	return tm
}

// Cancel stops the timer. It reports whether the callback was prevented
// from running.
func (tm *Timer) Cancel() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	if tm.done {
		return false
	}
	tm.done = true
	tm.t.Stop()
	return true
}

// Fired reports whether the callback ran.
func (tm *Timer) Fired() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.fired
}

// StartSplashTimer schedules the splash auto-advance and hands the
// machine ownership of the timer. fn runs after the full hold+fade
// unless CancelSplash wins first (early teardown, key skip).
func (m *Machine) StartSplashTimer(fn func()) *Timer {
	m.CancelSplash()
	m.splash = newTimer(SplashDuration(), fn)
	return m.splash
}

// CancelSplash stops a pending splash auto-advance, if any.
func (m *Machine) CancelSplash() {
	if m.splash != nil {
		m.splash.Cancel()
		m.splash = nil
	}
}
