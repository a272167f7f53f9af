package nav

import (
	"fmt"

	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/session"
)

// Machine holds the current screen and drives transitions. Every
// transition persists the new screen name so the next launch resumes
// where the user left off.
type Machine struct {
	store  session.Store
	screen Screen
	splash *Timer
}

// NewMachine starts the machine at the given (already resolved) screen
// and persists it.
func NewMachine(st session.Store, initial Screen) *Machine {
	m := &Machine{store: st, screen: initial}
	st.Set(session.KeyCurrentScreen, string(initial))
	return m
}

// Current returns the active screen.
func (m *Machine) Current() Screen {
	return m.screen
}

// Transition applies an action from the current screen. Unknown actions
// are an error: the table defines exactly one target per (screen,
// action) and nothing else moves the machine.
func (m *Machine) Transition(action Action) (Screen, error) {
	row, ok := transitions[m.screen]
	if !ok {
		return m.screen, fmt.Errorf("screen %q has no outbound transitions", m.screen)
	}
	target, ok := row[action]
	if !ok {
		return m.screen, fmt.Errorf("screen %q does not accept action %q", m.screen, action)
	}

	m.applyEffects(m.screen, action, target)
	m.setScreen(target)
	return target, nil
}

// CompleteLogin lands a successful authentication. The destination
// depends on progress: no survey yet means the survey intro, a finished
// challenge means the full home, otherwise the check-in home.
func (m *Machine) CompleteLogin() Screen {
	target := ScreenPersonalityTestIntro
	if session.TendencyCompleted(m.store) {
		if session.ChallengeCompleted(m.store) {
			target = ScreenHome
		} else {
			target = ScreenHomeCheckIn
		}
	}
	m.setScreen(target)
	return target
}

// GoHome returns to whichever home variant the progress flags allow.
// Used by screens whose "back" means "leave this flow".
func (m *Machine) GoHome() Screen {
	target := ScreenHomeCheckIn
	if session.ChallengeCompleted(m.store) {
		target = ScreenHome
	}
	m.setScreen(target)
	return target
}

// Reset points the machine at a freshly resolved screen. Used for the
// forced-logout "hard reload": the session is already cleared, so the
// resolver lands on login.
func (m *Machine) Reset(override, oauthCode string) Screen {
	m.CancelSplash()
	m.screen = ResolveInitial(m.store, override, oauthCode)
	m.store.Set(session.KeyCurrentScreen, string(m.screen))
	return m.screen
}

// applyEffects mutates progress flags for the transitions that complete
// or explicitly restart a flow.
func (m *Machine) applyEffects(from Screen, action Action, to Screen) {
	switch {
	case to == ScreenPersonalityTestResult:
		// Survey finished once the analyzing step hands over its result.
		session.CompleteTendency(m.store)
	case to == ScreenStartChallengeComplete:
		session.CompleteChallenge(m.store)
	case action == ActionRetest:
		session.ResetTendency(m.store)
	case action == ActionRestart:
		session.ResetChallenge(m.store)
	}
	_ = from
}

func (m *Machine) setScreen(s Screen) {
	applog.Info("nav.transition", "from", m.screen, "to", s)
	m.screen = s
	m.store.Set(session.KeyCurrentScreen, string(s))
}
