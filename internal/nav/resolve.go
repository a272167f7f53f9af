package nav

import (
	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/session"
)

// ResolveInitial picks the screen to show on launch. It runs exactly
// once per load and produces exactly one decision.
//
// Priority: an explicit override beats everything (developer/deep-link,
// no guards); a pending OAuth code with no stored token resolves to the
// loading screen; otherwise the persisted screen is run through the
// guard chain.
func ResolveInitial(st session.Store, override, oauthCode string) Screen {
	if override != "" {
		applog.Info("nav.resolve", "screen", override, "via", "override")
		return Screen(override)
	}

	if oauthCode != "" && session.AccessToken(st) == "" {
		applog.Info("nav.resolve", "screen", ScreenLoading, "via", "oauth")
		return ScreenLoading
	}

	resolved := applyGuards(st, Screen(st.Get(session.KeyCurrentScreen)))
	applog.Info("nav.resolve", "screen", resolved, "via", "guards")
	return resolved
}

// applyGuards runs the persisted screen through the guard chain, in
// order. First match wins.
func applyGuards(st session.Store, persisted Screen) Screen {
	tendency := session.TendencyCompleted(st)
	challenge := session.ChallengeCompleted(st)

	// No token means no authenticated screen, full stop. An absent
	// session resolves to login rather than replaying wherever the
	// record says the user was.
	if session.AccessToken(st) == "" && RequiresAuth(persisted) {
		return ScreenLogin
	}

	// Protected-route guard: nothing past auth until the survey is done.
	if !tendency && Protected(persisted) {
		return ScreenPersonalityTestIntro
	}

	// Home/challenge guard: the full home requires a completed challenge.
	if persisted == ScreenHome || persisted == ScreenStockDetail {
		if challenge {
			return persisted
		}
		return ScreenHomeCheckIn
	}

	// Completion guard: never re-enter a finished survey on reload.
	if PersonalityStep(persisted) && tendency {
		if challenge {
			return ScreenStockDetail
		}
		return ScreenHomeCheckIn
	}

	// The analyzing step waits on a submit that no longer exists after
	// a relaunch, so it resumes at the question form instead.
	if persisted == ScreenPersonalityTestAnalyzing {
		return ScreenPersonalityTestQuestion
	}

	// Challenge flows are not resumable mid-step across launches.
	if ChallengeStep(persisted) && !challenge {
		return ScreenHomeCheckIn
	}

	if Valid(persisted) {
		return persisted
	}
	return ScreenSplash
}
