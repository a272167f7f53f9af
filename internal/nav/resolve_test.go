package nav

import (
	"testing"

	"github.com/Team-GIVY/givy-cli/internal/session"
)

// loggedIn seeds a store with a token and the given progress flags.
func loggedIn(tendency, challenge bool) *session.MemStore {
	st := session.NewMemStore()
	session.SetTokens(st, "tok", "ref")
	if tendency {
		st.Set(session.KeyTendencyCompleted, "true")
	}
	if challenge {
		st.Set(session.KeyChallengeCompleted, "true")
	}
	return st
}

func TestResolveOverrideWinsVerbatim(t *testing.T) {
	// The override is a developer/deep-link escape hatch: no guards, no
	// validation, not even a token check.
	st := session.NewMemStore()
	st.Set(session.KeyCurrentScreen, string(ScreenHome))

	if got := ResolveInitial(st, "settings", ""); got != ScreenSettings {
		t.Errorf("override resolve = %q, want settings", got)
	}
	if got := ResolveInitial(st, "noSuchScreen", ""); got != Screen("noSuchScreen") {
		t.Errorf("override resolve = %q, want the override verbatim", got)
	}
}

func TestResolveOAuthCode(t *testing.T) {
	st := session.NewMemStore()
	if got := ResolveInitial(st, "", "kakao-code"); got != ScreenLoading {
		t.Errorf("resolve with pending code = %q, want loading", got)
	}

	// An already-authenticated session ignores a stray code.
	st2 := loggedIn(true, false)
	st2.Set(session.KeyCurrentScreen, string(ScreenSettings))
	if got := ResolveInitial(st2, "", "kakao-code"); got != ScreenSettings {
		t.Errorf("resolve with code but stored token = %q, want the persisted screen", got)
	}
}

func TestResolveNoTokenLandsLogin(t *testing.T) {
	for _, persisted := range []Screen{
		ScreenHome, ScreenHomeCheckIn, ScreenSettings, ScreenPersonalityTestQuestion,
		ScreenStartChallengeBuyConfirm, ScreenNotifications,
	} {
		st := session.NewMemStore()
		st.Set(session.KeyCurrentScreen, string(persisted))
		if got := ResolveInitial(st, "", ""); got != ScreenLogin {
			t.Errorf("resolve(%q, no token) = %q, want login", persisted, got)
		}
	}
}

func TestResolveNoTokenNeverLandsProtected(t *testing.T) {
	// Whatever is persisted, a tokenless record can never resolve to a
	// protected or auth-requiring screen.
	for _, persisted := range AllScreens {
		st := session.NewMemStore()
		st.Set(session.KeyCurrentScreen, string(persisted))
		got := ResolveInitial(st, "", "")
		if Protected(got) || RequiresAuth(got) {
			t.Errorf("resolve(%q, no token) = %q, a guarded screen", persisted, got)
		}
	}
}

func TestResolveNoTokenPublicScreensSurvive(t *testing.T) {
	st := session.NewMemStore()
	st.Set(session.KeyCurrentScreen, string(ScreenOnboarding))
	if got := ResolveInitial(st, "", ""); got != ScreenOnboarding {
		t.Errorf("resolve(onboarding, no token) = %q", got)
	}
}

func TestResolveProtectedRequiresTendency(t *testing.T) {
	st := loggedIn(false, false)
	st.Set(session.KeyCurrentScreen, string(ScreenSettings))
	if got := ResolveInitial(st, "", ""); got != ScreenPersonalityTestIntro {
		t.Errorf("resolve(settings, no tendency) = %q, want the survey intro", got)
	}
}

func TestResolveHomeVariant(t *testing.T) {
	st := loggedIn(true, false)
	st.Set(session.KeyCurrentScreen, string(ScreenHome))
	if got := ResolveInitial(st, "", ""); got != ScreenHomeCheckIn {
		t.Errorf("resolve(home, no challenge) = %q, want homeCheckIn", got)
	}

	st2 := loggedIn(true, true)
	st2.Set(session.KeyCurrentScreen, string(ScreenHome))
	if got := ResolveInitial(st2, "", ""); got != ScreenHome {
		t.Errorf("resolve(home, challenge done) = %q, want home", got)
	}
}

func TestResolveFinishedSurveyNotReentered(t *testing.T) {
	st := loggedIn(true, false)
	st.Set(session.KeyCurrentScreen, string(ScreenPersonalityTestQuestion))
	if got := ResolveInitial(st, "", ""); got != ScreenHomeCheckIn {
		t.Errorf("resolve(survey step, tendency done) = %q, want homeCheckIn", got)
	}

	st2 := loggedIn(true, true)
	st2.Set(session.KeyCurrentScreen, string(ScreenPersonalityTestResult))
	if got := ResolveInitial(st2, "", ""); got != ScreenStockDetail {
		t.Errorf("resolve(survey step, all done) = %q, want stockDetail", got)
	}
}

func TestResolveAnalyzingStepNotResumable(t *testing.T) {
	// The analyzing screen waits on an in-flight submit; after a
	// relaunch there is none, so it resumes at the question form.
	st := loggedIn(false, false)
	st.Set(session.KeyCurrentScreen, string(ScreenPersonalityTestAnalyzing))
	if got := ResolveInitial(st, "", ""); got != ScreenPersonalityTestQuestion {
		t.Errorf("resolve(analyzing, tendency pending) = %q, want the question form", got)
	}
}

func TestResolveChallengeStepNotResumable(t *testing.T) {
	for _, persisted := range []Screen{ScreenStartChallengeProduct, ScreenStartChallengeBuyGuide} {
		st := loggedIn(true, false)
		st.Set(session.KeyCurrentScreen, string(persisted))
		if got := ResolveInitial(st, "", ""); got != ScreenHomeCheckIn {
			t.Errorf("resolve(%q) = %q, challenge flows restart from home", persisted, got)
		}
	}
}

func TestResolveRoundTrip(t *testing.T) {
	// Quit on settings, relaunch, land on settings.
	st := loggedIn(true, true)
	st.Set(session.KeyCurrentScreen, string(ScreenSettings))
	if got := ResolveInitial(st, "", ""); got != ScreenSettings {
		t.Errorf("round-trip resolve = %q, want settings", got)
	}
}

func TestResolveAfterLogout(t *testing.T) {
	// Logout clears everything and pins currentScreen to login; the
	// resolver must honor that instead of replaying old state.
	st := loggedIn(true, true)
	st.Set(session.KeyCurrentScreen, string(ScreenHome))
	st.Clear()
	st.Set(session.KeyCurrentScreen, "login")

	if got := ResolveInitial(st, "", ""); got != ScreenLogin {
		t.Errorf("resolve after logout = %q, want login", got)
	}
}

func TestResolveEmptyStore(t *testing.T) {
	st := session.NewMemStore()
	if got := ResolveInitial(st, "", ""); got != ScreenSplash {
		t.Errorf("first-launch resolve = %q, want splash", got)
	}
}

func TestResolveGarbagePersistedScreen(t *testing.T) {
	st := loggedIn(true, true)
	st.Set(session.KeyCurrentScreen, "not-a-screen")
	if got := ResolveInitial(st, "", ""); got != ScreenSplash {
		t.Errorf("resolve(garbage) = %q, want splash", got)
	}
}
