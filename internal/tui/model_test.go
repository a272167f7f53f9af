package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Team-GIVY/givy-cli/internal/api"
	"github.com/Team-GIVY/givy-cli/internal/auth"
	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/quotes"
	"github.com/Team-GIVY/givy-cli/internal/session"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

func quoteFor(price float64) quotes.Quote {
	return quotes.Quote{Code: "005930", Price: price, ChangeRate: 0.5}
}

func newTestModel(t *testing.T, st session.Store, screen nav.Screen) Model {
	t.Helper()
	client := api.New("http://backend.invalid")
	mgr := auth.NewManager(st, client)
	machine := nav.NewMachine(st, screen)
	m := NewModel(st, machine, mgr, client, "", "")
	m.width = 80
	m.height = 24
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestSplashDoneAdvances(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenSplash)

	m = update(t, m, splashDoneMsg{})

	if got := m.machine.Current(); got != nav.ScreenOnboarding {
		t.Errorf("screen after splash = %q, want onboarding", got)
	}
	if persisted := st.Get(session.KeyCurrentScreen); persisted != string(nav.ScreenOnboarding) {
		t.Errorf("persisted = %q", persisted)
	}
}

func TestStaleSplashDoneIgnored(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenLogin)

	// A splash timer firing after the user already skipped must not
	// yank the screen.
	m = update(t, m, splashDoneMsg{})

	if got := m.machine.Current(); got != nav.ScreenLogin {
		t.Errorf("screen = %q, want login", got)
	}
}

func TestLogoutConfirmOverlay(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenSettings)

	m = update(t, m, keyMsg("l"))
	if !m.showLogoutConfirm {
		t.Fatal("overlay not shown")
	}

	// While the overlay is up, screen keys are swallowed.
	m = update(t, m, keyMsg("p"))
	if got := m.machine.Current(); got != nav.ScreenSettings {
		t.Errorf("screen moved under overlay: %q", got)
	}

	m = update(t, m, keyMsg("n"))
	if m.showLogoutConfirm {
		t.Error("overlay not dismissed")
	}
	if got := m.machine.Current(); got != nav.ScreenSettings {
		t.Errorf("dismissing the overlay moved the screen: %q", got)
	}
}

func TestWithdrawRequiresConfirm(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenSettingsWithdraw)

	m = update(t, m, keyMsg("enter"))
	if !m.showWithdrawConfirm {
		t.Fatal("withdraw confirm not shown")
	}
	if got := m.machine.Current(); got != nav.ScreenSettingsWithdraw {
		t.Errorf("screen moved before confirmation: %q", got)
	}

	m = update(t, m, keyMsg("esc"))
	if m.showWithdrawConfirm {
		t.Error("confirm overlay not dismissed")
	}
}

func TestSessionExpiredResetsToLogin(t *testing.T) {
	st := session.NewMemStore()
	session.SetTokens(st, "tok", "ref")
	session.CompleteChallenge(st)
	m := newTestModel(t, st, nav.ScreenHome)

	// What the pipeline leaves behind after a forced logout, followed
	// by the error surfacing in a load message.
	st.Clear()
	st.Set(session.KeyCurrentScreen, "login")
	m = update(t, m, meLoadedMsg{err: fmt.Errorf("GET /auth/users/me: %w", api.ErrSessionExpired)})

	if got := m.machine.Current(); got != nav.ScreenLogin {
		t.Errorf("screen after session expiry = %q, want login", got)
	}
	if m.errMsg == "" {
		t.Error("no message shown for the expired session")
	}
}

func TestRecommendationsErrorBlocksTransition(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenStartChallengeInvestType)
	m.busy = true

	m = update(t, m, recommendationsMsg{err: errors.New("recommendation service down")})

	if got := m.machine.Current(); got != nav.ScreenStartChallengeInvestType {
		t.Errorf("transitioned despite missing critical data: %q", got)
	}
	if m.errMsg == "" {
		t.Error("critical-path failure not surfaced")
	}
	if m.busy {
		t.Error("still busy after the result landed")
	}
}

func TestRecommendationsSuccessAdvances(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenStartChallengeInvestType)
	m.busy = true

	m = update(t, m, recommendationsMsg{products: []types.Product{{ID: 1, Name: "Samsung Electronics"}}})

	if got := m.machine.Current(); got != nav.ScreenStartChallengeRecommendProduct {
		t.Errorf("screen = %q, want the recommend step", got)
	}
	if len(m.products) != 1 {
		t.Errorf("products = %v", m.products)
	}
}

func TestSurveyFailureReturnsToQuestion(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenPersonalityTestAnalyzing)
	m.busy = true

	m = update(t, m, surveyResultMsg{err: errors.New("survey service down")})

	if got := m.machine.Current(); got != nav.ScreenPersonalityTestQuestion {
		t.Errorf("screen after failed submit = %q, want the question form", got)
	}
	if m.errMsg == "" {
		t.Error("submit failure not surfaced")
	}
	if session.TendencyCompleted(st) {
		t.Error("tendency marked complete on a failed submit")
	}
}

func TestInvestTypeCursorSurvivesProductScroll(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenStartChallengeRecommendProduct)
	m.products = []types.Product{
		{ID: 1, Name: "Samsung Electronics"}, {ID: 2, Name: "Kakao"},
		{ID: 3, Name: "Naver"}, {ID: 4, Name: "Hyundai Motor"},
	}

	// Scroll past the three invest-type options, then go back and pick.
	for i := 0; i < 3; i++ {
		m = update(t, m, keyMsg("j"))
	}
	m = update(t, m, keyMsg("esc"))
	if got := m.machine.Current(); got != nav.ScreenStartChallengeInvestType {
		t.Fatalf("screen after esc = %q, want the invest-type step", got)
	}

	m = update(t, m, keyMsg("enter"))
	if got := st.Get(session.KeyInvestmentType); got != "conservative" {
		t.Errorf("selected type = %q, want the first option", got)
	}
	if !m.busy {
		t.Error("selection did not kick off the recommendation fetch")
	}
}

func TestSideEffectErrorIsSwallowed(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenHomeCheckIn)

	m = update(t, m, sideEffectMsg{event: "attendance.checkin", err: errors.New("503")})

	if m.errMsg != "" {
		t.Errorf("side-effect failure surfaced to the user: %q", m.errMsg)
	}
	if got := m.machine.Current(); got != nav.ScreenHomeCheckIn {
		t.Errorf("side-effect failure moved the screen: %q", got)
	}
}

func TestQuoteTickUpdatesPrice(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenStockDetail)

	m = update(t, m, quoteMsg{q: quoteFor(71000)})
	if m.quote == nil || m.quote.Price != 71000 {
		t.Errorf("quote = %+v", m.quote)
	}

	m = update(t, m, quoteMsg{q: quoteFor(71500)})
	if m.quote.Price != 71500 {
		t.Errorf("quote not replaced by newer tick: %+v", m.quote)
	}
}

func TestBusyBlocksKeys(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenSettings)
	m.busy = true

	m = update(t, m, keyMsg("p"))
	if got := m.machine.Current(); got != nav.ScreenSettings {
		t.Errorf("key handled while busy: %q", got)
	}
}

func TestWindowSize(t *testing.T) {
	st := session.NewMemStore()
	m := newTestModel(t, st, nav.ScreenLogin)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}
