// Package tui is the render/input shell. All navigation decisions live
// in the nav machine; the model maps key presses to actions, runs the
// network calls a transition needs, and draws whichever screen is
// current.
package tui

import (
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Team-GIVY/givy-cli/internal/api"
	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/auth"
	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/quotes"
	"github.com/Team-GIVY/givy-cli/internal/session"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

// Model is the single Bubble Tea model for the whole client.
type Model struct {
	store   session.Store
	machine *nav.Machine
	auth    *auth.Manager
	api     *api.Client
	wsURL   string

	oauthCode string // pending OAuth callback code, consumed on Init

	width  int
	height int
	busy   bool
	errMsg string
	notice string

	// Modal overlays. These render atop the current screen and are not
	// screens themselves.
	showLogoutConfirm   bool
	showWithdrawConfirm bool

	// Forms
	emailInput    textinput.Model
	passwordInput textinput.Model
	nickInput     textinput.Model
	focusPassword bool
	spin          spinner.Model

	// Signup accumulates across its steps.
	signupEmail    string
	signupPassword string

	// Survey state
	surveyIdx     int
	surveyAnswers [8]string

	// Data loaded for screens
	user          *types.UserDetail
	tendency      *types.TendencyResult
	brokerages    []types.Brokerage
	brokerCursor  int
	typeCursor    int
	products      []types.Product
	productCursor int
	notifications []types.Notification
	notifCursor   int
	quote         *quotes.Quote
	stream        *quotes.Stream
}

// NewModel builds the model around an already-resolved initial screen.
func NewModel(st session.Store, machine *nav.Machine, mgr *auth.Manager, client *api.Client, wsURL, oauthCode string) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	nick := textinput.New()
	nick.Placeholder = "nickname"
	nick.CharLimit = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		store:         st,
		machine:       machine,
		auth:          mgr,
		api:           client,
		wsURL:         wsURL,
		oauthCode:     oauthCode,
		emailInput:    email,
		passwordInput: password,
		nickInput:     nick,
		spin:          sp,
	}
}

func (m Model) Init() tea.Cmd {
	switch m.machine.Current() {
	case nav.ScreenSplash:
		return m.splashCmd()
	case nav.ScreenLoading:
		if m.oauthCode != "" {
			return tea.Batch(m.spin.Tick, m.oauthCmd(m.oauthCode))
		}
	}
	return m.enterCmd(m.machine.Current())
}

// enterCmd returns the load a screen needs on entry, or nil.
func (m Model) enterCmd(s nav.Screen) tea.Cmd {
	switch s {
	case nav.ScreenStartChallengeBrokerage:
		return m.brokerageListCmd()
	case nav.ScreenNotifications:
		return m.notificationsCmd()
	case nav.ScreenSettingsProfile, nav.ScreenHome, nav.ScreenHomeCheckIn:
		return m.loadMeCmd()
	case nav.ScreenStockDetail:
		code := m.store.Get(session.KeySelectedProductCode)
		if code != "" {
			return m.dialQuotesCmd(code)
		}
	}
	return nil
}

// transition applies a table action and returns the entry command for
// the new screen.
func (m *Model) transition(action nav.Action) tea.Cmd {
	target, err := m.machine.Transition(action)
	if err != nil {
		applog.Error("tui.transition", err, "screen", m.machine.Current())
		return nil
	}
	m.leaveCleanup()
	m.errMsg = ""
	return m.enterCmd(target)
}

// leaveCleanup releases per-screen resources. In-flight requests are
// not cancelled (a late response for an abandoned screen is ignored)
// but the quote stream is explicitly closed.
func (m *Model) leaveCleanup() {
	if m.stream != nil {
		m.stream.Close()
		m.stream = nil
		m.quote = nil
	}
}

// resetToLogin is the "hard reload" after forced logout or explicit
// logout: the session is already cleared, so resolving lands on login.
func (m *Model) resetToLogin() {
	m.leaveCleanup()
	m.busy = false
	m.showLogoutConfirm = false
	m.showWithdrawConfirm = false
	m.user = nil
	m.machine.Reset("", "")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		if m.busy || m.machine.Current() == nav.ScreenLoading ||
			m.machine.Current() == nav.ScreenPersonalityTestAnalyzing {
			return m, cmd
		}
		return m, nil

	case splashDoneMsg:
		if m.machine.Current() != nav.ScreenSplash {
			return m, nil
		}
		return m, m.transition(nav.ActionAutoAdvance)

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				m.resetToLogin()
				m.errMsg = "Session expired. Please log in again."
				return m, nil
			}
			m.errMsg = msg.err.Error()
			if m.machine.Current() == nav.ScreenLoading {
				return m, m.transition(nav.ActionFail)
			}
			return m, nil
		}
		m.errMsg = ""
		if m.machine.Current() == nav.ScreenSignupNickname {
			// Signup lands on its own complete screen first.
			return m, m.transition(nav.ActionNext)
		}
		m.machine.CompleteLogin()
		return m, m.enterCmd(m.machine.Current())

	case surveyResultMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				return m.failOrAlert(msg.err)
			}
			// The analyzing screen only moves on a result; a failed
			// submit hands the user back to the question form.
			if m.machine.Current() == nav.ScreenPersonalityTestAnalyzing {
				cmd := m.transition(nav.ActionFail)
				m.errMsg = msg.err.Error()
				return m, cmd
			}
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.tendency = msg.result
		m.store.Set(session.KeyInvestmentType, msg.result.Type)
		return m, m.transition(nav.ActionNext)

	case recommendationsMsg:
		m.busy = false
		if msg.err != nil {
			// Critical-path data: the next screen has no content
			// without it, so the transition is blocked and the user
			// sees the failure.
			return m.failOrAlert(msg.err)
		}
		m.products = msg.products
		m.productCursor = 0
		return m, m.transition(nav.ActionNext)

	case brokerageListMsg:
		if msg.err != nil {
			// Advisory list; the screen falls back to the built-ins.
			applog.Error("tui.brokerages", msg.err)
			return m, nil
		}
		m.brokerages = msg.items
		return m, nil

	case sideEffectMsg:
		// Backend instability tolerance: these calls never block a
		// transition, success or not.
		if msg.err != nil {
			applog.Error("tui.side_effect", msg.err, "event", msg.event)
		}
		return m, nil

	case challengeCreatedMsg:
		m.busy = false
		if msg.err != nil {
			return m.failOrAlert(msg.err)
		}
		m.store.Set(session.KeyStartChallengeID, strconv.FormatInt(msg.id, 10))
		return m, m.transition(nav.ActionConfirm)

	case meLoadedMsg:
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrSessionExpired) {
				m.resetToLogin()
				m.errMsg = "Session expired. Please log in again."
				return m, nil
			}
			// Screens fall back to the cached snapshot.
			applog.Error("tui.me", msg.err)
			return m, nil
		}
		m.user = msg.user
		session.SetCachedUser(m.store, types.User{
			ID: msg.user.ID, Username: msg.user.Nickname, Email: msg.user.Email,
		})
		return m, nil

	case notificationsMsg:
		if msg.err != nil {
			applog.Error("tui.notifications", msg.err)
			return m, nil
		}
		m.notifications = msg.items
		m.notifCursor = 0
		return m, nil

	case nicknameSavedMsg:
		m.busy = false
		if msg.err != nil {
			return m.failOrAlert(msg.err)
		}
		m.store.Set(session.KeyCachedNickname, msg.nickname)
		m.notice = "Nickname updated."
		return m, m.transition(nav.ActionConfirm)

	case logoutDoneMsg:
		m.resetToLogin()
		return m, nil

	case withdrawDoneMsg:
		m.busy = false
		m.showWithdrawConfirm = false
		if msg.err != nil {
			return m.failOrAlert(msg.err)
		}
		return m, m.transition(nav.ActionConfirm)

	case quoteStartedMsg:
		if msg.err != nil || msg.stream == nil {
			// Advisory feed: the screen keeps the cached price.
			if msg.err != nil {
				applog.Error("tui.quotes.dial", msg.err)
			}
			return m, nil
		}
		if m.machine.Current() != nav.ScreenStockDetail {
			msg.stream.Close()
			return m, nil
		}
		m.stream = msg.stream
		return m, listenQuotes(m.stream)

	case quoteMsg:
		q := msg.q
		m.quote = &q
		if m.stream != nil {
			return m, listenQuotes(m.stream)
		}
		return m, nil

	case quoteClosedMsg:
		m.stream = nil
		return m, nil
	}

	return m, nil
}

// failOrAlert routes an error either into the forced-logout reset or
// into the screen's alert line.
func (m Model) failOrAlert(e error) (tea.Model, tea.Cmd) {
	if errors.Is(e, api.ErrSessionExpired) {
		m.resetToLogin()
		m.errMsg = "Session expired. Please log in again."
		return m, nil
	}
	m.errMsg = e.Error()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.leaveCleanup()
		m.machine.CancelSplash()
		return m, tea.Quit
	}

	// Overlays swallow input while visible.
	if m.showLogoutConfirm {
		switch key {
		case "y", "enter":
			m.showLogoutConfirm = false
			m.busy = true
			return m, m.logoutCmd()
		case "n", "esc":
			m.showLogoutConfirm = false
		}
		return m, nil
	}
	if m.showWithdrawConfirm {
		switch key {
		case "y", "enter":
			m.busy = true
			return m, m.withdrawCmd()
		case "n", "esc":
			m.showWithdrawConfirm = false
		}
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch m.machine.Current() {
	case nav.ScreenSplash:
		// Any key skips the splash hold.
		m.machine.CancelSplash()
		return m, m.transition(nav.ActionAutoAdvance)

	case nav.ScreenOnboarding:
		switch key {
		case "enter":
			return m, m.transition(nav.ActionNext)
		case "q":
			return m, tea.Quit
		}

	case nav.ScreenLogin:
		switch key {
		case "e":
			m.emailInput.SetValue("")
			m.passwordInput.SetValue("")
			m.focusPassword = false
			m.emailInput.Focus()
			m.passwordInput.Blur()
			return m, m.transition(nav.ActionEmailLogin)
		case "s":
			m.emailInput.SetValue("")
			m.passwordInput.SetValue("")
			m.nickInput.SetValue("")
			m.focusPassword = false
			m.emailInput.Focus()
			return m, m.transition(nav.ActionSignup)
		case "q":
			return m, tea.Quit
		}

	case nav.ScreenEmailLogin:
		return m.handleLoginForm(msg)

	case nav.ScreenSignupEmail:
		return m.handleSignupEmail(msg)

	case nav.ScreenSignupPassword:
		return m.handleSignupPassword(msg)

	case nav.ScreenSignupNickname:
		return m.handleSignupNickname(msg)

	case nav.ScreenSignupComplete:
		if key == "enter" {
			return m, m.transition(nav.ActionConfirm)
		}

	case nav.ScreenPersonalityTestIntro:
		switch key {
		case "enter":
			m.surveyIdx = 0
			m.surveyAnswers = [8]string{}
			return m, m.transition(nav.ActionNext)
		case "q":
			return m, tea.Quit
		}

	case nav.ScreenPersonalityTestQuestion:
		return m.handleSurveyKey(key)

	case nav.ScreenPersonalityTestResult:
		switch key {
		case "enter":
			return m, m.transition(nav.ActionConfirm)
		case "r":
			return m, m.transition(nav.ActionRetest)
		}

	case nav.ScreenHomeCheckIn:
		switch key {
		case "c":
			m.notice = "Checked in!"
			return m, m.checkInCmd()
		case "s":
			return m, m.transition(nav.ActionStartChallenge)
		case "g":
			return m, m.transition(nav.ActionSettings)
		case "n":
			return m, m.transition(nav.ActionNotifications)
		case "q":
			return m, tea.Quit
		}

	case nav.ScreenHome:
		switch key {
		case "d", "enter":
			return m, m.transition(nav.ActionDetail)
		case "g":
			return m, m.transition(nav.ActionSettings)
		case "n":
			return m, m.transition(nav.ActionNotifications)
		case "r":
			return m, m.transition(nav.ActionRestart)
		case "q":
			return m, tea.Quit
		}

	case nav.ScreenStockDetail:
		switch key {
		case "esc":
			return m, m.transition(nav.ActionBack)
		case "g":
			return m, m.transition(nav.ActionSettings)
		}

	case nav.ScreenStartChallengeIntro:
		switch key {
		case "enter":
			return m, m.transition(nav.ActionNext)
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenStartChallengeBrokerage:
		return m.handleBrokerageKey(key)

	case nav.ScreenStartChallengeBrokerageGuide,
		nav.ScreenStartChallengeProduct,
		nav.ScreenStartChallengeBuyGuide:
		switch key {
		case "enter":
			return m, m.transition(nav.ActionNext)
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenStartChallengeAgeCheck:
		switch key {
		case "y":
			return m, tea.Batch(m.ageCheckCmd(true), m.transition(nav.ActionNext))
		case "n":
			return m, tea.Batch(m.ageCheckCmd(false), m.transition(nav.ActionNext))
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenStartChallengeInvestType:
		return m.handleInvestTypeKey(key)

	case nav.ScreenStartChallengeRecommendProduct:
		return m.handleProductKey(key)

	case nav.ScreenStartChallengeBuyConfirm:
		switch key {
		case "enter":
			id, _ := strconv.ParseInt(m.store.Get(session.KeySelectedProductID), 10, 64)
			m.busy = true
			return m, m.createChallengeCmd(id)
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenStartChallengeComplete:
		if key == "enter" {
			return m, m.transition(nav.ActionConfirm)
		}

	case nav.ScreenNotifications:
		switch key {
		case "up", "k":
			if m.notifCursor > 0 {
				m.notifCursor--
			}
		case "down", "j":
			if m.notifCursor < len(m.notifications)-1 {
				m.notifCursor++
			}
		case "enter":
			if len(m.notifications) > 0 {
				return m, m.transition(nav.ActionDetail)
			}
		case "esc":
			m.machine.GoHome()
			return m, m.enterCmd(m.machine.Current())
		}

	case nav.ScreenNotificationDetail:
		if key == "esc" {
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenSettings:
		switch key {
		case "p":
			return m, m.transition(nav.ActionProfile)
		case "o":
			return m, m.transition(nav.ActionNotifySetting)
		case "t":
			return m, m.transition(nav.ActionTerms)
		case "w":
			return m, m.transition(nav.ActionWithdraw)
		case "l":
			m.showLogoutConfirm = true
		case "esc":
			m.machine.GoHome()
			return m, m.enterCmd(m.machine.Current())
		}

	case nav.ScreenSettingsProfile:
		switch key {
		case "n":
			m.nickInput.SetValue(m.store.Get(session.KeyCachedNickname))
			m.nickInput.Focus()
			return m, m.transition(nav.ActionNickname)
		case "r":
			return m, m.transition(nav.ActionRetest)
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenSettingsNickname:
		return m.handleNicknameForm(msg)

	case nav.ScreenSettingsNotification, nav.ScreenSettingsTerms:
		if key == "esc" {
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenSettingsWithdraw:
		switch key {
		case "enter":
			m.showWithdrawConfirm = true
		case "esc":
			return m, m.transition(nav.ActionBack)
		}

	case nav.ScreenWithdrawComplete:
		if key == "enter" {
			return m, m.transition(nav.ActionConfirm)
		}

	case nav.ScreenLoading:
		// Waits on the OAuth exchange; nothing to do.
	}

	return m, nil
}
