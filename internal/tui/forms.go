package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/session"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

type surveyQuestion struct {
	text    string
	options [4]string
}

var surveyQuestions = [8]surveyQuestion{
	{"How would you describe your investing experience?",
		[4]string{"None at all", "Savings accounts only", "Funds or ETFs", "Individual stocks"}},
	{"Your portfolio drops 10% in a week. What do you do?",
		[4]string{"Sell everything", "Sell some of it", "Hold and wait", "Buy more"}},
	{"How long do you plan to keep money invested?",
		[4]string{"Under 1 year", "1-3 years", "3-10 years", "Over 10 years"}},
	{"Which outcome sounds best to you?",
		[4]string{"Keep what I have", "Small steady gains", "Moderate growth", "Maximum growth"}},
	{"How much of your income can you set aside?",
		[4]string{"Almost none", "Under 10%", "10-30%", "Over 30%"}},
	{"What does 'risk' mean to you?",
		[4]string{"Danger", "Uncertainty", "Opportunity cost", "Opportunity"}},
	{"How often would you check your investments?",
		[4]string{"Several times a day", "Daily", "Weekly", "Rarely"}},
	{"A friend tips you on a hot stock. You...",
		[4]string{"Ignore it", "Read up first", "Buy a little", "Go all in"}},
}

var investTypeOptions = []string{"conservative", "balanced", "aggressive"}

// defaultBrokerages backs the selection screen when the directory call
// fails or has not landed yet.
var defaultBrokerages = []types.Brokerage{
	{Code: "kiwoom", Name: "Kiwoom Securities"},
	{Code: "toss", Name: "Toss Securities"},
	{Code: "samsung", Name: "Samsung Securities"},
	{Code: "mirae", Name: "Mirae Asset"},
	{Code: "kb", Name: "KB Securities"},
}

func (m Model) brokerageChoices() []types.Brokerage {
	if len(m.brokerages) > 0 {
		return m.brokerages
	}
	return defaultBrokerages
}

func (m Model) handleLoginForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(nav.ActionBack)
	case "tab", "shift+tab":
		m.focusPassword = !m.focusPassword
		if m.focusPassword {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, nil
	case "enter":
		if !m.focusPassword {
			m.focusPassword = true
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, nil
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.errMsg = "Enter both email and password."
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spin.Tick, m.loginCmd(email, password))
	}

	var cmd tea.Cmd
	if m.focusPassword {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	} else {
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m Model) handleSignupEmail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(nav.ActionBack)
	case "enter":
		email := strings.TrimSpace(m.emailInput.Value())
		if email == "" || !strings.Contains(email, "@") {
			m.errMsg = "Enter a valid email address."
			return m, nil
		}
		m.signupEmail = email
		m.errMsg = ""
		m.emailInput.Blur()
		m.passwordInput.SetValue("")
		m.passwordInput.Focus()
		return m, m.transition(nav.ActionNext)
	}

	var cmd tea.Cmd
	m.emailInput, cmd = m.emailInput.Update(msg)
	return m, cmd
}

func (m Model) handleSignupPassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(nav.ActionBack)
	case "enter":
		password := m.passwordInput.Value()
		if len(password) < 8 {
			m.errMsg = "Password must be at least 8 characters."
			return m, nil
		}
		m.signupPassword = password
		m.errMsg = ""
		m.passwordInput.Blur()
		m.nickInput.SetValue("")
		m.nickInput.Focus()
		return m, m.transition(nav.ActionNext)
	}

	var cmd tea.Cmd
	m.passwordInput, cmd = m.passwordInput.Update(msg)
	return m, cmd
}

func (m Model) handleSignupNickname(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(nav.ActionBack)
	case "enter":
		nick := strings.TrimSpace(m.nickInput.Value())
		if nick == "" {
			m.errMsg = "Pick a nickname."
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spin.Tick, m.signupCmd(m.signupEmail, m.signupPassword, nick))
	}

	var cmd tea.Cmd
	m.nickInput, cmd = m.nickInput.Update(msg)
	return m, cmd
}

func (m Model) handleNicknameForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.transition(nav.ActionBack)
	case "enter":
		nick := strings.TrimSpace(m.nickInput.Value())
		if nick == "" {
			m.errMsg = "Pick a nickname."
			return m, nil
		}
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spin.Tick, m.saveNicknameCmd(nick))
	}

	var cmd tea.Cmd
	m.nickInput, cmd = m.nickInput.Update(msg)
	return m, cmd
}

func (m Model) handleSurveyKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "1", "2", "3", "4":
		n, _ := strconv.Atoi(key)
		m.surveyAnswers[m.surveyIdx] = surveyQuestions[m.surveyIdx].options[n-1]
		if m.surveyIdx < len(surveyQuestions)-1 {
			m.surveyIdx++
			return m, nil
		}
		m.busy = true
		cmd := m.transition(nav.ActionNext) // to the analyzing screen
		return m, tea.Batch(cmd, m.spin.Tick, m.submitSurveyCmd(m.surveyAnswers))
	case "esc":
		if m.surveyIdx > 0 {
			m.surveyIdx--
			return m, nil
		}
		return m, m.transition(nav.ActionBack)
	}
	return m, nil
}

func (m Model) handleBrokerageKey(key string) (tea.Model, tea.Cmd) {
	choices := m.brokerageChoices()
	switch key {
	case "up", "k":
		if m.brokerCursor > 0 {
			m.brokerCursor--
		}
	case "down", "j":
		if m.brokerCursor < len(choices)-1 {
			m.brokerCursor++
		}
	case "enter":
		b := choices[m.brokerCursor]
		m.store.Set(session.KeySelectedBrokerage, b.Code)
		return m, tea.Batch(m.registerBrokerageCmd(b.Code), m.transition(nav.ActionNext))
	case "esc":
		return m, m.transition(nav.ActionBack)
	}
	return m, nil
}

func (m Model) handleInvestTypeKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.typeCursor > 0 {
			m.typeCursor--
		}
	case "down", "j":
		if m.typeCursor < len(investTypeOptions)-1 {
			m.typeCursor++
		}
	case "enter":
		t := investTypeOptions[m.typeCursor]
		m.store.Set(session.KeyInvestmentType, t)
		m.busy = true
		m.errMsg = ""
		return m, tea.Batch(m.spin.Tick, m.recommendationsCmd(t))
	case "esc":
		return m, m.transition(nav.ActionBack)
	}
	return m, nil
}

func (m Model) handleProductKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		if m.productCursor > 0 {
			m.productCursor--
		}
	case "down", "j":
		if m.productCursor < len(m.products)-1 {
			m.productCursor++
		}
	case "enter":
		if len(m.products) == 0 {
			return m, nil
		}
		p := m.products[m.productCursor]
		m.store.Set(session.KeySelectedProductID, strconv.FormatInt(p.ID, 10))
		m.store.Set(session.KeySelectedProductName, p.Name)
		m.store.Set(session.KeySelectedProductCode, p.Code)
		return m, m.transition(nav.ActionNext)
	case "esc":
		return m, m.transition(nav.ActionBack)
	}
	return m, nil
}
