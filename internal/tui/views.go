package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	selStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("212")).
			Padding(1, 2)
	hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var body string
	switch m.machine.Current() {
	case nav.ScreenSplash:
		body = m.viewSplash()
	case nav.ScreenOnboarding:
		body = m.viewOnboarding()
	case nav.ScreenLogin:
		body = m.viewLogin()
	case nav.ScreenEmailLogin:
		body = m.viewEmailLogin()
	case nav.ScreenLoading:
		body = m.viewBusy("Signing you in")
	case nav.ScreenSignupEmail:
		body = m.viewForm("Create your account", "What's your email?", m.emailInput.View())
	case nav.ScreenSignupPassword:
		body = m.viewForm("Create your account", "Choose a password (8+ characters).", m.passwordInput.View())
	case nav.ScreenSignupNickname:
		body = m.viewForm("Create your account", "What should we call you?", m.nickInput.View())
	case nav.ScreenSignupComplete:
		body = m.viewDone("Welcome aboard!", "Your account is ready.")
	case nav.ScreenPersonalityTestIntro:
		body = m.viewSurveyIntro()
	case nav.ScreenPersonalityTestQuestion:
		body = m.viewSurveyQuestion()
	case nav.ScreenPersonalityTestAnalyzing:
		body = m.viewBusy("Analyzing your answers")
	case nav.ScreenPersonalityTestResult:
		body = m.viewSurveyResult()
	case nav.ScreenStartChallengeIntro:
		body = m.viewChallengeIntro()
	case nav.ScreenStartChallengeBrokerage:
		body = m.viewBrokerage()
	case nav.ScreenStartChallengeBrokerageGuide:
		body = m.viewBrokerageGuide()
	case nav.ScreenStartChallengeAgeCheck:
		body = m.viewAgeCheck()
	case nav.ScreenStartChallengeInvestType:
		body = m.viewInvestType()
	case nav.ScreenStartChallengeRecommendProduct:
		body = m.viewProducts()
	case nav.ScreenStartChallengeProduct:
		body = m.viewProductDetail()
	case nav.ScreenStartChallengeBuyGuide:
		body = m.viewBuyGuide()
	case nav.ScreenStartChallengeBuyConfirm:
		body = m.viewBuyConfirm()
	case nav.ScreenStartChallengeComplete:
		body = m.viewDone("Challenge complete!", "You bought your first stock. Welcome to investing.")
	case nav.ScreenHomeCheckIn:
		body = m.viewHomeCheckIn()
	case nav.ScreenHome:
		body = m.viewHome()
	case nav.ScreenStockDetail:
		body = m.viewStockDetail()
	case nav.ScreenNotifications:
		body = m.viewNotifications()
	case nav.ScreenNotificationDetail:
		body = m.viewNotificationDetail()
	case nav.ScreenSettings:
		body = m.viewSettings()
	case nav.ScreenSettingsProfile:
		body = m.viewProfile()
	case nav.ScreenSettingsNickname:
		body = m.viewForm("Change nickname", "Enter a new nickname.", m.nickInput.View())
	case nav.ScreenSettingsNotification:
		body = m.viewStatic("Notification settings", "Push notifications are managed on your device.")
	case nav.ScreenSettingsTerms:
		body = m.viewStatic("Terms of service", "GIVY is a paper-trading learning service.\nNo real orders are placed through this app.")
	case nav.ScreenSettingsWithdraw:
		body = m.viewWithdraw()
	case nav.ScreenWithdrawComplete:
		body = m.viewDone("Account deleted", "Thanks for trying GIVY. See you again.")
	default:
		body = dimStyle.Render(string(m.machine.Current()))
	}

	var footer []string
	if m.errMsg != "" {
		footer = append(footer, errStyle.Render(m.errMsg))
	}
	if m.notice != "" {
		footer = append(footer, goodStyle.Render(m.notice))
	}
	footer = append(footer, m.hintBar())

	out := lipgloss.JoinVertical(lipgloss.Left, body, strings.Join(footer, "\n"))

	// Confirm dialogs take over the whole frame; the screen behind is
	// redrawn as soon as they close.
	if m.showLogoutConfirm {
		return m.overlay("Log out?", "y: yes   n: no")
	}
	if m.showWithdrawConfirm {
		return m.overlay("Delete your account?\nThis cannot be undone.", "y: delete   n: keep")
	}
	return out
}

func (m Model) overlay(text, keys string) string {
	box := boxStyle.Render(text + "\n\n" + dimStyle.Render(keys))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) hintBar() string {
	var hints string
	switch m.machine.Current() {
	case nav.ScreenSplash:
		hints = "any key: skip"
	case nav.ScreenOnboarding:
		hints = "enter: continue  q: quit"
	case nav.ScreenLogin:
		hints = "e: email login  s: sign up  q: quit"
	case nav.ScreenEmailLogin:
		hints = "tab: switch field  enter: submit  esc: back"
	case nav.ScreenSignupEmail, nav.ScreenSignupPassword, nav.ScreenSignupNickname:
		hints = "enter: next  esc: back"
	case nav.ScreenPersonalityTestQuestion:
		hints = "1-4: answer  esc: previous"
	case nav.ScreenPersonalityTestResult:
		hints = "enter: continue  r: retake"
	case nav.ScreenStartChallengeBrokerage, nav.ScreenStartChallengeInvestType,
		nav.ScreenStartChallengeRecommendProduct:
		hints = "↑/↓: move  enter: select  esc: back"
	case nav.ScreenStartChallengeAgeCheck:
		hints = "y: yes  n: no  esc: back"
	case nav.ScreenHomeCheckIn:
		hints = "c: check in  s: start challenge  n: notifications  g: settings  q: quit"
	case nav.ScreenHome:
		hints = "enter: my stock  n: notifications  g: settings  r: new challenge  q: quit"
	case nav.ScreenStockDetail:
		hints = "g: settings  esc: back"
	case nav.ScreenNotifications:
		hints = "↑/↓: move  enter: open  esc: home"
	case nav.ScreenSettings:
		hints = "p: profile  o: notifications  t: terms  w: delete account  l: log out  esc: home"
	case nav.ScreenSettingsProfile:
		hints = "n: nickname  r: retake test  esc: back"
	case nav.ScreenSettingsWithdraw:
		hints = "enter: delete account  esc: back"
	default:
		hints = "enter: continue  esc: back"
	}
	return hintStyle.Render(hints)
}

func (m Model) viewSplash() string {
	logo := titleStyle.Render("G I V Y")
	sub := dimStyle.Render("your first step into investing")
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
		logo+"\n\n"+sub)
}

func (m Model) viewOnboarding() string {
	return boxStyle.Render(
		titleStyle.Render("Investing, one small step at a time") + "\n\n" +
			"• Find out what kind of investor you are\n" +
			"• Open a brokerage account with a guide\n" +
			"• Buy your very first stock")
}

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sign in to GIVY"))
	b.WriteString("\n\n")
	b.WriteString("  [e] Continue with email\n")
	b.WriteString("  [s] Create an account\n\n")
	b.WriteString(dimStyle.Render("  Kakao and Google sign-in open in your browser;\n  re-run with --oauth-code to finish."))
	return b.String()
}

func (m Model) viewEmailLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Email login"))
	b.WriteString("\n\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	if m.busy {
		b.WriteString("\n\n" + m.spin.View() + " signing in...")
	}
	return b.String()
}

func (m Model) viewForm(title, prompt, field string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(prompt)
	b.WriteString("\n\n")
	b.WriteString(field)
	if m.busy {
		b.WriteString("\n\n" + m.spin.View() + " working...")
	}
	return b.String()
}

func (m Model) viewBusy(what string) string {
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center,
		m.spin.View()+" "+what+"...")
}

func (m Model) viewDone(title, detail string) string {
	return boxStyle.Render(goodStyle.Render(title) + "\n\n" + detail + "\n\n" +
		dimStyle.Render("enter: continue"))
}

func (m Model) viewStatic(title, detail string) string {
	return titleStyle.Render(title) + "\n\n" + detail
}

func (m Model) viewSurveyIntro() string {
	return boxStyle.Render(
		titleStyle.Render("What kind of investor are you?") + "\n\n" +
			"8 quick questions, no wrong answers.\n" +
			"We'll use this to recommend your first stock.\n\n" +
			dimStyle.Render("enter: start"))
}

func (m Model) viewSurveyQuestion() string {
	q := surveyQuestions[m.surveyIdx]
	var b strings.Builder
	b.WriteString(dimStyle.Render(fmt.Sprintf("Question %d of %d", m.surveyIdx+1, len(surveyQuestions))))
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(q.text))
	b.WriteString("\n\n")
	for i, opt := range q.options {
		b.WriteString(fmt.Sprintf("  [%d] %s\n", i+1, opt))
	}
	return b.String()
}

func (m Model) viewSurveyResult() string {
	title := "Your result is in"
	detail := "We found your investor type."
	if m.tendency != nil {
		title = m.tendency.Title
		detail = m.tendency.Description
	}
	return boxStyle.Render(
		dimStyle.Render("You are a...") + "\n\n" +
			titleStyle.Render(title) + "\n\n" + detail)
}

func (m Model) viewChallengeIntro() string {
	return boxStyle.Render(
		titleStyle.Render("The Start Challenge") + "\n\n" +
			"1. Pick a brokerage and open an account\n" +
			"2. Choose how you want to invest\n" +
			"3. Buy your first stock\n\n" +
			dimStyle.Render("enter: start"))
}

func (m Model) viewBrokerage() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pick a brokerage"))
	b.WriteString("\n\n")
	for i, br := range m.brokerageChoices() {
		line := "  " + br.Name
		if i == m.brokerCursor {
			line = selStyle.Render("> " + br.Name)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewBrokerageGuide() string {
	name := m.store.Get(session.KeySelectedBrokerage)
	return titleStyle.Render("Open your account") + "\n\n" +
		fmt.Sprintf("Install the %s app and open a general account.\n", name) +
		"It usually takes about 10 minutes.\n\n" +
		dimStyle.Render("Come back here when you're done.")
}

func (m Model) viewAgeCheck() string {
	return boxStyle.Render(
		titleStyle.Render("Quick question") + "\n\n" +
			"Are you 14 or older?\n\n" +
			dimStyle.Render("Younger investors need a guardian to open a brokerage account."))
}

func (m Model) viewInvestType() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("How do you want to invest?"))
	b.WriteString("\n\n")
	labels := map[string]string{
		"conservative": "Conservative — steady and safe",
		"balanced":     "Balanced — a bit of both",
		"aggressive":   "Aggressive — growth first",
	}
	for i, t := range investTypeOptions {
		line := "  " + labels[t]
		if i == m.typeCursor {
			line = selStyle.Render("> " + labels[t])
		}
		b.WriteString(line + "\n")
	}
	if m.busy {
		b.WriteString("\n" + m.spin.View() + " finding stocks for you...")
	}
	return b.String()
}

func (m Model) viewProducts() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stocks picked for you"))
	b.WriteString("\n\n")
	if len(m.products) == 0 {
		b.WriteString(dimStyle.Render("No recommendations yet."))
		return b.String()
	}
	for i, p := range m.products {
		line := fmt.Sprintf("  %-20s %10.0f  %s", p.Name, p.Price, p.Risk)
		if i == m.productCursor {
			line = selStyle.Render("> " + line[2:])
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewProductDetail() string {
	if len(m.products) == 0 || m.productCursor >= len(m.products) {
		return dimStyle.Render("No product selected.")
	}
	p := m.products[m.productCursor]
	return boxStyle.Render(
		titleStyle.Render(p.Name) + "  " + dimStyle.Render(p.Code) + "\n\n" +
			fmt.Sprintf("Price  %.0f\nRisk   %s", p.Price, p.Risk) + "\n\n" +
			dimStyle.Render("enter: continue to purchase"))
}

func (m Model) viewBuyGuide() string {
	name := m.store.Get(session.KeySelectedProductName)
	return titleStyle.Render("Time to buy") + "\n\n" +
		fmt.Sprintf("In your brokerage app, search for %q\nand buy one share at market price.\n\n", name) +
		dimStyle.Render("enter: I bought it")
}

func (m Model) viewBuyConfirm() string {
	name := m.store.Get(session.KeySelectedProductName)
	return boxStyle.Render(
		titleStyle.Render("Did you buy it?") + "\n\n" +
			fmt.Sprintf("Confirm your purchase of %s.", name) + "\n\n" +
			dimStyle.Render("enter: yes, done  esc: not yet"))
}

func (m Model) viewHomeCheckIn() string {
	nick := m.store.Get(session.KeyCachedNickname)
	if nick == "" {
		nick = "there"
	}
	return titleStyle.Render(fmt.Sprintf("Hi, %s!", nick)) + "\n\n" +
		"You haven't bought your first stock yet.\n" +
		"The Start Challenge walks you through it.\n\n" +
		"  [c] Daily check-in\n" +
		"  [s] Start the challenge"
}

func (m Model) viewHome() string {
	nick := m.store.Get(session.KeyCachedNickname)
	if nick == "" {
		nick = "investor"
	}
	name := m.store.Get(session.KeySelectedProductName)
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Welcome back, %s", nick)))
	b.WriteString("\n\n")
	if name != "" {
		b.WriteString(fmt.Sprintf("Your stock: %s\n", selStyle.Render(name)))
		b.WriteString(dimStyle.Render("enter: see live price") + "\n")
	}
	return b.String()
}

func (m Model) viewStockDetail() string {
	name := m.store.Get(session.KeySelectedProductName)
	code := m.store.Get(session.KeySelectedProductCode)
	var b strings.Builder
	b.WriteString(titleStyle.Render(name) + "  " + dimStyle.Render(code))
	b.WriteString("\n\n")
	if m.quote != nil {
		style := goodStyle
		if m.quote.ChangeRate < 0 {
			style = errStyle
		}
		b.WriteString(fmt.Sprintf("%.0f  %s\n", m.quote.Price,
			style.Render(fmt.Sprintf("%+.2f%%", m.quote.ChangeRate))))
	} else if m.stream != nil {
		b.WriteString(dimStyle.Render("waiting for quotes...") + "\n")
	} else {
		b.WriteString(dimStyle.Render("live quotes unavailable") + "\n")
	}
	return b.String()
}

func (m Model) viewNotifications() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notifications"))
	b.WriteString("\n\n")
	if len(m.notifications) == 0 {
		b.WriteString(dimStyle.Render("Nothing here yet."))
		return b.String()
	}
	for i, n := range m.notifications {
		marker := "  "
		if !n.Read {
			marker = "● "
		}
		line := marker + n.Title
		if i == m.notifCursor {
			line = selStyle.Render("> " + n.Title)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) viewNotificationDetail() string {
	if len(m.notifications) == 0 || m.notifCursor >= len(m.notifications) {
		return dimStyle.Render("No notification selected.")
	}
	n := m.notifications[m.notifCursor]
	return titleStyle.Render(n.Title) + "\n" +
		dimStyle.Render(n.CreatedAt) + "\n\n" + n.Body
}

func (m Model) viewSettings() string {
	return titleStyle.Render("Settings") + "\n\n" +
		"  [p] Profile\n" +
		"  [o] Notification settings\n" +
		"  [t] Terms of service\n" +
		"  [w] Delete account\n" +
		"  [l] Log out"
}

func (m Model) viewProfile() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Profile"))
	b.WriteString("\n\n")
	if m.user != nil {
		b.WriteString(fmt.Sprintf("Nickname  %s\n", m.user.Nickname))
		b.WriteString(fmt.Sprintf("Email     %s\n", m.user.Email))
		b.WriteString(fmt.Sprintf("Signed in %s\n", m.user.Provider))
	} else {
		nick := m.store.Get(session.KeyCachedNickname)
		b.WriteString(fmt.Sprintf("Nickname  %s\n", nick))
		b.WriteString(dimStyle.Render("profile is loading...") + "\n")
	}
	return b.String()
}

func (m Model) viewWithdraw() string {
	return boxStyle.Render(
		errStyle.Render("Delete account") + "\n\n" +
			"All your progress will be removed:\n" +
			"your investor type, challenge history, and profile.\n\n" +
			dimStyle.Render("enter: delete  esc: back"))
}
