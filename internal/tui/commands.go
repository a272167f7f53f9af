package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/nav"
	"github.com/Team-GIVY/givy-cli/internal/quotes"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

// --- Messages ---

type splashDoneMsg struct{}

// authResultMsg lands every login variant: email, signup, Kakao, Google.
type authResultMsg struct {
	res *types.LoginResult
	err error
}

type surveyResultMsg struct {
	result *types.TendencyResult
	err    error
}

// recommendationsMsg is critical-path: an error blocks the transition
// into the recommend-product step.
type recommendationsMsg struct {
	products []types.Product
	err      error
}

type brokerageListMsg struct {
	items []types.Brokerage
	err   error
}

// sideEffectMsg reports a non-critical call (brokerage registration,
// age check, check-in). Errors are logged and swallowed; the transition
// has already happened.
type sideEffectMsg struct {
	event string
	err   error
}

type challengeCreatedMsg struct {
	id  int64
	err error
}

type meLoadedMsg struct {
	user *types.UserDetail
	err  error
}

type notificationsMsg struct {
	items []types.Notification
	err   error
}

type nicknameSavedMsg struct {
	nickname string
	err      error
}

type logoutDoneMsg struct{}

type withdrawDoneMsg struct {
	err error
}

type quoteStartedMsg struct {
	stream *quotes.Stream
	err    error
}

type quoteMsg struct {
	q quotes.Quote
}

type quoteClosedMsg struct{}

// --- Commands ---

func (m Model) splashCmd() tea.Cmd {
	done := make(chan struct{})
	m.machine.StartSplashTimer(func() { close(done) })
	return func() tea.Msg {
		select {
		case <-done:
			return splashDoneMsg{}
		case <-time.After(nav.SplashDuration() + time.Second):
			// Timer was cancelled (key skip); nothing to deliver.
			return nil
		}
	}
}

func (m Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.auth.Login(context.Background(), email, password)
		return authResultMsg{res: res, err: err}
	}
}

func (m Model) signupCmd(email, password, nickname string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.auth.Signup(context.Background(), email, password, nickname)
		return authResultMsg{res: res, err: err}
	}
}

func (m Model) oauthCmd(code string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.auth.LoginWithKakaoCode(context.Background(), code)
		return authResultMsg{res: res, err: err}
	}
}

// submitSurveyCmd posts the survey, then creates recommendations from
// the resulting type. The calls are sequential because the second
// depends on the first; a recommendation-creation failure at this point
// is non-critical (the fetch on entering the recommend step is the
// critical one) and is swallowed.
func (m Model) submitSurveyCmd(answers [8]string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		result, err := m.api.SubmitTendency(ctx, answers)
		if err != nil {
			return surveyResultMsg{err: err}
		}
		if err := m.api.CreateRecommendations(ctx, result.Type); err != nil {
			applog.Error("survey.recommend.create", err)
		}
		return surveyResultMsg{result: result}
	}
}

func (m Model) brokerageListCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.api.Brokerages(context.Background())
		return brokerageListMsg{items: items, err: err}
	}
}

func (m Model) registerBrokerageCmd(code string) tea.Cmd {
	return func() tea.Msg {
		err := m.api.RegisterBrokerage(context.Background(), code)
		return sideEffectMsg{event: "brokerage.register", err: err}
	}
}

func (m Model) ageCheckCmd(over bool) tea.Cmd {
	return func() tea.Msg {
		err := m.api.CheckAge(context.Background(), over)
		return sideEffectMsg{event: "age.check", err: err}
	}
}

// recommendationsCmd re-creates and fetches recommendations for the
// chosen investment type, sequentially. The fetch is the critical one.
func (m Model) recommendationsCmd(investmentType string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if err := m.api.CreateRecommendations(ctx, investmentType); err != nil {
			applog.Error("challenge.recommend.create", err)
		}
		products, err := m.api.Recommendations(ctx)
		return recommendationsMsg{products: products, err: err}
	}
}

func (m Model) createChallengeCmd(productID int64) tea.Cmd {
	return func() tea.Msg {
		id, err := m.api.CreateStartChallenge(context.Background(), productID)
		return challengeCreatedMsg{id: id, err: err}
	}
}

func (m Model) loadMeCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.api.Me(context.Background())
		return meLoadedMsg{user: user, err: err}
	}
}

func (m Model) notificationsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.api.Notifications(context.Background())
		return notificationsMsg{items: items, err: err}
	}
}

func (m Model) checkInCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.api.CheckIn(context.Background())
		return sideEffectMsg{event: "attendance.checkin", err: err}
	}
}

func (m Model) saveNicknameCmd(nickname string) tea.Cmd {
	return func() tea.Msg {
		err := m.api.UpdateNickname(context.Background(), nickname)
		return nicknameSavedMsg{nickname: nickname, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		m.auth.Logout(ctx)
		return logoutDoneMsg{}
	}
}

func (m Model) withdrawCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.auth.Withdraw(context.Background())
		return withdrawDoneMsg{err: err}
	}
}

func (m Model) dialQuotesCmd(code string) tea.Cmd {
	return func() tea.Msg {
		if m.wsURL == "" {
			return quoteStartedMsg{err: nil}
		}
		stream, err := quotes.Dial(context.Background(), m.wsURL, code)
		return quoteStartedMsg{stream: stream, err: err}
	}
}

// listenQuotes waits for one tick and re-arms itself from Update, the
// same shape as a long-poll loop.
func listenQuotes(stream *quotes.Stream) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-stream.Quotes()
		if !ok {
			return quoteClosedMsg{}
		}
		return quoteMsg{q: q}
	}
}
