package nav

// Action is a user- or event-driven trigger a screen can emit.
type Action string

const (
	ActionAutoAdvance Action = "autoAdvance" // splash timer, the only non-event transition
	ActionNext        Action = "next"
	ActionBack        Action = "back"
	ActionConfirm     Action = "confirm"
	ActionFail        Action = "fail"

	ActionEmailLogin     Action = "emailLogin"
	ActionSignup         Action = "signup"
	ActionRetest         Action = "retest"
	ActionRestart        Action = "restart"
	ActionStartChallenge Action = "startChallenge"
	ActionSettings       Action = "settings"
	ActionNotifications  Action = "notifications"
	ActionDetail         Action = "detail"
	ActionProfile        Action = "profile"
	ActionNickname       Action = "nickname"
	ActionNotifySetting  Action = "notifySetting"
	ActionTerms          Action = "terms"
	ActionWithdraw       Action = "withdraw"
)

// transitions maps (screen, action) to exactly one target screen.
// Transitions whose target depends on progress flags (login completion,
// returning home) are Machine methods instead, so every row here is a
// fixed edge.
var transitions = map[Screen]map[Action]Screen{
	ScreenSplash: {
		ActionAutoAdvance: ScreenOnboarding,
	},
	ScreenOnboarding: {
		ActionNext: ScreenLogin,
	},
	ScreenLogin: {
		ActionEmailLogin: ScreenEmailLogin,
		ActionSignup:     ScreenSignupEmail,
	},
	ScreenEmailLogin: {
		ActionBack: ScreenLogin,
	},
	ScreenLoading: {
		ActionFail: ScreenLogin,
	},
	ScreenSignupEmail: {
		ActionNext: ScreenSignupPassword,
		ActionBack: ScreenLogin,
	},
	ScreenSignupPassword: {
		ActionNext: ScreenSignupNickname,
		ActionBack: ScreenSignupEmail,
	},
	ScreenSignupNickname: {
		ActionNext: ScreenSignupComplete,
		ActionBack: ScreenSignupPassword,
	},
	ScreenSignupComplete: {
		ActionConfirm: ScreenPersonalityTestIntro,
	},
	ScreenPersonalityTestIntro: {
		ActionNext: ScreenPersonalityTestQuestion,
	},
	ScreenPersonalityTestQuestion: {
		ActionNext: ScreenPersonalityTestAnalyzing,
		ActionBack: ScreenPersonalityTestIntro,
	},
	ScreenPersonalityTestAnalyzing: {
		ActionNext: ScreenPersonalityTestResult,
		ActionFail: ScreenPersonalityTestQuestion,
	},
	ScreenPersonalityTestResult: {
		ActionConfirm: ScreenHomeCheckIn,
		ActionRetest:  ScreenPersonalityTestIntro,
	},
	ScreenStartChallengeIntro: {
		ActionNext: ScreenStartChallengeBrokerage,
		ActionBack: ScreenHomeCheckIn,
	},
	ScreenStartChallengeBrokerage: {
		ActionNext: ScreenStartChallengeBrokerageGuide,
		ActionBack: ScreenStartChallengeIntro,
	},
	ScreenStartChallengeBrokerageGuide: {
		ActionNext: ScreenStartChallengeAgeCheck,
		ActionBack: ScreenStartChallengeBrokerage,
	},
	ScreenStartChallengeAgeCheck: {
		ActionNext: ScreenStartChallengeInvestType,
		ActionBack: ScreenStartChallengeBrokerageGuide,
	},
	ScreenStartChallengeInvestType: {
		ActionNext: ScreenStartChallengeRecommendProduct,
		ActionBack: ScreenStartChallengeAgeCheck,
	},
	ScreenStartChallengeRecommendProduct: {
		ActionNext: ScreenStartChallengeProduct,
		ActionBack: ScreenStartChallengeInvestType,
	},
	ScreenStartChallengeProduct: {
		ActionNext: ScreenStartChallengeBuyGuide,
		ActionBack: ScreenStartChallengeRecommendProduct,
	},
	ScreenStartChallengeBuyGuide: {
		ActionNext: ScreenStartChallengeBuyConfirm,
		ActionBack: ScreenStartChallengeProduct,
	},
	ScreenStartChallengeBuyConfirm: {
		ActionConfirm: ScreenStartChallengeComplete,
		ActionBack:    ScreenStartChallengeBuyGuide,
	},
	ScreenStartChallengeComplete: {
		ActionConfirm: ScreenHome,
	},
	ScreenHomeCheckIn: {
		ActionStartChallenge: ScreenStartChallengeIntro,
		ActionSettings:       ScreenSettings,
		ActionNotifications:  ScreenNotifications,
	},
	ScreenHome: {
		ActionDetail:        ScreenStockDetail,
		ActionSettings:      ScreenSettings,
		ActionNotifications: ScreenNotifications,
		ActionRestart:       ScreenStartChallengeIntro,
	},
	ScreenStockDetail: {
		ActionBack:     ScreenHome,
		ActionSettings: ScreenSettings,
	},
	ScreenNotifications: {
		ActionDetail: ScreenNotificationDetail,
	},
	ScreenNotificationDetail: {
		ActionBack: ScreenNotifications,
	},
	ScreenSettings: {
		ActionProfile:       ScreenSettingsProfile,
		ActionNotifySetting: ScreenSettingsNotification,
		ActionTerms:         ScreenSettingsTerms,
		ActionWithdraw:      ScreenSettingsWithdraw,
	},
	ScreenSettingsProfile: {
		ActionNickname: ScreenSettingsNickname,
		ActionRetest:   ScreenPersonalityTestIntro,
		ActionBack:     ScreenSettings,
	},
	ScreenSettingsNickname: {
		ActionConfirm: ScreenSettingsProfile,
		ActionBack:    ScreenSettingsProfile,
	},
	ScreenSettingsNotification: {
		ActionBack: ScreenSettings,
	},
	ScreenSettingsTerms: {
		ActionBack: ScreenSettings,
	},
	ScreenSettingsWithdraw: {
		ActionConfirm: ScreenWithdrawComplete,
		ActionBack:    ScreenSettings,
	},
	ScreenWithdrawComplete: {
		ActionConfirm: ScreenLogin,
	},
}

// Transitions exposes the table read-only for exhaustiveness checks.
func Transitions() map[Screen]map[Action]Screen {
	out := make(map[Screen]map[Action]Screen, len(transitions))
	for s, actions := range transitions {
		row := make(map[Action]Screen, len(actions))
		for a, t := range actions {
			row[a] = t
		}
		out[s] = row
	}
	return out
}
