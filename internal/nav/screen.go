// Package nav is the screen navigation core: a closed set of screen
// names, the initial-screen resolver that runs once per launch, and the
// state machine that drives every transition after that.
package nav

// Screen is one of the named client screens. Exactly one screen is
// current at a time; the two confirm overlays (logout, withdraw) are
// modal flags in the render layer, not screens.
type Screen string

const (
	ScreenSplash     Screen = "splash"
	ScreenOnboarding Screen = "onboarding"
	ScreenLogin      Screen = "login"
	ScreenEmailLogin Screen = "emailLogin"
	ScreenLoading    Screen = "loading" // OAuth callback pending

	ScreenSignupEmail    Screen = "signupEmail"
	ScreenSignupPassword Screen = "signupPassword"
	ScreenSignupNickname Screen = "signupNickname"
	ScreenSignupComplete Screen = "signupComplete"

	ScreenPersonalityTestIntro     Screen = "personalityTestIntro"
	ScreenPersonalityTestQuestion  Screen = "personalityTestQuestion"
	ScreenPersonalityTestAnalyzing Screen = "personalityTestAnalyzing"
	ScreenPersonalityTestResult    Screen = "personalityTestResult"

	ScreenStartChallengeIntro            Screen = "startChallengeIntro"
	ScreenStartChallengeBrokerage        Screen = "startChallengeBrokerage"
	ScreenStartChallengeBrokerageGuide   Screen = "startChallengeBrokerageGuide"
	ScreenStartChallengeAgeCheck         Screen = "startChallengeAgeCheck"
	ScreenStartChallengeInvestType       Screen = "startChallengeInvestType"
	ScreenStartChallengeRecommendProduct Screen = "startChallengeRecommendProduct"
	ScreenStartChallengeProduct          Screen = "startChallengeProduct"
	ScreenStartChallengeBuyGuide         Screen = "startChallengeBuyGuide"
	ScreenStartChallengeBuyConfirm       Screen = "startChallengeBuyConfirm"
	ScreenStartChallengeComplete         Screen = "startChallengeComplete"

	ScreenHomeCheckIn Screen = "homeCheckIn"
	ScreenHome        Screen = "home"
	ScreenStockDetail Screen = "stockDetail"

	ScreenNotifications      Screen = "notifications"
	ScreenNotificationDetail Screen = "notificationDetail"

	ScreenSettings             Screen = "settings"
	ScreenSettingsProfile      Screen = "settingsProfile"
	ScreenSettingsNickname     Screen = "settingsNickname"
	ScreenSettingsNotification Screen = "settingsNotification"
	ScreenSettingsTerms        Screen = "settingsTerms"
	ScreenSettingsWithdraw     Screen = "settingsWithdraw"

	ScreenWithdrawComplete Screen = "withdrawComplete"
)

// AllScreens lists every member of the enumeration.
var AllScreens = []Screen{
	ScreenSplash, ScreenOnboarding, ScreenLogin, ScreenEmailLogin, ScreenLoading,
	ScreenSignupEmail, ScreenSignupPassword, ScreenSignupNickname, ScreenSignupComplete,
	ScreenPersonalityTestIntro, ScreenPersonalityTestQuestion,
	ScreenPersonalityTestAnalyzing, ScreenPersonalityTestResult,
	ScreenStartChallengeIntro, ScreenStartChallengeBrokerage,
	ScreenStartChallengeBrokerageGuide, ScreenStartChallengeAgeCheck,
	ScreenStartChallengeInvestType, ScreenStartChallengeRecommendProduct,
	ScreenStartChallengeProduct, ScreenStartChallengeBuyGuide,
	ScreenStartChallengeBuyConfirm, ScreenStartChallengeComplete,
	ScreenHomeCheckIn, ScreenHome, ScreenStockDetail,
	ScreenNotifications, ScreenNotificationDetail,
	ScreenSettings, ScreenSettingsProfile, ScreenSettingsNickname,
	ScreenSettingsNotification, ScreenSettingsTerms, ScreenSettingsWithdraw,
	ScreenWithdrawComplete,
}

var screenSet = func() map[Screen]bool {
	m := make(map[Screen]bool, len(AllScreens))
	for _, s := range AllScreens {
		m[s] = true
	}
	return m
}()

// Valid reports whether s is a declared screen name.
func Valid(s Screen) bool {
	return screenSet[s]
}

var personalitySteps = map[Screen]bool{
	ScreenPersonalityTestIntro:     true,
	ScreenPersonalityTestQuestion:  true,
	ScreenPersonalityTestAnalyzing: true,
	ScreenPersonalityTestResult:    true,
}

var challengeSteps = map[Screen]bool{
	ScreenStartChallengeIntro:            true,
	ScreenStartChallengeBrokerage:        true,
	ScreenStartChallengeBrokerageGuide:   true,
	ScreenStartChallengeAgeCheck:         true,
	ScreenStartChallengeInvestType:       true,
	ScreenStartChallengeRecommendProduct: true,
	ScreenStartChallengeProduct:          true,
	ScreenStartChallengeBuyGuide:         true,
	ScreenStartChallengeBuyConfirm:       true,
	ScreenStartChallengeComplete:         true,
}

// Protected reports whether s sits past onboarding/auth: reachable only
// once the personality survey is completed.
func Protected(s Screen) bool {
	if challengeSteps[s] {
		return true
	}
	switch s {
	case ScreenHomeCheckIn, ScreenHome, ScreenStockDetail,
		ScreenNotifications, ScreenNotificationDetail,
		ScreenSettings, ScreenSettingsProfile, ScreenSettingsNickname,
		ScreenSettingsNotification, ScreenSettingsTerms, ScreenSettingsWithdraw:
		return true
	}
	return false
}

// RequiresAuth reports whether s is unreachable without an access
// token. Protected screens and the personality-test steps all need one.
func RequiresAuth(s Screen) bool {
	return Protected(s) || personalitySteps[s]
}

// PersonalityStep reports whether s is one of the four survey steps.
func PersonalityStep(s Screen) bool {
	return personalitySteps[s]
}

// ChallengeStep reports whether s is one of the ten challenge steps.
func ChallengeStep(s Screen) bool {
	return challengeSteps[s]
}
