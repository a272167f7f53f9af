package types

// User is the cached profile snapshot persisted in the session record.
// It is a display fallback for when the network is unavailable.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDetail is the full profile returned by GET /auth/users/me.
type UserDetail struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
	Provider  string `json:"provider"` // "email", "kakao", "google"
	CreatedAt string `json:"createdAt"`
}

// TokenPair is the rotated credential pair from POST /auth/refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the shared login envelope shape. Email login and both
// OAuth variants all land here.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// TendencyView is the investment-tendency profile from GET /tendency/me.
// A 404 on that endpoint means the survey was never completed.
type TendencyView struct {
	Type        string `json:"type"` // e.g. "STABLE", "BALANCED", "AGGRESSIVE"
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TendencyResult is returned after submitting the 8-answer survey.
type TendencyResult struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Product is a recommended investment product.
type Product struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Price float64 `json:"price"`
	Risk  string  `json:"risk"`
}

// StartChallengeStatus is the state of the user's start challenge.
// Status is one of "NONE", "IN_PROGRESS", "COMPLETED".
type StartChallengeStatus struct {
	Status           string `json:"status"`
	ProductID        int64  `json:"productId,omitempty"`
	StartChallengeID int64  `json:"startChallengeId,omitempty"`
}

// Brokerage is a securities firm the user can register.
type Brokerage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Notification is a single entry in the notification center.
type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"createdAt"`
}
