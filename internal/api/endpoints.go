package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Team-GIVY/givy-cli/internal/types"
)

// Auth surface. All of these run on the unauthenticated channel.

// Login exchanges email/password credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*types.LoginResult, error) {
	var out types.LoginResult
	body := map[string]string{"email": email, "password": password}
	if err := c.Public(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account and returns the same login envelope.
func (c *Client) Signup(ctx context.Context, email, password, nickname string) (*types.LoginResult, error) {
	var out types.LoginResult
	body := map[string]string{"email": email, "password": password, "nickname": nickname}
	if err := c.Public(ctx, http.MethodPost, "/auth/signup", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RefreshTokens rotates the credential pair.
func (c *Client) RefreshTokens(ctx context.Context, refreshToken string) (*types.TokenPair, error) {
	var out types.TokenPair
	body := map[string]string{"refreshToken": refreshToken}
	if err := c.Public(ctx, http.MethodPost, "/auth/refresh", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ServerLogout invalidates the refresh token server-side. Callers treat
// failure as best-effort: local logout proceeds regardless.
func (c *Client) ServerLogout(ctx context.Context, refreshToken string) error {
	body := map[string]string{"refreshToken": refreshToken}
	return c.Public(ctx, http.MethodPost, "/auth/logout", body, nil)
}

// KakaoCallback completes the Kakao authorization-code flow.
func (c *Client) KakaoCallback(ctx context.Context, code string) (*types.LoginResult, error) {
	var out types.LoginResult
	path := "/oauth/kakao/callback?" + url.Values{"code": {code}}.Encode()
	if err := c.Public(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleIDToken signs in with a Google ID token.
func (c *Client) GoogleIDToken(ctx context.Context, idToken string) (*types.LoginResult, error) {
	var out types.LoginResult
	body := map[string]string{"idToken": idToken}
	if err := c.Public(ctx, http.MethodPost, "/oauth/google/id-token", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Authenticated surface.

// Me fetches the full profile.
func (c *Client) Me(ctx context.Context) (*types.UserDetail, error) {
	var out types.UserDetail
	if err := c.Authed(ctx, http.MethodGet, "/auth/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TendencyMe fetches the investment-tendency profile. Any error here
// means "tendency not completed" to callers; they inspect the error
// only for display.
func (c *Client) TendencyMe(ctx context.Context) (*types.TendencyView, error) {
	var out types.TendencyView
	if err := c.Authed(ctx, http.MethodGet, "/tendency/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitTendency posts the 8-answer personality survey.
func (c *Client) SubmitTendency(ctx context.Context, survey [8]string) (*types.TendencyResult, error) {
	var out types.TendencyResult
	body := map[string]any{"survey": survey[:]}
	if err := c.Authed(ctx, http.MethodPost, "/tendency", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartChallenge fetches the user's challenge state.
func (c *Client) StartChallenge(ctx context.Context) (*types.StartChallengeStatus, error) {
	var out types.StartChallengeStatus
	if err := c.Authed(ctx, http.MethodGet, "/start-challenge", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStartChallenge starts a challenge for the chosen product.
func (c *Client) CreateStartChallenge(ctx context.Context, productID int64) (int64, error) {
	var out struct {
		StartChallengeID int64 `json:"startChallengeId"`
	}
	body := map[string]int64{"productId": productID}
	if err := c.Authed(ctx, http.MethodPost, "/start-challenge", body, &out); err != nil {
		return 0, err
	}
	return out.StartChallengeID, nil
}

// CreateRecommendations asks the server to build product
// recommendations for the given investment type.
func (c *Client) CreateRecommendations(ctx context.Context, investmentType string) error {
	body := map[string]string{"investmentType": investmentType}
	return c.Authed(ctx, http.MethodPost, "/products/recommend", body, nil)
}

// Recommendations fetches the prepared product recommendations. This is
// critical-path data: the recommend-product screen has no content
// without it, so callers surface failure instead of swallowing it.
func (c *Client) Recommendations(ctx context.Context) ([]types.Product, error) {
	var out []types.Product
	if err := c.Authed(ctx, http.MethodGet, "/products/recommend", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id int64) (*types.Product, error) {
	var out types.Product
	if err := c.Authed(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Brokerages lists registrable securities firms.
func (c *Client) Brokerages(ctx context.Context) ([]types.Brokerage, error) {
	var out []types.Brokerage
	if err := c.Authed(ctx, http.MethodGet, "/brokerages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterBrokerage records the user's chosen brokerage. Non-critical
// side effect: callers log and swallow failure.
func (c *Client) RegisterBrokerage(ctx context.Context, code string) error {
	body := map[string]string{"brokerage": code}
	return c.Authed(ctx, http.MethodPost, "/members/brokerage", body, nil)
}

// CheckAge records the age gate answer. Non-critical side effect.
func (c *Client) CheckAge(ctx context.Context, overFourteen bool) error {
	body := map[string]bool{"overFourteen": overFourteen}
	return c.Authed(ctx, http.MethodPost, "/members/age-check", body, nil)
}

// UpdateNickname changes the display name.
func (c *Client) UpdateNickname(ctx context.Context, nickname string) error {
	body := map[string]string{"nickname": nickname}
	return c.Authed(ctx, http.MethodPatch, "/members/nickname", body, nil)
}

// Withdraw deletes the account.
func (c *Client) Withdraw(ctx context.Context) error {
	return c.Authed(ctx, http.MethodDelete, "/members/me", nil, nil)
}

// Notifications lists the notification center entries.
func (c *Client) Notifications(ctx context.Context) ([]types.Notification, error) {
	var out []types.Notification
	if err := c.Authed(ctx, http.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CheckIn records a daily attendance check-in.
func (c *Client) CheckIn(ctx context.Context) error {
	return c.Authed(ctx, http.MethodPost, "/attendance", nil, nil)
}
