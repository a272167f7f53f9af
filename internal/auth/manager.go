// Package auth owns the token lifecycle: login, refresh, logout, and
// JWT expiry inspection. The manager is the only writer of the token
// keys in the session record.
package auth

import (
	"context"
	"errors"

	"github.com/Team-GIVY/givy-cli/internal/api"
	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/session"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

// Manager drives the token lifecycle against the unauthenticated API
// channel and the session store. It satisfies api.Refresher so the
// pipeline can recover from a 401.
type Manager struct {
	store  session.Store
	client *api.Client
}

// NewManager wires a manager to the store and API client.
func NewManager(st session.Store, c *api.Client) *Manager {
	return &Manager{store: st, client: c}
}

// Login authenticates with email/password and persists both tokens and
// the user snapshot. Failures come back as *AuthError with the server
// message; there is no retry.
func (m *Manager) Login(ctx context.Context, email, password string) (*types.LoginResult, error) {
	res, err := m.client.Login(ctx, email, password)
	if err != nil {
		return nil, &AuthError{Message: messageOf(err), Err: err}
	}
	m.persistLogin(res)
	applog.Info("auth.login", "user", res.User.ID)
	return res, nil
}

// Signup registers a new account and persists the session like a login.
func (m *Manager) Signup(ctx context.Context, email, password, nickname string) (*types.LoginResult, error) {
	res, err := m.client.Signup(ctx, email, password, nickname)
	if err != nil {
		return nil, &AuthError{Message: messageOf(err), Err: err}
	}
	m.persistLogin(res)
	applog.Info("auth.signup", "user", res.User.ID)
	return res, nil
}

// LoginWithKakaoCode completes the Kakao authorization-code callback.
func (m *Manager) LoginWithKakaoCode(ctx context.Context, code string) (*types.LoginResult, error) {
	res, err := m.client.KakaoCallback(ctx, code)
	if err != nil {
		return nil, &AuthError{Message: messageOf(err), Err: err}
	}
	m.persistLogin(res)
	applog.Info("auth.login.kakao", "user", res.User.ID)
	return res, nil
}

// LoginWithGoogleIDToken signs in with a Google ID token.
func (m *Manager) LoginWithGoogleIDToken(ctx context.Context, idToken string) (*types.LoginResult, error) {
	res, err := m.client.GoogleIDToken(ctx, idToken)
	if err != nil {
		return nil, &AuthError{Message: messageOf(err), Err: err}
	}
	m.persistLogin(res)
	applog.Info("auth.login.google", "user", res.User.ID)
	return res, nil
}

// Refresh rotates the credential pair using the stored refresh token
// and persists the new pair. It returns the new access token so the
// pipeline can retry the failing request with it.
func (m *Manager) Refresh(ctx context.Context) (string, error) {
	rt := session.RefreshToken(m.store)
	if rt == "" {
		return "", &RefreshError{Message: "no refresh token stored"}
	}

	pair, err := m.client.RefreshTokens(ctx, rt)
	if err != nil {
		return "", &RefreshError{Message: messageOf(err), Err: err}
	}

	session.SetTokens(m.store, pair.AccessToken, pair.RefreshToken)
	applog.Info("auth.refresh")
	return pair.AccessToken, nil
}

// Logout tells the server to drop the refresh token, then clears the
// whole session record and marks the login screen as current. The
// server call is best-effort: a dead network must not block local
// logout.
func (m *Manager) Logout(ctx context.Context) {
	if rt := session.RefreshToken(m.store); rt != "" {
		if err := m.client.ServerLogout(ctx, rt); err != nil {
			applog.Error("auth.logout.server", err)
		}
	}
	m.clearLocal()
	applog.Info("auth.logout")
}

// Withdraw deletes the account server-side, then clears the session the
// same way logout does. The server call is not best-effort: an account
// that still exists must not look deleted locally.
func (m *Manager) Withdraw(ctx context.Context) error {
	if err := m.client.Withdraw(ctx); err != nil {
		return err
	}
	m.clearLocal()
	applog.Info("auth.withdraw")
	return nil
}

// ForceLogout is the terminal path for irrecoverable auth failure:
// clear everything, mark login. Wired as the pipeline's
// OnForcedLogout hook.
func (m *Manager) ForceLogout() {
	m.clearLocal()
	applog.Info("auth.forced_logout")
}

func (m *Manager) clearLocal() {
	m.store.Clear()
	m.store.Set(session.KeyCurrentScreen, "login")
}

func (m *Manager) persistLogin(res *types.LoginResult) {
	session.SetTokens(m.store, res.AccessToken, res.RefreshToken)
	session.SetCachedUser(m.store, res.User)
}

// messageOf prefers the server envelope message for display.
func messageOf(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
