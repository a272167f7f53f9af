package auth

import "fmt"

// AuthError is a failed login: bad credentials or network failure.
// The message is surfaced to the caller as-is; there is no retry.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("login failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// RefreshError is a failed token refresh: the refresh token itself is
// missing, invalid, or expired. The pipeline escalates it to a forced
// logout.
type RefreshError struct {
	Message string
	Err     error
}

func (e *RefreshError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("token refresh failed: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }
