package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired marks a request that ended in a forced logout: the
// access token was rejected and no refresh was possible. By the time a
// caller sees it the session record is already cleared.
var ErrSessionExpired = errors.New("session expired")

// APIError is an unsuccessful envelope or an unrecovered auth failure.
// Message is the human-readable server message and is what screens show.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	return e.Message
}
