package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// IsExpired reports whether the JWT's exp claim is in the past.
//
// The check is fail-open: a malformed token or one without an exp claim
// reads as not expired. A corrupt token is then discovered by the
// server answering 401 instead of by local validation throwing.
func IsExpired(token string) bool {
	return isExpiredAt(token, time.Now())
}

func isExpiredAt(token string, now time.Time) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		// Some issuers pad their segments.
		payload, err = base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return false
		}
	}

	var claims struct {
		Exp *int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == nil {
		return false
	}
	return now.Unix() >= *claims.Exp
}
