package session

import (
	"encoding/json"

	"github.com/Team-GIVY/givy-cli/internal/applog"
	"github.com/Team-GIVY/givy-cli/internal/types"
)

// Typed accessors over the flat record. All of these go through the
// Store interface so they work identically on the persisted store and
// the in-memory fake.

// AccessToken returns the stored bearer credential, or "".
func AccessToken(st Store) string {
	return st.Get(KeyAccessToken)
}

// RefreshToken returns the stored refresh credential, or "".
func RefreshToken(st Store) string {
	return st.Get(KeyRefreshToken)
}

// SetTokens stores a credential pair. An empty refresh token is stored
// as-is: some OAuth variants issue none.
func SetTokens(st Store, access, refresh string) {
	st.Set(KeyAccessToken, access)
	st.Set(KeyRefreshToken, refresh)
}

// CachedUser returns the persisted profile snapshot, or nil if none is
// stored or the stored JSON is corrupt.
func CachedUser(st Store) *types.User {
	raw := st.Get(KeyUserInfo)
	if raw == "" {
		return nil
	}
	var u types.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		applog.Error("session.user.decode", err)
		return nil
	}
	return &u
}

// SetCachedUser persists the profile snapshot as JSON.
func SetCachedUser(st Store, u types.User) {
	raw, err := json.Marshal(u)
	if err != nil {
		applog.Error("session.user.encode", err)
		return
	}
	st.Set(KeyUserInfo, string(raw))
	st.Set(KeyCachedNickname, u.Username)
}

// TendencyCompleted reports whether the personality survey is done.
func TendencyCompleted(st Store) bool {
	return st.Bool(KeyTendencyCompleted)
}

// ChallengeCompleted reports whether the start challenge is done.
func ChallengeCompleted(st Store) bool {
	return st.Bool(KeyChallengeCompleted)
}

// CompleteTendency marks the personality survey as done. The flag is
// monotonic: only ResetTendency flips it back.
func CompleteTendency(st Store) {
	st.Set(KeyTendencyCompleted, "true")
}

// CompleteChallenge marks the start challenge as done. Challenge
// completion implies tendency completion, so both flags are raised.
func CompleteChallenge(st Store) {
	st.Set(KeyChallengeCompleted, "true")
	st.Set(KeyTendencyCompleted, "true")
}

// ResetTendency clears the survey flag for an explicit retest. The
// challenge flag is cleared too, keeping challenge ⊆ tendency.
func ResetTendency(st Store) {
	st.Set(KeyTendencyCompleted, "false")
	st.Set(KeyChallengeCompleted, "false")
}

// ResetChallenge clears the challenge flag for an explicit restart.
func ResetChallenge(st Store) {
	st.Set(KeyChallengeCompleted, "false")
}
