// Package session persists the client's session record: tokens, the
// cached user snapshot, progress flags, and the last visited screen.
// The record is a flat string-keyed store; booleans are stored as the
// literal strings "true"/"false" and compared as such.
package session

// Keys of the session record. Everything the client persists lives
// under one of these.
const (
	KeyAccessToken        = "accessToken"
	KeyRefreshToken       = "refreshToken"
	KeyUserInfo           = "userInfo"
	KeyCurrentScreen      = "currentScreen"
	KeyTendencyCompleted  = "tendencyCompleted"
	KeyChallengeCompleted = "challengeCompleted"

	// Advisory caches. Always re-validated against live server data when
	// available; used as a last-resort fallback when it is not.
	KeyCachedNickname      = "cachedNickname"
	KeySelectedBrokerage   = "selectedBrokerage"
	KeyInvestmentType      = "investmentType"
	KeySelectedProductID   = "selectedProductId"
	KeySelectedProductName = "selectedProductName"
	KeySelectedProductCode = "selectedProductCode"
	KeyStartChallengeID    = "startChallengeId"
)

// Store is the persisted session record. Semantics follow a browser
// key-value store: reads and writes are synchronous, a missing key reads
// as the empty string, and write failures never surface to the caller.
type Store interface {
	// Get returns the stored value, or "" if the key is absent.
	Get(key string) string
	// Set stores a value under key, replacing any previous value.
	Set(key, value string)
	// Delete removes a single key.
	Delete(key string)
	// Clear removes every key. Nothing survives.
	Clear()
	// Keys returns all stored keys, in no particular order.
	Keys() []string
	// Bool reports whether the stored value is the literal "true".
	Bool(key string) bool
}

// MemStore is a pure in-memory Store for tests and dry runs.
type MemStore struct {
	m map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

func (s *MemStore) Get(key string) string {
	return s.m[key]
}

func (s *MemStore) Set(key, value string) {
	s.m[key] = value
}

func (s *MemStore) Delete(key string) {
	delete(s.m, key)
}

func (s *MemStore) Clear() {
	s.m = make(map[string]string)
}

func (s *MemStore) Keys() []string {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	return keys
}

func (s *MemStore) Bool(key string) bool {
	return s.m[key] == "true"
}
