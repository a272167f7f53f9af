package session

import (
	"path/filepath"
	"testing"
)

// testStore creates a temporary SQLite store for testing.
func testStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open(%q): %v", path, err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "session.db")
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open with missing parents: %v", err)
	}
	st.Close()
}

func TestSetGetRoundTrip(t *testing.T) {
	st := testStore(t)

	st.Set(KeyAccessToken, "tok-1")
	if got := st.Get(KeyAccessToken); got != "tok-1" {
		t.Errorf("Get = %q, want %q", got, "tok-1")
	}

	// Set replaces, it never appends.
	st.Set(KeyAccessToken, "tok-2")
	if got := st.Get(KeyAccessToken); got != "tok-2" {
		t.Errorf("after overwrite Get = %q, want %q", got, "tok-2")
	}
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	st := testStore(t)
	if got := st.Get("neverSet"); got != "" {
		t.Errorf("Get(missing) = %q, want \"\"", got)
	}
}

func TestDelete(t *testing.T) {
	st := testStore(t)
	st.Set(KeyCachedNickname, "givy")
	st.Delete(KeyCachedNickname)
	if got := st.Get(KeyCachedNickname); got != "" {
		t.Errorf("Get after Delete = %q, want \"\"", got)
	}
	// Deleting an absent key is a no-op, not an error.
	st.Delete(KeyCachedNickname)
}

func TestClearRemovesEverything(t *testing.T) {
	st := testStore(t)
	st.Set(KeyAccessToken, "tok")
	st.Set(KeyRefreshToken, "ref")
	st.Set(KeyCurrentScreen, "home")

	st.Clear()

	if keys := st.Keys(); len(keys) != 0 {
		t.Errorf("Keys after Clear = %v, want none", keys)
	}
	if got := st.Get(KeyAccessToken); got != "" {
		t.Errorf("token survived Clear: %q", got)
	}
}

func TestKeys(t *testing.T) {
	st := testStore(t)
	st.Set(KeyAccessToken, "a")
	st.Set(KeyCurrentScreen, "splash")

	keys := st.Keys()
	if len(keys) != 2 {
		t.Fatalf("Keys = %v, want 2 entries", keys)
	}
	seen := map[string]bool{}
	for _, k := range keys {
		seen[k] = true
	}
	if !seen[KeyAccessToken] || !seen[KeyCurrentScreen] {
		t.Errorf("Keys = %v, missing expected keys", keys)
	}
}

func TestBoolIsLiteralTrue(t *testing.T) {
	st := testStore(t)

	cases := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", false},
		{"1", false},
		{"", false},
	}
	for _, tc := range cases {
		st.Set(KeyTendencyCompleted, tc.value)
		if got := st.Bool(KeyTendencyCompleted); got != tc.want {
			t.Errorf("Bool(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}

	if st.Bool("neverSet") {
		t.Error("Bool(missing) = true, want false")
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	st, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	st.Set(KeyCurrentScreen, "settings")
	st.Set(KeyTendencyCompleted, "true")
	st.Close()

	st2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer st2.Close()

	if got := st2.Get(KeyCurrentScreen); got != "settings" {
		t.Errorf("screen after reopen = %q, want %q", got, "settings")
	}
	if !st2.Bool(KeyTendencyCompleted) {
		t.Error("tendency flag lost across reopen")
	}
}
