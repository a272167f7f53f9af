package auth

import (
	"encoding/base64"
	"fmt"
	"testing"
	"time"
)

// makeToken builds a structurally valid JWT with the given payload
// JSON. The signature is garbage; expiry inspection never verifies it.
func makeToken(payload string) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return header + "." + body + ".sig"
}

func TestIsExpiredAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "expired",
			token: makeToken(fmt.Sprintf(`{"exp":%d}`, now.Add(-time.Hour).Unix())),
			want:  true,
		},
		{
			name:  "valid",
			token: makeToken(fmt.Sprintf(`{"exp":%d}`, now.Add(time.Hour).Unix())),
			want:  false,
		},
		{
			// Expiry is inclusive: a token expiring exactly now is dead.
			name:  "boundary",
			token: makeToken(fmt.Sprintf(`{"exp":%d}`, now.Unix())),
			want:  true,
		},
		{
			name:  "no exp claim",
			token: makeToken(`{"sub":"7"}`),
			want:  false,
		},
		{
			name:  "not a jwt",
			token: "just-an-opaque-token",
			want:  false,
		},
		{
			name:  "two segments",
			token: "aaaa.bbbb",
			want:  false,
		},
		{
			name:  "garbage payload",
			token: "aaaa.!!!!.cccc",
			want:  false,
		},
		{
			name:  "payload not json",
			token: makeToken("not json at all"),
			want:  false,
		},
		{
			name:  "empty",
			token: "",
			want:  false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isExpiredAt(tc.token, now); got != tc.want {
				t.Errorf("isExpiredAt = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsExpiredPaddedSegment(t *testing.T) {
	// Some issuers emit standard base64 with padding in the payload
	// segment; the decoder falls back rather than failing open.
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{"exp":%d,"sub":"u"}`, now.Add(-time.Minute).Unix())
	token := "hdr." + base64.StdEncoding.EncodeToString([]byte(payload)) + ".sig"

	if !isExpiredAt(token, now) {
		t.Error("padded payload segment not decoded")
	}
}
