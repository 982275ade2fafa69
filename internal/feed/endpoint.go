package feed

import (
	"strings"

	"wortmonitor/internal/auth"
)

// Endpoint is the fully-resolved, token-bearing URL used to read one
// user's scoped readings. It embeds a bearer credential in cleartext, so
// it must never be logged as-is; use Redacted.
type Endpoint string

// Resolve derives the per-user read endpoint from a session. Pure string
// derivation; recomputed once per sign-in and read-only afterwards.
func Resolve(baseURL string, session auth.Session) Endpoint {
	base := strings.TrimSuffix(baseURL, "/")
	return Endpoint(base + "/UsersData/" + session.UserID + "/readings.json?auth=" + session.IDToken)
}

// Redacted returns the endpoint with the auth token stripped, safe for
// logging.
func (e Endpoint) Redacted() string {
	s := string(e)
	if i := strings.Index(s, "?auth="); i >= 0 {
		return s[:i] + "?auth=REDACTED"
	}
	return s
}
