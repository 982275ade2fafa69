package pipeline

import (
	"wortmonitor/internal/auth"
	"wortmonitor/internal/series"
)

// Kind enumerates the typed results the pipeline can produce. Every
// downstream failure is classified into exactly one of these; nothing
// propagates as an unclassified fault.
type Kind int

const (
	// KindAuthenticated carries the session created by a successful
	// credential exchange.
	KindAuthenticated Kind = iota
	// KindAuthFailed reports a rejected sign-in attempt.
	KindAuthFailed
	// KindAuthMalformed reports an identity response that was neither a
	// success nor a rejection.
	KindAuthMalformed
	// KindDataReady carries a freshly parsed series set.
	KindDataReady
	// KindDataEmpty reports a valid but empty dataset.
	KindDataEmpty
	// KindDataError reports a server-side or exhausted-retry data failure.
	KindDataError
)

// String returns the kind's wire-style name, mainly for logs and tests.
func (k Kind) String() string {
	switch k {
	case KindAuthenticated:
		return "authenticated"
	case KindAuthFailed:
		return "auth_failed"
	case KindAuthMalformed:
		return "auth_malformed"
	case KindDataReady:
		return "data_ready"
	case KindDataEmpty:
		return "data_empty"
	case KindDataError:
		return "data_error"
	default:
		return "unknown"
	}
}

// Outcome is one typed result emitted by the orchestrator. Session is
// populated for KindAuthenticated, Series for KindDataReady, and Err for
// the failure kinds.
type Outcome struct {
	Kind    Kind
	Session auth.Session
	Series  series.Set
	Err     error
}
