// Package pipeline orchestrates the sign-in and data-retrieval flow:
// credential exchange, endpoint resolution, fetching, and payload
// classification. Results are delivered as typed outcomes on a channel,
// in the order operations were invoked.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wortmonitor/internal/auth"
	"wortmonitor/internal/feed"
	"wortmonitor/internal/ratelimit"
	"wortmonitor/internal/series"
)

// State is the orchestrator's lifecycle position. Transitions outside
// the enum are rejected rather than assumed away.
type State int

const (
	// StateSignedOut is the initial state; only SignIn is legal.
	StateSignedOut State = iota
	// StateAuthenticating covers the exchange plus the first fetch.
	StateAuthenticating
	// StateSignedIn holds a session and endpoint; Refresh and SignOut are legal.
	StateSignedIn
	// StateRefreshing covers one in-flight re-fetch.
	StateRefreshing
)

// String returns a short state name for logs and errors.
func (s State) String() string {
	switch s {
	case StateSignedOut:
		return "signed_out"
	case StateAuthenticating:
		return "authenticating"
	case StateSignedIn:
		return "signed_in"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Illegal-transition errors. Returned synchronously; nothing is emitted.
var (
	ErrAlreadySignedIn = errors.New("sign-in only valid when signed out")
	ErrNotSignedIn     = errors.New("not signed in")
	ErrBusy            = errors.New("operation already in flight")
)

// maxFetchAttempts bounds the re-fetch loop for malformed payloads and
// retryable transport failures.
const maxFetchAttempts = 3

// Exchanger turns credentials into a session. Implemented by auth.Client.
type Exchanger interface {
	Exchange(ctx context.Context, email, password string) (auth.Session, error)
}

// Fetcher reads raw bytes from a resolved endpoint. Implemented by feed.Client.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint feed.Endpoint) ([]byte, error)
}

// Orchestrator owns the session, the resolved endpoint, and the current
// series set exclusively; each is replaced atomically on a successful
// transition, so collaborators never observe a partial update. At most
// one operation is in flight at a time, which is what makes the outcome
// ordering FIFO.
type Orchestrator struct {
	exchanger   Exchanger
	fetcher     Fetcher
	limiter     *ratelimit.Limiter
	databaseURL string
	outcomes    chan Outcome

	mu       sync.Mutex
	state    State
	session  auth.Session
	endpoint feed.Endpoint
}

// New creates an orchestrator in the signed-out state. databaseURL is
// the base URL the per-user endpoint is resolved against.
func New(exchanger Exchanger, fetcher Fetcher, databaseURL string) *Orchestrator {
	return &Orchestrator{
		exchanger:   exchanger,
		fetcher:     fetcher,
		limiter:     ratelimit.GetLimiter(),
		databaseURL: databaseURL,
		outcomes:    make(chan Outcome, 8),
	}
}

// Outcomes returns the channel outcomes are delivered on. One receiver
// is expected; the channel stays open for the orchestrator's lifetime.
func (o *Orchestrator) Outcomes() <-chan Outcome {
	return o.outcomes
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SignIn exchanges the credentials for a session and, on success,
// performs the first fetch against the resolved endpoint. Legal only
// when signed out. The terminal emission is authenticated followed by
// exactly one data outcome, or a single auth failure.
func (o *Orchestrator) SignIn(ctx context.Context, email, password string) error {
	o.mu.Lock()
	switch o.state {
	case StateSignedOut:
		o.state = StateAuthenticating
	case StateAuthenticating, StateRefreshing:
		o.mu.Unlock()
		return ErrBusy
	default:
		o.mu.Unlock()
		return ErrAlreadySignedIn
	}
	o.mu.Unlock()

	go o.signIn(ctx, email, password)
	return nil
}

func (o *Orchestrator) signIn(ctx context.Context, email, password string) {
	if err := o.limiter.Wait(ctx, ratelimit.APIIdentity); err != nil {
		o.setState(StateSignedOut)
		o.emit(Outcome{Kind: KindAuthFailed, Err: err})
		return
	}

	session, err := o.exchanger.Exchange(ctx, email, password)
	if err != nil {
		o.setState(StateSignedOut)
		if errors.Is(err, auth.ErrMalformedResponse) {
			o.emit(Outcome{Kind: KindAuthMalformed, Err: err})
			return
		}
		o.emit(Outcome{Kind: KindAuthFailed, Err: err})
		return
	}

	endpoint := feed.Resolve(o.databaseURL, session)

	o.mu.Lock()
	o.session = session
	o.endpoint = endpoint
	o.mu.Unlock()

	o.emit(Outcome{Kind: KindAuthenticated, Session: session})

	outcome := o.fetchOutcome(ctx, endpoint)
	o.setState(StateSignedIn)
	o.emit(outcome)
}

// Refresh re-fetches the stored endpoint and emits one data outcome.
// Legal only when signed in with no operation in flight.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	switch o.state {
	case StateSignedIn:
		o.state = StateRefreshing
	case StateRefreshing, StateAuthenticating:
		o.mu.Unlock()
		return ErrBusy
	default:
		o.mu.Unlock()
		return ErrNotSignedIn
	}
	endpoint := o.endpoint
	o.mu.Unlock()

	go func() {
		outcome := o.fetchOutcome(ctx, endpoint)
		o.setState(StateSignedIn)
		o.emit(outcome)
	}()
	return nil
}

// SignOut discards the session and endpoint and returns to signed-out.
// Legal only when signed in and idle.
func (o *Orchestrator) SignOut() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.state {
	case StateSignedIn:
		o.session = auth.Session{}
		o.endpoint = ""
		o.state = StateSignedOut
		return nil
	case StateAuthenticating, StateRefreshing:
		return ErrBusy
	default:
		return ErrNotSignedIn
	}
}

// fetchOutcome runs the fetch-and-classify loop against one endpoint.
// Malformed payloads and retryable transport failures are re-fetched up
// to maxFetchAttempts, paced by the database limiter; everything else
// classifies immediately.
func (o *Orchestrator) fetchOutcome(ctx context.Context, endpoint feed.Endpoint) Outcome {
	var lastErr error

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		if err := o.limiter.Wait(ctx, ratelimit.APIDatabase); err != nil {
			return Outcome{Kind: KindDataError, Err: err}
		}

		raw, err := o.fetcher.Fetch(ctx, endpoint)
		if err != nil {
			lastErr = err
			var fe *feed.Error
			if errors.As(err, &fe) && fe.Retryable && ctx.Err() == nil {
				slog.Debug("re-fetching after transport failure",
					"attempt", attempt,
					"endpoint", endpoint.Redacted(),
					"error", err)
				continue
			}
			return Outcome{Kind: KindDataError, Err: err}
		}

		set, err := series.Parse(raw)
		switch {
		case err == nil:
			return Outcome{Kind: KindDataReady, Series: set}
		case errors.Is(err, series.ErrEmptyPayload):
			return Outcome{Kind: KindDataEmpty}
		case errors.Is(err, series.ErrRemote):
			return Outcome{Kind: KindDataError, Err: err}
		default:
			// Malformed payload: assume a transient truncated read.
			lastErr = err
			slog.Debug("re-fetching after malformed payload",
				"attempt", attempt,
				"endpoint", endpoint.Redacted(),
				"error", err)
		}
	}

	return Outcome{
		Kind: KindDataError,
		Err:  fmt.Errorf("giving up after %d attempts: %w", maxFetchAttempts, lastErr),
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) emit(outcome Outcome) {
	o.outcomes <- outcome
}
