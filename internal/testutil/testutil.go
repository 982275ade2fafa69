package testutil

import (
	"context"

	"wortmonitor/internal/auth"
	"wortmonitor/internal/feed"
)

// MockExchanger is a mock implementation of the pipeline's Exchanger
// interface for testing
type MockExchanger struct {
	ExchangeFunc func(ctx context.Context, email, password string) (auth.Session, error)
}

// Exchange implements the Exchanger interface
func (m *MockExchanger) Exchange(ctx context.Context, email, password string) (auth.Session, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, email, password)
	}
	return auth.Session{}, nil
}

// NewMockExchanger creates a mock exchanger with predefined results
func NewMockExchanger(session auth.Session, err error) *MockExchanger {
	return &MockExchanger{
		ExchangeFunc: func(ctx context.Context, email, password string) (auth.Session, error) {
			return session, err
		},
	}
}

// MockFetcher is a mock implementation of the pipeline's Fetcher
// interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context, endpoint feed.Endpoint) ([]byte, error)
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context, endpoint feed.Endpoint) ([]byte, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, endpoint)
	}
	return nil, nil
}

// NewMockFetcher creates a mock fetcher with predefined results
func NewMockFetcher(body []byte, err error) *MockFetcher {
	return &MockFetcher{
		FetchFunc: func(ctx context.Context, endpoint feed.Endpoint) ([]byte, error) {
			return body, err
		},
	}
}
