package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test_key", "https://identity.test")

	if client == nil {
		t.Fatal("NewClient() returned nil")
	}

	if client.apiKey != "test_key" {
		t.Errorf("apiKey = %q, want %q", client.apiKey, "test_key")
	}

	if client.client == nil {
		t.Error("client is nil")
	}
}

func TestExchange_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"kind": "identitytoolkit#VerifyPasswordResponse",
			"localId": "user-123",
			"email": "brewer@example.com",
			"idToken": "token-abc",
			"registered": true
		}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient("test_key", server.URL)
	ctx := context.Background()

	session, err := client.Exchange(ctx, "brewer@example.com", "secret")
	if err != nil {
		t.Fatalf("Exchange() returned unexpected error: %v", err)
	}

	// Fields must be extracted verbatim from the response
	if session.IDToken != "token-abc" {
		t.Errorf("IDToken = %q, want %q", session.IDToken, "token-abc")
	}

	if session.UserID != "user-123" {
		t.Errorf("UserID = %q, want %q", session.UserID, "user-123")
	}
}

func TestExchange_InvalidCredentials(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid password", `{"error": {"code": 400, "message": "INVALID_PASSWORD"}}`},
		{"unknown email", `{"error": {"code": 400, "message": "EMAIL_NOT_FOUND"}}`},
		{"error beside other fields", `{"error": {"code": 400, "message": "USER_DISABLED"}, "kind": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(tt.body))
			})

			server := httptest.NewServer(handler)
			defer server.Close()

			client := NewClient("test_key", server.URL)

			_, err := client.Exchange(context.Background(), "brewer@example.com", "wrong")
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Exchange() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestExchange_MalformedResponse(t *testing.T) {
	// Neither "error" nor "kind": must classify explicitly rather than
	// leave the caller without a result.
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"something": "unexpected"}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient("test_key", server.URL)

	_, err := client.Exchange(context.Background(), "brewer@example.com", "secret")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("Exchange() error = %v, want ErrMalformedResponse", err)
	}
}

func TestExchange_EmptyAPIKey(t *testing.T) {
	client := NewClient("", "https://identity.test")

	_, err := client.Exchange(context.Background(), "brewer@example.com", "secret")
	if err == nil {
		t.Error("Exchange() expected error for empty API key, got nil")
	}
}

func TestExchange_RequestShape(t *testing.T) {
	apiKey := "test_api_key_123"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}

		if got := r.URL.Query().Get("key"); got != apiKey {
			t.Errorf("key = %q, want %q", got, apiKey)
		}

		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Fatalf("request body is not JSON: %v", err)
		}

		if got := body["email"]; got != "brewer@example.com" {
			t.Errorf("email = %v, want brewer@example.com", got)
		}
		if got := body["password"]; got != "secret" {
			t.Errorf("password = %v, want secret", got)
		}
		if got := body["returnSecureToken"]; got != true {
			t.Errorf("returnSecureToken = %v, want true", got)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"kind": "identitytoolkit#VerifyPasswordResponse", "idToken": "t", "localId": "u"}`))
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient(apiKey, server.URL)

	_, err := client.Exchange(context.Background(), "brewer@example.com", "secret")
	if err != nil {
		t.Fatalf("Exchange() returned unexpected error: %v", err)
	}
}

func TestExchange_ContextCancellation(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	server := httptest.NewServer(handler)
	defer server.Close()

	client := NewClient("test_key", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Exchange(ctx, "brewer@example.com", "secret")
	if err == nil {
		t.Error("Exchange() expected error for cancelled context, got nil")
	}
}
