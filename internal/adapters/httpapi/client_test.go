package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnworks/gt-client/internal/domain"
)

type stubSession struct {
	mu          sync.Mutex
	token       domain.BearerToken
	valid       bool
	ensureErr   error
	freshToken  string
	ensureCalls int
	clearCalls  int
	renewCalls  int
}

func (s *stubSession) GetToken() (domain.BearerToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid {
		return domain.BearerToken{}, false
	}
	return s.token, true
}

func (s *stubSession) EnsureAuthenticated(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureCalls++
	if s.ensureErr != nil {
		return s.ensureErr
	}
	s.token = domain.BearerToken{Value: s.freshToken, ExpiresAt: time.Now().Add(time.Hour)}
	s.valid = true
	return nil
}

func (s *stubSession) RenewExpiry(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renewCalls++
}

func (s *stubSession) ClearToken(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearCalls++
	s.valid = false
}

func validStubSession(token string) *stubSession {
	return &stubSession{
		token:      domain.BearerToken{Value: token, ExpiresAt: time.Now().Add(time.Hour)},
		valid:      true,
		freshToken: "fresh-" + token,
	}
}

func TestLoginSendsTicketAndPlayerName(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var payload struct {
			AuthTicket string `json:"authTicket"`
			PlayerName string `json:"playerName"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "deadbeef", payload.AuthTicket)
		assert.Equal(t, "Ayla", payload.PlayerName)

		_, _ = fmt.Fprint(w, `{"status":"success","token":"issued-token","token_type":"bearer","expires_in":86400}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Login(context.Background(), "deadbeef", "Ayla")
	require.NoError(t, err)

	assert.Equal(t, "issued-token", result.Token)
	assert.Equal(t, int64(86400), result.ExpiresIn)
}

func TestLoginRejectionCarriesServerDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"detail":"Invalid auth ticket"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Login(context.Background(), "bad", "Ayla")

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	assert.Equal(t, "Invalid auth ticket", transportErr.Detail)
}

func TestDoAttachesBearerTokenAndRenewsExpiry(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"records":[]}`)
	}))
	defer server.Close()

	session := validStubSession("tok")
	client := NewClient(server.URL)
	client.BindSession(session)

	body, err := client.Do(context.Background(), http.MethodGet, "/forsale", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(body))
	assert.Equal(t, 1, session.renewCalls)
	assert.Zero(t, session.ensureCalls)
}

func TestDoReauthenticatesOnceOn401(t *testing.T) {
	t.Parallel()

	var requests int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()

		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = fmt.Fprint(w, `{"detail":"Unauthorized"}`)
			return
		}
		assert.Equal(t, "Bearer fresh-stale", r.Header.Get("Authorization"))
		_, _ = fmt.Fprint(w, `{"records":[]}`)
	}))
	defer server.Close()

	session := validStubSession("stale")
	client := NewClient(server.URL)
	client.BindSession(session)

	body, err := client.Do(context.Background(), http.MethodGet, "/forsale", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"records":[]}`, string(body))

	assert.Equal(t, 1, session.clearCalls)
	assert.Equal(t, 1, session.ensureCalls)
	mu.Lock()
	assert.Equal(t, 2, requests)
	mu.Unlock()
}

func TestDoSecond401IsTerminal(t *testing.T) {
	t.Parallel()

	var requests int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"detail":"Unauthorized"}`)
	}))
	defer server.Close()

	session := validStubSession("stale")
	client := NewClient(server.URL)
	client.BindSession(session)

	_, err := client.Do(context.Background(), http.MethodGet, "/forsale", nil)
	require.ErrorIs(t, err, domain.ErrSessionRestartRequired)

	mu.Lock()
	assert.Equal(t, 2, requests, "exactly one retry after re-authentication")
	mu.Unlock()
}

func TestDoFailedReauthenticationIsTerminal(t *testing.T) {
	t.Parallel()

	var requests int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	session := validStubSession("stale")
	session.ensureErr = errors.New("ticket exchange failed")
	client := NewClient(server.URL)
	client.BindSession(session)

	_, err := client.Do(context.Background(), http.MethodGet, "/forsale", nil)
	require.ErrorIs(t, err, domain.ErrSessionRestartRequired)

	mu.Lock()
	assert.Equal(t, 1, requests, "no retry when re-authentication fails")
	mu.Unlock()
}

func TestDoNonAuthFailureIsNotRetried(t *testing.T) {
	t.Parallel()

	var requests int
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		requests++
		mu.Unlock()
		w.WriteHeader(http.StatusConflict)
		_, _ = fmt.Fprint(w, `{"detail":"Insufficient stock"}`)
	}))
	defer server.Close()

	session := validStubSession("tok")
	client := NewClient(server.URL)
	client.BindSession(session)

	_, err := client.Do(context.Background(), http.MethodPost, "/buy", []byte(`{}`))

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusConflict, transportErr.StatusCode)
	assert.Equal(t, "Insufficient stock", transportErr.Detail)
	assert.Zero(t, session.ensureCalls)

	mu.Lock()
	assert.Equal(t, 1, requests)
	mu.Unlock()
}

func TestDoUnreachableServerIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	session := validStubSession("tok")
	client := NewClient(server.URL)
	client.BindSession(session)

	_, err := client.Do(context.Background(), http.MethodGet, "/forsale", nil)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Zero(t, transportErr.StatusCode)
	assert.NotEmpty(t, transportErr.Detail)
}

func TestErrorDetailFallsBackToRawBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain failure text", errorDetail([]byte("  plain failure text \n")))
	assert.Equal(t, "structured", errorDetail([]byte(`{"detail":"structured"}`)))
	assert.Equal(t, `{"other":"field"}`, errorDetail([]byte(`{"other":"field"}`)))
}
