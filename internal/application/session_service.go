package application

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/mtnworks/gt-client/internal/domain"
	"github.com/mtnworks/gt-client/internal/ports"
	"github.com/mtnworks/gt-client/pkg/logger"
)

const (
	// tokenValidity is the window granted to a freshly received token and
	// re-applied on every successful authenticated call (sliding expiration).
	tokenValidity = 24 * time.Hour

	// loginAttempts bounds the ticket-exchange retries per authentication.
	loginAttempts = 3

	defaultLoginRetryDelay = 2 * time.Second
)

// SessionService owns the identity ticket, the bearer token, and the
// coherency between the in-memory token and the durable cache. The durable
// copy is authoritative across restarts, the in-memory copy within a process.
//
// Overlapping EnsureAuthenticated calls are tolerated: the last writer to the
// cache wins, and validity is always re-checked against the clock.
type SessionService struct {
	identity ports.IdentityProvider
	cache    ports.TokenCache
	login    ports.LoginAPI
	clock    ports.Clock
	sched    ports.Scheduler
	log      *logrus.Entry

	// retryDelay separates ticket-exchange attempts. Tests shrink it.
	retryDelay time.Duration

	mu       sync.Mutex
	token    domain.BearerToken
	ensuring bool
}

// SessionOption adjusts a SessionService at construction.
type SessionOption func(*SessionService)

// WithRetryDelay overrides the delay between ticket-exchange attempts.
func WithRetryDelay(delay time.Duration) SessionOption {
	return func(s *SessionService) {
		s.retryDelay = delay
	}
}

// NewSessionService builds a session manager and restores the durable cache:
// a stored token that is already expired is deleted rather than kept stale.
func NewSessionService(identity ports.IdentityProvider, cache ports.TokenCache, login ports.LoginAPI, clock ports.Clock, sched ports.Scheduler, opts ...SessionOption) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if sched == nil {
		sched = ports.GoScheduler{}
	}

	s := &SessionService{
		identity:   identity,
		cache:      cache,
		login:      login,
		clock:      clock,
		sched:      sched,
		log:        logger.WithComponent("session"),
		retryDelay: defaultLoginRetryDelay,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.restoreCachedToken(context.Background())
	return s
}

func (s *SessionService) restoreCachedToken(ctx context.Context) {
	token, err := s.cache.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoCachedToken) {
			s.log.WithError(err).Warn("failed to load cached token")
		}
		return
	}

	if !token.Valid(s.clock.Now()) {
		s.log.Debug("cached token expired, clearing")
		if err := s.cache.Clear(ctx); err != nil {
			s.log.WithError(err).Warn("failed to clear expired token cache")
		}
		return
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// EnsureAuthenticated produces a valid bearer token. With a valid cached
// token this returns immediately without any network call. Otherwise it
// cancels the outstanding identity ticket, acquires a fresh one, and
// exchanges it with the trade server, retrying up to loginAttempts times with
// a fixed delay. On exhaustion the cache is left empty.
func (s *SessionService) EnsureAuthenticated(ctx context.Context) error {
	s.mu.Lock()
	if s.token.Valid(s.clock.Now()) {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	if err := s.identity.CancelTicket(ctx); err != nil {
		s.log.WithError(err).Warn("failed to cancel outstanding ticket")
	}

	identity, err := s.identity.Identity(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
	ticket, err := s.identity.AcquireTicket(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIdentityUnavailable, err)
	}
	ticketHex := hex.EncodeToString(ticket)

	var lastErr error
	for attempt := 1; attempt <= loginAttempts; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(s.retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		result, err := s.login.Login(ctx, ticketHex, identity.PlayerName)
		if err != nil {
			lastErr = err
			s.log.WithError(err).WithField("attempt", attempt).Warn("ticket exchange failed")
			continue
		}
		if result.Token == "" {
			lastErr = errors.New("login response missing token")
			s.log.WithField("attempt", attempt).Warn("login response missing token")
			continue
		}

		token := domain.BearerToken{
			Value:     result.Token,
			ExpiresAt: s.expiryFor(result.Token),
		}
		s.mu.Lock()
		s.token = token
		s.mu.Unlock()

		if err := s.cache.Store(ctx, token); err != nil {
			s.log.WithError(err).Error("failed to persist bearer token")
		}
		s.log.WithField("player", identity.PlayerName).Info("authenticated with trade server")
		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrAuthExchangeFailed, loginAttempts, lastErr)
}

// expiryFor derives the token's expiry. The server issues JWTs; when the
// token parses as one, its (unverified) exp claim is authoritative. Opaque
// tokens get the fixed validity window from receipt time.
func (s *SessionService) expiryFor(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil && exp.After(s.clock.Now()) {
			return exp.Time
		}
	}
	return s.clock.Now().Add(tokenValidity)
}

// GetToken returns the cached token only if currently valid. Otherwise it
// kicks off EnsureAuthenticated asynchronously, at most one at a time, so a
// later call may succeed; callers must not assume synchronous availability.
func (s *SessionService) GetToken() (domain.BearerToken, bool) {
	s.mu.Lock()
	if s.token.Valid(s.clock.Now()) {
		token := s.token
		s.mu.Unlock()
		return token, true
	}
	if !s.ensuring {
		s.ensuring = true
		s.sched.Defer(func() {
			defer func() {
				s.mu.Lock()
				s.ensuring = false
				s.mu.Unlock()
			}()
			if err := s.EnsureAuthenticated(context.Background()); err != nil {
				s.log.WithError(err).Warn("background re-authentication failed")
			}
		})
	}
	s.mu.Unlock()
	return domain.BearerToken{}, false
}

// CurrentToken reports the cached token and its validity without triggering
// re-authentication. Presentation-only; request paths use GetToken.
func (s *SessionService) CurrentToken() (domain.BearerToken, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token.Valid(s.clock.Now())
}

// RenewExpiry slides the token's lifetime forward after a successful
// authenticated call and persists the new expiry. No identity-provider
// contact happens here.
func (s *SessionService) RenewExpiry(ctx context.Context) {
	s.mu.Lock()
	if s.token.Value == "" {
		s.mu.Unlock()
		return
	}
	s.token.ExpiresAt = s.clock.Now().Add(tokenValidity)
	token := s.token
	s.mu.Unlock()

	if err := s.cache.Store(ctx, token); err != nil {
		s.log.WithError(err).Warn("failed to persist renewed expiry")
	}
}

// ClearToken invalidates the in-memory token and the durable cache. Used when
// the server explicitly rejects the token.
func (s *SessionService) ClearToken(ctx context.Context) {
	s.mu.Lock()
	s.token = domain.BearerToken{}
	s.mu.Unlock()

	if err := s.cache.Clear(ctx); err != nil {
		s.log.WithError(err).Warn("failed to clear token cache")
	}
}

// Cleanup cancels the outstanding identity ticket and clears all cached
// credentials. Called on shutdown.
func (s *SessionService) Cleanup(ctx context.Context) {
	if err := s.identity.CancelTicket(ctx); err != nil {
		s.log.WithError(err).Warn("failed to cancel ticket during cleanup")
	}
	s.ClearToken(ctx)
}

var _ ports.SessionTokens = (*SessionService)(nil)
