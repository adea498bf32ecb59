package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sglre6355/spotilink/internal/modules/spotify_player/application/ports"
	"github.com/sglre6355/spotilink/internal/modules/spotify_player/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// DefaultTokenURL is the catalog's client-credentials token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

// tokenExchangeTimeout bounds a single token request.
const tokenExchangeTimeout = 10 * time.Second

// CredentialConfig contains the catalog application credentials.
type CredentialConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// CredentialManager caches the catalog access token and refreshes it on expiry.
type CredentialManager struct {
	config     *clientcredentials.Config // nil when disabled
	httpClient *http.Client
	now        func() time.Time

	mu         sync.RWMutex
	credential domain.AccessCredential

	refreshGroup singleflight.Group
}

// CredentialOption configures a CredentialManager.
type CredentialOption func(*CredentialManager)

// WithCredentialHTTPClient sets the HTTP client used for token requests.
func WithCredentialHTTPClient(client *http.Client) CredentialOption {
	return func(m *CredentialManager) {
		m.httpClient = client
	}
}

// WithClock replaces the time source used for expiry checks.
func WithClock(now func() time.Time) CredentialOption {
	return func(m *CredentialManager) {
		m.now = now
	}
}

// NewCredentialManager creates a CredentialManager.
// Without a client ID and secret every call fails with domain.ErrCatalogDisabled.
func NewCredentialManager(config CredentialConfig, opts ...CredentialOption) *CredentialManager {
	m := &CredentialManager{
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if config.ClientID == "" || config.ClientSecret == "" {
		return m
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	m.config = &clientcredentials.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	return m
}

// Enabled reports whether client credentials are configured.
func (m *CredentialManager) Enabled() bool {
	return m.config != nil
}

// Credential returns the cached credential, exchanging a new one when it is missing or expired.
// Concurrent callers share one in-flight exchange.
func (m *CredentialManager) Credential(ctx context.Context) (domain.AccessCredential, error) {
	if m.config == nil {
		return domain.AccessCredential{}, domain.ErrCatalogDisabled
	}

	if credential, ok := m.cached(); ok {
		return credential, nil
	}

	result, err, _ := m.refreshGroup.Do("token", func() (any, error) {
		// Another caller may have refreshed while we waited for the group.
		if credential, ok := m.cached(); ok {
			return credential, nil
		}
		// One caller's cancellation must not fail the others sharing this exchange.
		return m.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return domain.AccessCredential{}, err
	}

	return result.(domain.AccessCredential), nil
}

// Invalidate drops the cached credential if it still holds token.
func (m *CredentialManager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.credential.Token == token {
		m.credential = domain.AccessCredential{}
	}
}

func (m *CredentialManager) cached() (domain.AccessCredential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.credential, m.credential.IsUsable(m.now())
}

func (m *CredentialManager) refresh(ctx context.Context) (domain.AccessCredential, error) {
	ctx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, m.httpClient)

	requestedAt := m.now()
	token, err := m.config.Token(ctx)
	if err != nil {
		slog.Error("catalog token exchange failed", "error", err)
		return domain.AccessCredential{}, fmt.Errorf("%w: %w", domain.ErrCredentialUnavailable, err)
	}

	lifetime, ok := tokenLifetime(token)
	if !ok {
		slog.Error("catalog token response has no usable expires_in")
		return domain.AccessCredential{}, fmt.Errorf(
			"%w: %w: missing expires_in",
			domain.ErrCredentialUnavailable,
			domain.ErrMalformedCatalogResponse,
		)
	}

	credential := domain.AccessCredential{
		Token:     token.AccessToken,
		ExpiresAt: requestedAt.Add(lifetime),
	}

	m.mu.Lock()
	m.credential = credential
	m.mu.Unlock()

	slog.Info("catalog token refreshed", "expires_at", credential.ExpiresAt)

	return credential, nil
}

// tokenLifetime reads expires_in (seconds) from the raw token response.
func tokenLifetime(token *oauth2.Token) (time.Duration, bool) {
	var seconds float64
	switch v := token.Extra("expires_in").(type) {
	case float64:
		seconds = v
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		seconds = f
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		seconds = f
	default:
		return 0, false
	}

	if seconds <= 0 {
		return 0, false
	}
	return time.Duration(seconds * float64(time.Second)), true
}

// Ensure CredentialManager implements ports.CredentialProvider.
var _ ports.CredentialProvider = (*CredentialManager)(nil)
