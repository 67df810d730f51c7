// Package supabase implements the identity provider against a hosted
// Supabase (GoTrue) auth API. Only the email/password endpoints are
// used; everything else Supabase offers is out of scope.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/Brianali-codes/Remaya-full/internal/config"
	"github.com/Brianali-codes/Remaya-full/internal/core"
)

const Type = "supabase"

const (
	signupEndpoint     = "/auth/v1/signup"
	passwordGrant      = "/auth/v1/token?grant_type=password"
	updateUserEndpoint = "/auth/v1/user"
)

var _ core.IdentityProvider = (*Provider)(nil)

type Provider struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

type ProviderConfig struct {
	// URL is the project base URL, e.g. https://xyz.supabase.co.
	URL string `mapstructure:"url"`

	// AnonKey is the public API key sent with every request.
	AnonKey string `mapstructure:"anon_key"`

	// Timeout bounds each request to the provider.
	Timeout time.Duration `mapstructure:"timeout"`
}

func New(conf ProviderConfig) (*Provider, error) {
	if conf.URL == "" {
		return nil, fmt.Errorf("supabase provider missing 'url'")
	}
	if conf.AnonKey == "" {
		return nil, fmt.Errorf("supabase provider missing 'anon_key'")
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 10 * time.Second
	}
	return &Provider{
		baseURL:    strings.TrimRight(conf.URL, "/"),
		anonKey:    conf.AnonKey,
		httpClient: &http.Client{Timeout: conf.Timeout},
	}, nil
}

func NewFromConfig(cfg config.IdentityConfig) (*Provider, error) {
	var conf ProviderConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:   nil,
		Result:     &conf,
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating decoder for supabase provider: %w", err)
	}
	if err := decoder.Decode(cfg.Config); err != nil {
		return nil, fmt.Errorf("decoding config for supabase provider: %w", err)
	}
	return New(conf)
}

func (p *Provider) Name() string {
	return Type
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type sessionResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

func (p *Provider) SignUp(ctx context.Context, email, password string) (*core.Account, error) {
	var resp struct {
		userResponse
		User *userResponse `json:"user"`
	}
	if err := p.post(ctx, signupEndpoint, "", credentialsBody(email, password), &resp); err != nil {
		return nil, err
	}
	// GoTrue returns the user at the top level or nested, depending
	// on whether email confirmation is enabled.
	user := resp.userResponse
	if resp.User != nil {
		user = *resp.User
	}
	if user.ID == "" {
		return nil, fmt.Errorf("%w: signup response missing user id", core.ErrUpstreamUnavailable)
	}
	return &core.Account{ID: user.ID, Email: user.Email}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*core.Account, error) {
	session, err := p.signInSession(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &core.Account{ID: session.User.ID, Email: session.User.Email}, nil
}

// UpdatePassword re-authenticates with the current password, then
// changes it using the short-lived provider session.
func (p *Provider) UpdatePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	session, err := p.signInSession(ctx, email, currentPassword)
	if err != nil {
		return err
	}
	body := map[string]string{"password": newPassword}
	return p.put(ctx, updateUserEndpoint, session.AccessToken, body, nil)
}

func (p *Provider) signInSession(ctx context.Context, email, password string) (*sessionResponse, error) {
	var session sessionResponse
	if err := p.post(ctx, passwordGrant, "", credentialsBody(email, password), &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" || session.User.ID == "" {
		return nil, core.ErrInvalidCredentials
	}
	return &session, nil
}

func credentialsBody(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func (p *Provider) post(ctx context.Context, path, userToken string, payload, result any) error {
	return p.do(ctx, http.MethodPost, path, userToken, payload, result)
}

func (p *Provider) put(ctx context.Context, path, userToken string, payload, result any) error {
	return p.do(ctx, http.MethodPut, path, userToken, payload, result)
}

func (p *Provider) do(ctx context.Context, method, path, userToken string, payload, result any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.anonKey)
	if userToken != "" {
		req.Header.Set("Authorization", "Bearer "+userToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.anonKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		// timeouts and connection failures are retryable upstream
		// errors, never credential failures
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return fmt.Errorf("%w: identity provider timed out", core.ErrUpstreamUnavailable)
		}
		return fmt.Errorf("%w: %v", core.ErrUpstreamUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusUnprocessableEntity:
		// the provider's error payload stays internal; clients only
		// ever see the generic classification
		return core.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: identity provider returned status %d", core.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: decoding provider response: %v", core.ErrUpstreamUnavailable, err)
		}
	}
	return nil
}
