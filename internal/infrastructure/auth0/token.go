package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	appauth "github.com/campushub/user-gateway/internal/application/auth"
)

// Credentials identifies one Auth0 client-credentials grant.
type Credentials struct {
	Domain       string
	ClientID     string
	ClientSecret string
	Audience     string
}

func (c Credentials) baseURL() string {
	domain := strings.TrimSuffix(strings.TrimSpace(c.Domain), "/")
	if !strings.HasPrefix(domain, "http") {
		domain = "https://" + domain
	}
	return domain
}

// TokenClient performs one client-credentials exchange per call. The API
// token passthrough endpoint uses it directly, uncached.
type TokenClient struct {
	Credentials Credentials
	HTTPClient  *http.Client
}

func (c *TokenClient) ClientCredentials(ctx context.Context) (appauth.TokenResponse, error) {
	return exchangeToken(ctx, c.HTTPClient, c.Credentials)
}

func exchangeToken(ctx context.Context, client *http.Client, creds Credentials) (appauth.TokenResponse, error) {
	if creds.Domain == "" || creds.ClientID == "" || creds.ClientSecret == "" || creds.Audience == "" {
		return appauth.TokenResponse{}, errors.New("auth0: client credentials config incomplete")
	}

	payload, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"audience":      creds.Audience,
	})
	if err != nil {
		return appauth.TokenResponse{}, fmt.Errorf("auth0: marshal token request: %w", err)
	}

	endpoint := creds.baseURL() + "/oauth/token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return appauth.TokenResponse{}, fmt.Errorf("auth0: new token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	res, err := client.Do(req)
	if err != nil {
		return appauth.TokenResponse{}, fmt.Errorf("auth0: token exchange failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var body struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(res.Body).Decode(&body)
		if body.ErrorDescription != "" {
			return appauth.TokenResponse{}, fmt.Errorf("auth0: token exchange: %s", body.ErrorDescription)
		}
		if body.Error != "" {
			return appauth.TokenResponse{}, fmt.Errorf("auth0: token exchange: %s", body.Error)
		}
		return appauth.TokenResponse{}, fmt.Errorf("auth0: token exchange unexpected status %d", res.StatusCode)
	}

	var token appauth.TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&token); err != nil {
		return appauth.TokenResponse{}, fmt.Errorf("auth0: decode token response: %w", err)
	}
	if token.AccessToken == "" {
		return appauth.TokenResponse{}, errors.New("auth0: empty access token in response")
	}
	if token.TokenType == "" {
		token.TokenType = "Bearer"
	}

	return token, nil
}

// tokenSource caches the Management API token until shortly before expiry.
type tokenSource struct {
	creds  Credentials
	client *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func (t *tokenSource) Token(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Now().Before(t.expiresAt) {
		return t.token, nil
	}

	token, err := exchangeToken(ctx, t.client, t.creds)
	if err != nil {
		return "", err
	}

	t.token = token.AccessToken
	// Refresh a little early so in-flight batches do not race expiry.
	t.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - 30*time.Second)

	return t.token, nil
}
