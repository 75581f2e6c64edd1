package auth0

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates RS256 access tokens issued by the tenant, resolving
// signing keys from the tenant JWKS endpoint with a local cache.
type Verifier struct {
	audience string
	issuer   string
	jwksURL  string
	client   *http.Client
	cacheTTL time.Duration

	mu         sync.RWMutex
	keys       map[string]*rsa.PublicKey
	lastReload time.Time
}

func NewVerifier(domain, audience string) (*Verifier, error) {
	base := Credentials{Domain: domain}.baseURL()
	if audience == "" {
		return nil, errors.New("auth0: audience is required")
	}

	return &Verifier{
		audience: audience,
		issuer:   base + "/",
		jwksURL:  base + "/.well-known/jwks.json",
		client:   &http.Client{Timeout: 10 * time.Second},
		cacheTTL: 15 * time.Minute,
	}, nil
}

// Verify parses and validates a bearer token, enforcing signature, issuer,
// audience, and expiry.
func (v *Verifier) Verify(ctx context.Context, token string) error {
	keyfunc := func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token header missing kid")
		}
		return v.lookupKey(ctx, kid)
	}

	_, err := jwt.Parse(token, keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}
	return nil
}

func (v *Verifier) lookupKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Since(v.lastReload) < v.cacheTTL
	v.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("signing key %q not found", kid)
	}
	return key, nil
}

func (v *Verifier) refreshKeys(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("build jwks request: %w", err)
	}

	res, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch jwks: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("jwks returned status %d", res.StatusCode)
	}

	var payload struct {
		Keys []struct {
			Kid string `json:"kid"`
			Kty string `json:"kty"`
			N   string `json:"n"`
			E   string `json:"e"`
		} `json:"keys"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return fmt.Errorf("decode jwks: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(payload.Keys))
	for _, k := range payload.Keys {
		if !strings.EqualFold(k.Kty, "RSA") || k.Kid == "" || k.N == "" || k.E == "" {
			continue
		}
		key, err := rsaKeyFromJWK(k.N, k.E)
		if err != nil {
			return fmt.Errorf("build rsa key %q: %w", k.Kid, err)
		}
		keys[k.Kid] = key
	}

	v.mu.Lock()
	v.keys = keys
	v.lastReload = time.Now()
	v.mu.Unlock()

	return nil
}

func rsaKeyFromJWK(modulus, exponent string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(modulus)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(exponent)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}
	if len(eBytes) == 0 {
		return nil, errors.New("empty exponent")
	}

	var e int
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}

	return &rsa.PublicKey{N: new(big.Int).SetBytes(nBytes), E: e}, nil
}
