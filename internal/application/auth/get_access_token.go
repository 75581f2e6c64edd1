package auth

import "context"

// TokenResponse is the credential handed back to API callers.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type tokenExchanger interface {
	ClientCredentials(ctx context.Context) (TokenResponse, error)
}

type GetAccessToken interface {
	Execute(ctx context.Context) (TokenResponse, error)
}

type getAccessToken struct {
	exchanger tokenExchanger
}

func NewGetAccessToken(exchanger tokenExchanger) GetAccessToken {
	return &getAccessToken{exchanger: exchanger}
}

// Execute exchanges the configured API client credentials for an access
// token. No caching: each call hits the identity provider, matching the
// passthrough contract.
func (uc *getAccessToken) Execute(ctx context.Context) (TokenResponse, error) {
	return uc.exchanger.ClientCredentials(ctx)
}
