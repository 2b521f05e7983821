package petfinder

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	tokenPath = "/oauth2/token"
	// A cached token is dropped this long before its declared expiry.
	tokenSafetyMargin = 60 * time.Second
)

// TokenCache keeps one bearer token and the moment it stops being reused.
// It is not safe for concurrent use; a matching run is sequential.
type TokenCache struct {
	value   string
	expires time.Time
	// now is swapped in tests.
	now func() time.Time
}

func (t *TokenCache) clock() time.Time {
	if t.now != nil {
		return t.now()
	}
	return time.Now()
}

// Get returns the cached token if it is still usable.
func (t *TokenCache) Get() (string, bool) {
	if t.value == "" || !t.clock().Before(t.expires) {
		return "", false
	}
	return t.value, true
}

// Store records a token granted now and valid for expiresIn.
func (t *TokenCache) Store(value string, expiresIn time.Duration) {
	t.value = value
	t.expires = t.clock().Add(expiresIn - tokenSafetyMargin)
}

// Reset forgets the cached token.
func (t *TokenCache) Reset() {
	t.value = ""
	t.expires = time.Time{}
}

type tokenResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

// accessToken returns a cached token or exchanges the credential pair for a new one.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	if token, ok := c.tokens.Get(); ok {
		return token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.credentials.APIKey)
	form.Set("client_secret", c.credentials.Secret)

	var resp tokenResponse
	if err := c.postForm(ctx, fmt.Sprintf("%s%s", c.APIURL, tokenPath), form, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenUnavailable, err)
	}

	if strings.TrimSpace(resp.AccessToken) == "" {
		return "", fmt.Errorf("%w: empty access token in response", ErrTokenUnavailable)
	}

	c.tokens.Store(resp.AccessToken, time.Duration(resp.ExpiresIn)*time.Second)
	c.logger.Debug("got petfinder access token", zap.Int("expires_in", resp.ExpiresIn))

	return resp.AccessToken, nil
}
