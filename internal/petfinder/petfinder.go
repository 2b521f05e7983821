package petfinder

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.petfinder.com/v2"
	userAgent = "purrfect-match (github.com/BryanGrisales/PURR-Fect)"
	// Max value of a single search page we ever ask for.
	maxLimit = 100
)

var (
	// ErrNotConfigured is returned when the client credential pair is missing.
	ErrNotConfigured = errors.New("petfinder credentials are not configured")
	// ErrTokenUnavailable is returned when no access token could be obtained.
	ErrTokenUnavailable = errors.New("petfinder access token is unavailable")
)

// Credentials is the OAuth2 client credential pair issued by Petfinder.
type Credentials struct {
	APIKey string
	Secret string
}

// Configured reports whether both halves of the pair are present.
func (c Credentials) Configured() bool {
	return strings.TrimSpace(c.APIKey) != "" && strings.TrimSpace(c.Secret) != ""
}

type Client struct {
	credentials Credentials
	tokens      *TokenCache
	logger      *zap.Logger
	HTTPClient  *http.Client
	UserAgent   string
	APIURL      string
}

// New creates a Petfinder client. The token cache is owned by the caller so
// that a single run reuses one grant; a nil cache gets a private one.
func New(logger *zap.Logger, credentials Credentials, tokens *TokenCache) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokens == nil {
		tokens = &TokenCache{}
	}

	return &Client{
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
		APIURL:      apiURL,
		UserAgent:   userAgent,
		// No timeout beyond the http client defaults.
		HTTPClient: &http.Client{},
	}
}

// Configured reports whether searches can be attempted at all.
func (c *Client) Configured() bool {
	return c != nil && c.credentials.Configured()
}

func (c *Client) Search(ctx context.Context, params *SearchParams) ([]*Animal, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	return c.search(ctx, params)
}
