// Package catapi looks up breed characteristics in TheCatAPI catalog.
package catapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.thecatapi.com/v1"
	breedPath = "/breeds"

	defaultLevel = 3
)

type Client struct {
	apiKey     string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

// New creates a catalog client. The API key is optional.
func New(logger *zap.Logger, apiKey string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey: strings.TrimSpace(apiKey),
		logger: logger,
		APIURL: apiURL,
		// No timeout beyond the http client defaults.
		HTTPClient: &http.Client{},
	}
}

// Result carries the fetched catalog or the reason it is missing.
type Result struct {
	Breeds *Breeds
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// FetchAll downloads the whole catalog. Failures are logged and reported in
// the result with an empty catalog.
func (c *Client) FetchAll(ctx context.Context) Result {
	breeds, err := c.fetch(ctx)
	if err != nil {
		c.logger.Warn("fetching breeds from TheCatAPI", zap.Error(err))
		return Result{Breeds: &Breeds{}, Err: err}
	}

	c.logger.Debug("retrieved cat breeds", zap.Int("count", breeds.Len()))
	return Result{Breeds: breeds}
}

// FindByName fetches the catalog and returns the breed with the given name,
// compared case-insensitively.
func (c *Client) FindByName(ctx context.Context, name string) (*Breed, bool) {
	result := c.FetchAll(ctx)
	breed := result.Breeds.FindByName(name)
	return breed, breed != nil
}

func (c *Client) fetch(ctx context.Context) (*Breeds, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+breedPath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var items []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return decodeBreeds(items)
}

type breedRecord struct {
	Name           string `json:"name"`
	Temperament    string `json:"temperament"`
	Origin         string `json:"origin"`
	Description    string `json:"description"`
	LifeSpan       string `json:"life_span"`
	Hypoallergenic *int   `json:"hypoallergenic"`
	EnergyLevel    *int   `json:"energy_level"`
	AffectionLevel *int   `json:"affection_level"`
}

func decodeBreeds(items []map[string]any) (*Breeds, error) {
	var records []breedRecord

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &records,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode breeds: %w", err)
	}

	breeds := &Breeds{Items: make([]*Breed, 0, len(records))}
	for _, r := range records {
		breeds.Items = append(breeds.Items, r.toBreed())
	}

	return breeds, nil
}

func (r breedRecord) toBreed() *Breed {
	return &Breed{
		Name:           orDefault(r.Name, "Unknown"),
		Temperament:    splitTemperament(r.Temperament),
		Origin:         orDefault(r.Origin, "Unknown"),
		Description:    r.Description,
		LifeSpan:       orDefault(r.LifeSpan, "Unknown"),
		Hypoallergenic: intOr(r.Hypoallergenic, 0),
		EnergyLevel:    intOr(r.EnergyLevel, defaultLevel),
		AffectionLevel: intOr(r.AffectionLevel, defaultLevel),
	}
}

func splitTemperament(s string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, part)
		}
	}
	return tags
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
