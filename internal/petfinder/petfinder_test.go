package petfinder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePetfinder struct {
	tokenCalls  atomic.Int32
	searchCalls atomic.Int32
	expiresIn   int
	animals     []map[string]any
	failToken   bool
}

func (f *fakePetfinder) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "key", r.PostForm.Get("client_id"))
		assert.Equal(t, "secret", r.PostForm.Get("client_secret"))

		if f.failToken {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn,
			"access_token": fmt.Sprintf("token-%d", f.tokenCalls.Load()),
		})
	})
	mux.HandleFunc("/animals", func(w http.ResponseWriter, r *http.Request) {
		f.searchCalls.Add(1)
		assert.Contains(t, r.Header.Get("Authorization"), "Bearer token-")

		q := r.URL.Query()
		assert.Equal(t, "cat", q.Get("type"))
		assert.Equal(t, "12345", q.Get("location"))
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "adoptable", q.Get("status"))

		json.NewEncoder(w).Encode(map[string]any{
			"animals":    f.animals,
			"pagination": map[string]any{"count_per_page": 20},
		})
	})
	return mux
}

func newTestClient(t *testing.T, fake *fakePetfinder, tokens *TokenCache) *Client {
	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	client := New(zap.NewNop(), Credentials{APIKey: "key", Secret: "secret"}, tokens)
	client.APIURL = server.URL
	return client
}

func TestSearchDecodesAnimals(t *testing.T) {
	fake := &fakePetfinder{
		expiresIn: 3600,
		animals: []map[string]any{
			{
				"id":              71234567,
				"type":            "Cat",
				"name":            "Mochi",
				"age":             "Young",
				"size":            "Small",
				"gender":          "Female",
				"description":     "Calm lap cat",
				"organization_id": "NJ123",
				"distance":        3.4,
				"breeds":          map[string]any{"primary": "Siamese", "secondary": nil, "mixed": false},
				"photos": []any{
					map[string]any{"small": "s.jpg", "large": "l.jpg"},
					map[string]any{"small": "s2.jpg"},
				},
				"contact": map[string]any{"email": "shelter@example.com", "phone": nil},
			},
			{
				"id":          "abc",
				"name":        nil,
				"description": nil,
				"distance":    nil,
			},
		},
	}
	client := newTestClient(t, fake, nil)

	animals, err := client.Search(context.Background(), CatSearch("12345", 20))
	require.NoError(t, err)
	require.Len(t, animals, 2)

	first := animals[0]
	assert.Equal(t, "71234567", first.ID)
	assert.Equal(t, "Mochi", first.Name)
	assert.Equal(t, "NJ123", first.OrganizationID)
	assert.InDelta(t, 3.4, first.Distance, 0.0001)
	assert.Equal(t, []string{"Siamese"}, first.BreedNames())
	assert.Equal(t, []string{"l.jpg"}, first.LargePhotos())
	assert.Equal(t, "shelter@example.com", first.Contact.Email)
	assert.Empty(t, first.Contact.Phone)

	second := animals[1]
	assert.Equal(t, "abc", second.ID)
	assert.Empty(t, second.Name)
	assert.Zero(t, second.Distance)
	assert.Empty(t, second.LargePhotos())
}

func TestTokenIsReusedUntilSafetyMargin(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tokens := &TokenCache{now: func() time.Time { return now }}

	fake := &fakePetfinder{expiresIn: 3600}
	client := newTestClient(t, fake, tokens)

	for i := 0; i < 3; i++ {
		_, err := client.Search(context.Background(), CatSearch("12345", 20))
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, fake.tokenCalls.Load())
	assert.EqualValues(t, 3, fake.searchCalls.Load())

	// still inside expiry minus the margin
	now = now.Add(3600*time.Second - tokenSafetyMargin - time.Second)
	_, err := client.Search(context.Background(), CatSearch("12345", 20))
	require.NoError(t, err)
	assert.EqualValues(t, 1, fake.tokenCalls.Load())

	now = now.Add(time.Second)
	_, err = client.Search(context.Background(), CatSearch("12345", 20))
	require.NoError(t, err)
	assert.EqualValues(t, 2, fake.tokenCalls.Load())
}

func TestSearchWithoutCredentials(t *testing.T) {
	client := New(zap.NewNop(), Credentials{APIKey: "key"}, nil)

	assert.False(t, client.Configured())
	_, err := client.Search(context.Background(), CatSearch("12345", 20))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSearchTokenFailure(t *testing.T) {
	fake := &fakePetfinder{failToken: true}
	client := newTestClient(t, fake, nil)

	_, err := client.Search(context.Background(), CatSearch("12345", 20))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTokenUnavailable))
	assert.EqualValues(t, 0, fake.searchCalls.Load())
}

func TestBuildParams(t *testing.T) {
	q := buildParams(&SearchParams{Type: "cat", Location: "Austin, TX"})

	assert.Equal(t, "cat", q.Get("type"))
	assert.Equal(t, "Austin, TX", q.Get("location"))
	assert.False(t, q.Has("limit"))
	assert.False(t, q.Has("status"))
}

func TestNewUsesDefaultHTTPTimeout(t *testing.T) {
	client := New(nil, Credentials{}, nil)
	require.NotNil(t, client.HTTPClient)
	assert.Zero(t, client.HTTPClient.Timeout)
}
