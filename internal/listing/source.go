// Package listing turns raw adoption listings into normalized cat profiles.
package listing

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/petfinder"
	"github.com/BryanGrisales/PURR-Fect/internal/traits"
)

// DefaultLimit is the number of listings requested per search.
const DefaultLimit = 20

// Status tells a caller why a search produced the cats it did.
type Status int

const (
	StatusOK Status = iota
	StatusNotConfigured
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotConfigured:
		return "not_configured"
	case StatusUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of a search. Cats is empty unless Status is StatusOK,
// and may also be empty with StatusOK when nothing is listed nearby.
type Result struct {
	Cats   *Cats
	Status Status
	Err    error
}

// OK reports whether the listing service answered.
func (r Result) OK() bool {
	return r.Status == StatusOK
}

// Searcher is the transport used to fetch raw listings.
type Searcher interface {
	Configured() bool
	Search(ctx context.Context, params *petfinder.SearchParams) ([]*petfinder.Animal, error)
}

type Source struct {
	client Searcher
	table  *traits.Table
	steps  []Filter
	logger *zap.Logger
}

// NewSource creates a Listing Source. A nil client is treated as not configured
// and a nil table falls back to the built-in keywords.
func NewSource(client Searcher, table *traits.Table, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	if table == nil {
		table = traits.Default()
	}

	return &Source{
		client: client,
		table:  table,
		steps:  DefaultSteps(),
		logger: logger,
	}
}

// Configured reports whether the listing service has credentials.
func (s *Source) Configured() bool {
	return s.client != nil && s.client.Configured()
}

// Search fetches up to limit adoptable cats near location. It never returns an
// error; failures are reported through Result.Status.
func (s *Source) Search(ctx context.Context, location string, limit int) Result {
	if !s.Configured() {
		return Result{Cats: &Cats{}, Status: StatusNotConfigured, Err: petfinder.ErrNotConfigured}
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	animals, err := s.client.Search(ctx, petfinder.CatSearch(location, limit))
	if err != nil {
		if errors.Is(err, petfinder.ErrNotConfigured) {
			return Result{Cats: &Cats{}, Status: StatusNotConfigured, Err: err}
		}
		s.logger.Warn("searching petfinder", zap.String("location", location), zap.Error(err))
		return Result{Cats: &Cats{}, Status: StatusUnavailable, Err: err}
	}

	cats := &Cats{Items: make([]*Cat, 0, len(animals))}
	for _, a := range animals {
		cats.Items = append(cats.Items, FromAnimal(a))
	}

	cats, err = Run(ctx, Deps{Logger: s.logger, Table: s.table}, s.steps, cats)
	if err != nil {
		s.logger.Warn("normalizing listings", zap.Error(err))
		return Result{Cats: &Cats{}, Status: StatusUnavailable, Err: err}
	}

	s.logger.Info("found unique adoptable cats",
		zap.Int("count", cats.Len()),
		zap.Int("records", len(animals)),
		zap.String("location", location),
	)

	return Result{Cats: cats, Status: StatusOK}
}
