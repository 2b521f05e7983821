// Package session runs one interactive matching flow from quiz to saved results.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/ai"
	"github.com/BryanGrisales/PURR-Fect/internal/catapi"
	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/matching"
	"github.com/BryanGrisales/PURR-Fect/internal/utils"
)

const (
	DefaultTop = 5
)

// ErrInterrupted is returned by a Quiz when the user aborts input.
var ErrInterrupted = errors.New("interrupted")

// Quiz collects a user profile.
type Quiz interface {
	Collect(ctx context.Context) (*matching.UserProfile, error)
}

// Listings searches adoptable cats.
type Listings interface {
	Configured() bool
	Search(ctx context.Context, location string, limit int) listing.Result
}

// BreedFinder looks up catalog information by breed name.
type BreedFinder interface {
	FindByName(ctx context.Context, name string) (*catapi.Breed, bool)
}

// Store persists profiles and matches.
type Store interface {
	SaveUser(ctx context.Context, user *matching.UserProfile) (string, error)
	SaveMatch(ctx context.Context, sessionID string, cat *listing.Cat, score *matching.Score) error
}

type Config struct {
	// Limit is the number of listings requested.
	Limit int
	// Top is the number of matches displayed and saved.
	Top int
	// MinScore drops ranked matches with a lower total.
	MinScore int
}

type Deps struct {
	Quiz     Quiz
	Listings Listings
	Breeds   BreedFinder
	Store    Store
	// Advisor is optional.
	Advisor ai.Advisor
	Logger  *zap.Logger
	Out     io.Writer
}

// Outcome is how a run ended.
type Outcome int

const (
	OutcomeMatched Outcome = iota
	OutcomeNotConfigured
	OutcomeUnavailable
	OutcomeNoListings
	OutcomeNoneAboveThreshold
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeNotConfigured:
		return "not_configured"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeNoListings:
		return "no_listings"
	case OutcomeNoneAboveThreshold:
		return "none_above_threshold"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Report summarizes a finished run.
type Report struct {
	User      *matching.UserProfile
	SessionID string
	Outcome   Outcome
	// Matches holds the displayed and saved matches.
	Matches matching.Matches
	// Advice is keyed by cat id and only filled when an advisor is configured.
	Advice map[string]*ai.Advice
}

// Controller owns the state of a single run, including the breed cache.
type Controller struct {
	cfg  Config
	deps Deps

	// breeds caches lookups by breed name; a nil value records a miss.
	breeds map[string]*catapi.Breed
}

func New(cfg Config, deps Deps) *Controller {
	if cfg.Limit <= 0 {
		cfg.Limit = listing.DefaultLimit
	}
	if cfg.Top <= 0 {
		cfg.Top = DefaultTop
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	return &Controller{
		cfg:    cfg,
		deps:   deps,
		breeds: make(map[string]*catapi.Breed),
	}
}

// Run executes quiz, persistence, search, scoring, display and saving.
func (c *Controller) Run(ctx context.Context) (*Report, error) {
	user, err := c.deps.Quiz.Collect(ctx)
	if err != nil {
		return nil, err
	}

	sessionID, err := c.deps.Store.SaveUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	fmt.Fprintf(c.deps.Out, "\nProfile saved! ID: %s\n", sessionID)

	logger := c.deps.Logger.With(zap.String("session_id", sessionID))
	report := &Report{User: user, SessionID: sessionID, Advice: make(map[string]*ai.Advice)}

	if c.deps.Listings == nil || !c.deps.Listings.Configured() {
		logger.Warn("petfinder is not configured", zap.String("hint", "set PETFINDER_API_KEY and PETFINDER_SECRET"))
		fmt.Fprintln(c.deps.Out, "WARNING: Petfinder API not configured - no cats can be searched.")
		report.Outcome = OutcomeNotConfigured
		return report, nil
	}

	matches, outcome := c.findMatches(ctx, logger, user)
	report.Outcome = outcome
	if outcome != OutcomeMatched {
		return report, nil
	}

	report.Matches = matches
	c.advise(ctx, logger, report)
	c.display(report)

	for _, m := range matches {
		if err := c.deps.Store.SaveMatch(ctx, sessionID, m.Cat, m.Score); err != nil {
			return report, fmt.Errorf("saving match for cat %s: %w", m.Cat.ID, err)
		}
	}
	fmt.Fprintf(c.deps.Out, "\nSaved %d %s to database!\n", len(matches), utils.Plural(len(matches), "match", "matches"))
	logger.Info("saved matches", zap.Int("count", len(matches)))

	return report, nil
}

// findMatches searches, scores, ranks and trims the candidate list.
func (c *Controller) findMatches(ctx context.Context, logger *zap.Logger, user *matching.UserProfile) (matching.Matches, Outcome) {
	fmt.Fprintf(c.deps.Out, "\nSearching for cats near %s...\n", user.Location)

	result := c.deps.Listings.Search(ctx, user.Location, c.cfg.Limit)
	switch {
	case result.Status == listing.StatusNotConfigured:
		fmt.Fprintln(c.deps.Out, "WARNING: Petfinder API not configured - no cats can be searched.")
		return nil, OutcomeNotConfigured
	case !result.OK():
		logger.Warn("listing service unavailable", zap.Error(result.Err))
		fmt.Fprintln(c.deps.Out, "ERROR: The adoption listing service is unavailable right now. Please try again later.")
		return nil, OutcomeUnavailable
	case result.Cats.Len() == 0:
		fmt.Fprintf(c.deps.Out, "No adoptable cats are listed near %s. Try a different location.\n", user.Location)
		return nil, OutcomeNoListings
	}

	matches := make(matching.Matches, 0, result.Cats.Len())
	for _, cat := range result.Cats.Items {
		breed := c.breed(ctx, cat.PrimaryBreed())
		matches = append(matches, &matching.Match{
			Cat:   cat,
			Score: matching.Compute(user, cat, breed),
			Breed: breed,
		})
	}

	ranked := matching.Rank(matches).AtLeast(c.cfg.MinScore)
	logger.Info("scored cats",
		zap.Int("candidates", len(matches)),
		zap.Int("above_threshold", len(ranked)),
		zap.Int("breeds_looked_up", len(c.breeds)),
	)

	if len(ranked) == 0 {
		fmt.Fprintf(c.deps.Out, "Found %d %s, but none reached a compatibility score of %d.\n",
			len(matches), utils.Plural(len(matches), "cat", "cats"), c.cfg.MinScore)
		return nil, OutcomeNoneAboveThreshold
	}

	return ranked.Top(c.cfg.Top), OutcomeMatched
}

// breed returns catalog info for a breed name, asking the catalog at most
// once per name during a run.
func (c *Controller) breed(ctx context.Context, name string) *catapi.Breed {
	if name == "" || c.deps.Breeds == nil {
		return nil
	}

	if breed, ok := c.breeds[name]; ok {
		return breed
	}

	breed, ok := c.deps.Breeds.FindByName(ctx, name)
	if !ok {
		breed = nil
	}
	c.breeds[name] = breed
	return breed
}

func (c *Controller) advise(ctx context.Context, logger *zap.Logger, report *Report) {
	if c.deps.Advisor == nil {
		return
	}

	for _, m := range report.Matches {
		advice, err := c.deps.Advisor.Advise(ctx, report.User, m)
		if err != nil {
			logger.Warn("skipping match advice", zap.String("cat_id", m.Cat.ID), zap.Error(err))
			continue
		}
		report.Advice[m.Cat.ID] = advice
	}
}
