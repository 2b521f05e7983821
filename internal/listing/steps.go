package listing

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/petfinder"
	"github.com/BryanGrisales/PURR-Fect/internal/utils"
)

const descriptionLogLimit = 80

// Description words that betray an untyped rabbit listing.
var notCatWords = []string{"rabbit", "bunny"}

type speciesGuard struct{}

// NewSpeciesGuard creates a step that drops records which are clearly not cats.
func NewSpeciesGuard() Filter {
	return &speciesGuard{}
}

func (f *speciesGuard) Name() string { return "species_guard" }

func (f *speciesGuard) Apply(_ context.Context, deps Deps, c *Cats) (*Cats, Step, error) {
	initial := c.Len()
	kept := make([]*Cat, 0, initial)

	for _, cat := range c.Items {
		if reason := notACat(cat); reason != "" {
			deps.Logger.Info("skipping listing",
				zap.String("cat_id", cat.ID),
				zap.String("name", cat.Name),
				zap.String("reason", reason),
				zap.String("description", utils.TruncateForLog(cat.Description, descriptionLogLimit)),
			)
			continue
		}
		kept = append(kept, cat)
	}

	c.Items = kept
	return c, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func notACat(cat *Cat) string {
	if cat.Species != "" && !strings.EqualFold(cat.Species, petfinder.TypeCat) {
		return "type is " + cat.Species
	}

	if cat.Species != "" {
		return ""
	}

	// Untyped records are only judged by their description.
	description := strings.ToLower(cat.Description)
	for _, w := range notCatWords {
		if strings.Contains(description, w) {
			return "description mentions " + w
		}
	}

	return ""
}

type dedupe struct{}

// NewDedupe creates a step that keeps the first record per id and lets later
// duplicates only backfill its empty photo and contact fields.
func NewDedupe() Filter {
	return &dedupe{}
}

func (f *dedupe) Name() string { return "dedupe" }

func (f *dedupe) Apply(_ context.Context, deps Deps, c *Cats) (*Cats, Step, error) {
	initial := c.Len()
	seen := make(map[string]*Cat, initial)
	kept := make([]*Cat, 0, initial)

	for _, cat := range c.Items {
		if canonical, ok := seen[cat.ID]; ok {
			canonical.Backfill(cat)
			deps.Logger.Debug("merged duplicate listing", zap.String("cat_id", cat.ID))
			continue
		}
		seen[cat.ID] = cat
		kept = append(kept, cat)
	}

	c.Items = kept
	return c, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

type derive struct{}

// NewDerive creates a step that computes personality attributes for each cat.
func NewDerive() Filter {
	return &derive{}
}

func (f *derive) Name() string { return "derive_traits" }

func (f *derive) Apply(_ context.Context, deps Deps, c *Cats) (*Cats, Step, error) {
	if deps.Table == nil {
		return nil, Step{}, errors.New("keyword table is required")
	}

	for _, cat := range c.Items {
		cat.Enhance(deps.Table)
	}

	return c, Step{Initial: c.Len(), Left: c.Len()}, nil
}
