package listing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/traits"
)

// Filter is a single normalization step applied to a batch of cats.
type Filter interface {
	Name() string
	Apply(ctx context.Context, deps Deps, c *Cats) (*Cats, Step, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger *zap.Logger
	Table  *traits.Table
}

// Step describes the result of executing a step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// DefaultSteps is the normalization order used by Source.
func DefaultSteps() []Filter {
	return []Filter{
		NewSpeciesGuard(),
		NewDedupe(),
		NewDerive(),
	}
}

// Run executes the supplied steps sequentially.
func Run(ctx context.Context, deps Deps, steps []Filter, c *Cats) (*Cats, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		next, info, err := step.Apply(ctx, deps, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Debug("normalize step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		c = next
	}

	return c, nil
}
