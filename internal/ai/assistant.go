package ai

import (
	"context"

	"github.com/BryanGrisales/PURR-Fect/internal/matching"
)

// Advice is a short personalized note about one match.
type Advice struct {
	Summary string
	Tips    []string
	Raw     string
}

// Advisor writes adoption advice for a scored match. It never changes scores.
type Advisor interface {
	Advise(ctx context.Context, user *matching.UserProfile, match *matching.Match) (*Advice, error)
}
