package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/matching"
	"github.com/BryanGrisales/PURR-Fect/internal/session"
)

var hoursAwayChoices = []struct {
	Label string
	Hours int
}{
	{Label: "Less than 4 hours", Hours: 3},
	{Label: "4-8 hours", Hours: 6},
	{Label: "More than 8 hours", Hours: 10},
}

// prompter is the terminal surface the quiz talks to.
type prompter interface {
	choose(label string, items []string) (int, error)
	ask(label string, validate promptui.ValidateFunc) (string, error)
}

type terminalPrompter struct{}

func (terminalPrompter) choose(label string, items []string) (int, error) {
	prompt := promptui.Select{Label: label, Items: items}
	idx, _, err := prompt.Run()
	return idx, err
}

func (terminalPrompter) ask(label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{Label: label, Validate: validate}
	return prompt.Run()
}

// quiz collects a user profile with a fixed sequence of prompts.
type quiz struct {
	prompter prompter
	out      io.Writer
	logger   *zap.Logger
}

func newQuiz(out io.Writer, logger *zap.Logger) *quiz {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &quiz{prompter: terminalPrompter{}, out: out, logger: logger}
}

func (q *quiz) Collect(ctx context.Context) (*matching.UserProfile, error) {
	fmt.Fprintln(q.out, "\nWelcome to PurrfectMatch!")
	fmt.Fprintln(q.out, "Let's find your perfect cat companion!")
	fmt.Fprintln(q.out, strings.Repeat("-", 50))

	user := &matching.UserProfile{}

	homeLabels := make([]string, 0, len(matching.HomeTypes))
	for _, h := range matching.HomeTypes {
		homeLabels = append(homeLabels, h.Label())
	}
	idx, err := q.choose(ctx, "What's your living situation?", homeLabels)
	if err != nil {
		return nil, err
	}
	user.HomeType = matching.HomeTypes[idx]

	hoursLabels := make([]string, 0, len(hoursAwayChoices))
	for _, c := range hoursAwayChoices {
		hoursLabels = append(hoursLabels, c.Label)
	}
	if idx, err = q.choose(ctx, "Hours away from home daily?", hoursLabels); err != nil {
		return nil, err
	}
	user.HoursAway = hoursAwayChoices[idx].Hours

	activity, err := q.ask(ctx, "Activity level (1-10, 10=very active)", validateActivity)
	if err != nil {
		return nil, err
	}
	level, _ := strconv.Atoi(strings.TrimSpace(activity))
	user.ActivityLevel = matching.ClampActivity(level)

	expLabels := make([]string, 0, len(matching.Experiences))
	for _, e := range matching.Experiences {
		expLabels = append(expLabels, e.Label())
	}
	if idx, err = q.choose(ctx, "Cat experience?", expLabels); err != nil {
		return nil, err
	}
	user.Experience = matching.Experiences[idx]

	allergies, err := q.ask(ctx, "Allergies? (y/n)", validateYesNo)
	if err != nil {
		return nil, err
	}
	user.Allergies = isYes(allergies)

	desired, err := q.ask(ctx, fmt.Sprintf("Desired traits, comma-separated (%s)", strings.Join(matching.KnownTraits, ", ")), nil)
	if err != nil {
		return nil, err
	}
	user.DesiredTraits = matching.ParseTraits(desired)
	q.warnUnknownTraits(user.DesiredTraits)

	location, err := q.ask(ctx, "ZIP code or city", validateLocation)
	if err != nil {
		return nil, err
	}
	user.Location = strings.TrimSpace(location)

	return user, nil
}

func (q *quiz) choose(ctx context.Context, label string, items []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", session.ErrInterrupted, err)
	}
	idx, err := q.prompter.choose(label, items)
	if err != nil {
		return 0, promptError(label, err)
	}
	if idx < 0 || idx >= len(items) {
		return 0, fmt.Errorf("%s: choice %d out of range", label, idx+1)
	}
	return idx, nil
}

func (q *quiz) ask(ctx context.Context, label string, validate promptui.ValidateFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", session.ErrInterrupted, err)
	}
	answer, err := q.prompter.ask(label, validate)
	if err != nil {
		return "", promptError(label, err)
	}
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", fmt.Errorf("%s: %w", label, err)
		}
	}
	return answer, nil
}

func (q *quiz) warnUnknownTraits(desired []string) {
	for _, t := range desired {
		known := false
		for _, k := range matching.KnownTraits {
			if t == k {
				known = true
				break
			}
		}
		if !known {
			q.logger.Debug("desired trait is not derived from listings and will never match", zap.String("trait", t))
		}
	}
}

func promptError(label string, err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return fmt.Errorf("%w: %w", session.ErrInterrupted, err)
	}
	return fmt.Errorf("prompt %q: %w", label, err)
}

func validateActivity(input string) error {
	level, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if level < 1 || level > 10 {
		return errors.New("enter a number between 1 and 10")
	}
	return nil
}

func validateYesNo(input string) error {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes", "n", "no":
		return nil
	}
	return errors.New("answer y or n")
}

func isYes(input string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y")
}

func validateLocation(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("a location is required")
	}
	return nil
}
