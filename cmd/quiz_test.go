package cmd

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/BryanGrisales/PURR-Fect/internal/matching"
	"github.com/BryanGrisales/PURR-Fect/internal/session"
)

type scriptedPrompter struct {
	choices []int
	answers []string
	err     error
	labels  []string
}

func (p *scriptedPrompter) choose(label string, _ []string) (int, error) {
	p.labels = append(p.labels, label)
	if p.err != nil && len(p.choices) == 0 {
		return 0, p.err
	}
	idx := p.choices[0]
	p.choices = p.choices[1:]
	return idx, nil
}

func (p *scriptedPrompter) ask(label string, _ promptui.ValidateFunc) (string, error) {
	p.labels = append(p.labels, label)
	if p.err != nil && len(p.answers) == 0 {
		return "", p.err
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

func TestQuizCollect(t *testing.T) {
	p := &scriptedPrompter{
		choices: []int{1, 2, 0},
		answers: []string{" 8 ", "Yes", "Calm, playful, calm", " 94110 "},
	}
	var out bytes.Buffer
	q := &quiz{prompter: p, out: &out, logger: zap.NewNop()}

	user, err := q.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &matching.UserProfile{
		HomeType:      matching.HomeHouseWithYard,
		HoursAway:     10,
		ActivityLevel: 8,
		Experience:    matching.ExperienceFirstTime,
		Allergies:     true,
		DesiredTraits: []string{"calm", "playful"},
		Location:      "94110",
	}
	if !reflect.DeepEqual(user, want) {
		t.Fatalf("unexpected profile:\n got %+v\nwant %+v", user, want)
	}

	wantOrder := []string{
		"What's your living situation?",
		"Hours away from home daily?",
		"Activity level (1-10, 10=very active)",
		"Cat experience?",
		"Allergies? (y/n)",
		"Desired traits, comma-separated (calm, playful, independent, affectionate, social, shy)",
		"ZIP code or city",
	}
	if !reflect.DeepEqual(p.labels, wantOrder) {
		t.Fatalf("unexpected prompt order: %v", p.labels)
	}
	if !bytes.Contains(out.Bytes(), []byte("Welcome to PurrfectMatch!")) {
		t.Fatalf("missing welcome banner: %q", out.String())
	}
}

func TestQuizInterrupt(t *testing.T) {
	cases := map[string]error{
		"ctrl-c": promptui.ErrInterrupt,
		"eof":    promptui.ErrEOF,
	}
	for name, promptErr := range cases {
		t.Run(name, func(t *testing.T) {
			p := &scriptedPrompter{choices: []int{0}, err: promptErr}
			q := &quiz{prompter: p, out: &bytes.Buffer{}, logger: zap.NewNop()}

			_, err := q.Collect(context.Background())
			if !errors.Is(err, session.ErrInterrupted) {
				t.Fatalf("expected ErrInterrupted, got %v", err)
			}
		})
	}
}

func TestQuizCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := &quiz{prompter: &scriptedPrompter{}, out: &bytes.Buffer{}, logger: zap.NewNop()}
	if _, err := q.Collect(ctx); !errors.Is(err, session.ErrInterrupted) {
		t.Fatalf("expected ErrInterrupted, got %v", err)
	}
}

func TestValidators(t *testing.T) {
	cases := []struct {
		name     string
		validate func(string) error
		input    string
		ok       bool
	}{
		{"activity in range", validateActivity, "10", true},
		{"activity too low", validateActivity, "0", false},
		{"activity not a number", validateActivity, "lots", false},
		{"yes", validateYesNo, "Y", true},
		{"no", validateYesNo, "no", true},
		{"maybe", validateYesNo, "maybe", false},
		{"location", validateLocation, "Austin, TX", true},
		{"blank location", validateLocation, "   ", false},
	}
	for _, tc := range cases {
		err := tc.validate(tc.input)
		if (err == nil) != tc.ok {
			t.Fatalf("%s: validate(%q) = %v", tc.name, tc.input, err)
		}
	}
}
