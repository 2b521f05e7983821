// Package traits derives coarse personality attributes of a cat from the free
// text of its shelter description.
package traits

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultTable []byte

// Temperament is a coarse difficulty classification of a cat.
type Temperament string

const (
	TemperamentEasy        Temperament = "easy"
	TemperamentModerate    Temperament = "moderate"
	TemperamentChallenging Temperament = "challenging"
)

// Fallback levels for tables that omit a default.
const (
	DefaultEnergy       = 5
	DefaultIndependence = 6
)

// Table holds ordered keyword rules for every derived attribute.
type Table struct {
	Version      int             `yaml:"version"`
	Traits       []TraitRule     `yaml:"traits"`
	Energy       LevelRules      `yaml:"energy"`
	Independence LevelRules      `yaml:"independence"`
	Temperament  TemperamentRule `yaml:"temperament"`
}

// TraitRule appends Value when any of Words occurs in the description.
type TraitRule struct {
	Value string   `yaml:"value"`
	Words []string `yaml:"words"`
}

// LevelRules picks the value of the first matching rule or Default.
type LevelRules struct {
	Default int         `yaml:"default"`
	Rules   []LevelRule `yaml:"rules"`
}

type LevelRule struct {
	Value int      `yaml:"value"`
	Words []string `yaml:"words"`
}

type TemperamentRule struct {
	Default Temperament         `yaml:"default"`
	Rules   []TemperamentChoice `yaml:"rules"`
}

type TemperamentChoice struct {
	Value Temperament `yaml:"value"`
	Words []string    `yaml:"words"`
}

// Default returns the built-in keyword table.
func Default() *Table {
	table, err := Parse(defaultTable)
	if err != nil {
		// the embedded table is part of the build
		panic(fmt.Sprintf("parsing embedded keyword table: %v", err))
	}
	return table
}

// Load reads a keyword table from a YAML file. An empty path returns the
// built-in table.
func Load(path string) (*Table, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword table %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML keyword table.
func Parse(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("decode keyword table: %w", err)
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}

	table.normalize()
	return &table, nil
}

// Validate checks that levels stay in range and temperaments are known.
func (t *Table) Validate() error {
	for _, level := range []struct {
		name  string
		rules LevelRules
	}{
		{"energy", t.Energy},
		{"independence", t.Independence},
	} {
		if level.rules.Default != 0 && !inLevelRange(level.rules.Default) {
			return fmt.Errorf("%s default %d is out of range 1-10", level.name, level.rules.Default)
		}
		for _, rule := range level.rules.Rules {
			if !inLevelRange(rule.Value) {
				return fmt.Errorf("%s rule value %d is out of range 1-10", level.name, rule.Value)
			}
		}
	}

	if t.Temperament.Default != "" && !t.Temperament.Default.Valid() {
		return fmt.Errorf("unknown default temperament %q", t.Temperament.Default)
	}
	for _, rule := range t.Temperament.Rules {
		if !rule.Value.Valid() {
			return fmt.Errorf("unknown temperament %q", rule.Value)
		}
	}

	for _, rule := range t.Traits {
		if strings.TrimSpace(rule.Value) == "" {
			return fmt.Errorf("trait rule without value")
		}
	}

	return nil
}

// normalize lower-cases keywords and fills neutral defaults.
func (t *Table) normalize() {
	for i := range t.Traits {
		t.Traits[i].Value = strings.ToLower(strings.TrimSpace(t.Traits[i].Value))
		t.Traits[i].Words = lowerAll(t.Traits[i].Words)
	}
	for i := range t.Energy.Rules {
		t.Energy.Rules[i].Words = lowerAll(t.Energy.Rules[i].Words)
	}
	for i := range t.Independence.Rules {
		t.Independence.Rules[i].Words = lowerAll(t.Independence.Rules[i].Words)
	}
	for i := range t.Temperament.Rules {
		t.Temperament.Rules[i].Words = lowerAll(t.Temperament.Rules[i].Words)
	}

	if t.Energy.Default == 0 {
		t.Energy.Default = DefaultEnergy
	}
	if t.Independence.Default == 0 {
		t.Independence.Default = DefaultIndependence
	}
	if t.Temperament.Default == "" {
		t.Temperament.Default = TemperamentModerate
	}
}

// Valid reports whether the temperament is one of the known tiers.
func (t Temperament) Valid() bool {
	switch t {
	case TemperamentEasy, TemperamentModerate, TemperamentChallenging:
		return true
	default:
		return false
	}
}

func inLevelRange(v int) bool {
	return v >= 1 && v <= 10
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}
