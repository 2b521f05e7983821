package traits

import "strings"

// Attributes are the values derived from a single description.
type Attributes struct {
	Traits       []string
	Energy       int
	Independence int
	Temperament  Temperament
}

// Derive classifies a description. Matching is substring based on the
// lower-cased text; the result depends only on the description and the table.
func (t *Table) Derive(description string) Attributes {
	text := strings.ToLower(description)

	attrs := Attributes{
		Traits:       make([]string, 0),
		Energy:       t.Energy.Default,
		Independence: t.Independence.Default,
		Temperament:  t.Temperament.Default,
	}

	if strings.TrimSpace(text) == "" {
		return attrs
	}

	for _, rule := range t.Traits {
		if containsAny(text, rule.Words) {
			attrs.Traits = append(attrs.Traits, rule.Value)
		}
	}

	attrs.Energy = firstLevel(text, t.Energy)
	attrs.Independence = firstLevel(text, t.Independence)

	for _, rule := range t.Temperament.Rules {
		if containsAny(text, rule.Words) {
			attrs.Temperament = rule.Value
			break
		}
	}

	return attrs
}

func firstLevel(text string, levels LevelRules) int {
	for _, rule := range levels.Rules {
		if containsAny(text, rule.Words) {
			return rule.Value
		}
	}
	return levels.Default
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
