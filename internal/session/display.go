package session

import (
	"fmt"
	"strings"
)

func (c *Controller) display(report *Report) {
	out := c.deps.Out

	fmt.Fprintln(out, "\nYOUR TOP MATCHES")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	for i, m := range report.Matches {
		cat, score := m.Cat, m.Score

		fmt.Fprintf(out, "\n%d. %s - %d%% Compatible (%s)\n", i+1, cat.Name, score.Total, score.Rating())
		fmt.Fprintf(out, "   Location: %s (%.1f miles)\n", cat.ShelterName, cat.Distance)
		fmt.Fprintf(out, "   Details: %s • %s • %s\n", strings.Join(cat.Breeds, ", "), cat.Age, cat.Gender)
		fmt.Fprintf(out, "   Scores: Lifestyle: %d/40 | Experience: %d/30 | Personality: %d/30\n",
			score.Lifestyle, score.Experience, score.Personality)

		if m.Breed != nil {
			fmt.Fprintf(out, "   Breed: %s from %s", m.Breed.Name, m.Breed.Origin)
			if len(m.Breed.Temperament) > 0 {
				fmt.Fprintf(out, " (%s)", strings.Join(m.Breed.Temperament, ", "))
			}
			fmt.Fprintln(out)
		}

		if len(cat.Photos) > 0 {
			fmt.Fprintf(out, "   Photo: %s\n", cat.Photos[0])
		}

		if cat.ContactEmail != "" {
			fmt.Fprintf(out, "   Contact: %s\n", cat.ContactEmail)
		}

		fmt.Fprintln(out, "   Why this match:")
		for _, reason := range score.Reasons {
			fmt.Fprintf(out, "      • %s\n", reason)
		}

		if advice, ok := report.Advice[cat.ID]; ok {
			fmt.Fprintf(out, "   Advisor: %s\n", advice.Summary)
			for _, tip := range advice.Tips {
				fmt.Fprintf(out, "      - %s\n", tip)
			}
		}
	}
}
