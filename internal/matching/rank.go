package matching

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/BryanGrisales/PURR-Fect/internal/catapi"
	"github.com/BryanGrisales/PURR-Fect/internal/listing"
)

// Match ties a cat to its score and the breed used to compute it.
type Match struct {
	Cat   *listing.Cat  `json:"cat"`
	Score *Score        `json:"score"`
	Breed *catapi.Breed `json:"breed,omitempty"`
}

type Matches []*Match

// Rank sorts matches by total score, highest first. Equal scores keep their
// listing order.
func Rank(matches Matches) Matches {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score.Total > matches[j].Score.Total
	})
	return matches
}

// Top returns at most n leading matches.
func (m Matches) Top(n int) Matches {
	if n < 0 || n >= len(m) {
		return m
	}
	return m[:n]
}

// AtLeast keeps matches whose total reaches minScore, preserving order.
func (m Matches) AtLeast(minScore int) Matches {
	kept := make(Matches, 0, len(m))
	for _, match := range m {
		if match.Score.Total >= minScore {
			kept = append(kept, match)
		}
	}
	return kept
}

// DumpToTmpFile writes the matches as indented JSON to a new temp file and
// returns its name.
func (m Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return "", err
	}
	return file.Name(), nil
}
