// Package matching scores how well an adoptable cat fits an adopter.
package matching

import (
	"github.com/BryanGrisales/PURR-Fect/internal/catapi"
	"github.com/BryanGrisales/PURR-Fect/internal/listing"
	"github.com/BryanGrisales/PURR-Fect/internal/traits"
)

// Sub-score bounds.
const (
	MaxLifestyle   = 40
	MaxExperience  = 30
	MaxPersonality = 30
)

const (
	personalityBase = 15
	traitBonus      = 5
	maxTraitBonus   = 15
	allergyPenalty  = 10
)

// Score is the compatibility of one cat with one user.
// Total always equals Lifestyle + Experience + Personality.
type Score struct {
	CatID       string   `json:"cat_id"`
	Total       int      `json:"total_score"`
	Lifestyle   int      `json:"lifestyle_score"`
	Experience  int      `json:"experience_score"`
	Personality int      `json:"personality_score"`
	Reasons     []string `json:"reasons"`
}

// Rating is a coarse label for a total score.
func (s *Score) Rating() string {
	switch {
	case s.Total >= 80:
		return "EXCELLENT"
	case s.Total >= 60:
		return "GOOD"
	default:
		return "FAIR"
	}
}

// Compute scores a cat for a user. breed may be nil when the cat's breed is
// unknown to the catalog.
func Compute(user *UserProfile, cat *listing.Cat, breed *catapi.Breed) *Score {
	lifestyle := LifestyleScore(user, cat)
	experience := ExperienceScore(user.Experience, cat.Temperament)
	personality := PersonalityScore(user, cat, breed)

	return &Score{
		CatID:       cat.ID,
		Total:       lifestyle + experience + personality,
		Lifestyle:   lifestyle,
		Experience:  experience,
		Personality: personality,
		Reasons:     Reasons(lifestyle, experience, personality),
	}
}

// LifestyleScore rates schedule, living space and activity fit (0-40).
func LifestyleScore(user *UserProfile, cat *listing.Cat) int {
	score := scheduleScore(user.HoursAway, cat.Independence) +
		spaceScore(user.HomeType, cat.Energy) +
		activityScore(user.ActivityLevel, cat.Energy)

	return min(score, MaxLifestyle)
}

func scheduleScore(hoursAway, independence int) int {
	switch {
	case hoursAway <= 4:
		return 20
	case hoursAway <= 8:
		if independence >= 7 {
			return 20
		}
		return 12
	default:
		if independence >= 8 {
			return 15
		}
		return 5
	}
}

func spaceScore(home HomeType, energy int) int {
	if home != HomeApartment {
		return 10
	}

	switch {
	case energy <= 5:
		return 10
	case energy <= 7:
		return 6
	default:
		return 2
	}
}

func activityScore(activity, energy int) int {
	diff := activity - energy
	if diff < 0 {
		diff = -diff
	}
	return max(0, 10-diff)
}

// ExperienceScore looks up the fit of an experience tier with a temperament (0-30).
func ExperienceScore(experience Experience, temperament traits.Temperament) int {
	switch experience {
	case ExperienceFirstTime:
		switch temperament {
		case traits.TemperamentEasy:
			return 30
		case traits.TemperamentModerate:
			return 20
		default:
			return 10
		}
	case ExperienceSome:
		if temperament == traits.TemperamentChallenging {
			return 25
		}
		return 30
	default:
		return 30
	}
}

// PersonalityScore rates shared traits and allergy fit (0-30). The allergy
// penalty only applies when breed information is known.
func PersonalityScore(user *UserProfile, cat *listing.Cat, breed *catapi.Breed) int {
	score := personalityBase
	score += min(traitBonus*sharedTraits(user.DesiredTraits, cat.Traits), maxTraitBonus)

	if user.Allergies && breed != nil && !breed.IsHypoallergenic() {
		score -= allergyPenalty
	}

	return clamp(score, 0, MaxPersonality)
}

func sharedTraits(desired, has []string) int {
	set := make(map[string]struct{}, len(has))
	for _, t := range has {
		set[t] = struct{}{}
	}

	counted := make(map[string]struct{}, len(desired))
	n := 0
	for _, t := range desired {
		if _, ok := set[t]; !ok {
			continue
		}
		if _, dup := counted[t]; dup {
			continue
		}
		counted[t] = struct{}{}
		n++
	}
	return n
}

// Reasons explains the sub-scores, always lifestyle, experience, personality.
func Reasons(lifestyle, experience, personality int) []string {
	reasons := make([]string, 0, 3)

	switch {
	case lifestyle >= 35:
		reasons = append(reasons, "Excellent lifestyle match for your schedule and home")
	case lifestyle >= 25:
		reasons = append(reasons, "Good lifestyle compatibility")
	default:
		reasons = append(reasons, "Some lifestyle adjustments may be needed")
	}

	switch {
	case experience >= 25:
		reasons = append(reasons, "Perfect match for your experience level")
	case experience >= 20:
		reasons = append(reasons, "Suitable for your cat experience")
	default:
		reasons = append(reasons, "May be challenging for your current experience")
	}

	switch {
	case personality >= 25:
		reasons = append(reasons, "Strong personality and trait compatibility")
	case personality >= 15:
		reasons = append(reasons, "Good personality match")
	default:
		reasons = append(reasons, "Some personality differences to consider")
	}

	return reasons
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
