package matching

import (
	"fmt"
	"strings"
)

type HomeType string

const (
	HomeApartment     HomeType = "apartment"
	HomeHouseWithYard HomeType = "house_with_yard"
	HomeFarmRural     HomeType = "farm_rural"
)

type Experience string

const (
	ExperienceFirstTime       Experience = "first_time"
	ExperienceSome            Experience = "some_experience"
	ExperienceVeryExperienced Experience = "very_experienced"
)

// HomeTypes lists home types in prompt order.
var HomeTypes = []HomeType{HomeApartment, HomeHouseWithYard, HomeFarmRural}

// Experiences lists experience tiers in prompt order.
var Experiences = []Experience{ExperienceFirstTime, ExperienceSome, ExperienceVeryExperienced}

// KnownTraits are the personality traits the keyword table can derive.
var KnownTraits = []string{"calm", "playful", "independent", "affectionate", "social", "shy"}

// UserProfile holds a prospective adopter's quiz answers. SessionID is empty
// until the profile is persisted.
type UserProfile struct {
	HomeType      HomeType   `json:"home_type"`
	HoursAway     int        `json:"hours_away"`
	ActivityLevel int        `json:"activity_level"`
	Experience    Experience `json:"experience"`
	Allergies     bool       `json:"allergies"`
	DesiredTraits []string   `json:"desired_traits"`
	Location      string     `json:"location"`
	SessionID     string     `json:"session_id,omitempty"`
}

func (h HomeType) Label() string {
	switch h {
	case HomeApartment:
		return "Apartment"
	case HomeHouseWithYard:
		return "House with yard"
	case HomeFarmRural:
		return "Farm/Rural"
	default:
		return string(h)
	}
}

func (e Experience) Label() string {
	switch e {
	case ExperienceFirstTime:
		return "First-time owner"
	case ExperienceSome:
		return "Some experience"
	case ExperienceVeryExperienced:
		return "Very experienced"
	default:
		return string(e)
	}
}

// ParseHomeType accepts the stored value of a home type.
func ParseHomeType(s string) (HomeType, error) {
	for _, h := range HomeTypes {
		if strings.EqualFold(string(h), strings.TrimSpace(s)) {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown home type %q", s)
}

// ParseExperience accepts the stored value of an experience tier.
func ParseExperience(s string) (Experience, error) {
	for _, e := range Experiences {
		if strings.EqualFold(string(e), strings.TrimSpace(s)) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown experience %q", s)
}

// ParseTraits splits a comma separated list into lower-cased traits,
// keeping input order and dropping blanks and repeats.
func ParseTraits(s string) []string {
	traits := make([]string, 0)
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		t := strings.ToLower(strings.TrimSpace(part))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		traits = append(traits, t)
	}
	return traits
}

// ClampActivity keeps an activity level within 1-10.
func ClampActivity(level int) int {
	return clamp(level, 1, 10)
}
