package catapi

import "strings"

type Breeds struct {
	Items []*Breed
}

// Breed describes catalog characteristics of a breed. Levels use the
// catalog's 1-5 scale.
type Breed struct {
	Name           string   `json:"name"`
	Temperament    []string `json:"temperament"`
	Origin         string   `json:"origin"`
	Description    string   `json:"description"`
	LifeSpan       string   `json:"life_span"`
	Hypoallergenic int      `json:"hypoallergenic"`
	EnergyLevel    int      `json:"energy_level"`
	AffectionLevel int      `json:"affection_level"`
}

// IsHypoallergenic reports the catalog's 0/1 flag as a bool.
func (b *Breed) IsHypoallergenic() bool {
	return b.Hypoallergenic != 0
}

func (b *Breeds) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Items)
}

// FindByName is a linear case-insensitive exact match.
func (b *Breeds) FindByName(name string) *Breed {
	if b == nil {
		return nil
	}
	for _, breed := range b.Items {
		if strings.EqualFold(breed.Name, name) {
			return breed
		}
	}
	return nil
}

func (b *Breeds) Names() []string {
	names := make([]string, 0, b.Len())
	if b == nil {
		return names
	}
	for _, breed := range b.Items {
		names = append(names, breed.Name)
	}
	return names
}
