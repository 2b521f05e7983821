package listing

import (
	"github.com/BryanGrisales/PURR-Fect/internal/petfinder"
	"github.com/BryanGrisales/PURR-Fect/internal/traits"
)

const (
	unknown        = "Unknown"
	unknownShelter = "Unknown Shelter"
)

type Cats struct {
	Items []*Cat
}

// Cat is a normalized adoptable cat. Derived fields are filled once by Enhance.
type Cat struct {
	ID           string   `json:"id"`
	Species      string   `json:"species,omitempty"`
	Name         string   `json:"name"`
	Age          string   `json:"age"`
	Breeds       []string `json:"breeds"`
	Size         string   `json:"size"`
	Gender       string   `json:"gender"`
	Description  string   `json:"description"`
	Photos       []string `json:"photos"`
	ContactEmail string   `json:"contact_email,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
	ShelterName  string   `json:"shelter_name"`
	Distance     float64  `json:"distance"`

	Energy       int                `json:"energy_level"`
	Independence int                `json:"independence"`
	Traits       []string           `json:"personality_traits"`
	Temperament  traits.Temperament `json:"temperament"`

	enhanced bool
}

// FromAnimal converts a wire record, defaulting absent fields.
func FromAnimal(a *petfinder.Animal) *Cat {
	return &Cat{
		ID:           a.ID,
		Species:      a.Type,
		Name:         orDefault(a.Name, unknown),
		Age:          orDefault(a.Age, unknown),
		Breeds:       a.BreedNames(),
		Size:         orDefault(a.Size, unknown),
		Gender:       orDefault(a.Gender, unknown),
		Description:  a.Description,
		Photos:       a.LargePhotos(),
		ContactEmail: a.Contact.Email,
		ContactPhone: a.Contact.Phone,
		ShelterName:  orDefault(a.OrganizationID, unknownShelter),
		Distance:     a.Distance,
		Energy:       traits.DefaultEnergy,
		Independence: traits.DefaultIndependence,
		Traits:       []string{},
		Temperament:  traits.TemperamentModerate,
	}
}

// Enhance derives personality attributes from the description. Only the
// first call has an effect.
func (c *Cat) Enhance(table *traits.Table) {
	if c.enhanced {
		return
	}

	attrs := table.Derive(c.Description)
	c.Traits = attrs.Traits
	c.Energy = attrs.Energy
	c.Independence = attrs.Independence
	c.Temperament = attrs.Temperament
	c.enhanced = true
}

// Enhanced reports whether derived fields have been computed.
func (c *Cat) Enhanced() bool {
	return c.enhanced
}

// PrimaryBreed returns the first breed name or "" for unknown breeds.
func (c *Cat) PrimaryBreed() string {
	if len(c.Breeds) == 0 {
		return ""
	}
	return c.Breeds[0]
}

// Backfill copies photos and contact details from a duplicate record into
// fields that are still empty. Nothing else is merged.
func (c *Cat) Backfill(dup *Cat) {
	if len(c.Photos) == 0 && len(dup.Photos) > 0 {
		c.Photos = dup.Photos
	}
	if c.ContactEmail == "" && dup.ContactEmail != "" {
		c.ContactEmail = dup.ContactEmail
	}
	if c.ContactPhone == "" && dup.ContactPhone != "" {
		c.ContactPhone = dup.ContactPhone
	}
}

func (c *Cats) Len() int {
	return len(c.Items)
}

func (c *Cats) FindByID(id string) *Cat {
	for _, cat := range c.Items {
		if cat.ID == id {
			return cat
		}
	}
	return nil
}

func (c *Cats) IDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, cat := range c.Items {
		ids = append(ids, cat.ID)
	}
	return ids
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
