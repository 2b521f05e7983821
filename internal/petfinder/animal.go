package petfinder

// Animal is a listing record as returned by the search endpoint.
// Optional fields are left at their zero values when absent.
type Animal struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Age            string  `json:"age"`
	Size           string  `json:"size"`
	Gender         string  `json:"gender"`
	Description    string  `json:"description"`
	OrganizationID string  `json:"organization_id"`
	Distance       float64 `json:"distance"`
	Breeds         Breeds  `json:"breeds"`
	Photos         []Photo `json:"photos"`
	Contact        Contact `json:"contact"`
}

type Breeds struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Photo struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
	Full   string `json:"full"`
}

type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// LargePhotos returns the large variant of every photo that has one.
func (a *Animal) LargePhotos() []string {
	photos := make([]string, 0, len(a.Photos))
	for _, p := range a.Photos {
		if p.Large != "" {
			photos = append(photos, p.Large)
		}
	}
	return photos
}

// BreedNames returns primary then secondary breed, skipping blanks.
func (a *Animal) BreedNames() []string {
	names := make([]string, 0, 2)
	if a.Breeds.Primary != "" {
		names = append(names, a.Breeds.Primary)
	}
	if a.Breeds.Secondary != "" {
		names = append(names, a.Breeds.Secondary)
	}
	return names
}
