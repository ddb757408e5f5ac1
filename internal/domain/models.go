package domain

import "time"

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

type Garment struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Category          string     `json:"category"`
	Color             string     `json:"color"`
	Brand             string     `json:"brand"`
	Image             string     `json:"image,omitempty"`
	Price             float64    `json:"price"`
	Stock             int        `json:"stock"`
	Visibility        Visibility `json:"visibility"`
	SuitableSkinTones []string   `json:"suitableSkinTones"`
	OccasionTags      []string   `json:"occasionTags"`
	Gender            string     `json:"gender,omitempty"` // "" or unisex = any
	OwnerID           string     `json:"ownerId"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// Eligible reports the per-garment half of the visibility invariant.
// Partner approval is checked separately.
func (g Garment) Eligible() bool {
	return g.Visibility == VisibilityPublic && g.Stock > 0
}

type Partner struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Location string `db:"location"`
	Phone    string `db:"phone"`
	Email    string `db:"email"`
	Approved bool   `db:"approved"`
}

// PartnerSummary is the public contact card attached to a suggestion.
type PartnerSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (p Partner) Summary() PartnerSummary {
	return PartnerSummary{ID: p.ID, Name: p.Name, Location: p.Location, Phone: p.Phone, Email: p.Email}
}

type Occasion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	DressCode   string    `json:"dressCode"`
	Notes       string    `json:"notes"`
	SkinTone    string    `json:"skinTone,omitempty"`
	WardrobeIDs []string  `json:"wardrobeIds"`
}
